// Package db selects and opens the credential store named by STORE_DRIVER.
package db

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/authslice/authd/internal/core/ports"
	"github.com/authslice/authd/internal/infrastructure/config"
	"github.com/authslice/authd/internal/infrastructure/db/memory"
	"github.com/authslice/authd/internal/infrastructure/db/mongo"
	"github.com/authslice/authd/internal/infrastructure/db/postgres"
)

// Pinger reports whether a backing store can serve requests.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Backend bundles the repositories of one store driver.
type Backend struct {
	Driver string
	Users  ports.UserRepository
	Roles  ports.RoleRepository
	Pinger Pinger

	close func(ctx context.Context) error
}

// Close releases the underlying connections.
func (b *Backend) Close(ctx context.Context) error {
	if b.close == nil {
		return nil
	}
	return b.close(ctx)
}

// Open connects to the configured store and prepares its schema: unique
// indexes for MongoDB, migrations for PostgreSQL when auto-migrate is on.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	log = log.With().Str("component", "store").Str("driver", cfg.StoreDriver).Logger()

	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store, data is lost on restart")
		s := memory.NewStore()
		return &Backend{Driver: cfg.StoreDriver, Users: s.Users(), Roles: s.Roles(), Pinger: s}, nil

	case config.StoreMongo:
		client, database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongo.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongo")
		return &Backend{
			Driver: cfg.StoreDriver,
			Users:  mongo.NewUserRepository(database),
			Roles:  mongo.NewRoleRepository(database),
			Pinger: mongo.NewPinger(database),
			close:  client.Disconnect,
		}, nil

	case config.StorePostgres:
		if cfg.Postgres.AutoMigrate {
			if err := postgres.Migrate(cfg.Postgres.DSN, log); err != nil {
				return nil, err
			}
		}
		pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		return &Backend{
			Driver: cfg.StoreDriver,
			Users:  postgres.NewUserRepository(pool),
			Roles:  postgres.NewRoleRepository(pool),
			Pinger: postgres.NewPinger(pool),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
