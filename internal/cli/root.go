// Package cli holds the authd cobra commands.
package cli

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/authslice/authd/internal/core/service"
	"github.com/authslice/authd/internal/infrastructure/config"
	"github.com/authslice/authd/internal/infrastructure/db"
	"github.com/authslice/authd/pkg/logger"
)

const serviceName = "authd"

// NewRootCommand assembles the authd command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "authd",
		Short:         "Authentication and role-based authorization service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServerCommand(),
		newSeedCommand(),
		newMigrateCommand(),
		newUsersCommand(),
	)
	return root
}

// bootstrap loads configuration and initialises the process logger. Log
// output goes to the command's stderr.
func bootstrap(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return nil, zerolog.Logger{}, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: serviceName,
		Output:  cmd.ErrOrStderr(),
	})
	return cfg, log, nil
}

// openStore opens the configured backend along with a role service over it.
// Callers must Close the backend.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*db.Backend, *service.RoleService, error) {
	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return backend, service.NewRoleService(backend.Roles, backend.Users, log), nil
}
