package cli

import (
	"github.com/spf13/cobra"

	"github.com/authslice/authd/internal/infrastructure/db/postgres"
	"github.com/authslice/authd/pkg/logger"
)

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run PostgreSQL schema migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations to POSTGRES_DSN",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			return postgres.Migrate(cfg.Postgres.DSN, logger.Component("migrate"))
		},
	})
	return migrateCmd
}
