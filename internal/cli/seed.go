package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	var roles []string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Ensure the default roles exist",
		Long: `Creates every listed role that is missing and leaves existing ones
untouched, then prints the resulting registry. Safe to run repeatedly.
Defaults to SEED_ROLES.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("roles") {
				roles = cfg.SeedRoles
			}

			backend, svc, err := openStore(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer backend.Close(context.Background())

			records, err := svc.EnsureRoles(cmd.Context(), roles)
			if err != nil {
				return err
			}
			log.Info().Int("count", len(records)).Msg("seed complete")

			registry, err := svc.ListRoles(cmd.Context())
			if err != nil {
				return err
			}
			for _, rec := range registry {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", rec.Name, rec.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roles, "roles", nil, "roles to ensure, comma separated (default SEED_ROLES)")
	return cmd
}
