package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/authslice/authd/internal/api"
	"github.com/authslice/authd/internal/api/handler"
	"github.com/authslice/authd/internal/core/service"
	"github.com/authslice/authd/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func newServerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Starts the authd HTTP server",
		Long: `Starts the authd HTTP server. Usage:

	authd server

Roles listed in SEED_ROLES are ensured before the listener opens unless
SEED_ON_START is false.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, log, err := bootstrap(cmd)
			if err != nil {
				return err
			}

			srvLog := logger.Component("server")

			secret, insecure := cfg.SigningSecret()
			if insecure {
				srvLog.Warn().Msg("JWT_SECRET is not set, signing tokens with the insecure development secret")
			}

			backend, roles, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := backend.Close(context.Background()); err != nil {
					srvLog.Error().Err(err).Msg("close store")
				}
			}()

			if cfg.SeedOnStart {
				if _, err := roles.EnsureRoles(ctx, cfg.SeedRoles); err != nil {
					return err
				}
			}

			tokens := service.NewTokenService(secret, cfg.TokenTTL)
			e := api.NewRouter(api.Dependencies{
				Log:       log,
				Auth:      service.NewAuthService(backend.Users, tokens, log),
				Verifier:  tokens,
				Readiness: map[string]handler.Pinger{backend.Driver: backend.Pinger},
			})

			errCh := make(chan error, 1)
			go func() {
				srvLog.Info().Str("port", cfg.Port).Str("store", backend.Driver).Msg("http server listening")
				if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return err
				}
			case <-ctx.Done():
				srvLog.Info().Msg("shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}
