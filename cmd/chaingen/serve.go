package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/chaingen"
	httpAdapter "github.com/aretw0/chaingen/internal/adapters/http"
	"github.com/aretw0/chaingen/internal/adapters/memory"
	"github.com/aretw0/chaingen/internal/config"
	"github.com/aretw0/chaingen/internal/metrics"
	"github.com/aretw0/chaingen/pkg/adapters/redis"
	"github.com/aretw0/chaingen/pkg/ports"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Exposes generation over HTTP (POST /v1/packages, GET /v1/packages/plan) with
Prometheus metrics on /metrics. Concurrent requests for the same package are serialized.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, err := createLogger(cmd)
			if err != nil {
				return err
			}
			policy, err := cfg.ParsedPolicy()
			if err != nil {
				return err
			}
			maxChain, _ := cmd.Flags().GetInt("max-chain-length")
			ctx := cmd.Context()

			var locker ports.PathLocker = memory.NewLocker()
			if cfg.RedisAddr != "" {
				rl, err := redis.Dial(ctx, cfg.RedisAddr)
				if err != nil {
					return err
				}
				defer rl.Close()
				locker = rl
			}

			m := metrics.New()
			gen := chaingen.New(cfg.SrcDir,
				chaingen.WithLogger(logger),
				chaingen.WithPolicy(policy),
				chaingen.WithMetrics(m),
				chaingen.WithLocker(locker, cfg.LockTTL),
			)

			srv := &http.Server{
				Addr: cfg.ListenAddr,
				Handler: httpAdapter.NewHandler(&httpAdapter.Server{
					Generator: gen,
					Version:   chaingen.Version,
					Metrics:   m.Handler(),
					Logger:    logger,

					MaxChainLength: maxChain,
				}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Channel to listen for errors coming from the listener.
			serverErrors := make(chan error, 1)
			go func() {
				fmt.Fprintf(cmd.OutOrStdout(), "Starting chaingen server on %s\n", srv.Addr)
				fmt.Fprintf(cmd.OutOrStdout(), "Generating packages under: %s\n", gen.SrcDir())
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)

			case <-ctx.Done():
				fmt.Fprintln(cmd.OutOrStdout(), "\nStart shutdown...")

				// Give outstanding requests a deadline for completion.
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					logger.Error("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
					if err := srv.Close(); err != nil {
						return fmt.Errorf("error killing server: %w", err)
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), "chaingen server stopped gracefully")
				return nil
			}
		},
	}
	def := config.Default()
	cmd.Flags().String("policy", def.Policy, "Validation policy: lenient or strict")
	cmd.Flags().String("redis", "", "Redis address used to lock package paths across replicas")
	cmd.Flags().Duration("lock-ttl", def.LockTTL, "Expiry of package path locks")
	cmd.Flags().String("listen", def.ListenAddr, "Address to listen on")
	cmd.Flags().Int("max-chain-length", httpAdapter.DefaultMaxChainLength, "Largest chain_length accepted from clients")
	return cmd
}
