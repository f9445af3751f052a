package main

import (
	"context"
	"log/slog"

	"github.com/aretw0/chaingen"
	"github.com/aretw0/chaingen/internal/config"
	"github.com/aretw0/chaingen/internal/metrics"
	"github.com/aretw0/chaingen/internal/presentation/tui"
	"github.com/aretw0/chaingen/pkg/adapters/redis"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate (or regenerate) an import-chain package",
		Long: `Removes <src>/<project-name> if it exists, then writes __init__.py, main.py and
mod_001.py .. mod_NNN.py, each module importing the next.`,
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
			return runGenerate(cmd.Context(), cmd, cfg, logger)
		},
	}
	addRequestFlags(cmd)
	addGenerateFlags(cmd)
	return cmd
}

func addGenerateFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().String("redis", "", "Redis address used to lock the package path across processes")
	cmd.Flags().Duration("lock-ttl", def.LockTTL, "Expiry of the package path lock")
	cmd.Flags().String("metrics-file", "", "Write Prometheus metrics to this file after the run")
	cmd.Flags().String("run-command", def.RunCommand, "Command shown in the run hint")
}

func runGenerate(ctx context.Context, cmd *cobra.Command, cfg config.Config, logger *slog.Logger) error {
	policy, err := cfg.ParsedPolicy()
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	printer := tui.NewPrinter(cmd.OutOrStdout())
	m := metrics.New()

	opts := []chaingen.Option{
		chaingen.WithLogger(logger),
		chaingen.WithPolicy(policy),
		chaingen.WithMetrics(m),
		chaingen.WithLifecycleHooks(domain.LifecycleHooks{
			OnProgress: func(_ context.Context, e *domain.ProgressEvent) {
				printer.Progress(e)
			},
		}),
	}

	if cfg.RedisAddr != "" {
		locker, err := redis.Dial(ctx, cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer locker.Close()
		opts = append(opts, chaingen.WithLocker(locker, cfg.LockTTL))
	}

	req := cfg.Request()
	res, genErr := chaingen.New(cfg.SrcDir, opts...).Generate(ctx, req)

	if cfg.MetricsFile != "" {
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			logger.Error("failed to export metrics", "error", err)
		}
	}
	if genErr != nil {
		return genErr
	}

	if req.ChainLength < 1 {
		printer.Warn("chain length is %d: %s imports %s, which was not written", req.ChainLength, domain.EntryFileName, domain.FirstModuleName)
	}
	printer.Summary(res, chaingen.RunHint(cfg.RunCommand, cfg.SrcDir, req.ProjectName))
	return nil
}
