package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/chaingen/internal/config"
	"github.com/aretw0/chaingen/internal/logging"
	"github.com/spf13/cobra"
)

// newRootCmd builds the command tree. 'generate' is the default action.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chaingen",
		Short: "chaingen generates Python packages with deep import chains",
		Long: `chaingen writes a package of chained modules (each importing the next) plus an entry
script that sets the recursion limit, to reproduce deep import and recursion behavior.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "YAML config file (default: ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file with CHAINGEN_* variables (default: ./.env if present)")
	rootCmd.PersistentFlags().String("src", "", "Source directory packages are generated under (default \"src\")")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	generateCmd := newGenerateCmd()
	rootCmd.AddCommand(generateCmd, newPlanCmd(), newServeCmd(), newVerifyCmd(), newVersionCmd())

	// Running without a subcommand generates with the flag defaults.
	addRequestFlags(rootCmd)
	addGenerateFlags(rootCmd)
	rootCmd.RunE = generateCmd.RunE

	return rootCmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// addRequestFlags registers the three values that determine a package.
func addRequestFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().String("project-name", def.ProjectName, "Package name, created under <src>/<project-name> (replaced if it exists)")
	cmd.Flags().Int("chain-length", def.ChainLength, "Number of modules in the import chain")
	cmd.Flags().Int("recursion-limit", def.RecursionLimit, "Recursion limit set by main.py before the chain is imported")
	cmd.Flags().String("policy", def.Policy, "Validation policy: lenient (accept empty/over-long chains) or strict")
}

// loadConfig resolves settings and overlays flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(config.LoadOptions{ConfigPath: cfgPath, EnvFile: envFile})
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	setString := func(name string, dst *string) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	setInt := func(name string, dst *int) {
		if flags.Lookup(name) != nil && flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}

	setString("project-name", &cfg.ProjectName)
	setInt("chain-length", &cfg.ChainLength)
	setInt("recursion-limit", &cfg.RecursionLimit)
	setString("policy", &cfg.Policy)
	setString("src", &cfg.SrcDir)
	setString("redis", &cfg.RedisAddr)
	setString("metrics-file", &cfg.MetricsFile)
	setString("run-command", &cfg.RunCommand)
	setString("listen", &cfg.ListenAddr)
	if flags.Lookup("lock-ttl") != nil && flags.Changed("lock-ttl") {
		cfg.LockTTL, _ = flags.GetDuration("lock-ttl")
	}
	return cfg, nil
}

// createLogger configures the application logger.
// Without --debug only warnings and errors reach stderr.
func createLogger(cmd *cobra.Command) (*slog.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	raw, _ := cmd.Flags().GetString("log-format")
	format, err := logging.ParseFormat(raw)
	if err != nil {
		return nil, err
	}
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewWithWriter(cmd.ErrOrStderr(), level, format), nil
}
