package main

import (
	"fmt"

	"github.com/aretw0/chaingen/internal/scaffold"
	"github.com/aretw0/chaingen/internal/validator"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a generated package for broken or leftover modules",
		Long: `Crawls the package starting from main.py and reports missing modules, modules that
end the chain without the completion message, and module files nothing imports.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			pkgPath := scaffold.New(cfg.SrcDir, nil).PackagePath(cfg.ProjectName)

			report, err := validator.ValidatePackage(pkgPath, cfg.ProjectName)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Package is valid! ✅ %d modules, chain ends at %s\n", len(report.Reached), report.Terminal)
			return nil
		},
	}
	cmd.Flags().String("project-name", "demo", "Package to verify under <src>")
	return cmd
}
