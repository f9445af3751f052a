package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/aretw0/chaingen"
	httpAdapter "github.com/aretw0/chaingen/internal/adapters/http"
	"github.com/aretw0/chaingen/internal/presentation/graph"
	"github.com/aretw0/chaingen/internal/presentation/tui"
	"github.com/aretw0/chaingen/internal/scaffold"
	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what generate would write, without touching disk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			policy, err := cfg.ParsedPolicy()
			if err != nil {
				return err
			}
			req := cfg.Request()
			if err := req.Validate(policy); err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			pkgPath := scaffold.New(cfg.SrcDir, nil).PackagePath(req.ProjectName)
			files := chaingen.Plan(req)
			out := cmd.OutOrStdout()

			switch format {
			case "mermaid":
				fmt.Fprint(out, graph.GenerateMermaid(req))
			case "json":
				listing := make([]httpAdapter.PlanFile, 0, len(files))
				for _, f := range files {
					listing = append(listing, httpAdapter.PlanFile{Name: f.Name, Content: string(f.Content)})
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(httpAdapter.PlanResponse{Request: req, PackagePath: pkgPath, Files: listing})
			case "markdown", "":
				md := tui.PlanMarkdown(req, pkgPath, files)
				if f, ok := out.(*os.File); ok && tui.IsTerminal(f) {
					rendered, err := tui.NewRenderer()(md)
					if err == nil {
						md = rendered
					}
				}
				fmt.Fprint(out, md)
			default:
				return fmt.Errorf("unknown format %q (want markdown, mermaid or json)", format)
			}
			return nil
		},
	}
	addRequestFlags(cmd)
	cmd.Flags().StringP("format", "f", "markdown", "Output format: markdown, mermaid or json")
	return cmd
}
