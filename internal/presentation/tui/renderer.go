package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// maxPreviewModules caps how many modules the plan table lists before eliding.
const maxPreviewModules = 12

// NewRenderer returns a function that renders markdown using glamour.
func NewRenderer() func(string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return "", err }
	}

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PlanMarkdown describes the package req would produce at pkgPath.
func PlanMarkdown(req domain.Request, pkgPath string, files []domain.File) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Plan for `%s`\n\n", req.ProjectName)
	fmt.Fprintf(&sb, "- **Path:** `%s` (replaced if it exists)\n", pkgPath)
	fmt.Fprintf(&sb, "- **Chain length:** %d\n", req.ChainLength)
	fmt.Fprintf(&sb, "- **Recursion limit:** %d\n", req.RecursionLimit)
	fmt.Fprintf(&sb, "- **Files:** %d\n\n", len(files))

	if req.ChainLength < 1 {
		fmt.Fprintf(&sb, "> **Warning:** `%s` imports `%s`, which will not exist.\n\n", domain.EntryFileName, domain.FirstModuleName)
	}
	if req.ChainLength > domain.MaxAlignedChainLength {
		fmt.Fprintf(&sb, "> **Warning:** positions above %d are not zero-padded.\n\n", domain.MaxAlignedChainLength)
	}

	sb.WriteString("| File | Content |\n|---|---|\n")
	for i, f := range files {
		// Marker + entry + first modules, then the tail.
		elide := len(files) > maxPreviewModules+3
		if elide && i == maxPreviewModules+2 {
			fmt.Fprintf(&sb, "| … | %d more modules |\n", len(files)-maxPreviewModules-3)
		}
		if elide && i > maxPreviewModules+1 && i < len(files)-1 {
			continue
		}
		fmt.Fprintf(&sb, "| `%s` | %s |\n", f.Name, describe(f))
	}
	return sb.String()
}

func describe(f domain.File) string {
	switch {
	case len(f.Content) == 0:
		return "_empty_"
	case f.Name == domain.EntryFileName:
		return "sets recursion limit, imports `" + domain.FirstModuleName + "`"
	default:
		return "`" + strings.ReplaceAll(string(f.Content), "|", `\|`) + "`"
	}
}
