package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/muesli/termenv"
)

// Printer writes user-facing progress and summaries to stdout.
// Logs go to stderr through slog; this is the human channel.
type Printer struct {
	out     *termenv.Output
	profile termenv.Profile
}

// NewPrinter creates a Printer. Colors are used only when w is a terminal.
func NewPrinter(w io.Writer) *Printer {
	out := termenv.NewOutput(w)
	return &Printer{out: out, profile: out.EnvColorProfile()}
}

// Progress prints "Writing <position>/<chain length>.".
func (p *Printer) Progress(e *domain.ProgressEvent) {
	fmt.Fprintf(p.out, "Writing %d/%d.\n", e.Position, e.ChainLength)
}

// Summary prints the generated path and how to run it.
func (p *Printer) Summary(res *domain.Result, runHint string) {
	fmt.Fprintf(p.out, "Generated %s project at %s.\n", res.Request.ProjectName, res.PackagePath)
	fmt.Fprintln(p.out, "You can now run the project like this:")
	fmt.Fprintln(p.out)
	hint := p.out.String("    " + runHint).Foreground(p.profile.Color("#818cf8")).Bold()
	fmt.Fprintln(p.out, hint)
	fmt.Fprintln(p.out)
}

// Warn prints a highlighted warning line.
func (p *Printer) Warn(format string, args ...any) {
	msg := p.out.String("Warning: " + fmt.Sprintf(format, args...)).Foreground(p.profile.Color("#fb7185"))
	fmt.Fprintln(p.out, msg)
}
