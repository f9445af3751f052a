package chaingen

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/chaingen/internal/generator"
	"github.com/aretw0/chaingen/internal/metrics"
	"github.com/aretw0/chaingen/internal/render"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/aretw0/chaingen/pkg/ports"
)

// DefaultRunCommand prefixes the run hint printed after a generation.
const DefaultRunCommand = "uv run"

// Generator is the high-level entry point for the chaingen library.
// It wraps the internal generator and provides a simplified API for consumers.
type Generator struct {
	gen     *generator.Generator
	opts    []generator.Option
	metrics *metrics.Metrics
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.opts = append(g.opts, generator.WithLogger(logger))
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.opts = append(g.opts, generator.WithLifecycleHooks(hooks))
	}
}

// WithPolicy selects lenient (default) or strict request validation.
func WithPolicy(p domain.Policy) Option {
	return func(g *Generator) {
		g.opts = append(g.opts, generator.WithPolicy(p))
	}
}

// WithMetrics records runs on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
		g.opts = append(g.opts, generator.WithMetrics(m))
	}
}

// WithLocker serializes runs targeting the same package path.
func WithLocker(locker ports.PathLocker, ttl time.Duration) Option {
	return func(g *Generator) {
		g.opts = append(g.opts, generator.WithLocker(locker, ttl))
	}
}

// New creates a Generator writing packages under srcDir (default "src").
func New(srcDir string, opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	g.gen = generator.New(srcDir, g.opts...)
	return g
}

// Generate writes the package described by req, replacing any previous one.
func (g *Generator) Generate(ctx context.Context, req domain.Request) (*domain.Result, error) {
	return g.gen.Generate(ctx, req)
}

// PackagePath returns the directory req.ProjectName is generated into.
func (g *Generator) PackagePath(projectName string) string {
	return g.gen.PackagePath(projectName)
}

// SrcDir returns the source directory.
func (g *Generator) SrcDir() string {
	return g.gen.SrcDir()
}

// Metrics returns the metrics configured with WithMetrics, or nil.
func (g *Generator) Metrics() *metrics.Metrics {
	return g.metrics
}

// Plan returns every file Generate would write for req, without touching disk.
// Names are relative to the package directory.
func Plan(req domain.Request) []domain.File {
	return render.Files(req)
}

// RunHint returns the command that executes a generated package,
// e.g. "uv run src/demo/main.py".
func RunHint(runCommand, srcDir, projectName string) string {
	if runCommand == "" {
		runCommand = DefaultRunCommand
	}
	if srcDir == "" {
		srcDir = "src"
	}
	return runCommand + " " + filepath.ToSlash(filepath.Join(srcDir, projectName, domain.EntryFileName))
}
