// Package generator drives a full generation run: validate, reset the package,
// then write every chain module in ascending order.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/chaingen/internal/logging"
	"github.com/aretw0/chaingen/internal/metrics"
	"github.com/aretw0/chaingen/internal/scaffold"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/aretw0/chaingen/pkg/ports"
)

// Generator writes import-chain packages under a source directory.
// Runs are strictly sequential; a Generator may be shared if it has a locker.
type Generator struct {
	scaffolder *scaffold.Scaffolder
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	policy     domain.Policy
	metrics    *metrics.Metrics
	locker     ports.PathLocker
	lockTTL    time.Duration
	now        func() time.Time
}

// New creates a Generator rooted at srcDir.
func New(srcDir string, opts ...Option) *Generator {
	g := &Generator{
		logger:  logging.NewNop(),
		policy:  domain.PolicyLenient,
		lockTTL: DefaultLockTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = logging.NewNop()
	}
	g.scaffolder = scaffold.New(srcDir, g.logger)
	return g
}

// SrcDir returns the directory packages are generated under.
func (g *Generator) SrcDir() string {
	return g.scaffolder.SrcDir
}

// PackagePath returns where req would be generated.
func (g *Generator) PackagePath(projectName string) string {
	return g.scaffolder.PackagePath(projectName)
}

// Generate produces the package described by req.
//
// The previous package of the same name is removed first. Any I/O error aborts the
// run immediately: modules already written stay on disk and nothing is retried.
// Regenerating is the way to recover. ctx only bounds lock acquisition; once the
// package has been reset the run is not cancellable.
func (g *Generator) Generate(ctx context.Context, req domain.Request) (*domain.Result, error) {
	start := g.now()
	logger := g.logger.With("project", req.ProjectName)

	if err := req.Validate(g.policy); err != nil {
		g.metrics.Generation(metrics.OutcomeRejected, 0)
		logger.Warn("request rejected", "policy", g.policy, "error", err)
		return nil, err
	}
	if req.ChainLength < 1 {
		logger.Warn("empty chain: entry point will import a missing module",
			"chain_length", req.ChainLength, "module", domain.FirstModuleName)
	}
	if req.ChainLength > domain.MaxAlignedChainLength {
		logger.Warn("chain exceeds zero-padded range, names lose fixed width",
			"chain_length", req.ChainLength, "max", domain.MaxAlignedChainLength)
	}

	unlock, err := g.lock(ctx, req.ProjectName)
	if err != nil {
		g.metrics.Generation(metrics.OutcomeFailed, 0)
		return nil, err
	}
	defer func() {
		// The path is released even if the caller's context is already done.
		if err := unlock(context.WithoutCancel(ctx)); err != nil {
			logger.Error("failed to release package lock", "error", err)
		}
	}()

	res, err := g.write(ctx, logger, req)
	if err != nil {
		g.metrics.Generation(metrics.OutcomeFailed, 0)
		logger.Error("generation aborted", "error", err)
		return nil, err
	}

	res.Duration = g.now().Sub(start)
	g.metrics.Generation(metrics.OutcomeSuccess, res.Duration)
	logger.Info("package generated", "path", res.PackagePath, "modules", res.ModulesWritten, "duration", res.Duration)

	if g.hooks.OnComplete != nil {
		g.hooks.OnComplete(ctx, &domain.PackageEvent{
			EventBase:      g.event(domain.EventComplete, req),
			Path:           res.PackagePath,
			ModulesWritten: res.ModulesWritten,
		})
	}
	return res, nil
}

func (g *Generator) write(ctx context.Context, logger *slog.Logger, req domain.Request) (*domain.Result, error) {
	pkgPath, err := g.scaffolder.Scaffold(req)
	if err != nil {
		return nil, err
	}
	if g.hooks.OnReset != nil {
		g.hooks.OnReset(ctx, &domain.PackageEvent{
			EventBase: g.event(domain.EventPackageReset, req),
			Path:      pkgPath,
		})
	}

	res := &domain.Result{
		Request:     req,
		PackagePath: pkgPath,
		EntryPath:   filepath.Join(pkgPath, domain.EntryFileName),
	}

	for pos := 1; pos <= req.ChainLength; pos++ {
		if domain.ShouldReportProgress(pos) {
			logger.Info("writing modules", "position", pos, "chain_length", req.ChainLength)
			if g.hooks.OnProgress != nil {
				g.hooks.OnProgress(ctx, &domain.ProgressEvent{
					EventBase:   g.event(domain.EventProgress, req),
					Position:    pos,
					ChainLength: req.ChainLength,
				})
			}
		}

		mod := domain.NewModule(pos, req.ChainLength)
		path, err := g.scaffolder.WriteModule(pkgPath, mod)
		if err != nil {
			return nil, err
		}
		res.ModulesWritten++
		g.metrics.ModuleWritten()
		logger.Debug("module written", "module", mod.Name, "terminal", mod.IsTerminal)

		if g.hooks.OnModuleWritten != nil {
			g.hooks.OnModuleWritten(ctx, &domain.ModuleEvent{
				EventBase: g.event(domain.EventModuleWritten, req),
				Module:    mod,
				Path:      path,
			})
		}
	}
	return res, nil
}

// lock acquires the package path, keyed by its absolute form so that relative and
// absolute spellings of one directory contend.
func (g *Generator) lock(ctx context.Context, projectName string) (ports.UnlockFunc, error) {
	if g.locker == nil {
		return func(context.Context) error { return nil }, nil
	}
	key, err := filepath.Abs(g.PackagePath(projectName))
	if err != nil {
		return nil, fmt.Errorf("invalid package path: %w", err)
	}
	unlock, err := g.locker.Lock(ctx, key, g.lockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", key, err)
	}
	return unlock, nil
}

func (g *Generator) event(t domain.EventType, req domain.Request) domain.EventBase {
	return domain.EventBase{Timestamp: g.now(), Type: t, Project: req.ProjectName}
}
