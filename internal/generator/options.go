package generator

import (
	"log/slog"
	"time"

	"github.com/aretw0/chaingen/internal/metrics"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/aretw0/chaingen/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed generator can hold a package path.
const DefaultLockTTL = 5 * time.Minute

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(g *Generator) {
		g.hooks = hooks
	}
}

// WithPolicy selects how out-of-range requests are handled (default: lenient).
func WithPolicy(p domain.Policy) Option {
	return func(g *Generator) {
		g.policy = p
	}
}

// WithMetrics records runs on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithLocker serializes runs on the same package path through locker.
// Without a locker the caller is assumed to own the path exclusively.
func WithLocker(locker ports.PathLocker, ttl time.Duration) Option {
	return func(g *Generator) {
		g.locker = locker
		if ttl > 0 {
			g.lockTTL = ttl
		}
	}
}

// withClock overrides time.Now (tests).
func withClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}
