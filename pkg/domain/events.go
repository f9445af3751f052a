package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventPackageReset  EventType = "package_reset"
	EventModuleWritten EventType = "module_written"
	EventProgress      EventType = "progress"
	EventComplete      EventType = "complete"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Project   string    `json:"project"`
}

// PackageEvent is emitted once the package directory has been reset and scaffolded,
// and again when every module has been written.
type PackageEvent struct {
	EventBase
	Path           string `json:"path"`
	ModulesWritten int    `json:"modules_written"`
}

// ModuleEvent is emitted after a chain module is persisted.
type ModuleEvent struct {
	EventBase
	Module Module `json:"module"`
	Path   string `json:"path"`
}

// ProgressEvent is emitted before writing position 1 and every ProgressInterval positions after.
type ProgressEvent struct {
	EventBase
	Position    int `json:"position"`
	ChainLength int `json:"chain_length"`
}

// LifecycleHooks defines callbacks for generator observability.
type LifecycleHooks struct {
	OnReset         func(context.Context, *PackageEvent)
	OnModuleWritten func(context.Context, *ModuleEvent)
	OnProgress      func(context.Context, *ProgressEvent)
	OnComplete      func(context.Context, *PackageEvent)
}

// ShouldReportProgress reports whether progress is due before writing position.
func ShouldReportProgress(position int) bool {
	return position >= 1 && (position-1)%ProgressInterval == 0
}
