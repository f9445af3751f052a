package domain

import "fmt"

// Module is one link of the import chain.
type Module struct {
	Position   int
	Name       string
	IsTerminal bool
	// Next is the name of the module at Position+1. Empty for the terminal module.
	Next string
}

// ModuleName returns the module name for a 1-indexed chain position.
// Positions above 999 are rendered without truncation, so they lose the fixed width.
func ModuleName(position int) string {
	return fmt.Sprintf("%s%0*d", ModulePrefix, PadWidth, position)
}

// FileName returns the on-disk file name of the module.
func (m Module) FileName() string {
	return m.Name + ModuleExt
}

// NewModule builds the module at position in a chain of chainLength modules.
func NewModule(position, chainLength int) Module {
	m := Module{
		Position:   position,
		Name:       ModuleName(position),
		IsTerminal: position == chainLength,
	}
	if !m.IsTerminal {
		m.Next = ModuleName(position + 1)
	}
	return m
}

// FirstModuleName is the module the entry point always imports.
var FirstModuleName = ModuleName(1)

// Modules returns the whole chain in ascending order. Non-positive lengths yield nil.
func Modules(chainLength int) []Module {
	if chainLength < 1 {
		return nil
	}
	mods := make([]Module, 0, chainLength)
	for pos := 1; pos <= chainLength; pos++ {
		mods = append(mods, NewModule(pos, chainLength))
	}
	return mods
}
