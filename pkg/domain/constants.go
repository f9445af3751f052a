package domain

// File layout of a generated package.
const (
	// EntryFileName is the script that configures the interpreter and starts the chain.
	EntryFileName = "main.py"
	// MarkerFileName is the empty file that turns the directory into a package.
	MarkerFileName = "__init__.py"
	// ModuleExt is appended to every chain module name on disk.
	ModuleExt = ".py"
	// ModulePrefix prefixes the zero-padded position in a module name.
	ModulePrefix = "mod_"
)

const (
	// TerminalMessage is printed by the last module of the chain.
	TerminalMessage = "Got to the end of the import chain."

	// PadWidth is the fixed width of the position in a module name.
	PadWidth = 3
	// MaxAlignedChainLength is the longest chain whose names all share PadWidth.
	MaxAlignedChainLength = 999

	// ProgressInterval controls how often progress is reported while writing modules.
	ProgressInterval = 10
)

// Request defaults, matching the command line defaults.
const (
	DefaultProjectName    = "demo"
	DefaultChainLength    = 150
	DefaultRecursionLimit = 1000
)
