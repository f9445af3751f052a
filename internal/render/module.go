package render

import (
	"strconv"

	"github.com/aretw0/chaingen/pkg/domain"
)

// Module renders a single chain module.
// The terminal module prints the completion message; every other module imports its successor.
// Output depends only on the module, never on the chain it belongs to.
func Module(m domain.Module) []byte {
	if m.IsTerminal {
		return []byte("print(" + strconv.Quote(domain.TerminalMessage) + ")")
	}
	return []byte("from . import " + m.Next)
}

// Files returns every file of the package for req, in write order:
// marker, entry point, then modules by ascending position.
func Files(req domain.Request) []domain.File {
	mods := domain.Modules(req.ChainLength)
	files := make([]domain.File, 0, len(mods)+2)
	files = append(files,
		domain.File{Name: domain.MarkerFileName, Content: Marker()},
		domain.File{Name: domain.EntryFileName, Content: EntryPoint(req)},
	)
	for _, m := range mods {
		files = append(files, domain.File{Name: m.FileName(), Content: Module(m)})
	}
	return files
}
