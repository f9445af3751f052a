package render

import (
	"bytes"
	"text/template"

	"github.com/aretw0/chaingen/pkg/domain"
)

// entryTemplate is the main.py of a generated package.
// The recursion limit is baked into the script; it only takes effect in the interpreter that runs it.
var entryTemplate = template.Must(template.New(domain.EntryFileName).Parse(`from pathlib import Path
import sys

# Add the src directory to the Python path so we can import this package.
PATH_TO_SRC = Path(__file__).parent.parent
sys.path.append(str(PATH_TO_SRC))

sys.setrecursionlimit({{.RecursionLimit}})

print(f"Importing a chain of {{.ChainLength}} modules with a recursion limit of {{.RecursionLimit}}...")

# Begin the chain of imports.
from {{.ProjectName}} import {{.FirstModule}}
`))

type entryData struct {
	domain.Request
	FirstModule string
}

// EntryPoint renders the entry script for req.
// It always imports the first module, even when the chain is empty.
func EntryPoint(req domain.Request) []byte {
	var buf bytes.Buffer
	// Execute only fails on template/data mismatch, which entryData rules out.
	if err := entryTemplate.Execute(&buf, entryData{Request: req, FirstModule: domain.FirstModuleName}); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Marker renders the package marker file, which is always empty.
func Marker() []byte {
	return []byte{}
}
