package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/chaingen/pkg/domain"
)

const entryNodeID = "main"

// GenerateMermaid produces a Mermaid flowchart of the import chain described by req.
// It applies semantic styling:
// - Entry point: ((Circle))
// - Terminal module: [[Subroutine]]
// - Default: [Rectangle]
// A chain with no modules still shows the entry importing mod_001, styled as missing.
func GenerateMermaid(req domain.Request) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", entryNodeID, domain.EntryFileName))
	sb.WriteString(fmt.Sprintf("    %s --> %s\n", entryNodeID, domain.FirstModuleName))

	mods := domain.Modules(req.ChainLength)
	for _, m := range mods {
		opener, closer := "[", "]"
		if m.IsTerminal {
			opener, closer = "[[", "]]"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", m.Name, opener, m.FileName(), closer))
		if !m.IsTerminal {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", m.Name, m.Next))
		}
	}

	if len(mods) == 0 {
		sb.WriteString("\n    %% Missing modules\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef missing fill:#ffebee,stroke:#b71c1c,stroke-dasharray:4 2,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    %s[\"%s (missing)\"]\n", domain.FirstModuleName, domain.FirstModuleName))
		sb.WriteString(fmt.Sprintf("    class %s missing;\n", domain.FirstModuleName))
	}

	return sb.String()
}
