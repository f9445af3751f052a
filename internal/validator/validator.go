package validator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aretw0/chaingen/pkg/domain"
)

var (
	// Matches "from <pkg> import <mod>" and "from . import <mod>".
	importLine = regexp.MustCompile(`(?m)^from\s+(\S+)\s+import\s+(\w+)\s*$`)
	terminal   = "print(" + strconv.Quote(domain.TerminalMessage) + ")"
)

// Report summarizes a crawl of a generated package.
type Report struct {
	// Reached lists chain modules reachable from the entry point, in import order.
	Reached []string
	// Terminal is the module printing the completion message, if reached.
	Terminal string
}

// ValidatePackage crawls the package at pkgPath starting from its entry point and
// reports broken imports, modules that end the chain without the completion message,
// and module files that nothing imports (e.g. leftovers from a longer chain).
func ValidatePackage(pkgPath, projectName string) (*Report, error) {
	if _, err := os.Stat(filepath.Join(pkgPath, domain.MarkerFileName)); err != nil {
		return nil, fmt.Errorf("not a package: %w", err)
	}

	entry, err := os.ReadFile(filepath.Join(pkgPath, domain.EntryFileName))
	if err != nil {
		return nil, fmt.Errorf("entry point not readable: %w", err)
	}

	report := &Report{}
	var problems []string

	current, ok := nextImport(string(entry), projectName)
	if !ok {
		problems = append(problems, fmt.Sprintf("%s does not import from package '%s'", domain.EntryFileName, projectName))
	}
	visited := make(map[string]bool)

	for ok {
		if visited[current] {
			problems = append(problems, fmt.Sprintf("import cycle at '%s'", current))
			break
		}
		visited[current] = true

		data, err := os.ReadFile(filepath.Join(pkgPath, current+domain.ModuleExt))
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				problems = append(problems, fmt.Sprintf("Missing module: '%s'", current))
			} else {
				problems = append(problems, fmt.Sprintf("Unreadable module '%s': %v", current, err))
			}
			break
		}
		report.Reached = append(report.Reached, current)

		content := string(data)
		if strings.TrimSpace(content) == terminal {
			report.Terminal = current
			break
		}
		current, ok = nextImport(content, ".")
		if !ok {
			problems = append(problems, fmt.Sprintf("Module '%s' neither imports a successor nor ends the chain", report.Reached[len(report.Reached)-1]))
		}
	}

	orphans, err := unreachable(pkgPath, visited)
	if err != nil {
		return report, err
	}
	for _, name := range orphans {
		problems = append(problems, fmt.Sprintf("Unreachable module: '%s'", name))
	}

	if len(problems) > 0 {
		return report, fmt.Errorf("found %d errors:\n- %s", len(problems), strings.Join(problems, "\n- "))
	}
	return report, nil
}

// nextImport returns the first module imported from the given package.
func nextImport(content, from string) (string, bool) {
	for _, m := range importLine.FindAllStringSubmatch(content, -1) {
		if m[1] == from {
			return m[2], true
		}
	}
	return "", false
}

func unreachable(pkgPath string, visited map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(pkgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list package: %w", err)
	}
	var out []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, domain.ModulePrefix) || filepath.Ext(name) != domain.ModuleExt {
			continue
		}
		mod := strings.TrimSuffix(name, domain.ModuleExt)
		if !visited[mod] {
			out = append(out, mod)
		}
	}
	sort.Strings(out)
	return out, nil
}
