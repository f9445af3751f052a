// Package scaffold owns the on-disk layout of a generated package.
package scaffold

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/chaingen/internal/logging"
	"github.com/aretw0/chaingen/internal/render"
	"github.com/aretw0/chaingen/pkg/domain"
)

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Scaffolder resets package directories under SrcDir and writes their files.
// Everything under SrcDir/<project> is owned by the generator: Scaffold deletes it without looking.
type Scaffolder struct {
	SrcDir string
	logger *slog.Logger
}

// New creates a Scaffolder rooted at srcDir.
// If srcDir is empty, it defaults to "src".
func New(srcDir string, logger *slog.Logger) *Scaffolder {
	if srcDir == "" {
		srcDir = "src"
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scaffolder{SrcDir: srcDir, logger: logger}
}

// PackagePath returns the directory a project is generated into.
func (s *Scaffolder) PackagePath(projectName string) string {
	return filepath.Join(s.SrcDir, projectName)
}

// Scaffold removes any previous package for req, recreates the directory and writes
// the marker and entry files. It returns the package path.
//
// Removal and creation are separate steps; a failure in between leaves the path
// absent, which the next run repairs.
func (s *Scaffolder) Scaffold(req domain.Request) (string, error) {
	if err := os.MkdirAll(s.SrcDir, dirPerm); err != nil {
		return "", fmt.Errorf("failed to ensure source directory %s: %w", s.SrcDir, err)
	}

	pkgPath := s.PackagePath(req.ProjectName)

	// RemoveAll reports nil when the path does not exist.
	if err := os.RemoveAll(pkgPath); err != nil {
		return "", fmt.Errorf("failed to remove previous package %s: %w", pkgPath, err)
	}
	s.logger.Debug("package removed", "path", pkgPath)

	if err := os.Mkdir(pkgPath, dirPerm); err != nil {
		return "", fmt.Errorf("failed to create package directory %s: %w", pkgPath, err)
	}

	if err := writeFile(pkgPath, domain.MarkerFileName, render.Marker()); err != nil {
		return "", err
	}
	if err := writeFile(pkgPath, domain.EntryFileName, render.EntryPoint(req)); err != nil {
		return "", err
	}

	s.logger.Debug("package scaffolded", "path", pkgPath, "project", req.ProjectName)
	return pkgPath, nil
}

// WriteModule persists a single chain module into pkgPath and returns the file path.
func (s *Scaffolder) WriteModule(pkgPath string, m domain.Module) (string, error) {
	if err := writeFile(pkgPath, m.FileName(), render.Module(m)); err != nil {
		return "", err
	}
	return filepath.Join(pkgPath, m.FileName()), nil
}

func writeFile(dir, name string, content []byte) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, filePerm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
