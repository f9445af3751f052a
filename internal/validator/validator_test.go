package validator

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/chaingen/internal/generator"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, length int) string {
	t.Helper()
	res, err := generator.New(t.TempDir()).Generate(context.Background(), domain.Request{ProjectName: "demo", ChainLength: length, RecursionLimit: 100})
	require.NoError(t, err)
	return res.PackagePath
}

func TestValidatePackage(t *testing.T) {
	// Scenario A: Valid chain
	// main -> mod_001 -> mod_002 -> mod_003 (end)
	pkg := generate(t, 3)
	report, err := ValidatePackage(pkg, "demo")
	require.NoError(t, err)
	assert.Equal(t, []string{"mod_001", "mod_002", "mod_003"}, report.Reached)
	assert.Equal(t, "mod_003", report.Terminal)

	// Scenario B: Wrong project name in entry point
	_, err = ValidatePackage(pkg, "other")
	assert.ErrorContains(t, err, "does not import from package 'other'")
}

func TestValidatePackage_EmptyChain(t *testing.T) {
	pkg := generate(t, 0)
	_, err := ValidatePackage(pkg, "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing module: 'mod_001'")
}

func TestValidatePackage_BrokenLink(t *testing.T) {
	pkg := generate(t, 4)
	require.NoError(t, os.Remove(filepath.Join(pkg, "mod_003.py")))

	report, err := ValidatePackage(pkg, "demo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing module: 'mod_003'")
	assert.Contains(t, err.Error(), "Unreachable module: 'mod_004'")
	assert.Equal(t, []string{"mod_001", "mod_002"}, report.Reached)
	assert.Empty(t, report.Terminal)
}

func TestValidatePackage_StaleLeftovers(t *testing.T) {
	pkg := generate(t, 2)
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "mod_007.py"), []byte("from . import mod_008"), 0644))

	_, err := ValidatePackage(pkg, "demo")
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "found 1 errors"))
	assert.Contains(t, err.Error(), "Unreachable module: 'mod_007'")
}

func TestValidatePackage_DeadEnd(t *testing.T) {
	pkg := generate(t, 2)
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "mod_002.py"), []byte("pass"), 0644))

	_, err := ValidatePackage(pkg, "demo")
	assert.ErrorContains(t, err, "Module 'mod_002' neither imports a successor nor ends the chain")
}

func TestValidatePackage_Cycle(t *testing.T) {
	pkg := generate(t, 2)
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "mod_002.py"), []byte("from . import mod_001"), 0644))

	_, err := ValidatePackage(pkg, "demo")
	assert.ErrorContains(t, err, "import cycle at 'mod_001'")
}

func TestValidatePackage_NotAPackage(t *testing.T) {
	_, err := ValidatePackage(t.TempDir(), "demo")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
