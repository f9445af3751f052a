package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	httpAdapter "github.com/aretw0/chaingen/internal/adapters/http"
	"github.com/aretw0/chaingen/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI in an empty working directory so no stray config is picked up.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerateCommand(t *testing.T) {
	src := t.TempDir()
	out, err := run(t, "generate", "--src", src, "--project-name", "demo", "--chain-length", "12", "--recursion-limit", "300")
	require.NoError(t, err)

	assert.Contains(t, out, "Writing 1/12.\n")
	assert.Contains(t, out, "Writing 11/12.\n")
	assert.NotContains(t, out, "Writing 2/12.")
	assert.Contains(t, out, "Generated demo project at "+filepath.Join(src, "demo")+".")
	assert.Contains(t, out, "uv run "+filepath.ToSlash(filepath.Join(src, "demo", "main.py")))

	entries, err := os.ReadDir(filepath.Join(src, "demo"))
	require.NoError(t, err)
	assert.Len(t, entries, 14)
}

func TestRootDefaultsToGenerate(t *testing.T) {
	src := t.TempDir()
	_, err := run(t, "--src", src, "--chain-length", "3")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(src, "demo", "main.py"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "sys.setrecursionlimit(1000)")
	assert.FileExists(t, filepath.Join(src, "demo", "mod_003.py"))
}

func TestGenerateCommand_EmptyChainWarns(t *testing.T) {
	src := t.TempDir()
	out, err := run(t, "generate", "--src", src, "--chain-length", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Warning: chain length is 0")
	assert.NoFileExists(t, filepath.Join(src, "demo", "mod_001.py"))
}

func TestGenerateCommand_StrictRejects(t *testing.T) {
	_, err := run(t, "generate", "--src", t.TempDir(), "--chain-length", "0", "--policy", "strict")
	assert.ErrorIs(t, err, domain.ErrChainTooShort)

	_, err = run(t, "generate", "--src", t.TempDir(), "--policy", "sloppy")
	assert.Error(t, err)
}

func TestGenerateCommand_MetricsFile(t *testing.T) {
	src := t.TempDir()
	prom := filepath.Join(t.TempDir(), "chaingen.prom")
	_, err := run(t, "generate", "--src", src, "--chain-length", "5", "--metrics-file", prom)
	require.NoError(t, err)

	data, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "chaingen_modules_written_total 5")
}

func TestGenerateCommand_RedisLock(t *testing.T) {
	mr := miniredis.RunT(t)
	src := t.TempDir()
	_, err := run(t, "generate", "--src", src, "--chain-length", "2", "--redis", mr.Addr())
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(src, "demo", "mod_002.py"))
	assert.Empty(t, mr.Keys(), "lock released after run")
}

func TestGenerateCommand_ConfigFile(t *testing.T) {
	src := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "chaingen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("project_name: fromfile\nchain_length: 4\nsrc_dir: "+src+"\n"), 0644))

	// Flags beat the file.
	_, err := run(t, "generate", "--config", cfgPath, "--chain-length", "2")
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(src, "fromfile"))
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestPlanCommand(t *testing.T) {
	src := t.TempDir()

	out, err := run(t, "plan", "--src", src, "--chain-length", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "# Plan for `demo`")
	assert.NoDirExists(t, filepath.Join(src, "demo"))

	out, err = run(t, "plan", "--chain-length", "2", "--format", "mermaid")
	require.NoError(t, err)
	assert.Contains(t, out, "mod_001 --> mod_002")

	out, err = run(t, "plan", "--chain-length", "2", "-f", "json")
	require.NoError(t, err)
	var resp httpAdapter.PlanResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Len(t, resp.Files, 4)

	_, err = run(t, "plan", "--format", "yaml")
	assert.Error(t, err)
}

func TestVerifyCommand(t *testing.T) {
	src := t.TempDir()
	_, err := run(t, "generate", "--src", src, "--chain-length", "5")
	require.NoError(t, err)

	out, err := run(t, "verify", "--src", src)
	require.NoError(t, err)
	assert.Contains(t, out, "5 modules, chain ends at mod_005")

	require.NoError(t, os.Remove(filepath.Join(src, "demo", "mod_002.py")))
	_, err = run(t, "verify", "--src", src)
	assert.ErrorContains(t, err, "Missing module: 'mod_002'")
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "chaingen version ")
}
