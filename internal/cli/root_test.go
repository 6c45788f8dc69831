package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const h2YAML = `name: H2-molecule
lattice:
  - [10.0, 0.0, 0.0]
  - [0.0, 10.0, 0.0]
  - [0.0, 0.0, 10.0]
atoms:
  - {species: H, frac: [0.5, 0.5, 0.5]}
  - {species: H, frac: [0.574, 0.5, 0.5]}
`

const testPolicyYAML = `pair_cutoffs:
  H-H: 0.8
`

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// execute runs the command tree with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestScreenCommand_Text(t *testing.T) {
	dir := t.TempDir()
	structure := writeTempFile(t, dir, "h2.yaml", h2YAML)
	pol := writeTempFile(t, dir, "policy.yaml", testPolicyYAML)

	out, err := execute(t, "screen", structure, "--policy", pol)
	require.NoError(t, err, "a failing verdict still exits 0")

	assert.Contains(t, out, "SCREENING REPORT: h2")
	assert.Contains(t, out, "K = 2")
	assert.Contains(t, out, "VERDICT: overall_pass = FAIL")
}

func TestScreenCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	structure := writeTempFile(t, dir, "h2.yaml", h2YAML)
	pol := writeTempFile(t, dir, "policy.yaml", testPolicyYAML)

	out, err := execute(t, "screen", structure, "--policy", pol, "--format", "json")
	require.NoError(t, err)

	var result struct {
		Formula     string `json:"formula"`
		K           int    `json:"K"`
		ParityPass  bool   `json:"parity_pass"`
		EnergyPass  bool   `json:"energy_pass"`
		OverallPass bool   `json:"overall_pass"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "H2", result.Formula)
	assert.Equal(t, 2, result.K)
	assert.False(t, result.ParityPass)
	assert.True(t, result.EnergyPass)
	assert.False(t, result.OverallPass)
}

func TestScreenCommand_ParseErrorExitsCommandError(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "broken.yaml", "lattice:\n  - [10, 0, 0]\n")

	_, err := execute(t, "screen", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestScreenCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "screen", filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestRootCommand_InvalidFormat(t *testing.T) {
	path := writeTempFile(t, t.TempDir(), "h2.yaml", h2YAML)
	_, err := execute(t, "screen", path, "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestRootCommand_InvalidPolicyFile(t *testing.T) {
	dir := t.TempDir()
	structure := writeTempFile(t, dir, "h2.yaml", h2YAML)
	pol := writeTempFile(t, dir, "policy.yaml", "tolerance_factor: -1\n")

	_, err := execute(t, "screen", structure, "--policy", pol)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestBatchCommand_DirectoryCSVAndExport(t *testing.T) {
	dir := t.TempDir()
	structures := filepath.Join(dir, "structures")
	require.NoError(t, os.Mkdir(structures, 0o755))
	writeTempFile(t, structures, "h2.yaml", h2YAML)
	writeTempFile(t, structures, "notes.txt", "skipped: not a structure format")
	pol := writeTempFile(t, dir, "policy.yaml", testPolicyYAML)
	csvPath := filepath.Join(dir, "out.csv")
	dbPath := filepath.Join(dir, "runs.db")

	out, err := execute(t, "batch", structures, "--policy", pol,
		"--csv", csvPath, "--db", dbPath, "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "0/1 structures pass both conditions")

	csvData, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(csvData)), "\n")
	require.Len(t, lines, 2, "header plus one structure; notes.txt is skipped")
	assert.True(t, strings.HasPrefix(lines[0], "name,formula,K"))
	assert.True(t, strings.HasPrefix(lines[1], "h2,H2,2,false"))

	// the persisted run exports back as the same CSV
	exported, err := execute(t, "export", "--db", dbPath)
	require.NoError(t, err)
	assert.Equal(t, string(csvData), exported)
}

func TestBatchCommand_NoStructures(t *testing.T) {
	dir := t.TempDir()
	writeTempFile(t, dir, "notes.txt", "nothing screenable here")

	_, err := execute(t, "batch", dir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestExportCommand_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	// opening creates the schema; exporting finds no runs
	_, err := execute(t, "export", "--db", dbPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no runs")
}

func TestPolicyValidateCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeTempFile(t, dir, "good.yaml", testPolicyYAML)
	bad := writeTempFile(t, dir, "bad.yaml", "energy_threshold_eV: -3\n")

	out, err := execute(t, "policy", "validate", good)
	require.NoError(t, err)
	assert.Contains(t, out, "valid")

	_, err = execute(t, "policy", "validate", bad)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestPolicyShowCommand(t *testing.T) {
	pol := writeTempFile(t, t.TempDir(), "policy.yaml", testPolicyYAML)

	out, err := execute(t, "policy", "show", "--policy", pol)
	require.NoError(t, err)
	assert.Contains(t, out, "energy_threshold_eV: 0.081")
	assert.Contains(t, out, "pair_cutoffs.H-H: 0.800")
}
