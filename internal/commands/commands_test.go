package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarbarkade/INNControl-MA/internal/commands"
	"github.com/sagarbarkade/INNControl-MA/internal/config"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inncontrol.yaml")

	out, err := runCommand(t, "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestInit_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inncontrol.yaml")
	require.NoError(t, os.WriteFile(path, []byte("date_format: dd-mm-yyyy\n"), 0o644))

	_, err := runCommand(t, "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInit_ForceOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inncontrol.yaml")
	require.NoError(t, os.WriteFile(path, []byte("stale: true\n"), 0o644))

	_, err := runCommand(t, "init", path, "--force")
	require.NoError(t, err)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestProcess_MissingWorkbook(t *testing.T) {
	dir := t.TempDir()
	_, err := runCommand(t,
		"process", filepath.Join(dir, "missing.xlsx"),
		"--output", filepath.Join(dir, "out.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading workbook")
}
