package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/decibelcooper/oleaaplot/internal/slurm"
)

func TestFlags(t *testing.T) {
	cmd := newCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-n", "bfield", "-i", "/data", "-c", "a.tcl", "-f"}))

	flags := cmd.Flags()
	name, _ := flags.GetString("name")
	output, _ := flags.GetString("output")
	force, _ := flags.GetBool("force")
	exe, _ := flags.GetString("exe")
	assert.Equal(t, "bfield", name)
	assert.Equal(t, "./", output)
	assert.True(t, force)
	assert.Equal(t, "OLeAA.exe", exe)
}

func TestRunRequiresTaskID(t *testing.T) {
	t.Setenv(slurm.TaskIDEnv, "")
	err := run(context.Background(), slurm.Config{}, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, slurm.ErrNoTaskID)
}

func TestRunSkipsExistingTask(t *testing.T) {
	input := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(input, "3"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(input, "3", "out.root"), nil, 0o644))

	cfg := slurm.Config{
		Name:       "study",
		InputDir:   input,
		OutputDir:  t.TempDir(),
		ConfigFile: "oleaa.tcl",
		Executable: "OLeAA.exe",
	}
	require.NoError(t, os.MkdirAll(cfg.TaskDir(3), 0o755))

	t.Setenv(slurm.TaskIDEnv, "3")
	assert.NoError(t, run(context.Background(), cfg, zaptest.NewLogger(t)))
}
