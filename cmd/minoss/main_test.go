package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestVersion(t *testing.T) {
	assert.Contains(t, run(t, "version"), "minoss dev")
}

func TestModules_ListsInprocAndDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "math"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "math", "add.sh"), []byte("#!/bin/sh\necho true\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "math", "config.toml"), []byte("precision = 2\n"), 0o644))

	out := run(t, "modules", "--config", filepath.Join(t.TempDir(), "absent.toml"), "--modules", root)
	assert.Contains(t, out, "math: add")
	assert.Contains(t, out, "sys: info")
	assert.NotContains(t, out, "config")
}
