package resolver

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/joeydtaylor/minoss/pkg/envelope"
	"github.com/joeydtaylor/minoss/pkg/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
}

func skipWithoutShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("exec units need /bin/sh")
	}
}

type captured struct {
	ok, fail []any
}

func (c *captured) Success(v any) { c.ok = append(c.ok, v) }
func (c *captured) Fail(v any)    { c.fail = append(c.fail, v) }

func newModuleDir(t *testing.T) (string, *DirStore) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "demo"), 0o755))
	return root, NewDirStore(root)
}

func TestDirStore_Lookup(t *testing.T) {
	skipWithoutShell(t)
	root, s := newModuleDir(t)
	writeScript(t, filepath.Join(root, "demo", "echo.sh"), "cat")
	require.NoError(t, os.WriteFile(filepath.Join(root, "demo", "notes.txt"), []byte("x"), 0o644))

	ok, err := s.HasModule("demo")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.HasModule("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, _ = s.HasModule("..")
	assert.False(t, ok)

	_, err = s.LoadUnit("demo", "echo")
	assert.NoError(t, err)

	_, err = s.LoadUnit("demo", "other")
	assert.ErrorIs(t, err, ErrScriptMissing)

	_, err = s.LoadUnit("demo", "config")
	assert.ErrorIs(t, err, ErrScriptMissing)

	_, err = s.LoadUnit("demo", "notes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not executable")

	mods, err := s.Modules()
	require.NoError(t, err)
	assert.Equal(t, []ModuleInfo{{Name: "demo", Scripts: []string{"echo"}}}, mods)
}

func TestDirStore_ConfigFormats(t *testing.T) {
	cases := map[string]string{
		"config.toml": "greeting = \"hi\"\n",
		"config.yaml": "greeting: hi\n",
		"config.json": `{"greeting": "hi"}`,
	}
	for file, body := range cases {
		t.Run(file, func(t *testing.T) {
			root, s := newModuleDir(t)
			require.NoError(t, os.WriteFile(filepath.Join(root, "demo", file), []byte(body), 0o644))

			cfg, err := s.LoadConfig("demo")
			require.NoError(t, err)
			assert.Equal(t, "hi", cfg.String("greeting"))
		})
	}
}

func TestDirStore_ConfigAbsentIsEmpty(t *testing.T) {
	_, s := newModuleDir(t)
	cfg, err := s.LoadConfig("demo")
	require.NoError(t, err)
	assert.Empty(t, cfg)
}

func TestDirStore_ConfigInvalid(t *testing.T) {
	root, s := newModuleDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "demo", "config.toml"), []byte("= broken"), 0o644))
	_, err := s.LoadConfig("demo")
	assert.Error(t, err)
}

func runUnit(t *testing.T, s *DirStore, name string, cfg script.Config, req script.Request) *captured {
	t.Helper()
	u, err := s.LoadUnit("demo", name)
	require.NoError(t, err)
	c := &captured{}
	u(context.Background(), cfg, req, c)
	return c
}

func TestExecUnit_SuccessJSON(t *testing.T) {
	skipWithoutShell(t)
	root, s := newModuleDir(t)
	writeScript(t, filepath.Join(root, "demo", "sum"), `echo '{"success": true, "value": 42}'`)

	c := runUnit(t, s, "sum", nil, script.Request{"output": "json"})
	require.Len(t, c.ok, 1)
	assert.Empty(t, c.fail)

	env := envelope.Normalize(envelope.ResultOf(c.ok[0]))
	assert.True(t, env.Success())
	assert.Equal(t, []string{"success", "value"}, env.Fields().Keys())
}

func TestExecUnit_EmptyOutputIsTrue(t *testing.T) {
	skipWithoutShell(t)
	root, s := newModuleDir(t)
	writeScript(t, filepath.Join(root, "demo", "quiet"), "exit 0")

	c := runUnit(t, s, "quiet", nil, nil)
	assert.Equal(t, []any{true}, c.ok)
}

func TestExecUnit_ReceivesConfigAndRequest(t *testing.T) {
	skipWithoutShell(t)
	root, s := newModuleDir(t)
	writeScript(t, filepath.Join(root, "demo", "echo"), "cat")

	c := runUnit(t, s, "echo", script.Config{"k": "v"}, script.Request{"module": "demo", "a": "1"})
	require.Len(t, c.ok, 1)
	m, ok := c.ok[0].(*envelope.Map)
	require.True(t, ok)
	assert.Equal(t, []string{"config", "request"}, m.Keys())
	req, _ := m.Get("request")
	a, _ := req.(*envelope.Map).Get("a")
	assert.Equal(t, "1", a)
}

func TestExecUnit_Failures(t *testing.T) {
	skipWithoutShell(t)
	root, s := newModuleDir(t)
	writeScript(t, filepath.Join(root, "demo", "stderr"), "echo 'bad input' >&2; exit 3")
	writeScript(t, filepath.Join(root, "demo", "jsonfail"), `echo '{"error": "nope"}'; exit 1`)
	writeScript(t, filepath.Join(root, "demo", "silent"), "exit 2")
	writeScript(t, filepath.Join(root, "demo", "garbage"), "echo not-json")

	assert.Equal(t, []any{"bad input"}, runUnit(t, s, "stderr", nil, nil).fail)

	c := runUnit(t, s, "jsonfail", nil, nil)
	require.Len(t, c.fail, 1)
	_, isMap := c.fail[0].(*envelope.Map)
	assert.True(t, isMap)

	c = runUnit(t, s, "silent", nil, nil)
	require.Len(t, c.fail, 1)
	assert.Contains(t, c.fail[0], "exit status 2")

	c = runUnit(t, s, "garbage", nil, nil)
	require.Len(t, c.fail, 1)
	assert.Contains(t, c.fail[0], "invalid output from unit")
}
