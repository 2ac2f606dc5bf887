package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat_CatalogKey(t *testing.T) {
	got := Format(ModuleMissing, Replaces{"module": "math"})
	assert.Equal(t, "module 'math' could not be found", got)
}

func TestFormat_ScriptMissingUsesBothPlaceholders(t *testing.T) {
	got := Format(ScriptMissing, Replaces{"module": "math", "script": "div"})
	assert.Equal(t, "script 'div' could not be found in module 'math'", got)
}

func TestFormat_UnknownKeyIsLiteral(t *testing.T) {
	assert.Equal(t, "something broke", Format("something broke", nil))
	assert.Equal(t, "hello bob", Format("hello {name}", Replaces{"name": "bob"}))
}

func TestFormat_UnmatchedPlaceholderIsKept(t *testing.T) {
	assert.Equal(t, "a {b} c", Format("a {b} c", Replaces{"x": 1}))
}

func TestFormat_OnlyFirstOccurrenceReplaced(t *testing.T) {
	got := Format("{m} and {m}", Replaces{"m": "x"})
	assert.Equal(t, "x and {m}", got)
}

func TestFormat_NonStringValues(t *testing.T) {
	got := Format(ServerStarted, Replaces{"hostname": "box", "port": 8080})
	assert.Equal(t, "server started on box:8080", got)
}

func TestCatalog_Overrides(t *testing.T) {
	c, err := NewCatalog(map[string]string{
		Error404: "nope",
		"custom": "hi {who}",
	})
	require.NoError(t, err)

	assert.Equal(t, "nope", c.Format(Error404, nil))
	assert.Equal(t, "hi you", c.Format("custom", Replaces{"who": "you"}))
	// untouched keys still come from the builtin catalog
	assert.Equal(t, "module 'x' could not be found", c.Format(ModuleMissing, Replaces{"module": "x"}))
	assert.Equal(t, Default.Len()+1, c.Len())
}

func TestCatalog_NilIsInert(t *testing.T) {
	var c *Catalog
	assert.Equal(t, "error404", c.Format("error404", nil))
}
