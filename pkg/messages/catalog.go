// pkg/messages/catalog.go
package messages

import (
	_ "embed"
	"fmt"

	toml "github.com/pelletier/go-toml/v2"
)

// Keys used by the server itself.
const (
	Error404       = "error404"
	ModuleReserved = "moduleReserved"
	ModuleMissing  = "moduleMissing"
	ScriptMissing  = "scriptMissing"
	ServerStarted  = "serverStarted"
	ServerPortBusy = "serverPortBusy"
	ServerStopped  = "serverStopped"
)

//go:embed messages.toml
var builtin []byte

// Catalog maps symbolic keys to message templates. It is never mutated after
// construction, so it is safe for concurrent use.
type Catalog struct {
	templates map[string]string
}

// NewCatalog returns the built-in catalog with overrides applied on top.
func NewCatalog(overrides map[string]string) (*Catalog, error) {
	base := map[string]string{}
	if err := toml.Unmarshal(builtin, &base); err != nil {
		return nil, fmt.Errorf("messages: builtin catalog: %w", err)
	}
	for k, v := range overrides {
		base[k] = v
	}
	return &Catalog{templates: base}, nil
}

// MustCatalog is NewCatalog for package-level defaults and tests.
func MustCatalog(overrides map[string]string) *Catalog {
	c, err := NewCatalog(overrides)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns the template for key.
func (c *Catalog) Lookup(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	t, ok := c.templates[key]
	return t, ok
}

// Len returns the number of templates held.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.templates)
}

// Default is the built-in catalog without overrides.
var Default = MustCatalog(nil)
