// pkg/script/config.go
package script

import (
	"encoding/json"
	"fmt"
)

// Config is the per-module configuration, passed unchanged to every unit of
// the module. It is shared between requests and must be treated as
// read-only.
type Config map[string]any

// Decode copies the configuration into dst through encoding/json.
func (c Config) Decode(dst any) error {
	b, err := json.Marshal(map[string]any(c))
	if err != nil {
		return fmt.Errorf("config encode: %w", err)
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("config decode: %w", err)
	}
	return nil
}

func (c Config) String(key string) string {
	switch v := c[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}
