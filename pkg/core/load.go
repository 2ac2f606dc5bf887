// pkg/core/load.go
package core

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	manifest "github.com/joeydtaylor/minoss/pkg/manifest"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the manifest at path (YAML for .yaml/.yml, TOML
// otherwise), applies environment overrides and validates it. A missing
// file yields the defaults.
func LoadConfig(path string) (manifest.Config, error) {
	var cfg manifest.Config
	b, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = manifest.Default()
	case err != nil:
		return manifest.Config{}, err
	default:
		if cfg, err = decode(path, b); err != nil {
			return manifest.Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	ApplyEnv(&cfg)
	if err := cfg.Validate(); err != nil {
		return manifest.Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decode(path string, b []byte) (manifest.Config, error) {
	var cfg manifest.Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; treat it as an empty manifest.
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(b)) > 0 {
			return manifest.Config{}, err
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return manifest.Config{}, err
		}
	}
	return cfg, nil
}
