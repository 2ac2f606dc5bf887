// pkg/resolver/dir.go
package resolver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/joeydtaylor/minoss/pkg/script"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// configFiles are tried in order; the first one found is the module config.
var configFiles = []string{"config.toml", "config.yaml", "config.yml", "config.json"}

// DirStore serves modules from a directory tree:
//
//	<root>/<module>/config.toml      module configuration (optional)
//	<root>/<module>/<script>[.ext]   executable script unit
type DirStore struct {
	root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{root: root}
}

func (s *DirStore) Root() string { return s.root }

func (s *DirStore) HasModule(module string) (bool, error) {
	if !safeName(module) {
		return false, nil
	}
	fi, err := os.Stat(filepath.Join(s.root, module))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return fi.IsDir(), nil
}

func (s *DirStore) LoadUnit(module, name string) (script.Unit, error) {
	if !safeName(name) || isConfigFile(name) {
		return nil, ErrScriptMissing
	}
	entries, err := os.ReadDir(filepath.Join(s.root, module))
	if err != nil {
		return nil, fmt.Errorf("read module %q: %w", module, err)
	}
	for _, e := range entries {
		if e.IsDir() || isConfigFile(e.Name()) || scriptName(e.Name()) != name {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			return nil, err
		}
		if !executable(fi) {
			return nil, fmt.Errorf("script %s/%s is not executable", module, e.Name())
		}
		return execUnit(filepath.Join(s.root, module, e.Name()), module, name), nil
	}
	return nil, ErrScriptMissing
}

func (s *DirStore) LoadConfig(module string) (script.Config, error) {
	for _, name := range configFiles {
		p := filepath.Join(s.root, module, name)
		b, err := os.ReadFile(p)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		cfg := script.Config{}
		switch filepath.Ext(name) {
		case ".toml":
			err = toml.Unmarshal(b, &cfg)
		case ".yaml", ".yml":
			err = yaml.Unmarshal(b, &cfg)
		default:
			err = json.Unmarshal(b, &cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", p, err)
		}
		return cfg, nil
	}
	return script.Config{}, nil
}

func (s *DirStore) Modules() ([]ModuleInfo, error) {
	entries, err := os.ReadDir(s.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []ModuleInfo
	for _, e := range entries {
		if !e.IsDir() || !safeName(e.Name()) {
			continue
		}
		files, err := os.ReadDir(filepath.Join(s.root, e.Name()))
		if err != nil {
			return nil, err
		}
		set := map[string]struct{}{}
		for _, f := range files {
			if f.IsDir() || isConfigFile(f.Name()) {
				continue
			}
			if fi, err := f.Info(); err == nil && executable(fi) {
				set[scriptName(f.Name())] = struct{}{}
			}
		}
		out = append(out, ModuleInfo{Name: e.Name(), Scripts: sortedKeys(set)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func scriptName(file string) string {
	return strings.TrimSuffix(file, filepath.Ext(file))
}

func isConfigFile(name string) bool {
	for _, c := range configFiles {
		if name == c {
			return true
		}
	}
	return scriptName(name) == "config"
}

// safeName keeps lookups inside the module root.
func safeName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\.`)
}

func executable(fi fs.FileInfo) bool {
	if runtime.GOOS == "windows" {
		return fi.Mode().IsRegular()
	}
	return fi.Mode().IsRegular() && fi.Mode().Perm()&0o111 != 0
}
