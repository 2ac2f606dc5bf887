// pkg/resolver/store.go
package resolver

import (
	"errors"
	"sort"

	"github.com/joeydtaylor/minoss/pkg/script"
)

// Store is a backing store of modules. LoadUnit returns ErrScriptMissing when
// the module exists but the script does not.
type Store interface {
	HasModule(module string) (bool, error)
	LoadUnit(module, name string) (script.Unit, error)
	LoadConfig(module string) (script.Config, error)
	Modules() ([]ModuleInfo, error)
}

// ModuleInfo describes a module known to a store.
type ModuleInfo struct {
	Name    string
	Scripts []string
}

// Chain consults stores in order. A unit comes from the first store that has
// it; configurations are merged with earlier stores winning per key.
type Chain []Store

func (c Chain) HasModule(module string) (bool, error) {
	for _, s := range c {
		ok, err := s.HasModule(module)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (c Chain) LoadUnit(module, name string) (script.Unit, error) {
	for _, s := range c {
		ok, err := s.HasModule(module)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		u, err := s.LoadUnit(module, name)
		if errors.Is(err, ErrScriptMissing) {
			continue
		}
		return u, err
	}
	return nil, ErrScriptMissing
}

func (c Chain) LoadConfig(module string) (script.Config, error) {
	out := script.Config{}
	for i := len(c) - 1; i >= 0; i-- {
		ok, err := c[i].HasModule(module)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		cfg, err := c[i].LoadConfig(module)
		if err != nil {
			return nil, err
		}
		for k, v := range cfg {
			out[k] = v
		}
	}
	return out, nil
}

func (c Chain) Modules() ([]ModuleInfo, error) {
	byName := map[string]map[string]struct{}{}
	for _, s := range c {
		mods, err := s.Modules()
		if err != nil {
			return nil, err
		}
		for _, m := range mods {
			set, ok := byName[m.Name]
			if !ok {
				set = map[string]struct{}{}
				byName[m.Name] = set
			}
			for _, sc := range m.Scripts {
				set[sc] = struct{}{}
			}
		}
	}
	out := make([]ModuleInfo, 0, len(byName))
	for name, set := range byName {
		out = append(out, ModuleInfo{Name: name, Scripts: sortedKeys(set)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
