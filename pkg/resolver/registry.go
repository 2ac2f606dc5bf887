// pkg/resolver/registry.go
package resolver

import (
	"sort"
	"sync"

	"github.com/joeydtaylor/minoss/pkg/script"
)

// Registry is an in-process Store of Go units.
type Registry struct {
	mu      sync.RWMutex
	units   map[string]map[string]script.Unit
	configs map[string]script.Config
}

func NewRegistry() *Registry {
	return &Registry{
		units:   map[string]map[string]script.Unit{},
		configs: map[string]script.Config{},
	}
}

// Register makes u available as module/name. It panics on empty names, a nil
// unit or a duplicate registration.
func (r *Registry) Register(module, name string, u script.Unit) {
	if module == "" || name == "" || u == nil {
		panic("resolver: module, name, unit required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.units[module]
	if !ok {
		m = map[string]script.Unit{}
		r.units[module] = m
	}
	if _, dup := m[name]; dup {
		panic("resolver: duplicate unit " + module + "/" + name)
	}
	m[name] = u
}

// RegisterConfig sets the configuration for module, replacing any previous one.
func (r *Registry) RegisterConfig(module string, cfg script.Config) {
	r.mu.Lock()
	r.configs[module] = cfg
	r.mu.Unlock()
}

func (r *Registry) HasModule(module string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, u := r.units[module]
	_, c := r.configs[module]
	return u || c, nil
}

func (r *Registry) LoadUnit(module, name string) (script.Unit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.units[module][name]
	if !ok {
		return nil, ErrScriptMissing
	}
	return u, nil
}

func (r *Registry) LoadConfig(module string) (script.Config, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if cfg, ok := r.configs[module]; ok && cfg != nil {
		return cfg, nil
	}
	return script.Config{}, nil
}

func (r *Registry) Modules() ([]ModuleInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := map[string]struct{}{}
	for m := range r.units {
		names[m] = struct{}{}
	}
	for m := range r.configs {
		names[m] = struct{}{}
	}
	out := make([]ModuleInfo, 0, len(names))
	for _, m := range sortedKeys(names) {
		scripts := make([]string, 0, len(r.units[m]))
		for s := range r.units[m] {
			scripts = append(scripts, s)
		}
		sort.Strings(scripts)
		out = append(out, ModuleInfo{Name: m, Scripts: scripts})
	}
	return out, nil
}

// Default is the process-wide registry used by Register.
var Default = NewRegistry()

// Register adds u to the Default registry.
func Register(module, name string, u script.Unit) {
	Default.Register(module, name, u)
}

// RegisterConfig sets a module configuration on the Default registry.
func RegisterConfig(module string, cfg script.Config) {
	Default.RegisterConfig(module, cfg)
}
