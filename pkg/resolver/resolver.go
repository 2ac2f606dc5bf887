// Package resolver turns (module, script) pairs into units and module
// configurations, caching both until Flush.
package resolver

import (
	"fmt"
	"sync"

	hmetrics "github.com/joeydtaylor/minoss/pkg/middleware/metrics"
	"github.com/joeydtaylor/minoss/pkg/script"
	"golang.org/x/sync/singleflight"
)

// DefaultReserved are names the server uses itself and never treats as
// modules.
var DefaultReserved = []string{"config", "log", "metrics", "ping", "src"}

type Resolver struct {
	store    Store
	reserved map[string]struct{}

	// guarded by mu; gen bumps on every Flush
	mu      sync.RWMutex
	gen     uint64
	units   map[string]script.Unit
	configs map[string]script.Config

	group singleflight.Group
}

type Option func(*Resolver)

// WithReserved replaces the reserved module names.
func WithReserved(names ...string) Option {
	return func(r *Resolver) {
		r.reserved = make(map[string]struct{}, len(names))
		for _, n := range names {
			if n != "" {
				r.reserved[n] = struct{}{}
			}
		}
	}
}

func New(store Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:   store,
		units:   map[string]script.Unit{},
		configs: map[string]script.Config{},
	}
	WithReserved(DefaultReserved...)(r)
	for _, o := range opts {
		o(r)
	}
	return r
}

// Store returns the backing store.
func (r *Resolver) Store() Store { return r.store }

// Reserved reports whether module is a reserved name.
func (r *Resolver) Reserved(module string) bool {
	_, ok := r.reserved[module]
	return ok
}

// Resolve returns the unit and the module configuration for one request.
func (r *Resolver) Resolve(module, name string) (script.Unit, script.Config, error) {
	u, err := r.Script(module, name)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := r.Config(module)
	if err != nil {
		return nil, nil, err
	}
	return u, cfg, nil
}

// Script resolves module/name to a unit.
func (r *Resolver) Script(module, name string) (script.Unit, error) {
	if r.Reserved(module) {
		return nil, &Error{Kind: KindModuleReserved, Module: module, Script: name}
	}
	key := module + "/" + name

	r.mu.RLock()
	u, ok := r.units[key]
	gen := r.gen
	r.mu.RUnlock()
	if ok {
		hmetrics.ObserveResolverLoad("unit", "hit")
		return u, nil
	}

	v, err, _ := r.group.Do(fmt.Sprintf("u|%d|%s", gen, key), func() (any, error) {
		if err := r.requireModule(module, name); err != nil {
			return nil, err
		}
		u, err := r.store.LoadUnit(module, name)
		if err != nil {
			if k, ok := KindOf(err); ok && k == KindScriptMissing {
				return nil, &Error{Kind: KindScriptMissing, Module: module, Script: name}
			}
			return nil, fmt.Errorf("load %s: %w", key, err)
		}
		r.mu.Lock()
		if r.gen == gen {
			r.units[key] = u
		}
		r.mu.Unlock()
		return u, nil
	})
	if err != nil {
		hmetrics.ObserveResolverLoad("unit", "error")
		return nil, err
	}
	hmetrics.ObserveResolverLoad("unit", "miss")
	return v.(script.Unit), nil
}

// Config resolves the configuration of module.
func (r *Resolver) Config(module string) (script.Config, error) {
	if r.Reserved(module) {
		return nil, &Error{Kind: KindModuleReserved, Module: module}
	}

	r.mu.RLock()
	cfg, ok := r.configs[module]
	gen := r.gen
	r.mu.RUnlock()
	if ok {
		hmetrics.ObserveResolverLoad("config", "hit")
		return cfg, nil
	}

	v, err, _ := r.group.Do(fmt.Sprintf("c|%d|%s", gen, module), func() (any, error) {
		if err := r.requireModule(module, ""); err != nil {
			return nil, err
		}
		cfg, err := r.store.LoadConfig(module)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", module, err)
		}
		if cfg == nil {
			cfg = script.Config{}
		}
		r.mu.Lock()
		if r.gen == gen {
			r.configs[module] = cfg
		}
		r.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		hmetrics.ObserveResolverLoad("config", "error")
		return nil, err
	}
	hmetrics.ObserveResolverLoad("config", "miss")
	return v.(script.Config), nil
}

func (r *Resolver) requireModule(module, name string) error {
	ok, err := r.store.HasModule(module)
	if err != nil {
		return fmt.Errorf("lookup module %s: %w", module, err)
	}
	if !ok {
		return &Error{Kind: KindModuleMissing, Module: module, Script: name}
	}
	return nil
}

// Flush drops every cached unit and configuration. Units already handed out
// stay valid; later resolutions reload from the store.
func (r *Resolver) Flush() {
	r.mu.Lock()
	r.gen++
	r.units = map[string]script.Unit{}
	r.configs = map[string]script.Config{}
	r.mu.Unlock()
	hmetrics.ObserveResolverFlush()
}

// Cached reports how many units and configurations are cached.
func (r *Resolver) Cached() (units, configs int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.units), len(r.configs)
}
