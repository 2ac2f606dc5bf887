package main

import (
	"context"
	"runtime"

	"github.com/joeydtaylor/minoss/pkg/resolver"
	"github.com/joeydtaylor/minoss/pkg/script"
)

// Units compiled into the binary. They sit ahead of the module directory.
func init() {
	resolver.RegisterConfig("sys", script.Config{"name": "minoss"})
	resolver.Register("sys", "info", script.Sync(func(_ context.Context, cfg script.Config, _ script.Request) (any, error) {
		return map[string]any{
			"success": true,
			"name":    cfg.String("name"),
			"version": version,
			"go":      runtime.Version(),
		}, nil
	}))
}
