package core

import (
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/minoss/pkg/dispatch"
	manifest "github.com/joeydtaylor/minoss/pkg/manifest"
	"github.com/joeydtaylor/minoss/pkg/messages"
	hmetrics "github.com/joeydtaylor/minoss/pkg/middleware/metrics"
	"github.com/joeydtaylor/minoss/pkg/respond"
)

// Built-in dispatch routes. Names are lowercase letters only.
const (
	ScriptRoute       = "/{module:[a-z]+}/{script:[a-z]+}"
	OutputScriptRoute = "/{output:(?:json|xml|text)}/{module:[a-z]+}/{script:[a-z]+}"
)

func BuildRouter(cfg manifest.Config, d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	hmetrics.AddMetricsSkipPaths(cfg.Metrics.SkipPaths...)
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		r.Get("/metrics", d.Metrics)
	}

	for _, rt := range cfg.Routes {
		var h http.Handler = d.Dispatcher.Route(dispatch.Target{
			Module: rt.Module,
			Script: rt.Script,
			Output: rt.Output,
		})
		if rt.Policy.TimeoutMS > 0 {
			h = withTimeout(h, time.Duration(rt.Policy.TimeoutMS)*time.Millisecond)
		}
		if rt.Method == "*" {
			r.HandleAll(rt.Path, h)
			continue
		}
		r.Handle(rt.Method, rt.Path, h)
	}

	r.HandleAll(OutputScriptRoute, d.Dispatcher)
	r.HandleAll(ScriptRoute, d.Dispatcher)

	nf := notFound(d.Catalog)
	r.NotFound(nf)
	r.MethodNotAllowed(nf)
	return r.Mux()
}

func notFound(c *messages.Catalog) http.Handler {
	if c == nil {
		c = messages.Default
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = respond.Error(w, respond.Format(r), c.Format(messages.Error404, nil), http.StatusNotFound)
	})
}
