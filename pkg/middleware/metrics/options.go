package metrics

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// unmatchedRoute labels requests no route claimed (404s, heartbeats).
const unmatchedRoute = "unmatched"

var (
	mu        sync.RWMutex
	skipPaths = map[string]struct{}{"/metrics": {}, "/ping": {}}
)

// AddMetricsSkipPaths adds paths that are never recorded. /metrics and
// /ping are skipped by default.
func AddMetricsSkipPaths(paths ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			skipPaths[p] = struct{}{}
		}
	}
}

func skipped(r *http.Request) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := skipPaths[r.URL.Path]
	return ok
}

// routePattern labels by the chi route pattern, so /demo/ok and /demo/add
// share one series.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedRoute
}
