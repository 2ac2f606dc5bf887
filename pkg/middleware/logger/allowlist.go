package logger

import (
	"net/http"
	"strings"
)

// maxLoggedBody caps request bodies copied into access log lines.
const maxLoggedBody = 1 << 16

// bodyPaths is the set of paths whose small JSON bodies are logged.
type bodyPaths map[string]struct{}

func newBodyPaths(paths []string) bodyPaths {
	set := bodyPaths{}
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			set[p] = struct{}{}
		}
	}
	return set
}

func (b bodyPaths) allowed(r *http.Request) bool {
	if len(b) == 0 {
		return false
	}
	if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
		return false
	}
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		return false
	}
	_, ok := b[r.URL.Path]
	return ok
}
