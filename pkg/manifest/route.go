package manifest

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"regexp"
	"strings"
)

// Route binds a fixed path and method to a script unit.
type Route struct {
	Path   string `toml:"path" yaml:"path"`
	Method string `toml:"method" yaml:"method"`
	Module string `toml:"module" yaml:"module"`
	Script string `toml:"script" yaml:"script"`
	Output string `toml:"output" yaml:"output"`
	Policy Policy `toml:"policy" yaml:"policy"`
}

type Policy struct {
	TimeoutMS int `toml:"timeout_ms" yaml:"timeout_ms"`
}

var nameRe = regexp.MustCompile(`^[a-z]+$`)

func validName(s string) bool { return nameRe.MatchString(s) }

var methods = map[string]bool{
	"*":                true,
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// normalize path/method/output
func (r *Route) normalize() error {
	if r.Path == "" {
		return errors.New("path is required")
	}
	if !strings.HasPrefix(r.Path, "/") {
		r.Path = "/" + r.Path
	}
	if r.Path != "/" {
		r.Path = path.Clean(r.Path)
	}
	r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
	if r.Method == "" {
		r.Method = http.MethodGet
	}
	r.Module = strings.TrimSpace(r.Module)
	r.Script = strings.TrimSpace(r.Script)
	r.Output = strings.ToLower(strings.TrimSpace(r.Output))
	return nil
}

func (r *Route) validate() error {
	if !methods[r.Method] {
		return fmt.Errorf("method %q not supported", r.Method)
	}
	if !validName(r.Module) {
		return fmt.Errorf("module %q must be lowercase letters", r.Module)
	}
	if !validName(r.Script) {
		return fmt.Errorf("script %q must be lowercase letters", r.Script)
	}
	switch r.Output {
	case "", "json", "xml", "text":
	default:
		return fmt.Errorf("output %q invalid", r.Output)
	}
	if r.Policy.TimeoutMS < 0 {
		return errors.New("policy.timeout_ms must be >= 0")
	}
	return nil
}
