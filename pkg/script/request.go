// pkg/script/request.go
package script

import (
	"fmt"
	"strconv"
)

// Reserved request keys. They are always written by the dispatcher and
// override anything the client sent.
const (
	KeyOutput = "output"
	KeyModule = "module"
	KeyScript = "script"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputXML  = "xml"
	OutputText = "text"
)

// ValidOutput reports whether f is a supported output format.
func ValidOutput(f string) bool {
	switch f {
	case OutputJSON, OutputXML, OutputText:
		return true
	}
	return false
}

// Request is the normalized request context: query parameters (GET) or body
// fields (other methods) plus the reserved keys.
type Request map[string]any

func (r Request) Module() string { return r.String(KeyModule) }
func (r Request) Script() string { return r.String(KeyScript) }

// Output returns the requested format, "json" when unset or unknown.
func (r Request) Output() string {
	if o := r.String(KeyOutput); ValidOutput(o) {
		return o
	}
	return OutputJSON
}

// String returns the value under key as a string. Repeated query parameters
// yield their first value.
func (r Request) String(key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	case []any:
		if len(v) > 0 {
			return fmt.Sprint(v[0])
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// Int parses the value under key as an integer.
func (r Request) Int(key string) (int, error) {
	s := r.String(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

// Float parses the value under key as a float.
func (r Request) Float(key string) (float64, error) {
	s := r.String(key)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
