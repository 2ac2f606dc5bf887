// pkg/messages/format.go
package messages

import (
	"fmt"
	"sort"
	"strings"
)

// Replaces holds placeholder values keyed by placeholder name.
type Replaces map[string]any

// Format resolves keyOrLiteral through the catalog (falling back to the input
// itself) and substitutes {name} placeholders.
//
// Each key replaces only the first occurrence of its placeholder; a template
// that repeats {module} keeps the second one verbatim. Keys are applied in
// sorted order.
func (c *Catalog) Format(keyOrLiteral string, replaces Replaces) string {
	msg := keyOrLiteral
	if t, ok := c.Lookup(keyOrLiteral); ok {
		msg = t
	}
	if len(replaces) == 0 {
		return msg
	}

	keys := make([]string, 0, len(replaces))
	for k := range replaces {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		msg = strings.Replace(msg, "{"+k+"}", stringify(replaces[k]), 1)
	}
	return msg
}

// Format uses the Default catalog.
func Format(keyOrLiteral string, replaces Replaces) string {
	return Default.Format(keyOrLiteral, replaces)
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}
