// pkg/resolver/errors.go
package resolver

import "errors"

// Kind classifies a resolution failure.
type Kind int

const (
	KindModuleReserved Kind = iota + 1
	KindModuleMissing
	KindScriptMissing
)

// Sentinels, matched with errors.Is. Their text doubles as the message
// catalog key.
var (
	ErrModuleReserved = errors.New("moduleReserved")
	ErrModuleMissing  = errors.New("moduleMissing")
	ErrScriptMissing  = errors.New("scriptMissing")
)

func (k Kind) sentinel() error {
	switch k {
	case KindModuleReserved:
		return ErrModuleReserved
	case KindModuleMissing:
		return ErrModuleMissing
	case KindScriptMissing:
		return ErrScriptMissing
	}
	return nil
}

// Key is the message catalog key for k.
func (k Kind) Key() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return ""
}

func (k Kind) String() string {
	switch k {
	case KindModuleReserved:
		return "ModuleReserved"
	case KindModuleMissing:
		return "ModuleMissing"
	case KindScriptMissing:
		return "ScriptMissing"
	}
	return "Unknown"
}

// Error is returned by the resolver for reserved or missing modules and
// missing scripts.
type Error struct {
	Kind   Kind
	Module string
	Script string
}

func (e *Error) Error() string { return e.Kind.Key() }

func (e *Error) Unwrap() error { return e.Kind.sentinel() }

// KindOf extracts the resolution kind from err, if any.
func KindOf(err error) (Kind, bool) {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind, true
	}
	switch {
	case errors.Is(err, ErrModuleReserved):
		return KindModuleReserved, true
	case errors.Is(err, ErrModuleMissing):
		return KindModuleMissing, true
	case errors.Is(err, ErrScriptMissing):
		return KindScriptMissing, true
	}
	return 0, false
}

// KindFromKey maps a catalog key ("moduleMissing", ...) back to its Kind.
func KindFromKey(key string) (Kind, bool) {
	for _, k := range []Kind{KindModuleReserved, KindModuleMissing, KindScriptMissing} {
		if k.Key() == key {
			return k, true
		}
	}
	return 0, false
}
