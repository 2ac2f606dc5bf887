package envelope

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
)

// Result is what a script unit hands back: a bare boolean, a bare string or
// a mapping. It never leaves the dispatcher; Normalize turns it into an
// Envelope.
type Result interface {
	isResult()
}

type BoolResult bool

type StringResult string

// EnvelopeResult is a mapping whose "success" field may be missing.
type EnvelopeResult struct {
	Fields *Map
}

func (BoolResult) isResult()     {}
func (StringResult) isResult()   {}
func (EnvelopeResult) isResult() {}

// ResultOf classifies an arbitrary reply value. Values that are neither
// boolean, string nor mapping-like are wrapped as {"value": v}.
func ResultOf(v any) Result {
	switch x := v.(type) {
	case Result:
		return x
	case nil:
		return EnvelopeResult{Fields: NewMap()}
	case bool:
		return BoolResult(x)
	case string:
		return StringResult(x)
	case error:
		return StringResult(x.Error())
	case *Envelope:
		if x == nil {
			return EnvelopeResult{Fields: NewMap()}
		}
		return EnvelopeResult{Fields: x.Fields().Clone()}
	case *Map:
		if x == nil {
			return EnvelopeResult{Fields: NewMap()}
		}
		return EnvelopeResult{Fields: x.Clone()}
	}
	switch cv := Value(v).(type) {
	case *Map:
		return EnvelopeResult{Fields: cv}
	case bool:
		return BoolResult(cv)
	case string:
		return StringResult(cv)
	case nil:
		return EnvelopeResult{Fields: NewMap()}
	default:
		return EnvelopeResult{Fields: NewMap().Set("value", cv)}
	}
}

// Envelope is a normalized result: "success" is always present and boolean.
type Envelope struct {
	fields *Map
}

// Normalize maps each Result variant onto an Envelope:
//
//	BoolResult     -> {success: b}
//	StringResult   -> {success: false, error: s}
//	EnvelopeResult -> the fields, with success defaulted to false
//
// A non-boolean success value is coerced by truthiness. Normalizing the
// fields of an Envelope again yields an equal Envelope.
func Normalize(r Result) *Envelope {
	switch x := r.(type) {
	case BoolResult:
		return &Envelope{fields: NewMap().Set("success", bool(x))}
	case StringResult:
		return &Envelope{fields: NewMap().Set("success", false).Set("error", string(x))}
	case EnvelopeResult:
		fields := x.Fields.Clone()
		if v, ok := fields.Get("success"); ok {
			fields.Set("success", Truthy(v))
		} else {
			fields.Set("success", false)
		}
		return &Envelope{fields: fields}
	default:
		return &Envelope{fields: NewMap().Set("success", false)}
	}
}

// Failure is the minimal {success: false, error: message} envelope.
func Failure(message string) *Envelope {
	return Normalize(StringResult(message))
}

func (e *Envelope) Success() bool {
	v, _ := e.fields.Get("success")
	b, _ := v.(bool)
	return b
}

// ErrorText returns the "error" field when it is set to a truthy value.
func (e *Envelope) ErrorText() (string, bool) {
	v, ok := e.fields.Get("error")
	if !ok || !Truthy(v) {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case *Map, []any:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x), true
		}
		return string(b), true
	default:
		return fmt.Sprint(x), true
	}
}

// Fields exposes the ordered fields. Callers must not modify them.
func (e *Envelope) Fields() *Map {
	return e.fields
}

func (e *Envelope) MarshalJSON() ([]byte, error) {
	return e.fields.MarshalJSON()
}

// Truthy follows the usual dynamic-language rules: nil, false, zero numbers
// and the empty string are false, everything else is true.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := strconv.ParseFloat(x.String(), 64)
		return err != nil || f != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Ptr, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}
