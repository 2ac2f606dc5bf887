package envelope

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Bool(t *testing.T) {
	e := Normalize(BoolResult(true))
	assert.True(t, e.Success())
	assert.Equal(t, []string{"success"}, e.Fields().Keys())

	e = Normalize(BoolResult(false))
	assert.False(t, e.Success())
	_, hasErr := e.ErrorText()
	assert.False(t, hasErr)
}

func TestNormalize_String(t *testing.T) {
	e := Normalize(StringResult("oops"))
	assert.False(t, e.Success())
	msg, ok := e.ErrorText()
	require.True(t, ok)
	assert.Equal(t, "oops", msg)
	assert.Equal(t, []string{"success", "error"}, e.Fields().Keys())
}

func TestNormalize_MappingDefaultsSuccess(t *testing.T) {
	e := Normalize(EnvelopeResult{Fields: NewMap().Set("value", 42)})
	assert.False(t, e.Success())
	assert.Equal(t, []string{"value", "success"}, e.Fields().Keys())
}

func TestNormalize_MappingCoercesSuccess(t *testing.T) {
	e := Normalize(EnvelopeResult{Fields: NewMap().Set("success", json.Number("1"))})
	assert.True(t, e.Success())
	v, _ := e.Fields().Get("success")
	assert.Equal(t, true, v)

	e = Normalize(EnvelopeResult{Fields: NewMap().Set("success", "")})
	assert.False(t, e.Success())
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := NewMap().Set("value", 1)
	_ = Normalize(EnvelopeResult{Fields: in})
	assert.False(t, in.Has("success"))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []Result{
		BoolResult(true),
		BoolResult(false),
		StringResult("bad input"),
		EnvelopeResult{Fields: NewMap().Set("value", 42)},
		EnvelopeResult{Fields: NewMap().Set("success", 1).Set("error", "x")},
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(EnvelopeResult{Fields: once.Fields()})

		a, err := json.Marshal(once)
		require.NoError(t, err)
		b, err := json.Marshal(twice)
		require.NoError(t, err)
		assert.JSONEq(t, string(a), string(b))
		assert.Equal(t, once.Fields().Keys(), twice.Fields().Keys())
	}
}

func TestErrorText_FalsyIsAbsent(t *testing.T) {
	for _, v := range []any{nil, "", false, 0, json.Number("0")} {
		e := Normalize(EnvelopeResult{Fields: NewMap().Set("error", v)})
		_, ok := e.ErrorText()
		assert.False(t, ok, "error=%v", v)
	}

	e := Normalize(EnvelopeResult{Fields: NewMap().Set("error", json.Number("7"))})
	msg, ok := e.ErrorText()
	assert.True(t, ok)
	assert.Equal(t, "7", msg)
}

func TestResultOf(t *testing.T) {
	assert.Equal(t, BoolResult(true), ResultOf(true))
	assert.Equal(t, StringResult("x"), ResultOf("x"))
	assert.Equal(t, StringResult("boom"), ResultOf(errors.New("boom")))

	r, ok := ResultOf(map[string]any{"success": true, "value": 42}).(EnvelopeResult)
	require.True(t, ok)
	assert.Equal(t, []string{"success", "value"}, r.Fields.Keys())

	r, ok = ResultOf(nil).(EnvelopeResult)
	require.True(t, ok)
	assert.Equal(t, 0, r.Fields.Len())

	r, ok = ResultOf(42).(EnvelopeResult)
	require.True(t, ok)
	v, _ := r.Fields.Get("value")
	assert.Equal(t, 42, v)

	type reply struct {
		Success bool `json:"success"`
		Sum     int  `json:"sum"`
	}
	r, ok = ResultOf(reply{Success: true, Sum: 3}).(EnvelopeResult)
	require.True(t, ok)
	assert.True(t, Normalize(r).Success())
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(0.0))
	assert.False(t, Truthy(uint8(0)))
	assert.True(t, Truthy(-1))
	assert.True(t, Truthy("false"))
	assert.True(t, Truthy(NewMap()))
	assert.True(t, Truthy([]any{}))
}
