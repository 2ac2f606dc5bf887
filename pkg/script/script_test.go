package script

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	ok, fail []any
}

func (r *recorder) Success(v any) { r.ok = append(r.ok, v) }
func (r *recorder) Fail(v any)    { r.fail = append(r.fail, v) }

func TestSync(t *testing.T) {
	u := Sync(func(_ context.Context, _ Config, req Request) (any, error) {
		if req.String("x") == "" {
			return nil, errors.New("x missing")
		}
		return true, nil
	})

	rec := &recorder{}
	u(context.Background(), nil, Request{"x": "1"}, rec)
	assert.Equal(t, []any{true}, rec.ok)
	assert.Empty(t, rec.fail)

	rec = &recorder{}
	u(context.Background(), nil, Request{}, rec)
	assert.Empty(t, rec.ok)
	assert.Equal(t, []any{"x missing"}, rec.fail)
}

func TestRequest_Accessors(t *testing.T) {
	req := Request{
		KeyModule: "math",
		KeyScript: "add",
		KeyOutput: "yaml",
		"a":       []string{"3", "9"},
		"b":       2.5,
	}
	assert.Equal(t, "math", req.Module())
	assert.Equal(t, "add", req.Script())
	assert.Equal(t, OutputJSON, req.Output())

	a, err := req.Int("a")
	require.NoError(t, err)
	assert.Equal(t, 3, a)

	b, err := req.Float("b")
	require.NoError(t, err)
	assert.Equal(t, 2.5, b)

	_, err = req.Int("missing")
	assert.Error(t, err)
}

func TestConfig_Decode(t *testing.T) {
	cfg := Config{"greeting": "hi", "limit": int64(3)}
	var dst struct {
		Greeting string `json:"greeting"`
		Limit    int    `json:"limit"`
	}
	require.NoError(t, cfg.Decode(&dst))
	assert.Equal(t, "hi", dst.Greeting)
	assert.Equal(t, 3, dst.Limit)
	assert.Equal(t, "3", cfg.String("limit"))
}

func TestReplyFuncs_NilSafe(t *testing.T) {
	var got any
	r := ReplyFuncs{OnSuccess: func(v any) { got = v }}
	r.Success(1)
	r.Fail(2)
	assert.Equal(t, 1, got)
}
