package logger

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	chimd "github.com/go-chi/chi/v5/middleware"
	"github.com/joeydtaylor/minoss/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_WritesToDir(t *testing.T) {
	dir := t.TempDir()
	l, err := New("system.log", Options{Dir: dir, Level: "debug"})
	require.NoError(t, err)

	l.Debug("hello", zap.String("k", "v"))
	require.NoError(t, l.Sync())

	b, err := os.ReadFile(filepath.Join(dir, "system.log"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"hello"`)
	assert.Contains(t, string(b), `"k":"v"`)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New("system.log", Options{Dir: t.TempDir(), Level: "chatty"})
	assert.Error(t, err)
}

func TestOptionsFrom(t *testing.T) {
	off := false
	o := OptionsFrom(manifest.Log{Dir: "d", Level: "warn", Console: &off})
	assert.Equal(t, Options{Dir: "d", Level: "warn"}, o)
}

func TestMiddleware_LogsRequest(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mw := NewMiddleware(zap.New(core)).Middleware()

	h := chimd.RequestID(mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo/missing?x=1", nil))

	require.Equal(t, 1, logs.Len())
	ctx := logs.All()[0].ContextMap()
	assert.Equal(t, "/demo/missing", ctx["uri"])
	assert.Equal(t, int64(http.StatusNotFound), ctx["status"])
	assert.Equal(t, int64(4), ctx["responseSize"])
	assert.NotEmpty(t, ctx["requestId"])
	assert.NotContains(t, ctx, "requestData")
}

func TestMiddleware_AllowlistedBodyIsLoggedAndPreserved(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mw := NewMiddleware(zap.New(core), " /demo/echo ").Middleware()

	var seen string
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		seen = string(b)
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/demo/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, `{"a":1}`, seen)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, `{"a":1}`, logs.All()[0].ContextMap()["requestData"])
}

func TestProvideLoggerMiddleware_BodyPathsFromManifest(t *testing.T) {
	off := false
	cfg := manifest.Config{Log: manifest.Log{
		Dir:       t.TempDir(),
		Console:   &off,
		BodyPaths: []string{"/sum"},
	}}
	m, err := ProvideLoggerMiddleware(cfg)
	require.NoError(t, err)

	post := func(path string) *http.Request {
		r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")
		return r
	}
	assert.True(t, m.bodies.allowed(post("/sum")))
	assert.False(t, m.bodies.allowed(post("/other")))
	assert.False(t, m.bodies.allowed(httptest.NewRequest(http.MethodGet, "/sum", nil)))
}

func TestMiddleware_NoBodyWithoutAllowlist(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	mw := NewMiddleware(zap.New(core)).Middleware()
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))

	req := httptest.NewRequest(http.MethodPost, "/demo/echo", strings.NewReader(`{"a":1}`))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	assert.NotContains(t, logs.All()[0].ContextMap(), "requestData")
}
