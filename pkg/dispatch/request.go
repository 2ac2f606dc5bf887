// pkg/dispatch/request.go
package dispatch

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/joeydtaylor/minoss/pkg/script"
)

// MaxBodyBytes bounds request bodies read into the request context.
const MaxBodyBytes = 10 << 20

// Target names the unit a request is dispatched to.
type Target struct {
	Module string
	Script string
	// Output is the format taken from the route; empty means json.
	Output string
}

// TargetFromRoute reads {output}, {module} and {script} from the chi route.
func TargetFromRoute(r *http.Request) Target {
	return Target{
		Module: chi.URLParam(r, script.KeyModule),
		Script: chi.URLParam(r, script.KeyScript),
		Output: chi.URLParam(r, script.KeyOutput),
	}
}

// BuildRequest assembles the request context: query parameters for GET,
// body fields otherwise, then route parameters, then the reserved keys.
// output keeps a client-supplied value and falls back to t.Output, then
// json; module and script always come from t.
func BuildRequest(r *http.Request, t Target) (script.Request, error) {
	req := script.Request{}

	if r.Method == http.MethodGet {
		mergeValues(req, r.URL.Query())
	} else if err := mergeBody(req, r); err != nil {
		return nil, err
	}

	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		for i, k := range rctx.URLParams.Keys {
			switch k {
			case "", "*", script.KeyOutput, script.KeyModule, script.KeyScript:
				continue
			}
			if i < len(rctx.URLParams.Values) {
				req[k] = rctx.URLParams.Values[i]
			}
		}
	}

	if req.String(script.KeyOutput) == "" {
		out := t.Output
		if out == "" {
			out = script.OutputJSON
		}
		req[script.KeyOutput] = out
	}
	req[script.KeyModule] = t.Module
	req[script.KeyScript] = t.Script
	return req, nil
}

func mergeValues(req script.Request, vals url.Values) {
	for k, vs := range vals {
		switch len(vs) {
		case 0:
		case 1:
			req[k] = vs[0]
		default:
			req[k] = append([]string(nil), vs...)
		}
	}
}

func mergeBody(req script.Request, r *http.Request) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch ct {
	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("malformed form body: %w", err)
		}
		mergeValues(req, r.PostForm)
		return nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil {
			return fmt.Errorf("malformed multipart body: %w", err)
		}
		mergeValues(req, r.MultipartForm.Value)
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if len(body) > MaxBodyBytes {
		return errors.New("request body too large")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	// JSON is also accepted without a content type, as long as it is an object.
	if ct != "application/json" && !(ct == "" && body[0] == '{') {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	fields := map[string]any{}
	if err := dec.Decode(&fields); err != nil {
		return fmt.Errorf("malformed json body: %w", err)
	}
	for k, v := range fields {
		req[k] = v
	}
	return nil
}
