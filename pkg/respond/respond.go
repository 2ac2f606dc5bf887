// Package respond writes result envelopes to HTTP clients in the requested
// output format.
package respond

import (
	"net/http"
	"strings"

	"github.com/joeydtaylor/minoss/pkg/codec"
	"github.com/joeydtaylor/minoss/pkg/envelope"
	"github.com/joeydtaylor/minoss/pkg/script"
)

// StatusHeader carries the status indicator: "1", "0" or the error text.
const StatusHeader = "X-Minoss-Status"

var headerSafe = strings.NewReplacer("\r", " ", "\n", " ")

// Output serializes env in format (json when unknown) and writes it with the
// given HTTP status, 200 when zero. statusMessage is not part of the body:
// it goes out in the StatusHeader response header ("1" success, "0" failure
// without text, else the error text) so the body is exactly the envelope in
// every format.
func Output(w http.ResponseWriter, format, statusMessage string, env *envelope.Envelope, status int) error {
	if status == 0 {
		status = http.StatusOK
	}
	c, _ := codec.For(format)
	body, err := c.Marshal(env)
	if err != nil {
		c = codec.JSON
		status = http.StatusInternalServerError
		statusMessage = "encode " + format + ": " + err.Error()
		body, _ = c.Marshal(envelope.Failure(statusMessage))
	}

	h := w.Header()
	h.Set("Content-Type", c.ContentType())
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set(StatusHeader, headerSafe.Replace(statusMessage))
	w.WriteHeader(status)
	_, werr := w.Write(body)
	if err != nil {
		return err
	}
	return werr
}

// Error writes {success: false, error: message}, status 404 when zero.
func Error(w http.ResponseWriter, format, message string, status int) error {
	if status == 0 {
		status = http.StatusNotFound
	}
	return Output(w, format, message, envelope.Failure(message), status)
}

// Format picks the output format for requests that never reached the
// dispatcher: the "output" query parameter if valid, json otherwise.
func Format(r *http.Request) string {
	if o := r.URL.Query().Get(script.KeyOutput); script.ValidOutput(o) {
		return o
	}
	return script.OutputJSON
}
