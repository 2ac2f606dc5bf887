package logger

import (
	"bytes"
	"io"
	"net/http"
	"time"

	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Middleware writes one access log line per request.
type Middleware struct {
	log    *zap.Logger
	bodies bodyPaths
}

// NewMiddleware logs to l. Requests to bodyLogPaths also get their JSON
// body logged when it is small.
func NewMiddleware(l *zap.Logger, bodyLogPaths ...string) *Middleware {
	if l == nil {
		l = zap.NewNop()
	}
	return &Middleware{log: l, bodies: newBodyPaths(bodyLogPaths)}
}

func (m *Middleware) Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimd.NewWrapResponseWriter(w, r.ProtoMajor)

			// Peek at most maxLoggedBody+1 bytes and hand the rest downstream untouched.
			var body []byte
			if r.Body != nil && m.bodies.allowed(r) {
				head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBody+1))
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
				if len(head) <= maxLoggedBody {
					body = head
				}
			}

			scheme := "http"
			if r.TLS != nil {
				scheme = "https"
			}

			start := time.Now()
			defer func() {
				fields := []zap.Field{
					zap.String("requestId", chimd.GetReqID(r.Context())),
					zap.String("httpScheme", scheme),
					zap.String("httpProto", r.Proto),
					zap.String("httpMethod", r.Method),
					zap.String("remoteAddr", r.RemoteAddr),
					zap.String("uri", r.URL.Path),
					zap.Duration("lat", time.Since(start)),
					zap.Int("responseSize", ww.BytesWritten()),
					zap.Int("status", ww.Status()),
				}
				if len(body) > 0 {
					fields = append(fields, zap.ByteString("requestData", body))
				}
				m.log.Info("request", fields...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
