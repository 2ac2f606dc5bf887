// Package debug implements the process-wide debug toggle: per-request timing
// and trace lines, and a resolver flush after every request so edits to
// script units apply without a restart.
package debug

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Flusher drops cached script units.
type Flusher interface {
	Flush()
}

// Instrument is configured once at startup and read-only afterwards.
type Instrument struct {
	enabled bool
	flusher Flusher
	log     *zap.Logger
}

func New(enabled bool, f Flusher, log *zap.Logger) *Instrument {
	if log == nil {
		log = zap.NewNop()
	}
	return &Instrument{enabled: enabled, flusher: f, log: log}
}

func (i *Instrument) Enabled() bool {
	return i != nil && i.enabled
}

// Span covers one dispatch. The zero Span is inert.
type Span struct {
	inst    *Instrument
	traceID string
	module  string
	script  string
	start   time.Time
}

// Begin starts a span; it does nothing unless debug mode is on.
func (i *Instrument) Begin(module, script string) Span {
	if !i.Enabled() {
		return Span{}
	}
	s := Span{
		inst:    i,
		traceID: uuid.NewString(),
		module:  module,
		script:  script,
		start:   time.Now(),
	}
	i.log.Debug("dispatch start",
		zap.String("traceId", s.traceID),
		zap.String("module", module),
		zap.String("script", script),
	)
	return s
}

// TraceID is empty for inert spans.
func (s Span) TraceID() string { return s.traceID }

// End flushes the resolver cache and logs the elapsed time.
func (s Span) End() time.Duration {
	if s.inst == nil {
		return 0
	}
	if s.inst.flusher != nil {
		s.inst.flusher.Flush()
	}
	elapsed := time.Since(s.start)
	s.inst.log.Debug("dispatch done",
		zap.String("traceId", s.traceID),
		zap.String("module", s.module),
		zap.String("script", s.script),
		zap.Duration("elapsed", elapsed),
	)
	return elapsed
}
