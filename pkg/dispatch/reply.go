// pkg/dispatch/reply.go
package dispatch

import (
	"sync/atomic"

	"go.uber.org/zap"
)

type outcome struct {
	ok    bool
	value any
}

// completion is the one-shot Reply handed to a unit. The first call wins;
// later calls are logged and dropped.
type completion struct {
	settled  atomic.Bool
	panicked atomic.Bool
	ch       chan outcome
	log      *zap.Logger
}

func newCompletion(log *zap.Logger) *completion {
	return &completion{ch: make(chan outcome, 1), log: log}
}

func (c *completion) Success(result any) { c.settle(true, result) }

func (c *completion) Fail(result any) { c.settle(false, result) }

func (c *completion) settle(ok bool, v any) {
	if !c.settled.CompareAndSwap(false, true) {
		c.log.Warn("unit replied more than once; ignoring", zap.Bool("success", ok))
		return
	}
	c.ch <- outcome{ok: ok, value: v}
}

func (c *completion) done() bool { return c.settled.Load() }
