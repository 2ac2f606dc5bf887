// pkg/script/unit.go
package script

import (
	"context"
)

// Reply is the two-channel completion handed to a unit. A unit must call
// exactly one of the methods exactly once, from any goroutine; later calls
// are ignored by the dispatcher.
//
// Accepted values: bool, string, error, map[string]any, *envelope.Map,
// *envelope.Envelope or anything encoding/json can marshal to an object.
type Reply interface {
	Success(result any)
	Fail(result any)
}

// Unit is an executable entry point addressed by (module, script).
type Unit func(ctx context.Context, cfg Config, req Request, reply Reply)

// SyncFunc is the plain-Go shape of a unit that finishes before returning.
type SyncFunc func(ctx context.Context, cfg Config, req Request) (any, error)

// Sync adapts fn to a Unit: a nil error sends the value to Success, an error
// sends its text to Fail.
func Sync(fn SyncFunc) Unit {
	return func(ctx context.Context, cfg Config, req Request, reply Reply) {
		out, err := fn(ctx, cfg, req)
		if err != nil {
			reply.Fail(err.Error())
			return
		}
		reply.Success(out)
	}
}

// ReplyFuncs builds a Reply from two functions.
type ReplyFuncs struct {
	OnSuccess func(result any)
	OnFail    func(result any)
}

func (r ReplyFuncs) Success(result any) {
	if r.OnSuccess != nil {
		r.OnSuccess(result)
	}
}

func (r ReplyFuncs) Fail(result any) {
	if r.OnFail != nil {
		r.OnFail(result)
	}
}
