// Package dispatch runs one HTTP request through a script unit: it builds
// the request context, resolves the unit, invokes it behind a panic guard,
// waits for its reply and writes the normalized envelope.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/joeydtaylor/minoss/pkg/debug"
	"github.com/joeydtaylor/minoss/pkg/envelope"
	"github.com/joeydtaylor/minoss/pkg/messages"
	hmetrics "github.com/joeydtaylor/minoss/pkg/middleware/metrics"
	"github.com/joeydtaylor/minoss/pkg/resolver"
	"github.com/joeydtaylor/minoss/pkg/respond"
	"github.com/joeydtaylor/minoss/pkg/script"
	"go.uber.org/zap"
)

type Dispatcher struct {
	resolver *resolver.Resolver
	catalog  *messages.Catalog
	debug    *debug.Instrument
	log      *zap.Logger
	timeout  time.Duration
}

type Option func(*Dispatcher)

func WithCatalog(c *messages.Catalog) Option { return func(d *Dispatcher) { d.catalog = c } }
func WithDebug(i *debug.Instrument) Option   { return func(d *Dispatcher) { d.debug = i } }
func WithLogger(l *zap.Logger) Option        { return func(d *Dispatcher) { d.log = l } }

// WithTimeout bounds how long a request waits for its reply; 0 waits until
// the client goes away.
func WithTimeout(t time.Duration) Option { return func(d *Dispatcher) { d.timeout = t } }

func New(r *resolver.Resolver, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		resolver: r,
		catalog:  messages.Default,
		log:      zap.NewNop(),
	}
	for _, o := range opts {
		o(d)
	}
	if d.debug == nil {
		d.debug = debug.New(false, nil, d.log)
	}
	return d
}

// ServeHTTP dispatches to the {module}/{script} named by the chi route.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	d.Dispatch(w, r, TargetFromRoute(r))
}

// Route returns a handler bound to a fixed target.
func (d *Dispatcher) Route(t Target) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		d.Dispatch(w, r, t)
	})
}

// Dispatch handles one request end to end. The unit runs on its own
// goroutine; Dispatch returns once a response is written or the request
// context ends. A unit that never replies keeps the request open until then,
// and a reply after that is dropped.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request, t Target) {
	req, err := BuildRequest(r, t)
	if err != nil {
		d.logWrite(respond.Error(w, respond.Format(r), err.Error(), 0))
		return
	}

	span := d.debug.Begin(t.Module, t.Script)
	defer span.End()

	start := time.Now()
	result := d.run(w, r, req)
	if result == hmetrics.OutcomeResolve {
		hmetrics.ObserveDispatch("", "", result, 0)
		return
	}
	hmetrics.ObserveDispatch(t.Module, t.Script, result, time.Since(start))
}

func (d *Dispatcher) run(w http.ResponseWriter, r *http.Request, req script.Request) string {
	module, name, format := req.Module(), req.Script(), req.Output()
	log := d.log.With(zap.String("module", module), zap.String("script", name))

	unit, cfg, err := d.resolver.Resolve(module, name)
	if err != nil {
		log.Debug("resolve failed", zap.Error(err))
		d.logWrite(respond.Error(w, format, d.errorText(err, module, name), 0))
		return hmetrics.OutcomeResolve
	}

	ctx := r.Context()
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}

	c := newCompletion(log)
	go d.invoke(ctx, log, unit, cfg, req, c)

	select {
	case o := <-c.ch:
		return d.settle(w, format, c, o)
	case <-ctx.Done():
		// A reply that raced the deadline still wins.
		select {
		case o := <-c.ch:
			return d.settle(w, format, c, o)
		default:
		}
		log.Warn("request ended before the unit replied", zap.Error(ctx.Err()))
		return hmetrics.OutcomeAbandon
	}
}

func (d *Dispatcher) settle(w http.ResponseWriter, format string, c *completion, o outcome) string {
	result := d.reply(w, format, o)
	if c.panicked.Load() {
		return hmetrics.OutcomePanic
	}
	return result
}

// invoke runs the unit on its own goroutine so the wait bound holds even for
// units that block. A panic before the reply becomes a failure reply.
func (d *Dispatcher) invoke(ctx context.Context, log *zap.Logger, unit script.Unit, cfg script.Config, req script.Request, c *completion) {
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		if c.done() {
			log.Warn("unit panicked after replying", zap.Any("panic", p))
			return
		}
		c.panicked.Store(true)
		log.Error("unit panicked", zap.Any("panic", p))
		c.Fail(d.errorText(panicError(p), req.Module(), req.Script()))
	}()
	unit(ctx, cfg, req, c)
}

func (d *Dispatcher) reply(w http.ResponseWriter, format string, o outcome) string {
	env := envelope.Normalize(envelope.ResultOf(o.value))

	if !o.ok {
		msg, ok := env.ErrorText()
		if !ok {
			msg = "0"
		}
		d.logWrite(respond.Output(w, format, msg, env, http.StatusNotFound))
		return hmetrics.OutcomeFailure
	}

	if msg, ok := env.ErrorText(); ok && !env.Success() {
		d.logWrite(respond.Output(w, format, msg, env, http.StatusNotFound))
		return hmetrics.OutcomeFailure
	}
	if env.Success() {
		d.logWrite(respond.Output(w, format, "1", env, http.StatusOK))
		return hmetrics.OutcomeSuccess
	}
	d.logWrite(respond.Output(w, format, "0", env, http.StatusOK))
	return hmetrics.OutcomeFailure
}

// errorText formats resolution failures through the catalog; anything else
// keeps its own message.
func (d *Dispatcher) errorText(err error, module, name string) string {
	k, ok := resolver.KindOf(err)
	if !ok {
		k, ok = resolver.KindFromKey(err.Error())
	}
	if ok {
		return d.catalog.Format(k.Key(), messages.Replaces{
			script.KeyModule: module,
			script.KeyScript: name,
		})
	}
	return err.Error()
}

func (d *Dispatcher) logWrite(err error) {
	if err != nil {
		d.log.Warn("write response failed", zap.Error(err))
	}
}

func panicError(p any) error {
	switch x := p.(type) {
	case error:
		return x
	case string:
		return errors.New(x)
	default:
		return fmt.Errorf("%v", x)
	}
}
