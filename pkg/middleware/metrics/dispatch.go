package metrics

import "time"

// Dispatch outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeResolve = "resolve_error"
	OutcomePanic   = "panic"
	OutcomeAbandon = "abandoned"
)

// ObserveDispatch records one finished dispatch.
func ObserveDispatch(module, script, outcome string, d time.Duration) {
	dispatchTotal.WithLabelValues(module, script, outcome).Inc()
	if outcome != OutcomeResolve {
		dispatchDuration.WithLabelValues(module, script).Observe(d.Seconds())
	}
}

// ObserveResolverLoad records a resolver lookup.
func ObserveResolverLoad(kind, result string) {
	resolverLoads.WithLabelValues(kind, result).Inc()
}

func ObserveResolverFlush() { resolverFlushes.Inc() }
