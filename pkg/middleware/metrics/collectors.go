package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "minoss_http_requests_total", Help: "http requests by code, route pattern and method"},
		[]string{"code", "route", "method"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minoss_http_request_duration_seconds",
			Help:    "http response time by route pattern.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"route"},
	)

	dispatchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "minoss_dispatch_total", Help: "script dispatches by module, script and outcome"},
		[]string{"module", "script", "outcome"},
	)

	dispatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "minoss_dispatch_duration_seconds",
			Help:    "time from dispatch to reply.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"module", "script"},
	)

	resolverLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "minoss_resolver_loads_total", Help: "resolver lookups by kind (unit|config) and result (hit|miss|error)"},
		[]string{"kind", "result"},
	)

	resolverFlushes = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "minoss_resolver_flushes_total", Help: "resolver cache flushes"},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequests,
		httpDuration,
		dispatchTotal,
		dispatchDuration,
		resolverLoads,
		resolverFlushes,
	)
}
