package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTPRequestDuration tracks HTTP request latency.
var HTTPRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "wapptv",
		Subsystem: "api",
		Name:      "request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "path", "status"},
)

// ContentRefreshTotal counts content aggregation passes, labelled by outcome
// ("ok", "partial", "error").
var ContentRefreshTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "wapptv",
		Subsystem: "content",
		Name:      "refresh_total",
		Help:      "Content aggregation passes by outcome.",
	},
	[]string{"outcome"},
)

// ContentRefreshDuration tracks how long a full aggregation pass takes.
var ContentRefreshDuration = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: "wapptv",
		Subsystem: "content",
		Name:      "refresh_duration_seconds",
		Help:      "Duration of a full content aggregation pass.",
		Buckets:   prometheus.DefBuckets,
	},
)

// RealtimeEventsTotal counts change events received on the realtime channel.
var RealtimeEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "wapptv",
		Subsystem: "realtime",
		Name:      "events_total",
		Help:      "Change events received, labelled by table.",
	},
	[]string{"table"},
)

// MutationFailuresTotal counts failed admin mutations by resource.
var MutationFailuresTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "wapptv",
		Subsystem: "admin",
		Name:      "mutation_failures_total",
		Help:      "Failed admin mutations by resource.",
	},
	[]string{"resource"},
)

// NewMetricsRegistry creates a Prometheus registry with Go/process collectors
// and the storefront metrics registered.
func NewMetricsRegistry(extra ...prometheus.Collector) *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequestDuration,
		ContentRefreshTotal,
		ContentRefreshDuration,
		RealtimeEventsTotal,
		MutationFailuresTotal,
	)
	for _, c := range extra {
		reg.MustRegister(c)
	}
	return reg
}
