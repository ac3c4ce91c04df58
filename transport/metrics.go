package transport

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instrumentation for a Client. Grounded
// on kuiwang02-bmc's package-level counters (v2ConnectionOpenAttempts,
// v2ConnectionsOpen, ...) in bmc.go, adapted to instance fields so
// multiple Clients in one process don't collide on metric identity
// unless the caller shares a Metrics value deliberately.
type Metrics struct {
	ConnectionAttempts prometheus.Counter
	ConnectionFailures prometheus.Counter
	NAKRetries         prometheus.Counter
	RetriesExhausted   prometheus.Counter
	LRCFailures        prometheus.Counter
	RequestDuration    *prometheus.HistogramVec
}

// NewMetrics constructs a Metrics and registers it with reg. Passing a
// nil reg skips registration (useful in tests).
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		ConnectionAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "connection_attempts_total",
			Help: "Number of TCP connection attempts to the PC interface.",
		}),
		ConnectionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "connection_failures_total",
			Help: "Number of TCP connection attempts that failed.",
		}),
		NAKRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "nak_retries_total",
			Help: "Number of requests retried after a NAK.",
		}),
		RetriesExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "retries_exhausted_total",
			Help: "Number of requests that exhausted MaxRetries after repeated NAKs.",
		}),
		LRCFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "lrc_failures_total",
			Help: "Number of framed responses rejected for an LRC mismatch.",
		}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "request_duration_seconds",
			Help:    "Latency of a single logical request, by command.",
			Buckets: prometheus.DefBuckets,
		}, []string{"command"}),
	}
	if reg != nil {
		reg.MustRegister(m.ConnectionAttempts, m.ConnectionFailures, m.NAKRetries,
			m.RetriesExhausted, m.LRCFailures, m.RequestDuration)
	}
	return m
}

// noopMetrics is substituted when a Client's Config.Metrics is nil.
var noopMetrics = NewMetrics(nil, "salto")
