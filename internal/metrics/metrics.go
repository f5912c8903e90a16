// Package metrics exposes the client-side observability surface: query
// counters, round-trip histograms and error-kind counters. It plays the
// role the ancestor server's api/grpc/middleware package played for RPC
// traffic, retargeted from gRPC method/status labels to DNS
// transport/rcode labels (spec §4.7 results, §7 error taxonomy).
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueriesTotal counts every query recorded through ObserveQuery,
	// labeled by the transport used and the rcode the reply carried.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnsq_queries_total", Help: "Total DNS queries issued"},
		[]string{"transport", "rcode"},
	)

	// ErrorsTotal counts failed queries by the kind label the caller
	// passes: a category of the spec §7 taxonomy (usage, encode, decode,
	// transport, correlation, dnssec) or a specific transport kind such as
	// "timeout" or "connect".
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "dnsq_errors_total", Help: "Total query failures by kind"},
		[]string{"kind"},
	)

	// RTTSeconds observes round-trip time per transport.
	RTTSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dnsq_rtt_seconds",
			Help:    "DNS query round-trip time",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"transport"},
	)

	// TCPRetriesTotal counts the UDP-truncated-reply-retries-over-TCP
	// fallback (spec §4.7 step 6, §8 quantified invariant).
	TCPRetriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "dnsq_tcp_retries_total", Help: "Total UDP replies retried over TCP after TC=1"},
	)
)

func init() {
	prometheus.MustRegister(QueriesTotal, ErrorsTotal, RTTSeconds, TCPRetriesTotal)
}

// ObserveQuery records one completed (successful or not) query attempt.
func ObserveQuery(transport, rcode string, rtt time.Duration) {
	QueriesTotal.WithLabelValues(transport, rcode).Inc()
	RTTSeconds.WithLabelValues(transport).Observe(rtt.Seconds())
}

// ObserveError records one query failure under kind, the taxonomy label
// named in spec §7 (e.g. "transport", "dnssec", "correlation").
func ObserveError(kind string) {
	ErrorsTotal.WithLabelValues(kind).Inc()
}

// ObserveTCPRetry records one UDP-truncated-reply retry over TCP.
func ObserveTCPRetry() {
	TCPRetriesTotal.Inc()
}
