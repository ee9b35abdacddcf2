package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the Prometheus instruments exposed by the service.
type Collector struct {
	namespace string

	httpRequests *prometheus.CounterVec
	httpLatency  *prometheus.HistogramVec

	journalPostings *prometheus.CounterVec
	transactions    *prometheus.CounterVec
	reconciled      *prometheus.CounterVec
	reconcileFails  *prometheus.CounterVec
}

// NewCollector creates the instrument set under the given namespace.
func NewCollector(namespace string) *Collector {
	return &Collector{
		namespace: namespace,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests per route and status",
			},
			[]string{"method", "route", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency per route",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "route"},
		),
		journalPostings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journal_postings_total",
				Help:      "Total number of journal entries posted, by outcome",
			},
			[]string{"status"},
		),
		transactions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "transactions_recorded_total",
				Help:      "Total number of transactions recorded, by type and outcome",
			},
			[]string{"type", "status"},
		),
		reconciled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_reconciled_total",
				Help:      "Total number of source records reconciled into the ledger",
			},
			[]string{"domain"},
		),
		reconcileFails: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconcile_failures_total",
				Help:      "Total number of source records that failed reconciliation",
			},
			[]string{"domain"},
		),
	}
}

// Register registers all instruments with the given registry.
func (c *Collector) Register(registry *prometheus.Registry) error {
	collectors := []prometheus.Collector{
		c.httpRequests,
		c.httpLatency,
		c.journalPostings,
		c.transactions,
		c.reconciled,
		c.reconcileFails,
	}

	for _, collector := range collectors {
		if err := registry.Register(collector); err != nil {
			return err
		}
	}

	return nil
}

// RecordHTTPRequest records one served HTTP request.
func (c *Collector) RecordHTTPRequest(method, route, status string, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, route, status).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPosting records a journal posting attempt. Safe on a nil collector so
// handlers built without metrics stay no-ops.
func (c *Collector) RecordPosting(success bool) {
	if c == nil {
		return
	}
	c.journalPostings.WithLabelValues(statusLabel(success)).Inc()
}

// RecordTransaction records a transaction recording attempt.
func (c *Collector) RecordTransaction(transactionType string, success bool) {
	if c == nil {
		return
	}
	c.transactions.WithLabelValues(transactionType, statusLabel(success)).Inc()
}

// RecordReconciliation records the outcome of one reconciliation batch.
func (c *Collector) RecordReconciliation(domain string, reconciled, failed int) {
	if c == nil {
		return
	}
	c.reconciled.WithLabelValues(domain).Add(float64(reconciled))
	c.reconcileFails.WithLabelValues(domain).Add(float64(failed))
}

func statusLabel(success bool) string {
	if success {
		return "success"
	}
	return "error"
}
