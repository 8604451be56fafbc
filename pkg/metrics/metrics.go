package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus counters for engine operations.
type Metrics struct {
	ReservationsCreated   prometheus.Counter
	ReservationsCancelled prometheus.Counter
	RefundedCents         prometheus.Counter
	FlushFailures         prometheus.Counter
	SkippedRecords        *prometheus.CounterVec
}

// NewMetrics registers the counters with the given registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "The total number of reservations made",
		}),
		ReservationsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_cancelled_total",
			Help:      "The total number of reservations cancelled",
		}),
		RefundedCents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunded_cents_total",
			Help:      "The total amount refunded to wallets, in cents",
		}),
		FlushFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flush_failures_total",
			Help:      "The total number of failed storage flushes",
		}),
		SkippedRecords: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_records_total",
			Help:      "The total number of unparseable records skipped on load",
		}, []string{"entity"}),
	}
}
