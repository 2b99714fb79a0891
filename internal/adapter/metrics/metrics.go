package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RentMetrics holds all Prometheus metrics for the rent management service.
type RentMetrics struct {
	OccupancyChanges *prometheus.CounterVec
	PaymentsCreated  *prometheus.CounterVec
	SettlementsTotal prometheus.Counter
	SummaryCacheHits prometheus.Counter
	SummaryCacheMiss prometheus.Counter
	OutstandingDebt  prometheus.Gauge
}

// NewRentMetrics initializes and registers the Prometheus metrics.
func NewRentMetrics() *RentMetrics {
	return &RentMetrics{
		OccupancyChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rent_management",
			Subsystem: "occupancy",
			Name:      "changes_total",
			Help:      "Total number of occupancy transitions by operation.",
		}, []string{"operation"}), // operation: assign, vacate, leave
		PaymentsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rent_management",
			Subsystem: "ledger",
			Name:      "payments_created_total",
			Help:      "Total number of payment records created by source.",
		}, []string{"source"}), // source: generated, manual
		SettlementsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "rent_management",
			Subsystem: "ledger",
			Name:      "settlements_total",
			Help:      "Total number of payments marked as paid.",
		}),
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "rent_management",
			Subsystem: "summary",
			Name:      "cache_hits_total",
			Help:      "Total number of summary cache hits.",
		}),
		SummaryCacheMiss: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "rent_management",
			Subsystem: "summary",
			Name:      "cache_misses_total",
			Help:      "Total number of summary cache misses.",
		}),
		OutstandingDebt: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "rent_management",
			Subsystem: "summary",
			Name:      "outstanding_debt",
			Help:      "Most recently computed total of unpaid rent.",
		}),
	}
}
