package handler

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	commandsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exchange_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_processed_total",
			Help:      "Total number of successfully processed commands",
		},
		[]string{"type"},
	)

	commandsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exchange_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_failed_total",
			Help:      "Total number of failed command processing attempts",
		},
		[]string{"type"},
	)

	commandsDLQ = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "exchange_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_dlq_total",
			Help:      "Total number of commands written to DLQ",
		},
	)

	commitErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "exchange_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commit_errors_total",
			Help:      "Total number of Kafka commit errors",
		},
	)

	commandProcessingDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "exchange_ledger",
			Subsystem: "kafka_consumer",
			Name:      "command_processing_duration_seconds",
			Help:      "Histogram of command processing durations in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	commandsInProgress = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "exchange_ledger",
			Subsystem: "kafka_consumer",
			Name:      "commands_in_progress",
			Help:      "Number of commands currently being processed",
		},
	)
)

var (
	orderLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "exchange_ledger",
			Subsystem: "http",
			Name:      "order_lookups_total",
			Help:      "Total number of order lookups by ID",
		},
		[]string{"result"},
	)

	orderLookupDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "exchange_ledger",
			Subsystem: "http",
			Name:      "order_lookup_duration_seconds",
			Help:      "Histogram of order lookup durations, cache hits included",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

func RegisterMetrics() {
	prometheus.MustRegister(
		commandsProcessed,
		commandsFailed,
		commandsDLQ,
		commitErrors,
		commandProcessingDuration,
		commandsInProgress,

		orderLookupsTotal,
		orderLookupDuration,
	)
}
