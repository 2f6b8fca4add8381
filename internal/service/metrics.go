package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "exchange_ledger",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total number of created orders.",
	})

	ordersClosed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exchange_ledger",
		Subsystem: "orders",
		Name:      "closed_total",
		Help:      "Total number of closed orders by resolution.",
	}, []string{"resolution"})

	bidsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "exchange_ledger",
		Subsystem: "bids",
		Name:      "submitted_total",
		Help:      "Total number of submitted bids.",
	})

	bidsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "exchange_ledger",
		Subsystem: "bids",
		Name:      "rejected_total",
		Help:      "Total number of bids rejected as a side effect of acceptance or cancellation.",
	})

	txConflicts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "exchange_ledger",
		Subsystem: "tx",
		Name:      "conflicts_total",
		Help:      "Total number of transactions aborted by lock contention.",
	}, []string{"operation"})
)

const (
	resolutionAccepted  = "accepted"
	resolutionCancelled = "cancelled"
)
