// Package metrics registers the engine's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BalanceComputations counts completed balance aggregations.
	BalanceComputations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_balance_computations_total",
		Help: "Number of net-balance aggregations performed.",
	})

	// SkippedRecords counts expenses and settlements skipped during
	// aggregation because they referenced users outside the scope or
	// carried an invalid split configuration.
	SkippedRecords = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_skipped_records_total",
		Help: "Number of records skipped during balance aggregation.",
	})

	// SettlementsRecorded counts settlements accepted by the ledger.
	SettlementsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_settlements_recorded_total",
		Help: "Number of settlements recorded.",
	})

	// SettlementsRejected counts settlements that failed validation.
	SettlementsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "splitledger_settlements_rejected_total",
		Help: "Number of settlements rejected by validation.",
	})
)
