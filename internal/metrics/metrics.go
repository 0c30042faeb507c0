// Package metrics holds the Prometheus collectors exported at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "budget"

// ActionsProcessed counts operator actions by name and outcome.
var ActionsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "operator",
	Name:      "actions_total",
	Help:      "Operator actions processed, by action and result.",
}, []string{"action", "result"})

// ActionDuration observes the time an action holds its unit of work.
var ActionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "operator",
	Name:      "action_duration_seconds",
	Help:      "Time from opening a unit of work to commit or rollback.",
	Buckets:   prometheus.DefBuckets,
}, []string{"action"})

// OperatorQueueDepth tracks actions waiting for a worker.
var OperatorQueueDepth = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: namespace,
	Subsystem: "operator",
	Name:      "queue_depth",
	Help:      "Actions queued and not yet picked up by a worker.",
})

// TransactionsCreated counts committed transactions by type.
var TransactionsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "transactions",
	Name:      "created_total",
	Help:      "Transactions created, by type.",
}, []string{"type"})

// SpendingDeltasApplied counts budget goal increments from new expenses.
var SpendingDeltasApplied = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "budget_goals",
	Name:      "spending_deltas_total",
	Help:      "Expense amounts added to a budget goal's current spending.",
})

// ReportDuration observes report computation time by report.
var ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: namespace,
	Subsystem: "reports",
	Name:      "duration_seconds",
	Help:      "Time spent computing a report.",
	Buckets:   prometheus.DefBuckets,
}, []string{"report"})

// SuggestionRequests counts category suggestions by result
// (suggested, fallback).
var SuggestionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: namespace,
	Subsystem: "suggest",
	Name:      "requests_total",
	Help:      "Category suggestions served, by result.",
}, []string{"result"})
