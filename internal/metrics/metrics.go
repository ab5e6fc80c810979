// Package metrics defines the application's Prometheus metrics. They register
// with the default registry on import and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "crm"

// LoginAttemptsTotal counts login attempts.
// Label result: "success" or "failure".
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// CustomerOperationsTotal counts customer use cases by operation and outcome.
// Labels:
//   - operation: create, update, delete, get, list, list_by_region, search, list_registered
//   - outcome: "success" or "failure"
var CustomerOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "customer_operations_total",
		Help:      "Total number of customer operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// CacheLookupsTotal counts customer cache lookups.
// Label result: "hit" or "miss".
var CacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of customer cache lookups, by result.",
	},
	[]string{"result"},
)

// SeedRunsTotal counts seed runs.
// Label outcome: "success" or "failure".
var SeedRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "seed_runs_total",
		Help:      "Total number of database seed runs, by outcome.",
	},
	[]string{"outcome"},
)

// Outcome maps a success flag to the outcome label value.
func Outcome(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
