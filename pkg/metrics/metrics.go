// Package metrics exposes Prometheus counters for ledger mutations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ExpensesCreated counts expenses admitted into the ledger.
	ExpensesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cimerat_expenses_created_total",
		Help: "Number of expenses created.",
	})

	// SharesClaimed counts pending shares claimed as paid.
	SharesClaimed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cimerat_shares_claimed_total",
		Help: "Number of shares claimed as paid by their member.",
	})

	// SharesConfirmed counts claimed shares confirmed by the payer.
	SharesConfirmed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cimerat_shares_confirmed_total",
		Help: "Number of shares confirmed by the payer.",
	})
)

// Handler returns the Prometheus exposition endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
