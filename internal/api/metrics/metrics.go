// Package metrics defines the custom Prometheus metrics of the todo API. It is
// the single source of truth for metric names, labels and help strings.
//
// Build one Metrics per registry with New; the router does this at startup.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "todo"

// Metrics groups the application counters.
type Metrics struct {
	// TodoMutationsTotal counts committed todo writes.
	// Label:
	//   - operation: "create", "update" or "delete"
	TodoMutationsTotal *prometheus.CounterVec

	// LoginsTotal counts token requests.
	// Label:
	//   - result: "success" or "failure"
	LoginsTotal *prometheus.CounterVec

	// UsersRegisteredTotal counts created accounts.
	// Label:
	//   - role: "admin" or "user"
	UsersRegisteredTotal *prometheus.CounterVec

	// LogoutsTotal counts logout requests from authenticated callers.
	LogoutsTotal prometheus.Counter
}

// New registers all metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TodoMutationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "mutations_total",
				Help:      "Total number of committed todo mutations, by operation.",
			},
			[]string{"operation"},
		),
		LoginsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logins_total",
				Help:      "Total number of token requests, by result.",
			},
			[]string{"result"},
		),
		UsersRegisteredTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "users_registered_total",
				Help:      "Total number of registered users, by role.",
			},
			[]string{"role"},
		),
		LogoutsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "logouts_total",
				Help:      "Total number of logouts.",
			},
		),
	}
}
