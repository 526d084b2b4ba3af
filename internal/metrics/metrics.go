package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint and status code.",
		},
		[]string{"endpoint", "status"},
	)

	reservationOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "reservation_outcomes_total",
			Help:      "Reservation operations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	notificationDispatches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "parkhub",
			Name:      "notification_dispatches_total",
			Help:      "Notification dispatch attempts by result.",
		},
		[]string{"result"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, reservationOutcomes, notificationDispatches)
	})
}

// IncHTTP increments the request counter for an endpoint/status pair.
func IncHTTP(endpoint, status string) {
	httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncReservation records the outcome of a reservation operation,
// e.g. ("reserve", "ok") or ("acknowledge", "conflict_or_error").
func IncReservation(operation, outcome string) {
	reservationOutcomes.WithLabelValues(operation, outcome).Inc()
}

// IncDispatch records a notification dispatch result
// ("delivered", "retried", "deadletter").
func IncDispatch(result string) {
	notificationDispatches.WithLabelValues(result).Inc()
}
