// Package metrics registers the application's Prometheus collectors.
// Collectors are created with promauto against the default registry;
// main exposes them on GET /metrics via promhttp.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/campus-labs/student-registry/internal/storage"
)

var (
	// RequestsTotal counts HTTP requests by method and response status.
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "student_registry_http_requests_total",
		Help: "HTTP requests served, by method and status code.",
	}, []string{"method", "status"})

	// OperationsTotal counts store operations by name and outcome.
	OperationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "student_registry_operations_total",
		Help: "Record-store operations, by operation and outcome.",
	}, []string{"operation", "outcome"})
)

// ObserveOperation records the outcome of a store operation.
func ObserveOperation(operation string, err error) {
	OperationsTotal.WithLabelValues(operation, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, storage.ErrNotFound):
		return "not_found"
	case errors.Is(err, storage.ErrIndexNumberTaken):
		return "conflict"
	default:
		return "invalid"
	}
}
