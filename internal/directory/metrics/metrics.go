package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the directory module.
// Tracks operation outcomes and Redis command latency.
type Metrics struct {
	Operations   *prometheus.CounterVec
	StoreLatency *prometheus.HistogramVec
}

// New creates a new Metrics instance registered on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "phonedir_directory_operations_total",
			Help: "Directory operations by operation and result",
		}, []string{"operation", "result"}),
		StoreLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phonedir_store_command_duration_seconds",
			Help:    "Latency of key-value store commands",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.1},
		}, []string{"command"}),
	}
}

// IncOperation records the result of one directory operation.
// result is an outcome name ("created") or an error code ("not_found").
func (m *Metrics) IncOperation(operation, result string) {
	m.Operations.WithLabelValues(operation, result).Inc()
}

// ObserveStoreCommand records the duration of one store command.
// Call with time.Now() at the start of the command.
func (m *Metrics) ObserveStoreCommand(command string, start time.Time) {
	m.StoreLatency.WithLabelValues(command).Observe(time.Since(start).Seconds())
}
