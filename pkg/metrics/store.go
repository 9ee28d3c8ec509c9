package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// StoreMetrics provides observability for temporal store operations.
//
// Implementations collect operation counts and latencies plus the
// structural gauges (live names, version records) that rollback and
// expiry make interesting to watch.
//
// This interface is optional - if not provided to stores, operations
// proceed without metrics collection (zero overhead).
//
// Example usage:
//
//	// With metrics enabled
//	m := metrics.NewStoreMetrics("badger")
//	store, err := badger.NewBadgerStore(ctx, config, m)
//
//	// Without metrics (no-op)
//	store, err := badger.NewBadgerStore(ctx, config, nil)
type StoreMetrics interface {
	// RecordOperation records a completed store operation with its
	// name, duration, and outcome.
	//
	// Parameters:
	//   - operation: Operation name (e.g., "UploadAt", "GetAt", "Rollback")
	//   - duration: Time taken to complete the operation
	//   - err: Error if operation failed, nil if successful
	RecordOperation(operation string, duration time.Duration, err error)

	// SetNames updates the count of live file names.
	SetNames(count int64)

	// SetVersions updates the total count of version records.
	SetVersions(count int64)
}

// storeMetrics is the Prometheus implementation of StoreMetrics.
type storeMetrics struct {
	storeType         string
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	names             prometheus.Gauge
	versions          prometheus.Gauge
}

// NewStoreMetrics creates a new Prometheus-backed StoreMetrics instance.
//
// Parameters:
//   - storeType: Type of store (e.g., "memory", "badger")
//     Used as a label to distinguish metrics from different store
//     implementations.
//
// Returns a no-op implementation if metrics are not enabled
// (InitRegistry not called).
func NewStoreMetrics(storeType string) StoreMetrics {
	if !IsEnabled() {
		return &noopStoreMetrics{}
	}

	reg := GetRegistry()

	return &storeMetrics{
		storeType: storeType,
		operationsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "chronostore_store_operations_total",
				Help: "Total number of store operations by store type, operation, and status",
			},
			[]string{"store_type", "operation", "status"},
		),
		operationDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "chronostore_store_operation_duration_seconds",
				Help: "Duration of store operations in seconds",
				Buckets: []float64{
					0.0001, // 100µs
					0.0005, // 500µs
					0.001,  // 1ms
					0.005,  // 5ms
					0.01,   // 10ms
					0.025,  // 25ms
					0.05,   // 50ms
					0.1,    // 100ms
					0.25,   // 250ms
					0.5,    // 500ms
					1.0,    // 1s
				},
			},
			[]string{"store_type", "operation"},
		),
		names: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "chronostore_store_names",
				Help: "Current number of file names with at least one version record",
				ConstLabels: prometheus.Labels{
					"store_type": storeType,
				},
			},
		),
		versions: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "chronostore_store_versions",
				Help: "Current total number of version records",
				ConstLabels: prometheus.Labels{
					"store_type": storeType,
				},
			},
		),
	}
}

func (m *storeMetrics) RecordOperation(operation string, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	m.operationsTotal.WithLabelValues(m.storeType, operation, status).Inc()
	m.operationDuration.WithLabelValues(m.storeType, operation).Observe(duration.Seconds())
}

func (m *storeMetrics) SetNames(count int64) {
	m.names.Set(float64(count))
}

func (m *storeMetrics) SetVersions(count int64) {
	m.versions.Set(float64(count))
}

// noopStoreMetrics is a no-op implementation of StoreMetrics with zero
// overhead.
type noopStoreMetrics struct{}

func (noopStoreMetrics) RecordOperation(operation string, duration time.Duration, err error) {}
func (noopStoreMetrics) SetNames(count int64)                                                {}
func (noopStoreMetrics) SetVersions(count int64)                                             {}

// NoopStoreMetrics returns the no-op StoreMetrics implementation.
// Stores substitute it when constructed without a metrics sink.
func NoopStoreMetrics() StoreMetrics {
	return &noopStoreMetrics{}
}
