// Package metrics provides Prometheus instrumentation for lattice. The
// manager records every resolution attempt here, labeled by driver, topology
// and status, along with the size of the connection registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ResolutionsTotal tracks connection resolutions.
	// Labels: driver, topology (single/cluster/cluster_option/replica_option),
	// status (success/failure)
	//
	// Example:
	//	metrics.ResolutionsTotal.WithLabelValues("goredis", "single", "success").Inc()
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lattice_resolutions_total",
			Help: "Total number of connection resolutions",
		},
		[]string{"driver", "topology", "status"},
	)

	// ResolutionDuration tracks the distribution of resolution latencies.
	// Resolution includes the driver's connect call, so the buckets cover
	// network dial times.
	ResolutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "lattice_resolution_duration_seconds",
			Help: "Connection resolution latency in seconds",
			Buckets: []float64{
				0.001, // 1ms - local socket
				0.005, // 5ms
				0.01,  // 10ms - same-zone network
				0.05,  // 50ms
				0.1,   // 100ms - cross-region
				0.5,   // 500ms
				1,     // 1s
				5,     // 5s - dial timeout territory
			},
		},
		[]string{"driver", "topology"},
	)

	// CachedConnections tracks the number of handles in the registry
	CachedConnections = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "lattice_cached_connections",
			Help: "Number of cached connection handles",
		},
		[]string{"driver"},
	)
)

// Timer measures the duration of a resolution for histogram observation.
type Timer struct {
	start    time.Time
	driver   string
	topology string
}

// NewTimer starts a timer for a resolution
func NewTimer(driver, topology string) *Timer {
	return &Timer{start: time.Now(), driver: driver, topology: topology}
}

// ObserveDuration records the elapsed time and returns it
func (t *Timer) ObserveDuration() time.Duration {
	elapsed := time.Since(t.start)
	ResolutionDuration.WithLabelValues(t.driver, t.topology).Observe(elapsed.Seconds())
	return elapsed
}
