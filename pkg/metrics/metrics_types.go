package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Segmentation Metrics
	SegmentationsTotal    *prometheus.CounterVec
	SegmentationDuration  *prometheus.HistogramVec
	SegmentsProduced      *prometheus.HistogramVec
	NodesSegmented        *prometheus.HistogramVec
	BoundaryEdges         *prometheus.HistogramVec
	GraphNodesExamined    *prometheus.HistogramVec
	SegmentationLastRun   prometheus.Gauge
	SnapshotLoadsTotal    *prometheus.CounterVec
	SnapshotSavesTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initSegmentationMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
