package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the size of an HTTP response
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight increments the in-flight request gauge
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight decrements the in-flight request gauge
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordSegmentation records one segmentation run
func (r *Registry) RecordSegmentation(pass, status string, duration time.Duration, graphNodes, segments, nodesSegmented, boundaryEdges int) {
	r.SegmentationsTotal.WithLabelValues(pass, status).Inc()
	r.SegmentationLastRun.SetToCurrentTime()
	r.GraphNodesExamined.WithLabelValues(pass).Observe(float64(graphNodes))
	if status != "success" {
		return
	}
	r.SegmentationDuration.WithLabelValues(pass).Observe(duration.Seconds())
	r.SegmentsProduced.WithLabelValues(pass).Observe(float64(segments))
	r.NodesSegmented.WithLabelValues(pass).Observe(float64(nodesSegmented))
	r.BoundaryEdges.WithLabelValues(pass).Observe(float64(boundaryEdges))
}

// RecordSnapshotLoad records a graph snapshot load attempt
func (r *Registry) RecordSnapshotLoad(status string) {
	r.SnapshotLoadsTotal.WithLabelValues(status).Inc()
}

// RecordSnapshotSave records a graph snapshot save attempt
func (r *Registry) RecordSnapshotSave(status string) {
	r.SnapshotSavesTotal.WithLabelValues(status).Inc()
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
