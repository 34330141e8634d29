package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSegmentationMetrics() {
	r.SegmentationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmenter_segmentations_total",
			Help: "Total number of segmentation runs",
		},
		[]string{"pass", "status"},
	)

	r.SegmentationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segmenter_segmentation_duration_seconds",
			Help:    "Segmentation run duration in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"pass"},
	)

	r.SegmentsProduced = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segmenter_segments_produced",
			Help:    "Number of segments produced per run",
			Buckets: []float64{1, 2, 5, 10, 50, 100, 500},
		},
		[]string{"pass"},
	)

	r.NodesSegmented = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segmenter_nodes_segmented",
			Help:    "Number of nodes placed into segments per run",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"pass"},
	)

	r.BoundaryEdges = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segmenter_boundary_edges",
			Help:    "Number of segment boundary edges per run",
			Buckets: []float64{1, 10, 100, 1000, 10000},
		},
		[]string{"pass"},
	)

	r.GraphNodesExamined = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "segmenter_graph_nodes_examined",
			Help:    "Size of the input graph per run",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000},
		},
		[]string{"pass"},
	)

	r.SegmentationLastRun = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "segmenter_segmentation_last_run_timestamp_seconds",
			Help: "Unix timestamp of the last segmentation run",
		},
	)

	r.SnapshotLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmenter_snapshot_loads_total",
			Help: "Total number of graph snapshot loads",
		},
		[]string{"status"},
	)

	r.SnapshotSavesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "segmenter_snapshot_saves_total",
			Help: "Total number of graph snapshot saves",
		},
		[]string{"status"},
	)
}
