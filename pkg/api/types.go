package api

import (
	"time"

	"github.com/dd0wney/cluso-segmenter/pkg/segment"
)

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    string    `json:"uptime"`
}

// SegmentResponse describes one produced segment
type SegmentResponse struct {
	Nodes  []string `json:"nodes"`
	Device string   `json:"device"`
	Size   int      `json:"size"`
}

// BoundaryEdgeResponse describes one segment boundary edge
type BoundaryEdgeResponse struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Direction    string `json:"direction"`
	SegmentIndex int    `json:"segmentIndex"`
}

// SegmentationResponse is returned by POST /segment
type SegmentationResponse struct {
	Segments       []SegmentResponse      `json:"segments"`
	Boundary       []BoundaryEdgeResponse `json:"boundary"`
	GraphNodes     int                    `json:"graphNodes"`
	GraphEdges     int                    `json:"graphEdges"`
	NodesSegmented int                    `json:"nodesSegmented"`
	DurationMS     float64                `json:"durationMs"`
}

// ErrorResponse is the error envelope for all endpoints
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func toSegmentationResponse(result *segment.Result, graphNodes, graphEdges int, duration time.Duration) *SegmentationResponse {
	resp := &SegmentationResponse{
		Segments:   make([]SegmentResponse, 0, len(result.Segments)),
		Boundary:   make([]BoundaryEdgeResponse, 0, len(result.Boundary)),
		GraphNodes: graphNodes,
		GraphEdges: graphEdges,
		DurationMS: float64(duration.Microseconds()) / 1000.0,
	}
	for _, seg := range result.Segments {
		resp.Segments = append(resp.Segments, SegmentResponse{
			Nodes:  seg.Nodes,
			Device: seg.Device,
			Size:   len(seg.Nodes),
		})
		resp.NodesSegmented += len(seg.Nodes)
	}
	for _, edge := range result.Boundary {
		resp.Boundary = append(resp.Boundary, BoundaryEdgeResponse{
			From:         edge.From,
			To:           edge.To,
			Direction:    string(edge.Direction),
			SegmentIndex: edge.SegmentIndex,
		})
	}
	return resp
}
