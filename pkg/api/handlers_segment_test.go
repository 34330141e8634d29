package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dd0wney/cluso-segmenter/pkg/logging"
	"github.com/dd0wney/cluso-segmenter/pkg/metrics"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return NewServer(Config{
		Port:                      0,
		DefaultMinimumSegmentSize: 2,
	}, logging.NewNopLogger(), metrics.NewRegistry())
}

func postSegment(t *testing.T, s *Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/segment", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// chainRequest is a five-node conv chain with non-candidate endpoints
func chainRequest() map[string]any {
	return map[string]any{
		"graph": map[string]any{
			"nodes": []map[string]any{
				{"name": "input", "op": "Placeholder", "device": "CPU:0"},
				{"name": "conv1", "op": "Conv2D", "device": "GPU:0"},
				{"name": "relu1", "op": "Relu", "device": "GPU:0"},
				{"name": "conv2", "op": "Conv2D", "device": "GPU:0"},
				{"name": "output", "op": "Softmax", "device": "CPU:0"},
			},
			"edges": []map[string]any{
				{"from": "input", "to": "conv1"},
				{"from": "conv1", "to": "relu1"},
				{"from": "relu1", "to": "conv2"},
				{"from": "conv2", "to": "output"},
			},
		},
		"minimumSegmentSize": 2,
		"candidateOps":       []string{"Conv2D", "Relu"},
	}
}

// TestHandleSegment_Chain tests the happy path over a conv chain
func TestHandleSegment_Chain(t *testing.T) {
	s := newTestServer(t)
	rec := postSegment(t, s, chainRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp SegmentationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if len(resp.Segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(resp.Segments))
	}
	seg := resp.Segments[0]
	if seg.Size != 3 || seg.Device != "GPU:0" {
		t.Errorf("Expected 3-node GPU:0 segment, got size=%d device=%q", seg.Size, seg.Device)
	}
	if resp.GraphNodes != 5 || resp.GraphEdges != 4 {
		t.Errorf("Expected graph stats 5/4, got %d/%d", resp.GraphNodes, resp.GraphEdges)
	}
	if resp.NodesSegmented != 3 {
		t.Errorf("Expected 3 nodes segmented, got %d", resp.NodesSegmented)
	}
	if len(resp.Boundary) != 2 {
		t.Errorf("Expected 2 boundary edges, got %d", len(resp.Boundary))
	}
}

// TestHandleSegment_DefaultMinimumSize tests the server default applies
// when the request omits minimumSegmentSize
func TestHandleSegment_DefaultMinimumSize(t *testing.T) {
	s := newTestServer(t)
	req := chainRequest()
	delete(req, "minimumSegmentSize")

	rec := postSegment(t, s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200 with server default, got %d: %s", rec.Code, rec.Body.String())
	}
}

// TestHandleSegment_ExcludeNodes tests exclusion splitting the chain
func TestHandleSegment_ExcludeNodes(t *testing.T) {
	s := newTestServer(t)
	req := chainRequest()
	req["excludeNodes"] = []string{"relu1"}

	rec := postSegment(t, s, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp SegmentationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	// conv1 and conv2 become singletons below the size threshold
	if len(resp.Segments) != 0 {
		t.Errorf("Expected no segments after exclusion, got %d", len(resp.Segments))
	}
}

// TestHandleSegment_Errors tests request rejection paths
func TestHandleSegment_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		mutate func(req map[string]any)
		status int
		code   string
	}{
		{
			name: "empty graph",
			mutate: func(req map[string]any) {
				req["graph"] = map[string]any{"nodes": []map[string]any{}}
			},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name: "unknown edge endpoint",
			mutate: func(req map[string]any) {
				req["graph"].(map[string]any)["edges"] = []map[string]any{
					{"from": "input", "to": "missing"},
				}
			},
			status: http.StatusBadRequest,
			code:   "invalid_graph",
		},
		{
			name: "bad node name",
			mutate: func(req map[string]any) {
				req["graph"].(map[string]any)["nodes"] = []map[string]any{
					{"name": "bad name!", "op": "Conv2D"},
				}
			},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name: "negative minimum size",
			mutate: func(req map[string]any) {
				req["minimumSegmentSize"] = -1
			},
			status: http.StatusBadRequest,
			code:   "invalid_request",
		},
		{
			name: "excluded mandatory node",
			mutate: func(req map[string]any) {
				req["excludeNodes"] = []string{"conv1"}
				req["mandatoryNodes"] = []string{"conv1"}
			},
			status: http.StatusBadRequest,
			code:   "inconsistent_constraint",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := chainRequest()
			tt.mutate(req)
			rec := postSegment(t, s, req)

			if rec.Code != tt.status {
				t.Fatalf("Expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
			var errResp ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if errResp.Code != tt.code {
				t.Errorf("Expected error code %q, got %q (%s)", tt.code, errResp.Code, errResp.Error)
			}
		})
	}
}

// TestHandleSegment_CycleRejected tests the 422 mapping for candidate cycles
func TestHandleSegment_CycleRejected(t *testing.T) {
	s := newTestServer(t)
	req := map[string]any{
		"graph": map[string]any{
			"nodes": []map[string]any{
				{"name": "a", "op": "Conv2D"},
				{"name": "b", "op": "Conv2D"},
			},
			"edges": []map[string]any{
				{"from": "a", "to": "b"},
				{"from": "b", "to": "a"},
			},
		},
		"minimumSegmentSize": 2,
		"candidateOps":       []string{"Conv2D"},
	}

	rec := postSegment(t, s, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
	var errResp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if errResp.Code != "unresolvable_cycle" {
		t.Errorf("Expected unresolvable_cycle, got %q", errResp.Code)
	}
}

// TestHandleSegment_MethodNotAllowed tests GET rejection
func TestHandleSegment_MethodNotAllowed(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/segment", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected 405, got %d", rec.Code)
	}
}

// TestHandleSegment_BadJSON tests malformed body rejection
func TestHandleSegment_BadJSON(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/segment", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", rec.Code)
	}
}

// TestHandleHealth tests the liveness endpoint
func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("Expected healthy status, got %q", resp.Status)
	}
}

// TestMetricsEndpoint tests that the prometheus handler is mounted
func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 from /metrics, got %d", rec.Code)
	}
}
