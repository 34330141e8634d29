package api

import (
	"net/http"
	"time"

	"github.com/dd0wney/cluso-segmenter/pkg/graph"
	"github.com/dd0wney/cluso-segmenter/pkg/pipeline"
	"github.com/dd0wney/cluso-segmenter/pkg/segment"
	"github.com/dd0wney/cluso-segmenter/pkg/validation"
)

// handleSegment segments an inline graph upload.
//
// Candidate classification: nodes whose op is in candidateOps, or every
// node when candidateOps is empty. MandatoryNodes and WeakOps map onto the
// mandatory/weak classifiers.
func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed", "method_not_allowed")
		return
	}

	var req validation.SegmentationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error(), "bad_json")
		return
	}
	if req.MinimumSegmentSize == 0 && s.cfg.DefaultMinimumSegmentSize > 0 {
		req.MinimumSegmentSize = s.cfg.DefaultMinimumSegmentSize
	}
	if err := validation.ValidateSegmentationRequest(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_request")
		return
	}

	g, err := buildGraph(&req.Graph)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "invalid_graph")
		return
	}

	isCandidate := allNodes
	if len(req.CandidateOps) > 0 {
		isCandidate = pipeline.OpAllowList(req.CandidateOps...)
	}
	var isMandatory, isWeak segment.NodePredicate
	if len(req.MandatoryNodes) > 0 {
		isMandatory = pipeline.NamedNodes(req.MandatoryNodes...)
	}
	if len(req.WeakOps) > 0 {
		isWeak = pipeline.OpAllowList(req.WeakOps...)
	}

	opts := segment.Options{
		MinimumSegmentSize: req.MinimumSegmentSize,
		ExcludeNodes:       req.ExcludeNodes,
	}

	pass := pipeline.NewPass("api", isCandidate, opts,
		pipeline.WithLogger(s.logger),
		pipeline.WithMetrics(s.registry),
		pipeline.WithMandatory(isMandatory),
		pipeline.WithWeak(isWeak),
	)

	start := time.Now()
	result, err := pass.Run(g)
	if err != nil {
		writeSegmentationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toSegmentationResponse(result, g.NodeCount(), g.EdgeCount(), time.Since(start)))
}

func allNodes(*graph.Node) bool { return true }

// buildGraph materializes an uploaded graph spec.
func buildGraph(spec *validation.GraphSpec) (*graph.Graph, error) {
	g := graph.New()
	for _, node := range spec.Nodes {
		if _, err := g.AddNode(node.Name, node.Op, node.Device); err != nil {
			return nil, err
		}
	}
	for _, edge := range spec.Edges {
		if err := g.AddEdge(edge.From, edge.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}
