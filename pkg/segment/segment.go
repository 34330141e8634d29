package segment

import (
	"sort"

	"github.com/dd0wney/cluso-segmenter/pkg/graph"
)

// SegmentGraph partitions the graph into maximal connected sets of candidate
// nodes. Mandatory and weak classification default to "no node".
//
// The graph is only read; it must stay unmodified for the duration of the
// call. On error no segments are returned.
func SegmentGraph(g *graph.Graph, isCandidate NodePredicate, opts Options) ([]Segment, error) {
	result, err := SegmentGraphWith(g, isCandidate, nil, nil, opts)
	if err != nil {
		return nil, err
	}
	return result.Segments, nil
}

// SegmentGraphWith partitions the graph with explicit mandatory and weak
// classification and returns segments together with their boundary edges.
//
// isMandatory marks nodes that must be segmented even when their segment
// falls below the minimum size. isWeak marks nodes that join segments but do
// not count toward device consensus (device-agnostic ops). Either may be nil.
func SegmentGraphWith(g *graph.Graph, isCandidate, isMandatory, isWeak NodePredicate, opts Options) (*Result, error) {
	if g == nil {
		return nil, invalidConfig("nil graph")
	}
	if isCandidate == nil {
		return nil, invalidConfig("nil candidate predicate")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if isMandatory == nil {
		isMandatory = func(*graph.Node) bool { return false }
	}
	if isWeak == nil {
		isWeak = func(*graph.Node) bool { return false }
	}

	s, err := newSegmenter(g, isCandidate, isMandatory, isWeak, opts)
	if err != nil {
		return nil, err
	}

	components := s.connectedCandidates()

	refined := make([]component, 0, len(components))
	for _, comp := range components {
		refined = append(refined, s.refineByDevice(comp)...)
	}

	kept := make([]component, 0, len(refined))
	for _, comp := range refined {
		if len(comp.members) >= opts.MinimumSegmentSize || s.hasMandatory(comp.members) {
			kept = append(kept, comp)
		}
	}

	if err := s.validateAcyclic(kept); err != nil {
		return nil, err
	}

	return s.buildResult(kept), nil
}

// component is a candidate node set with its consensus device, identified by
// node indices into the segmenter's insertion-ordered name table.
type component struct {
	members []int
	device  string
}

// segmenter holds the per-run working state: the node classification arrays
// indexed by insertion order.
type segmenter struct {
	g         *graph.Graph
	names     []string
	index     map[string]int
	candidate []bool
	mandatory []bool
	weak      []bool
}

func newSegmenter(g *graph.Graph, isCandidate, isMandatory, isWeak NodePredicate, opts Options) (*segmenter, error) {
	excluded := opts.excludeSet()

	names := g.NodeNames()
	s := &segmenter{
		g:         g,
		names:     names,
		index:     make(map[string]int, len(names)),
		candidate: make([]bool, len(names)),
		mandatory: make([]bool, len(names)),
		weak:      make([]bool, len(names)),
	}

	for i, name := range names {
		node := g.Node(name)
		s.index[name] = i
		s.mandatory[i] = isMandatory(node)
		s.weak[i] = isWeak(node)

		_, isExcluded := excluded[name]
		if isExcluded && s.mandatory[i] {
			// Excluded and mandatory contradict each other; the caller has
			// to decide which one wins before asking for segmentation.
			return nil, inconsistentConstraint(name)
		}
		s.candidate[i] = isCandidate(node) && !isExcluded
	}
	return s, nil
}

// connectedCandidates merges candidate nodes across candidate-to-candidate
// edges and returns the resulting components, ordered by first member.
func (s *segmenter) connectedCandidates() [][]int {
	uf := newUnionFind(len(s.names))
	for _, edge := range s.g.Edges() {
		from, to := s.index[edge.From], s.index[edge.To]
		if s.candidate[from] && s.candidate[to] {
			uf.union(from, to)
		}
	}

	rootOrder := make([]int, 0)
	byRoot := make(map[int][]int)
	for i := range s.names {
		if !s.candidate[i] {
			continue
		}
		root := uf.find(i)
		if _, seen := byRoot[root]; !seen {
			rootOrder = append(rootOrder, root)
		}
		byRoot[root] = append(byRoot[root], i)
	}

	components := make([][]int, 0, len(rootOrder))
	for _, root := range rootOrder {
		components = append(components, byRoot[root])
	}
	return components
}

// hasMandatory reports whether any member is mandatory.
func (s *segmenter) hasMandatory(members []int) bool {
	for _, i := range members {
		if s.mandatory[i] {
			return true
		}
	}
	return false
}

// buildResult converts the kept components into the public result form:
// sorted member names, plus boundary edges in graph edge order.
func (s *segmenter) buildResult(kept []component) *Result {
	segments := make([]Segment, 0, len(kept))
	segOf := make(map[int]int, len(s.names))
	for idx, comp := range kept {
		nodes := make([]string, 0, len(comp.members))
		for _, i := range comp.members {
			nodes = append(nodes, s.names[i])
			segOf[i] = idx
		}
		sort.Strings(nodes)
		segments = append(segments, Segment{Nodes: nodes, Device: comp.device})
	}

	boundary := make([]BoundaryEdge, 0)
	for _, edge := range s.g.Edges() {
		from, to := s.index[edge.From], s.index[edge.To]
		fromSeg, inFrom := segOf[from]
		toSeg, inTo := segOf[to]
		if inFrom && (!inTo || toSeg != fromSeg) {
			boundary = append(boundary, BoundaryEdge{
				From: edge.From, To: edge.To,
				Direction: BoundaryExit, SegmentIndex: fromSeg,
			})
		}
		if inTo && (!inFrom || fromSeg != toSeg) {
			boundary = append(boundary, BoundaryEdge{
				From: edge.From, To: edge.To,
				Direction: BoundaryEnter, SegmentIndex: toSeg,
			})
		}
	}

	return &Result{Segments: segments, Boundary: boundary}
}
