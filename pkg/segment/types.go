package segment

import (
	"github.com/dd0wney/cluso-segmenter/pkg/graph"
)

// NodePredicate classifies a node for segmentation. Predicates are plain
// functions so callers can compose policy without subclassing anything.
type NodePredicate func(*graph.Node) bool

// Segment is a maximal connected set of candidate nodes destined for fused
// execution on a single device.
type Segment struct {
	// Nodes holds the member node names, sorted lexicographically.
	Nodes []string
	// Device is the consensus device-affinity label shared by all non-weak
	// members. Empty when no non-weak member declares a device.
	Device string
}

// Contains reports whether the segment includes the named node.
func (s *Segment) Contains(name string) bool {
	for _, n := range s.Nodes {
		if n == name {
			return true
		}
	}
	return false
}

// Size returns the number of member nodes.
func (s *Segment) Size() int {
	return len(s.Nodes)
}

// BoundaryDirection distinguishes edges entering a segment from edges
// leaving it.
type BoundaryDirection string

const (
	// BoundaryEnter marks an edge whose target is inside the segment.
	BoundaryEnter BoundaryDirection = "enter"
	// BoundaryExit marks an edge whose source is inside the segment.
	BoundaryExit BoundaryDirection = "exit"
)

// BoundaryEdge is a graph edge crossing a segment border. Downstream
// consumers use these for enter/exit accounting when wiring the fused
// execution unit back into the surrounding graph.
type BoundaryEdge struct {
	From         string
	To           string
	Direction    BoundaryDirection
	SegmentIndex int
}

// Result is the full output of a segmentation run.
type Result struct {
	Segments []Segment
	Boundary []BoundaryEdge
}
