package pipeline

import (
	"github.com/dd0wney/cluso-segmenter/pkg/graph"
	"github.com/dd0wney/cluso-segmenter/pkg/segment"
)

// OpAllowList matches nodes whose op is in the given list.
func OpAllowList(ops ...string) segment.NodePredicate {
	set := make(map[string]struct{}, len(ops))
	for _, op := range ops {
		set[op] = struct{}{}
	}
	return func(node *graph.Node) bool {
		_, ok := set[node.Op]
		return ok
	}
}

// OpDenyList matches nodes whose op is NOT in the given list.
func OpDenyList(ops ...string) segment.NodePredicate {
	return Not(OpAllowList(ops...))
}

// NamedNodes matches nodes by exact name.
func NamedNodes(names ...string) segment.NodePredicate {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return func(node *graph.Node) bool {
		_, ok := set[node.Name]
		return ok
	}
}

// OnDevice matches nodes pinned to the given device label.
func OnDevice(device string) segment.NodePredicate {
	return func(node *graph.Node) bool {
		return node.Device == device
	}
}

// SourceNodes matches nodes with no incoming edges in the given graph.
// Graph inputs are typically kept out of segments so the fused unit still
// has somewhere to receive its feeds from.
func SourceNodes(g *graph.Graph) segment.NodePredicate {
	return func(node *graph.Node) bool {
		return len(g.Incoming(node.Name)) == 0
	}
}

// And matches when every predicate matches.
func And(predicates ...segment.NodePredicate) segment.NodePredicate {
	return func(node *graph.Node) bool {
		for _, p := range predicates {
			if !p(node) {
				return false
			}
		}
		return true
	}
}

// Or matches when any predicate matches.
func Or(predicates ...segment.NodePredicate) segment.NodePredicate {
	return func(node *graph.Node) bool {
		for _, p := range predicates {
			if p(node) {
				return true
			}
		}
		return false
	}
}

// Not inverts a predicate.
func Not(p segment.NodePredicate) segment.NodePredicate {
	return func(node *graph.Node) bool {
		return !p(node)
	}
}
