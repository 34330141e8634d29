package segment

import "fmt"

// DFS colors for cycle detection
const (
	white = 0 // Unvisited
	gray  = 1 // Currently visiting (in recursion stack)
	black = 2 // Finished visiting
)

// validateAcyclic rejects segment sets the downstream executor cannot run:
// a cycle inside a segment's own members, or a dependency path that leaves
// a segment and comes back to it once segments are contracted to single
// nodes. Cycles running entirely through unsegmented nodes are tolerated.
func (s *segmenter) validateAcyclic(kept []component) error {
	segOf := make(map[int]int, len(s.names))
	for idx, comp := range kept {
		for _, i := range comp.members {
			segOf[i] = idx
		}
	}

	for idx, comp := range kept {
		if s.hasInternalCycle(comp.members) {
			return unresolvableCycle(fmt.Sprintf("segment %d contains a cycle", idx))
		}
	}

	for idx := range kept {
		if s.reachesItself(idx, kept, segOf) {
			return unresolvableCycle(fmt.Sprintf("segment %d has forward and backward paths to another contracted node", idx))
		}
	}
	return nil
}

// hasInternalCycle runs three-color DFS restricted to the member set.
func (s *segmenter) hasInternalCycle(members []int) bool {
	inSet := make(map[int]struct{}, len(members))
	for _, i := range members {
		inSet[i] = struct{}{}
	}

	color := make(map[int]int, len(members))
	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		for _, neighbor := range s.successorsOf(i) {
			if _, ok := inSet[neighbor]; !ok {
				continue
			}
			switch color[neighbor] {
			case gray:
				return true
			case white:
				if visit(neighbor) {
					return true
				}
			}
		}
		color[i] = black
		return false
	}

	for _, i := range members {
		if color[i] == white && visit(i) {
			return true
		}
	}
	return false
}

// reachesItself walks the contracted graph from the given segment and
// reports whether any path returns to it. Contracted nodes are encoded as
// -(segmentIndex+1) for segments and the plain node index otherwise;
// intra-segment edges collapse away.
func (s *segmenter) reachesItself(segIdx int, kept []component, segOf map[int]int) bool {
	target := contractedID(segIdx, -1, segOf)

	visited := make(map[int]struct{})
	queue := make([]int, 0)
	for _, i := range kept[segIdx].members {
		for _, succ := range s.successorsOf(i) {
			id := contractedID(segIdx, succ, segOf)
			if id == target {
				continue // intra-segment edge
			}
			if _, ok := visited[id]; !ok {
				visited[id] = struct{}{}
				queue = append(queue, id)
			}
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == target {
			return true
		}

		for _, node := range s.contractedMembers(id, kept) {
			for _, succ := range s.successorsOf(node) {
				next := contractedID(-1, succ, segOf)
				if next == id {
					continue
				}
				if _, ok := visited[next]; !ok {
					visited[next] = struct{}{}
					queue = append(queue, next)
				}
			}
		}
	}
	return false
}

// successorsOf returns the node indices directly downstream of i.
func (s *segmenter) successorsOf(i int) []int {
	edges := s.g.Outgoing(s.names[i])
	successors := make([]int, 0, len(edges))
	for _, edge := range edges {
		successors = append(successors, s.index[edge.To])
	}
	return successors
}

// contractedID maps a node index to its contracted-graph identity. When
// segIdx is non-negative and node is -1 it encodes that segment directly.
func contractedID(segIdx, node int, segOf map[int]int) int {
	if node < 0 {
		return -(segIdx + 1)
	}
	if idx, ok := segOf[node]; ok {
		return -(idx + 1)
	}
	return node
}

// contractedMembers expands a contracted-graph node back into graph node
// indices: all members for a segment, the single node otherwise.
func (s *segmenter) contractedMembers(id int, kept []component) []int {
	if id < 0 {
		return kept[-id-1].members
	}
	return []int{id}
}
