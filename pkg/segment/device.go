package segment

// refineByDevice resolves device consensus for one connected component.
//
// Weak members never count toward consensus. If the non-weak members agree
// on at most one non-empty device the component survives intact. Otherwise
// the component is split: members are grouped by their own device label and
// each group is re-checked for connectivity, with disconnected or
// device-less members dropped back to the unsegmented pool. This runs as a
// second pass over the union-find output so it can be tested in isolation.
func (s *segmenter) refineByDevice(members []int) []component {
	devices := make([]string, 0, 2)
	seen := make(map[string]struct{})
	hasNonWeak := false
	for _, i := range members {
		if s.weak[i] {
			continue
		}
		hasNonWeak = true
		device := s.g.Node(s.names[i]).Device
		if device == "" {
			continue
		}
		if _, ok := seen[device]; !ok {
			seen[device] = struct{}{}
			devices = append(devices, device)
		}
	}

	// A component with only weak members has nothing to anchor a device
	// consensus and cannot be fused anywhere.
	if !hasNonWeak {
		return nil
	}

	switch len(devices) {
	case 0:
		return []component{{members: members, device: ""}}
	case 1:
		return []component{{members: members, device: devices[0]}}
	}

	// Inconsistent devices: split by each member's own label. Members with
	// no device label have no same-device peers and are dropped.
	refined := make([]component, 0, len(devices))
	for _, device := range devices {
		group := make(map[int]struct{})
		for _, i := range members {
			if s.g.Node(s.names[i]).Device == device {
				group[i] = struct{}{}
			}
		}
		for _, piece := range s.connectedWithin(group, members) {
			if !s.allWeak(piece) {
				refined = append(refined, component{members: piece, device: device})
			}
		}
	}
	return refined
}

// connectedWithin splits a member subset into its connected pieces, using
// only edges whose endpoints are both in the subset. Members are visited in
// insertion order so output is deterministic.
func (s *segmenter) connectedWithin(group map[int]struct{}, order []int) [][]int {
	visited := make(map[int]struct{}, len(group))
	pieces := make([][]int, 0, 1)

	for _, start := range order {
		if _, ok := group[start]; !ok {
			continue
		}
		if _, ok := visited[start]; ok {
			continue
		}

		piece := make([]int, 0, len(group))
		queue := []int{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			i := queue[0]
			queue = queue[1:]
			piece = append(piece, i)

			for _, neighbor := range s.neighborsOf(i) {
				if _, inGroup := group[neighbor]; !inGroup {
					continue
				}
				if _, done := visited[neighbor]; done {
					continue
				}
				visited[neighbor] = struct{}{}
				queue = append(queue, neighbor)
			}
		}
		pieces = append(pieces, piece)
	}
	return pieces
}

// neighborsOf returns the indices adjacent to i in either direction.
func (s *segmenter) neighborsOf(i int) []int {
	name := s.names[i]
	out := s.g.Outgoing(name)
	in := s.g.Incoming(name)
	neighbors := make([]int, 0, len(out)+len(in))
	for _, edge := range out {
		neighbors = append(neighbors, s.index[edge.To])
	}
	for _, edge := range in {
		neighbors = append(neighbors, s.index[edge.From])
	}
	return neighbors
}

// allWeak reports whether every member is weak.
func (s *segmenter) allWeak(members []int) bool {
	for _, i := range members {
		if !s.weak[i] {
			return false
		}
	}
	return true
}
