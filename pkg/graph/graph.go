package graph

// Node is a single operation in a computation graph.
type Node struct {
	Name   string // Unique within the graph
	Op     string // Operation type (e.g. "MatMul", "Relu")
	Device string // Device-affinity label, may be empty
}

// Edge is a directed operand -> user dependency between two nodes.
type Edge struct {
	From string
	To   string
}

// Graph is an in-memory directed graph of named nodes.
//
// Node iteration order is insertion order, so repeated walks over the same
// graph are deterministic. The graph is not safe for concurrent mutation;
// callers that share a graph across goroutines must treat it as read-only.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	outgoing map[string][]Edge
	incoming map[string][]Edge
	edges    int
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]Edge),
		incoming: make(map[string][]Edge),
	}
}

// AddNode registers a node. Node names must be unique and non-empty.
func (g *Graph) AddNode(name, op, device string) (*Node, error) {
	if name == "" {
		return nil, NewError("AddNode").Node(name).Cause(ErrEmptyNodeName).Err()
	}
	if _, exists := g.nodes[name]; exists {
		return nil, NewError("AddNode").Node(name).Cause(ErrDuplicateNode).Err()
	}

	node := &Node{Name: name, Op: op, Device: device}
	g.nodes[name] = node
	g.order = append(g.order, name)
	return node, nil
}

// AddEdge adds a directed edge from one existing node to another.
func (g *Graph) AddEdge(from, to string) error {
	if _, exists := g.nodes[from]; !exists {
		return NewError("AddEdge").Node(from).Cause(ErrNodeNotFound).Err()
	}
	if _, exists := g.nodes[to]; !exists {
		return NewError("AddEdge").Node(to).Cause(ErrNodeNotFound).Err()
	}

	edge := Edge{From: from, To: to}
	g.outgoing[from] = append(g.outgoing[from], edge)
	g.incoming[to] = append(g.incoming[to], edge)
	g.edges++
	return nil
}

// Node returns the node with the given name, or nil if absent.
func (g *Graph) Node(name string) *Node {
	return g.nodes[name]
}

// HasNode reports whether a node with the given name exists.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.nodes[name]
	return ok
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.order))
	for _, name := range g.order {
		nodes = append(nodes, g.nodes[name])
	}
	return nodes
}

// NodeNames returns all node names in insertion order.
func (g *Graph) NodeNames() []string {
	names := make([]string, len(g.order))
	copy(names, g.order)
	return names
}

// Outgoing returns the edges leaving the named node.
func (g *Graph) Outgoing(name string) []Edge {
	return g.outgoing[name]
}

// Incoming returns the edges arriving at the named node.
func (g *Graph) Incoming(name string) []Edge {
	return g.incoming[name]
}

// Edges returns every edge in the graph, grouped by source node in
// insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for _, name := range g.order {
		edges = append(edges, g.outgoing[name]...)
	}
	return edges
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}
