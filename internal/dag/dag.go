package dag

import "fmt"

type node struct {
	id    string
	index int
	// deps and dependents keep insertion order so every walk is deterministic.
	deps       []*node
	dependents []*node
}

// Graph is a directed graph of named nodes that remembers the order in which
// nodes and edges were added. It is not safe for concurrent use.
type Graph struct {
	nodes map[string]*node
	order []*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a node with the given ID. Adding an existing ID does nothing.
func (g *Graph) AddNode(id string) {
	if _, ok := g.nodes[id]; ok {
		return
	}
	n := &node{id: id, index: len(g.order)}
	g.nodes[id] = n
	g.order = append(g.order, n)
}

// AddEdge records that toID depends on fromID. Both nodes must exist and a
// repeated edge is ignored.
func (g *Graph) AddEdge(fromID, toID string) error {
	if fromID == toID {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", fromID, fromID)
	}

	fromNode, ok := g.nodes[fromID]
	if !ok {
		return fmt.Errorf("source node not found: %s", fromID)
	}
	toNode, ok := g.nodes[toID]
	if !ok {
		return fmt.Errorf("destination node not found: %s", toID)
	}

	for _, dep := range toNode.deps {
		if dep == fromNode {
			return nil
		}
	}
	toNode.deps = append(toNode.deps, fromNode)
	fromNode.dependents = append(fromNode.dependents, toNode)
	return nil
}

// DetectCycles returns an error naming a node on a cycle, if there is one.
func (g *Graph) DetectCycles() error {
	// permanent: fully visited and not on a cycle.
	// temporary: on the current recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.id] {
			return nil
		}
		if temporary[n.id] {
			return fmt.Errorf("cycle detected involving node '%s'", n.id)
		}
		temporary[n.id] = true
		for _, dependent := range n.dependents {
			if err := visit(dependent); err != nil {
				return err
			}
		}
		delete(temporary, n.id)
		permanent[n.id] = true
		return nil
	}

	for _, n := range g.order {
		if err := visit(n); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalOrder returns every node ID such that each node comes after all
// of its dependencies. Among nodes that are ready at the same time, the one
// added first comes first, so an edge-free graph keeps insertion order.
// A cyclic graph is an error; call DetectCycles first to learn which node is
// on the cycle.
func (g *Graph) TopologicalOrder() ([]string, error) {
	pending := make(map[string]int, len(g.order))
	for _, n := range g.order {
		pending[n.id] = len(n.deps)
	}
	done := make([]bool, len(g.order))

	out := make([]string, 0, len(g.order))
	for len(out) < len(g.order) {
		// Pick the earliest-added ready node; graphs here are small.
		var next *node
		for _, n := range g.order {
			if !done[n.index] && pending[n.id] == 0 {
				next = n
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("graph is not acyclic: %d of %d nodes ordered", len(out), len(g.order))
		}
		done[next.index] = true
		out = append(out, next.id)
		for _, dependent := range next.dependents {
			pending[dependent.id]--
		}
	}
	return out, nil
}
