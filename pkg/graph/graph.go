package graph

import (
	"slices"
	"strconv"
)

// Edge is an unordered node pair stored in canonical form (U sorts before V).
type Edge struct {
	U string
	V string
}

// NewEdge returns the canonical edge between a and b.
func NewEdge(a, b string) Edge {
	if CompareIDs(a, b) > 0 {
		a, b = b, a
	}
	return Edge{U: a, V: b}
}

// Graph is an undirected simple graph over string node identifiers.
// Every edge endpoint is a member of the node set.
type Graph struct {
	adj   map[string]map[string]struct{}
	edges int
}

// New creates an empty graph
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]struct{})}
}

// AddNode inserts a node if it is not already present.
func (g *Graph) AddNode(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]struct{})
	}
}

// HasNode reports whether id is in the node set.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// AddEdge connects u and v, adding either endpoint if missing.
// Adding an existing edge is a no-op and reports false.
func (g *Graph) AddEdge(u, v string) (bool, error) {
	if u == v {
		return false, NewError("AddEdge").Edge(u, v).Cause(ErrSelfLoop).Build()
	}
	g.AddNode(u)
	g.AddNode(v)
	if _, ok := g.adj[u][v]; ok {
		return false, nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edges++
	return true, nil
}

// RemoveEdge deletes the edge between u and v and reports whether it existed.
func (g *Graph) RemoveEdge(u, v string) bool {
	if !g.HasEdge(u, v) {
		return false
	}
	delete(g.adj[u], v)
	delete(g.adj[v], u)
	g.edges--
	return true
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v string) bool {
	nbrs, ok := g.adj[u]
	if !ok {
		return false
	}
	_, ok = nbrs[v]
	return ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Nodes returns every node in CompareIDs order.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, CompareIDs)
	return nodes
}

// Edges returns every edge once, in canonical form, sorted.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edges)
	for u, nbrs := range g.adj {
		for v := range nbrs {
			if CompareIDs(u, v) < 0 {
				edges = append(edges, Edge{U: u, V: v})
			}
		}
	}
	slices.SortFunc(edges, compareEdges)
	return edges
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		adj:   make(map[string]map[string]struct{}, len(g.adj)),
		edges: g.edges,
	}
	for u, nbrs := range g.adj {
		cn := make(map[string]struct{}, len(nbrs))
		for v := range nbrs {
			cn[v] = struct{}{}
		}
		c.adj[u] = cn
	}
	return c
}

// Complement returns the graph over the same node set whose edges are
// exactly the non-edges of g.
func (g *Graph) Complement() *Graph {
	nodes := g.Nodes()
	c := New()
	for _, n := range nodes {
		c.AddNode(n)
	}
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if !g.HasEdge(nodes[i], nodes[j]) {
				c.AddEdge(nodes[i], nodes[j])
			}
		}
	}
	return c
}

// Equal reports whether both graphs have identical node and edge sets.
func (g *Graph) Equal(other *Graph) bool {
	if g.NodeCount() != other.NodeCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	for u, nbrs := range g.adj {
		if !other.HasNode(u) {
			return false
		}
		for v := range nbrs {
			if !other.HasEdge(u, v) {
				return false
			}
		}
	}
	return true
}

// CompareIDs orders node identifiers: integers numerically, then everything
// else lexicographically. Integers sort before non-integers.
func CompareIDs(a, b string) int {
	ai, aerr := strconv.ParseInt(a, 10, 64)
	bi, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		if ai != bi {
			if ai < bi {
				return -1
			}
			return 1
		}
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareEdges(a, b Edge) int {
	if c := CompareIDs(a.U, b.U); c != 0 {
		return c
	}
	return CompareIDs(a.V, b.V)
}
