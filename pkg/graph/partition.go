package graph

import (
	"slices"
)

// Partition maps each node to an integer community label.
type Partition map[string]int

// Label returns the community label of node.
func (p Partition) Label(node string) (int, error) {
	label, ok := p[node]
	if !ok {
		return 0, NotFound("Label", node)
	}
	return label, nil
}

// Labels returns the distinct community labels in ascending order.
func (p Partition) Labels() []int {
	seen := make(map[int]struct{})
	labels := make([]int, 0)
	for _, l := range p {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		labels = append(labels, l)
	}
	slices.Sort(labels)
	return labels
}

// CommunityCount returns the number of distinct labels.
func (p Partition) CommunityCount() int {
	return len(p.Labels())
}

// CommunitiesOf groups the nodes of g by label. Labels with no member in g
// are present with an empty member list. Every node of g must be labeled.
func (p Partition) CommunitiesOf(g *Graph) (map[int][]string, error) {
	comms := make(map[int][]string)
	for _, l := range p.Labels() {
		comms[l] = []string{}
	}
	for _, node := range g.Nodes() {
		label, ok := p[node]
		if !ok {
			return nil, NotFound("CommunitiesOf", node)
		}
		comms[label] = append(comms[label], node)
	}
	return comms, nil
}

// TargetSet is an ordered collection of distinct node identifiers.
type TargetSet []string

// NewTargetSet de-duplicates nodes while keeping first-seen order.
func NewTargetSet(nodes ...string) TargetSet {
	seen := make(map[string]struct{}, len(nodes))
	ts := make(TargetSet, 0, len(nodes))
	for _, n := range nodes {
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		ts = append(ts, n)
	}
	return ts
}

// Set returns the members as a lookup set.
func (ts TargetSet) Set() map[string]struct{} {
	s := make(map[string]struct{}, len(ts))
	for _, n := range ts {
		s[n] = struct{}{}
	}
	return s
}

// Contains reports whether node is a member.
func (ts TargetSet) Contains(node string) bool {
	return slices.Contains(ts, node)
}

// Validate checks that ts is non-empty and every member is a node of g.
func (ts TargetSet) Validate(op string, g *Graph) error {
	if len(ts) == 0 {
		return NewError(op).Entity("targets").Cause(ErrEmptyTargets).Build()
	}
	for _, n := range ts {
		if !g.HasNode(n) {
			return NotFound(op, n)
		}
	}
	return nil
}
