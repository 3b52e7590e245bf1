package graph

import (
	"errors"
	"slices"
	"testing"
)

// triangles builds two disjoint triangles {1,2,3} and {4,5,6}
func triangles(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, e := range [][2]string{{"1", "2"}, {"2", "3"}, {"1", "3"}, {"4", "5"}, {"5", "6"}, {"4", "6"}} {
		if _, err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatalf("AddEdge(%s, %s) failed: %v", e[0], e[1], err)
		}
	}
	return g
}

func TestAddEdge(t *testing.T) {
	g := New()

	added, err := g.AddEdge("a", "b")
	if err != nil || !added {
		t.Fatalf("AddEdge(a, b) = %v, %v; want true, nil", added, err)
	}
	if !g.HasNode("a") || !g.HasNode("b") {
		t.Error("AddEdge should add missing endpoints")
	}

	// Idempotent in either direction
	added, err = g.AddEdge("b", "a")
	if err != nil || added {
		t.Errorf("duplicate AddEdge = %v, %v; want false, nil", added, err)
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount = %d, want 1", g.EdgeCount())
	}
}

func TestAddEdge_SelfLoop(t *testing.T) {
	g := New()
	_, err := g.AddEdge("x", "x")
	if !errors.Is(err, ErrSelfLoop) {
		t.Fatalf("expected ErrSelfLoop, got %v", err)
	}
	if g.NodeCount() != 0 {
		t.Errorf("rejected self-loop should not add nodes, got %d", g.NodeCount())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := triangles(t)

	if !g.RemoveEdge("2", "1") {
		t.Fatal("RemoveEdge(2, 1) should report true")
	}
	if g.HasEdge("1", "2") || g.HasEdge("2", "1") {
		t.Error("edge 1-2 still present")
	}
	if g.RemoveEdge("1", "2") {
		t.Error("removing a missing edge should report false")
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount = %d, want 5", g.EdgeCount())
	}
	if g.NodeCount() != 6 {
		t.Errorf("RemoveEdge must not drop nodes, NodeCount = %d", g.NodeCount())
	}
}

func TestNodesAndEdgesOrdering(t *testing.T) {
	g := New()
	g.AddEdge("10", "2")
	g.AddEdge("b", "a")
	g.AddEdge("2", "a")
	g.AddNode("1")

	wantNodes := []string{"1", "2", "10", "a", "b"}
	if got := g.Nodes(); !slices.Equal(got, wantNodes) {
		t.Errorf("Nodes() = %v, want %v", got, wantNodes)
	}

	wantEdges := []Edge{{"2", "10"}, {"2", "a"}, {"a", "b"}}
	if got := g.Edges(); !slices.Equal(got, wantEdges) {
		t.Errorf("Edges() = %v, want %v", got, wantEdges)
	}
}

func TestCompareIDs(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"2", "10", -1},
		{"10", "2", 1},
		{"7", "7", 0},
		{"9", "a", -1},
		{"a", "9", 1},
		{"abc", "abd", -1},
		{"-3", "1", -1},
	}

	for _, tt := range tests {
		if got := CompareIDs(tt.a, tt.b); got != tt.want {
			t.Errorf("CompareIDs(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := triangles(t)
	c := g.Clone()

	c.RemoveEdge("1", "2")
	c.AddEdge("3", "4")

	if !g.HasEdge("1", "2") || g.HasEdge("3", "4") {
		t.Error("mutating the clone changed the original")
	}
	if g.EdgeCount() != 6 {
		t.Errorf("original EdgeCount = %d, want 6", g.EdgeCount())
	}
}

func TestComplement(t *testing.T) {
	g := triangles(t)
	c := g.Complement()

	// K6 has 15 edges
	if c.EdgeCount() != 15-6 {
		t.Errorf("complement EdgeCount = %d, want 9", c.EdgeCount())
	}
	for _, e := range g.Edges() {
		if c.HasEdge(e.U, e.V) {
			t.Errorf("complement contains original edge %v", e)
		}
	}
	if !c.Complement().Equal(g) {
		t.Error("complement of complement should equal the original")
	}
}

func TestEqual(t *testing.T) {
	a := triangles(t)
	b := triangles(t)
	if !a.Equal(b) {
		t.Fatal("identical graphs should be equal")
	}
	b.AddNode("7")
	if a.Equal(b) {
		t.Error("graphs with different node sets should not be equal")
	}
}

func TestErrorFormatting(t *testing.T) {
	err := NewError("LoadEdgeList").Line(3).Token("a b c").Cause(ErrMalformedInput).Build()

	if !IsMalformed(err) {
		t.Error("expected IsMalformed to match")
	}
	want := `LoadEdgeList line "a b c" (line 3): malformed input`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	nf := NotFound("Label", "42")
	if !IsNotFound(nf) {
		t.Error("expected IsNotFound to match")
	}
	var ge *Error
	if !errors.As(nf, &ge) || ge.Key != "42" {
		t.Errorf("errors.As should expose the missing key, got %+v", ge)
	}
}
