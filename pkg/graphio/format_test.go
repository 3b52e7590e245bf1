package graphio

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-conceal/pkg/graph"
)

func TestLoadEdgeList(t *testing.T) {
	input := "1 2\n2 3\n\n3 1\n2 1\n  4   5  \n"

	g, err := LoadEdgeList(strings.NewReader(input), LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, 5, g.NodeCount())
	assert.Equal(t, 4, g.EdgeCount(), "reversed duplicate collapses")
	assert.True(t, g.HasEdge("3", "1"))
	assert.True(t, g.HasEdge("5", "4"))
}

func TestLoadEdgeList_SelfLoops(t *testing.T) {
	input := "1 2\n2 2\n"

	g, err := LoadEdgeList(strings.NewReader(input), LoadOptions{DropSelfLoops: true})
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
	assert.Equal(t, 2, g.NodeCount())

	_, err = LoadEdgeList(strings.NewReader(input), LoadOptions{})
	require.Error(t, err)
	assert.True(t, graph.IsMalformed(err))

	var gerr *graph.Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, 2, gerr.Line)
}

func TestLoadEdgeList_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"single token", "1 2\n3\n", 2},
		{"three tokens", "1 2 3\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEdgeList(strings.NewReader(tt.input), LoadOptions{})
			require.Error(t, err)
			assert.ErrorIs(t, err, graph.ErrMalformedInput)

			var gerr *graph.Error
			require.True(t, errors.As(err, &gerr))
			assert.Equal(t, tt.line, gerr.Line)
		})
	}
}

func TestWriteEdgeList_RoundTrip(t *testing.T) {
	g := graph.New()
	g.AddEdge("10", "2")
	g.AddEdge("2", "1")
	g.AddEdge("b", "a")

	var buf bytes.Buffer
	require.NoError(t, WriteEdgeList(&buf, g))
	assert.Equal(t, "1 2\n2 10\na b\n", buf.String())

	back, err := LoadEdgeList(&buf, LoadOptions{})
	require.NoError(t, err)
	assert.True(t, g.Equal(back))
}

func TestLoadAssignment(t *testing.T) {
	p, err := LoadAssignment(strings.NewReader("1 0\n2 0\n\n3 1\n2 5\n"))
	require.NoError(t, err)

	assert.Equal(t, graph.Partition{"1": 0, "2": 5, "3": 1}, p)
}

func TestLoadAssignment_Malformed(t *testing.T) {
	for _, input := range []string{"1 x\n", "1\n", "1 2 3\n"} {
		_, err := LoadAssignment(strings.NewReader(input))
		assert.ErrorIs(t, err, graph.ErrMalformedInput, "input %q", input)
	}
}

func TestTargets_RoundTrip(t *testing.T) {
	sets, err := LoadTargets(strings.NewReader("1 2\n\n3 4 3 5\n"))
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, graph.TargetSet{"1", "2"}, sets[0])
	assert.Equal(t, graph.TargetSet{"3", "4", "5"}, sets[1])

	var buf bytes.Buffer
	require.NoError(t, WriteTargets(&buf, sets))
	assert.Equal(t, "1 2\n3 4 5\n", buf.String())
}

func TestLoadTargets_Empty(t *testing.T) {
	sets, err := LoadTargets(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, sets)
}
