package graph

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartitionLabel(t *testing.T) {
	p := Partition{"1": 0, "2": 1}

	label, err := p.Label("2")
	require.NoError(t, err)
	assert.Equal(t, 1, label)

	_, err = p.Label("3")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `"3"`)
}

func TestPartitionLabels(t *testing.T) {
	p := Partition{"a": 5, "b": 2, "c": 5, "d": -1}
	assert.Equal(t, []int{-1, 2, 5}, p.Labels())
	assert.Equal(t, 3, p.CommunityCount())
}

func TestCommunitiesOf(t *testing.T) {
	g := triangles(t)
	p := Partition{"1": 0, "2": 0, "3": 0, "4": 1, "5": 1, "6": 1, "99": 7}

	comms, err := p.CommunitiesOf(g)
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, comms[0])
	assert.Equal(t, []string{"4", "5", "6"}, comms[1])
	// Label 7 only covers a node outside the graph
	members, ok := comms[7]
	assert.True(t, ok)
	assert.Empty(t, members)
}

func TestCommunitiesOf_MissingNode(t *testing.T) {
	g := triangles(t)
	p := Partition{"1": 0, "2": 0, "3": 0, "4": 1, "5": 1}

	_, err := p.CommunitiesOf(g)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), `"6"`)
}

func TestNewTargetSet(t *testing.T) {
	ts := NewTargetSet("3", "1", "3", "2", "1")
	assert.True(t, slices.Equal(ts, TargetSet{"3", "1", "2"}))
	assert.True(t, ts.Contains("2"))
	assert.False(t, ts.Contains("4"))
	assert.Len(t, ts.Set(), 3)
}

func TestTargetSetValidate(t *testing.T) {
	g := triangles(t)

	assert.NoError(t, NewTargetSet("1", "4").Validate("test", g))

	err := TargetSet{}.Validate("test", g)
	assert.ErrorIs(t, err, ErrEmptyTargets)

	err = NewTargetSet("1", "nope").Validate("test", g)
	assert.ErrorIs(t, err, ErrNodeNotFound)
}
