package parikh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/parikh"
)

func TestImageFromEdgesAndAdd(t *testing.T) {
	img := parikh.FromEdges([]int{1, 2, 1, 3})
	assert.Equal(t, 2, img.Count(1))
	assert.Equal(t, 1, img.Count(2))
	assert.Equal(t, 0, img.Count(99))

	other := parikh.FromEdges([]int{1})
	sum := img.Add(other)
	assert.Equal(t, 3, sum.Count(1))
}

func TestConnectedComponents(t *testing.T) {
	// two disjoint triangles: edges {0:0->1,1:1->2,2:2->0} and {3:3->4,4:4->5,5:5->3}
	endpoints := map[int]parikh.EdgeEndpoints{
		0: {From: 0, To: 1},
		1: {From: 1, To: 2},
		2: {From: 2, To: 0},
		3: {From: 3, To: 4},
		4: {From: 4, To: 5},
		5: {From: 5, To: 3},
	}
	img := parikh.FromEdges([]int{0, 1, 2, 3, 4, 5})
	comps := parikh.ConnectedComponents(img, func(e int) parikh.EdgeEndpoints { return endpoints[e] })
	require.Len(t, comps, 2)
	assert.Len(t, comps[0].Edges, 3)
	assert.Len(t, comps[1].Edges, 3)
	assert.Empty(t, comps[0].Incoming)
	assert.Empty(t, comps[0].Outgoing)
}
