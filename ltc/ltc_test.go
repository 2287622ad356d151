package ltc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/ltc"
	"github.com/vassreach/vassreach/pathseq"
	"github.com/vassreach/vassreach/valuation"
)

func TestFromPathCollapsesLoop(t *testing.T) {
	// path: 0 -e0-> 1 -e1-> 2 -e2-> 1 -e3-> 3
	// edges 1 and 2 form a loop rooted at node 1.
	ts := pathseq.New(0)
	ts.Add(0, 1)
	ts.Add(1, 2)
	ts.Add(2, 1)
	ts.Add(3, 3)

	letters := map[int]valuation.Letter{
		0: {Counter: 0, Sign: valuation.Plus},
		1: {Counter: 0, Sign: valuation.Plus},
		2: {Counter: 0, Sign: valuation.Minus},
		3: {Counter: 0, Sign: valuation.Plus},
	}
	chain := ltc.FromPath(ts, func(e int) valuation.Letter { return letters[e] }, 1)

	elements := chain.Elements()
	require.Len(t, elements, 3)
	assert.False(t, elements[0].Loop)
	assert.True(t, elements[1].Loop)
	assert.ElementsMatch(t, []int{1, 2}, elements[1].Edges)
	assert.Equal(t, int32(0), elements[1].Vector.At(0))
	assert.False(t, elements[2].Loop)
}

func TestFromPathNoLoopIsAllTransitions(t *testing.T) {
	ts := pathseq.New(0)
	ts.Add(0, 1)
	ts.Add(1, 2)

	letters := map[int]valuation.Letter{
		0: {Counter: 0, Sign: valuation.Plus},
		1: {Counter: 0, Sign: valuation.Plus},
	}
	chain := ltc.FromPath(ts, func(e int) valuation.Letter { return letters[e] }, 1)
	assert.Len(t, chain.Elements(), 2)
	for _, el := range chain.Elements() {
		assert.False(t, el.Loop)
	}
}
