package pathseq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/pathseq"
	"github.com/vassreach/vassreach/valuation"
)

func TestTransitionSequenceBasics(t *testing.T) {
	ts := pathseq.New(0)
	ts.Add(10, 1)
	ts.Add(11, 2)
	ts.Add(12, 1)

	assert.Equal(t, 3, ts.Len())
	assert.Equal(t, 0, ts.First())
	assert.Equal(t, 1, ts.Last())
	assert.True(t, ts.HasLoop())
	assert.True(t, ts.ContainsNode(2))
	assert.False(t, ts.ContainsNode(5))
}

func TestSliceAndConcat(t *testing.T) {
	ts := pathseq.New(0)
	ts.Add(1, 1)
	ts.Add(2, 2)
	ts.Add(3, 3)

	head := ts.Slice(0, 1)
	tail := ts.SliceEnd(1)
	assert.Equal(t, 1, head.Len())
	assert.Equal(t, 2, tail.Len())

	joined := head.Concat(tail)
	assert.Equal(t, ts.Len(), joined.Len())
	assert.Equal(t, ts.Last(), joined.Last())
}

func TestIsNReachingDetectsNegative(t *testing.T) {
	plus0 := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	minus0 := valuation.Letter{Counter: 0, Sign: valuation.Minus}

	res := pathseq.IsNReaching(valuation.Zero(1), []valuation.Letter{plus0, minus0, minus0})
	require.False(t, res.Reaches)
	assert.Equal(t, 0, res.FailCounter)
	assert.Equal(t, 2, res.FailHopIndex)

	res2 := pathseq.IsNReaching(valuation.Zero(1), []valuation.Letter{plus0, minus0})
	assert.True(t, res2.Reaches)
}

func TestIsCounterForwardsPumped(t *testing.T) {
	plus0 := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	minus0 := valuation.Letter{Counter: 0, Sign: valuation.Minus}

	// One complete round trip (up then back to baseline) meets a
	// threshold of 1 but not a threshold of 2.
	oneTrip := []valuation.Letter{plus0, minus0}
	assert.True(t, pathseq.IsCounterForwardsPumped(oneTrip, 0, 1))
	assert.False(t, pathseq.IsCounterForwardsPumped(oneTrip, 0, 2))

	// Two complete round trips meet a threshold of 2.
	twoTrips := []valuation.Letter{plus0, minus0, plus0, minus0}
	assert.True(t, pathseq.IsCounterForwardsPumped(twoTrips, 0, 2))

	// A prefix that is still above baseline at the end (no completed
	// round trip yet) never counts as pumped, regardless of threshold.
	stillUp := []valuation.Letter{plus0, plus0, minus0}
	assert.False(t, pathseq.IsCounterForwardsPumped(stillUp, 0, 1))
}
