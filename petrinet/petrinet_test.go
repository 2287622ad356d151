package petrinet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/petrinet"
)

const mutexSpec = `
vars idle critical lock
rules
idle >= 1, lock >= 1 -> critical' = critical + 1, idle' = idle - 1, lock' = lock - 1;
critical >= 1 -> critical' = critical - 1, idle' = idle + 1, lock' = lock + 1;
init idle = 1, critical = 0, lock = 1
target critical = 1
`

func TestParseMutualExclusionSpec(t *testing.T) {
	s, err := petrinet.Parse(mutexSpec)
	require.NoError(t, err)
	assert.Equal(t, []string{"idle", "critical", "lock"}, s.Vars)
	require.Len(t, s.Rules, 2)
	assert.Len(t, s.Rules[0].Guards, 2)
	assert.Len(t, s.Rules[0].Updates, 3)
	require.Len(t, s.Init, 3)
	assert.Equal(t, int64(1), s.Init[0].Value)
}

func TestParseRejectsCrossVariableUpdate(t *testing.T) {
	_, err := petrinet.Parse(`vars a b rules a >= 1 -> b' = a - 1; init a = 1 target b = 1`)
	assert.ErrorIs(t, err, petrinet.ErrSyntax)
}

func TestCompileAndJSONRoundTrip(t *testing.T) {
	s, err := petrinet.Parse(mutexSpec)
	require.NoError(t, err)

	ipn, err := petrinet.Compile(s)
	require.NoError(t, err)
	assert.Equal(t, 3, ipn.Net.NumPlaces)
	assert.Equal(t, []int64{1, 0, 1}, ipn.Initial)
	assert.Equal(t, []int64{0, 1, 0}, ipn.Final)

	data, err := ipn.ToJSON()
	require.NoError(t, err)

	back, err := petrinet.FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, ipn, back)
}

// weightsByPlace converts a Transition's Weights into a place->weight
// map for order-independent comparison.
func weightsByPlace(t petrinet.Transition) map[int]int64 {
	m := make(map[int]int64, len(t.Weights))
	for _, pw := range t.Weights {
		m[pw.Place] = pw.Weight
	}
	return m
}

// TestCompileCancelsGuardAndMatchingUpdate verifies that a place named
// in both a rule's guard and its matching update (the ordinary
// "p>=k -> p'=p-k" shape) nets to just the update's signed delta, not
// the guard threshold and the update summed together: idle's guard
// consumes 1 and its update also subtracts 1 from the very same token
// movement, so the net VASS delta is -1, not -2.
func TestCompileCancelsGuardAndMatchingUpdate(t *testing.T) {
	s, err := petrinet.Parse(mutexSpec)
	require.NoError(t, err)
	ipn, err := petrinet.Compile(s)
	require.NoError(t, err)

	require.Len(t, ipn.Net.Transitions, 2)

	idle, critical, lock := 0, 1, 2
	w0 := weightsByPlace(ipn.Net.Transitions[0])
	assert.Equal(t, int64(-1), w0[idle])
	assert.Equal(t, int64(1), w0[critical])
	assert.Equal(t, int64(-1), w0[lock])

	w1 := weightsByPlace(ipn.Net.Transitions[1])
	assert.Equal(t, int64(1), w1[idle])
	assert.Equal(t, int64(-1), w1[critical])
	assert.Equal(t, int64(1), w1[lock])
}

func TestToVASSSingleState(t *testing.T) {
	s, err := petrinet.Parse(mutexSpec)
	require.NoError(t, err)
	ipn, err := petrinet.Compile(s)
	require.NoError(t, err)

	iv, err := ipn.ToVASS()
	require.NoError(t, err)
	assert.Equal(t, 1, iv.VASS.NumStates())
	assert.Len(t, iv.VASS.Edges(), 2)
}
