package vassbuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/valuation"
	"github.com/vassreach/vassreach/vassbuilder"
)

func TestSelfLoopScenarioA(t *testing.T) {
	iv, err := vassbuilder.Build(vassbuilder.SelfLoop(
		[]int32{1, 0}, valuation.New(0, 0), valuation.New(3, 0)))
	require.NoError(t, err)
	assert.Equal(t, 1, iv.VASS.NumStates())
	assert.Equal(t, 1, len(iv.VASS.Edges()))
}

func TestEmptyVASSHasNoEdgesAndGivenValuations(t *testing.T) {
	iv, err := vassbuilder.Build(vassbuilder.EmptyVASS(1, valuation.New(1), valuation.New(1)))
	require.NoError(t, err)
	assert.Empty(t, iv.VASS.Edges())
	assert.True(t, iv.InitialValuation.Equal(iv.FinalValuation))
}

func TestZNotNChainShape(t *testing.T) {
	iv, err := vassbuilder.Build(vassbuilder.ZNotNChain())
	require.NoError(t, err)
	assert.Equal(t, 2, iv.VASS.NumStates())
	assert.NotEqual(t, iv.InitialState, iv.FinalState)
}

func TestRandomChainDeterministicWithSeed(t *testing.T) {
	iv1, err := vassbuilder.Build(
		vassbuilder.RandomChain(4, 3, valuation.New(0, 0), valuation.New(0, 0)),
		vassbuilder.WithSeed(42), vassbuilder.WithDim(2))
	require.NoError(t, err)

	iv2, err := vassbuilder.Build(
		vassbuilder.RandomChain(4, 3, valuation.New(0, 0), valuation.New(0, 0)),
		vassbuilder.WithSeed(42), vassbuilder.WithDim(2))
	require.NoError(t, err)

	require.Equal(t, len(iv1.VASS.Edges()), len(iv2.VASS.Edges()))
	for i, e := range iv1.VASS.Edges() {
		assert.Equal(t, e.Delta, iv2.VASS.Edges()[i].Delta)
	}
}
