package valuation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/valuation"
)

func TestAlphabetOrderingAndIndex(t *testing.T) {
	alphabet := valuation.Alphabet(3)
	require.Len(t, alphabet, 6)

	// coordinate-ascending, plus-before-minus (spec §3/§4.4).
	assert.Equal(t, valuation.Letter{Counter: 0, Sign: valuation.Plus}, alphabet[0])
	assert.Equal(t, valuation.Letter{Counter: 1, Sign: valuation.Plus}, alphabet[1])
	assert.Equal(t, valuation.Letter{Counter: 2, Sign: valuation.Plus}, alphabet[2])
	assert.Equal(t, valuation.Letter{Counter: 0, Sign: valuation.Minus}, alphabet[3])

	for i, l := range alphabet {
		assert.Equal(t, i, valuation.LetterIndex(l, 3))
	}
}

func TestValuationApplyAndAdd(t *testing.T) {
	v0 := valuation.New(0, 0)
	v1 := v0.Apply(valuation.Letter{Counter: 0, Sign: valuation.Plus})
	assert.Equal(t, int32(1), v1.At(0))
	assert.Equal(t, int32(0), v0.At(0), "Apply must not mutate the receiver")

	sum := v1.Add(valuation.New(2, 3))
	assert.Equal(t, int32(3), sum.At(0))
	assert.Equal(t, int32(3), sum.At(1))
}

func TestRemEuclidMatchesRustSemantics(t *testing.T) {
	v := valuation.New(-1, 5)
	out := v.RemEuclid(0, 3)
	assert.Equal(t, int32(2), out.At(0), "rem_euclid(-1, 3) == 2")

	out2 := v.RemEuclidVec([]int32{3, 4})
	assert.Equal(t, int32(2), out2.At(0))
	assert.Equal(t, int32(1), out2.At(1))
}

func TestIsNonNegative(t *testing.T) {
	assert.True(t, valuation.New(0, 1, 2).IsNonNegative())
	assert.False(t, valuation.New(0, -1).IsNonNegative())
}
