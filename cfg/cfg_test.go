package cfg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/cfg"
	"github.com/vassreach/vassreach/valuation"
	"github.com/vassreach/vassreach/vass"
)

func TestFromVASSReachSimpleIncrement(t *testing.T) {
	v := vass.New(1)
	s0 := v.AddState()
	s1 := v.AddState()
	_, err := v.AddEdge(s0, s1, []int32{1}, "")
	require.NoError(t, err)

	iv, err := vass.NewInitialized(v, s0, s1, valuation.Zero(1), valuation.New(1))
	require.NoError(t, err)

	main := cfg.FromVASSReach(iv)
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	assert.True(t, main.Accepts([]valuation.Letter{plus}))
	assert.False(t, main.Accepts([]valuation.Letter{}))
}

func TestModuloCFGCyclesBackToStart(t *testing.T) {
	mu := []int32{3}
	m := cfg.NewModuloCFG(mu, valuation.Zero(1), valuation.Zero(1))
	s := m.Start()
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	for i := 0; i < 3; i++ {
		next, ok := m.Step(s, plus)
		require.True(t, ok)
		s = next
	}
	assert.Equal(t, m.Start(), s)
	assert.True(t, m.Accepting(s))
}

func TestBoundedCountingClampsAndTraps(t *testing.T) {
	d := cfg.BoundedCounting(1, 0, 2, 0)
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	minus := valuation.Letter{Counter: 0, Sign: valuation.Minus}

	s := d.Start()
	s, ok := d.Step(s, minus)
	require.True(t, ok)
	assert.True(t, d.Trap(s), "stepping below zero lands in the negative trap")

	s = d.Start()
	for i := 0; i < 5; i++ {
		s, _ = d.Step(s, plus)
	}
	assert.True(t, d.Accepting(s), "overflow state is accepting")
	assert.True(t, d.Trap(s))
}
