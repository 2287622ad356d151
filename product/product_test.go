package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/product"
	"github.com/vassreach/vassreach/valuation"
)

func twoStepChain(t *testing.T) *automaton.Dfa[valuation.Letter] {
	t.Helper()
	alphabet := valuation.Alphabet(1)
	d := automaton.New(alphabet)
	s0 := d.AddState(automaton.DfaNode{})
	s1 := d.AddState(automaton.DfaNode{})
	s2 := d.AddState(automaton.DfaNode{Accepting: true})
	trap := d.AddState(automaton.DfaNode{Trap: true})
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	minus := valuation.Letter{Counter: 0, Sign: valuation.Minus}
	d.AddTransition(s0, s1, plus)
	d.AddTransition(s0, trap, minus)
	d.AddTransition(s1, s2, plus)
	d.AddTransition(s1, trap, minus)
	d.AddTransition(s2, trap, plus)
	d.AddTransition(s2, trap, minus)
	d.AddTransition(trap, trap, plus)
	d.AddTransition(trap, trap, minus)
	d.SetStart(s0)
	d.AssertComplete()
	return d
}

func TestReachFindsShortestWitness(t *testing.T) {
	p := product.New(1, twoStepChain(t))
	res, ok := p.Reach()
	require.True(t, ok)
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	assert.Equal(t, []valuation.Letter{plus, plus}, res.Letters)
}

func TestReachCachesUntilInvalidated(t *testing.T) {
	p := product.New(1, twoStepChain(t))
	res1, ok1 := p.Reach()
	require.True(t, ok1)
	res2, ok2 := p.Reach()
	require.True(t, ok2)
	assert.Equal(t, res1, res2)

	p.AddCFG(twoStepChain(t))
	res3, ok3 := p.Reach()
	require.True(t, ok3)
	assert.Equal(t, res1.Letters, res3.Letters)
}

func TestReachNoneWhenUnreachable(t *testing.T) {
	alphabet := valuation.Alphabet(1)
	d := automaton.New(alphabet)
	s0 := d.AddState(automaton.DfaNode{})
	s1 := d.AddState(automaton.DfaNode{Accepting: true})
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	minus := valuation.Letter{Counter: 0, Sign: valuation.Minus}
	d.AddTransition(s0, s0, plus)
	d.AddTransition(s0, s0, minus)
	d.AddTransition(s1, s1, plus)
	d.AddTransition(s1, s1, minus)
	d.SetStart(s0)
	d.AssertComplete()

	p := product.New(1, d)
	_, ok := p.Reach()
	assert.False(t, ok)
}
