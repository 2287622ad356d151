package lsg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/lsg"
	"github.com/vassreach/vassreach/valuation"
)

func TestTarjanSCCFindsCycle(t *testing.T) {
	edges := []lsg.SubGraphEdge{
		{From: 0, To: 1},
		{From: 1, To: 2},
		{From: 2, To: 0},
		{From: 2, To: 3},
	}
	comps := lsg.TarjanSCC(4, edges)
	var sizes []int
	for _, c := range comps {
		sizes = append(sizes, len(c))
	}
	assert.Contains(t, sizes, 3)
	assert.Contains(t, sizes, 1)
}

func TestExtenderProposeExcludesPresentAndBlacklisted(t *testing.T) {
	alphabet := valuation.Alphabet(1)
	plus := valuation.Letter{Counter: 0, Sign: valuation.Plus}
	minus := valuation.Letter{Counter: 0, Sign: valuation.Minus}
	main := automaton.New(alphabet)
	s0 := main.AddState(automaton.DfaNode{})
	s1 := main.AddState(automaton.DfaNode{})
	s2 := main.AddState(automaton.DfaNode{Accepting: true})
	main.AddTransition(s0, s1, plus)
	main.AddTransition(s1, s2, plus)
	main.AddTransition(s0, s2, minus)
	main.SetStart(s0)
	main.MakeComplete()

	g := lsg.New(1)
	g.AddSubGraphPart(s0, s0, nil)
	ex := lsg.NewExtender(main, lsg.RandomNode, 42)
	ex.Blacklist(s2)

	_, edge, ok := ex.Propose(g)
	assert.True(t, ok)
	assert.Equal(t, s1, edge.To)
}
