package automaton_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vassreach/vassreach/automaton"
)

// twoState builds a complete 2-letter DFA over {"a","b"} accepting exactly
// the language {"a"}: state 0 (start) --a--> 1 (accept), --b--> 2 (trap);
// state 1 goes to 2 on every letter; state 2 self-loops on everything.
func twoState(t *testing.T) *automaton.Dfa[string] {
	t.Helper()
	d := automaton.New([]string{"a", "b"})
	s0 := d.AddState(automaton.DfaNode{})
	s1 := d.AddState(automaton.DfaNode{Accepting: true})
	s2 := d.AddState(automaton.DfaNode{Trap: true})
	d.AddTransition(s0, s1, "a")
	d.AddTransition(s0, s2, "b")
	d.AddTransition(s1, s2, "a")
	d.AddTransition(s1, s2, "b")
	d.AddTransition(s2, s2, "a")
	d.AddTransition(s2, s2, "b")
	d.SetStart(s0)
	d.AssertComplete()
	return d
}

func TestAcceptsBasic(t *testing.T) {
	d := twoState(t)
	assert.True(t, d.Accepts([]string{"a"}))
	assert.False(t, d.Accepts([]string{"b"}))
	assert.False(t, d.Accepts([]string{"a", "a"}))
}

func TestConflictingTransitionPanics(t *testing.T) {
	d := automaton.New([]string{"a"})
	s0 := d.AddState(automaton.DfaNode{})
	s1 := d.AddState(automaton.DfaNode{})
	s2 := d.AddState(automaton.DfaNode{})
	d.AddTransition(s0, s1, "a")
	assert.Panics(t, func() { d.AddTransition(s0, s2, "a") })
}

func TestInvertRoundTrip(t *testing.T) {
	d := twoState(t)
	twice := d.Invert().Invert()
	for _, w := range [][]string{{"a"}, {"b"}, {"a", "a"}, {}} {
		assert.Equal(t, d.Accepts(w), twice.Accepts(w), "word %v", w)
	}
}

func TestInvertRequiresComplete(t *testing.T) {
	d := automaton.New([]string{"a"})
	d.AddState(automaton.DfaNode{})
	assert.Panics(t, func() { d.Invert() })
}

func TestIntersectionIsConjunction(t *testing.T) {
	// A: accepts words of even length over {"a"}.
	a := automaton.New([]string{"a"})
	a0 := a.AddState(automaton.DfaNode{Accepting: true})
	a1 := a.AddState(automaton.DfaNode{})
	a.AddTransition(a0, a1, "a")
	a.AddTransition(a1, a0, "a")
	a.SetStart(a0)
	a.AssertComplete()

	// B: accepts words of length >= 2 over {"a"} (capped tracking).
	b := automaton.New([]string{"a"})
	b0 := b.AddState(automaton.DfaNode{})
	b1 := b.AddState(automaton.DfaNode{})
	b2 := b.AddState(automaton.DfaNode{Accepting: true})
	b.AddTransition(b0, b1, "a")
	b.AddTransition(b1, b2, "a")
	b.AddTransition(b2, b2, "a")
	b.SetStart(b0)
	b.AssertComplete()

	prod := a.Intersect(b)
	require.True(t, prod.Complete())
	for n := 0; n <= 5; n++ {
		word := make([]string, n)
		for i := range word {
			word[i] = "a"
		}
		want := (n%2 == 0) && n >= 2
		assert.Equal(t, want, prod.Accepts(word), "n=%d", n)
	}
}

func TestMinimizeIdempotent(t *testing.T) {
	d := twoState(t)
	m1 := d.Minimize()
	m2 := m1.Minimize()
	assert.Equal(t, m1.NumStates(), m2.NumStates())
	for _, w := range [][]string{{"a"}, {"b"}, {}} {
		assert.Equal(t, d.Accepts(w), m1.Accepts(w))
	}
}

func TestMakeCompleteAddsTrapAndSelfLoops(t *testing.T) {
	d := automaton.New([]string{"a", "b"})
	s0 := d.AddState(automaton.DfaNode{Accepting: true})
	d.AddTransition(s0, s0, "a")
	d.SetStart(s0)
	d.MakeComplete()
	assert.True(t, d.Complete())
	// every state now has a transition for every letter
	for s := 0; s < d.NumStates(); s++ {
		for _, l := range d.Alphabet() {
			_, ok := d.Step(s, l)
			assert.True(t, ok, "state %d letter %s", s, l)
		}
	}
}

func TestDeterminizeOfNFAWithEpsilon(t *testing.T) {
	n := automaton.NewNFA([]string{"a"})
	s0 := n.AddState(false)
	s1 := n.AddState(false)
	s2 := n.AddState(true)
	n.AddEpsTransition(s0, s1)
	n.AddTransition(s1, s2, "a")
	n.SetStart(s0)

	d := n.Determinize()
	assert.True(t, d.Complete())
	assert.True(t, d.Accepts([]string{"a"}))
	assert.False(t, d.Accepts([]string{}))
	assert.False(t, d.Accepts([]string{"a", "a"}))
}

func TestReverseBrzozowski(t *testing.T) {
	// language {"ab"} over alphabet {"a","b"}
	d := automaton.New([]string{"a", "b"})
	s0 := d.AddState(automaton.DfaNode{})
	s1 := d.AddState(automaton.DfaNode{})
	s2 := d.AddState(automaton.DfaNode{Accepting: true})
	trap := d.AddState(automaton.DfaNode{Trap: true})
	d.AddTransition(s0, s1, "a")
	d.AddTransition(s0, trap, "b")
	d.AddTransition(s1, trap, "a")
	d.AddTransition(s1, s2, "b")
	d.AddTransition(s2, trap, "a")
	d.AddTransition(s2, trap, "b")
	d.AddTransition(trap, trap, "a")
	d.AddTransition(trap, trap, "b")
	d.SetStart(s0)
	d.AssertComplete()

	rev := d.Reverse()
	assert.True(t, rev.Accepts([]string{"b", "a"}), "reversal of \"ab\" is \"ba\"")
	assert.False(t, rev.Accepts([]string{"a", "b"}))
}

func TestFindLoopsRootedIn(t *testing.T) {
	d := automaton.New([]string{"a"})
	s0 := d.AddState(automaton.DfaNode{})
	s1 := d.AddState(automaton.DfaNode{})
	d.AddTransition(s0, s1, "a")
	d.AddTransition(s1, s0, "a")
	d.SetStart(s0)

	loop, ok := d.FindLoopRootedIn(s0)
	require.True(t, ok)
	assert.Len(t, loop, 2)
}
