package cfg

import (
	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/valuation"
)

// BoundedCounting builds the explicitly-materialized forward bound
// automaton for counter k over dimension d (spec §4.4): states v_0..v_B
// track the counter's visible value (clamped at B), with v_0 doubling as
// a negative trap reached the instant the counter would go below zero,
// and v_B an overflow-accepting trap reached once the counter reaches the
// bound. Every other coordinate's letters self-loop on every state,
// since this automaton only watches coordinate k.
//
// start selects which state is initial (normally the counter's starting
// value, already clamped to [0, B]).
func BoundedCounting(d, k int, bound int32, start int32) *automaton.Dfa[valuation.Letter] {
	if bound < 1 {
		panic("cfg: BoundedCounting bound must be >= 1")
	}
	alphabet := valuation.Alphabet(d)
	out := automaton.New(alphabet)

	// states 0..bound are v_0..v_B; v_0 is both "value is zero" and the
	// permanent negative trap, v_B is the permanent overflow trap.
	for v := int32(0); v <= bound; v++ {
		out.AddState(automaton.DfaNode{Accepting: v == bound, Trap: v == 0 || v == bound})
	}
	clamp := func(v int32) int32 {
		if v < 0 {
			return 0
		}
		if v > bound {
			return bound
		}
		return v
	}
	if start < 0 || start > bound {
		panic("cfg: BoundedCounting start out of [0, bound]")
	}
	out.SetStart(int(start))

	for v := int32(0); v <= bound; v++ {
		for _, l := range alphabet {
			if l.Counter != k {
				out.AddTransition(int(v), int(v), l)
				continue
			}
			delta := l.Delta(d)[k]
			out.AddTransition(int(v), int(clamp(v+delta)), l)
		}
	}
	out.SetCompleteUnchecked()
	return out
}

// BoundedCountingReverse returns the Brzozowski reversal of a
// BoundedCounting automaton, coordinate-negated back into forward letters
// (spec §4.4's "backward bound" variant): Reverse() alone would leave
// edges labelled by the same letters but traversed backwards in meaning,
// so this additionally negates every edge's sign on coordinate k to
// recover an automaton that reads forward delta letters the same way the
// forward bound automaton does, just checking the complementary
// direction of the original construction.
func BoundedCountingReverse(fwd *automaton.Dfa[valuation.Letter]) *automaton.Dfa[valuation.Letter] {
	rev := fwd.Reverse()
	return negateCoordinate(rev, fwd.Alphabet())
}

// negateCoordinate rebuilds a with every edge's letter sign flipped on
// whichever coordinate its Counter names, leaving the state structure
// (and which states are accepting/trap) untouched. Reverse() alone
// relabels edges with their original forward letters traversed
// backwards, which reads the wrong direction of counter change for a
// backward bound automaton; this recovers a DFA that reads forward
// delta letters the same way BoundedCounting's forward variant does.
func negateCoordinate(a *automaton.Dfa[valuation.Letter], alphabet []valuation.Letter) *automaton.Dfa[valuation.Letter] {
	out := automaton.New(alphabet)
	for s := 0; s < a.NumStates(); s++ {
		out.AddState(a.Node(s))
	}
	for _, e := range a.Edges() {
		out.AddTransition(e.From, e.To, negateLetter(e.Letter))
	}
	out.SetStart(a.Start())
	out.SetCompleteUnchecked()
	return out
}

func negateLetter(l valuation.Letter) valuation.Letter {
	sign := valuation.Minus
	if l.Sign == valuation.Minus {
		sign = valuation.Plus
	}
	return valuation.Letter{Counter: l.Counter, Sign: sign}
}
