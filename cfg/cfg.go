// Package cfg implements the control-flow-graph layer of the reachability
// engine (spec §3-4): the main CFG compiled from a VASS's signed-vector
// alphabet, a lazily-encoded ModuloCFG that tracks each counter modulo a
// configurable μ without ever materializing a transition table, and an
// explicitly-materialized BoundedCounting automaton that caps a single
// counter's visible range.
//
// All three expose the same Automaton surface so the lazy BFS product
// search in package product can walk them interchangeably — precisely how
// *automaton.Dfa[valuation.Letter] already satisfies Automaton without any
// adapter, by sharing Start/Step/Accepting/Trap method names.
package cfg

import (
	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/valuation"
	"github.com/vassreach/vassreach/vass"
)

// Automaton is the minimal surface the product-search BFS needs from any
// component automaton in an ImplicitCFGProduct: a start state, a
// transition function, and accepting/trap predicates. *automaton.Dfa[L]
// satisfies this structurally.
type Automaton interface {
	Start() int
	Step(state int, letter valuation.Letter) (int, bool)
	Accepting(state int) bool
	Trap(state int) bool
}

// FromVASS compiles v into the explicit main CFG (spec §3): one DFA state
// per reachable VASS state, with edges unfolded into the coordinate-
// ascending chain of signed unit letters spec §3 defines, so the CFG's
// alphabet is always valuation.Alphabet(v.Dim()) regardless of how large
// an individual VASS edge's vector is.
//
// The result is an Nfa determinized into a Dfa, since unfolding an edge's
// vector into a letter chain introduces intermediate states that are not
// generally deterministic with respect to the original VASS's structure
// (two edges from the same VASS state may share a letter prefix).
func FromVASS(v *vass.VASS) *automaton.Dfa[valuation.Letter] {
	alphabet := valuation.Alphabet(v.Dim())
	n := automaton.NewNFA(alphabet)

	// One Nfa state per VASS state, all accepting for now; FromVASSReach
	// narrows acceptance to the single final state.
	for s := 0; s < v.NumStates(); s++ {
		n.AddState(true)
	}

	for _, e := range v.Edges() {
		unfoldEdge(n, e)
	}
	return n.Determinize()
}

// FromVASSReach compiles the initialized VASS iv into a main CFG whose
// unique accepting state is iv.FinalState, with iv.InitialState as start
// (spec §3's "the main CFG accepts exactly the runs from q_init to
// q_final").
func FromVASSReach(iv *vass.InitializedVASS) *automaton.Dfa[valuation.Letter] {
	alphabet := valuation.Alphabet(iv.VASS.Dim())
	n := automaton.NewNFA(alphabet)
	for s := 0; s < iv.VASS.NumStates(); s++ {
		n.AddState(s == iv.FinalState)
	}
	n.SetStart(iv.InitialState)
	for _, e := range iv.VASS.Edges() {
		unfoldEdge(n, e)
	}
	return n.Determinize()
}

// unfoldEdge adds e's delta vector to n as a chain of unit letters: for
// each coordinate k in ascending order, |delta[k]| copies of the signed
// letter ±c_k, each hop through a fresh intermediate state — so a +2/-1
// edge over 2 coordinates becomes From +c0-> i1 +c0-> i2 -c1-> To.
func unfoldEdge(n *automaton.Nfa[valuation.Letter], e vass.Edge) {
	cur := e.From
	last := len(e.Delta) - 1
	for k, mag := range e.Delta {
		sign := valuation.Plus
		count := int(mag)
		if mag < 0 {
			sign = valuation.Minus
			count = int(-mag)
		}
		letter := valuation.Letter{Counter: k, Sign: sign}
		for i := 0; i < count; i++ {
			isLastHop := k == last && i == count-1
			if isLastHop {
				n.AddTransition(cur, e.To, letter)
				cur = e.To
			} else {
				next := n.AddState(false)
				n.AddTransition(cur, next, letter)
				cur = next
			}
		}
	}
	if cur != e.To {
		// the chain did not end on e.To (delta is the zero vector, or its
		// last coordinate is zero so the chain stopped at an intermediate
		// state): splice an epsilon edge from there to e.To.
		n.AddEpsTransition(cur, e.To)
	}
}
