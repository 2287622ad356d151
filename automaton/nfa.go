package automaton

import (
	list "github.com/emirpasic/gods/lists/singlylinkedlist"
	set "github.com/emirpasic/gods/sets/hashset"
)

// Symbol is an NFA transition label: either a concrete alphabet letter, or
// epsilon. Like a DFA, an Nfa need not be complete or deterministic, and
// its transitions may be labelled by either an alphabet letter or ε (spec
// §4.3).
type Symbol[L comparable] struct {
	Eps    bool
	Letter L
}

// EpsSymbol returns the epsilon symbol for alphabet type L.
func EpsSymbol[L comparable]() Symbol[L] { return Symbol[L]{Eps: true} }

// LetterSymbol wraps a concrete letter as a Symbol.
func LetterSymbol[L comparable](l L) Symbol[L] { return Symbol[L]{Letter: l} }

// Nfa is a non-deterministic finite automaton over alphabet L, built the
// same way the pack's Choreia transforms package builds its fsa.FSA: an
// adjacency keyed by (from, symbol) -> []to, walked with
// ForEachTransition-style enumeration for epsilon-closure computation.
type Nfa[L comparable] struct {
	alphabet  []L
	accepting []bool
	trans     []map[Symbol[L]][]int
	start     int
}

// NewNFA returns an empty Nfa over the given alphabet.
func NewNFA[L comparable](alphabet []L) *Nfa[L] {
	return &Nfa[L]{alphabet: append([]L(nil), alphabet...)}
}

// AddState appends a state and returns its index.
func (n *Nfa[L]) AddState(accepting bool) int {
	n.accepting = append(n.accepting, accepting)
	n.trans = append(n.trans, make(map[Symbol[L]][]int))
	return len(n.accepting) - 1
}

// SetStart sets the start state.
func (n *Nfa[L]) SetStart(s int) { n.start = s }

// AddTransition adds a from--letter-->to transition (non-deterministic:
// multiple targets for the same (from, letter) are allowed).
func (n *Nfa[L]) AddTransition(from, to int, letter L) {
	sym := LetterSymbol(letter)
	n.trans[from][sym] = append(n.trans[from][sym], to)
}

// AddEpsTransition adds a from--ε-->to transition.
func (n *Nfa[L]) AddEpsTransition(from, to int) {
	sym := EpsSymbol[L]()
	n.trans[from][sym] = append(n.trans[from][sym], to)
}

// ForEachTransition calls fn(from, to, symbol) for every transition,
// mirroring the teacher-grounded fsa.FSA.ForEachTransition enumeration
// idiom used throughout epsilon-closure computation below.
func (n *Nfa[L]) ForEachTransition(fn func(from, to int, sym Symbol[L])) {
	for from, m := range n.trans {
		for sym, targets := range m {
			for _, to := range targets {
				fn(from, to, sym)
			}
		}
	}
}

// epsClosure computes the aggregate epsilon-closure of a set of states,
// recursively re-scanning until no new state is reached — the exact
// algorithm the pack's Choreia determinization.go implements with
// gods/sets/hashset.
func (n *Nfa[L]) epsClosure(states *set.Set) *set.Set {
	reached := set.New(states.Values()...)
	n.ForEachTransition(func(from, to int, sym Symbol[L]) {
		if sym.Eps && reached.Contains(from) {
			reached.Add(to)
		}
	})
	if reached.Size() > states.Size() {
		return n.epsClosure(reached)
	}
	return reached
}

// reachableOn returns the epsilon-closure of the set of states directly
// reachable from clos via letter, mirroring Choreia's getReachable.
func (n *Nfa[L]) reachableOn(clos *set.Set, letter L) *set.Set {
	direct := set.New()
	n.ForEachTransition(func(from, to int, sym Symbol[L]) {
		if !sym.Eps && sym.Letter == letter && clos.Contains(from) {
			direct.Add(to)
		}
	})
	return n.epsClosure(direct)
}

// setsEqual reports mutual containment — Choreia's "twin" detection trick:
// if A contains all of B's values and vice versa, A == B as sets.
func setsEqual(a, b *set.Set) bool {
	return a.Contains(b.Values()...) && b.Contains(a.Values()...)
}

// Determinize runs subset construction (spec §4.3): states of the
// resulting Dfa are deduplicated subsets of Nfa states under
// epsilon-closure (hash sets, compared by mutual containment). A dead
// state is added the first time some letter leads to the empty subset,
// so the result is complete by construction.
func (n *Nfa[L]) Determinize() *Dfa[L] {
	out := New(n.alphabet)

	initial := n.epsClosure(set.New(n.start))
	closures := list.New(interface{}(initial))

	// Pre-create state 0 for the initial closure. Closure i in the work
	// list (closures) always corresponds 1:1 to Dfa state i, by
	// construction order.
	out.AddState(DfaNode{Accepting: n.closureAccepts(initial)})
	out.SetStart(0)

	dead := -1
	deadClosure := set.New()

	for i := 0; i < closures.Size(); i++ {
		item, _ := closures.Get(i)
		closure := item.(*set.Set)

		for _, l := range n.alphabet {
			moved := n.reachableOn(closure, l)
			if moved.Size() == 0 {
				if dead == -1 {
					dead = out.AddState(DfaNode{Accepting: false, Trap: true})
					closures.Add(interface{}(deadClosure))
				}
				out.AddTransition(i, dead, l)
				continue
			}

			twin := -1
			for j := 0; j < closures.Size(); j++ {
				other, _ := closures.Get(j)
				if setsEqual(moved, other.(*set.Set)) {
					twin = j
					break
				}
			}
			if twin == -1 {
				twin = out.AddState(DfaNode{Accepting: n.closureAccepts(moved)})
				closures.Add(interface{}(moved))
			}
			out.AddTransition(i, twin, l)
		}
	}

	if dead != -1 {
		for _, l := range n.alphabet {
			out.AddTransition(dead, dead, l)
		}
	}
	out.SetCompleteUnchecked()
	return out
}

func (n *Nfa[L]) closureAccepts(clos *set.Set) bool {
	for _, v := range clos.Values() {
		if n.accepting[v.(int)] {
			return true
		}
	}
	return false
}
