// Package automaton implements the deterministic and non-deterministic
// finite automata layer of the reachability engine (spec §4.3): complete
// DFAs with construction, completion, invert/complement, Hopcroft-Moore
// minimization, product intersection, and Brzozowski reversal; and NFAs
// with epsilon-closure and subset-construction determinization.
//
// The construction API (New/AddState/AddTransition/SetStart) mirrors
// core.NewGraph's functional shape, and panics on programmer error the
// same way core panics on operations that violate graph invariants; all
// language-level operations (Accepts, Intersect, Invert, Minimize) never
// fail on well-formed input, matching spec §4.3's failure semantics.
package automaton

import (
	"fmt"
	"sort"
	"strings"
)

// DfaNode is a single automaton state: whether it accepts, whether it is a
// trap (no accepting state is reachable from it), and an opaque payload a
// caller may attach (e.g. a mixed-radix modulo encoding, or a bound-counter
// value). A state cannot be both accepting and trap.
type DfaNode struct {
	Accepting bool
	Trap      bool
	Data      any
}

// Edge is an explicit (from, letter, to) transition; its position in
// Edges() is its edge index, so path/Parikh-image code (pathseq, parikh
// packages) can refer
// to "the edge taken" rather than just "the letter taken" — the
// ExplicitEdgeAutomaton capability spec §9 calls out.
type Edge[L comparable] struct {
	From   int
	To     int
	Letter L
}

// Dfa is a deterministic finite automaton over alphabet L. Transitions are
// stored both as a dense from→letter→to table (fast simulation) and as an
// explicit ordered edge list (fast iteration for path/Parikh-image code).
type Dfa[L comparable] struct {
	alphabet []L
	nodes    []DfaNode
	trans    []map[L]int
	edgeOf   []map[L]int // from -> letter -> index into edges
	edges    []Edge[L]
	start    int
	complete bool
}

// New returns an empty Dfa over the given alphabet. The alphabet's order is
// retained for deterministic iteration (e.g. MakeComplete assigns letters
// to the trap state in alphabet order).
func New[L comparable](alphabet []L) *Dfa[L] {
	return &Dfa[L]{alphabet: append([]L(nil), alphabet...)}
}

// Alphabet returns the automaton's alphabet, in construction order.
func (d *Dfa[L]) Alphabet() []L { return d.alphabet }

// NumStates returns the number of states added so far.
func (d *Dfa[L]) NumStates() int { return len(d.nodes) }

// Start returns the start state.
func (d *Dfa[L]) Start() int { return d.start }

// SetStart sets the start state. Panics if out of range.
func (d *Dfa[L]) SetStart(state int) {
	if state < 0 || state >= len(d.nodes) {
		panic(fmt.Sprintf("automaton: SetStart(%d) out of range [0,%d)", state, len(d.nodes)))
	}
	d.start = state
}

// Node returns the DfaNode at state s.
func (d *Dfa[L]) Node(s int) DfaNode { return d.nodes[s] }

// Accepting reports whether state s accepts.
func (d *Dfa[L]) Accepting(s int) bool { return d.nodes[s].Accepting }

// Trap reports whether state s is a trap.
func (d *Dfa[L]) Trap(s int) bool { return d.nodes[s].Trap }

// Complete reports whether the automaton is known to be complete (cached;
// see SetCompleteUnchecked/MakeComplete/AssertComplete).
func (d *Dfa[L]) Complete() bool { return d.complete }

// AddState appends a new state and returns its index.
func (d *Dfa[L]) AddState(node DfaNode) int {
	d.nodes = append(d.nodes, node)
	d.trans = append(d.trans, make(map[L]int))
	d.edgeOf = append(d.edgeOf, make(map[L]int))
	d.complete = false
	return len(d.nodes) - 1
}

// AddTransition adds a from--letter-->to transition, returning its
// EdgeIndex. Panics if a conflicting transition (same source, same letter,
// different target) already exists — adding the same (from, letter, to)
// twice is a harmless no-op that returns the existing edge index.
func (d *Dfa[L]) AddTransition(from, to int, letter L) int {
	if existing, ok := d.trans[from][letter]; ok {
		if existing != to {
			panic(fmt.Sprintf("automaton: conflicting transition from %d on %v: %d != %d", from, letter, existing, to))
		}
		return d.edgeOf[from][letter]
	}
	d.trans[from][letter] = to
	idx := len(d.edges)
	d.edges = append(d.edges, Edge[L]{From: from, To: to, Letter: letter})
	d.edgeOf[from][letter] = idx
	d.complete = false
	return idx
}

// Step returns the successor of (state, letter) and whether it is defined.
func (d *Dfa[L]) Step(state int, letter L) (int, bool) {
	to, ok := d.trans[state][letter]
	return to, ok
}

// Edges returns the explicit, ordered edge list.
func (d *Dfa[L]) Edges() []Edge[L] { return d.edges }

// EdgeIndex returns the index into Edges() of the (from, letter)
// transition, for callers (e.g. the CEGAR driver replaying a product
// witness against the main CFG) that need the concrete edge a letter
// corresponds to rather than just the successor state.
func (d *Dfa[L]) EdgeIndex(from int, letter L) (int, bool) {
	idx, ok := d.edgeOf[from][letter]
	return idx, ok
}

// EdgeAt returns the edge at idx.
func (d *Dfa[L]) EdgeAt(idx int) Edge[L] { return d.edges[idx] }

// SetCompleteUnchecked caches completeness without verifying it, for bulk
// constructors that already know every (state, letter) pair is defined
// (spec §4.3: "assert_complete() followed by set_complete_unchecked").
func (d *Dfa[L]) SetCompleteUnchecked() { d.complete = true }

// AssertComplete panics if some (state, letter) pair has no transition,
// otherwise marks the automaton complete.
func (d *Dfa[L]) AssertComplete() {
	for s := range d.nodes {
		for _, l := range d.alphabet {
			if _, ok := d.trans[s][l]; !ok {
				panic(fmt.Sprintf("automaton: AssertComplete: state %d missing letter %v", s, l))
			}
		}
	}
	d.complete = true
}

// MakeComplete adds transitions for every (state, letter) pair with no
// outgoing transition, routing them to a freshly added non-accepting trap
// state that self-loops on every letter (spec §4.3).
func (d *Dfa[L]) MakeComplete() {
	if d.complete {
		return
	}
	trapNeeded := false
outer:
	for s := range d.nodes {
		for _, l := range d.alphabet {
			if _, ok := d.trans[s][l]; !ok {
				trapNeeded = true
				break outer
			}
		}
	}

	trap := -1
	if trapNeeded {
		trap = d.AddState(DfaNode{Accepting: false, Trap: true})
		for _, l := range d.alphabet {
			d.AddTransition(trap, trap, l)
		}
	}
	for s := 0; s < len(d.nodes); s++ {
		if s == trap {
			continue
		}
		for _, l := range d.alphabet {
			if _, ok := d.trans[s][l]; !ok {
				d.AddTransition(s, trap, l)
			}
		}
	}
	d.complete = true
}

// Invert returns the complement automaton: a new Dfa with the Accepting
// flag flipped on every state and Trap reset to false everywhere (spec
// §4.3: complementing loses the trap property, since a non-trap state in
// the original may become a trap in the complement and vice versa).
// Panics if the receiver is not complete.
func (d *Dfa[L]) Invert() *Dfa[L] {
	if !d.complete {
		panic("automaton: Invert requires a complete DFA")
	}
	out := New(d.alphabet)
	for _, n := range d.nodes {
		out.AddState(DfaNode{Accepting: !n.Accepting, Trap: false, Data: n.Data})
	}
	for _, e := range d.edges {
		out.AddTransition(e.From, e.To, e.Letter)
	}
	out.SetStart(d.start)
	out.SetCompleteUnchecked()
	return out
}

// InvertMut complements the receiver in place, returning it for chaining.
func (d *Dfa[L]) InvertMut() *Dfa[L] {
	if !d.complete {
		panic("automaton: InvertMut requires a complete DFA")
	}
	for i := range d.nodes {
		d.nodes[i].Accepting = !d.nodes[i].Accepting
		d.nodes[i].Trap = false
	}
	return d
}

// Accepts simulates word from the start state and reports whether the
// final state accepts. Returns false if the word runs off an undefined
// transition (only possible on an incomplete DFA).
func (d *Dfa[L]) Accepts(word []L) bool {
	s := d.start
	for _, l := range word {
		to, ok := d.Step(s, l)
		if !ok {
			return false
		}
		s = to
	}
	return d.nodes[s].Accepting
}

// ToDOT renders the automaton as a Graphviz DOT string. Accepting states
// are doublecircle, the start state is marked by an invisible node -> start
// edge, and the given node/edge highlight sets (by index) are colored red
// — the diagnostic export spec §6 describes for any DFA.
func (d *Dfa[L]) ToDOT(name string, highlightNodes map[int]bool, highlightEdges map[int]bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %s {\n", name)
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  __start [shape=point, style=invis];\n")
	fmt.Fprintf(&b, "  __start -> %d;\n", d.start)

	for i, n := range d.nodes {
		shape := "circle"
		if n.Accepting {
			shape = "doublecircle"
		}
		color := "black"
		if highlightNodes[i] {
			color = "red"
		}
		style := ""
		if n.Trap {
			style = ", style=dashed"
		}
		fmt.Fprintf(&b, "  %d [shape=%s, color=%s%s];\n", i, shape, color, style)
	}
	for idx, e := range d.edges {
		color := "black"
		if highlightEdges[idx] {
			color = "red"
		}
		fmt.Fprintf(&b, "  %d -> %d [label=%q, color=%s];\n", e.From, e.To, fmt.Sprint(e.Letter), color)
	}
	b.WriteString("}\n")
	return b.String()
}

// sortedStates is a small determinism helper used by minimize/product so
// that iteration order over state indices never depends on map order,
// mirroring core.Vertices()'s "Determinism: returns sorted results" rule.
func sortedStates(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	sort.Ints(out)
	return out
}
