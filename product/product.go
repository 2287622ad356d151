// Package product implements ImplicitCFGProduct, the lazy BFS product
// search at the center of the CEGAR loop (spec §4.1, §4.9): a growing
// list of component automata (main CFG, modulo automata, forward/
// backward bound automata, and refinement-added automata) searched
// jointly without ever materializing their full product, one BFS queue
// entry per distinct tuple of component states actually visited.
//
// The BFS shape mirrors the teacher's bfs/bfs.go queue-based level
// traversal; here the "graph" being walked is defined implicitly by
// Step over every component simultaneously, rather than by an explicit
// adjacency list.
package product

import (
	"github.com/vassreach/vassreach/cfg"
	"github.com/vassreach/vassreach/valuation"
)

// Component index layout, per spec §4.1: cfgs[0] is the main CFG;
// modulo tracking comes next (one joint mixed-radix component covering
// every counter — see cfg.ModuloCFG — rather than one automaton per
// counter, since a single component can track all counters' residues
// at once); then one forward bound automaton and one backward (reverse)
// bound automaton per counter; everything appended after that by
// AddCFG is a later refinement step's LTC- or LSG-derived automaton.
// The product itself is agnostic to this layout — it only ever calls
// Start/Step/Accepting/Trap on whatever is in cfgs — callers (the
// solver package's Cegar) are the ones that rely on fixed slot
// indices, via ReplaceCFG, to swap a tightened bound/modulo component
// in place without disturbing the rest.

// ImplicitCFGProduct is the product-search state for one CEGAR
// iteration's query.
type ImplicitCFGProduct struct {
	dim      int
	alphabet []valuation.Letter
	cfgs     []cfg.Automaton

	// cache of the last Reach() result, invalidated by any mutation.
	cacheValid bool
	cached     *Result
}

// New returns a product seeded with just the main CFG (spec §4.1:
// "ImplicitCFGProduct (initially just the CFG)").
func New(dim int, main cfg.Automaton) *ImplicitCFGProduct {
	return &ImplicitCFGProduct{
		dim:      dim,
		alphabet: valuation.Alphabet(dim),
		cfgs:     []cfg.Automaton{main},
	}
}

// Dim returns the counter dimension.
func (p *ImplicitCFGProduct) Dim() int { return p.dim }

// NumComponents returns the number of component automata currently in
// the product.
func (p *ImplicitCFGProduct) NumComponents() int { return len(p.cfgs) }

// AddCFG appends a new component automaton (a refinement-added LTC- or
// LSG-derived automaton per spec §4.9) and invalidates the search cache.
func (p *ImplicitCFGProduct) AddCFG(a cfg.Automaton) int {
	p.cfgs = append(p.cfgs, a)
	p.invalidate()
	return len(p.cfgs) - 1
}

// ReplaceCFG swaps the automaton at a fixed slot (used to install a new
// modulo or bound automaton in its reserved index range after the
// modulus/bound changes) and invalidates the search cache.
func (p *ImplicitCFGProduct) ReplaceCFG(idx int, a cfg.Automaton) {
	p.cfgs[idx] = a
	p.invalidate()
}

func (p *ImplicitCFGProduct) invalidate() {
	p.cacheValid = false
	p.cached = nil
}

// state is a product configuration: one component state per automaton
// currently in the product. Used as a map key, so it must be a
// comparable array-backed type; since len(cfgs) varies at runtime we key
// by its string encoding instead (tupleKey).
type tupleState []int

func tupleKey(s tupleState) string {
	// Small, fixed-radix-free encoding: each component state as a
	// varint-free decimal field, comma-separated. Product states are
	// bounded by automaton sizes the CEGAR loop already keeps small
	// (spec §9's module budgets), so string keys are acceptable here —
	// the same tradeoff core.Graph's map[string]*Vertex makes for
	// simplicity over a custom hash.
	b := make([]byte, 0, 4*len(s))
	for i, v := range s {
		if i > 0 {
			b = append(b, ',')
		}
		b = appendInt(b, v)
	}
	return string(b)
}

func appendInt(b []byte, v int) []byte {
	if v == 0 {
		return append(b, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	start := len(b)
	for v > 0 {
		b = append(b, byte('0'+v%10))
		v /= 10
	}
	if neg {
		b = append(b, '-')
	}
	// reverse the digits just appended
	for i, j := start, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return b
}

// Result is a successful Reach(): the witness letter sequence and the
// edge-index-free letter-only path (component-level edge indices belong
// to whichever individual automaton produced them, so the product layer
// only promises the letters, per spec §4.1).
type Result struct {
	Letters []valuation.Letter
}

// queueEntry is one BFS frontier item: the product state reached, and
// the letter taken to reach it plus the parent entry index
// (for path reconstruction).
type queueEntry struct {
	state  tupleState
	letter valuation.Letter
	parent int
}

// Reach runs a BFS over the implicit product from every component's
// Start() to a tuple where every component's Accepting() holds,
// following spec §4.1's "shortest path, ties broken by alphabet
// iteration order" ordering guarantee: the alphabet is iterated in
// valuation.Alphabet's fixed coordinate-ascending, plus-before-minus
// order at every BFS step. Returns (nil, false) if no accepting tuple is
// reachable (product search never diverges: state space is always
// finite once every component is itself finite/eventually-periodic, so
// BFS always terminates rather than needing a cancellation signal here
// — long-running exhaustive SMT calls are where spec §5's cancellation
// semantics apply instead).
func (p *ImplicitCFGProduct) Reach() (*Result, bool) {
	if p.cacheValid {
		if p.cached == nil {
			return nil, false
		}
		return p.cached, true
	}

	start := make(tupleState, len(p.cfgs))
	for i, a := range p.cfgs {
		start[i] = a.Start()
	}

	visited := map[string]bool{tupleKey(start): true}
	queue := []queueEntry{{state: start, parent: -1}}

	accepts := func(s tupleState) bool {
		for i, a := range p.cfgs {
			if !a.Accepting(s[i]) {
				return false
			}
		}
		return true
	}

	if accepts(start) {
		p.cached = &Result{}
		p.cacheValid = true
		return p.cached, true
	}

	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		for _, l := range p.alphabet {
			next := make(tupleState, len(p.cfgs))
			ok := true
			trapped := false
			for i, a := range p.cfgs {
				to, defined := a.Step(cur.state[i], l)
				if !defined {
					ok = false
					break
				}
				if a.Trap(to) {
					trapped = true
				}
				next[i] = to
			}
			if !ok {
				continue
			}
			key := tupleKey(next)
			if visited[key] {
				continue
			}
			visited[key] = true
			entry := queueEntry{state: next, letter: l, parent: head}

			// A tuple that accepts is always a valid witness, even if one
			// of its components (e.g. a bound automaton's clamped
			// overflow state) is also flagged Trap: Trap only means
			// "don't bother expanding search past this state", not "this
			// exact state can never itself be the answer" — those are
			// different claims, and a bound automaton's overflow state
			// is deliberately both at once (spec §4.4).
			if accepts(next) {
				queue = append(queue, entry)
				p.cached = &Result{Letters: reconstruct(queue, len(queue)-1)}
				p.cacheValid = true
				return p.cached, true
			}
			if trapped {
				continue
			}
			queue = append(queue, entry)
		}
	}

	p.cacheValid = true
	p.cached = nil
	return nil, false
}

func reconstruct(queue []queueEntry, idx int) []valuation.Letter {
	var rev []valuation.Letter
	for idx != -1 {
		e := queue[idx]
		if e.parent == -1 {
			break
		}
		rev = append(rev, e.letter)
		idx = e.parent
	}
	out := make([]valuation.Letter, len(rev))
	for i, l := range rev {
		out[len(rev)-1-i] = l
	}
	return out
}
