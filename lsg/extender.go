package lsg

import (
	"math/rand"

	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/valuation"
)

// Strategy selects how Extender picks the next node to add.
type Strategy int

const (
	// RandomNode picks one SubGraph part uniformly, then a uniformly
	// random main-CFG edge leading from a node already in some SubGraph
	// part of the LSG to a node that is neither in the LSG nor
	// blacklisted; that edge is proposed for the picked part.
	RandomNode Strategy = iota
	// RandomSCC draws from the same candidate edges but keeps only those
	// whose target lies in a non-trivial strongly connected component of
	// the main CFG, favouring neighbours that can themselves loop back;
	// if no candidate qualifies, all candidates are kept. It proposes
	// one edge at a time, not a whole component.
	RandomSCC
)

// Extender proposes main-CFG edges by which an LSG can grow; a node
// passed to Blacklist is never proposed. Extender does not check the
// LSG's feasibility and does not blacklist nodes by itself.
type Extender struct {
	Main      *automaton.Dfa[valuation.Letter]
	Strategy  Strategy
	Rand      *rand.Rand
	blacklist map[int]bool
}

// NewExtender returns an Extender over the given main CFG with a fixed
// seed, for deterministic-given-seed refinement (spec §5's ordering
// guarantee).
func NewExtender(main *automaton.Dfa[valuation.Letter], strategy Strategy, seed int64) *Extender {
	return &Extender{
		Main:      main,
		Strategy:  strategy,
		Rand:      rand.New(rand.NewSource(seed)),
		blacklist: make(map[int]bool),
	}
}

// Blacklist marks node as never to be proposed again.
func (ex *Extender) Blacklist(node int) { ex.blacklist[node] = true }

// partNodes returns every node index currently present in a SubGraph
// part of g (start, end, and edge endpoints), used to exclude nodes
// already in the LSG from candidate selection.
func partNodes(g *LSG) map[int]bool {
	nodes := make(map[int]bool)
	for _, p := range g.Parts() {
		if !p.IsSubGraph {
			continue
		}
		nodes[p.Start] = true
		nodes[p.End] = true
		for _, e := range p.Edges {
			nodes[e.From] = true
			nodes[e.To] = true
		}
	}
	return nodes
}

// Propose picks the next (partIndex, edge) to add to g per ex.Strategy,
// or ok=false if no eligible neighbour exists (every reachable neighbour
// is already present or blacklisted).
func (ex *Extender) Propose(g *LSG) (partIdx int, edge SubGraphEdge, ok bool) {
	present := partNodes(g)

	var subGraphParts []int
	for i, p := range g.Parts() {
		if p.IsSubGraph {
			subGraphParts = append(subGraphParts, i)
		}
	}
	if len(subGraphParts) == 0 {
		return 0, SubGraphEdge{}, false
	}

	pi := subGraphParts[ex.Rand.Intn(len(subGraphParts))]
	p := g.Parts()[pi]

	// Candidate neighbours come from the underlying main CFG's own
	// edges, not from the part's own (already-included) edges — the
	// part only tells us which nodes are already "in the LSG".
	var candidates []SubGraphEdge
	for _, e := range ex.Main.Edges() {
		if present[e.From] && !present[e.To] && !ex.blacklist[e.To] {
			candidates = append(candidates, SubGraphEdge{From: e.From, To: e.To, Letter: e.Letter})
		}
	}

	if ex.Strategy == RandomSCC {
		candidates = ex.restrictToSCC(candidates)
	}

	if len(candidates) == 0 {
		return 0, SubGraphEdge{}, false
	}
	return pi, candidates[ex.Rand.Intn(len(candidates))], true
}

// restrictToSCC keeps only candidates whose target node lies in a
// non-trivial strongly connected component of the underlying main CFG,
// since RandomSCC favours neighbours that can themselves loop back
// rather than dead-ending.
func (ex *Extender) restrictToSCC(candidates []SubGraphEdge) []SubGraphEdge {
	edges := make([]SubGraphEdge, len(ex.Main.Edges()))
	for i, e := range ex.Main.Edges() {
		edges[i] = SubGraphEdge{From: e.From, To: e.To}
	}
	comps := TarjanSCC(ex.Main.NumStates(), edges)
	inNonTrivialSCC := make(map[int]bool)
	for _, comp := range comps {
		if len(comp) > 1 {
			for _, n := range comp {
				inNonTrivialSCC[n] = true
			}
		}
	}
	var filtered []SubGraphEdge
	for _, c := range candidates {
		if inNonTrivialSCC[c.To] {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return candidates
	}
	return filtered
}
