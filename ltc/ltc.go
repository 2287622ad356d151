// Package ltc implements the Loop-Transition-Chain abstraction of spec
// §4.5: a witness path is rewritten into a sequence of single
// Transition hops and Loop elements (maximal detours that return
// to an already-visited node), which is then checked for N/Z-
// feasibility via linear-arithmetic SMT rather than by literally
// enumerating how many times each loop fires.
package ltc

import (
	"strconv"
	"time"

	"github.com/vassreach/vassreach/pathseq"
	"github.com/vassreach/vassreach/smt"
	"github.com/vassreach/vassreach/valuation"
)

// Element is either a single Transition hop or a Loop (a maximal detour
// back to a node already on the current path).
type Element struct {
	Loop   bool
	Edges  []int               // the edge(s) composing this element, in traversal order
	Vector valuation.Valuation // the net delta vector of firing Edges once
}

// Chain is the Loop-Transition-Chain derived from one witness path.
type Chain struct {
	dim      int
	start    int
	elements []Element
}

// FromPath collapses ts into a Chain: a stack-based contraction (the
// same "refuse to re-enter a node already on the stack" shape as
// automaton.Dfa.FindLoopsRootedIn, run here in the forward direction
// over one concrete path instead of searching all of them) that merges
// every detour back to an earlier node into a single Loop element.
// letterOf maps an edge index (as recorded in ts) to the letter it
// fires, so the chain can record each element's net vector.
func FromPath(ts *pathseq.TransitionSequence, letterOf func(edge int) valuation.Letter, dim int) *Chain {
	c := &Chain{dim: dim, start: ts.First()}

	// openAt[node] = index into c.elements of the element whose
	// traversal first reached `node` (the position a loop back to
	// `node` must collapse into).
	openAt := map[int]int{ts.First(): -1} // -1 sentinel: the chain's own start, no element precedes it

	for _, hop := range ts.Hops() {
		edge, to := hop.Edge, hop.Node
		letter := letterOf(edge)
		if pos, seen := openAt[to]; seen {
			// Collapse everything from pos+1 (or 0, if pos==-1) onward,
			// plus this edge, into a single Loop element reusing the
			// node `to`'s position.
			start := pos + 1
			if start < 0 {
				start = 0
			}
			merged := Element{Loop: true, Vector: valuation.Zero(dim)}
			for _, e := range c.elements[start:] {
				merged.Edges = append(merged.Edges, e.Edges...)
				merged.Vector = merged.Vector.Add(e.Vector)
			}
			merged.Edges = append(merged.Edges, edge)
			merged.Vector = merged.Vector.Add(valuation.Zero(dim).Apply(letter))

			c.elements = c.elements[:start]
			c.elements = append(c.elements, merged)
			// every node opened strictly after `to` is now inside the
			// loop and no longer a valid collapse target on its own.
			for n, p := range openAt {
				if p >= start {
					delete(openAt, n)
				}
			}
			openAt[to] = start
		} else {
			c.elements = append(c.elements, Element{
				Loop:   false,
				Edges:  []int{edge},
				Vector: valuation.Zero(dim).Apply(letter),
			})
			openAt[to] = len(c.elements) - 1
		}
	}
	return c
}

// Elements returns the chain's elements in order.
func (c *Chain) Elements() []Element { return c.elements }

// Dim returns the counter dimension.
func (c *Chain) Dim() int { return c.dim }

// NFeasible asks whether non-negative integer repetition counts exist
// for every Loop element such that replaying the chain (each loop fired
// its chosen number of times, each transition fired once) keeps the
// accumulated value coordinate-wise non-negative at element boundaries,
// starting from init (spec §4.5's N-feasibility check). Since an
// earlier loop's own contribution depends on its own unknown repetition
// count, the running total per coordinate is tracked as a symbolic SMT
// expression rather than a concrete valuation. With relaxed false, the
// running total is checked after every element, a Loop element adding
// x·Vector for its repetition count x. With relaxed true, the checks
// after Loop elements are dropped and one check is made at the end of
// the chain instead, so relaxed is the weaker mode; the CEGAR driver
// runs it before the strict one. Neither mode checks values reached
// inside a loop body, between its first and last edge.
func NFeasible(c *Chain, init valuation.Valuation, relaxed bool, deadline time.Duration) smt.Sat {
	ctx := smt.NewContext()
	defer ctx.Close()

	running := make([]smt.Int, c.dim)
	for k := 0; k < c.dim; k++ {
		running[k] = ctx.Const(int64(init.At(k)))
	}

	for i, el := range c.elements {
		if !el.Loop {
			for k := 0; k < c.dim; k++ {
				running[k] = running[k].Add(ctx.Const(int64(el.Vector.At(k))))
				ctx.AssertGE(running[k], ctx.Const(0))
			}
			continue
		}
		x := ctx.IntVar(loopVarName(i))
		ctx.AssertGE(x, ctx.Const(0))
		for k := 0; k < c.dim; k++ {
			term := x.Mul(ctx.Const(int64(el.Vector.At(k))))
			running[k] = running[k].Add(term)
			if !relaxed {
				ctx.AssertGE(running[k], ctx.Const(0))
			}
		}
	}
	if relaxed {
		for k := 0; k < c.dim; k++ {
			ctx.AssertGE(running[k], ctx.Const(0))
		}
	}
	return ctx.CheckSAT(deadline)
}

func loopVarName(elementIndex int) string {
	return "loop_" + strconv.Itoa(elementIndex)
}
