// Package solver ties the automaton/LTC/LSG layers together into the two
// top-level decision procedures spec §4.8/§4.9 describe: ZReach, an exact
// Kirchhoff-flow SMT encoding for Z-reachability, and Cegar, the
// counter-example-guided abstraction-refinement loop that decides
// N-reachability by iteratively tightening an ImplicitCFGProduct.
package solver

import (
	"strconv"
	"time"

	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/parikh"
	"github.com/vassreach/vassreach/smt"
	"github.com/vassreach/vassreach/valuation"
)

// ZReach decides Z-reachability (counters may go negative mid-run, only the
// final valuation is constrained) over the full CFG cfg from init to final,
// via the Kirchhoff-flow SMT encoding of spec §4.8: one edge[e]>=0 variable
// per CFG edge, one final[q]>=0 indicator per accepting state, flow
// conservation at every node (with +1 injected at the start node and +1
// drained at whichever accepting node final[q] selects), exactly one
// accepting node selected, and counter balance against the edges' letters.
// Spurious connected components in a SAT witness's Parikh image (cycles
// disconnected from the start node, forced into existence only by the
// flow equations rather than by any real path) are excluded iteratively,
// identically in spirit to lsg.Reach's refinement loop, up to
// maxRefinementSteps times.
func ZReach(cfg *automaton.Dfa[valuation.Letter], init, final valuation.Valuation, maxRefinementSteps int, deadline time.Duration) smt.Sat {
	dim := init.Dim()
	edges := cfg.Edges()

	var acceptingNodes []int
	for s := 0; s < cfg.NumStates(); s++ {
		if cfg.Accepting(s) {
			acceptingNodes = append(acceptingNodes, s)
		}
	}
	if len(acceptingNodes) == 0 {
		return smt.Unsat
	}

	deadlinePer := deadline
	if maxRefinementSteps > 0 {
		deadlinePer = deadline / time.Duration(maxRefinementSteps+1)
	}

	var excluded []excludeClause

	for step := 0; step <= maxRefinementSteps; step++ {
		ctx := smt.NewContext()

		edgeVars := make([]smt.Int, len(edges))
		for i := range edges {
			v := ctx.IntVar(edgeVarName(i))
			ctx.AssertGE(v, ctx.Const(0))
			edgeVars[i] = v
		}
		finalVars := make(map[int]smt.Int, len(acceptingNodes))
		for _, q := range acceptingNodes {
			v := ctx.IntVar(finalVarName(q))
			ctx.AssertGE(v, ctx.Const(0))
			finalVars[q] = v
		}

		assertKirchhoffCFG(ctx, cfg, edges, edgeVars, finalVars)

		oneFinal := ctx.Const(0)
		for _, q := range acceptingNodes {
			oneFinal = oneFinal.Add(finalVars[q])
		}
		ctx.AssertEQ(oneFinal, ctx.Const(1))

		sums := make([]smt.Int, dim)
		for k := 0; k < dim; k++ {
			sums[k] = ctx.Const(int64(init.At(k)))
		}
		for i, e := range edges {
			sign := int64(1)
			if e.Letter.Sign == valuation.Minus {
				sign = -1
			}
			sums[e.Letter.Counter] = sums[e.Letter.Counter].Add(edgeVars[i].Mul(ctx.Const(sign)))
		}
		for k := 0; k < dim; k++ {
			ctx.AssertEQ(sums[k], ctx.Const(int64(final.At(k))))
		}

		for _, clause := range excluded {
			assertExclusionCFG(ctx, edgeVars, clause)
		}

		result := ctx.CheckSAT(deadlinePer)
		if result != smt.SatResult {
			ctx.Close()
			return result
		}

		img := parikh.New()
		for i, v := range edgeVars {
			if count := ctx.Eval(v); count > 0 {
				for c := int64(0); c < count; c++ {
					img.Increment(i)
				}
			}
		}
		ctx.Close()

		endpoints := func(e int) parikh.EdgeEndpoints {
			return parikh.EdgeEndpoints{From: edges[e].From, To: edges[e].To}
		}
		comps := parikh.ConnectedComponents(img, endpoints)

		spurious := false
		for _, comp := range comps {
			if componentTouchesNode(comp, edges, cfg.Start()) {
				continue
			}
			compNodes := make(map[int]bool)
			for _, ei := range comp.Edges {
				compNodes[edges[ei].From] = true
				compNodes[edges[ei].To] = true
			}
			var boundary []int
			for ei, e := range edges {
				if !compNodes[e.From] && compNodes[e.To] {
					boundary = append(boundary, ei)
				}
			}
			excluded = append(excluded, excludeClause{
				componentEdges: comp.Edges,
				boundaryEdges:  boundary,
			})
			spurious = true
		}
		if !spurious {
			return smt.SatResult
		}
	}
	return smt.Unknown
}

// componentTouchesNode reports whether any edge of comp is incident to node
// n in the full CFG edge list — the "main" component containing the start
// node is never spurious (spec §4.8, same rule as lsg.containsStartEdge).
func componentTouchesNode(comp parikh.Component, edges []automaton.Edge[valuation.Letter], n int) bool {
	for _, ei := range comp.Edges {
		if edges[ei].From == n || edges[ei].To == n {
			return true
		}
	}
	return false
}

// assertKirchhoffCFG asserts, for every node n of cfg, that flow in equals
// flow out: sum(edges into n) + (1 if n is the start) == sum(edges out of
// n) + (final[n] if n is accepting).
func assertKirchhoffCFG(ctx *smt.Context, cfg *automaton.Dfa[valuation.Letter], edges []automaton.Edge[valuation.Letter], edgeVars []smt.Int, finalVars map[int]smt.Int) {
	for n := 0; n < cfg.NumStates(); n++ {
		out := ctx.Const(0)
		in := ctx.Const(0)
		for i, e := range edges {
			if e.From == n {
				out = out.Add(edgeVars[i])
			}
			if e.To == n {
				in = in.Add(edgeVars[i])
			}
		}
		if v, ok := finalVars[n]; ok {
			out = out.Add(v)
		}
		if n == cfg.Start() {
			in = in.Add(ctx.Const(1))
		}
		ctx.AssertEQ(out, in)
	}
}

// assertExclusionCFG asserts the same Horn-style "some component edge fires
// zero times, or some boundary edge fires" clause lsg.Reach uses, over the
// whole-CFG edge variables rather than a single part's.
func assertExclusionCFG(ctx *smt.Context, edgeVars []smt.Int, clause excludeClause) {
	zero := ctx.Const(0)
	var terms []smt.Bool
	for _, ce := range clause.componentEdges {
		terms = append(terms, edgeVars[ce].Eq(zero))
	}
	for _, be := range clause.boundaryEdges {
		terms = append(terms, edgeVars[be].GT(zero))
	}
	ctx.Assert(ctx.Or(terms...))
}

type excludeClause struct {
	componentEdges []int
	boundaryEdges  []int
}

func edgeVarName(i int) string  { return "zedge_" + strconv.Itoa(i) }
func finalVarName(q int) string { return "zfinal_" + strconv.Itoa(q) }
