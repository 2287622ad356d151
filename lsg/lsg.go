// Package lsg implements the Linear-Subgraph abstraction of spec §4.7: a
// generalization of an ltc.Chain where a part can be either a fixed Path
// of letters or a SubGraph (an explicit edge list) traversed with
// unconstrained branching between a distinguished start and end node.
// Feasibility is checked via the same Kirchhoff-flow SMT encoding the
// Z-reachability solver uses, with iterative connected-component
// exclusion when the model's Parikh image contains spurious components.
package lsg

import (
	"strconv"
	"time"

	"github.com/vassreach/vassreach/parikh"
	"github.com/vassreach/vassreach/smt"
	"github.com/vassreach/vassreach/valuation"
)

// Part is one segment of an LSG: either a fixed Path of letters, or a
// SubGraph with a start/end node and an edge list.
type Part struct {
	IsSubGraph bool

	// Path fields.
	Letters []valuation.Letter

	// SubGraph fields.
	Start, End int
	Edges      []SubGraphEdge
}

// SubGraphEdge is one edge of a SubGraph part: its endpoints (node
// indices of the underlying main CFG) and the letter it fires.
type SubGraphEdge struct {
	From, To int
	Letter   valuation.Letter
}

// LSG is an ordered list of parts (spec §4.7).
type LSG struct {
	dim   int
	parts []Part
}

// New returns an empty LSG over the given counter dimension.
func New(dim int) *LSG { return &LSG{dim: dim} }

// AddPathPart appends a fixed-letter Path part.
func (g *LSG) AddPathPart(letters []valuation.Letter) {
	g.parts = append(g.parts, Part{Letters: append([]valuation.Letter(nil), letters...)})
}

// AddSubGraphPart appends a SubGraph part.
func (g *LSG) AddSubGraphPart(start, end int, edges []SubGraphEdge) {
	g.parts = append(g.parts, Part{IsSubGraph: true, Start: start, End: end, Edges: append([]SubGraphEdge(nil), edges...)})
}

// Parts returns the LSG's parts, in order.
func (g *LSG) Parts() []Part { return g.parts }

// AddNode appends edge e (typically one proposed by Extender, leading to
// a node not yet in the LSG) to the edge list of the SubGraph part at
// index partIdx, leaving the part's start/end unchanged. Only e itself is
// added: no other edges between the new node and the part's nodes are
// induced, and no part is split. Panics if the part is a Path part.
func (g *LSG) AddNode(partIdx int, e SubGraphEdge) {
	p := &g.parts[partIdx]
	if !p.IsSubGraph {
		panic("lsg: AddNode requires a SubGraph part")
	}
	p.Edges = append(p.Edges, e)
}

// ConnectedComponentsOf partitions a SubGraph part's edges by the
// positive-multiplicity image img assigns them, delegating to the
// parikh package's undirected component decomposition.
func ConnectedComponentsOf(part Part, img *parikh.Image) []parikh.Component {
	endpoints := func(e int) parikh.EdgeEndpoints {
		return parikh.EdgeEndpoints{From: part.Edges[e].From, To: part.Edges[e].To}
	}
	return parikh.ConnectedComponents(img, endpoints)
}

// Reach runs the LSG-reach SMT encoding of spec §4.7: symbolic counter
// sums threaded through every part (Path parts update sums directly and
// assert non-negativity after subtraction; SubGraph parts add per-edge
// flow variables and assert Kirchhoff conservation at every node), with
// a final assertion that the accumulated sums equal final. Iteratively
// excludes spurious connected components (any component of a SubGraph
// part's positive-multiplicity edges not containing that part's start
// node) via a Horn-style "if every edge in the component fires, some
// edge entering it from outside must fire too" clause, re-solving up to
// maxRefinementSteps times.
func (g *LSG) Reach(init, final valuation.Valuation, maxRefinementSteps int, deadline time.Duration) smt.Sat {
	deadlinePer := deadline
	if maxRefinementSteps > 0 {
		deadlinePer = deadline / time.Duration(maxRefinementSteps+1)
	}

	excluded := make([][]excludeClause, len(g.parts))

	for step := 0; step <= maxRefinementSteps; step++ {
		ctx := smt.NewContext()
		sums := make([]smt.Int, g.dim)
		for k := 0; k < g.dim; k++ {
			sums[k] = ctx.Const(int64(init.At(k)))
		}

		edgeVars := make([][]smt.Int, len(g.parts))
		for pi, p := range g.parts {
			if !p.IsSubGraph {
				for _, l := range p.Letters {
					sign := int64(1)
					if l.Sign == valuation.Minus {
						sign = -1
					}
					sums[l.Counter] = sums[l.Counter].Add(ctx.Const(sign))
					ctx.AssertGE(sums[l.Counter], ctx.Const(0))
				}
				continue
			}

			vars := make([]smt.Int, len(p.Edges))
			for ei := range p.Edges {
				v := ctx.IntVar(edgeVarName(pi, ei))
				ctx.AssertGE(v, ctx.Const(0))
				vars[ei] = v
			}
			edgeVars[pi] = vars

			for ei, e := range p.Edges {
				sign := int64(1)
				if e.Letter.Sign == valuation.Minus {
					sign = -1
				}
				sums[e.Letter.Counter] = sums[e.Letter.Counter].Add(vars[ei].Mul(ctx.Const(sign)))
			}

			assertKirchhoff(ctx, p, vars)
			for _, clause := range excluded[pi] {
				assertExclusion(ctx, vars, clause)
			}
		}

		for k := 0; k < g.dim; k++ {
			ctx.AssertEQ(sums[k], ctx.Const(int64(final.At(k))))
		}

		result := ctx.CheckSAT(deadlinePer)
		if result != smt.SatResult {
			ctx.Close()
			return result
		}

		spurious := false
		for pi, p := range g.parts {
			if !p.IsSubGraph {
				continue
			}
			img := parikh.New()
			for ei, v := range edgeVars[pi] {
				if count := ctx.Eval(v); count > 0 {
					for i := int64(0); i < count; i++ {
						img.Increment(ei)
					}
				}
			}
			for _, comp := range ConnectedComponentsOf(p, img) {
				if containsStartEdge(p, comp) {
					continue
				}
				compNodes := make(map[int]bool)
				for _, ei := range comp.Edges {
					compNodes[p.Edges[ei].From] = true
					compNodes[p.Edges[ei].To] = true
				}
				var boundary []int
				for ei, e := range p.Edges {
					if !compNodes[e.From] && compNodes[e.To] {
						boundary = append(boundary, ei)
					}
				}
				excluded[pi] = append(excluded[pi], excludeClause{
					componentEdges: comp.Edges,
					boundaryEdges:  boundary,
				})
				spurious = true
			}
		}
		ctx.Close()
		if !spurious {
			return smt.SatResult
		}
	}
	return smt.Unknown
}

// containsStartEdge reports whether component comp touches part p's
// distinguished start node — the "main" component per spec §4.7, which
// is never spurious.
func containsStartEdge(p Part, comp parikh.Component) bool {
	for _, ei := range comp.Edges {
		if p.Edges[ei].From == p.Start || p.Edges[ei].To == p.Start {
			return true
		}
	}
	return false
}

type excludeClause struct {
	componentEdges []int
	boundaryEdges  []int
}

func assertKirchhoff(ctx *smt.Context, p Part, vars []smt.Int) {
	nodes := map[int]bool{p.Start: true, p.End: true}
	for _, e := range p.Edges {
		nodes[e.From] = true
		nodes[e.To] = true
	}
	for n := range nodes {
		out := ctx.Const(0)
		in := ctx.Const(0)
		for ei, e := range p.Edges {
			if e.From == n {
				out = out.Add(vars[ei])
			}
			if e.To == n {
				in = in.Add(vars[ei])
			}
		}
		extraIn, extraOut := int64(0), int64(0)
		if n == p.Start {
			extraIn = 1
		}
		if n == p.End {
			extraOut = 1
		}
		ctx.AssertEQ(out.Add(ctx.Const(extraOut)), in.Add(ctx.Const(extraIn)))
	}
}

// assertExclusion asserts the Horn-style clause spec §4.7 requires: "if
// every edge in the component is taken at least once, then at least one
// boundary edge (incoming to the component from outside) is taken at
// least once" — equivalently, as a disjunction, "some component edge
// fires zero times, or some boundary edge fires at least once".
func assertExclusion(ctx *smt.Context, vars []smt.Int, clause excludeClause) {
	zero := ctx.Const(0)
	var terms []smt.Bool
	for _, ce := range clause.componentEdges {
		terms = append(terms, vars[ce].Eq(zero))
	}
	for _, be := range clause.boundaryEdges {
		terms = append(terms, vars[be].GT(zero))
	}
	ctx.Assert(ctx.Or(terms...))
}

func edgeVarName(partIdx, edgeIdx int) string {
	return "sg_" + strconv.Itoa(partIdx) + "_" + strconv.Itoa(edgeIdx)
}
