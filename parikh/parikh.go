// Package parikh implements the Parikh image of a path through an
// automaton (spec §4.6): a multiset recording how many times each edge
// fires, plus the connected-component decomposition of the subgraph
// induced by edges with positive multiplicity that the LSG Kirchhoff
// encoding needs.
package parikh

import "sort"

// Image maps edge index -> fire count. The zero value is the empty
// Parikh image.
type Image struct {
	counts map[int]int
}

// New returns an empty image.
func New() *Image { return &Image{counts: make(map[int]int)} }

// FromEdges builds the Parikh image of a concrete edge sequence.
func FromEdges(edges []int) *Image {
	img := New()
	for _, e := range edges {
		img.Increment(e)
	}
	return img
}

// Increment bumps edge's multiplicity by one.
func (img *Image) Increment(edge int) {
	if img.counts == nil {
		img.counts = make(map[int]int)
	}
	img.counts[edge]++
}

// Count returns edge's multiplicity (0 if absent).
func (img *Image) Count(edge int) int { return img.counts[edge] }

// IsEmpty reports whether every edge has multiplicity zero.
func (img *Image) IsEmpty() bool { return len(img.counts) == 0 }

// Add returns the edge-wise sum of img and other.
func (img *Image) Add(other *Image) *Image {
	out := New()
	for e, c := range img.counts {
		out.counts[e] = c
	}
	for e, c := range other.counts {
		out.counts[e] += c
	}
	return out
}

// Max returns the edge-wise maximum of img and other (used when merging
// Parikh images from parallel LTC loop iterations, spec §4.6).
func (img *Image) Max(other *Image) *Image {
	out := New()
	for e, c := range img.counts {
		out.counts[e] = c
	}
	for e, c := range other.counts {
		if c > out.counts[e] {
			out.counts[e] = c
		}
	}
	return out
}

// Edges returns the edges with positive multiplicity, sorted for
// deterministic iteration (mirrors core's "Vertices() returns sorted
// results" determinism rule).
func (img *Image) Edges() []int {
	out := make([]int, 0, len(img.counts))
	for e, c := range img.counts {
		if c > 0 {
			out = append(out, e)
		}
	}
	sort.Ints(out)
	return out
}

// EdgeEndpoints is the minimal per-edge shape the component
// decomposition below needs: which nodes an edge connects.
type EdgeEndpoints struct {
	From, To int
}

// Component is one connected component of the subgraph induced by
// img's positive-multiplicity edges (undirected connectivity): its
// member edges, and the other positive-multiplicity edges of img that
// enter/leave one of its nodes. Since a component already holds every
// positive-multiplicity edge touching its nodes, Incoming and Outgoing
// are always empty; edges of zero multiplicity are not considered.
type Component struct {
	Edges    []int
	Incoming []int
	Outgoing []int
}

// ConnectedComponents partitions img's positive-multiplicity edges into
// undirected connected components given a lookup from edge index to its
// (From, To) endpoints, and fills each component's Incoming/Outgoing
// lists from img's positive-multiplicity edges only (see Component).
// lsg.Reach and solver.ZReach compute the boundary edges of their
// exclusion clauses from their full edge lists instead.
func ConnectedComponents(img *Image, endpoints func(edge int) EdgeEndpoints) []Component {
	edges := img.Edges()
	parent := make(map[int]int)
	var find func(int) int
	find = func(n int) int {
		if p, ok := parent[n]; ok && p != n {
			parent[n] = find(p)
			return parent[n]
		}
		parent[n] = n
		return n
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	nodeOf := make(map[int]EdgeEndpoints, len(edges))
	for _, e := range edges {
		ep := endpoints(e)
		nodeOf[e] = ep
		find(ep.From)
		find(ep.To)
		union(ep.From, ep.To)
	}

	byRoot := make(map[int][]int)
	for _, e := range edges {
		ep := nodeOf[e]
		root := find(ep.From)
		byRoot[root] = append(byRoot[root], e)
	}

	roots := make([]int, 0, len(byRoot))
	for r := range byRoot {
		roots = append(roots, r)
	}
	sort.Ints(roots)

	var out []Component
	for _, r := range roots {
		memberEdges := byRoot[r]
		memberNodes := make(map[int]bool)
		memberSet := make(map[int]bool, len(memberEdges))
		for _, e := range memberEdges {
			ep := nodeOf[e]
			memberNodes[ep.From] = true
			memberNodes[ep.To] = true
			memberSet[e] = true
		}

		var incoming, outgoing []int
		for _, e := range edges {
			if memberSet[e] {
				continue
			}
			ep := endpoints(e)
			if memberNodes[ep.To] {
				incoming = append(incoming, e)
			}
			if memberNodes[ep.From] {
				outgoing = append(outgoing, e)
			}
		}
		sort.Ints(memberEdges)
		out = append(out, Component{Edges: memberEdges, Incoming: incoming, Outgoing: outgoing})
	}
	return out
}
