// Package pathseq implements TransitionSequence and Path, the two
// witness-path representations the CEGAR loop and the LTC/LSG packages
// manipulate (spec §4.2): a TransitionSequence is a flat record of
// (node, edge) hops through a CFG-family automaton, and a Path is the
// "does this sequence actually reach, and how far does each counter
// dip" analysis built on top of it.
package pathseq

import "github.com/vassreach/vassreach/valuation"

// Hop is one step of a TransitionSequence: the edge taken and the node
// arrived at.
type Hop struct {
	Edge int
	Node int
}

// TransitionSequence is an ordered walk through an automaton, starting
// at a fixed node and recording every (edge, node) hop after it — the
// same "nodes implied by edges plus one explicit start" shape the
// teacher's core.Graph.Vertices()/Edges() pairing uses, adapted here to
// a single linear walk instead of an arbitrary graph.
type TransitionSequence struct {
	start int
	hops  []Hop
}

// New returns an empty sequence starting at start.
func New(start int) *TransitionSequence {
	return &TransitionSequence{start: start}
}

// Add appends a hop.
func (ts *TransitionSequence) Add(edge, node int) {
	ts.hops = append(ts.hops, Hop{Edge: edge, Node: node})
}

// Len returns the number of hops (edges traversed).
func (ts *TransitionSequence) Len() int { return len(ts.hops) }

// IsEmpty reports whether the sequence has zero hops.
func (ts *TransitionSequence) IsEmpty() bool { return len(ts.hops) == 0 }

// First returns the starting node.
func (ts *TransitionSequence) First() int { return ts.start }

// Last returns the final node reached, or the start node if empty.
func (ts *TransitionSequence) Last() int {
	if len(ts.hops) == 0 {
		return ts.start
	}
	return ts.hops[len(ts.hops)-1].Node
}

// Hops returns the sequence's hops, in order.
func (ts *TransitionSequence) Hops() []Hop { return append([]Hop(nil), ts.hops...) }

// IterEdges calls fn for every edge index, in order.
func (ts *TransitionSequence) IterEdges(fn func(edge int)) {
	for _, h := range ts.hops {
		fn(h.Edge)
	}
}

// IterNodes calls fn for every node visited, including the start, in
// order.
func (ts *TransitionSequence) IterNodes(fn func(node int)) {
	fn(ts.start)
	for _, h := range ts.hops {
		fn(h.Node)
	}
}

// ContainsNode reports whether n is visited anywhere in the sequence
// (including the start).
func (ts *TransitionSequence) ContainsNode(n int) bool {
	if ts.start == n {
		return true
	}
	for _, h := range ts.hops {
		if h.Node == n {
			return true
		}
	}
	return false
}

// HasLoop reports whether any node repeats, i.e. the sequence is not a
// simple path.
func (ts *TransitionSequence) HasLoop() bool {
	seen := map[int]bool{ts.start: true}
	for _, h := range ts.hops {
		if seen[h.Node] {
			return true
		}
		seen[h.Node] = true
	}
	return false
}

// Slice returns the hop sub-range [from, to) as a new sequence whose
// start is the node reached just before hop `from` (or the original
// start, if from == 0).
func (ts *TransitionSequence) Slice(from, to int) *TransitionSequence {
	startNode := ts.start
	if from > 0 {
		startNode = ts.hops[from-1].Node
	}
	out := &TransitionSequence{start: startNode}
	out.hops = append(out.hops, ts.hops[from:to]...)
	return out
}

// SliceEnd returns the hop sub-range [from, Len()).
func (ts *TransitionSequence) SliceEnd(from int) *TransitionSequence {
	return ts.Slice(from, ts.Len())
}

// SplitOff removes and returns hops [at, Len()) from ts, truncating ts
// to [0, at).
func (ts *TransitionSequence) SplitOff(at int) *TransitionSequence {
	tail := ts.Slice(at, ts.Len())
	ts.hops = ts.hops[:at]
	return tail
}

// SplitAtNodes returns the hop indices immediately after every
// occurrence of node n, excluding a trailing split that would produce
// an empty final segment — the pumping-point list LTC path translation
// needs (spec §4.5).
func (ts *TransitionSequence) SplitAtNodes(n int) []int {
	var splits []int
	for i, h := range ts.hops {
		if h.Node == n && i != len(ts.hops)-1 {
			splits = append(splits, i+1)
		}
	}
	return splits
}

// Concat appends other's hops after ts's, requiring other.First() ==
// ts.Last() (the two sequences must actually join at a shared node).
func (ts *TransitionSequence) Concat(other *TransitionSequence) *TransitionSequence {
	if other.First() != ts.Last() {
		panic("pathseq: Concat requires other.First() == ts.Last()")
	}
	out := &TransitionSequence{start: ts.start}
	out.hops = append(append([]Hop(nil), ts.hops...), other.hops...)
	return out
}

// NReachResult is the three-valued verdict IsNReaching returns: whether
// a letter sequence keeps every counter non-negative throughout
// (spec §3's N-semantics), and if not, which counter went negative and
// at which hop.
type NReachResult struct {
	Reaches      bool
	FailCounter  int
	FailHopIndex int
}

// IsNReaching replays letters starting from start, reporting the first
// point (if any) where a counter would go negative.
func IsNReaching(start valuation.Valuation, letters []valuation.Letter) NReachResult {
	v := start
	for i, l := range letters {
		v = v.Apply(l)
		if !v.IsNonNegative() {
			for k := 0; k < v.Dim(); k++ {
				if v.At(k) < 0 {
					return NReachResult{Reaches: false, FailCounter: k, FailHopIndex: i}
				}
			}
		}
	}
	return NReachResult{Reaches: true}
}

// MaxCounterValue returns the maximum value counter k reaches while
// replaying letters from start (spec §4.4's bound-automaton seeding).
func MaxCounterValue(start valuation.Valuation, letters []valuation.Letter, k int) int32 {
	v := start
	max := v.At(k)
	for _, l := range letters {
		v = v.Apply(l)
		if v.At(k) > max {
			max = v.At(k)
		}
	}
	return max
}

// MaxCounterValueFromBack is MaxCounterValue computed by replaying
// letters in reverse with negated signs, starting from end — the
// backward-bound-automaton counterpart (spec §4.4).
func MaxCounterValueFromBack(end valuation.Valuation, letters []valuation.Letter, k int) int32 {
	v := end
	max := v.At(k)
	for i := len(letters) - 1; i >= 0; i-- {
		v = v.Apply(negate(letters[i]))
		if v.At(k) > max {
			max = v.At(k)
		}
	}
	return max
}

func negate(l valuation.Letter) valuation.Letter {
	sign := valuation.Minus
	if l.Sign == valuation.Minus {
		sign = valuation.Plus
	}
	return valuation.Letter{Counter: l.Counter, Sign: sign}
}

// IsCounterForwardsPumped reports whether, while replaying letters,
// counter k completes at least threshold round trips above its current
// running level (spec §4.2: "the prefix contains at least threshold
// complete +c_k/-c_k round trips on counter k above its current running
// level") — the heuristic the CEGAR driver uses to decide whether a
// witness's excursion on k looks like unbounded pumping rather than a
// one-off bound violation worth chasing with a tighter bound automaton.
//
// A round trip completes when k's running value rises above a baseline
// (initially the starting level) and then falls back to it or below; the
// baseline is then set to the level reached, which is never above the
// old baseline. The baseline therefore never rises, and an excursion
// that drops back only to a level above the baseline is not counted.
func IsCounterForwardsPumped(letters []valuation.Letter, k int, threshold int) bool {
	var level, baseline int32
	up := false
	trips := 0
	for _, l := range letters {
		if l.Counter != k {
			continue
		}
		if l.Sign == valuation.Plus {
			level++
		} else {
			level--
		}
		if level > baseline {
			up = true
		}
		if up && level <= baseline {
			trips++
			up = false
			baseline = level
		}
	}
	return trips >= threshold
}
