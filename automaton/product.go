package automaton

// Intersect builds the accessible fragment of the product of two complete
// DFAs over identical alphabets (spec §4.3): a product state (p,q) accepts
// iff both components accept, and traversal is a DFS/work-list from
// (start1, start2) with memoization so each product state is materialized
// once. The result is complete (and cached as such) because both inputs
// are complete. Panics if either input is not complete.
func (d *Dfa[L]) Intersect(other *Dfa[L]) *Dfa[L] {
	if !d.complete || !other.complete {
		panic("automaton: Intersect requires both operands complete")
	}
	out := New(d.alphabet)

	type pair struct{ p, q int }
	seen := make(map[pair]int)
	var stack []pair

	startPair := pair{d.start, other.start}
	startIdx := out.AddState(DfaNode{
		Accepting: d.nodes[d.start].Accepting && other.nodes[other.start].Accepting,
	})
	seen[startPair] = startIdx
	out.SetStart(startIdx)
	stack = append(stack, startPair)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		curIdx := seen[cur]

		for _, l := range d.alphabet {
			tp, _ := d.Step(cur.p, l)
			tq, _ := other.Step(cur.q, l)
			np := pair{tp, tq}
			idx, ok := seen[np]
			if !ok {
				idx = out.AddState(DfaNode{
					Accepting: d.nodes[tp].Accepting && other.nodes[tq].Accepting,
				})
				seen[np] = idx
				stack = append(stack, np)
			}
			out.AddTransition(curIdx, idx, l)
		}
	}
	out.SetCompleteUnchecked()
	return out
}
