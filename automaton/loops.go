package automaton

// LoopFinding implements spec §4.3's simple-loop search, adapted from the
// teacher's algorithms/dfs.go: a DFS that refuses to re-enter a non-n node
// already on the stack, tracking the path of edges taken so far so a
// discovered loop can be returned as an edge sequence.

// FindLoopRootedIn returns one simple loop through node n (as a sequence
// of EdgeIndex) if one exists, or nil, false if n has no simple loop.
func (d *Dfa[L]) FindLoopRootedIn(n int) ([]int, bool) {
	loops := d.FindLoopsRootedIn(n, len(d.nodes)+1)
	if len(loops) == 0 {
		return nil, false
	}
	return loops[0], true
}

// FindLoopsRootedIn enumerates all simple loops through node n up to
// length bound maxLen, as DFS refusing to re-enter a non-n node already on
// the stack (spec §4.3). Each loop is returned as the sequence of
// EdgeIndex composing it, in traversal order.
func (d *Dfa[L]) FindLoopsRootedIn(n int, maxLen int) [][]int {
	var loops [][]int
	onStack := make(map[int]bool)
	var path []int // edge indices

	outgoing := make([][]int, len(d.nodes))
	for idx, e := range d.edges {
		outgoing[e.From] = append(outgoing[e.From], idx)
	}

	var dfs func(cur int)
	dfs = func(cur int) {
		if len(path) > 0 && cur == n {
			loops = append(loops, append([]int(nil), path...))
			return
		}
		if len(path) >= maxLen {
			return
		}
		onStack[cur] = true
		for _, eIdx := range outgoing[cur] {
			to := d.edges[eIdx].To
			if to != n && onStack[to] {
				continue
			}
			path = append(path, eIdx)
			dfs(to)
			path = path[:len(path)-1]
		}
		onStack[cur] = false
	}
	dfs(n)
	return loops
}
