package automaton

// Minimize returns the Hopcroft-Moore minimization of a complete DFA (spec
// §4.3): a triangular table of state pairs is marked "distinguishable",
// seeded by "exactly one of p,q accepts", then closed under "some letter
// leads to a marked pair", fix-point. States in the same unmarked
// equivalence class are merged; tie-breaking uses the smallest state index
// as the class representative. A state whose only outgoing transitions are
// self-loops to non-accepting states gets Trap set on the merged state.
// Panics if the receiver is not complete.
func (d *Dfa[L]) Minimize() *Dfa[L] {
	if !d.complete {
		panic("automaton: Minimize requires a complete DFA")
	}
	n := len(d.nodes)
	if n == 0 {
		out := New(d.alphabet)
		out.SetCompleteUnchecked()
		return out
	}

	// marked[p][q] for p > q; triangular table as in spec §4.3.
	marked := make([][]bool, n)
	for i := range marked {
		marked[i] = make([]bool, n)
	}
	pairLess := func(p, q int) (int, int) {
		if p < q {
			return q, p
		}
		return p, q
	}

	// Seed: mark pairs disagreeing on acceptance.
	for p := 0; p < n; p++ {
		for q := 0; q < p; q++ {
			if d.nodes[p].Accepting != d.nodes[q].Accepting {
				marked[p][q] = true
			}
		}
	}

	// Fix-point closure.
	for changed := true; changed; {
		changed = false
		for p := 0; p < n; p++ {
			for q := 0; q < p; q++ {
				if marked[p][q] {
					continue
				}
				for _, l := range d.alphabet {
					tp, _ := d.Step(p, l)
					tq, _ := d.Step(q, l)
					if tp == tq {
						continue
					}
					a, b := pairLess(tp, tq)
					if marked[a][b] {
						marked[p][q] = true
						changed = true
						break
					}
				}
			}
		}
	}

	// Union-find style class assignment: smallest index wins as representative.
	repOf := make([]int, n)
	for i := range repOf {
		repOf[i] = i
	}
	for p := 0; p < n; p++ {
		for q := 0; q < p; q++ {
			if !marked[p][q] && repOf[p] == p {
				// q is smaller and unmarked against p: adopt q's representative.
				repOf[p] = repOf[q]
			}
		}
	}

	// Build the merged state list: one state per distinct representative,
	// in ascending representative order for determinism.
	newIndex := make(map[int]int)
	out := New(d.alphabet)
	for _, s := range sortedStates(n) {
		if repOf[s] != s {
			continue
		}
		newIndex[s] = out.AddState(DfaNode{Accepting: d.nodes[s].Accepting, Data: d.nodes[s].Data})
	}
	for _, s := range sortedStates(n) {
		rep := repOf[s]
		for idx, e := range d.edges {
			if e.From != s {
				continue
			}
			_ = idx
			targetRep := repOf[e.To]
			out.AddTransition(newIndex[rep], newIndex[targetRep], e.Letter)
		}
	}
	out.SetStart(newIndex[repOf[d.start]])
	out.SetCompleteUnchecked()

	// Trap flag: a state whose only outgoing transitions are self-loops to
	// a non-accepting state.
	for s := 0; s < out.NumStates(); s++ {
		if out.nodes[s].Accepting {
			continue
		}
		onlySelfLoop := true
		for _, l := range out.alphabet {
			to, _ := out.Step(s, l)
			if to != s {
				onlySelfLoop = false
				break
			}
		}
		out.nodes[s].Trap = onlySelfLoop
	}
	return out
}
