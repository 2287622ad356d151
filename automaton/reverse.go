package automaton

// Reverse returns the determinized reversal of d (the classic Brzozowski
// construction, spec §4.3): treat d as an Nfa with a fresh start state that
// has ε-transitions to every accepting state of d, every original edge
// reversed, and d's original start as the new sole accepting state; then
// determinize.
func (d *Dfa[L]) Reverse() *Dfa[L] {
	n := NewNFA(d.alphabet)
	for s := range d.nodes {
		n.AddState(s == d.start)
	}
	fresh := n.AddState(false)
	n.SetStart(fresh)

	for s, node := range d.nodes {
		if node.Accepting {
			n.AddEpsTransition(fresh, s)
		}
	}
	for _, e := range d.edges {
		n.AddTransition(e.To, e.From, e.Letter)
	}
	return n.Determinize()
}
