package pathseq

import "github.com/vassreach/vassreach/valuation"

// Path wraps a TransitionSequence with the letters it actually
// traverses, so IsNReaching-style analyses don't need a second
// automaton lookup pass (spec §4.2's Path, distinct from the bare
// TransitionSequence which only tracks node/edge indices).
type Path struct {
	Seq     *TransitionSequence
	Letters []LetterAt
}

// LetterAt pairs a letter with the edge index it came from, so callers
// can map an analysis result (e.g. "hop 3 failed") back to the concrete
// automaton edge.
type LetterAt struct {
	Edge   int
	Letter valuation.Letter
}

// LetterSlice returns just the letters, in order — the shape
// IsNReaching/MaxCounterValue expect.
func (p *Path) LetterSlice() []valuation.Letter {
	out := make([]valuation.Letter, len(p.Letters))
	for i, la := range p.Letters {
		out[i] = la.Letter
	}
	return out
}

// End returns the final node of the underlying sequence.
func (p *Path) End() int { return p.Seq.Last() }

// Concat appends other after p, requiring the sequences to join.
func (p *Path) Concat(other *Path) *Path {
	return &Path{
		Seq:     p.Seq.Concat(other.Seq),
		Letters: append(append([]LetterAt(nil), p.Letters...), other.Letters...),
	}
}
