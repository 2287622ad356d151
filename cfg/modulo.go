package cfg

import (
	"github.com/vassreach/vassreach/valuation"
)

// ModuloCFG tracks every counter modulo a configurable bound μ (per
// coordinate), as a cyclic-group automaton whose states are never
// explicitly materialized (spec §4.4): state identity is the mixed-radix
// encoding of (v mod μ) for the current valuation v, computed on demand
// in Step rather than stored in a transition table. Since + and - letters
// exist for every coordinate, every state has every outgoing letter
// defined, so there is never a trap.
type ModuloCFG struct {
	mu    []int32
	start valuation.Valuation
	final valuation.Valuation
	size  int // product of mu, i.e. NumStates()
}

// NewModuloCFG builds a ModuloCFG over the given per-coordinate moduli,
// with start/final given as already-reduced (mod mu) valuations (callers
// reduce the VASS's actual initial/final valuation via
// valuation.Valuation.RemEuclidVec before constructing this).
func NewModuloCFG(mu []int32, start, final valuation.Valuation) *ModuloCFG {
	if start.Dim() != len(mu) || final.Dim() != len(mu) {
		panic("cfg: ModuloCFG dimension mismatch")
	}
	size := 1
	for _, m := range mu {
		if m < 1 {
			panic("cfg: ModuloCFG modulus must be >= 1")
		}
		size *= int(m)
	}
	return &ModuloCFG{mu: append([]int32(nil), mu...), start: start, final: final, size: size}
}

// Dim returns the counter dimension.
func (m *ModuloCFG) Dim() int { return len(m.mu) }

// Mu returns the per-coordinate moduli.
func (m *ModuloCFG) Mu() []int32 { return append([]int32(nil), m.mu...) }

// NumStates returns the product of the moduli: the size of the implicit
// state space.
func (m *ModuloCFG) NumStates() int { return m.size }

// encode maps a reduced valuation to its dense mixed-radix state index,
// coordinate 0 as the least-significant digit.
func (m *ModuloCFG) encode(v valuation.Valuation) int {
	idx := 0
	stride := 1
	for k := 0; k < len(m.mu); k++ {
		idx += int(v.At(k)) * stride
		stride *= int(m.mu[k])
	}
	return idx
}

// decode is encode's inverse.
func (m *ModuloCFG) decode(idx int) valuation.Valuation {
	coords := make([]int32, len(m.mu))
	for k := 0; k < len(m.mu); k++ {
		coords[k] = int32(idx % int(m.mu[k]))
		idx /= int(m.mu[k])
	}
	return valuation.New(coords...)
}

// Start returns the encoded start state.
func (m *ModuloCFG) Start() int { return m.encode(m.start) }

// Step applies letter to the valuation decoded from state, reduces it mod
// mu again, and re-encodes. Always defined (ok is always true), since
// every coordinate has both a + and - letter.
func (m *ModuloCFG) Step(state int, letter valuation.Letter) (int, bool) {
	v := m.decode(state).Apply(letter).RemEuclidVec(m.mu)
	return m.encode(v), true
}

// Accepting reports whether state's decoded valuation equals the
// (already mod-mu-reduced) final valuation.
func (m *ModuloCFG) Accepting(state int) bool {
	return m.decode(state).Equal(m.final)
}

// Trap always reports false: a cyclic-group automaton over a complete
// signed alphabet has no dead state.
func (m *ModuloCFG) Trap(state int) bool { return false }
