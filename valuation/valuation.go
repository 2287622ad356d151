// Package valuation defines the counter valuations and CFG-alphabet letters
// shared by every layer of the reachability engine: a Valuation is an
// immutable vector of d signed 32-bit counters, and a Letter is a single
// +c_k or -c_k update drawn from the 2d-element CFG alphabet (spec §3).
//
// All operations return new values rather than mutating the receiver, the
// same immutability contract the teacher's core.Vertex/core.Edge types
// document for their own small value structs.
package valuation

import (
	"errors"
	"fmt"
)

// ErrDimensionMismatch indicates two valuations or a valuation and a letter
// disagree on dimension d.
var ErrDimensionMismatch = errors.New("valuation: dimension mismatch")

// ErrNegativeDimension indicates a non-positive dimension was requested.
var ErrNegativeDimension = errors.New("valuation: dimension must be >= 1")

// Sign is the polarity of a CFG letter: Plus (+c_k) or Minus (-c_k).
type Sign int8

const (
	// Plus denotes the letter +c_k (increment counter k).
	Plus Sign = 1
	// Minus denotes the letter -c_k (decrement counter k).
	Minus Sign = -1
)

// String renders the sign as "+" or "-".
func (s Sign) String() string {
	if s == Plus {
		return "+"
	}
	return "-"
}

// Letter is a single CFG-alphabet symbol: counter index k and polarity.
// The CFG alphabet for dimension d is the 2d-element set
// { +c_0 .. +c_{d-1}, -c_0 .. -c_{d-1} }.
type Letter struct {
	Counter int
	Sign    Sign
}

// String renders the letter as "+c3" or "-c0".
func (l Letter) String() string {
	return fmt.Sprintf("%sc%d", l.Sign, l.Counter)
}

// Delta returns the per-coordinate effect of firing this letter: +1 or -1 at
// Counter, zero elsewhere, as a length-d vector.
func (l Letter) Delta(d int) []int32 {
	v := make([]int32, d)
	v[l.Counter] = int32(l.Sign)
	return v
}

// Alphabet returns the 2d-letter CFG alphabet for dimension d, in the
// coordinate-ascending, plus-before-minus order the VASS→CFG translation
// (cfg package) relies on for deterministic unfolding (spec §4.4).
func Alphabet(d int) []Letter {
	alphabet := make([]Letter, 0, 2*d)
	for k := 0; k < d; k++ {
		alphabet = append(alphabet, Letter{Counter: k, Sign: Plus})
	}
	for k := 0; k < d; k++ {
		alphabet = append(alphabet, Letter{Counter: k, Sign: Minus})
	}
	return alphabet
}

// LetterIndex returns the position of a letter within Alphabet(d), used to
// index dense per-letter transition tables without a map lookup.
func LetterIndex(l Letter, d int) int {
	if l.Sign == Plus {
		return l.Counter
	}
	return d + l.Counter
}

// Valuation is an immutable vector of d signed 32-bit counters.
type Valuation struct {
	v []int32
}

// New constructs a Valuation from the given coordinates. The slice is
// copied; callers retain ownership of the argument.
func New(coords ...int32) Valuation {
	cp := make([]int32, len(coords))
	copy(cp, coords)
	return Valuation{v: cp}
}

// Zero returns the all-zero valuation of dimension d.
func Zero(d int) Valuation {
	return Valuation{v: make([]int32, d)}
}

// Dim returns the dimension d of this valuation.
func (v Valuation) Dim() int { return len(v.v) }

// At returns the value of counter k. Panics if k is out of range, mirroring
// the teacher's policy of panicking on programmer error (spec §7).
func (v Valuation) At(k int) int32 { return v.v[k] }

// Slice returns a defensive copy of the underlying coordinates.
func (v Valuation) Slice() []int32 {
	cp := make([]int32, len(v.v))
	copy(cp, v.v)
	return cp
}

// IsNonNegative reports whether every coordinate is >= 0.
func (v Valuation) IsNonNegative() bool {
	for _, c := range v.v {
		if c < 0 {
			return false
		}
	}
	return true
}

// Equal reports coordinate-wise equality. Dimension mismatch is not an
// error here; valuations of different dimension are simply unequal.
func (v Valuation) Equal(o Valuation) bool {
	if len(v.v) != len(o.v) {
		return false
	}
	for i := range v.v {
		if v.v[i] != o.v[i] {
			return false
		}
	}
	return true
}

// Add returns v + o coordinate-wise. Panics on dimension mismatch.
func (v Valuation) Add(o Valuation) Valuation {
	if len(v.v) != len(o.v) {
		panic(fmt.Sprintf("valuation: Add dimension mismatch %d != %d", len(v.v), len(o.v)))
	}
	out := make([]int32, len(v.v))
	for i := range v.v {
		out[i] = v.v[i] + o.v[i]
	}
	return Valuation{v: out}
}

// Sub returns v - o coordinate-wise. Panics on dimension mismatch.
func (v Valuation) Sub(o Valuation) Valuation {
	if len(v.v) != len(o.v) {
		panic(fmt.Sprintf("valuation: Sub dimension mismatch %d != %d", len(v.v), len(o.v)))
	}
	out := make([]int32, len(v.v))
	for i := range v.v {
		out[i] = v.v[i] - o.v[i]
	}
	return Valuation{v: out}
}

// Apply returns the valuation obtained by firing letter l from v, i.e.
// v with v[l.Counter] adjusted by l.Sign. Panics if l.Counter is out of range.
func (v Valuation) Apply(l Letter) Valuation {
	out := v.Slice()
	out[l.Counter] += int32(l.Sign)
	return Valuation{v: out}
}

// RemEuclid returns v with coordinate k reduced modulo m using Euclidean
// remainder (always in [0, m)), matching Rust's i32::rem_euclid semantics
// that spec §3 calls out explicitly.
func (v Valuation) RemEuclid(k int, m int32) Valuation {
	out := v.Slice()
	out[k] = remEuclid(out[k], m)
	return Valuation{v: out}
}

// RemEuclidVec returns v with every coordinate k reduced modulo mu[k].
// Panics if len(mu) != v.Dim().
func (v Valuation) RemEuclidVec(mu []int32) Valuation {
	if len(mu) != len(v.v) {
		panic(fmt.Sprintf("valuation: RemEuclidVec dimension mismatch %d != %d", len(mu), len(v.v)))
	}
	out := make([]int32, len(v.v))
	for i := range v.v {
		out[i] = remEuclid(v.v[i], mu[i])
	}
	return Valuation{v: out}
}

func remEuclid(a, m int32) int32 {
	if m <= 0 {
		panic("valuation: RemEuclid modulus must be positive")
	}
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// String renders the valuation as "(a, b, c)".
func (v Valuation) String() string {
	s := "("
	for i, c := range v.v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%d", c)
	}
	return s + ")"
}
