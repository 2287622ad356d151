// Package vass defines the Vector Addition System with States (VASS) data
// model of spec §3: a directed multigraph of states connected by signed
// integer vector edges, where firing an edge from valuation v is legal in
// the N-semantics iff v + Δ is coordinate-wise non-negative.
//
// The construction API (New/AddState/AddEdge) follows core.NewGraph's
// functional-option, sentinel-error shape (teacher package core), but keys
// states by dense int indices per indexset's rationale rather than by
// string vertex IDs, since the CEGAR engine never needs to address a VASS
// state by a human label.
package vass

import (
	"errors"
	"fmt"

	"github.com/vassreach/vassreach/valuation"
)

// Sentinel errors for VASS construction, mirroring core's sentinel-error
// policy ("callers branch with errors.Is, never string comparison").
var (
	// ErrStateNotFound indicates an operation referenced a non-existent state.
	ErrStateNotFound = errors.New("vass: state not found")

	// ErrDimensionMismatch indicates an initial or final valuation's
	// dimension disagrees with the VASS's configured dimension
	// (NewInitialized; AddEdge panics on a wrong-length delta instead).
	ErrDimensionMismatch = errors.New("vass: dimension mismatch")

	// ErrConflictingEdge indicates two different edges were added from the
	// same source with the same external letter — the underlying system
	// must remain deterministic per external letter (spec §3).
	ErrConflictingEdge = errors.New("vass: conflicting edge for external letter")
)

// Counter names one coordinate of the VASS's counter vector, so a
// coordinate can be called "tokens" or "lock" instead of "c3" (spec §9 /
// original automaton/vass/counter.rs). The names are stored and returned
// by Counters; Graphviz export does not use them.
type Counter struct {
	Name string
}

// Edge is a VASS transition: a signed integer d-vector Δ, plus an
// optional external letter (from the Petri-net / outer alphabet) used to
// enforce per-letter determinism (spec §3).
type Edge struct {
	From, To int
	Delta    []int32
	Letter   string // "" means internal / unlabeled
}

// CanFire reports whether firing this edge from v is legal under the
// N-semantics: v + Δ must be coordinate-wise non-negative.
func (e Edge) CanFire(v valuation.Valuation) bool {
	return e.Fire(v).IsNonNegative()
}

// Fire returns v + Δ, without checking non-negativity (used by the
// Z-semantics, and internally by CanFire).
func (e Edge) Fire(v valuation.Valuation) valuation.Valuation {
	return v.Add(valuation.New(e.Delta...))
}

// VASS is a directed multigraph over states with Edge-labelled
// transitions. Adding two different edges from the same source with the
// same external letter is forbidden.
type VASS struct {
	dim      int
	counters []Counter
	numStates int
	edges    []Edge
	outgoing [][]int // state -> indices into edges
	byLetter []map[string]int // state -> letter -> edge index, for the determinism check
}

// New returns an empty VASS of the given dimension, with counters named
// c0..c{dim-1} by default (override via WithCounterNames).
func New(dim int) *VASS {
	if dim < 1 {
		panic("vass: dimension must be >= 1")
	}
	counters := make([]Counter, dim)
	for k := range counters {
		counters[k] = Counter{Name: fmt.Sprintf("c%d", k)}
	}
	return &VASS{dim: dim, counters: counters}
}

// WithCounterNames overrides the default counter names. Panics if the
// length disagrees with the VASS dimension.
func (v *VASS) WithCounterNames(names ...string) *VASS {
	if len(names) != v.dim {
		panic(fmt.Sprintf("vass: WithCounterNames expected %d names, got %d", v.dim, len(names)))
	}
	for k, name := range names {
		v.counters[k] = Counter{Name: name}
	}
	return v
}

// Dim returns the VASS's counter dimension.
func (v *VASS) Dim() int { return v.dim }

// Counters returns the (named) counters, in coordinate order.
func (v *VASS) Counters() []Counter { return append([]Counter(nil), v.counters...) }

// NumStates returns the number of states added so far.
func (v *VASS) NumStates() int { return v.numStates }

// AddState appends a new state and returns its index.
func (v *VASS) AddState() int {
	v.outgoing = append(v.outgoing, nil)
	v.byLetter = append(v.byLetter, make(map[string]int))
	v.numStates++
	return v.numStates - 1
}

// AddEdge adds a VASS edge from--Δ-->to, with an optional external letter.
// Panics if delta's length disagrees with v.Dim(), or either endpoint is
// out of range. Returns ErrConflictingEdge if a different edge already
// exists from `from` on the same non-empty letter.
func (v *VASS) AddEdge(from, to int, delta []int32, letter string) (int, error) {
	if len(delta) != v.dim {
		panic(fmt.Sprintf("vass: AddEdge delta length %d != dim %d", len(delta), v.dim))
	}
	if from < 0 || from >= v.numStates || to < 0 || to >= v.numStates {
		panic(fmt.Sprintf("vass: AddEdge endpoints (%d,%d) out of range [0,%d)", from, to, v.numStates))
	}
	if letter != "" {
		if existing, ok := v.byLetter[from][letter]; ok {
			if !deltaEqual(v.edges[existing].Delta, delta) || v.edges[existing].To != to {
				return -1, fmt.Errorf("%w: state %d, letter %q", ErrConflictingEdge, from, letter)
			}
			return existing, nil
		}
	}
	idx := len(v.edges)
	cp := make([]int32, len(delta))
	copy(cp, delta)
	v.edges = append(v.edges, Edge{From: from, To: to, Delta: cp, Letter: letter})
	v.outgoing[from] = append(v.outgoing[from], idx)
	if letter != "" {
		v.byLetter[from][letter] = idx
	}
	return idx, nil
}

func deltaEqual(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Edges returns the explicit, ordered edge list.
func (v *VASS) Edges() []Edge { return v.edges }

// EdgeAt returns the edge at idx.
func (v *VASS) EdgeAt(idx int) Edge { return v.edges[idx] }

// OutgoingEdges returns the indices of edges leaving state s, in
// insertion order.
func (v *VASS) OutgoingEdges(s int) []int { return v.outgoing[s] }

// InitializedVASS pairs a VASS with an initial state/valuation and a
// final state/valuation (spec §3).
type InitializedVASS struct {
	VASS              *VASS
	InitialState      int
	FinalState        int
	InitialValuation  valuation.Valuation
	FinalValuation    valuation.Valuation
}

// NewInitialized validates that both valuations are non-negative and of
// the VASS's dimension, and that both states exist.
func NewInitialized(v *VASS, initState, finalState int, init, final valuation.Valuation) (*InitializedVASS, error) {
	if initState < 0 || initState >= v.numStates || finalState < 0 || finalState >= v.numStates {
		return nil, ErrStateNotFound
	}
	if init.Dim() != v.dim || final.Dim() != v.dim {
		return nil, ErrDimensionMismatch
	}
	if !init.IsNonNegative() || !final.IsNonNegative() {
		return nil, errors.New("vass: initial/final valuation must be non-negative")
	}
	return &InitializedVASS{
		VASS:             v,
		InitialState:     initState,
		FinalState:       finalState,
		InitialValuation: init,
		FinalValuation:   final,
	}, nil
}
