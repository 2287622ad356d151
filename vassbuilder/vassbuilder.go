// Package vassbuilder generalizes the teacher's builder package
// (functional-option graph constructors: BuilderOption, newBuilderConfig,
// WithSeed) into fixture construction for InitializedVASS instances,
// following the original's tests/vass_reach_random.rs idiom of exercising
// the solver against generated, not just hand-written, instances.
//
// Unlike builder's topology constructors (impl_cycle.go, impl_star.go,
// ...), a vassbuilder Constructor builds the reachability semantics spec
// §8's scenarios name directly: self-loops with specific delta vectors,
// chains of states, and the counter/modulo/bound edge cases the CEGAR
// driver's tests exercise.
package vassbuilder

import (
	"math/rand"

	"github.com/vassreach/vassreach/valuation"
	"github.com/vassreach/vassreach/vass"
)

// config mirrors builder.builderConfig's shape: an optional RNG plus
// whatever knobs a Constructor needs, applied via functional options.
type config struct {
	rng *rand.Rand
	dim int
}

// Option customizes a Constructor's build, following
// builder.BuilderOption's "function mutates config, later wins" shape.
type Option func(*config)

// WithSeed seeds a deterministic RNG, for Constructors that draw random
// deltas (e.g. RandomChain). Mirrors builder.WithSeed.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithDim records a counter dimension in the build config. None of the
// Constructors in this package read it: each takes its dimension from
// its delta or valuation arguments.
func WithDim(dim int) Option {
	return func(c *config) {
		if dim > 0 {
			c.dim = dim
		}
	}
}

func newConfig(opts ...Option) *config {
	c := &config{dim: 1}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Constructor builds an InitializedVASS. Mirrors the teacher's builder
// functions (NewCycle, NewStar, ...), which return a *core.Graph built
// from a *builderConfig.
type Constructor func(*config) (*vass.InitializedVASS, error)

// Build runs a Constructor with the given options applied.
func Build(ctor Constructor, opts ...Option) (*vass.InitializedVASS, error) {
	return ctor(newConfig(opts...))
}

// SelfLoop returns a one-state VASS with a single self-loop of the given
// delta, from init to final (spec §8's single-counter boundary scenarios
// and Scenario A's trivially-reachable case).
func SelfLoop(delta []int32, init, final valuation.Valuation) Constructor {
	return func(c *config) (*vass.InitializedVASS, error) {
		v := vass.New(len(delta))
		s := v.AddState()
		if _, err := v.AddEdge(s, s, delta, ""); err != nil {
			return nil, err
		}
		return vass.NewInitialized(v, s, s, init, final)
	}
}

// EmptyVASS returns a one-state VASS with no transitions (spec §8's
// "Empty VASS (no transitions): reachable iff v0 = vf" boundary case).
func EmptyVASS(dim int, init, final valuation.Valuation) Constructor {
	return func(c *config) (*vass.InitializedVASS, error) {
		v := vass.New(dim)
		s := v.AddState()
		return vass.NewInitialized(v, s, s, init, final)
	}
}

// TwoLoops returns a one-state VASS with two distinct self-loops, for
// spec §8's Scenario C (LTC-necessary): one loop of deltaA, one of
// deltaB, both firing any non-negative number of times.
func TwoLoops(deltaA, deltaB []int32, init, final valuation.Valuation) Constructor {
	return func(c *config) (*vass.InitializedVASS, error) {
		v := vass.New(len(deltaA))
		s := v.AddState()
		if _, err := v.AddEdge(s, s, deltaA, ""); err != nil {
			return nil, err
		}
		if _, err := v.AddEdge(s, s, deltaB, ""); err != nil {
			return nil, err
		}
		return vass.NewInitialized(v, s, s, init, final)
	}
}

// ZNotNChain returns the two-state chain of spec §8's Scenario D: q0 --
// -c0--> q1 --+c0--> q1 (q1 accepting/final), which is Z-reachable but
// not N-reachable from (0,0) to (0,0).
func ZNotNChain() Constructor {
	return func(c *config) (*vass.InitializedVASS, error) {
		v := vass.New(2)
		q0 := v.AddState()
		q1 := v.AddState()
		if _, err := v.AddEdge(q0, q1, []int32{-1, 0}, ""); err != nil {
			return nil, err
		}
		if _, err := v.AddEdge(q1, q1, []int32{1, 0}, ""); err != nil {
			return nil, err
		}
		return vass.NewInitialized(v, q0, q1, valuation.New(0, 0), valuation.New(0, 0))
	}
}

// DoubledIncrement returns spec §8's Scenario E fixture: a one-state,
// one-counter VASS with one self-loop of delta +2 (two copies of +c0 once
// unfolded into CFG letters), so the reachable set from 0 is exactly the
// even naturals, from v0 to vf.
func DoubledIncrement(v0, vf int32) Constructor {
	return func(c *config) (*vass.InitializedVASS, error) {
		v := vass.New(1)
		s := v.AddState()
		if _, err := v.AddEdge(s, s, []int32{2}, ""); err != nil {
			return nil, err
		}
		return vass.NewInitialized(v, s, s, valuation.New(v0), valuation.New(vf))
	}
}

// RandomChain builds a straight-line chain of n states, each connected to
// the next by a randomly-signed, randomly-magnituded delta (magnitude in
// [1,maxMag]), using the config's seeded RNG (WithSeed) — the in-module
// analogue of the original's vass_reach_random.rs generator, used as test
// fixture tooling rather than a CLI-exposed generator (spec.md names
// random-instance generation a non-goal as a *tool*, not as internal test
// fixtures).
func RandomChain(n, maxMag int, init, final valuation.Valuation) Constructor {
	return func(c *config) (*vass.InitializedVASS, error) {
		if n < 1 {
			panic("vassbuilder: RandomChain requires n >= 1")
		}
		rng := c.rng
		if rng == nil {
			rng = rand.New(rand.NewSource(1))
		}
		dim := init.Dim()
		v := vass.New(dim)
		states := make([]int, n)
		for i := range states {
			states[i] = v.AddState()
		}
		for i := 0; i < n-1; i++ {
			delta := make([]int32, dim)
			for k := range delta {
				mag := int32(rng.Intn(maxMag) + 1)
				if rng.Intn(2) == 0 {
					mag = -mag
				}
				delta[k] = mag
			}
			if _, err := v.AddEdge(states[i], states[i+1], delta, ""); err != nil {
				return nil, err
			}
		}
		return vass.NewInitialized(v, states[0], states[n-1], init, final)
	}
}
