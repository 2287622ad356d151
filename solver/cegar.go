package solver

import (
	"time"

	"github.com/vassreach/vassreach/automaton"
	"github.com/vassreach/vassreach/cfg"
	"github.com/vassreach/vassreach/ltc"
	"github.com/vassreach/vassreach/lsg"
	"github.com/vassreach/vassreach/pathseq"
	"github.com/vassreach/vassreach/product"
	"github.com/vassreach/vassreach/smt"
	"github.com/vassreach/vassreach/vass"
	"github.com/vassreach/vassreach/valuation"
)

// ModuloMode selects how the modulus for a counter grows once increasing
// it is the chosen refinement action (spec §4.9).
type ModuloMode int

const (
	// Increment raises the modulus by one each time it is increased.
	Increment ModuloMode = iota
	// LeastCommonMultiple raises the modulus μ_k to lcm(μ_k, |δ|+1), where
	// δ is the discrepancy on counter k that triggered the increase; the
	// result exceeds |δ|, so it does not divide δ and separates the
	// witness's end value from the target modulo the new μ_k. It is not
	// necessarily the smallest multiple of μ_k that does so.
	LeastCommonMultiple
)

// CegarConfig tunes the N-reachability driver. Zero-value fields are
// invalid; use DefaultCegarConfig and override individual fields.
type CegarConfig struct {
	// Timeout is the overall wall-clock budget for Run (spec §4.9's
	// budget check); zero means no wall-clock limit.
	Timeout time.Duration
	// MaxIterations bounds the number of CEGAR rounds; zero means no
	// iteration limit (Timeout alone still applies).
	MaxIterations int
	// PerCallDeadline bounds a single SMT call within one round.
	PerCallDeadline time.Duration

	InitialMu    int32
	InitialBound int32

	ModuloMode ModuloMode
	// DeltaBoundFactor is the "|δ| <= factor * μ_k" threshold spec §4.9
	// requires before a modulo increase is considered.
	DeltaBoundFactor int32
	// PumpingThreshold is the round-trip count IsCounterForwardsPumped
	// (spec §4.2) requires before a counter's excursion is treated as
	// unbounded pumping rather than a one-off bound violation.
	PumpingThreshold int

	LTCEnabled        bool
	LTCRelaxedEnabled bool

	LSGEnabled            bool
	LSGMaxRefinementSteps int
	LSGStrategy           lsg.Strategy
	LSGSeed               int64
}

// DefaultCegarConfig returns the tuning spec §4.9 sets up the initial
// product state with: μ=2 and both bounds=2 for every counter, LTC and
// LSG both enabled, a generous per-call SMT deadline.
func DefaultCegarConfig() CegarConfig {
	return CegarConfig{
		Timeout:               30 * time.Second,
		MaxIterations:         10000,
		PerCallDeadline:       2 * time.Second,
		InitialMu:             2,
		InitialBound:          2,
		ModuloMode:            LeastCommonMultiple,
		DeltaBoundFactor:      2,
		PumpingThreshold:      3,
		LTCEnabled:            true,
		LTCRelaxedEnabled:     true,
		LSGEnabled:            true,
		LSGMaxRefinementSteps: 4,
		LSGStrategy:           lsg.RandomNode,
		LSGSeed:               1,
	}
}

// Status is Cegar.Run's three-valued verdict.
type Status int

const (
	StatusUnreachable Status = iota
	StatusReachable
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusReachable:
		return "reachable"
	case StatusUnreachable:
		return "unreachable"
	default:
		return "unknown"
	}
}

// Statistics records what a CEGAR run did, surfaced to callers (e.g. the
// CLI's JSON report) for diagnostics (spec §6).
type Statistics struct {
	Iterations             int
	ForwardBoundIncreases  int
	BackwardBoundIncreases int
	ModuloIncreases        int
	LTCExclusions          int
	LSGExclusions          int
	WitnessExclusions      int
	Elapsed                time.Duration
}

// Result is Run's outcome: the verdict, a human-readable reason when
// Status is StatusUnknown ("timeout" or "max_iterations"), and
// statistics.
type Result struct {
	Status Status
	Reason string
	Stats  Statistics
}

// Cegar is the N-reachability decision procedure of spec §4.9: an
// ImplicitCFGProduct seeded with the main CFG plus modulo and
// forward/backward bound automata, iteratively refined by tightening a
// bound, raising a modulus, or adding an LTC/LSG-derived exclusion
// automaton whenever the product's current shortest witness turns out
// not to N-reach.
type Cegar struct {
	iv   *vass.InitializedVASS
	dim  int
	main *automaton.Dfa[valuation.Letter]

	p *product.ImplicitCFGProduct

	mu            []int32
	forwardBound  []int32
	backwardBound []int32

	moduloSlot    int
	forwardSlots  []int
	backwardSlots []int

	config CegarConfig
	stats  Statistics
}

// NewCegar builds the initial product state for iv per spec §4.9: the
// CFG derived from the VASS (made complete with a sink state by
// cfg.FromVASSReach, then minimized), a joint modulo automaton over
// every counter, and
// one forward and one backward bound automaton per counter, all seeded
// from config's initial μ/bound.
func NewCegar(iv *vass.InitializedVASS, config CegarConfig) *Cegar {
	dim := iv.VASS.Dim()
	main := cfg.FromVASSReach(iv).Minimize()

	c := &Cegar{
		iv:     iv,
		dim:    dim,
		main:   main,
		p:      product.New(dim, main),
		config: config,
	}

	c.mu = make([]int32, dim)
	c.forwardBound = make([]int32, dim)
	c.backwardBound = make([]int32, dim)
	for k := 0; k < dim; k++ {
		c.mu[k] = config.InitialMu
		c.forwardBound[k] = config.InitialBound
		c.backwardBound[k] = config.InitialBound
	}

	c.moduloSlot = c.p.AddCFG(cfg.NewModuloCFG(c.mu, iv.InitialValuation.RemEuclidVec(c.mu), iv.FinalValuation.RemEuclidVec(c.mu)))

	c.forwardSlots = make([]int, dim)
	for k := 0; k < dim; k++ {
		auto := cfg.BoundedCounting(dim, k, c.forwardBound[k], clampI32(iv.InitialValuation.At(k), c.forwardBound[k]))
		c.forwardSlots[k] = c.p.AddCFG(auto)
	}

	c.backwardSlots = make([]int, dim)
	for k := 0; k < dim; k++ {
		seed := cfg.BoundedCounting(dim, k, c.backwardBound[k], clampI32(iv.FinalValuation.At(k), c.backwardBound[k]))
		c.backwardSlots[k] = c.p.AddCFG(cfg.BoundedCountingReverse(seed))
	}

	return c
}

// Run drives the CEGAR loop to completion, per-round budget check first
// (spec §4.9 step 1): product search, N-reachability replay of the
// witness, then (if the witness fails) the priority-ordered refinement
// selection — forward bound, backward bound, modulo, then loop
// abstraction — before looping back to a fresh product search.
func (c *Cegar) Run() Result {
	start := time.Now()
	for {
		c.stats.Iterations++
		if c.config.MaxIterations > 0 && c.stats.Iterations > c.config.MaxIterations {
			c.stats.Elapsed = time.Since(start)
			return Result{Status: StatusUnknown, Reason: "max_iterations", Stats: c.stats}
		}
		if c.config.Timeout > 0 && time.Since(start) >= c.config.Timeout {
			c.stats.Elapsed = time.Since(start)
			return Result{Status: StatusUnknown, Reason: "timeout", Stats: c.stats}
		}

		res, ok := c.p.Reach()
		if !ok {
			c.stats.Elapsed = time.Since(start)
			return Result{Status: StatusUnreachable, Stats: c.stats}
		}

		nres := pathseq.IsNReaching(c.iv.InitialValuation, res.Letters)
		if nres.Reaches {
			c.stats.Elapsed = time.Since(start)
			return Result{Status: StatusReachable, Stats: c.stats}
		}

		if c.tryForwardBound(res.Letters, nres) {
			continue
		}
		if c.tryBackwardBound(res.Letters, nres) {
			continue
		}
		if c.tryModulo(res.Letters) {
			continue
		}
		if reachable := c.tryLoopAbstraction(res.Letters); reachable {
			c.stats.Elapsed = time.Since(start)
			return Result{Status: StatusReachable, Stats: c.stats}
		}
	}
}

// tryForwardBound implements spec §4.9's first refinement priority: if
// the counter that first went negative hasn't merely been pumped
// upward forever (is_counter_forwards_pumped), and the prefix up to the
// failure reaches a value above the current forward bound, raise that
// bound to the observed maximum.
func (c *Cegar) tryForwardBound(letters []valuation.Letter, nres pathseq.NReachResult) bool {
	k := nres.FailCounter
	prefix := letters[:nres.FailHopIndex+1]
	if pathseq.IsCounterForwardsPumped(prefix, k, c.config.PumpingThreshold) {
		return false
	}
	maxVal := pathseq.MaxCounterValue(c.iv.InitialValuation, prefix, k)
	if maxVal <= c.forwardBound[k] {
		return false
	}
	c.forwardBound[k] = maxVal
	auto := cfg.BoundedCounting(c.dim, k, maxVal, clampI32(c.iv.InitialValuation.At(k), maxVal))
	c.p.ReplaceCFG(c.forwardSlots[k], auto)
	c.stats.ForwardBoundIncreases++
	return true
}

// tryBackwardBound is tryForwardBound's symmetric counterpart: the same
// check run from the path's end backward, using MaxCounterValueFromBack
// against the final valuation.
func (c *Cegar) tryBackwardBound(letters []valuation.Letter, nres pathseq.NReachResult) bool {
	k := nres.FailCounter
	suffix := letters[nres.FailHopIndex:]
	if pathseq.IsCounterForwardsPumped(suffix, k, c.config.PumpingThreshold) {
		return false
	}
	maxVal := pathseq.MaxCounterValueFromBack(c.iv.FinalValuation, suffix, k)
	if maxVal <= c.backwardBound[k] {
		return false
	}
	c.backwardBound[k] = maxVal
	seed := cfg.BoundedCounting(c.dim, k, maxVal, clampI32(c.iv.FinalValuation.At(k), maxVal))
	c.p.ReplaceCFG(c.backwardSlots[k], cfg.BoundedCountingReverse(seed))
	c.stats.BackwardBoundIncreases++
	return true
}

// tryModulo implements spec §4.9's third priority: if the witness's end
// valuation disagrees with the target on some coordinate k by a small
// discrepancy (|δ| <= DeltaBoundFactor*μ_k) yet the witness swings
// counter k well past μ_k², refining the bound automata alone won't
// help — the modulus itself is too coarse to separate the witness from
// a genuine solution, so it is increased instead.
func (c *Cegar) tryModulo(letters []valuation.Letter) bool {
	end := c.iv.InitialValuation
	for _, l := range letters {
		end = end.Apply(l)
	}
	final := c.iv.FinalValuation

	for k := 0; k < c.dim; k++ {
		delta := end.At(k) - final.At(k)
		if delta == 0 {
			continue
		}
		absDelta := delta
		if absDelta < 0 {
			absDelta = -absDelta
		}
		maxVal := pathseq.MaxCounterValue(c.iv.InitialValuation, letters, k)
		if maxVal <= c.mu[k]*c.mu[k] || absDelta > c.config.DeltaBoundFactor*c.mu[k] {
			continue
		}
		switch c.config.ModuloMode {
		case LeastCommonMultiple:
			c.mu[k] = lcm(c.mu[k], absDelta+1)
		default:
			c.mu[k]++
		}
		auto := cfg.NewModuloCFG(c.mu, c.iv.InitialValuation.RemEuclidVec(c.mu), c.iv.FinalValuation.RemEuclidVec(c.mu))
		c.p.ReplaceCFG(c.moduloSlot, auto)
		c.stats.ModuloIncreases++
		return true
	}
	return false
}

// tryLoopAbstraction implements spec §4.9's final refinement priority:
// translate the witness into an ltc.Chain, check its relaxed- then
// strict-mode N-feasibility, and return true (the instance is
// reachable) if strict feasibility holds — a feasible chain means some
// choice of loop repetition counts realizes a genuine N-reaching
// witness with the same shape. Otherwise the witness is excluded from
// the product (so the next round's shortest path differs). The LSG
// check (tryLSGExclusion, growing an LSG via lsg.Extender) runs only for
// a looping witness when LTC is disabled; with LTC enabled the LTC
// branch always returns first and no LSG is built.
//
// Excluding by the single concrete witness word (rather than the whole
// family of words sharing its loop structure) is a narrower refinement
// than spec §4.9 describes — each infeasible loop shape may need
// several rounds to fully exhaust instead of one — but it preserves
// soundness and always makes progress, since the product never
// revisits an excluded word.
func (c *Cegar) tryLoopAbstraction(letters []valuation.Letter) bool {
	ts := c.replayMain(letters)
	letterOf := func(edge int) valuation.Letter { return c.main.EdgeAt(edge).Letter }

	if ts.HasLoop() && c.config.LTCEnabled {
		chain := ltc.FromPath(ts, letterOf, c.dim)

		relaxedSat := smt.SatResult
		if c.config.LTCRelaxedEnabled {
			relaxedSat = ltc.NFeasible(chain, c.iv.InitialValuation, true, c.config.PerCallDeadline)
		}
		if relaxedSat == smt.SatResult {
			if ltc.NFeasible(chain, c.iv.InitialValuation, false, c.config.PerCallDeadline) == smt.SatResult {
				return true
			}
		}
		c.p.AddCFG(excludeWord(c.dim, letters))
		c.stats.LTCExclusions++
		return false
	}

	if ts.HasLoop() && c.config.LSGEnabled {
		if c.tryLSGExclusion(ts, letters) {
			return false
		}
	}

	c.p.AddCFG(excludeWord(c.dim, letters))
	c.stats.WitnessExclusions++
	return false
}

// tryLSGExclusion grows an LSG rooted at the witness's first repeated
// node via lsg.Extender, then checks its feasibility; an UNSAT verdict
// excludes the witness exactly as the LTC path does. A SAT or Unknown
// verdict is inconclusive here (lsg.Reach reports a flow existence
// check, not a reconstructible witness), so it is simply not acted on.
func (c *Cegar) tryLSGExclusion(ts *pathseq.TransitionSequence, letters []valuation.Letter) bool {
	loopNode := firstRepeatedNode(ts)
	if loopNode == -1 {
		return false
	}

	g := lsg.New(c.dim)
	g.AddSubGraphPart(loopNode, loopNode, nil)

	ex := lsg.NewExtender(c.main, c.config.LSGStrategy, c.config.LSGSeed)
	for i := 0; i < c.config.LSGMaxRefinementSteps; i++ {
		pi, edge, ok := ex.Propose(g)
		if !ok {
			break
		}
		g.AddNode(pi, edge)
	}

	result := g.Reach(c.iv.InitialValuation, c.iv.FinalValuation, c.config.LSGMaxRefinementSteps, c.config.PerCallDeadline)
	if result == smt.Unsat {
		c.p.AddCFG(excludeWord(c.dim, letters))
		c.stats.LSGExclusions++
		return true
	}
	return false
}

// firstRepeatedNode returns the first node that ts visits twice, or -1
// if ts is a simple path.
func firstRepeatedNode(ts *pathseq.TransitionSequence) int {
	seen := map[int]bool{ts.First(): true}
	for _, h := range ts.Hops() {
		if seen[h.Node] {
			return h.Node
		}
		seen[h.Node] = true
	}
	return -1
}

// replayMain walks letters against the main CFG from its start state,
// recording the (edge, node) hop sequence EdgeIndex exposes, for
// building an ltc.Chain/pathseq analysis grounded in concrete CFG
// edges rather than bare letters.
func (c *Cegar) replayMain(letters []valuation.Letter) *pathseq.TransitionSequence {
	ts := pathseq.New(c.main.Start())
	state := c.main.Start()
	for _, l := range letters {
		idx, ok := c.main.EdgeIndex(state, l)
		if !ok {
			break
		}
		to, _ := c.main.Step(state, l)
		ts.Add(idx, to)
		state = to
	}
	return ts
}

// excludeWord builds the minimal DFA that accepts every word over the
// 2·dim-letter alphabet except exactly word: a chain of |word|+1 states
// tracing word's letters (the last of which is the sole non-accepting
// state) plus a single accepting sink absorbing any deviation.
func excludeWord(dim int, word []valuation.Letter) *automaton.Dfa[valuation.Letter] {
	alphabet := valuation.Alphabet(dim)
	out := automaton.New(alphabet)

	states := make([]int, len(word)+1)
	for i := range states {
		states[i] = out.AddState(automaton.DfaNode{Accepting: i != len(word)})
	}
	sink := out.AddState(automaton.DfaNode{Accepting: true})

	for i, l := range word {
		for _, a := range alphabet {
			if a == l {
				out.AddTransition(states[i], states[i+1], a)
			} else {
				out.AddTransition(states[i], sink, a)
			}
		}
	}
	for _, a := range alphabet {
		out.AddTransition(states[len(word)], sink, a)
	}
	for _, a := range alphabet {
		out.AddTransition(sink, sink, a)
	}
	out.SetStart(states[0])
	out.SetCompleteUnchecked()
	return out
}

func clampI32(v, bound int32) int32 {
	if v < 0 {
		return 0
	}
	if v > bound {
		return bound
	}
	return v
}

func lcm(a, b int32) int32 {
	if a == 0 || b == 0 {
		return 0
	}
	return a / gcd(a, b) * b
}

func gcd(a, b int32) int32 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}
