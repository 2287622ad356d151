// Package smt wraps github.com/aclements/go-z3 behind the small integer-
// arithmetic surface the ltc, lsg, and solver packages need: integer
// variables, linear (in)equalities, and a deadline-bounded CheckSAT
// (spec §5's cancellation semantics — "a stop signal... causes the
// current SMT call to interrupt on its next check, returning UNKNOWN").
//
// No example repo in the reference pack performs SMT or ILP solving, so
// this package is grounded on spec §5/§9 directly rather than on teacher
// code; the Context constructor's scoped-config-then-teardown shape
// still follows core.NewGraph(opts...)'s functional-option idiom (see
// DESIGN.md).
package smt

import (
	"context"
	"time"

	"github.com/aclements/go-z3/z3"
)

// Int is a Z3 integer term, re-exported so callers building up linear
// expressions (ltc, lsg) never need to import go-z3 directly.
type Int = z3.Int

// Bool is a Z3 boolean term, re-exported for the same reason — used by
// lsg's connected-component exclusion clauses, the one genuinely
// disjunctive constraint the engine needs.
type Bool = z3.Bool

// Or folds terms into a single disjunction. Panics if terms is empty.
func (c *Context) Or(terms ...Bool) Bool {
	out := terms[0]
	for _, t := range terms[1:] {
		out = out.Or(t)
	}
	return out
}

// Sat is the three-valued verdict a Z3 call can return.
type Sat int

const (
	Unsat Sat = iota
	SatResult
	Unknown
)

// Context owns one Z3 context/solver pair for the lifetime of a single
// feasibility query; callers create one per LTC/LSG check rather than
// sharing a solver across queries, so that Close always tears down a
// well-scoped set of Z3 resources.
type Context struct {
	ctx    *z3.Context
	solver *z3.Solver
	vars   map[string]z3.Int
}

// NewContext configures a fresh Z3 context in the default (integer,
// linear-arithmetic) configuration.
func NewContext() *Context {
	cfg := z3.NewConfig()
	ctx := z3.NewContext(cfg)
	return &Context{
		ctx:    ctx,
		solver: z3.NewSolver(ctx),
		vars:   make(map[string]z3.Int),
	}
}

// Close tears down the underlying Z3 context.
func (c *Context) Close() {
	c.ctx.Close()
}

// IntVar declares (or returns the already-declared) integer variable
// named name.
func (c *Context) IntVar(name string) z3.Int {
	if v, ok := c.vars[name]; ok {
		return v
	}
	v := c.ctx.IntConst(name)
	c.vars[name] = v
	return v
}

// Const returns the integer literal n.
func (c *Context) Const(n int64) z3.Int {
	return c.ctx.FromInt(n, c.ctx.IntSort())
}

// AssertGE asserts lhs >= rhs.
func (c *Context) AssertGE(lhs, rhs z3.Int) { c.solver.Assert(lhs.GE(rhs)) }

// AssertEQ asserts lhs == rhs.
func (c *Context) AssertEQ(lhs, rhs z3.Int) { c.solver.Assert(lhs.Eq(rhs)) }

// AssertGT asserts lhs > rhs.
func (c *Context) AssertGT(lhs, rhs z3.Int) { c.solver.Assert(lhs.GT(rhs)) }

// Assert asserts an arbitrary precomputed boolean term (used for
// disjunctions the per-equation helpers above can't express directly,
// e.g. LSG's connected-component exclusion clauses).
func (c *Context) Assert(b z3.Bool) { c.solver.Assert(b) }

// Eval returns v's value in the solver's last model as an int64. Only
// valid to call after CheckSAT returned SatResult.
func (c *Context) Eval(v Int) int64 {
	model := c.solver.Model()
	defer model.Close()
	val := model.Eval(v, true).(z3.Int)
	i, _, _ := val.AsInt64()
	return i
}

// CheckSAT runs the solver with a deadline: if the deadline elapses
// before Z3 returns, the underlying context is interrupted and Unknown
// is reported, mirroring spec §5's watchdog-thread cancellation without
// requiring a literal second thread in Go — context.Context's own timer
// plays the watchdog's role.
func (c *Context) CheckSAT(deadline time.Duration) Sat {
	ctx, cancel := context.WithTimeout(context.Background(), deadline)
	defer cancel()

	done := make(chan z3.Sat, 1)
	go func() {
		done <- c.solver.Check()
	}()

	select {
	case res := <-done:
		switch res {
		case z3.Unsat:
			return Unsat
		case z3.Sat:
			return SatResult
		default:
			return Unknown
		}
	case <-ctx.Done():
		c.ctx.Interrupt()
		return Unknown
	}
}
