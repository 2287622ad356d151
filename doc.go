// Package vassreach is a reachability decision engine for Vector
// Addition Systems with States (VASS) and Petri nets.
//
// 🚀 What is vassreach?
//
//	A CEGAR-style abstraction-refinement engine that decides:
//
//	  • N-reachability — can a target counter valuation be reached
//	    while every intermediate valuation stays non-negative?
//	  • Z-reachability  — can it be reached if negative intermediate
//	    valuations are allowed (a Kirchhoff-equation SMT question)?
//
// ✨ How it works
//
//   - A VASS or Petri net lowers to a control-flow graph (CFG) over a
//     signed-letter alphabet (cfg).
//   - An implicit product of the main CFG, modulo automata, and
//     forward/backward bound automata is searched by BFS (product),
//     without ever materializing the full product space.
//   - When a witness fails to N-reach, the driver refines: tighten a
//     bound, raise a modulus, or exclude a Loop-Transition-Chain (ltc)
//     or Linear-Subgraph (lsg) abstraction checked infeasible by an
//     embedded SMT solver (smt).
//
// Under the hood, everything is organized under these subpackages:
//
//	valuation/, indexset/  — counter valuations, alphabet, index sets
//	automaton/, cfg/       — DFA/NFA and the CFG letter automata
//	vass/, petrinet/       — the VASS model and the Petri-net spec format
//	pathseq/, parikh/      — paths, transition sequences, Parikh images
//	product/               — the implicit CFG product and its BFS search
//	ltc/, lsg/, smt/       — loop/subgraph abstractions and SMT feasibility
//	solver/                — solver.Cegar (N-reach) and solver.ZReach (Z-reach)
//	config/, vlog/         — TOML configuration and structured logging
//	vassbuilder/           — VASS fixture construction for tests
//	cmd/vassreach/         — the CLI binary
//
// Dive into SPEC_FULL.md for the full component design and DESIGN.md for
// the rationale behind each package's shape.
//
//	go get github.com/vassreach/vassreach
package vassreach
