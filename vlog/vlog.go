// Package vlog wraps github.com/projectdiscovery/gologger (also used by
// the reference pack's projectdiscovery-alterx) with the small set of
// structural log events the CEGAR driver and CLI need: iteration
// progress, refinement decisions, and SMT solver calls. It exists so
// driver code never reaches for fmt.Printf directly, mirroring how
// induction.go in the pack logs pipeline stages through gologger's
// levelled Event API instead of ad-hoc prints.
//
// Mirrors the original process-wide logger (logger.rs): one level plus
// an optional file sink, configured once at process start.
package vlog

import (
	"fmt"
	"os"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
)

// Level is the vassreach-facing subset of gologger's level enum that the
// config package's logger.log_level key accepts.
type Level string

const (
	LevelSilent  Level = "silent"
	LevelFatal   Level = "fatal"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
	LevelVerbose Level = "verbose"
	LevelDebug   Level = "debug"
)

func (l Level) toGologger() levels.Level {
	switch l {
	case LevelSilent:
		return levels.LevelSilent
	case LevelFatal:
		return levels.LevelFatal
	case LevelError:
		return levels.LevelError
	case LevelWarning:
		return levels.LevelWarning
	case LevelInfo:
		return levels.LevelInfo
	case LevelVerbose:
		return levels.LevelVerbose
	case LevelDebug:
		return levels.LevelDebug
	default:
		return levels.LevelInfo
	}
}

// fileWriter adapts an *os.File to gologger's Writer interface (Write
// receives the already-formatted line plus its level; gologger ships a
// CLI writer but no file writer, so this is a small adapter rather than
// a full logging backend).
type fileWriter struct{ f *os.File }

func (w *fileWriter) Write(data []byte, level levels.Level) {
	w.f.Write(data)
	w.f.Write([]byte("\n"))
}

// Configure installs enabled, level, and optional file-sink settings on
// gologger's process-wide DefaultLogger, per the config package's
// logger.enabled/logger.log_level/logger.log_file keys (spec §6). Pass
// an empty logFile to keep the default CLI sink.
func Configure(enabled bool, level Level, logFile string) error {
	if !enabled {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
		return nil
	}
	gologger.DefaultLogger.SetMaxLevel(level.toGologger())
	if logFile == "" {
		return nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("vlog: Configure: open log file: %w", err)
	}
	gologger.DefaultLogger.SetWriter(&fileWriter{f: f})
	return nil
}

// Iteration logs the start of one CEGAR loop iteration (spec §4.9).
func Iteration(n int) {
	gologger.Info().Msgf("cegar: iteration %d", n)
}

// Refinement logs a refinement action the driver took this iteration —
// raising a forward/backward bound, tightening the modulus, excluding an
// LTC/LSG witness, or falling back to plain word exclusion (spec §4.9's
// priority-ordered refinement-action selection).
func Refinement(action string, detail string) {
	gologger.Verbose().Msgf("cegar: refinement=%s %s", action, detail)
}

// SolverCall logs one embedded SMT call's outcome (LTC/LSG feasibility,
// or the Z-reachability Kirchhoff encoding), per spec §7's distinction
// between inner solver UNKNOWNs (logged and absorbed) and the driver's
// own outer answer.
func SolverCall(what string, sat string, elapsedMs int64) {
	gologger.Debug().Msgf("smt: %s -> %s (%dms)", what, sat, elapsedMs)
}

// Warning logs a non-fatal anomaly (e.g. an SMT UNKNOWN absorbed per
// spec §7, rather than surfaced as a driver failure).
func Warning(format string, args ...any) {
	gologger.Warning().Msgf(format, args...)
}

// Error logs a caller-visible error before it is returned, so a failing
// run leaves a structural trace even when the caller only inspects the
// returned error value.
func Error(format string, args ...any) {
	gologger.Error().Msgf(format, args...)
}
