// Package config loads the TOML configuration file spec §6 describes,
// parsed with github.com/pelletier/go-toml/v2 (promoted here from an
// indirect dependency of the reference pack's leanlp-BTC-coinjoin go.mod
// to a direct one — see DESIGN.md). The Config struct generalizes the
// teacher's builder.builderConfig/BuilderOption functional-options shape
// to a file-backed configuration: Load applies file values over the same
// defaults DefaultCegarConfig already encodes, rather than introducing a
// second set of magic numbers.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vassreach/vassreach/lsg"
	"github.com/vassreach/vassreach/solver"
	"github.com/vassreach/vassreach/vlog"
)

// ModuloConfig is the TOML `[modulo]` table.
type ModuloConfig struct {
	Mode string `toml:"mode"`
}

// LtsConfig is the TOML `[lts]` table (spec §6 keys `lts.enabled`,
// `lts.relaxed_enabled`).
type LtsConfig struct {
	Enabled        *bool `toml:"enabled"`
	RelaxedEnabled *bool `toml:"relaxed_enabled"`
}

// LsgConfig is the TOML `[lsg]` table.
type LsgConfig struct {
	Enabled            *bool  `toml:"enabled"`
	MaxRefinementSteps int    `toml:"max_refinement_steps"`
	Strategy           string `toml:"strategy"`
}

// LoggerConfig is the TOML `[logger]` table (external logging knobs,
// spec §6: "logger.enabled, logger.log_level, logger.log_file").
type LoggerConfig struct {
	Enabled  *bool  `toml:"enabled"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
}

// Config is the parsed form of the TOML config file, recognizing exactly
// the keys spec §6 lists.
type Config struct {
	Timeout       string `toml:"timeout"`
	MaxIterations int    `toml:"max_iterations"`

	Modulo ModuloConfig `toml:"modulo"`
	Lts    LtsConfig    `toml:"lts"`
	Lsg    LsgConfig    `toml:"lsg"`
	Logger LoggerConfig `toml:"logger"`
}

// Default returns a Config whose fields already mirror
// solver.DefaultCegarConfig(), so an absent or partial TOML file still
// produces the defaults (modulo.mode LCM, lts/lsg enabled, logger
// enabled at info level). timeout and max_iterations are left unset
// here, so ToCegarConfig keeps solver.DefaultCegarConfig()'s values for
// them.
func Default() Config {
	enabled := true
	relaxed := true
	return Config{
		Modulo: ModuloConfig{Mode: "LeastCommonMultiple"},
		Lts:    LtsConfig{Enabled: &enabled, RelaxedEnabled: &relaxed},
		Lsg: LsgConfig{
			Enabled:            &enabled,
			MaxRefinementSteps: solver.DefaultCegarConfig().LSGMaxRefinementSteps,
			Strategy:           "Random",
		},
		Logger: LoggerConfig{Enabled: &enabled, LogLevel: "info"},
	}
}

// Load reads and parses the TOML file at path, applying its values over
// Default() — so a config file only needs to name the keys it wants to
// override (spec §6: every key marked "optional"/"default ...").
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: Load: %w", err)
	}
	if err := toml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("config: Load: parse %s: %w", path, err)
	}
	return c, nil
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ToCegarConfig lowers the parsed TOML file into a solver.CegarConfig,
// starting from solver.DefaultCegarConfig() and overriding only the
// fields spec §6 exposes as configurable (Timeout, MaxIterations,
// modulo mode, LTC/LSG enablement, LSG tuning). Fields spec §6 does not
// expose (InitialMu, InitialBound, DeltaBoundFactor, PerCallDeadline)
// keep their solver.DefaultCegarConfig() values.
func (c Config) ToCegarConfig() (solver.CegarConfig, error) {
	cc := solver.DefaultCegarConfig()

	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return cc, fmt.Errorf("config: ToCegarConfig: timeout: %w", err)
		}
		cc.Timeout = d
	}
	if c.MaxIterations != 0 {
		cc.MaxIterations = c.MaxIterations
	}

	switch c.Modulo.Mode {
	case "", "LeastCommonMultiple":
		cc.ModuloMode = solver.LeastCommonMultiple
	case "Increment":
		cc.ModuloMode = solver.Increment
	default:
		return cc, fmt.Errorf("config: ToCegarConfig: unknown modulo.mode %q", c.Modulo.Mode)
	}

	cc.LTCEnabled = boolOr(c.Lts.Enabled, true)
	cc.LTCRelaxedEnabled = boolOr(c.Lts.RelaxedEnabled, true)
	cc.LSGEnabled = boolOr(c.Lsg.Enabled, true)
	if c.Lsg.MaxRefinementSteps != 0 {
		cc.LSGMaxRefinementSteps = c.Lsg.MaxRefinementSteps
	}
	switch c.Lsg.Strategy {
	case "", "Random":
		cc.LSGStrategy = lsg.RandomNode
	case "RandomSCC":
		cc.LSGStrategy = lsg.RandomSCC
	default:
		return cc, fmt.Errorf("config: ToCegarConfig: unknown lsg.strategy %q", c.Lsg.Strategy)
	}

	return cc, nil
}

// ConfigureLogger installs c.Logger's settings on the process-wide vlog
// logger (spec §6's "logger.enabled, logger.log_level, logger.log_file").
func (c Config) ConfigureLogger() error {
	return vlog.Configure(boolOr(c.Logger.Enabled, true), vlog.Level(c.Logger.LogLevel), c.Logger.LogFile)
}
