// Command vassreach is the CLI surface of spec §6: it takes a Petri-net
// spec file or a VASS JSON file, runs the requested reachability solver,
// and prints a {status, statistics} JSON object to stdout.
//
// Grounded on ehrlich-b-wingthing's cobra.Command root-command tree
// (single RunE, flags bound via rootCmd.Flags()) rather than a
// subcommand tree, since spec §6 names exactly one binary with two
// flags.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vassreach/vassreach/cfg"
	"github.com/vassreach/vassreach/config"
	"github.com/vassreach/vassreach/petrinet"
	"github.com/vassreach/vassreach/smt"
	"github.com/vassreach/vassreach/solver"
	"github.com/vassreach/vassreach/vass"
	"github.com/vassreach/vassreach/vlog"
)

var (
	mode       string
	configPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "vassreach <file>",
		Short: "Decide N- or Z-reachability for a VASS or Petri net",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "n", "reachability mode: n or z")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// report is the {status, statistics} JSON object spec §6 mandates.
type report struct {
	Status     string `json:"status"`
	Statistics any    `json:"statistics"`
}

func run(cmd *cobra.Command, args []string) error {
	if mode != "n" && mode != "z" {
		return fmt.Errorf("vassreach: -m must be \"n\" or \"z\", got %q", mode)
	}

	cfgFile := config.Default()
	if configPath != "" {
		var err error
		cfgFile, err = config.Load(configPath)
		if err != nil {
			return err
		}
	}
	if err := cfgFile.ConfigureLogger(); err != nil {
		return err
	}

	iv, err := loadInstance(args[0])
	if err != nil {
		return err
	}

	switch mode {
	case "n":
		return runN(iv, cfgFile)
	default:
		return runZ(iv, cfgFile)
	}
}

// loadInstance accepts either a Petri-net spec file (spec §6's EBNF) or
// a JSON-serialized InitializedPetriNet, trying JSON first and falling
// back to the textual grammar (petrinet.Parse) when that fails.
func loadInstance(path string) (*vass.InitializedVASS, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("vassreach: %w", err)
	}

	if ipn, jsonErr := petrinet.FromJSON(data); jsonErr == nil {
		return ipn.ToVASS()
	}

	spec, err := petrinet.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("vassreach: %s is neither a valid Petri-net spec nor a JSON InitializedPetriNet: %w", path, err)
	}
	ipn, err := petrinet.Compile(spec)
	if err != nil {
		return nil, fmt.Errorf("vassreach: %w", err)
	}
	return ipn.ToVASS()
}

func runN(iv *vass.InitializedVASS, cfgFile config.Config) error {
	cc, err := cfgFile.ToCegarConfig()
	if err != nil {
		return err
	}
	c := solver.NewCegar(iv, cc)
	result := c.Run()
	vlog.Iteration(result.Stats.Iterations)

	return emit(report{Status: statusString(result.Status), Statistics: result.Stats})
}

func runZ(iv *vass.InitializedVASS, cfgFile config.Config) error {
	main := cfg.FromVASSReach(iv)

	deadline := 2 * time.Second
	steps := 10
	if cc, err := cfgFile.ToCegarConfig(); err == nil {
		if cc.PerCallDeadline > 0 {
			deadline = cc.PerCallDeadline
		}
		if cc.LSGMaxRefinementSteps > 0 {
			steps = cc.LSGMaxRefinementSteps
		}
	}

	sat := solver.ZReach(main, iv.InitialValuation, iv.FinalValuation, steps, deadline)
	return emit(report{Status: satString(sat), Statistics: map[string]any{}})
}

// statusString maps a CEGAR verdict to the "true"|"false"|"unknown"
// wire vocabulary spec §6 mandates (Status.String() instead spells out
// "reachable"/"unreachable"/"unknown" for Go-side readability).
func statusString(s solver.Status) string {
	switch s {
	case solver.StatusReachable:
		return "true"
	case solver.StatusUnreachable:
		return "false"
	default:
		return "unknown"
	}
}

func satString(s smt.Sat) string {
	switch s {
	case smt.SatResult:
		return "true"
	case smt.Unsat:
		return "false"
	default:
		return "unknown"
	}
}

func emit(r report) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
