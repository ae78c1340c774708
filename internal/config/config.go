// Package config defines the prover's strategy configuration and its
// pflag-backed CLI surface, per §6.
package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/fologic/saturn/internal/saturate"
)

// Strategy bundles every saturation-run knob named in §6: saturation
// algorithm selector, literal selection function, age/weight ratio,
// term ordering and precedence, splitting mode, resource limits, seed
// and output mode.
type Strategy struct {
	SaturationAlgorithm string
	LiteralSelection    string
	AgeWeightRatio      int
	TermOrdering        string
	Splitting           bool
	TimeLimit           time.Duration
	MemoryLimitMB       int
	Seed                int64
	Output              string
	EvaluateArithmetic  bool
}

// RegisterFlags wires a Strategy's fields onto flags, with the
// defaults described in §6, and returns the Strategy the parsed flags
// will populate.
func RegisterFlags(flags *pflag.FlagSet) *Strategy {
	s := &Strategy{}
	flags.StringVar(&s.SaturationAlgorithm, "saturation-algorithm", "given_clause", "saturation algorithm (given_clause)")
	flags.StringVar(&s.LiteralSelection, "literal-selection", "none", "literal selection function (accepted but not used: no literal selection is applied)")
	flags.IntVar(&s.AgeWeightRatio, "age-weight-ratio", 5, "given-clause age:weight pick ratio")
	flags.StringVar(&s.TermOrdering, "term-ordering", "weight", "term ordering name (accepted but not used: equalities are always oriented by the built-in weight ordering)")
	flags.BoolVar(&s.Splitting, "splitting", true, "enable splitting-with-backtracking via BDD naming")
	flags.DurationVar(&s.TimeLimit, "time-limit", 0, "wall-clock deadline for the run, 0 = unbounded")
	flags.IntVar(&s.MemoryLimitMB, "memory-limit", 0, "soft memory budget in MB, 0 = unbounded (advisory only, not enforced)")
	flags.Int64Var(&s.Seed, "seed", 0, "random seed (accepted but not used)")
	flags.StringVar(&s.Output, "output", "tptp", "output mode: tptp, statistics, json")
	flags.BoolVar(&s.EvaluateArithmetic, "evaluate-arithmetic", false, "interpret arithmetic signatures (not supported in this build)")
	return s
}

// Validate rejects --evaluate-arithmetic, which this build cannot
// honour, and unknown --output modes. It does not check
// --saturation-algorithm, --literal-selection, --term-ordering or
// --seed; the engine never reads those values.
func (s *Strategy) Validate() error {
	if s.EvaluateArithmetic {
		return errors.New("config: --evaluate-arithmetic is not supported in this build")
	}
	switch s.Output {
	case "tptp", "statistics", "json":
	default:
		return errors.Errorf("config: unknown --output mode %q", s.Output)
	}
	return nil
}

// Limits converts the parsed resource flags into the saturation
// engine's Limits. MemoryLimitMB has no runtime enforcement point in
// this core (see DESIGN.md) and is carried only for CLI-surface parity
// and future wiring.
func (s *Strategy) Limits(now time.Time) saturate.Limits {
	l := saturate.Limits{}
	if s.TimeLimit > 0 {
		l.Deadline = now.Add(s.TimeLimit)
	}
	return l
}
