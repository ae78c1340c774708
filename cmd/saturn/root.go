package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fologic/saturn/internal/answer"
	"github.com/fologic/saturn/internal/clausenote"
	"github.com/fologic/saturn/internal/config"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/saturate"
	"github.com/fologic/saturn/internal/stats"
	"github.com/fologic/saturn/internal/term"
	"github.com/fologic/saturn/internal/tptpout"
)

func newRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "saturn [problem-file]",
		Short:        "saturn decides first-order refutation by saturation",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
	}
	strat := config.RegisterFlags(cmd.Flags())
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug-level logging")

	cmd.RunE = func(c *cobra.Command, args []string) error {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
		if err := strat.Validate(); err != nil {
			return err
		}

		problemName := "stdin"
		reader := io.Reader(os.Stdin)
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return errors.Wrapf(err, "saturn: opening %s", args[0])
			}
			defer f.Close()
			reader = f
			problemName = args[0]
		}

		return run(c.Context(), strat, problemName, reader, c.OutOrStdout())
	}
	return cmd
}

// run reads the problem, saturates it, and writes the TPTP-style
// derivation, any extracted answer tuple, and the closing SZS status
// line to out, per §6.
func run(ctxGo context.Context, strat *config.Strategy, problemName string, r io.Reader, out io.Writer) error {
	ctx := proverctx.New()
	syms := clausenote.NewSymbolTable()

	problem, err := clausenote.Read(ctx, syms, r)
	if err != nil {
		return err
	}
	for _, c := range problem.Axioms {
		unit, uerr := ctx.Inferences.New(inference.RuleAxiom)
		if uerr != nil {
			return errors.Wrap(uerr, "saturn: recording axiom derivation")
		}
		c.Derivation = unit
	}

	eng := saturate.NewEngine(ctx, strat.AgeWeightRatio, strat.Limits(time.Now()))
	if !strat.Splitting {
		eng.DisableSplitting()
	}
	eng.AddInitial(problem.Axioms)

	var goalLits []term.Literal
	for _, g := range problem.Goals {
		goalLits = append(goalLits, g.Literals...)
	}
	if len(goalLits) > 0 {
		eng.AddInitial(negatedConjectureWithAnswer(ctx, goalLits))
	}

	outcome := eng.Run(ctxGo)
	status := statusFor(outcome)

	switch {
	case outcome.Kind == saturate.Refuted && outcome.Answer != nil:
		if err := tptpout.WriteAnswerTuple(out, problemName, outcome.Answer); err != nil {
			return err
		}
		status = tptpout.StatusTheorem
	case outcome.Kind == saturate.Refuted:
		if err := tptpout.WriteDerivation(out, syms, ctx.Inferences, eng.Active(), outcome.Refutation); err != nil {
			return err
		}
	case len(problem.Goals) > 0:
		// The negated-conjecture-with-answer clause did not resolve
		// down to a pure answer literal on its own (e.g. a genuinely
		// conjunctive goal whose conjuncts each close against a
		// separate fact): fall back to tabulating the active set and
		// searching for one consistent binding across every conjunct.
		if w, found := extractAnswer(ctx, eng, problem.Goals); found {
			if err := tptpout.WriteAnswerTuple(out, problemName, w); err != nil {
				return err
			}
			status = tptpout.StatusTheorem
		}
	}

	switch strat.Output {
	case "statistics":
		if _, err := io.WriteString(out, ctx.Stats.Text()); err != nil {
			return err
		}
	case "json":
		data, err := ctx.Stats.JSON()
		if err != nil {
			return err
		}
		if _, err := out.Write(append(data, '\n')); err != nil {
			return err
		}
	}

	return tptpout.WriteStatus(out, problemName, status)
}

func statusFor(outcome saturate.Outcome) tptpout.Status {
	switch outcome.Kind {
	case saturate.Refuted:
		return tptpout.StatusUnsatisfiable
	case saturate.Saturated:
		return tptpout.StatusSatisfiable
	default:
		switch outcome.Reason {
		case stats.ReasonTimeLimit:
			return tptpout.StatusTimeout
		case stats.ReasonClauseLimit, stats.ReasonMemoryLimit:
			return tptpout.StatusResourceOut
		default:
			return tptpout.StatusGaveUp
		}
	}
}

// extractAnswer runs the conjunctive-goal extractor (§4.H) over the
// engine's final active set: every "?-" goal clause's literals must be
// simultaneously satisfiable against ground facts the saturation run
// derived, tabulated by internal/answer.
func extractAnswer(ctx *proverctx.Context, eng *saturate.Engine, goals []*term.Clause) (*answer.Witness, bool) {
	var goalLits []term.Literal
	for _, g := range goals {
		goalLits = append(goalLits, g.Literals...)
	}
	tab := answer.BuildTabulation(eng.Active())
	sub, ok := answer.Solve(tab, goalLits, 0)
	if !ok {
		return nil, false
	}

	var args []*term.Term
	for _, v := range freeVarsOf(goalLits) {
		args = append(args, sub.Apply(ctx.Terms, v, 0, 0))
	}
	return &answer.Witness{Args: args}, true
}

// negatedConjectureWithAnswer builds the negated-conjecture clause for
// a conjunctive goal — De Morgan over a conjunction of conjuncts
// leaves a single clause carrying each conjunct's negation — and
// appends the answer literal over the goal's free variables, per
// §4.H's direct-witness mechanism: resolving this clause's negative
// literals away against the facts the saturation run derives leaves
// (if the goal is a logical consequence) a unit clause containing only
// the bound ans(...) literal, which answer.ExtractDirect recognises.
func negatedConjectureWithAnswer(ctx *proverctx.Context, goalLits []term.Literal) []*term.Clause {
	negated := make([]term.Literal, len(goalLits))
	for i, l := range goalLits {
		negated[i] = l.Complement(ctx.Terms)
	}
	nc := term.NewClause(ctx.NextClauseID(), negated, term.InputNegatedConjecture)
	if unit, err := ctx.Inferences.New(inference.RuleNegatedConjecture); err == nil {
		nc.Derivation = unit
	}
	return answer.Inject(ctx, []*term.Clause{nc}, freeVarsOf(goalLits))
}

// freeVarsOf collects the distinct variables occurring in lits, in
// first-occurrence order, walking into compound argument subterms.
func freeVarsOf(lits []term.Literal) []*term.Term {
	seen := make(map[uint32]bool)
	var vars []*term.Term
	var walk func(t *term.Term)
	walk = func(t *term.Term) {
		if t.IsVar() {
			if !seen[t.VarIndex()] {
				seen[t.VarIndex()] = true
				vars = append(vars, t)
			}
			return
		}
		for _, a := range t.Args() {
			walk(a)
		}
	}
	for _, l := range lits {
		for _, a := range l.Args() {
			walk(a)
		}
	}
	return vars
}
