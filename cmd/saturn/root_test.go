package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/config"
)

func newStrategy(t *testing.T, extra ...string) *config.Strategy {
	t.Helper()
	flags := pflag.NewFlagSet("saturn-test", pflag.ContinueOnError)
	s := config.RegisterFlags(flags)
	require.NoError(t, flags.Parse(extra))
	require.NoError(t, s.Validate())
	return s
}

func TestRunPropositionalRefutation(t *testing.T) {
	strat := newStrategy(t)
	var out bytes.Buffer
	err := run(context.Background(), strat, "prob", strings.NewReader("p\n~p\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "SZS status Unsatisfiable for prob")
}

func TestRunEqualityRefutation(t *testing.T) {
	strat := newStrategy(t)
	var out bytes.Buffer
	err := run(context.Background(), strat, "prob", strings.NewReader("a = b\na != b\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "SZS status Unsatisfiable for prob")
}

func TestRunSaturatesWithoutContradiction(t *testing.T) {
	strat := newStrategy(t)
	var out bytes.Buffer
	err := run(context.Background(), strat, "prob", strings.NewReader("p(a)\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "SZS status Satisfiable for prob")
}

func TestRunConjunctiveAnswerExtraction(t *testing.T) {
	strat := newStrategy(t)
	var out bytes.Buffer
	input := "parent(a,b)\nparent(b,c)\n?- parent(a,X)\n"
	err := run(context.Background(), strat, "prob", strings.NewReader(input), &out)
	require.NoError(t, err)
	s := out.String()
	require.Contains(t, s, "SZS answers Tuple")
	require.Contains(t, s, "SZS status Theorem for prob")
}

func TestRunSplittingClauseDoesNotCrash(t *testing.T) {
	strat := newStrategy(t)
	var out bytes.Buffer
	err := run(context.Background(), strat, "prob", strings.NewReader("p(X) | q(Y)\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "SZS status")
}

func TestRunMultipleNonGroundClausesDoesNotCrash(t *testing.T) {
	strat := newStrategy(t)
	var out bytes.Buffer
	err := run(context.Background(), strat, "prob", strings.NewReader("p(X)\nq(X) | r(X)\n"), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "SZS status")
}
