package clausenote

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/term"
)

func TestParseClauseLiteralsAndArity(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		litCount int
		isGoal   bool
	}{
		{"single positive", "p(a)", 1, false},
		{"single negated", "~p(a)", 1, false},
		{"disjunction", "p(X) | ~q(Y)", 2, false},
		{"equality", "a = b", 1, false},
		{"disequality", "a != b", 1, false},
		{"goal clause", "?- path(X,b)", 1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := term.NewStore()
			syms := NewSymbolTable()
			lits, isGoal, err := ParseClause(store, syms, tc.line)
			require.NoError(t, err)
			require.Len(t, lits, tc.litCount)
			require.Equal(t, tc.isGoal, isGoal)
		})
	}
}

func TestParseClauseSharesRepeatedVariable(t *testing.T) {
	store := term.NewStore()
	syms := NewSymbolTable()
	lits, _, err := ParseClause(store, syms, "p(X) | ~p(X)")
	require.NoError(t, err)
	require.Len(t, lits, 2)
	require.Same(t, lits[0].Args()[0], lits[1].Args()[0])
}

func TestParseClauseAssignsStablePredicateIDs(t *testing.T) {
	store := term.NewStore()
	syms := NewSymbolTable()
	lits1, _, err := ParseClause(store, syms, "p(a)")
	require.NoError(t, err)
	lits2, _, err := ParseClause(store, syms, "~p(b)")
	require.NoError(t, err)
	require.Equal(t, lits1[0].Predicate(), lits2[0].Predicate())
}

func TestParseClauseRejectsUnknownCharacter(t *testing.T) {
	store := term.NewStore()
	syms := NewSymbolTable()
	_, _, err := ParseClause(store, syms, "p(a) @ q(b)")
	require.Error(t, err)
}

func TestParseClauseRejectsTrailingTokens(t *testing.T) {
	store := term.NewStore()
	syms := NewSymbolTable()
	_, _, err := ParseClause(store, syms, "p(a) q(b)")
	require.Error(t, err)
}

func TestReadSplitsAxiomsFromGoalsAndSkipsComments(t *testing.T) {
	ctx := proverctx.New()
	syms := NewSymbolTable()
	input := "% a comment\np(a)\n\n?- p(X)\n~p(a) | q(b)\n"

	problem, err := Read(ctx, syms, strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, problem.Axioms, 2)
	require.Len(t, problem.Goals, 1)
}
