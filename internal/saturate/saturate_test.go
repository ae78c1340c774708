package saturate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/term"
)

func axiomClause(ctx *proverctx.Context, lits []term.Literal) *term.Clause {
	c := term.NewClause(ctx.NextClauseID(), lits, term.InputAxiom)
	unit, _ := ctx.Inferences.New(inference.RuleAxiom)
	c.Derivation = unit
	return c
}

func TestPropositionalRefutation(t *testing.T) {
	ctx := proverctx.New()
	p := term.AsLiteral(ctx.Terms.Literal(1, true, false, nil, ""))
	notP := term.AsLiteral(ctx.Terms.Literal(1, false, false, nil, ""))

	c1 := axiomClause(ctx, []term.Literal{p})
	c2 := axiomClause(ctx, []term.Literal{notP})

	eng := NewEngine(ctx, 3, Limits{MaxClauses: 1000})
	eng.AddInitial([]*term.Clause{c1, c2})

	out := eng.Run(context.Background())
	require.Equal(t, Refuted, out.Kind)
	require.NotNil(t, out.Refutation)
	require.True(t, out.Refutation.IsRefutation())
}

func TestSaturatesWithoutContradiction(t *testing.T) {
	ctx := proverctx.New()
	p := term.AsLiteral(ctx.Terms.Literal(2, true, false, nil, ""))
	c1 := axiomClause(ctx, []term.Literal{p})

	eng := NewEngine(ctx, 3, Limits{MaxClauses: 1000})
	eng.AddInitial([]*term.Clause{c1})

	out := eng.Run(context.Background())
	require.Equal(t, Saturated, out.Kind)
}

func TestEqualityAndDisequalityDeriveContradiction(t *testing.T) {
	ctx := proverctx.New()
	a := ctx.Terms.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	b := ctx.Terms.Compound(term.Functor{Name: "b", Arity: 0}, nil, false)
	eq := term.AsLiteral(ctx.Terms.Literal(0, true, true, []*term.Term{a, b}, ""))
	neq := term.AsLiteral(ctx.Terms.Literal(0, false, true, []*term.Term{a, b}, ""))

	c1 := axiomClause(ctx, []term.Literal{eq})
	c2 := axiomClause(ctx, []term.Literal{neq})

	eng := NewEngine(ctx, 3, Limits{MaxClauses: 1000})
	eng.AddInitial([]*term.Clause{c1, c2})

	out := eng.Run(context.Background())
	require.Equal(t, Refuted, out.Kind)
}

func TestClauseLimitStopsRunWithoutRefutation(t *testing.T) {
	ctx := proverctx.New()
	x := term.Var(0, 0)
	px := term.AsLiteral(ctx.Terms.Literal(3, true, false, []*term.Term{x}, ""))
	c1 := axiomClause(ctx, []term.Literal{px})

	eng := NewEngine(ctx, 3, Limits{MaxClauses: 1})
	eng.AddInitial([]*term.Clause{c1})

	out := eng.Run(context.Background())
	require.Equal(t, LimitReached, out.Kind)
}
