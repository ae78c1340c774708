package answer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/term"
)

func TestInjectAppendsAnswerLiteralToEveryClause(t *testing.T) {
	ctx := proverctx.New()
	x := term.Var(0, 0)
	p := term.AsLiteral(ctx.Terms.Literal(1, true, false, []*term.Term{x}, ""))
	c := term.NewClause(ctx.NextClauseID(), []term.Literal{p}, term.InputHypothesis)

	out := Inject(ctx, []*term.Clause{c}, []*term.Term{x})
	require.Len(t, out, 1)
	require.Len(t, out[0].Literals, 2)
	last := out[0].Literals[1]
	require.True(t, IsAnswerLiteral(last))
	require.True(t, last.Polarity())
}

func TestInjectNoFreeVarsIsNoop(t *testing.T) {
	ctx := proverctx.New()
	p := term.AsLiteral(ctx.Terms.Literal(1, true, false, nil, ""))
	c := term.NewClause(ctx.NextClauseID(), []term.Literal{p}, term.InputHypothesis)

	out := Inject(ctx, []*term.Clause{c}, nil)
	require.Same(t, c, out[0])
}

func TestExtractDirectGroundAnswerClause(t *testing.T) {
	ctx := proverctx.New()
	a := ctx.Terms.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	ans := term.AsLiteral(ctx.Terms.Literal(AnswerPredicate, true, false, []*term.Term{a}, ""))
	c := term.NewClause(ctx.NextClauseID(), []term.Literal{ans}, term.InputHypothesis)

	w, ok := ExtractDirect(c)
	require.True(t, ok)
	require.Equal(t, []*term.Term{a}, w.Args)
}

func TestExtractDirectRejectsNonAnswerLiterals(t *testing.T) {
	ctx := proverctx.New()
	a := ctx.Terms.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	ans := term.AsLiteral(ctx.Terms.Literal(AnswerPredicate, true, false, []*term.Term{a}, ""))
	p := term.AsLiteral(ctx.Terms.Literal(9, true, false, nil, ""))
	c := term.NewClause(ctx.NextClauseID(), []term.Literal{ans, p}, term.InputHypothesis)

	_, ok := ExtractDirect(c)
	require.False(t, ok)
}

func TestExtractDirectRejectsNonGroundArgs(t *testing.T) {
	ctx := proverctx.New()
	x := term.Var(0, 0)
	ans := term.AsLiteral(ctx.Terms.Literal(AnswerPredicate, true, false, []*term.Term{x}, ""))
	c := term.NewClause(ctx.NextClauseID(), []term.Literal{ans}, term.InputHypothesis)

	_, ok := ExtractDirect(c)
	require.False(t, ok)
}

func TestSolveConjunctiveGoalAgainstTabulation(t *testing.T) {
	ctx := proverctx.New()
	a := ctx.Terms.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	b := ctx.Terms.Compound(term.Functor{Name: "b", Arity: 0}, nil, false)

	factPA := ctx.Terms.Literal(10, true, false, []*term.Term{a}, "")
	factQB := ctx.Terms.Literal(11, true, false, []*term.Term{b}, "")
	unit, _ := ctx.Inferences.New(inference.RuleAxiom)
	cPA := term.NewClause(ctx.NextClauseID(), []term.Literal{term.AsLiteral(factPA)}, term.InputAxiom)
	cPA.Derivation = unit
	cQB := term.NewClause(ctx.NextClauseID(), []term.Literal{term.AsLiteral(factQB)}, term.InputAxiom)
	cQB.Derivation = unit

	tab := BuildTabulation([]*term.Clause{cPA, cQB})

	x := term.Var(0, 0)
	y := term.Var(1, 0)
	goalP := term.AsLiteral(ctx.Terms.Literal(10, true, false, []*term.Term{x}, ""))
	goalQ := term.AsLiteral(ctx.Terms.Literal(11, true, false, []*term.Term{y}, ""))

	sub, ok := Solve(tab, []term.Literal{goalP, goalQ}, 0)
	require.True(t, ok)
	applied := sub.Apply(ctx.Terms, x, 0, 99)
	require.Same(t, a, applied)
}

func TestSolveFailsWhenNoConsistentBinding(t *testing.T) {
	ctx := proverctx.New()
	a := ctx.Terms.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	factPA := ctx.Terms.Literal(12, true, false, []*term.Term{a}, "")
	unit, _ := ctx.Inferences.New(inference.RuleAxiom)
	cPA := term.NewClause(ctx.NextClauseID(), []term.Literal{term.AsLiteral(factPA)}, term.InputAxiom)
	cPA.Derivation = unit

	tab := BuildTabulation([]*term.Clause{cPA})

	x := term.Var(0, 0)
	goalR := term.AsLiteral(ctx.Terms.Literal(99, true, false, []*term.Term{x}, ""))

	_, ok := Solve(tab, []term.Literal{goalR}, 0)
	require.False(t, ok)
}
