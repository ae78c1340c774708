package tptpout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/answer"
	"github.com/fologic/saturn/internal/clausenote"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/term"
)

func TestWriteDerivationIncludesParentsAndRefutation(t *testing.T) {
	ctx := proverctx.New()
	syms := clausenote.NewSymbolTable()
	pred := syms.IDFor("p")

	p := term.AsLiteral(ctx.Terms.Literal(pred, true, false, nil, ""))
	notP := term.AsLiteral(ctx.Terms.Literal(pred, false, false, nil, ""))

	axUnit, _ := ctx.Inferences.New(inference.RuleAxiom)
	c1 := term.NewClause(ctx.NextClauseID(), []term.Literal{p}, term.InputAxiom)
	c1.Derivation = axUnit
	axUnit2, _ := ctx.Inferences.New(inference.RuleAxiom)
	c2 := term.NewClause(ctx.NextClauseID(), []term.Literal{notP}, term.InputAxiom)
	c2.Derivation = axUnit2

	resUnit, err := ctx.Inferences.New(inference.RuleResolution, axUnit, axUnit2)
	require.NoError(t, err)
	empty := term.NewClause(ctx.NextClauseID(), nil, term.InputAxiom)
	empty.Derivation = resUnit

	var buf bytes.Buffer
	err = WriteDerivation(&buf, syms, ctx.Inferences, []*term.Clause{c1, c2}, empty)
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "p")
	require.Contains(t, out, "$false")
	require.Contains(t, out, string(inference.RuleResolution))
}

func TestWriteStatusAndAnswerTuple(t *testing.T) {
	ctx := proverctx.New()
	a := ctx.Terms.Compound(term.Functor{Name: "alice", Arity: 0}, nil, false)
	ans := term.AsLiteral(ctx.Terms.Literal(answer.AnswerPredicate, true, false, []*term.Term{a}, ""))
	c := term.NewClause(ctx.NextClauseID(), []term.Literal{ans}, term.InputHypothesis)
	w, ok := answer.ExtractDirect(c)
	require.True(t, ok)

	var buf bytes.Buffer
	require.NoError(t, WriteAnswerTuple(&buf, "prob1", w))
	require.NoError(t, WriteStatus(&buf, "prob1", StatusTheorem))

	out := buf.String()
	require.True(t, strings.Contains(out, "SZS answers Tuple [[alice]] for prob1"))
	require.True(t, strings.Contains(out, "SZS status Theorem for prob1"))
}
