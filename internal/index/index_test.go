package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/subst"
	"github.com/fologic/saturn/internal/term"
)

func TestGetUnificationsFindsComplementary(t *testing.T) {
	store := term.NewStore()
	ix := New()

	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	pa := term.AsLiteral(store.Literal(1, true, false, []*term.Term{a}, ""))
	c1 := term.NewClause(1, []term.Literal{pa}, term.InputAxiom)
	ix.Insert(pa, 1, c1)

	x := term.Var(0, 0)
	notPX := term.AsLiteral(store.Literal(1, false, false, []*term.Term{x}, ""))

	trail := subst.NewTrail(subst.New())
	matches := ix.GetUnifications(notPX, 0, true, trail)
	require.Len(t, matches, 1)
	require.Same(t, c1, matches[0].Clause)
}

func TestInsertRemove(t *testing.T) {
	store := term.NewStore()
	ix := New()
	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	pa := term.AsLiteral(store.Literal(2, true, false, []*term.Term{a}, ""))
	c1 := term.NewClause(5, []term.Literal{pa}, term.InputAxiom)
	ix.Insert(pa, 0, c1)
	require.Len(t, ix.GetAll(), 1)
	ix.Remove(pa, c1)
	require.Len(t, ix.GetAll(), 0)
}
