package split

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/term"
)

func TestDecomposeVariableDisjoint(t *testing.T) {
	store := term.NewStore()
	x := term.Var(0, 0)
	y := term.Var(1, 0)
	p := term.AsLiteral(store.Literal(1, true, false, []*term.Term{x}, ""))
	q := term.AsLiteral(store.Literal(2, true, false, []*term.Term{y}, ""))

	comps := Decompose([]term.Literal{p, q})
	require.Len(t, comps, 2)
}

func TestDecomposeSharedVariableSingleComponent(t *testing.T) {
	store := term.NewStore()
	x := term.Var(0, 0)
	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	fx := store.Compound(term.Functor{Name: "f", Arity: 1}, []*term.Term{x}, false)
	p := term.AsLiteral(store.Literal(1, true, false, []*term.Term{x}, ""))
	q := term.AsLiteral(store.Literal(2, true, false, []*term.Term{fx, a}, ""))

	comps := Decompose([]term.Literal{p, q})
	require.Len(t, comps, 1)
	require.Len(t, comps[0].Literals, 2)
}

func TestPropositionalComponent(t *testing.T) {
	store := term.NewStore()
	p0 := term.AsLiteral(store.Literal(3, true, false, nil, ""))
	comps := Decompose([]term.Literal{p0})
	require.Len(t, comps, 1)
	require.True(t, comps[0].Propositional)
}
