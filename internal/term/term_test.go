package term

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashConsingIdentity(t *testing.T) {
	s := NewStore()
	a := s.Compound(Functor{Name: "a", Arity: 0}, nil, false)
	f1 := s.Compound(Functor{Name: "f", Arity: 1}, []*Term{a}, false)
	f2 := s.Compound(Functor{Name: "f", Arity: 1}, []*Term{a}, false)
	require.Same(t, f1, f2, "structurally equal compounds must share identity")
}

func TestCommutativeCanonicalisation(t *testing.T) {
	s := NewStore()
	a := s.Compound(Functor{Name: "a", Arity: 0}, nil, false)
	b := s.Compound(Functor{Name: "b", Arity: 0}, nil, false)
	pab := s.Literal(1, true, true, []*Term{a, b}, "")
	pba := s.Literal(1, true, true, []*Term{b, a}, "")
	require.Same(t, pab, pba, "commutative literal arguments must canonicalise to shared identity")
}

func TestWeightInvariant(t *testing.T) {
	s := NewStore()
	a := s.Compound(Functor{Name: "a", Arity: 0}, nil, false)
	b := s.Compound(Functor{Name: "b", Arity: 0}, nil, false)
	f := s.Compound(Functor{Name: "f", Arity: 2}, []*Term{a, b}, false)
	require.Equal(t, 1+a.Weight()+b.Weight(), f.Weight())
}

func TestTwoVariableEqualityInvariant(t *testing.T) {
	s := NewStore()
	x := Var(0, 0)
	y := Var(1, 0)
	e1 := s.Literal(0, true, true, []*Term{x, y}, "$i")
	e2 := s.Literal(0, true, true, []*Term{x, y}, "$i")
	require.Same(t, e1, e2)
	l1, l2 := AsLiteral(e1), AsLiteral(e2)
	require.True(t, l1.TwoVarEquality())
	require.True(t, l2.TwoVarEquality())
	require.Equal(t, "$i", l1.EqualitySort())
}

func TestGroundFlag(t *testing.T) {
	s := NewStore()
	a := s.Compound(Functor{Name: "a", Arity: 0}, nil, false)
	require.True(t, a.Ground())
	x := Var(0, 0)
	fx := s.Compound(Functor{Name: "f", Arity: 1}, []*Term{x}, false)
	require.False(t, fx.Ground())
}

func TestClauseTautology(t *testing.T) {
	s := NewStore()
	x := Var(0, 0)
	y := Var(1, 0)
	p := func(polarity bool, args ...*Term) Literal {
		return AsLiteral(s.Literal(7, polarity, false, args, ""))
	}
	r := func(polarity bool, args ...*Term) Literal {
		return AsLiteral(s.Literal(8, polarity, false, args, ""))
	}
	c := NewClause(1, []Literal{p(true, x), p(false, x), r(true, y)}, InputAxiom)
	require.True(t, c.Tautology())
}
