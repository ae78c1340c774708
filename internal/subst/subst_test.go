package subst

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/term"
)

func TestUnifyOccursCheck(t *testing.T) {
	store := term.NewStore()
	trail := NewTrail(New())
	u := NewUnifier(trail)

	x := term.Var(0, 0)
	fx := store.Compound(term.Functor{Name: "f", Arity: 1}, []*term.Term{x}, false)
	require.False(t, u.Unify(x, 0, fx, 0), "f(X) must not unify with X (occurs check)")
}

func TestUnifyMultiBank(t *testing.T) {
	store := term.NewStore()
	trail := NewTrail(New())
	u := NewUnifier(trail)

	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	x := term.Var(0, 0) // goal bank
	y := term.Var(0, 1) // indexed-clause bank, same numeric index as x

	require.True(t, u.Unify(x, 0, a, 1))
	require.True(t, u.Unify(y, 1, a, 1))

	sub := trail.Substitution()
	applied := sub.Apply(store, x, 0, 9)
	require.Same(t, a, applied)
}

func TestApplyProducesEqualTerms(t *testing.T) {
	store := term.NewStore()
	trail := NewTrail(New())
	u := NewUnifier(trail)

	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	x := term.Var(3, 0)
	y := term.Var(7, 1)
	fx := store.Compound(term.Functor{Name: "f", Arity: 1}, []*term.Term{x}, false)
	fy := store.Compound(term.Functor{Name: "f", Arity: 1}, []*term.Term{y}, false)

	require.True(t, u.Unify(fx, 0, fy, 1))
	sub := trail.Substitution()
	require.Same(t, sub.Apply(store, fx, 0, 2), sub.Apply(store, fy, 1, 2))
	_ = a
}

func TestUnifyFailureRollsBack(t *testing.T) {
	store := term.NewStore()
	trail := NewTrail(New())
	u := NewUnifier(trail)

	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	b := store.Compound(term.Functor{Name: "b", Arity: 0}, nil, false)
	x := term.Var(0, 0)

	require.True(t, u.Unify(x, 0, a, 0))
	require.False(t, u.Unify(x, 0, b, 0), "X already bound to a, cannot also unify with b")

	// x must still be bound to a: the failed attempt must not have
	// disturbed the earlier, committed binding.
	sub := trail.Substitution()
	require.Same(t, a, sub.Apply(store, x, 0, 0))
}

func TestTrailNesting(t *testing.T) {
	s := New()
	trail := NewTrail(s)
	store := term.NewStore()
	a := store.Compound(term.Functor{Name: "a", Arity: 0}, nil, false)
	x := term.Var(0, 0)

	trail.Record()
	trail.Bind(x, 0, a, 0)
	trail.Record()
	y := term.Var(1, 0)
	b := store.Compound(term.Functor{Name: "b", Arity: 0}, nil, false)
	trail.Bind(y, 0, b, 0)
	trail.Backtrack() // undo y binding only

	_, yBound := s.Lookup(y, 0)
	require.False(t, yBound)
	_, xBound := s.Lookup(x, 0)
	require.True(t, xBound)

	trail.Backtrack() // undo x binding
	_, xBound = s.Lookup(x, 0)
	require.False(t, xBound)
}
