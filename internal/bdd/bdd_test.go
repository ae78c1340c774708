package bdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConjunctionIdempotent(t *testing.T) {
	m := NewManager()
	v := m.NewVar()
	x := m.Atomic(v, true)
	require.Same(t, x, m.Conjunction(x, x))
}

func TestDisjunctionWithNegationIsTrue(t *testing.T) {
	m := NewManager()
	v := m.NewVar()
	x := m.Atomic(v, true)
	notX := m.Negation(x)
	require.True(t, m.Disjunction(x, notX).IsTrue())
}

func TestDoubleNegation(t *testing.T) {
	m := NewManager()
	v := m.NewVar()
	x := m.Atomic(v, true)
	require.Same(t, x, m.Negation(m.Negation(x)))
}

func TestHashConsingSharesEqualNodes(t *testing.T) {
	m := NewManager()
	v1 := m.NewVar()
	v2 := m.NewVar()
	a := m.Atomic(v1, true)
	b := m.Atomic(v2, true)
	c1 := m.Conjunction(a, b)
	c2 := m.Conjunction(a, b)
	require.Same(t, c1, c2)
}

func TestConjunctionWithFalseIsFalse(t *testing.T) {
	m := NewManager()
	v := m.NewVar()
	x := m.Atomic(v, true)
	require.True(t, m.Conjunction(x, m.False()).IsFalse())
}
