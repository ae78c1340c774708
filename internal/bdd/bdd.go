// Package bdd implements the reduced ordered binary decision diagram
// used as the propositional-part representation for split clauses,
// per §4.E: hash-consed nodes, canonical variable ordering, and
// memoised binary operations.
package bdd

import (
	"fmt"
	"sync"
)

// Var identifies a BDD boolean variable. Variables are allocated
// monotonically by NewVar; their meaning (which clause component they
// name) is owned entirely by internal/split, per §3's BDD section.
type Var uint32

// Node is a reduced ordered BDD node: either the constant true, the
// constant false, or a triple (var, low, high). Node implements
// term.PropNode so clauses can reference it without internal/term
// importing this package.
type Node struct {
	id       uint64
	terminal int8 // 0 = internal, 1 = true, -1 = false
	v        Var
	low      *Node
	high     *Node
}

func (n *Node) ID() uint64    { return n.id }
func (n *Node) IsTrue() bool  { return n.terminal == 1 }
func (n *Node) IsFalse() bool { return n.terminal == -1 }
func (n *Node) Var() Var      { return n.v }
func (n *Node) Low() *Node    { return n.low }
func (n *Node) High() *Node   { return n.high }

func (n *Node) String() string {
	switch {
	case n.IsTrue():
		return "T"
	case n.IsFalse():
		return "F"
	default:
		return fmt.Sprintf("(v%d ? %s : %s)", n.v, n.high, n.low)
	}
}

type nodeKey struct {
	v        Var
	low, high uint64
}

type opKey struct {
	op        byte
	lhs, rhs  uint64
}

// Manager owns the hash-consed node table and memoised operation
// cache for one BDD universe, per §4.E. It is threaded through the
// prover run as a value (Design Notes: Context threading instead of
// process globals).
type Manager struct {
	mu       sync.Mutex
	nextID   uint64
	nextVar  Var
	table    map[nodeKey]*Node
	opCache  map[opKey]*Node
	trueN    *Node
	falseN   *Node
}

// NewManager returns a fresh BDD manager with its two terminal nodes.
func NewManager() *Manager {
	m := &Manager{table: make(map[nodeKey]*Node), opCache: make(map[opKey]*Node)}
	m.trueN = &Node{id: 1, terminal: 1}
	m.falseN = &Node{id: 2, terminal: -1}
	m.nextID = 3
	return m
}

func (m *Manager) True() *Node  { return m.trueN }
func (m *Manager) False() *Node { return m.falseN }

// NewVar allocates a fresh BDD variable, ordered after every
// previously allocated variable (monotonic allocation, per §4.E).
func (m *Manager) NewVar() Var {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := m.nextVar
	m.nextVar++
	return v
}

// mk constructs (or returns the shared instance of) the reduced node
// (v, low, high), applying the BDD reduction rule low == high.
func (m *Manager) mk(v Var, low, high *Node) *Node {
	if low == high {
		return low
	}
	k := nodeKey{v: v, low: low.id, high: high.id}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.table[k]; ok {
		return existing
	}
	n := &Node{id: m.nextID, v: v, low: low, high: high}
	m.nextID++
	m.table[k] = n
	return n
}

// Atomic returns the BDD for the literal "var" (polarity true) or
// "not var" (polarity false), per §4.E's atomic(var,polarity).
func (m *Manager) Atomic(v Var, polarity bool) *Node {
	if polarity {
		return m.mk(v, m.falseN, m.trueN)
	}
	return m.mk(v, m.trueN, m.falseN)
}

func (m *Manager) IsTrue(n *Node) bool  { return n.IsTrue() }
func (m *Manager) IsFalse(n *Node) bool { return n.IsFalse() }

func (m *Manager) cached(op byte, a, b *Node, compute func() *Node) *Node {
	k := opKey{op: op, lhs: a.id, rhs: b.id}
	m.mu.Lock()
	if r, ok := m.opCache[k]; ok {
		m.mu.Unlock()
		return r
	}
	m.mu.Unlock()
	r := compute()
	m.mu.Lock()
	m.opCache[k] = r
	m.mu.Unlock()
	return r
}

func topVar(a, b *Node) (Var, bool, bool) {
	switch {
	case a.terminal != 0 && b.terminal != 0:
		return 0, false, false
	case a.terminal != 0:
		return b.v, false, true
	case b.terminal != 0:
		return a.v, true, false
	case a.v == b.v:
		return a.v, true, true
	case a.v < b.v:
		return a.v, true, false
	default:
		return b.v, false, true
	}
}

func restrict(n *Node, takeA bool) (*Node, *Node) {
	if !takeA {
		return n, n
	}
	return n.low, n.high
}

// Conjunction returns a ∧ b.
func (m *Manager) Conjunction(a, b *Node) *Node {
	switch {
	case a.IsFalse() || b.IsFalse():
		return m.falseN
	case a.IsTrue():
		return b
	case b.IsTrue():
		return a
	case a == b:
		return a
	}
	return m.cached('&', a, b, func() *Node {
		v, da, db := topVar(a, b)
		aLow, aHigh := restrict(a, da)
		bLow, bHigh := restrict(b, db)
		return m.mk(v, m.Conjunction(aLow, bLow), m.Conjunction(aHigh, bHigh))
	})
}

// Disjunction returns a ∨ b.
func (m *Manager) Disjunction(a, b *Node) *Node {
	switch {
	case a.IsTrue() || b.IsTrue():
		return m.trueN
	case a.IsFalse():
		return b
	case b.IsFalse():
		return a
	case a == b:
		return a
	}
	return m.cached('|', a, b, func() *Node {
		v, da, db := topVar(a, b)
		aLow, aHigh := restrict(a, da)
		bLow, bHigh := restrict(b, db)
		return m.mk(v, m.Disjunction(aLow, bLow), m.Disjunction(aHigh, bHigh))
	})
}

// Negation returns ¬a.
func (m *Manager) Negation(a *Node) *Node {
	switch {
	case a.IsTrue():
		return m.falseN
	case a.IsFalse():
		return m.trueN
	}
	return m.cached('!', a, a, func() *Node {
		return m.mk(a.v, m.Negation(a.low), m.Negation(a.high))
	})
}

// Implication returns a → b, i.e. ¬a ∨ b, expressed directly to share
// the op cache slot distinctly from Disjunction(Negation(a), b).
func (m *Manager) Implication(a, b *Node) *Node {
	switch {
	case a.IsFalse() || b.IsTrue():
		return m.trueN
	case a.IsTrue():
		return b
	}
	return m.cached('>', a, b, func() *Node {
		v, da, db := topVar(a, b)
		aLow, aHigh := restrict(a, da)
		bLow, bHigh := restrict(b, db)
		return m.mk(v, m.Implication(aLow, bLow), m.Implication(aHigh, bHigh))
	})
}

// Size returns the number of live (reachable) internal + terminal
// nodes in n's subgraph, a cheap proxy for memory pressure per §4.E's
// "bound memory" constraint.
func Size(n *Node) int {
	seen := map[uint64]struct{}{}
	var walk func(*Node)
	walk = func(x *Node) {
		if _, ok := seen[x.id]; ok {
			return
		}
		seen[x.id] = struct{}{}
		if x.terminal == 0 {
			walk(x.low)
			walk(x.high)
		}
	}
	walk(n)
	return len(seen)
}
