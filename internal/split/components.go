// Package split implements the splitting-with-backtracking subsystem
// of §4.F: variable-disjoint component decomposition, naming of
// propositional components via fresh BDD variables, and the variant
// index used to recognise and reuse previously-named components.
package split

import "github.com/fologic/saturn/internal/term"

// varKey uniquely identifies a variable across banks within a single
// clause (clauses are single-bank by construction at this stage).
type varKey struct{ kind term.Kind; index uint32 }

// unionFind is a standard disjoint-set structure over the distinct
// variables occurring in a clause, used to compute the variable-shared
// partition described in §4.F ("shared variables link their two
// literals into one component").
type unionFind struct {
	parent map[varKey]varKey
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[varKey]varKey)}
}

func (u *unionFind) find(k varKey) varKey {
	if _, ok := u.parent[k]; !ok {
		u.parent[k] = k
		return k
	}
	root := k
	for u.parent[root] != root {
		root = u.parent[root]
	}
	for u.parent[k] != root {
		next := u.parent[k]
		u.parent[k] = root
		k = next
	}
	return root
}

func (u *unionFind) union(a, b varKey) {
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}

func varsOf(lit term.Literal) []varKey {
	var out []varKey
	var walk func(*term.Term)
	walk = func(t *term.Term) {
		switch t.Kind() {
		case term.KindVar, term.KindSpecialVar:
			out = append(out, varKey{kind: t.Kind(), index: t.VarIndex()})
		case term.KindCompound:
			for _, a := range t.Args() {
				walk(a)
			}
		}
	}
	for _, a := range lit.Args() {
		walk(a)
	}
	return out
}

// Component is one variable-connected group of literals from a split
// clause, plus whether it is "propositional": a length-1 component
// whose sole literal has arity 0, per §4.F.
type Component struct {
	Literals      []term.Literal
	Propositional bool
}

// Decompose partitions lits into variable-disjoint components using
// union-find over shared variable occurrences, per §4.F. A clause
// with no literals, or exactly one literal, decomposes to itself
// (zero or one components respectively); ground literals (no
// variables) each form their own singleton component unless they
// happen to share no variables with anything else, which is always
// the case for ground literals.
func Decompose(lits []term.Literal) []Component {
	if len(lits) <= 1 {
		if len(lits) == 0 {
			return nil
		}
		return []Component{singleComponent(lits[0])}
	}

	// Union-find keys variables, not literals: two literals end up in
	// the same component iff they are transitively linked by shared
	// variables, which falls out of the shared uf.parent map without
	// any separate cross-literal linking pass.
	uf := newUnionFind()
	litVars := make([][]varKey, len(lits))
	for i, l := range lits {
		vs := varsOf(l)
		litVars[i] = vs
		for _, v := range vs[1:] {
			uf.union(vs[0], v)
		}
	}
	// Ground literals (no variables) are each their own component,
	// keyed by position so they never merge with one another or with
	// a variable-bearing component.
	groundKey := func(i int) varKey { return varKey{kind: 99, index: uint32(i)} }

	groups := map[varKey][]term.Literal{}
	order := []varKey{}
	for i, l := range lits {
		var key varKey
		if len(litVars[i]) == 0 {
			key = groundKey(i)
		} else {
			key = uf.find(litVars[i][0])
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], l)
	}

	out := make([]Component, 0, len(order))
	for _, k := range order {
		ls := groups[k]
		if len(ls) == 1 {
			out = append(out, singleComponent(ls[0]))
		} else {
			out = append(out, Component{Literals: ls})
		}
	}
	return out
}

func singleComponent(l term.Literal) Component {
	return Component{Literals: []term.Literal{l}, Propositional: l.T.Arity() == 0}
}
