// Package subst implements the multi-bank substitution and Robinson
// unification described in §4.B: each variable carries an implicit
// bank chosen by the caller, so that variable number 3 from a goal
// clause and variable number 3 from an indexed clause never collide.
package subst

import "github.com/fologic/saturn/internal/term"

// key identifies a variable uniquely across banks.
type key struct {
	bank  uint32
	index uint32
}

// Binding is a single variable -> term mapping, with the term's own
// bank recorded so Apply can rewrite a bound variable's occurrences
// into the requested output bank.
type Binding struct {
	Var  key
	To   *term.Term
	Bank uint32
}

// Substitution maps (var, bank) to a (term, bank) pair. It is mutated
// only through Bind/unbind, which are always called from within a
// Trail recording so every mutation can be rolled back, per §4.B and
// the Design Notes' trail-based backtracking model.
type Substitution struct {
	bindings map[key]Binding
}

// New returns an empty substitution.
func New() *Substitution {
	return &Substitution{bindings: make(map[key]Binding)}
}

// Lookup returns the binding for (v, bank), if any.
func (s *Substitution) Lookup(v *term.Term, bank uint32) (Binding, bool) {
	b, ok := s.bindings[key{bank: bank, index: v.VarIndex()}]
	return b, ok
}

func (s *Substitution) bind(v *term.Term, bank uint32, to *term.Term, toBank uint32) {
	s.bindings[key{bank: bank, index: v.VarIndex()}] = Binding{
		Var:  key{bank: bank, index: v.VarIndex()},
		To:   to,
		Bank: toBank,
	}
}

func (s *Substitution) unbind(v *term.Term, bank uint32) {
	delete(s.bindings, key{bank: bank, index: v.VarIndex()})
}

// Deref walks the substitution from (t, bank) to its representative:
// either an unbound variable (returned with its bank) or a compound.
func (s *Substitution) Deref(t *term.Term, bank uint32) (*term.Term, uint32) {
	for {
		if !t.IsVar() && !t.IsSpecialVar() {
			return t, bank
		}
		b, ok := s.Lookup(t, bank)
		if !ok {
			return t, bank
		}
		t, bank = b.To, b.Bank
	}
}

// Apply builds a term with every substitution-reachable variable
// dereferenced and variables renamed into outBank, sharing compound
// structure via store wherever no substitution applies underneath.
func (s *Substitution) Apply(store *term.Store, t *term.Term, bank uint32, outBank uint32) *term.Term {
	rt, rbank := s.Deref(t, bank)
	switch {
	case rt.IsVar():
		if rbank == outBank {
			return rt
		}
		return term.Var(rt.VarIndex(), outBank)
	case rt.IsSpecialVar():
		if rbank == outBank {
			return rt
		}
		return term.SpecialVar(rt.VarIndex(), outBank)
	default:
		if rt.Arity() == 0 {
			return rt
		}
		args := make([]*term.Term, rt.Arity())
		changed := false
		for i, a := range rt.Args() {
			na := s.Apply(store, a, rbank, outBank)
			args[i] = na
			if na != a {
				changed = true
			}
		}
		if !changed {
			return rt
		}
		if rt.IsLiteral() {
			return store.Literal(rt.Predicate(), rt.Polarity(), rt.Commutative(), args, rt.EqSort())
		}
		return store.Compound(rt.Functor(), args, rt.Commutative())
	}
}
