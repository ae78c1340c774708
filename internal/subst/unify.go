package subst

import "github.com/fologic/saturn/internal/term"

// Unifier performs Robinson unification with occurs-check over a
// trail-backed substitution, per §4.B. All mutation happens through a
// Trail so a failed attempt leaves the substitution exactly as it was
// found (Unify and UnifyArgs backtrack their own bindings on failure;
// neither partially commits a losing branch, since the
// recording/backtrack bracket wraps the whole attempt).
type Unifier struct {
	Trail *Trail
}

// NewUnifier returns a Unifier operating over trail.
func NewUnifier(trail *Trail) *Unifier {
	return &Unifier{Trail: trail}
}

// Unify attempts to unify (t1, bank1) with (t2, bank2), extending the
// trail's substitution on success. On failure the trail is rolled back
// to the state it had when Unify was called and false is returned.
func (u *Unifier) Unify(t1 *term.Term, bank1 uint32, t2 *term.Term, bank2 uint32) bool {
	u.Trail.Record()
	if u.unify(t1, bank1, t2, bank2) {
		u.Trail.Done()
		return true
	}
	u.Trail.Backtrack()
	return false
}

func (u *Unifier) unify(t1 *term.Term, bank1 uint32, t2 *term.Term, bank2 uint32) bool {
	s := u.Trail.Substitution()
	t1, bank1 = s.Deref(t1, bank1)
	t2, bank2 = s.Deref(t2, bank2)

	v1 := t1.IsVar() || t1.IsSpecialVar()
	v2 := t2.IsVar() || t2.IsSpecialVar()

	switch {
	case v1 && v2:
		if t1.VarIndex() == t2.VarIndex() && bank1 == bank2 && t1.Kind() == t2.Kind() {
			return true
		}
		u.Trail.Bind(t1, bank1, t2, bank2)
		return true
	case v1:
		if occurs(s, t1, bank1, t2, bank2) {
			return false
		}
		u.Trail.Bind(t1, bank1, t2, bank2)
		return true
	case v2:
		if occurs(s, t2, bank2, t1, bank1) {
			return false
		}
		u.Trail.Bind(t2, bank2, t1, bank1)
		return true
	default:
		if t1.Functor() != t2.Functor() {
			return false
		}
		if t1 == t2 && bank1 == bank2 {
			return true
		}
		a1, a2 := t1.Args(), t2.Args()
		for i := range a1 {
			if !u.unify(a1[i], bank1, a2[i], bank2) {
				return false
			}
		}
		return true
	}
}

// UnifyArgs unifies the argument lists of two literals that already
// have matching headers (or complementary headers for resolution), per
// §4.B's unify_args entry point.
func (u *Unifier) UnifyArgs(l1 term.Literal, bank1 uint32, l2 term.Literal, bank2 uint32) bool {
	u.Trail.Record()
	a1, a2 := l1.Args(), l2.Args()
	if len(a1) != len(a2) {
		u.Trail.Backtrack()
		return false
	}
	for i := range a1 {
		if !u.unify(a1[i], bank1, a2[i], bank2) {
			u.Trail.Backtrack()
			return false
		}
	}
	u.Trail.Done()
	return true
}

// occurs reports whether variable (v, vbank) occurs free within
// (t, bank) under the current substitution, implementing the
// occurs-check required by §4.B.
func occurs(s *Substitution, v *term.Term, vbank uint32, t *term.Term, bank uint32) bool {
	t, bank = s.Deref(t, bank)
	if t.IsVar() || t.IsSpecialVar() {
		return t.VarIndex() == v.VarIndex() && bank == vbank && t.Kind() == v.Kind()
	}
	for _, a := range t.Args() {
		if occurs(s, v, vbank, a, bank) {
			return true
		}
	}
	return false
}

// MoreGeneralOrEqual reports whether substitution sigma, applied to
// (a,abank), is at least as general as tau applied to the same term, by
// checking that tau's result is an instance of sigma's. Only a is
// checked; bBank is not used. This realises the invariant-2 check from
// §8: sigma is more general than or equal to any witness unifier tau.
func MoreGeneralOrEqual(store *term.Store, sigma *Substitution, a *term.Term, abank uint32, tau *Substitution, bBank uint32) bool {
	sa := sigma.Apply(store, a, abank, 0)
	ta := tau.Apply(store, a, abank, 0)
	return matches(store, sa, ta, map[key]*term.Term{})
}

// matches is a one-directional (instance) check: pattern p matches
// instance inst if there is a substitution from p's variables to
// subterms of inst that produces inst.
func matches(store *term.Store, p, inst *term.Term, bind map[key]*term.Term) bool {
	if p.IsVar() || p.IsSpecialVar() {
		k := key{bank: p.VarBank(), index: p.VarIndex()}
		if prev, ok := bind[k]; ok {
			return prev == inst
		}
		bind[k] = inst
		return true
	}
	if inst.IsVar() || inst.IsSpecialVar() {
		return false
	}
	if p.Functor() != inst.Functor() {
		return false
	}
	for i, pa := range p.Args() {
		if !matches(store, pa, inst.Args()[i], bind) {
			return false
		}
	}
	return true
}
