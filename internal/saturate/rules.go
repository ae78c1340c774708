package saturate

import (
	"github.com/fologic/saturn/internal/bdd"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/subst"
	"github.com/fologic/saturn/internal/term"
)

// outBank is the fresh-clause bank every generating inference below
// renames its result into; callers are expected to allocate each
// parent clause a distinct input bank (c1 != c2) before calling these,
// matching the multi-bank model of §4.B.
const outBank uint32 = 0

func applyLiteral(store *term.Store, l term.Literal, bank, out uint32, s *subst.Substitution) term.Literal {
	return term.AsLiteral(s.Apply(store, l.T, bank, out))
}

func parentUnits(cs ...*term.Clause) []*inference.Unit {
	var out []*inference.Unit
	for _, c := range cs {
		if u, ok := c.Derivation.(*inference.Unit); ok && u != nil {
			out = append(out, u)
		}
	}
	return out
}

func mergeGuards(ctx *proverctx.Context, a, b term.PropNode) term.PropNode {
	an, aok := a.(*bdd.Node)
	bn, bok := b.(*bdd.Node)
	switch {
	case !aok && !bok:
		return nil
	case !aok:
		return bn
	case !bok:
		return an
	default:
		return ctx.BDD.Disjunction(an, bn)
	}
}

func derive(ctx *proverctx.Context, nc *term.Clause, rule inference.Rule, parents ...*term.Clause) {
	ps := parentUnits(parents...)
	if len(ps) == 0 {
		return
	}
	if unit, err := ctx.Inferences.New(rule, ps...); err == nil {
		nc.Derivation = unit
	}
}

// Resolve performs binary resolution between literal i1 of c1 and
// literal i2 of c2, per §4.G's generating-inference set. The two
// clauses must be read under distinct variable banks (bank1 != bank2
// unless they are genuinely the same clause, i.e. self-resolution).
func Resolve(ctx *proverctx.Context, c1 *term.Clause, i1 int, bank1 uint32, c2 *term.Clause, i2 int, bank2 uint32) (*term.Clause, bool) {
	l1, l2 := c1.Literals[i1], c2.Literals[i2]
	if l1.Polarity() == l2.Polarity() || l1.Predicate() != l2.Predicate() {
		return nil, false
	}
	trail := subst.NewTrail(subst.New())
	u := subst.NewUnifier(trail)
	if !u.UnifyArgs(l1, bank1, l2, bank2) {
		return nil, false
	}
	s := trail.Substitution()

	var lits []term.Literal
	for idx, l := range c1.Literals {
		if idx == i1 {
			continue
		}
		lits = append(lits, applyLiteral(ctx.Terms, l, bank1, outBank, s))
	}
	for idx, l := range c2.Literals {
		if idx == i2 {
			continue
		}
		lits = append(lits, applyLiteral(ctx.Terms, l, bank2, outBank, s))
	}
	lits = term.RemoveDuplicateLiterals(lits)

	nc := term.NewClause(ctx.NextClauseID(), lits, term.InputHypothesis)
	if nc.Tautology() {
		return nil, false
	}
	derive(ctx, nc, inference.RuleResolution, c1, c2)
	nc.PropPart = mergeGuards(ctx, c1.PropPart, c2.PropPart)
	return nc, true
}

// Factor merges literals i and j of c (same clause, same bank) when
// they unify, per §4.G's factoring rule: a standard completeness
// requirement alongside ordered resolution.
func Factor(ctx *proverctx.Context, c *term.Clause, i, j int, bank uint32) (*term.Clause, bool) {
	if i == j {
		return nil, false
	}
	li, lj := c.Literals[i], c.Literals[j]
	if li.Polarity() != lj.Polarity() || li.Predicate() != lj.Predicate() {
		return nil, false
	}
	trail := subst.NewTrail(subst.New())
	u := subst.NewUnifier(trail)
	if !u.UnifyArgs(li, bank, lj, bank) {
		return nil, false
	}
	s := trail.Substitution()

	var lits []term.Literal
	for idx, l := range c.Literals {
		if idx == j {
			continue // merge j into i; drop the duplicate
		}
		lits = append(lits, applyLiteral(ctx.Terms, l, bank, outBank, s))
	}
	lits = term.RemoveDuplicateLiterals(lits)

	nc := term.NewClause(ctx.NextClauseID(), lits, term.InputHypothesis)
	if nc.Tautology() {
		return nil, false
	}
	derive(ctx, nc, inference.RuleFactoring, c)
	nc.PropPart = c.PropPart
	return nc, true
}

// EqualityResolution eliminates a negative equality literal s != t at
// index i when s and t unify, per §4.G.
func EqualityResolution(ctx *proverctx.Context, c *term.Clause, i int, bank uint32) (*term.Clause, bool) {
	l := c.Literals[i]
	if !l.IsEquality() || l.Polarity() {
		return nil, false
	}
	trail := subst.NewTrail(subst.New())
	u := subst.NewUnifier(trail)
	if !u.Unify(l.Args()[0], bank, l.Args()[1], bank) {
		return nil, false
	}
	s := trail.Substitution()

	var lits []term.Literal
	for idx, lit := range c.Literals {
		if idx == i {
			continue
		}
		lits = append(lits, applyLiteral(ctx.Terms, lit, bank, outBank, s))
	}
	lits = term.RemoveDuplicateLiterals(lits)

	nc := term.NewClause(ctx.NextClauseID(), lits, term.InputHypothesis)
	if nc.Tautology() {
		return nil, false
	}
	derive(ctx, nc, inference.RuleEqualityResolution, c)
	nc.PropPart = c.PropPart
	return nc, true
}

// Superposition rewrites target literal targetLitIdx of targetClause
// using the oriented equality at eqIdx of eqClause, trying each direct
// argument position of the target literal in turn (a depth-1
// simplification of full subterm-position superposition, chosen to
// keep the position search tractable). The caller picks which clause
// plays "from" vs "into" to realise forward, backward or
// self-superposition per §4.G — the rule itself is symmetric in that
// choice.
func Superposition(ctx *proverctx.Context, eqClause *term.Clause, eqIdx int, eqBank uint32, targetClause *term.Clause, targetLitIdx int, targetBank uint32) (*term.Clause, bool) {
	eqLit := eqClause.Literals[eqIdx]
	if !eqLit.IsEquality() || !eqLit.Polarity() {
		return nil, false
	}
	lhs, rhs, ok := orientEquality(eqLit)
	if !ok {
		return nil, false
	}
	target := targetClause.Literals[targetLitIdx]
	args := target.Args()

	for pos, a := range args {
		trail := subst.NewTrail(subst.New())
		u := subst.NewUnifier(trail)
		if !u.Unify(lhs, eqBank, a, targetBank) {
			continue
		}
		s := trail.Substitution()

		newArgs := make([]*term.Term, len(args))
		for i, ai := range args {
			if i == pos {
				newArgs[i] = s.Apply(ctx.Terms, rhs, eqBank, outBank)
			} else {
				newArgs[i] = s.Apply(ctx.Terms, ai, targetBank, outBank)
			}
		}
		var newTargetLit term.Literal
		if target.IsEquality() {
			newTargetLit = term.AsLiteral(ctx.Terms.Literal(0, target.Polarity(), target.T.Commutative(), newArgs, target.EqualitySort()))
		} else {
			newTargetLit = term.AsLiteral(ctx.Terms.Literal(target.Predicate(), target.Polarity(), target.T.Commutative(), newArgs, ""))
		}

		var lits []term.Literal
		for idx, l := range eqClause.Literals {
			if idx == eqIdx {
				continue
			}
			lits = append(lits, applyLiteral(ctx.Terms, l, eqBank, outBank, s))
		}
		for idx, l := range targetClause.Literals {
			if idx == targetLitIdx {
				continue
			}
			lits = append(lits, applyLiteral(ctx.Terms, l, targetBank, outBank, s))
		}
		lits = append(lits, newTargetLit)
		lits = term.RemoveDuplicateLiterals(lits)

		nc := term.NewClause(ctx.NextClauseID(), lits, term.InputHypothesis)
		if nc.Tautology() {
			continue
		}
		derive(ctx, nc, inference.RuleSuperpositionFwd, eqClause, targetClause)
		nc.PropPart = mergeGuards(ctx, eqClause.PropPart, targetClause.PropPart)
		return nc, true
	}
	return nil, false
}

// subsumesUnit reports whether unit clause's sole literal matches some
// literal of other under unification — a unification-based
// approximation of proper instance-matching subsumption, sufficient to
// prune exact and near-exact duplicates without a full multi-literal
// subsumption search (§4.G names subsumption as a required
// simplification rule but leaves the search strategy unspecified).
func subsumesUnit(unit *term.Clause, bankUnit uint32, other *term.Clause, bankOther uint32) bool {
	if len(unit.Literals) != 1 {
		return false
	}
	ul := unit.Literals[0]
	for _, ol := range other.Literals {
		if ul.Predicate() != ol.Predicate() || ul.Polarity() != ol.Polarity() {
			continue
		}
		trail := subst.NewTrail(subst.New())
		u := subst.NewUnifier(trail)
		if u.UnifyArgs(ul, bankUnit, ol, bankOther) {
			return true
		}
	}
	return false
}
