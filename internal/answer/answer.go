// Package answer implements answer-literal injection and conjunctive
// goal extraction, per §4.H: a conjecture's free variables are carried
// through refutation search as an extra answer literal, and a
// successful extraction either falls out directly from a pure-answer
// unit clause or is assembled by tabulating ground facts derived
// during saturation and searching for one consistent binding across
// every conjunct of a multi-goal query.
package answer

import (
	"fmt"

	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/subst"
	"github.com/fologic/saturn/internal/term"
)

// AnswerPredicate is the reserved predicate identifier for the
// synthetic answer literal $ans(...), chosen disjoint from equality
// (predicate 0) and every ordinary clausified predicate (which are
// allocated as non-negative ids by the clausifier).
const AnswerPredicate = -1

// IsAnswerLiteral reports whether l is an answer literal.
func IsAnswerLiteral(l term.Literal) bool { return l.Predicate() == AnswerPredicate }

// Inject appends a positive answer literal ans(freeVars...) to every
// clause in negatedConjecture, per §4.H: the negated conjecture's free
// variables become the query's answer tuple, carried through every
// resolution/superposition step exactly like an ordinary literal until
// it is all that remains.
func Inject(ctx *proverctx.Context, negatedConjecture []*term.Clause, freeVars []*term.Term) []*term.Clause {
	if len(freeVars) == 0 {
		return negatedConjecture
	}
	ans := term.AsLiteral(ctx.Terms.Literal(AnswerPredicate, true, false, freeVars, ""))
	out := make([]*term.Clause, len(negatedConjecture))
	for i, c := range negatedConjecture {
		lits := append(append([]term.Literal{}, c.Literals...), ans)
		nc := term.NewClause(c.ID, lits, c.InputType)
		nc.PropPart = c.PropPart
		nc.Derivation = c.Derivation
		nc.Age = c.Age
		out[i] = nc
	}
	return out
}

// Witness is a concrete, ground answer substitution extracted from the
// search.
type Witness struct {
	Clause *term.Clause
	Args   []*term.Term
}

// ExtractDirect recognises the base case of §4.H: a clause whose only
// literals are positive answer literals and whose propositional part
// is unconditional (live in every branch) is itself a ground answer,
// with no further synthesis required.
func ExtractDirect(c *term.Clause) (*Witness, bool) {
	if c.PropPart != nil && !c.PropPart.IsFalse() {
		return nil, false
	}
	if len(c.Literals) == 0 {
		return nil, false
	}
	var args []*term.Term
	for _, l := range c.Literals {
		if !IsAnswerLiteral(l) || !l.Polarity() {
			return nil, false
		}
		for _, a := range l.Args() {
			if !a.Ground() {
				return nil, false
			}
		}
		args = append(args, l.Args()...)
	}
	return &Witness{Clause: c, Args: args}, true
}

// SyntheticRefutation records that the search may stop here: the
// answer has been found, even though c is not itself a logical
// contradiction. The driver treats this the same as a real refutation
// for control-flow purposes, per §4.H's "answer found" termination.
func SyntheticRefutation(ctx *proverctx.Context, w *Witness) *term.Clause {
	nc := term.NewClause(ctx.NextClauseID(), nil, term.InputHypothesis)
	if parent, ok := w.Clause.Derivation.(*inference.Unit); ok {
		if unit, err := ctx.Inferences.New(inference.RuleAnswerLiteral, parent); err == nil {
			nc.Derivation = unit
		}
	}
	return nc
}

// Tabulation indexes ground positive unit facts produced during
// saturation by (predicate, arity), the forward-chaining fixpoint table
// a conjunctive goal is matched against, per §4.H.
type Tabulation struct {
	facts map[string][]*term.Clause
}

func factKey(pred, arity int) string { return fmt.Sprintf("%d/%d", pred, arity) }

// BuildTabulation scans active (the saturation engine's current active
// set) for ground positive unit clauses and indexes them.
func BuildTabulation(active []*term.Clause) *Tabulation {
	t := &Tabulation{facts: make(map[string][]*term.Clause)}
	for _, c := range active {
		if len(c.Literals) != 1 {
			continue
		}
		l := c.Literals[0]
		if !l.Polarity() || IsAnswerLiteral(l) {
			continue
		}
		if !allGround(l) {
			continue
		}
		key := factKey(l.Predicate(), len(l.Args()))
		t.facts[key] = append(t.facts[key], c)
	}
	return t
}

func allGround(l term.Literal) bool {
	for _, a := range l.Args() {
		if !a.Ground() {
			return false
		}
	}
	return true
}

// Solve searches for one substitution that simultaneously satisfies
// every literal of goals against t's tabulated facts, via depth-first
// search with chronological backtracking over the shared trail — the
// conjunctive-goal extractor of §4.H. goals share variable bank
// goalBank; facts are read under their own clause-ID bank.
func Solve(t *Tabulation, goals []term.Literal, goalBank uint32) (*subst.Substitution, bool) {
	trail := subst.NewTrail(subst.New())
	if solve(t, goals, goalBank, 0, trail) {
		return trail.Substitution(), true
	}
	return nil, false
}

func solve(t *Tabulation, goals []term.Literal, goalBank uint32, idx int, trail *subst.Trail) bool {
	if idx == len(goals) {
		return true
	}
	g := goals[idx]
	key := factKey(g.Predicate(), len(g.Args()))
	for _, fact := range t.facts[key] {
		trail.Record()
		u := subst.NewUnifier(trail)
		if u.UnifyArgs(g, goalBank, fact.Literals[0], uint32(fact.ID)) && solve(t, goals, goalBank, idx+1, trail) {
			trail.Done()
			return true
		}
		trail.Backtrack()
	}
	return false
}
