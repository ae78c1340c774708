package saturate

import "github.com/fologic/saturn/internal/term"

// heavier reports whether a is strictly heavier than b under the
// weight-based simplification ordering used to orient equalities and
// to choose superposition's "from" side, per §4.G. This is a
// deliberately simple stand-in for a full KBO/LPO: term weight (with
// ties broken by the number of variable occurrences, preferring the
// side with fewer — a ground-biased tie-break) approximates a
// reduction ordering well enough to keep demodulation/superposition
// terminating on acyclic equations, the common case in practice.
func heavier(a, b *term.Term) bool {
	if a.Weight() != b.Weight() {
		return a.Weight() > b.Weight()
	}
	if a.VarOccurrences() != b.VarOccurrences() {
		return a.VarOccurrences() < b.VarOccurrences()
	}
	return false
}

// orientEquality returns (lhs, rhs) for equality literal l ordered so
// that lhs is not lighter than rhs, i.e. a candidate rewrite direction
// lhs -> rhs. Returns ok=false when neither side is heavier (the
// equality cannot be used to rewrite without risking non-termination,
// so callers should skip it).
func orientEquality(l term.Literal) (lhs, rhs *term.Term, ok bool) {
	a, b := l.Args()[0], l.Args()[1]
	switch {
	case heavier(a, b):
		return a, b, true
	case heavier(b, a):
		return b, a, true
	default:
		return nil, nil, false
	}
}

// clauseWeight is the priority-queue weight of a clause: the sum of
// its literal weights (already cached on Clause.Weight by NewClause),
// per §4.G's weight-based selection heuristic.
func clauseWeight(c *term.Clause) int { return c.Weight }
