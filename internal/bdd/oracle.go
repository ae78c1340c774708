package bdd

import (
	satlib "github.com/mitchellh/go-sat"
	"github.com/mitchellh/go-sat/cnf"
)

// Oracle wraps an external SAT backend to answer one narrow question:
// is the conjunction of a set of currently-asserted split assumptions
// still satisfiable? Per §1/§6, only the backend's add/solve/model
// contract is ever touched here — its internal CDCL search is a black
// box to saturn, exactly the "external collaborator" carve-out.
//
// The saturation loop uses it in checkGuardedEmpty: each guarded empty
// clause contributes one clause over its guard's split variables, and
// once the accumulated clauses are jointly unsatisfiable the run is a
// refutation.
type Oracle struct {
	clauses []cnf.Clause
}

// NewOracle returns an Oracle with no asserted clauses.
func NewOracle() *Oracle {
	return &Oracle{}
}

// AssertUnit records that the ground propositional literal for split
// variable v (with the given polarity) must hold, i.e. asserts the
// unit clause {±v}.
func (o *Oracle) AssertUnit(v Var, polarity bool) {
	lit := cnf.Literal(int(v) + 1)
	if !polarity {
		lit = -lit
	}
	o.clauses = append(o.clauses, cnf.Clause{lit})
}

// AssertClause records a clause over split variables in the same sign
// convention as AssertUnit; the saturation loop uses it to record the
// guard of each guarded empty clause.
func (o *Oracle) AssertClause(lits map[Var]bool) {
	c := make(cnf.Clause, 0, len(lits))
	for v, polarity := range lits {
		l := cnf.Literal(int(v) + 1)
		if !polarity {
			l = -l
		}
		c = append(c, l)
	}
	o.clauses = append(o.clauses, c)
}

// Consistent reports whether the asserted clauses are jointly
// satisfiable, by handing them to a fresh go-sat Solver and invoking
// only AddClause/Solve — never its internal search state.
func (o *Oracle) Consistent() bool {
	s := satlib.New()
	for _, c := range o.clauses {
		if err := s.AddClause(c); err != nil {
			// A malformed clause is a programming error in this
			// adapter, not a modelling failure; treat conservatively
			// as "cannot rule branch out".
			return true
		}
	}
	return s.Solve()
}

// Reset clears all asserted clauses, letting the caller reuse the
// Oracle for the next branch instead of allocating a new one.
func (o *Oracle) Reset() {
	o.clauses = o.clauses[:0]
}
