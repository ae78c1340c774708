package term

import (
	"fmt"
	"sort"
	"strings"
)

// InputType classifies the provenance of a clause or formula, per §3.
type InputType uint8

const (
	InputAxiom InputType = iota
	InputHypothesis
	InputAssumption
	InputConjecture
	InputNegatedConjecture
)

func (t InputType) String() string {
	switch t {
	case InputAxiom:
		return "axiom"
	case InputHypothesis:
		return "hypothesis"
	case InputAssumption:
		return "assumption"
	case InputConjecture:
		return "conjecture"
	case InputNegatedConjecture:
		return "negated_conjecture"
	default:
		return "unknown"
	}
}

// PropNode is the minimal surface a clause needs from the BDD package
// (internal/bdd). Declaring it here, instead of importing internal/bdd,
// keeps the term package free of a dependency on the propositional
// layer; internal/bdd.Node satisfies this interface.
type PropNode interface {
	IsTrue() bool
	IsFalse() bool
	ID() uint64
}

// Derivation is the minimal surface a clause needs from the inference
// store (internal/inference.Unit), avoiding an import cycle the same
// way PropNode does for internal/bdd.
type Derivation interface {
	Rule() string
	ParentIDs() []uint64
}

// Clause is a multiset of literals plus the bookkeeping described in §3.
type Clause struct {
	ID        uint64
	Literals  []Literal
	InputType InputType

	// PropPart guards the clause: nil means "absent" (⊥, unconditional),
	// matching the convention that an empty/unset propositional part
	// never contributes splits. Populated by the splitter.
	PropPart PropNode
	Splits   map[uint32]struct{} // split-level identifiers this clause depends on

	Age        int
	Weight     int
	Selection  uint64 // bitmap of literal indices currently selected
	Derivation Derivation
}

// NewClause builds a clause from literals, computing Weight as the sum
// of literal weights (the weight invariant from §3 extends additively
// over the multiset).
func NewClause(id uint64, lits []Literal, it InputType) *Clause {
	c := &Clause{ID: id, Literals: lits, InputType: it, Splits: map[uint32]struct{}{}}
	for _, l := range lits {
		c.Weight += l.T.weight
	}
	return c
}

// IsEmpty reports whether c has no literals.
func (c *Clause) IsEmpty() bool { return len(c.Literals) == 0 }

// IsRefutation reports whether c is the empty refutation: no literals
// and an unconditional (absent) propositional part, per §3.
func (c *Clause) IsRefutation() bool {
	return c.IsEmpty() && (c.PropPart == nil || c.PropPart.IsFalse())
}

// Tautology reports whether c contains a literal and its complement
// (a cheap syntactic tautology check). Clauses that are tautologies
// only through a reflexive equality t = t are not detected, and the
// forward simplification in internal/saturate removes neither such
// clauses nor trivial disequalities t != t.
func (c *Clause) Tautology() bool {
	for i := range c.Literals {
		for j := i + 1; j < len(c.Literals); j++ {
			a, b := c.Literals[i], c.Literals[j]
			if a.Predicate() == b.Predicate() && a.Polarity() != b.Polarity() && sameArgs(a.Args(), b.Args()) {
				return true
			}
		}
	}
	return false
}

func sameArgs(a, b []*Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// RemoveDuplicateLiterals returns a new literal slice with syntactic
// duplicates collapsed (identity-based, since literals are hash-consed).
func RemoveDuplicateLiterals(lits []Literal) []Literal {
	seen := make(map[*Term]struct{}, len(lits))
	out := make([]Literal, 0, len(lits))
	for _, l := range lits {
		if _, ok := seen[l.T]; ok {
			continue
		}
		seen[l.T] = struct{}{}
		out = append(out, l)
	}
	return out
}

// String renders the clause in a readable disjunctive form, literals in
// declaration order (order matters for the saturation loop's
// deterministic generating-inference enumeration, per §4.G).
func (c *Clause) String() string {
	if c.IsEmpty() {
		return "$false"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " | ")
}

// SplitsSorted returns the clause's split-level dependency set in
// ascending order, for deterministic proof/derivation output.
func (c *Clause) SplitsSorted() []uint32 {
	out := make([]uint32, 0, len(c.Splits))
	for s := range c.Splits {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (c *Clause) DebugHeader() string {
	return fmt.Sprintf("#%d[age=%d,w=%d]", c.ID, c.Age, c.Weight)
}
