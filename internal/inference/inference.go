// Package inference implements the inference DAG described in §4,
// Design note "Cyclic references in the inference DAG" and the
// Inference-store invariant of §3: every Unit owns exactly one
// Inference naming its rule and ordered parents, and the store tracks
// enough per-rule side data to reconstruct a TPTP derivation.
package inference

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Rule tags the kind of step that produced a Unit, per §4.D.
type Rule string

const (
	RuleInput               Rule = "input"
	RuleNegatedConjecture    Rule = "negated_conjecture"
	RuleAxiom                Rule = "axiom"
	RuleClausify              Rule = "clausify"
	RuleResolution            Rule = "resolution"
	RuleSuperpositionFwd      Rule = "forward_superposition"
	RuleSuperpositionBwd      Rule = "backward_superposition"
	RuleSuperpositionSelf     Rule = "self_superposition"
	RuleFactoring             Rule = "factoring"
	RuleEqualityResolution    Rule = "equality_resolution"
	RuleEqualityFactoring     Rule = "equality_factoring"
	RuleDemodulation          Rule = "demodulation"
	RuleSubsumptionResolution Rule = "subsumption_resolution"
	RuleTautologyIntroduction Rule = "tautology_introduction"
	RuleClauseNaming          Rule = "clause_naming"
	RuleSplitting             Rule = "splitting"
	RuleAnswerLiteral         Rule = "answer_literal"
	RuleUnitResultingRes      Rule = "unit_resulting_resolution"
)

// Unit is any clause or formula that participates in the DAG. The
// core package (internal/term) only needs the minimal Derivation
// surface (Rule/ParentIDs); internal/inference is the concrete owner.
type Unit struct {
	ID      uint64
	rule    Rule
	parents []*Unit // ordered, per §4.D
	name    string  // TPTP-visible name, assigned on demand by tptpout
}

func (u *Unit) Rule() string { return string(u.rule) }

func (u *Unit) ParentIDs() []uint64 {
	ids := make([]uint64, len(u.parents))
	for i, p := range u.parents {
		ids[i] = p.ID
	}
	return ids
}

func (u *Unit) Parents() []*Unit { return u.parents }
func (u *Unit) Name() string     { return u.name }

// SplittingEvent records one splitter decision, per §4.D's side-table
// requirement for splitting events.
type SplittingEvent struct {
	Premises      []*Unit
	PreProp       uint64 // BDD node id before the split
	PostProp      uint64 // BDD node id after the split
}

// PropPartChange records a propositional-part alteration that is not
// itself a full splitting event (e.g. a merge of variant clauses).
type PropPartChange struct {
	Old, New uint64
	Rule     Rule
	Merging  *Unit
}

// Store is the inference DAG singleton-as-value: it owns every Unit
// created during a run and the per-rule side tables named in §4.D.
type Store struct {
	mu       sync.Mutex
	nextID   uint64
	units    map[uint64]*Unit
	splits   map[uint64]SplittingEvent
	propChgs map[uint64][]PropPartChange
}

// NewStore returns an empty inference store.
func NewStore() *Store {
	return &Store{
		units:    make(map[uint64]*Unit),
		splits:   make(map[uint64]SplittingEvent),
		propChgs: make(map[uint64][]PropPartChange),
	}
}

// New records a fresh Unit derived by rule from parents. The
// inference-store invariant (§3: every derived unit's parent set is
// non-empty; leaves are input/axiom units) is enforced here for every
// rule except the designated leaf rules.
func (s *Store) New(rule Rule, parents ...*Unit) (*Unit, error) {
	if len(parents) == 0 && rule != RuleInput && rule != RuleAxiom && rule != RuleNegatedConjecture {
		return nil, errors.Errorf("inference: rule %q requires at least one parent", rule)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	u := &Unit{ID: s.nextID, rule: rule, parents: append([]*Unit(nil), parents...)}
	s.units[u.ID] = u
	return u, nil
}

// SetName assigns a stable, human-facing derivation name (used by the
// TPTP output writer); names are assigned lazily so purely-internal
// units never need one.
func (s *Store) SetName(u *Unit, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.name = name
}

// RecordSplitting stores a SPLITTING event for unit u, per §4.D.
func (s *Store) RecordSplitting(u *Unit, ev SplittingEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.splits[u.ID] = ev
}

func (s *Store) SplittingEvent(u *Unit) (SplittingEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.splits[u.ID]
	return ev, ok
}

// RecordPropPartChange appends a propositional-part alteration record
// for unit u (e.g. a variant merge), per §4.D.
func (s *Store) RecordPropPartChange(u *Unit, ch PropPartChange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.propChgs[u.ID] = append(s.propChgs[u.ID], ch)
}

func (s *Store) PropPartChanges(u *Unit) []PropPartChange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]PropPartChange(nil), s.propChgs[u.ID]...)
}

// Ancestors returns every unit reachable by following parent edges
// from roots (inclusive), used both for proof printing and for
// collecting the premises reachable from a refutation (§4.H).
func Ancestors(roots ...*Unit) []*Unit {
	seen := make(map[uint64]struct{})
	var order []*Unit
	var walk func(*Unit)
	walk = func(u *Unit) {
		if _, ok := seen[u.ID]; ok {
			return
		}
		seen[u.ID] = struct{}{}
		for _, p := range u.parents {
			walk(p)
		}
		order = append(order, u)
	}
	for _, r := range roots {
		walk(r)
	}
	return order
}

// Leaves returns the subset of Ancestors(roots...) with no parents —
// the inputs/axioms that justify the derivation, per the
// saturation-soundness property of §8.
func Leaves(roots ...*Unit) []*Unit {
	var out []*Unit
	for _, u := range Ancestors(roots...) {
		if len(u.parents) == 0 {
			out = append(out, u)
		}
	}
	return out
}

func (u *Unit) String() string {
	return fmt.Sprintf("unit#%d(%s)", u.ID, u.rule)
}
