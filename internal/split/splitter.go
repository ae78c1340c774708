package split

import (
	"sort"
	"strings"
	"sync/atomic"

	"github.com/fologic/saturn/internal/bdd"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/term"
)

// namedEntry is a variant-index slot: a previously-seen component,
// its canonical clause, and the split variable naming it (once named).
type namedEntry struct {
	clause *term.Clause
	named  bool
	v      bdd.Var
}

// Splitter implements the component decomposition, naming and variant
// bookkeeping of §4.F, running as the per-clause state machine
// ("Entering" -> {Single, Multi, PropUnit}) described there.
type Splitter struct {
	bddM     *bdd.Manager
	store    *term.Store
	infStore *inference.Store

	variants map[string]*namedEntry // canonical-clause key -> entry
	propPred map[string]bdd.Var     // propositional-literal key -> split var ("prop_pred_names")

	clauseIDs *uint64
}

// New returns a Splitter sharing the given BDD manager, term store and
// inference store with the rest of the saturation run. clauseIDCounter
// is the same monotonic ID source used by the rest of the prover, so
// split-generated clauses never collide with clause IDs minted
// elsewhere.
func New(bddM *bdd.Manager, store *term.Store, infStore *inference.Store, clauseIDCounter *uint64) *Splitter {
	return &Splitter{
		bddM:      bddM,
		store:     store,
		infStore:  infStore,
		variants:  make(map[string]*namedEntry),
		propPred:  make(map[string]bdd.Var),
		clauseIDs: clauseIDCounter,
	}
}

func (s *Splitter) freshClauseID() uint64 {
	return atomic.AddUint64(s.clauseIDs, 1)
}

// Result is what a Process call yields: the retained master clause
// (nil if the split discharged the original entirely, i.e. its
// propositional part became ⊤, or if single dropped it as a repeat of
// an unnamed variant), any brand-new component clauses to
// enqueue, any previously-unnamed variant components freshly named in
// this step (whose clause now carries an updated propositional part),
// and the naming-premise clauses recorded alongside.
type Result struct {
	Master          *term.Clause
	NewComponents   []*term.Clause
	ModifiedVariant []*term.Clause
	NamingPremises  []*term.Clause
	Event           inference.SplittingEvent
}

// Process runs clause through the splitter state machine described in
// §4.F: Entering -> compute components -> {Single, Multi, PropUnit}.
func (s *Splitter) Process(clause *term.Clause) Result {
	comps := Decompose(clause.Literals)

	switch {
	case len(comps) == 1 && !comps[0].Propositional:
		// Non-propositional singletons still pass through the variant
		// index so that re-derivations of the same component can merge.
		return s.single(clause, comps[0])
	case len(comps) == 1 && comps[0].Propositional:
		if clause.PropPart != nil {
			// clause already carries a guard from an earlier naming pass
			// (e.g. it is itself a naming-premise clause re-entering the
			// given-clause loop): its propositional content is already
			// finalised, so re-running propUnit would needlessly
			// re-derive (and, for a repeat sighting, discharge) it.
			return Result{Master: clause}
		}
		return s.propUnit(clause, comps[0])
	case len(comps) > 1:
		return s.multi(clause, comps)
	default:
		return Result{Master: clause}
	}
}

// propUnit handles a standalone ground (arity-0 literal) clause, per
// §4.F's PropUnit state: the literal is named via getOrNamePropPred
// exactly as a propositional component inside a real split would be,
// and the clause is rewritten into a 0-length clause guarded by the
// named atom, so the literal's truth is carried purely at the
// propositional level from then on.
func (s *Splitter) propUnit(clause *term.Clause, comp Component) Result {
	lit := comp.Literals[0]
	v, premise := s.getOrNamePropPred(lit)
	var result Result
	if premise != nil {
		result.NamingPremises = append(result.NamingPremises, premise)
	}
	masterProp := s.orProp(clause.PropPart, s.bddM.Atomic(v, lit.Polarity()))
	if !s.bddM.IsTrue(masterProp) {
		result.Master = s.rebuild(clause, nil, masterProp)
	}
	return s.recordEvent(clause, result)
}

// single handles a one-component, non-propositional clause: it passes
// through the variant index, per §4.F's Single state. A clause seen
// for the first time becomes the variant's representative; a repeat
// occurrence either merges into an already-named representative or is
// discarded as redundant against an unnamed one.
func (s *Splitter) single(clause *term.Clause, comp Component) Result {
	key := canonicalKey(comp.Literals)
	entry, found := s.variants[key]
	if !found {
		entry = &namedEntry{clause: clause}
		s.variants[key] = entry
		return Result{Master: clause}
	}
	if !entry.named {
		return Result{}
	}
	newProp := s.orProp(clause.PropPart, s.bddM.Atomic(entry.v, true))
	if s.bddM.IsTrue(newProp) {
		return s.recordEvent(clause, Result{})
	}
	return s.recordEvent(clause, Result{Master: s.rebuild(clause, clause.Literals, newProp)})
}

// multi performs a full split across every component, designating
// exactly one as the retained master, per §4.F's Multi state.
//
// A clause's PropPart is the condition under which it is excused (the
// convention fixed by propUnit/single and by Clause.IsRefutation: ⊥,
// including nil, means "no excuse — the clause's literal content is
// unconditionally live"; ⊤ means "always excused"). Splitting
// comp_1 ∨ ... ∨ comp_k is therefore sound-preserving as: every
// non-master component comp_i becomes its own clause guarded by
// atomic(name_i, true) (excused exactly where name_i holds, i.e. live
// exactly where its own name is false — matching propUnit's
// convention for a standalone ground literal), and the retained
// master's excuse is widened by the disjunction of every other
// component's excuse, since any one of them firing is enough to let
// the master step aside. Each non-master component is matched against
// the variant index (possibly naming a previously-unnamed entry for
// the first time) or inserted as new.
func (s *Splitter) multi(clause *term.Clause, comps []Component) Result {
	var result Result
	excuse := s.bddM.False()
	masterIdx := -1

	for i, comp := range comps {
		if comp.Propositional {
			v, premise := s.getOrNamePropPred(comp.Literals[0])
			if premise != nil {
				result.NamingPremises = append(result.NamingPremises, premise)
			}
			excuse = s.bddM.Disjunction(excuse, s.bddM.Atomic(v, comp.Literals[0].Polarity()))
			continue
		}

		key := canonicalKey(comp.Literals)
		entry, found := s.variants[key]
		switch {
		case !found:
			if masterIdx == -1 {
				masterIdx = i
				continue
			}
			nc := term.NewClause(s.freshClauseID(), comp.Literals, clause.InputType)
			s.variants[key] = &namedEntry{clause: nc}
			result.NewComponents = append(result.NewComponents, nc)
		case entry.named:
			excuse = s.bddM.Disjunction(excuse, s.bddM.Atomic(entry.v, true))
		default:
			// Found but not yet named: name it now, unless this
			// occurrence becomes the master (in which case naming is
			// deferred until some other clause needs it).
			if masterIdx == -1 {
				masterIdx = i
				continue
			}
			v := s.bddM.NewVar()
			entry.named = true
			entry.v = v
			result.NamingPremises = append(result.NamingPremises, s.namingPremiseForComponent(entry.clause, v))
			result.ModifiedVariant = append(result.ModifiedVariant, entry.clause)
			excuse = s.bddM.Disjunction(excuse, s.bddM.Atomic(v, true))
		}
	}

	masterProp := s.orProp(clause.PropPart, excuse)
	switch {
	case masterIdx == -1:
		// Every component was either propositional or an already-named
		// variant: nothing is left to retain verbatim. Soundness still
		// requires somewhere to hang the residual excuse if it is not ⊤.
		if !s.bddM.IsTrue(masterProp) {
			empty := term.NewClause(s.freshClauseID(), nil, clause.InputType)
			empty.PropPart = masterProp
			result.Master = empty
		}
	case s.bddM.IsTrue(masterProp):
		// discharged: every other component already excuses it.
	default:
		result.Master = s.rebuild(clause, comps[masterIdx].Literals, masterProp)
	}

	return s.recordEvent(clause, result)
}

// recordEvent stores a SPLITTING event against clause's derivation
// unit, when it has one, and attaches it to result for the caller's
// inspection.
func (s *Splitter) recordEvent(clause *term.Clause, result Result) Result {
	var post term.PropNode
	if result.Master != nil {
		post = result.Master.PropPart
	}
	ev := inference.SplittingEvent{PreProp: propID(clause.PropPart), PostProp: propID(post)}
	if unit, ok := clause.Derivation.(*inference.Unit); ok {
		s.infStore.RecordSplitting(unit, ev)
	}
	result.Event = ev
	return result
}

// getOrNamePropPred allocates (or reuses, via propPred) the split
// variable naming a ground propositional literal, and builds the
// naming-premise clause {lit} guarded by atomic(n, ¬isPositive(lit)),
// per §4.F. Returns (var, nil) when the premise already existed (no
// new premise clause to enqueue).
func (s *Splitter) getOrNamePropPred(lit term.Literal) (bdd.Var, *term.Clause) {
	key := propKey(lit)
	if v, ok := s.propPred[key]; ok {
		return v, nil
	}
	v := s.bddM.NewVar()
	s.propPred[key] = v
	premise := term.NewClause(s.freshClauseID(), []term.Literal{lit}, term.InputAxiom)
	premise.PropPart = s.bddM.Atomic(v, !lit.Polarity())
	return v, premise
}

func (s *Splitter) namingPremiseForComponent(comp *term.Clause, v bdd.Var) *term.Clause {
	premise := term.NewClause(s.freshClauseID(), comp.Literals, comp.InputType)
	premise.PropPart = s.bddM.Atomic(v, false)
	return premise
}

// orProp disjoins add onto a clause's existing propositional part,
// treating a nil/absent part as ⊥ (per the Clause.PropPart
// convention). existing only ever carries *bdd.Node in this prover
// since internal/bdd is the sole PropNode implementation; the type
// assertion below is the one place that assumption is made explicit.
func (s *Splitter) orProp(existing term.PropNode, add *bdd.Node) *bdd.Node {
	if existing == nil {
		return add
	}
	e, ok := existing.(*bdd.Node)
	if !ok {
		return add
	}
	return s.bddM.Disjunction(e, add)
}

func (s *Splitter) rebuild(orig *term.Clause, lits []term.Literal, prop *bdd.Node) *term.Clause {
	nc := term.NewClause(orig.ID, lits, orig.InputType)
	nc.PropPart = prop
	nc.Age = orig.Age
	nc.Derivation = orig.Derivation
	for k := range orig.Splits {
		nc.Splits[k] = struct{}{}
	}
	return nc
}

func propID(n term.PropNode) uint64 {
	if n == nil {
		return 0
	}
	return n.ID()
}

func propKey(lit term.Literal) string {
	return lit.String()
}

// canonicalKey renames the variables of lits in first-occurrence order,
// walking the literals in the order given, and then sorts the resulting
// literal strings, so that two clauses which are variants of each other
// (equal up to variable renaming) produce the same key when their
// literals come in the same order — the variant-index lookup of §4.F.
// Variants that list their literals in a different order can number
// their variables differently and then get different keys.
func canonicalKey(lits []term.Literal) string {
	renum := map[term.Kind]map[uint32]int{}
	next := 0
	var walk func(*term.Term) string
	walk = func(t *term.Term) string {
		switch t.Kind() {
		case term.KindVar, term.KindSpecialVar:
			m, ok := renum[t.Kind()]
			if !ok {
				m = map[uint32]int{}
				renum[t.Kind()] = m
			}
			id, ok := m[t.VarIndex()]
			if !ok {
				id = next
				next++
				m[t.VarIndex()] = id
			}
			if t.Kind() == term.KindVar {
				return "v" + itoa(id)
			}
			return "s" + itoa(id)
		default:
			var b strings.Builder
			b.WriteString(t.Functor().Name)
			b.WriteByte('(')
			for i, a := range t.Args() {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(walk(a))
			}
			b.WriteByte(')')
			return b.String()
		}
	}
	parts := make([]string, len(lits))
	for i, l := range lits {
		prefix := "+"
		if !l.Polarity() {
			prefix = "-"
		}
		var argStrs []string
		for _, a := range l.Args() {
			argStrs = append(argStrs, walk(a))
		}
		parts[i] = prefix + l.T.Functor().Name + "(" + strings.Join(argStrs, ",") + ")"
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := []byte{}
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}
