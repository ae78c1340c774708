// Package saturate implements the given-clause saturation loop of
// §4.G: active/passive clause management, age/weight scheduling,
// forward simplification, splitting integration, and the generating
// inference set (resolution, factoring, equality resolution,
// superposition).
package saturate

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fologic/saturn/internal/answer"
	"github.com/fologic/saturn/internal/bdd"
	"github.com/fologic/saturn/internal/index"
	"github.com/fologic/saturn/internal/proverctx"
	"github.com/fologic/saturn/internal/split"
	"github.com/fologic/saturn/internal/stats"
	"github.com/fologic/saturn/internal/subst"
	"github.com/fologic/saturn/internal/term"
)

// storeLogInterval is how often (in given-clause steps) the term
// store's hash-cons growth is traced at debug level.
const storeLogInterval = 500

// indexOfLiteral returns the position of lit within c.Literals,
// compared by the underlying hash-consed term's identity, or -1 if
// not found (e.g. the clause was simplified after being indexed).
func indexOfLiteral(c *term.Clause, lit term.Literal) int {
	for i, l := range c.Literals {
		if l.T == lit.T {
			return i
		}
	}
	return -1
}

// Limits bounds a saturation run, per §4.G/§4.H's termination-reason
// requirement: either bound being zero/zero-time disables that check.
type Limits struct {
	MaxClauses int
	Deadline   time.Time
}

func (l Limits) exceeded(generated int) (stats.Reason, bool) {
	if l.MaxClauses > 0 && generated >= l.MaxClauses {
		return stats.ReasonClauseLimit, true
	}
	if !l.Deadline.IsZero() && time.Now().After(l.Deadline) {
		return stats.ReasonTimeLimit, true
	}
	return "", false
}

// OutcomeKind classifies how a Run call ended.
type OutcomeKind int

const (
	Running OutcomeKind = iota
	Refuted
	Saturated
	LimitReached
)

// Outcome is the control-flow result of Run, per §4.G/§4.H.
type Outcome struct {
	Kind       OutcomeKind
	Refutation *term.Clause
	Reason     stats.Reason

	// Answer is set when Refutation was recognised as a pure-answer-
	// literal clause (answer.ExtractDirect) rather than a genuine
	// empty clause: the direct-witness case of §4.H.
	Answer *answer.Witness
}

// Engine is the given-clause loop's mutable state: the active set (and
// its retrieval index), the passive/unprocessed pool, and the shared
// splitter.
type Engine struct {
	ctx      *proverctx.Context
	splitter *split.Splitter
	litIndex *index.Index
	oracle   *bdd.Oracle

	active      []*term.Clause
	unitClauses []*term.Clause
	passive     *PassiveSet
	limits      Limits

	age          int
	generated    int
	ageWeightRatio int
	splittingOn  bool
}

// NewEngine returns an Engine sharing ctx's term store, BDD manager and
// inference store, with its own splitter and passive/active sets.
func NewEngine(ctx *proverctx.Context, ageWeightRatio int, limits Limits) *Engine {
	if ageWeightRatio < 1 {
		ageWeightRatio = 5
	}
	return &Engine{
		ctx:            ctx,
		splitter:       split.New(ctx.BDD, ctx.Terms, ctx.Inferences, ctx.ClauseIDCounter()),
		litIndex:       index.New(),
		oracle:         bdd.NewOracle(),
		passive:        NewPassiveSet(ageWeightRatio),
		limits:         limits,
		ageWeightRatio: ageWeightRatio,
		splittingOn:    true,
	}
}

// DisableSplitting turns off the splitter for the lifetime of this
// Engine, per the --splitting=false strategy knob (internal/config):
// Process is never called, so clauses pass through the given-clause
// loop exactly as given, with no component decomposition or naming.
func (e *Engine) DisableSplitting() {
	e.splittingOn = false
}

// AddInitial seeds the passive set with the clausified input problem.
func (e *Engine) AddInitial(clauses []*term.Clause) {
	for _, c := range clauses {
		e.enqueue(c)
	}
}

func (e *Engine) enqueue(c *term.Clause) {
	c.Age = e.age
	e.age++
	e.generated++
	e.ctx.Stats.IncGenerated(stats.PhaseGenerating)
	e.passive.Add(c)
}

// Run drives the given-clause loop to completion, a refutation, or a
// configured limit, honouring ctxGo cancellation as an additional,
// externally-triggered limit (e.g. SIGINT via signal.NotifyContext in
// cmd/saturn).
func (e *Engine) Run(ctxGo context.Context) Outcome {
	for {
		select {
		case <-ctxGo.Done():
			e.ctx.Stats.SetReason(stats.ReasonUserRequest)
			return Outcome{Kind: LimitReached, Reason: stats.ReasonUserRequest}
		default:
		}
		if reason, hit := e.limits.exceeded(e.generated); hit {
			e.ctx.Stats.SetReason(reason)
			return Outcome{Kind: LimitReached, Reason: reason}
		}

		given, ok := e.passive.Next()
		if !ok {
			e.ctx.Stats.SetReason(stats.ReasonSaturated)
			return Outcome{Kind: Saturated, Reason: stats.ReasonSaturated}
		}
		logrus.WithField("phase", "given-clause").WithField("clause", given.ID).Debug("selected given clause")
		if e.generated%storeLogInterval == 0 {
			e.ctx.Terms.LogGrowth()
		}

		simplified, discard := e.forwardSimplify(given)
		if discard {
			e.ctx.Stats.IncDiscarded()
			continue
		}
		given = simplified

		if given.IsRefutation() {
			e.ctx.Stats.SetReason(stats.ReasonRefutationFound)
			return Outcome{Kind: Refuted, Refutation: given}
		}
		if out, ok := e.checkAnswer(given); ok {
			return out
		}
		if out, ok := e.checkGuardedEmpty(given); ok {
			return out
		}

		if e.isSubsumed(given) {
			e.ctx.Stats.IncSubsumption()
			e.ctx.Stats.IncDiscarded()
			continue
		}

		if e.splittingOn {
			res := e.splitter.Process(given)
			for _, nc := range res.NewComponents {
				e.enqueue(nc)
			}
			for _, nc := range res.NamingPremises {
				e.enqueue(nc)
			}
			for _, nc := range res.ModifiedVariant {
				e.enqueue(nc)
			}
			if len(res.NewComponents)+len(res.NamingPremises) > 0 {
				e.ctx.Stats.IncSplit(len(res.NewComponents))
			}
			if res.Master == nil {
				e.ctx.Stats.IncDiscarded()
				continue
			}
			given = res.Master
		}

		if given.IsRefutation() {
			e.ctx.Stats.SetReason(stats.ReasonRefutationFound)
			return Outcome{Kind: Refuted, Refutation: given}
		}
		if out, ok := e.checkAnswer(given); ok {
			return out
		}
		if out, ok := e.checkGuardedEmpty(given); ok {
			return out
		}

		logrus.WithField("phase", "generate").WithField("clause", given.ID).Debug("running generating inferences")
		newClauses := e.generate(given)
		e.activate(given)
		for _, nc := range newClauses {
			e.enqueue(nc)
		}
	}
}

// checkAnswer recognises the direct-witness case of §4.H: a clause
// whose only content is a ground positive answer literal, carried
// unconditionally, ends the run exactly as a refutation would, with
// the extracted witness riding along on the Outcome.
func (e *Engine) checkAnswer(given *term.Clause) (Outcome, bool) {
	w, ok := answer.ExtractDirect(given)
	if !ok {
		return Outcome{}, false
	}
	e.ctx.Stats.SetReason(stats.ReasonRefutationFound)
	e.ctx.Stats.IncAnswer()
	ref := answer.SyntheticRefutation(e.ctx, w)
	return Outcome{Kind: Refuted, Refutation: ref, Answer: w}, true
}

// checkGuardedEmpty recognises the AVATAR-style indirect refutation
// that PropUnit/Multi splitting can produce: a 0-literal clause whose
// PropPart is neither ⊥ (already caught by IsRefutation) nor ⊤ (fully
// discharged, nothing left to check) asserts that the disjunction of
// its guard's named literals must hold, on pain of an unconditional
// contradiction. That disjunction is recorded with the Oracle as a
// standing constraint; once the accumulated constraints across every
// such clause this run has produced are jointly unsatisfiable, no
// split assignment escapes the contradiction and the run is refuted,
// per §4.E's consistency-oracle role.
func (e *Engine) checkGuardedEmpty(given *term.Clause) (Outcome, bool) {
	if len(given.Literals) != 0 || given.PropPart == nil {
		return Outcome{}, false
	}
	node, ok := given.PropPart.(*bdd.Node)
	if !ok || node.IsTrue() || node.IsFalse() {
		return Outcome{}, false
	}
	lits, ok := guardLiterals(node)
	if !ok {
		return Outcome{}, false
	}
	e.oracle.AssertClause(lits)
	if e.oracle.Consistent() {
		return Outcome{}, false
	}
	// The oracle's accumulated constraints are jointly unsatisfiable: no
	// split assignment escapes every guarded empty clause derived so
	// far, so the run is genuinely refuted — but given itself still
	// carries a non-trivial guard, so a fresh, unconditionally-⊥
	// clause stands in as the reported refutation (mirroring
	// answer.SyntheticRefutation's witness-clause convention).
	e.ctx.Stats.SetReason(stats.ReasonRefutationFound)
	refutation := term.NewClause(e.ctx.NextClauseID(), nil, term.InputHypothesis)
	return Outcome{Kind: Refuted, Refutation: refutation}, true
}

// guardLiterals decodes a BDD node built purely from Disjunction over
// Atomic terms — the only shape a Clause.PropPart guard ever takes in
// this prover — into its literal set. Every such node has exactly one
// path to the false terminal (all literals false); walking it greedily
// peels off one forced literal per level.
func guardLiterals(n *bdd.Node) (map[bdd.Var]bool, bool) {
	lits := map[bdd.Var]bool{}
	for {
		if n.IsFalse() {
			return lits, true
		}
		if n.IsTrue() {
			return nil, false
		}
		switch {
		case n.High().IsTrue():
			lits[n.Var()] = true
			n = n.Low()
		case n.Low().IsTrue():
			lits[n.Var()] = false
			n = n.High()
		default:
			return nil, false
		}
	}
}

// forwardSimplify removes duplicate literals and drops syntactic
// tautologies, per §4.G's required forward simplification rules.
func (e *Engine) forwardSimplify(c *term.Clause) (*term.Clause, bool) {
	lits := term.RemoveDuplicateLiterals(c.Literals)
	if len(lits) == len(c.Literals) {
		if c.Tautology() {
			e.ctx.Stats.IncTautology()
			return nil, true
		}
		return c, false
	}
	nc := term.NewClause(c.ID, lits, c.InputType)
	nc.PropPart = c.PropPart
	nc.Derivation = c.Derivation
	nc.Age = c.Age
	for k := range c.Splits {
		nc.Splits[k] = struct{}{}
	}
	if nc.Tautology() {
		e.ctx.Stats.IncTautology()
		return nil, true
	}
	e.ctx.Stats.IncSimplified()
	return nc, false
}

// isSubsumed reports whether some already-active unit clause subsumes
// c, per the simplified unification-based check in subsumesUnit.
func (e *Engine) isSubsumed(c *term.Clause) bool {
	for _, u := range e.unitClauses {
		if subsumesUnit(u, uint32(u.ID), c, uint32(c.ID)) {
			return true
		}
	}
	return false
}

func (e *Engine) activate(c *term.Clause) {
	e.active = append(e.active, c)
	if len(c.Literals) == 1 {
		e.unitClauses = append(e.unitClauses, c)
	}
	bank := uint32(c.ID)
	for _, l := range c.Literals {
		e.litIndex.Insert(l, bank, c)
	}
	e.ctx.Stats.IncRetained()
}

// generate runs every generating inference between given and the
// active set (including given itself, to realise self-superposition
// and self-factoring), per §4.G.
func (e *Engine) generate(given *term.Clause) []*term.Clause {
	var out []*term.Clause
	givenBank := uint32(given.ID)

	for i := range given.Literals {
		for j := i + 1; j < len(given.Literals); j++ {
			if nc, ok := Factor(e.ctx, given, i, j, givenBank); ok {
				out = append(out, nc)
			}
		}
	}
	for i, l := range given.Literals {
		if l.IsEquality() && !l.Polarity() {
			if nc, ok := EqualityResolution(e.ctx, given, i, givenBank); ok {
				out = append(out, nc)
			}
		}
	}

	// Resolution partners are found through the active literal index
	// rather than a brute-force scan of every active clause: for each
	// of the given clause's literals, the index's bucketed unification
	// query (keyed on the complementary header) returns only clauses
	// that could possibly resolve, per §4.C. Self-resolution against
	// given's own literals is handled separately, below, since given is
	// not indexed until after this call (activate runs after generate).
	for i, l1 := range given.Literals {
		for j2 := i + 1; j2 < len(given.Literals); j2++ {
			if nc, ok := Resolve(e.ctx, given, i, givenBank, given, j2, givenBank); ok {
				out = append(out, nc)
			}
		}
		probe := subst.NewTrail(subst.New())
		for _, m := range e.litIndex.GetUnifications(l1, givenBank, true, probe) {
			j := indexOfLiteral(m.Clause, m.Literal)
			if j < 0 {
				continue
			}
			if nc, ok := Resolve(e.ctx, given, i, givenBank, m.Clause, j, m.Bank); ok {
				out = append(out, nc)
			}
		}
	}

	partners := append([]*term.Clause{given}, e.active...)
	for _, other := range partners {
		otherBank := uint32(other.ID)
		for i, l := range given.Literals {
			if !(l.IsEquality() && l.Polarity()) {
				continue
			}
			for j := range other.Literals {
				if other == given && i == j {
					continue
				}
				if nc, ok := Superposition(e.ctx, given, i, givenBank, other, j, otherBank); ok {
					out = append(out, nc)
				}
			}
		}
		for i, l := range other.Literals {
			if !(l.IsEquality() && l.Polarity()) {
				continue
			}
			for j := range given.Literals {
				if other == given && i == j {
					continue
				}
				if nc, ok := Superposition(e.ctx, other, i, otherBank, given, j, givenBank); ok {
					out = append(out, nc)
				}
			}
		}
	}
	return out
}

// Active returns a snapshot of the current active set, for diagnostics
// and for internal/answer's conjunctive-goal tabulation to scan over.
func (e *Engine) Active() []*term.Clause {
	return append([]*term.Clause(nil), e.active...)
}
