// Package term implements the hash-consed term/literal/clause data model:
// every compound term built through Store.Compound is shared so that
// structurally equal terms carry identical identity, matching the
// hash-consing invariant that the rest of the prover core relies on.
package term

import (
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Kind distinguishes the three term shapes described by the data model.
type Kind uint8

const (
	// KindVar is an ordinary variable (unsigned index, a caller-chosen bank).
	KindVar Kind = iota
	// KindSpecialVar is a special variable, reserved for internal
	// substitution slots; unification treats it like an ordinary
	// variable and can bind it to or from one.
	KindSpecialVar
	// KindCompound carries a function symbol and an ordered argument list.
	KindCompound
)

// Colour marks a term for interpolation-style partitioning.
type Colour uint8

const (
	ColourTransparent Colour = iota
	ColourLeft
	ColourRight
)

const unknownVarCount = -1

// Term is either a variable, a special variable, or a hash-consed compound.
// Compound identity equality (pointer equality) implies and is implied by
// structural equality: this is the hash-consing invariant from §3/§8.
type Term struct {
	kind   Kind
	index  uint32 // variable index (KindVar / KindSpecialVar) or bank-qualifier
	bank   uint32 // variable bank (0 = unqualified/ground use)
	functor  Functor
	args     []*Term
	shared   bool

	// cached, lazily or eagerly computed properties of compounds.
	arity        int
	ground       bool
	weight       int
	varOccurs    int
	distinctVars int // unknownVarCount until first requested
	commutative  bool
	colour       Colour
	interpreted  bool
	argOrderHint uint8

	literalFlag bool
	predicate   int
	polarity    bool
	twoVarEq    bool
	eqSort      string
}

// Functor names a function or predicate symbol. Predicate 0 is reserved
// for equality, matching the header convention in §3.
type Functor struct {
	Name  string
	Arity int
}

func (f Functor) String() string { return f.Name }

// Var constructs an ordinary variable term. Variables are never
// hash-consed (their identity is the (index, bank) pair, compared by
// value, not by pointer) since a fresh variable must be distinguishable
// from another with the same number in a different bank.
func Var(index, bank uint32) *Term {
	return &Term{kind: KindVar, index: index, bank: bank}
}

// SpecialVar constructs a special (internal substitution slot) variable.
func SpecialVar(index, bank uint32) *Term {
	return &Term{kind: KindSpecialVar, index: index, bank: bank}
}

func (t *Term) Kind() Kind   { return t.kind }
func (t *Term) IsVar() bool  { return t.kind == KindVar }
func (t *Term) IsSpecialVar() bool { return t.kind == KindSpecialVar }
func (t *Term) IsCompound() bool   { return t.kind == KindCompound }
func (t *Term) VarIndex() uint32   { return t.index }
func (t *Term) VarBank() uint32    { return t.bank }
func (t *Term) Functor() Functor   { return t.functor }
func (t *Term) Args() []*Term      { return t.args }
func (t *Term) Arity() int         { return t.arity }
func (t *Term) Shared() bool       { return t.shared }
func (t *Term) Ground() bool       { return t.ground }
func (t *Term) Weight() int        { return t.weight }
func (t *Term) VarOccurrences() int { return t.varOccurs }
func (t *Term) Colour() Colour     { return t.colour }
func (t *Term) Interpreted() bool  { return t.interpreted }
func (t *Term) ArgOrderHint() uint8 { return t.argOrderHint }
func (t *Term) IsLiteral() bool    { return t.literalFlag }
func (t *Term) Predicate() int     { return t.predicate }
func (t *Term) Polarity() bool     { return t.polarity }
func (t *Term) Commutative() bool  { return t.commutative }
func (t *Term) EqSort() string     { return t.eqSort }

// DistinctVars returns the number of distinct variables under t,
// computed lazily on first use and cached thereafter (sentinel
// unknownVarCount marks "not yet computed", per §3).
func (t *Term) DistinctVars() int {
	if t.kind != KindCompound {
		return 1
	}
	if t.distinctVars == unknownVarCount {
		seen := map[uint64]struct{}{}
		var walk func(*Term)
		walk = func(x *Term) {
			switch x.kind {
			case KindVar, KindSpecialVar:
				seen[uint64(x.bank)<<32|uint64(x.index)] = struct{}{}
			case KindCompound:
				for _, a := range x.args {
					walk(a)
				}
			}
		}
		walk(t)
		t.distinctVars = len(seen)
	}
	return t.distinctVars
}

// Store is the hash-consing term table. It is process-wide-singleton in
// spirit but represented as an explicit value (per Design Notes) so that
// tests remain hermetic; a saturation run threads one Store through
// every constructor via proverctx.Context.
type Store struct {
	mu      sync.Mutex
	table   map[string]*Term
	inserts int
	hits    int
}

// NewStore returns an empty hash-consing term store.
func NewStore() *Store {
	return &Store{table: make(map[string]*Term, 1024)}
}

// Stats returns (distinct terms stored, cache hits avoided by sharing).
func (s *Store) Stats() (size, hits int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table), s.hits
}

// LogGrowth traces the store's current size and hit count at debug
// level, so an operator running with -v can see hash-cons table
// pressure over the course of a long saturation run.
func (s *Store) LogGrowth() {
	size, hits := s.Stats()
	logrus.WithFields(logrus.Fields{"size": size, "hits": hits}).Debug("term store size")
}

// Compound creates (or returns the existing shared instance of) a
// compound term with the given functor and arguments. Commutative
// compounds have their two arguments canonicalised by identity before
// hashing so that p(a,b) and p(b,a) share, as required by §4.A.
func (s *Store) Compound(fn Functor, args []*Term, commutative bool) *Term {
	if commutative && len(args) == 2 {
		if termKey(args[0]) > termKey(args[1]) {
			args = []*Term{args[1], args[0]}
		}
	}
	key := compoundKey(fn, args, false, 0, false)
	return s.intern(key, fn, args, commutative, false, 0, false, "")
}

// Literal creates (or returns the shared instance of) a literal: a
// distinguished compound whose functor is predicate pred, carrying a
// polarity bit. Functor 0 is equality; an equality both of whose
// arguments are variables is flagged as a two-variable equality and
// records eqSort in place of the variable-count cache, per §3.
func (s *Store) Literal(pred int, polarity bool, commutative bool, args []*Term, eqSort string) *Term {
	if commutative && len(args) == 2 {
		if termKey(args[0]) > termKey(args[1]) {
			args = []*Term{args[1], args[0]}
		}
	}
	fn := Functor{Name: predicateName(pred), Arity: len(args)}
	twoVar := pred == 0 && len(args) == 2 && args[0].kind != KindCompound && args[1].kind != KindCompound
	key := compoundKey(fn, args, true, polarity2int(polarity, pred), twoVar) + fmt.Sprintf("|p=%d", pred)
	t := s.intern(key, fn, args, commutative, true, pred, twoVar, eqSort)
	t.polarity = polarity
	return t
}

func polarity2int(p bool, pred int) int {
	if p {
		return 2*pred + 1
	}
	return 2 * pred
}

func predicateName(pred int) string {
	if pred == 0 {
		return "="
	}
	return fmt.Sprintf("$pred%d", pred)
}

func (s *Store) intern(key string, fn Functor, args []*Term, commutative, isLit bool, pred int, twoVar bool, eqSort string) *Term {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.table[key]; ok {
		s.hits++
		return existing
	}
	ground := true
	weight := 1
	varOccurs := 0
	for _, a := range args {
		if !a.ground {
			ground = false
		}
		weight += a.weight
		varOccurs += a.varOccurs
		if a.kind == KindVar || a.kind == KindSpecialVar {
			varOccurs++
			ground = false
		}
	}
	t := &Term{
		kind:         KindCompound,
		functor:      fn,
		args:         args,
		shared:       true,
		arity:        len(args),
		ground:       ground,
		weight:       weight,
		varOccurs:    varOccurs,
		distinctVars: unknownVarCount,
		commutative:  commutative,
		literalFlag:  isLit,
		predicate:    pred,
		twoVarEq:     twoVar,
		eqSort:       eqSort,
	}
	s.table[key] = t
	s.inserts++
	return t
}

// termKey produces a total, deterministic order key used only to decide
// commutative-argument canonicalisation; it need not be a content hash,
// only consistent across calls within one Store.
func termKey(t *Term) string {
	switch t.kind {
	case KindVar:
		return fmt.Sprintf("v%d.%d", t.bank, t.index)
	case KindSpecialVar:
		return fmt.Sprintf("s%d.%d", t.bank, t.index)
	default:
		if t.shared {
			return fmt.Sprintf("c%p", t)
		}
		return compoundKey(t.functor, t.args, t.literalFlag, polarity2int(t.polarity, t.predicate), t.twoVarEq)
	}
}

func compoundKey(fn Functor, args []*Term, isLit bool, header int, twoVar bool) string {
	var b strings.Builder
	if isLit {
		fmt.Fprintf(&b, "L%d:", header)
	}
	fmt.Fprintf(&b, "%s/%d(", fn.Name, fn.Arity)
	for i, a := range args {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(termKey(a))
	}
	b.WriteByte(')')
	if twoVar {
		b.WriteString("#2v")
	}
	return b.String()
}

// String renders a term for diagnostics and TPTP-style output.
func (t *Term) String() string {
	switch t.kind {
	case KindVar:
		return fmt.Sprintf("X%d_%d", t.index, t.bank)
	case KindSpecialVar:
		return fmt.Sprintf("S%d_%d", t.index, t.bank)
	default:
		if t.arity == 0 {
			return t.functor.Name
		}
		parts := make([]string, len(t.args))
		for i, a := range t.args {
			parts[i] = a.String()
		}
		return fmt.Sprintf("%s(%s)", t.functor.Name, strings.Join(parts, ","))
	}
}
