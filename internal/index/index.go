// Package index implements the literal/clause retrieval structures
// described in §4.C: a LiteralIndexingStructure supporting unification,
// generalisation and instance queries, plus a clause-ID bitset
// (modeled on the teacher's pooled-bucket occurrence maps in
// sat/pool.go) recording which clauses have had a literal inserted;
// the queries themselves do not consult it.
package index

import (
	"github.com/willf/bitset"

	"github.com/fologic/saturn/internal/subst"
	"github.com/fologic/saturn/internal/term"
)

// Entry is one (literal, owning clause) pair retrieved from an index.
type Entry struct {
	Literal term.Literal
	Clause  *term.Clause
	Bank    uint32
}

// Match is a retrieved Entry together with the trail the query ran
// on (nil for GetAll). GetUnifications backtracks every attempt before
// it returns, so the trail holds none of the bindings found for the
// match; callers that need the unifier redo the unification.
type Match struct {
	Entry
	Trail *subst.Trail
}

// ResultSet is a materialised (owned) slice of matches — the
// "collect into owned buffers only when the caller explicitly
// materialises" borrow discipline from the Design Notes is satisfied
// by GetUnifications et al. always returning such an owned slice
// rather than a live cursor, trading a little extra allocation for a
// drastically simpler and safer index API.
type ResultSet []Match

// LiteralIndexingStructure is the retrieval contract of §4.C.
type LiteralIndexingStructure interface {
	Insert(lit term.Literal, bank uint32, clause *term.Clause)
	Remove(lit term.Literal, clause *term.Clause)
	GetUnifications(query term.Literal, bank uint32, complementary bool, trail *subst.Trail) ResultSet
	GetGeneralizations(query term.Literal, bank uint32, trail *subst.Trail) ResultSet
	GetInstances(query term.Literal, bank uint32, trail *subst.Trail) ResultSet
	GetAll() ResultSet
}

// bucketKey groups literals coarsely before unification is attempted:
// by header (predicate+polarity) and, when present, the top-level
// functor of the first argument — a simplified discrimination key.
type bucketKey struct {
	header     int
	firstFunct string
}

func keyOf(lit term.Literal) bucketKey {
	k := bucketKey{header: lit.Header()}
	if args := lit.Args(); len(args) > 0 && args[0].IsCompound() {
		k.firstFunct = args[0].Functor().Name
	}
	return k
}

// Index is the default LiteralIndexingStructure: literals are bucketed
// by bucketKey, and one bitset over clause IDs for the whole index
// makes "was some literal of clause N inserted here" an O(1) check
// (MayContainClause) instead of a scan.
type Index struct {
	buckets map[bucketKey][]Entry
	seen    *bitset.BitSet
}

// New returns an empty Index.
func New() *Index {
	return &Index{buckets: make(map[bucketKey][]Entry), seen: bitset.New(1024)}
}

func (ix *Index) Insert(lit term.Literal, bank uint32, clause *term.Clause) {
	k := keyOf(lit)
	ix.buckets[k] = append(ix.buckets[k], Entry{Literal: lit, Clause: clause, Bank: bank})
	ix.seen.Set(uint(clause.ID % (1 << 20)))
}

// MayContainClause is a cheap, false-positive-only pre-filter: if it
// returns false, clause is definitely not indexed here and a caller
// can skip the expensive unification attempt entirely. Removals do
// not clear the bit. Nothing in internal/saturate calls it.
func (ix *Index) MayContainClause(clauseID uint64) bool {
	return ix.seen.Test(uint(clauseID % (1 << 20)))
}

func (ix *Index) Remove(lit term.Literal, clause *term.Clause) {
	k := keyOf(lit)
	entries := ix.buckets[k]
	out := entries[:0]
	for _, e := range entries {
		if e.Clause == clause && e.Literal.T == lit.T {
			continue
		}
		out = append(out, e)
	}
	ix.buckets[k] = out
}

// candidateBuckets returns every bucket that could contain a
// unification/generalisation/instance partner for query, i.e. the
// bucket with query's own header for generalisation/instance queries,
// or the complementary header for a complementary unification query.
func (ix *Index) candidateBuckets(query term.Literal, complementary bool) []Entry {
	header := query.Header()
	if complementary {
		header = query.ComplementHeader()
	}
	var out []Entry
	for k, entries := range ix.buckets {
		if k.header != header {
			continue
		}
		out = append(out, entries...)
	}
	return out
}

func (ix *Index) GetUnifications(query term.Literal, bank uint32, complementary bool, trail *subst.Trail) ResultSet {
	var out ResultSet
	u := subst.NewUnifier(trail)
	for _, e := range ix.candidateBuckets(query, complementary) {
		trail.Record()
		if u.UnifyArgs(query, bank, e.Literal, e.Bank) {
			out = append(out, Match{Entry: e, Trail: trail})
		}
		trail.Backtrack()
	}
	return out
}

func (ix *Index) GetGeneralizations(query term.Literal, bank uint32, trail *subst.Trail) ResultSet {
	// A generalisation of query is a stored literal that query is an
	// instance of; since this simplified index doesn't distinguish
	// variable-direction at the bucket level, fall back to unification
	// candidates and let the caller's ordering-aware filter decide.
	return ix.GetUnifications(query, bank, false, trail)
}

func (ix *Index) GetInstances(query term.Literal, bank uint32, trail *subst.Trail) ResultSet {
	return ix.GetUnifications(query, bank, false, trail)
}

func (ix *Index) GetAll() ResultSet {
	var out ResultSet
	for _, entries := range ix.buckets {
		for _, e := range entries {
			out = append(out, Match{Entry: e})
		}
	}
	return out
}
