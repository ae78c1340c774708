package split

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fologic/saturn/internal/bdd"
	"github.com/fologic/saturn/internal/inference"
	"github.com/fologic/saturn/internal/term"
)

func newSplitter() (*Splitter, *term.Store, *bdd.Manager) {
	store := term.NewStore()
	bddM := bdd.NewManager()
	infStore := inference.NewStore()
	ids := uint64(0)
	return New(bddM, store, infStore, &ids), store, bddM
}

func TestProcessStandaloneGroundUnitIsNamedAndRewrittenToPropUnit(t *testing.T) {
	sp, store, bddM := newSplitter()
	p0 := term.AsLiteral(store.Literal(5, true, false, nil, ""))
	c := term.NewClause(1, []term.Literal{p0}, term.InputAxiom)

	res := sp.Process(c)
	require.Len(t, res.NamingPremises, 1)
	require.Len(t, res.NamingPremises[0].Literals, 1)
	require.Same(t, p0.T, res.NamingPremises[0].Literals[0].T)

	require.NotNil(t, res.Master)
	require.Empty(t, res.Master.Literals)
	require.NotNil(t, res.Master.PropPart)
	require.False(t, bddM.IsTrue(res.Master.PropPart.(*bdd.Node)))

	// Re-processing an identical ground literal reuses the same naming
	// variable instead of minting a fresh one, so no second naming
	// premise is emitted.
	c2 := term.NewClause(2, []term.Literal{p0}, term.InputAxiom)
	res2 := sp.Process(c2)
	require.Empty(t, res2.NamingPremises)
}

func TestProcessNamingPremiseReenteringIsPassedThroughUnchanged(t *testing.T) {
	sp, store, _ := newSplitter()
	p0 := term.AsLiteral(store.Literal(7, true, false, nil, ""))
	c := term.NewClause(1, []term.Literal{p0}, term.InputAxiom)

	first := sp.Process(c)
	require.NotEmpty(t, first.NamingPremises)
	premise := first.NamingPremises[0]
	require.NotNil(t, premise.PropPart)

	// The naming-premise clause itself re-enters the given-clause loop
	// and gets processed again; it must be passed through unchanged,
	// still carrying its literal, rather than re-derived through
	// propUnit (which would discharge it, since atomic(v,true) ∨
	// atomic(v,false) reduces to the BDD constant true).
	again := sp.Process(premise)
	require.Same(t, premise, again.Master)
	require.Len(t, again.Master.Literals, 1)
	require.Empty(t, again.NamingPremises)
}

func TestProcessMultiNamesGroundComponentOnce(t *testing.T) {
	sp, store, bddM := newSplitter()
	x := term.Var(0, 0)
	px := term.AsLiteral(store.Literal(1, true, false, []*term.Term{x}, ""))
	q0 := term.AsLiteral(store.Literal(2, true, false, nil, ""))
	c := term.NewClause(1, []term.Literal{px, q0}, term.InputAxiom)

	res := sp.Process(c)
	require.NotNil(t, res.Master)
	require.Len(t, res.NamingPremises, 1)
	require.NotNil(t, res.Master.PropPart)
	require.False(t, bddM.IsFalse(res.Master.PropPart.(*bdd.Node)))
}

func TestProcessSingleComponentFirstOccurrenceBecomesRepresentative(t *testing.T) {
	sp, store, _ := newSplitter()
	x := term.Var(0, 0)
	p := term.AsLiteral(store.Literal(1, true, false, []*term.Term{x}, ""))
	c := term.NewClause(1, []term.Literal{p}, term.InputAxiom)

	res := sp.Process(c)
	require.Same(t, c, res.Master)
	require.Empty(t, res.NewComponents)
}

func TestProcessMultiSplitsIntoMasterAndNewComponent(t *testing.T) {
	sp, store, _ := newSplitter()
	x := term.Var(0, 0)
	y := term.Var(1, 0)
	p := term.AsLiteral(store.Literal(1, true, false, []*term.Term{x}, ""))
	q := term.AsLiteral(store.Literal(2, true, false, []*term.Term{y}, ""))
	c := term.NewClause(1, []term.Literal{p, q}, term.InputAxiom)

	res := sp.Process(c)
	require.NotNil(t, res.Master)
	require.Len(t, res.NewComponents, 1)
	require.NotEqual(t, res.Master.Literals, res.NewComponents[0].Literals)
}
