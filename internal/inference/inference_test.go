package inference

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNonLeafRequiresParents(t *testing.T) {
	s := NewStore()
	_, err := s.New(RuleResolution)
	require.Error(t, err)
}

func TestLeavesAreInputsOrAxioms(t *testing.T) {
	s := NewStore()
	ax1, err := s.New(RuleAxiom)
	require.NoError(t, err)
	ax2, err := s.New(RuleAxiom)
	require.NoError(t, err)
	res, err := s.New(RuleResolution, ax1, ax2)
	require.NoError(t, err)

	leaves := Leaves(res)
	require.ElementsMatch(t, []*Unit{ax1, ax2}, leaves)
}

func TestAncestorsParentClosed(t *testing.T) {
	s := NewStore()
	a, _ := s.New(RuleAxiom)
	b, _ := s.New(RuleAxiom)
	r1, _ := s.New(RuleResolution, a, b)
	r2, _ := s.New(RuleFactoring, r1)

	anc := Ancestors(r2)
	ids := map[uint64]bool{}
	for _, u := range anc {
		ids[u.ID] = true
	}
	require.True(t, ids[a.ID])
	require.True(t, ids[b.ID])
	require.True(t, ids[r1.ID])
	require.True(t, ids[r2.ID])
}
