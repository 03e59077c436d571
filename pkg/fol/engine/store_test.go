package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
)

func unitClause(name string, negated bool) *fol.CNFClause {
	pred := fol.NewPredicate(fol.Symbol(name), fol.NewConstant(fol.Symbol("a")))
	return fol.NewCNFClause([]fol.Literal{fol.NewLiteral(negated, pred)})
}

func TestClauseStoreAddRejectsSubsumedClause(t *testing.T) {
	store := NewClauseStore()
	varPred := fol.NewPredicate(fol.Symbol("P"),
		fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol("X"))))
	general := fol.NewCNFClause([]fol.Literal{fol.PositiveLiteral(varPred)})
	added, err := store.Add(general)
	require.NoError(t, err)
	assert.True(t, added)

	specific := unitClause("P", false)
	added, err = store.Add(specific)
	require.NoError(t, err)
	assert.False(t, added, "a clause subsumed by a stored clause should not be added")
	assert.Equal(t, 1, store.Len())
}

func TestClauseStoreAddRefusingEmpty(t *testing.T) {
	store := NewClauseStore()
	_, err := store.AddRefusingEmpty(fol.EmptyClause())
	assert.Error(t, err)
}

func TestClauseStoreSnapshotIsIndependent(t *testing.T) {
	store := NewClauseStore()
	_, err := store.Add(unitClause("P", false))
	require.NoError(t, err)

	snap := store.Snapshot()
	_, err = snap.Add(unitClause("Q", false))
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 2, snap.Len())
}

func TestClauseStoreFindResolutions(t *testing.T) {
	store := NewClauseStore()
	_, err := store.Add(unitClause("P", false))
	require.NoError(t, err)

	query := unitClause("P", true)
	candidates := store.FindResolutions(query, AllPairs)
	require.Len(t, candidates, 1)
	assert.True(t, candidates[0].Resolvent.IsEmpty())
}

func TestUnitPreferencePrefersUnitPairs(t *testing.T) {
	unit := unitClause("P", false)
	nonUnit := fol.NewCNFClause([]fol.Literal{
		fol.PositiveLiteral(fol.NewPredicate(fol.Symbol("Q"), fol.NewConstant(fol.Symbol("a")))),
		fol.PositiveLiteral(fol.NewPredicate(fol.Symbol("R"), fol.NewConstant(fol.Symbol("a")))),
	})

	unitPair := ClausePair{A: unit, B: unit}
	mixedPair := ClausePair{A: nonUnit, B: nonUnit}
	assert.True(t, UnitPreference.Less(unitPair, mixedPair))
	assert.False(t, UnitPreference.Less(mixedPair, unitPair))
}

func TestShortestClausePrefersSmallerCombinedLength(t *testing.T) {
	short := ClausePair{A: unitClause("P", false), B: unitClause("Q", false)}
	long := ClausePair{
		A: fol.NewCNFClause([]fol.Literal{
			fol.PositiveLiteral(fol.NewPredicate(fol.Symbol("P"), fol.NewConstant(fol.Symbol("a")))),
			fol.PositiveLiteral(fol.NewPredicate(fol.Symbol("Q"), fol.NewConstant(fol.Symbol("a")))),
		}),
		B: unitClause("R", false),
	}
	assert.True(t, ShortestClause.Less(short, long))
}

func TestFIFOImposesNoOrdering(t *testing.T) {
	p1 := ClausePair{A: unitClause("P", false), B: unitClause("Q", false)}
	p2 := ClausePair{A: unitClause("R", false), B: unitClause("S", false)}
	assert.False(t, FIFO.Less(p1, p2))
	assert.False(t, FIFO.Less(p2, p1))
}

func TestSetOfSupportFilter(t *testing.T) {
	a := unitClause("P", false)
	b := unitClause("Q", false)
	supported := map[*fol.CNFClause]bool{a: true}
	filter := SetOfSupport(func(c *fol.CNFClause) bool { return supported[c] })

	assert.True(t, filter(a, b))
	assert.True(t, filter(b, a))
	assert.False(t, filter(b, b))
}
