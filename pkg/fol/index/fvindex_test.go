package index

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
)

func pred(name string, args ...fol.Term) fol.Predicate {
	return fol.NewPredicate(fol.Symbol(name), args...)
}

func lit(negated bool, name string, args ...fol.Term) fol.Literal {
	return fol.NewLiteral(negated, pred(name, args...))
}

func konst(name string) fol.Term { return fol.NewConstant(fol.Symbol(name)) }

func varTerm(name string) fol.Term {
	return fol.NewVariableReference(fol.NewVariableDeclaration(fol.Symbol(name)))
}

func TestDefaultFeatureSelector(t *testing.T) {
	c := fol.NewCNFClause([]fol.Literal{
		lit(false, "P", konst("a")),
		lit(false, "P", konst("b")),
		lit(true, "Q", konst("a")),
	})
	vec := DefaultFeatureSelector(c)
	want := FeatureVector{
		{Feature: "P+", Magnitude: 2},
		{Feature: "Q-", Magnitude: 1},
	}
	if diff := cmp.Diff(want, vec); diff != "" {
		t.Fatalf("feature vector mismatch (-want +got):\n%s", diff)
	}
}

func TestAddAndTryGet(t *testing.T) {
	idx := New[int](DefaultFeatureSelector)
	c := fol.NewCNFClause([]fol.Literal{lit(false, "P", varTerm("X"))})

	require.NoError(t, idx.Add(c, 1))
	v, ok := idx.TryGet(c)
	require.True(t, ok)
	assert.Equal(t, 1, v)

	other := fol.NewCNFClause([]fol.Literal{lit(true, "P", varTerm("X"))})
	_, ok = idx.TryGet(other)
	assert.False(t, ok)
}

func TestAddRejectsEmptyClause(t *testing.T) {
	idx := New[int](DefaultFeatureSelector)
	err := idx.Add(fol.EmptyClause(), 1)
	require.Error(t, err)
}

func TestAddOverwritesExistingValue(t *testing.T) {
	idx := New[int](DefaultFeatureSelector)
	c := fol.NewCNFClause([]fol.Literal{lit(false, "P", konst("a"))})
	require.NoError(t, idx.Add(c, 1))
	require.NoError(t, idx.Add(c, 2))
	v, ok := idx.TryGet(c)
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, idx.Len())
}

func TestGetSubsuming(t *testing.T) {
	idx := New[string](DefaultFeatureSelector)

	// King(X) -- a unit clause that should subsume anything containing a
	// King+ literal with a compatible substitution.
	king := fol.NewCNFClause([]fol.Literal{lit(false, "King", varTerm("X"))})
	require.NoError(t, idx.Add(king, "king-unit"))

	query := fol.NewCNFClause([]fol.Literal{
		lit(false, "King", konst("richard")),
		lit(true, "Greedy", konst("richard")),
	})

	results := idx.GetSubsuming(query)
	require.Len(t, results, 1)
	assert.Equal(t, "king-unit", results[0].Value)
}

func TestGetSubsumingExcludesNonSubsumers(t *testing.T) {
	idx := New[string](DefaultFeatureSelector)
	narrow := fol.NewCNFClause([]fol.Literal{
		lit(false, "King", varTerm("X")),
		lit(false, "Greedy", varTerm("X")),
	})
	require.NoError(t, idx.Add(narrow, "narrow"))

	query := fol.NewCNFClause([]fol.Literal{lit(false, "King", konst("richard"))})
	assert.Empty(t, idx.GetSubsuming(query))
}

func TestGetSubsumed(t *testing.T) {
	idx := New[string](DefaultFeatureSelector)

	wide := fol.NewCNFClause([]fol.Literal{
		lit(false, "King", konst("richard")),
		lit(true, "Greedy", konst("richard")),
		lit(false, "Evil", konst("richard")),
	})
	require.NoError(t, idx.Add(wide, "wide"))

	query := fol.NewCNFClause([]fol.Literal{lit(false, "King", konst("richard"))})
	results := idx.GetSubsumed(query)
	require.Len(t, results, 1)
	assert.Equal(t, "wide", results[0].Value)
}

func TestRemove(t *testing.T) {
	idx := New[int](DefaultFeatureSelector)
	c := fol.NewCNFClause([]fol.Literal{lit(false, "P", konst("a"))})
	require.NoError(t, idx.Add(c, 1))

	assert.True(t, idx.Remove(c))
	assert.Equal(t, 0, idx.Len())
	assert.False(t, idx.Remove(c))
}

func TestTryReplaceSubsumedRejectsWhenAlreadySubsumed(t *testing.T) {
	idx := New[string](DefaultFeatureSelector)
	king := fol.NewCNFClause([]fol.Literal{lit(false, "King", varTerm("X"))})
	require.NoError(t, idx.Add(king, "king-unit"))

	narrower := fol.NewCNFClause([]fol.Literal{
		lit(false, "King", konst("richard")),
		lit(true, "Greedy", konst("richard")),
	})
	added, err := idx.TryReplaceSubsumed(narrower, "narrower")
	require.NoError(t, err)
	assert.False(t, added)
	assert.Equal(t, 1, idx.Len())
}

func TestTryReplaceSubsumedRemovesSubsumedEntries(t *testing.T) {
	idx := New[string](DefaultFeatureSelector)
	wide := fol.NewCNFClause([]fol.Literal{
		lit(false, "King", konst("richard")),
		lit(true, "Greedy", konst("richard")),
	})
	require.NoError(t, idx.Add(wide, "wide"))

	narrow := fol.NewCNFClause([]fol.Literal{lit(false, "King", varTerm("X"))})
	added, err := idx.TryReplaceSubsumed(narrow, "narrow")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, 1, idx.Len())
	v, ok := idx.TryGet(narrow)
	require.True(t, ok)
	assert.Equal(t, "narrow", v)
}

func TestIterateIsDeterministic(t *testing.T) {
	idx := New[int](DefaultFeatureSelector)
	a := fol.NewCNFClause([]fol.Literal{lit(false, "A", konst("x"))})
	b := fol.NewCNFClause([]fol.Literal{lit(false, "B", konst("x"))})
	require.NoError(t, idx.Add(b, 2))
	require.NoError(t, idx.Add(a, 1))

	first := idx.Iterate()
	second := idx.Iterate()
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.True(t, first[i].Clause.Equal(second[i].Clause))
	}
}
