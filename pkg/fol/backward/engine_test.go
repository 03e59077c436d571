package backward_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/backward"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

func tellDefinite(t *testing.T, kb *backward.KnowledgeBase, src string) {
	t.Helper()
	s, err := sexpr.Parse(src)
	require.NoError(t, err)
	for _, c := range fol.ToCNF(s).Clauses() {
		dc, ok := c.AsDefiniteClause()
		require.True(t, ok, "expected %q to produce a definite clause", src)
		kb.Add(dc)
	}
}

func TestBackwardChainingFindsAProof(t *testing.T) {
	kb := backward.NewKnowledgeBase()
	tellDefinite(t, kb, "(forall X (implies (Man X) (Mortal X)))")
	tellDefinite(t, kb, "(Man socrates)")

	goal, err := sexpr.Parse("(Mortal socrates)")
	require.NoError(t, err)
	q := kb.CreateQuery(goal.(fol.Predicate))
	defer q.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	proof, ok, err := q.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, proof.Steps, 2)

	_, ok, err = q.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "only one proof should exist for a ground goal")
}

func TestBackwardChainingEnumeratesMultipleProofs(t *testing.T) {
	kb := backward.NewKnowledgeBase()
	tellDefinite(t, kb, "(Parent tom bob)")
	tellDefinite(t, kb, "(Parent tom liz)")

	goal, err := sexpr.Parse("(Parent tom X)")
	require.NoError(t, err)
	q := kb.CreateQuery(goal.(fol.Predicate))
	defer q.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var children []string
	for {
		proof, ok, err := q.Next(ctx)
		require.NoError(t, err)
		if !ok {
			break
		}
		children = append(children, proof.Goal.Args[1].String())
	}
	assert.ElementsMatch(t, []string{"bob", "liz"}, children)
}

func TestBackwardChainingNoProof(t *testing.T) {
	kb := backward.NewKnowledgeBase()
	tellDefinite(t, kb, "(Man socrates)")

	goal, err := sexpr.Parse("(Mortal socrates)")
	require.NoError(t, err)
	q := kb.CreateQuery(goal.(fol.Predicate))
	defer q.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, ok, err := q.Next(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDisposeStopsTheSearchEarly(t *testing.T) {
	kb := backward.NewKnowledgeBase()
	tellDefinite(t, kb, "(Parent tom bob)")

	goal, err := sexpr.Parse("(Parent tom X)")
	require.NoError(t, err)
	q := kb.CreateQuery(goal.(fol.Predicate))
	q.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, _, err = q.Next(ctx)
	assert.NoError(t, err)
}
