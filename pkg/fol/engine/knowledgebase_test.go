package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/engine"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

func tell(t *testing.T, kb *engine.KnowledgeBase, src string) {
	t.Helper()
	s, err := sexpr.Parse(src)
	require.NoError(t, err)
	_, err = kb.Tell(s)
	require.NoError(t, err)
}

func ask(t *testing.T, kb *engine.KnowledgeBase, src string) bool {
	t.Helper()
	s, err := sexpr.Parse(src)
	require.NoError(t, err)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := kb.Ask(ctx, s)
	require.NoError(t, err)
	return result
}

func TestMortalSyllogism(t *testing.T) {
	kb := engine.New()
	tell(t, kb, "(forall X (implies (Man X) (Mortal X)))")
	tell(t, kb, "(Man socrates)")

	assert.True(t, ask(t, kb, "(Mortal socrates)"))
	assert.False(t, ask(t, kb, "(Mortal zeus)"))
}

func TestTellIsIdempotentUnderSubsumption(t *testing.T) {
	kb := engine.New()
	n, err := kb.Tell(mustParse(t, "(Man socrates)"))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = kb.Tell(mustParse(t, "(Man socrates)"))
	require.NoError(t, err)
	assert.Equal(t, 0, n, "re-telling an already-known fact should add nothing new")
}

func TestCriminalWestExample(t *testing.T) {
	kb := engine.New()
	tell(t, kb, "(Owns nono m1)")
	tell(t, kb, "(Missile m1)")
	tell(t, kb, "(forall X (implies (and (Missile X) (Owns nono X)) (Sells west X nono)))")
	tell(t, kb, "(American west)")
	tell(t, kb, "(Enemy nono america)")
	tell(t, kb, "(forall X (implies (Enemy X america) (Hostile X)))")
	tell(t, kb, "(forall X (implies (Missile X) (Weapon X)))")
	tell(t, kb, "(forall X (forall Y (forall Z (implies (and (and (American X) (Weapon Y)) (and (Sells X Y Z) (Hostile Z))) (Criminal X)))))")

	assert.True(t, ask(t, kb, "(Criminal west)"))
}

func TestExplainReturnsAProofForATrueGoal(t *testing.T) {
	kb := engine.New()
	tell(t, kb, "(forall X (implies (Man X) (Mortal X)))")
	tell(t, kb, "(Man socrates)")

	q, err := kb.CreateQuery(mustParse(t, "(Mortal socrates)"))
	require.NoError(t, err)
	defer q.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	result, err := q.Complete(ctx)
	require.NoError(t, err)
	require.True(t, result)

	proof, err := q.Explain()
	require.NoError(t, err)
	assert.NotEmpty(t, proof.Steps)
	assert.NotEmpty(t, proof.String())
}

func mustParse(t *testing.T, src string) fol.Sentence {
	t.Helper()
	s, err := sexpr.Parse(src)
	require.NoError(t, err)
	return s
}
