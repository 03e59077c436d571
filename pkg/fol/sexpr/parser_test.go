package sexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
)

func TestParsePredicate(t *testing.T) {
	s, err := Parse("(Man socrates)")
	require.NoError(t, err)
	pred, ok := s.(fol.Predicate)
	require.True(t, ok)
	assert.Equal(t, "Man", pred.ID.String())
	require.Len(t, pred.Args, 1)
	assert.Equal(t, "socrates", pred.Args[0].String())
}

func TestParseForallImplies(t *testing.T) {
	s, err := Parse("(forall X (implies (and (Man X) (Greedy X)) (Mortal X)))")
	require.NoError(t, err)
	uq, ok := s.(fol.UniversalQuantification)
	require.True(t, ok)
	impl, ok := uq.Child.(fol.Implication)
	require.True(t, ok)
	_, ok = impl.Antecedent.(fol.Conjunction)
	assert.True(t, ok)
	_, ok = impl.Consequent.(fol.Predicate)
	assert.True(t, ok)
}

func TestParseVariableVsConstant(t *testing.T) {
	term, err := ParseTerm("X")
	require.NoError(t, err)
	_, ok := term.(fol.VariableReference)
	assert.True(t, ok, "capitalised name should parse as a variable")

	term, err = ParseTerm("socrates")
	require.NoError(t, err)
	_, ok = term.(fol.Constant)
	assert.True(t, ok, "lowercase name should parse as a constant")
}

func TestParseFunctionTerm(t *testing.T) {
	term, err := ParseTerm("(fatherOf X)")
	require.NoError(t, err)
	fn, ok := term.(fol.Function)
	require.True(t, ok)
	assert.Equal(t, "fatherOf", fn.ID.String())
	require.Len(t, fn.Args, 1)
}

func TestParseSameVariableNameSharesDeclaration(t *testing.T) {
	s, err := Parse("(forall X (implies (Man X) (Mortal X)))")
	require.NoError(t, err)
	uq := s.(fol.UniversalQuantification)
	impl := uq.Child.(fol.Implication)
	ant := impl.Antecedent.(fol.Predicate)
	cons := impl.Consequent.(fol.Predicate)

	antVar := ant.Args[0].(fol.VariableReference)
	consVar := cons.Args[0].(fol.VariableReference)
	assert.Same(t, antVar.Decl, consVar.Decl)
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("(implies (Man X))")
	assert.Error(t, err)

	_, err = Parse("Man X")
	assert.Error(t, err)
}

func TestParseNegationAndQuantifiers(t *testing.T) {
	s, err := Parse("(exists X (not (Man X)))")
	require.NoError(t, err)
	eq, ok := s.(fol.ExistentialQuantification)
	require.True(t, ok)
	_, ok = eq.Child.(fol.Negation)
	assert.True(t, ok)
}
