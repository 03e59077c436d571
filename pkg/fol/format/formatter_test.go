package format_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
	"github.com/gitrdm/gokanlogic/pkg/fol/format"
	"github.com/gitrdm/gokanlogic/pkg/fol/sexpr"
)

func TestFormatterRendersSentence(t *testing.T) {
	s, err := sexpr.Parse("(forall X (implies (Man X) (Mortal X)))")
	require.NoError(t, err)

	f := format.New()
	out := f.Sentence(s)
	assert.Contains(t, out, "Man")
	assert.Contains(t, out, "Mortal")
	assert.Contains(t, out, "⇒")
	assert.Contains(t, out, "∀")
	assert.NoError(t, f.Err())
}

func TestFormatterReusesVariableLabels(t *testing.T) {
	s, err := sexpr.Parse("(forall X (implies (Man X) (Mortal X)))")
	require.NoError(t, err)

	f := format.New()
	out := f.Sentence(s)
	// The same underlying declaration is referenced by both occurrences of
	// X, so the formatter should assign it one label (the first of the
	// default lowercase-Greek set) and reuse it.
	assert.Equal(t, 3, strings.Count(out, "α"), "quantifier binder plus both uses of X should share one label")
}

func TestFormatterClauseAndEmptyClause(t *testing.T) {
	f := format.New()
	assert.Equal(t, "⊥", f.Clause(fol.EmptyClause()))

	pred := fol.NewPredicate(fol.Symbol("P"), fol.NewConstant(fol.Symbol("a")))
	c := fol.NewCNFClause([]fol.Literal{fol.PositiveLiteral(pred)})
	assert.Equal(t, "P(a)", f.Clause(c))
}

func TestFormatterSubstitutionIsStableAndSorted(t *testing.T) {
	f := format.New()
	b := fol.NewSubstitutionBuilder()
	x := fol.NewVariableDeclaration(fol.Symbol("X"))
	y := fol.NewVariableDeclaration(fol.Symbol("Y"))
	b.Bind(y, fol.NewConstant(fol.Symbol("b")))
	b.Bind(x, fol.NewConstant(fol.Symbol("a")))
	sub := b.Snapshot()

	out := f.Substitution(sub)
	assert.True(t, strings.HasPrefix(out, "{"))
	assert.True(t, strings.HasSuffix(out, "}"))
	assert.Contains(t, out, "↦ a")
	assert.Contains(t, out, "↦ b")
}

func TestFormatterEmptySubstitution(t *testing.T) {
	f := format.New()
	assert.Equal(t, "{}", f.Substitution(fol.EmptySubstitution()))
}

func TestFormatterDefaultLabelSetsAreGreekAndLatin(t *testing.T) {
	assert.Equal(t, 24, format.GreekLowerLabelSet().Cap())
	assert.Equal(t, 26, format.LatinUpperLabelSet().Cap())
}

func TestFormatterVariableLabelSetIsConfigurable(t *testing.T) {
	numerals := format.NewLabelSet("numeral", "1", "2", "3")
	f := format.New(format.WithVariableLabelSet(numerals))

	s, err := sexpr.Parse("(forall X (Man X))")
	require.NoError(t, err)
	out := f.Sentence(s)
	assert.Contains(t, out, "∀1 ")
	assert.NoError(t, f.Err())
}

func TestFormatterVariableLabelSetExhaustionIsResourceExhausted(t *testing.T) {
	// A one-label set can name the first distinct variable but not the
	// second, so the formatter must fall back to a placeholder and record
	// a ResourceExhausted error rather than panicking or silently
	// inventing a longer label.
	single := format.NewLabelSet("single", "x")
	f := format.New(format.WithVariableLabelSet(single))

	s, err := sexpr.Parse("(forall X (forall Y (Knows X Y)))")
	require.NoError(t, err)
	out := f.Sentence(s)

	assert.Contains(t, out, "∀x ")
	require.Error(t, f.Err())
	assert.True(t, folerr.IsKind(f.Err(), folerr.ResourceExhausted))

	// The error is sticky: it does not clear once later renders happen to
	// stay within capacity, and rendering keeps producing output instead
	// of panicking.
	firstErr := f.Err()
	_ = f.Sentence(s)
	assert.Equal(t, firstErr, f.Err())
}

func TestFormatterSkolemLabelSetIsConfigurable(t *testing.T) {
	// Skolemising an existential nested under a universal turns the
	// existential variable into a Skolem function application; pull one
	// out of ToCNF rather than constructing a SkolemFunctionSymbol
	// directly, since that type's constructor is package-private.
	s, err := sexpr.Parse("(forall X (exists Y (Loves X Y)))")
	require.NoError(t, err)
	cnf := fol.ToCNF(s)
	require.Len(t, cnf.Clauses(), 1)
	skolemArg := cnf.Clauses()[0].Literals[0].Predicate.Args[1]

	roman := format.NewLabelSet("roman", "I", "II")
	f := format.New(format.WithSkolemLabelSet(roman))
	out := f.Term(skolemArg)
	assert.True(t, strings.HasPrefix(out, "I("), "Skolem function should use the configured label set, got %q", out)
	assert.NoError(t, f.Err())
}
