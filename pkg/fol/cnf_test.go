package fol_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gitrdm/gokanlogic/pkg/fol"
)

func sym(name string) fol.Symbol { return fol.Symbol(name) }

func decl(name string) *fol.VariableDeclaration { return fol.NewVariableDeclaration(sym(name)) }

func ref(d *fol.VariableDeclaration) fol.Term { return fol.NewVariableReference(d) }

func konst(name string) fol.Term { return fol.NewConstant(sym(name)) }

func pred(name string, args ...fol.Term) fol.Predicate { return fol.NewPredicate(sym(name), args...) }

func TestUnifyConstantWithConstant(t *testing.T) {
	_, ok := fol.TryCreateTerm(konst("a"), konst("a"))
	assert.True(t, ok)

	_, ok = fol.TryCreateTerm(konst("a"), konst("b"))
	assert.False(t, ok)
}

func TestUnifyVariableWithConstant(t *testing.T) {
	x := decl("X")
	sub, ok := fol.TryCreateTerm(ref(x), konst("a"))
	require.True(t, ok)
	bound := fol.ApplyToTerm(sub, ref(x))
	assert.Equal(t, "a", bound.String())
}

func TestUnifyOccursCheckFails(t *testing.T) {
	x := decl("X")
	f := fol.NewFunction(sym("f"), ref(x))
	_, ok := fol.TryCreateTerm(ref(x), f)
	assert.False(t, ok, "X should not unify with f(X)")
}

func TestUnifyFunctionsRequireMatchingArity(t *testing.T) {
	f1 := fol.NewFunction(sym("f"), konst("a"))
	f2 := fol.NewFunction(sym("f"), konst("a"), konst("b"))
	_, ok := fol.TryCreateTerm(f1, f2)
	assert.False(t, ok)
}

func TestUnifyThreadsBindingsAcrossArguments(t *testing.T) {
	// f(X, X) unified with f(a, a) should succeed; f(X, X) with f(a, b)
	// should fail because X cannot be bound to both a and b.
	x := decl("X")
	fXX := fol.NewFunction(sym("f"), ref(x), ref(x))
	fAA := fol.NewFunction(sym("f"), konst("a"), konst("a"))
	fAB := fol.NewFunction(sym("f"), konst("a"), konst("b"))

	_, ok := fol.TryCreateTerm(fXX, fAA)
	assert.True(t, ok)

	_, ok = fol.TryCreateTerm(fXX, fAB)
	assert.False(t, ok)
}

func TestTryCreatePredicateRequiresMatchingIdentifierAndArity(t *testing.T) {
	p1 := pred("P", konst("a"))
	p2 := pred("Q", konst("a"))
	_, ok := fol.TryCreatePredicate(p1, p2)
	assert.False(t, ok)

	p3 := pred("P", konst("a"), konst("b"))
	_, ok = fol.TryCreatePredicate(p1, p3)
	assert.False(t, ok)
}

func TestToCNFEliminatesImplicationAndNegatesInward(t *testing.T) {
	// (Man X) => (Mortal X) becomes ¬Man(X) ∨ Mortal(X), one clause with
	// two literals.
	x := decl("X")
	s := fol.UniversalQuantification{
		Variable: x,
		Child: fol.Implication{
			Antecedent: pred("Man", ref(x)),
			Consequent: pred("Mortal", ref(x)),
		},
	}
	cnf := fol.ToCNF(s)
	require.Len(t, cnf.Clauses(), 1)
	clause := cnf.Clauses()[0]
	assert.Len(t, clause.Literals, 2)
	assert.True(t, clause.IsDefinite())
}

func TestToCNFDropsTautologies(t *testing.T) {
	// P(a) ∨ ¬P(a) is valid and contributes nothing.
	s := fol.Disjunction{
		Left:  pred("P", konst("a")),
		Right: fol.Negation{Child: pred("P", konst("a"))},
	}
	cnf := fol.ToCNF(s)
	assert.Empty(t, cnf.Clauses())
}

func TestToCNFSkolemisesExistentialUnderUniversal(t *testing.T) {
	// ∀X ∃Y Loves(X, Y) -- Y should become a Skolem function of X, not a
	// bare Skolem constant, since it is nested under a universal.
	x := decl("X")
	y := decl("Y")
	s := fol.UniversalQuantification{
		Variable: x,
		Child: fol.ExistentialQuantification{
			Variable: y,
			Child:    pred("Loves", ref(x), ref(y)),
		},
	}
	cnf := fol.ToCNF(s)
	require.Len(t, cnf.Clauses(), 1)
	lit := cnf.Clauses()[0].Literals[0]
	require.Len(t, lit.Predicate.Args, 2)
	skolemArg, ok := lit.Predicate.Args[1].(fol.Function)
	require.True(t, ok, "the existential variable should become a Skolem function application")
	assert.Len(t, skolemArg.Args, 1, "the Skolem function should take the enclosing universal as its argument")
}

func TestToCNFDistributesDisjunctionOverConjunction(t *testing.T) {
	// P ∨ (Q ∧ R) becomes (P ∨ Q) ∧ (P ∨ R), two clauses.
	s := fol.Disjunction{
		Left: pred("P"),
		Right: fol.Conjunction{
			Left:  pred("Q"),
			Right: pred("R"),
		},
	}
	cnf := fol.ToCNF(s)
	assert.Len(t, cnf.Clauses(), 2)
}

func TestCNFClauseSubsumesWithSubstitution(t *testing.T) {
	x := decl("X")
	general := fol.NewCNFClause([]fol.Literal{fol.PositiveLiteral(pred("King", ref(x)))})
	specific := fol.NewCNFClause([]fol.Literal{
		fol.PositiveLiteral(pred("King", konst("richard"))),
		fol.NegativeLiteral(pred("Greedy", konst("richard"))),
	})
	assert.True(t, general.Subsumes(specific))
	assert.False(t, specific.Subsumes(general))
}

func TestCNFClauseResolveProducesEmptyClauseOnComplementaryUnits(t *testing.T) {
	a := fol.NewCNFClause([]fol.Literal{fol.PositiveLiteral(pred("P", konst("a")))})
	b := fol.NewCNFClause([]fol.Literal{fol.NegativeLiteral(pred("P", konst("a")))})
	results := a.Resolve(b)
	require.Len(t, results, 1)
	assert.True(t, results[0].Resolvent.IsEmpty())
}

func TestCNFClauseEqualityIgnoresOrderButNotSign(t *testing.T) {
	p := pred("P", konst("a"))
	q := pred("Q", konst("a"))
	c1 := fol.NewCNFClause([]fol.Literal{fol.PositiveLiteral(p), fol.PositiveLiteral(q)})
	c2 := fol.NewCNFClause([]fol.Literal{fol.PositiveLiteral(q), fol.PositiveLiteral(p)})
	assert.True(t, c1.Equal(c2))

	c3 := fol.NewCNFClause([]fol.Literal{fol.NegativeLiteral(p), fol.PositiveLiteral(q)})
	assert.False(t, c1.Equal(c3))
}
