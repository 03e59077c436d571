package fol

import "github.com/gitrdm/gokanlogic/pkg/fol/folerr"

// TryCreateTerm computes the most general unifier of t1 and t2 starting
// from an empty substitution (§4.3). It returns (substitution, true) on
// success, or (nil, false) if the terms cannot be unified.
func TryCreateTerm(t1, t2 Term) (*VariableSubstitution, bool) {
	return TryUpdateTerm(t1, t2, EmptySubstitution())
}

// TryUpdateTerm extends existing with bindings that unify t1 and t2,
// without mutating existing. Classic Robinson unification with an occurs
// check (§4.3):
//
//  1. (Var v, t) or (t, Var v): if v == t succeed; if v is already bound,
//     recurse on its binding; if t is a variable already bound, recurse
//     on that binding; if v occurs in t (after substitution), fail;
//     otherwise bind v ↦ t.
//  2. (Function f, Function g): identifiers and arities must match; unify
//     arguments left to right, threading the substitution.
//  3. Any other shape succeeds only if the two terms are equal.
func TryUpdateTerm(t1, t2 Term, existing *VariableSubstitution) (*VariableSubstitution, bool) {
	b := existing.Builder()
	if !tryUpdateInPlaceTerm(t1, t2, b) {
		return nil, false
	}
	return b.Snapshot(), true
}

// TryUpdateInPlaceTerm mutates builder with bindings unifying t1 and t2,
// returning false (and leaving builder in an unspecified but still-valid
// state) on failure. This is the performance-sensitive entry point,
// avoiding a snapshot-per-subgoal allocation (§4.3, §9).
func TryUpdateInPlaceTerm(t1, t2 Term, builder *SubstitutionBuilder) bool {
	return tryUpdateInPlaceTerm(t1, t2, builder)
}

func tryUpdateInPlaceTerm(t1, t2 Term, b *SubstitutionBuilder) bool {
	v1, isVar1 := t1.(VariableReference)
	v2, isVar2 := t2.(VariableReference)

	switch {
	case isVar1 && isVar2 && v1.Decl.Equal(v2.Decl):
		return true
	case isVar1:
		return bindVariable(v1.Decl, t2, b)
	case isVar2:
		return bindVariable(v2.Decl, t1, b)
	}

	f1, ok1 := t1.(Function)
	f2, ok2 := t2.(Function)
	if ok1 && ok2 {
		if !f1.ID.Equal(f2.ID) || len(f1.Args) != len(f2.Args) {
			return false
		}
		for i := range f1.Args {
			if !tryUpdateInPlaceTerm(f1.Args[i], f2.Args[i], b) {
				return false
			}
		}
		return true
	}
	if ok1 != ok2 {
		return false
	}
	// Constant vs Constant (or any other equal shape): unify iff equal.
	return t1.Equal(t2)
}

// bindVariable implements unifier case 1 for a variable decl being
// unified against term t.
func bindVariable(decl *VariableDeclaration, t Term, b *SubstitutionBuilder) bool {
	if bound, ok := b.Lookup(decl); ok {
		return tryUpdateInPlaceTerm(bound, t, b)
	}
	if tv, ok := t.(VariableReference); ok {
		if boundT, ok2 := b.Lookup(tv.Decl); ok2 {
			return tryUpdateInPlaceTerm(NewVariableReference(decl), boundT, b)
		}
	}
	if OccursIn(b.Snapshot(), decl, t) {
		return false
	}
	b.Bind(decl, t)
	return true
}

// TryCreatePredicate unifies two predicates: signs are not part of a
// Predicate (that's Literal's concern), so this requires matching
// identifier and arity, then unifies arguments pairwise.
func TryCreatePredicate(p1, p2 Predicate) (*VariableSubstitution, bool) {
	return TryUpdatePredicate(p1, p2, EmptySubstitution())
}

// TryUpdatePredicate extends existing to unify p1 and p2.
func TryUpdatePredicate(p1, p2 Predicate, existing *VariableSubstitution) (*VariableSubstitution, bool) {
	b := existing.Builder()
	if !tryUpdateInPlacePredicate(p1, p2, b) {
		return nil, false
	}
	return b.Snapshot(), true
}

// TryUpdateInPlacePredicate is the in-place counterpart of
// TryUpdatePredicate.
func TryUpdateInPlacePredicate(p1, p2 Predicate, b *SubstitutionBuilder) bool {
	return tryUpdateInPlacePredicate(p1, p2, b)
}

func tryUpdateInPlacePredicate(p1, p2 Predicate, b *SubstitutionBuilder) bool {
	if !p1.ID.Equal(p2.ID) || len(p1.Args) != len(p2.Args) {
		return false
	}
	for i := range p1.Args {
		if !tryUpdateInPlaceTerm(p1.Args[i], p2.Args[i], b) {
			return false
		}
	}
	return true
}

// TryCreateLiteral unifies two literals: signs must match, then their
// predicates must unify.
func TryCreateLiteral(l1, l2 Literal) (*VariableSubstitution, bool) {
	return TryUpdateLiteral(l1, l2, EmptySubstitution())
}

// TryUpdateLiteral extends existing to unify l1 and l2.
func TryUpdateLiteral(l1, l2 Literal, existing *VariableSubstitution) (*VariableSubstitution, bool) {
	b := existing.Builder()
	if !tryUpdateInPlaceLiteral(l1, l2, b) {
		return nil, false
	}
	return b.Snapshot(), true
}

// TryUpdateInPlaceLiteral is the in-place counterpart of
// TryUpdateLiteral.
func TryUpdateInPlaceLiteral(l1, l2 Literal, b *SubstitutionBuilder) bool {
	return tryUpdateInPlaceLiteral(l1, l2, b)
}

func tryUpdateInPlaceLiteral(l1, l2 Literal, b *SubstitutionBuilder) bool {
	if l1.IsNegated != l2.IsNegated {
		return false
	}
	return tryUpdateInPlacePredicate(l1.Predicate, l2.Predicate, b)
}

// ExplainUnifyFailure gives callers that want a folerr-typed failure rather
// than a bare bool an InvalidArgument error naming t1 and t2;
// TryCreate*/TryUpdate* return (nil, false) to match gokanlogic's own
// "bool + value" idiom. It does not run unification itself: it returns nil
// only when t1 and t2 are equal.
func ExplainUnifyFailure(t1, t2 Term) error {
	if t1.Equal(t2) {
		return nil
	}
	return folerr.New("unify.TryCreate", folerr.InvalidArgument,
		"cannot unify %s with %s", t1.String(), t2.String())
}
