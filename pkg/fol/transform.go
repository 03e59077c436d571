package fol

// TermTransform produces a (possibly new) Term from each term variant.
// Implementations follow the "share on no change" rule of §4.1: if every
// recursive call returns the identical sub-value, return the original
// node unchanged rather than allocating.
type TermTransform interface {
	TransformConstant(Constant) Term
	TransformFunction(Function) Term
	TransformVariableReference(VariableReference) Term
}

// TransformTerm double-dispatches t to t's own transformTerm, which in
// turn calls back into tr for the matching variant.
func TransformTerm(t Term, tr TermTransform) Term { return t.transformTerm(tr) }

// IdentityTermTransform recurses into Function arguments, reusing the
// original Function value when no argument changed, and returns leaves
// unchanged. Embed it and override individual Transform* methods.
type IdentityTermTransform struct {
	Self TermTransform
}

func (b IdentityTermTransform) self() TermTransform {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b IdentityTermTransform) TransformConstant(c Constant) Term { return c }

func (b IdentityTermTransform) TransformFunction(f Function) Term {
	changed := false
	newArgs := make([]Term, len(f.Args))
	for i, a := range f.Args {
		na := TransformTerm(a, b.self())
		newArgs[i] = na
		if !changed && !sameTerm(na, a) {
			changed = true
		}
	}
	if !changed {
		return f
	}
	return Function{ID: f.ID, Args: newArgs}
}

func (b IdentityTermTransform) TransformVariableReference(v VariableReference) Term { return v }

// sameTerm reports reference-or-value identity sufficient to decide
// whether a transform changed anything; for the immutable value types in
// this package, structural equality is the right notion of "unchanged".
func sameTerm(a, b Term) bool { return a.Equal(b) }

// SentenceTransform produces a (possibly new) Sentence from each sentence
// variant, under the same "share on no change" discipline.
type SentenceTransform interface {
	TransformPredicate(Predicate) Sentence
	TransformNegation(Negation) Sentence
	TransformConjunction(Conjunction) Sentence
	TransformDisjunction(Disjunction) Sentence
	TransformEquivalence(Equivalence) Sentence
	TransformImplication(Implication) Sentence
	TransformUniversal(UniversalQuantification) Sentence
	TransformExistential(ExistentialQuantification) Sentence
}

// TransformSentence double-dispatches s to its own transformSentence.
func TransformSentence(s Sentence, tr SentenceTransform) Sentence {
	return s.transformSentence(tr)
}

// IdentitySentenceTransform recurses into every child, reusing the
// original node when nothing changed. Embed it and override the variants
// a given transformation actually cares about -- this is how each CNF
// pipeline stage (§4.2) is implemented.
type IdentitySentenceTransform struct {
	Self SentenceTransform
}

func (b IdentitySentenceTransform) self() SentenceTransform {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b IdentitySentenceTransform) TransformPredicate(p Predicate) Sentence { return p }

func (b IdentitySentenceTransform) TransformNegation(n Negation) Sentence {
	newChild := TransformSentence(n.Child, b.self())
	if sameSentence(newChild, n.Child) {
		return n
	}
	return Negation{Child: newChild}
}

func (b IdentitySentenceTransform) TransformConjunction(c Conjunction) Sentence {
	l := TransformSentence(c.Left, b.self())
	r := TransformSentence(c.Right, b.self())
	if sameSentence(l, c.Left) && sameSentence(r, c.Right) {
		return c
	}
	return Conjunction{Left: l, Right: r}
}

func (b IdentitySentenceTransform) TransformDisjunction(d Disjunction) Sentence {
	l := TransformSentence(d.Left, b.self())
	r := TransformSentence(d.Right, b.self())
	if sameSentence(l, d.Left) && sameSentence(r, d.Right) {
		return d
	}
	return Disjunction{Left: l, Right: r}
}

func (b IdentitySentenceTransform) TransformEquivalence(e Equivalence) Sentence {
	l := TransformSentence(e.Left, b.self())
	r := TransformSentence(e.Right, b.self())
	if sameSentence(l, e.Left) && sameSentence(r, e.Right) {
		return e
	}
	return Equivalence{Left: l, Right: r}
}

func (b IdentitySentenceTransform) TransformImplication(i Implication) Sentence {
	a := TransformSentence(i.Antecedent, b.self())
	c := TransformSentence(i.Consequent, b.self())
	if sameSentence(a, i.Antecedent) && sameSentence(c, i.Consequent) {
		return i
	}
	return Implication{Antecedent: a, Consequent: c}
}

func (b IdentitySentenceTransform) TransformUniversal(u UniversalQuantification) Sentence {
	newChild := TransformSentence(u.Child, b.self())
	if sameSentence(newChild, u.Child) {
		return u
	}
	return UniversalQuantification{Variable: u.Variable, Child: newChild}
}

func (b IdentitySentenceTransform) TransformExistential(e ExistentialQuantification) Sentence {
	newChild := TransformSentence(e.Child, b.self())
	if sameSentence(newChild, e.Child) {
		return e
	}
	return ExistentialQuantification{Variable: e.Variable, Child: newChild}
}

func sameSentence(a, b Sentence) bool { return a.Equal(b) }
