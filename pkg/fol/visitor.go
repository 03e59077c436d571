package fol

// TermVisitor is the pure-recursion capability set over the term variants
// (§4.1). Implementers that only care about a subset embed
// BaseTermVisitor and override what they need.
type TermVisitor interface {
	VisitConstant(Constant)
	VisitFunction(Function)
	VisitVariableReference(VariableReference)
}

// VisitTerm double-dispatches t to v, recursing is the visitor's own
// responsibility (mirrors gokanlogic's copyTermRecursive type-switch
// style, exposed here as an open-dispatch contract per §9).
func VisitTerm(t Term, v TermVisitor) { t.acceptTerm(v) }

// BaseTermVisitor recurses into Function arguments and does nothing for
// leaves; embed it to implement only the cases that matter.
type BaseTermVisitor struct {
	Self TermVisitor
}

func (b BaseTermVisitor) self() TermVisitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b BaseTermVisitor) VisitConstant(Constant) {}

func (b BaseTermVisitor) VisitFunction(f Function) {
	for _, a := range f.Args {
		VisitTerm(a, b.self())
	}
}

func (b BaseTermVisitor) VisitVariableReference(VariableReference) {}

// SentenceVisitor is the pure-recursion capability set over the sentence
// variants (§3/§4.1).
type SentenceVisitor interface {
	VisitPredicate(Predicate)
	VisitNegation(Negation)
	VisitConjunction(Conjunction)
	VisitDisjunction(Disjunction)
	VisitEquivalence(Equivalence)
	VisitImplication(Implication)
	VisitUniversal(UniversalQuantification)
	VisitExistential(ExistentialQuantification)
}

// VisitSentence double-dispatches s to v.
func VisitSentence(s Sentence, v SentenceVisitor) { s.acceptSentence(v) }

// BaseSentenceVisitor recurses into every child and does nothing else;
// embed it and override individual Visit* methods.
type BaseSentenceVisitor struct {
	Self SentenceVisitor
}

func (b BaseSentenceVisitor) self() SentenceVisitor {
	if b.Self != nil {
		return b.Self
	}
	return b
}

func (b BaseSentenceVisitor) VisitPredicate(Predicate) {}

func (b BaseSentenceVisitor) VisitNegation(n Negation) {
	VisitSentence(n.Child, b.self())
}

func (b BaseSentenceVisitor) VisitConjunction(c Conjunction) {
	VisitSentence(c.Left, b.self())
	VisitSentence(c.Right, b.self())
}

func (b BaseSentenceVisitor) VisitDisjunction(d Disjunction) {
	VisitSentence(d.Left, b.self())
	VisitSentence(d.Right, b.self())
}

func (b BaseSentenceVisitor) VisitEquivalence(e Equivalence) {
	VisitSentence(e.Left, b.self())
	VisitSentence(e.Right, b.self())
}

func (b BaseSentenceVisitor) VisitImplication(i Implication) {
	VisitSentence(i.Antecedent, b.self())
	VisitSentence(i.Consequent, b.self())
}

func (b BaseSentenceVisitor) VisitUniversal(u UniversalQuantification) {
	VisitSentence(u.Child, b.self())
}

func (b BaseSentenceVisitor) VisitExistential(e ExistentialQuantification) {
	VisitSentence(e.Child, b.self())
}
