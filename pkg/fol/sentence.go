package fol

import (
	"fmt"
	"hash"
	"strings"
)

// Sentence is the tagged sum of the eight FOL sentence variants (§3).
// Like Term, sentences are conceptually immutable and transformations
// share unchanged sub-trees by reference.
type Sentence interface {
	fmt.Stringer
	Equal(other Sentence) bool
	Hash() uint64
	acceptSentence(v SentenceVisitor)
	transformSentence(t SentenceTransform) Sentence
}

// Predicate is an atomic sentence: an identifier applied to an ordered
// sequence of argument terms.
type Predicate struct {
	ID   Identifier
	Args []Term
}

// NewPredicate builds a Predicate sentence.
func NewPredicate(id Identifier, args ...Term) Predicate {
	return Predicate{ID: id, Args: args}
}

func (p Predicate) String() string {
	if len(p.Args) == 0 {
		return p.ID.String()
	}
	parts := make([]string, len(p.Args))
	for i, a := range p.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", p.ID.String(), strings.Join(parts, ", "))
}

func (p Predicate) Equal(other Sentence) bool {
	o, ok := other.(Predicate)
	if !ok || !p.ID.Equal(o.ID) || len(p.Args) != len(o.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (p Predicate) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagPredicate)
		p.ID.hash(h)
		writeUint64(h, uint64(len(p.Args)))
		for _, a := range p.Args {
			writeUint64(h, a.Hash())
		}
	})
}

func (p Predicate) acceptSentence(v SentenceVisitor) { v.VisitPredicate(p) }
func (p Predicate) transformSentence(t SentenceTransform) Sentence {
	return t.TransformPredicate(p)
}

// Negation is ¬child.
type Negation struct{ Child Sentence }

func NewNegation(child Sentence) Negation { return Negation{Child: child} }

func (n Negation) String() string { return fmt.Sprintf("¬%s", parenIfCompound(n.Child)) }

func (n Negation) Equal(other Sentence) bool {
	o, ok := other.(Negation)
	return ok && n.Child.Equal(o.Child)
}

func (n Negation) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagNegation)
		writeUint64(h, n.Child.Hash())
	})
}

func (n Negation) acceptSentence(v SentenceVisitor) { v.VisitNegation(n) }
func (n Negation) transformSentence(t SentenceTransform) Sentence {
	return t.TransformNegation(n)
}

// Conjunction is left ∧ right.
type Conjunction struct{ Left, Right Sentence }

func NewConjunction(left, right Sentence) Conjunction { return Conjunction{Left: left, Right: right} }

func (c Conjunction) String() string {
	return fmt.Sprintf("%s ∧ %s", parenIfCompound(c.Left), parenIfCompound(c.Right))
}

func (c Conjunction) Equal(other Sentence) bool {
	o, ok := other.(Conjunction)
	return ok && c.Left.Equal(o.Left) && c.Right.Equal(o.Right)
}

func (c Conjunction) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagConjunction)
		writeUint64(h, c.Left.Hash())
		writeUint64(h, c.Right.Hash())
	})
}

func (c Conjunction) acceptSentence(v SentenceVisitor) { v.VisitConjunction(c) }
func (c Conjunction) transformSentence(t SentenceTransform) Sentence {
	return t.TransformConjunction(c)
}

// Disjunction is left ∨ right.
type Disjunction struct{ Left, Right Sentence }

func NewDisjunction(left, right Sentence) Disjunction { return Disjunction{Left: left, Right: right} }

func (d Disjunction) String() string {
	return fmt.Sprintf("%s ∨ %s", parenIfCompound(d.Left), parenIfCompound(d.Right))
}

func (d Disjunction) Equal(other Sentence) bool {
	o, ok := other.(Disjunction)
	return ok && d.Left.Equal(o.Left) && d.Right.Equal(o.Right)
}

func (d Disjunction) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagDisjunction)
		writeUint64(h, d.Left.Hash())
		writeUint64(h, d.Right.Hash())
	})
}

func (d Disjunction) acceptSentence(v SentenceVisitor) { v.VisitDisjunction(d) }
func (d Disjunction) transformSentence(t SentenceTransform) Sentence {
	return t.TransformDisjunction(d)
}

// Equivalence is left ⇔ right.
type Equivalence struct{ Left, Right Sentence }

func NewEquivalence(left, right Sentence) Equivalence { return Equivalence{Left: left, Right: right} }

func (e Equivalence) String() string {
	return fmt.Sprintf("%s ⇔ %s", parenIfCompound(e.Left), parenIfCompound(e.Right))
}

func (e Equivalence) Equal(other Sentence) bool {
	o, ok := other.(Equivalence)
	return ok && e.Left.Equal(o.Left) && e.Right.Equal(o.Right)
}

func (e Equivalence) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagEquivalence)
		writeUint64(h, e.Left.Hash())
		writeUint64(h, e.Right.Hash())
	})
}

func (e Equivalence) acceptSentence(v SentenceVisitor) { v.VisitEquivalence(e) }
func (e Equivalence) transformSentence(t SentenceTransform) Sentence {
	return t.TransformEquivalence(e)
}

// Implication is antecedent ⇒ consequent.
type Implication struct{ Antecedent, Consequent Sentence }

func NewImplication(antecedent, consequent Sentence) Implication {
	return Implication{Antecedent: antecedent, Consequent: consequent}
}

func (i Implication) String() string {
	return fmt.Sprintf("%s ⇒ %s", parenIfCompound(i.Antecedent), parenIfCompound(i.Consequent))
}

func (i Implication) Equal(other Sentence) bool {
	o, ok := other.(Implication)
	return ok && i.Antecedent.Equal(o.Antecedent) && i.Consequent.Equal(o.Consequent)
}

func (i Implication) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagImplication)
		writeUint64(h, i.Antecedent.Hash())
		writeUint64(h, i.Consequent.Hash())
	})
}

func (i Implication) acceptSentence(v SentenceVisitor) { v.VisitImplication(i) }
func (i Implication) transformSentence(t SentenceTransform) Sentence {
	return t.TransformImplication(i)
}

// UniversalQuantification is ∀variable.child.
type UniversalQuantification struct {
	Variable *VariableDeclaration
	Child    Sentence
}

func NewUniversalQuantification(variable *VariableDeclaration, child Sentence) UniversalQuantification {
	return UniversalQuantification{Variable: variable, Child: child}
}

func (u UniversalQuantification) String() string {
	return fmt.Sprintf("∀%s.%s", u.Variable.String(), parenIfCompound(u.Child))
}

func (u UniversalQuantification) Equal(other Sentence) bool {
	o, ok := other.(UniversalQuantification)
	return ok && u.Variable.Equal(o.Variable) && u.Child.Equal(o.Child)
}

func (u UniversalQuantification) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagForall)
		u.Variable.hash(h)
		writeUint64(h, u.Child.Hash())
	})
}

func (u UniversalQuantification) acceptSentence(v SentenceVisitor) { v.VisitUniversal(u) }
func (u UniversalQuantification) transformSentence(t SentenceTransform) Sentence {
	return t.TransformUniversal(u)
}

// ExistentialQuantification is ∃variable.child.
type ExistentialQuantification struct {
	Variable *VariableDeclaration
	Child    Sentence
}

func NewExistentialQuantification(variable *VariableDeclaration, child Sentence) ExistentialQuantification {
	return ExistentialQuantification{Variable: variable, Child: child}
}

func (e ExistentialQuantification) String() string {
	return fmt.Sprintf("∃%s.%s", e.Variable.String(), parenIfCompound(e.Child))
}

func (e ExistentialQuantification) Equal(other Sentence) bool {
	o, ok := other.(ExistentialQuantification)
	return ok && e.Variable.Equal(o.Variable) && e.Child.Equal(o.Child)
}

func (e ExistentialQuantification) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagExists)
		e.Variable.hash(h)
		writeUint64(h, e.Child.Hash())
	})
}

func (e ExistentialQuantification) acceptSentence(v SentenceVisitor) { v.VisitExistential(e) }
func (e ExistentialQuantification) transformSentence(t SentenceTransform) Sentence {
	return t.TransformExistential(e)
}

func parenIfCompound(s Sentence) string {
	switch s.(type) {
	case Predicate:
		return s.String()
	default:
		return fmt.Sprintf("(%s)", s.String())
	}
}
