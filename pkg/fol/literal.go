package fol

import (
	"fmt"
	"hash"
)

// Literal is an atomic predicate application or its negation (§3).
// Equality includes sign: P(a) and ¬P(a) are never equal.
type Literal struct {
	IsNegated bool
	Predicate Predicate
}

// NewLiteral builds a positive or negated literal over pred.
func NewLiteral(isNegated bool, pred Predicate) Literal {
	return Literal{IsNegated: isNegated, Predicate: pred}
}

// PositiveLiteral builds ¬-free literal.
func PositiveLiteral(pred Predicate) Literal { return Literal{IsNegated: false, Predicate: pred} }

// NegativeLiteral builds a negated literal.
func NegativeLiteral(pred Predicate) Literal { return Literal{IsNegated: true, Predicate: pred} }

func (l Literal) String() string {
	if l.IsNegated {
		return fmt.Sprintf("¬%s", l.Predicate.String())
	}
	return l.Predicate.String()
}

// Equal reports equality including sign.
func (l Literal) Equal(other Literal) bool {
	return l.IsNegated == other.IsNegated && l.Predicate.Equal(other.Predicate)
}

// Complement returns the literal with sign flipped; ComplementOf a ∨ with
// l means l and l.Complement() can resolve.
func (l Literal) Complement() Literal {
	return Literal{IsNegated: !l.IsNegated, Predicate: l.Predicate}
}

// Hash is a pure function of structure, including sign.
func (l Literal) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagLiteral)
		if l.IsNegated {
			writeUint64(h, 1)
		} else {
			writeUint64(h, 0)
		}
		writeUint64(h, l.Predicate.Hash())
	})
}

// AsSentence renders the literal back as a Sentence (Predicate, or
// Negation of one), used when assembling clauses back into sentences.
func (l Literal) AsSentence() Sentence {
	if l.IsNegated {
		return Negation{Child: l.Predicate}
	}
	return l.Predicate
}
