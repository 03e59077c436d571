package fol

import (
	"fmt"
	"hash"
	"strings"
)

// Term is the tagged sum of the three FOL term variants: Constant,
// Function, and VariableReference. Terms are conceptually immutable;
// transformations (TransformTerm, substitution) return fresh values,
// sharing unchanged sub-terms by reference (§4.1 "share on no change").
type Term interface {
	fmt.Stringer
	// Equal reports deep structural equality: Constant/Function terms
	// compare equal iff their identifiers and argument sequences are
	// equal; VariableReferences compare equal iff their declarations are
	// equal (§3).
	Equal(other Term) bool
	// Hash is a pure function of structure (§3).
	Hash() uint64
	// IsGround reports whether the term contains no variable references.
	IsGround() bool
	// acceptTerm implements the visitor/transform double dispatch of §4.1.
	acceptTerm(v TermVisitor)
	transformTerm(t TermTransform) Term
}

// Constant is a ground, 0-ary term.
type Constant struct {
	ID Identifier
}

// NewConstant builds a Constant term for id.
func NewConstant(id Identifier) Constant { return Constant{ID: id} }

func (c Constant) String() string { return c.ID.String() }

func (c Constant) Equal(other Term) bool {
	o, ok := other.(Constant)
	return ok && c.ID.Equal(o.ID)
}

func (c Constant) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagConstant)
		c.ID.hash(h)
	})
}

func (c Constant) IsGround() bool { return true }

func (c Constant) acceptTerm(v TermVisitor)     { v.VisitConstant(c) }
func (c Constant) transformTerm(t TermTransform) Term { return t.TransformConstant(c) }

// Function is a compound term: an identifier applied to an ordered
// sequence of argument terms. It is ground iff every argument is ground.
type Function struct {
	ID   Identifier
	Args []Term
}

// NewFunction builds a Function term. args is stored as given (ordered);
// callers must not mutate the slice afterwards.
func NewFunction(id Identifier, args ...Term) Function {
	return Function{ID: id, Args: args}
}

func (f Function) String() string {
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", f.ID.String(), strings.Join(parts, ", "))
}

func (f Function) Equal(other Term) bool {
	o, ok := other.(Function)
	if !ok || !f.ID.Equal(o.ID) || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func (f Function) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagFunction)
		f.ID.hash(h)
		writeUint64(h, uint64(len(f.Args)))
		for _, a := range f.Args {
			writeUint64(h, a.Hash())
		}
	})
}

func (f Function) IsGround() bool {
	for _, a := range f.Args {
		if !a.IsGround() {
			return false
		}
	}
	return true
}

func (f Function) acceptTerm(v TermVisitor) { v.VisitFunction(f) }
func (f Function) transformTerm(t TermTransform) Term {
	return t.TransformFunction(f)
}

// VariableReference is a non-ground term referring to a VariableDeclaration.
// Two references compare equal iff their declarations are equal (by
// identity, §3) -- not by surface symbol.
type VariableReference struct {
	Decl *VariableDeclaration
}

// NewVariableReference builds a reference to decl.
func NewVariableReference(decl *VariableDeclaration) VariableReference {
	return VariableReference{Decl: decl}
}

func (v VariableReference) String() string { return v.Decl.String() }

func (v VariableReference) Equal(other Term) bool {
	o, ok := other.(VariableReference)
	return ok && v.Decl.Equal(o.Decl)
}

func (v VariableReference) Hash() uint64 {
	return structuralHash(func(h hash.Hash64) {
		writeHashTag(h, tagVarRef)
		v.Decl.hash(h)
	})
}

func (v VariableReference) IsGround() bool { return false }

func (v VariableReference) acceptTerm(vis TermVisitor) { vis.VisitVariableReference(v) }
func (v VariableReference) transformTerm(t TermTransform) Term {
	return t.TransformVariableReference(v)
}
