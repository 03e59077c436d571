package fol

import (
	"fmt"
	"hash"

	"github.com/google/uuid"
)

// Identifier is any value with well-defined equality and string rendering.
// Two entities sharing an Identifier denote the same logical symbol.
type Identifier interface {
	fmt.Stringer
	// Equal reports whether id denotes the same symbol as other.
	Equal(other Identifier) bool
	// hash contributes this identifier's structure to a running FNV hash.
	hash(h hash.Hash64)
}

// Symbol is a plain named identifier, the common case: predicates,
// functions, and constants named by a string symbol.
type Symbol string

func (s Symbol) String() string { return string(s) }

func (s Symbol) Equal(other Identifier) bool {
	o, ok := other.(Symbol)
	return ok && s == o
}

func (s Symbol) hash(h hash.Hash64) {
	writeHashTag(h, tagSymbol)
	_, _ = h.Write([]byte(s))
}

// VariableDeclaration identifies a logic variable's binding site. Its
// Symbol is either the original Go-level Symbol a user wrote, or a
// StandardisedVariableSymbol produced by standardisation-apart (§4.2
// step 4). Equality is by pointer identity of the declaration, matching
// the invariant that two VariableReferences compare equal iff their
// declarations are equal -- distinct declarations with the same surface
// name are deliberately distinct.
type VariableDeclaration struct {
	id     uuid.UUID
	Symbol Identifier
}

// NewVariableDeclaration creates a fresh declaration for the given surface
// symbol. Every call (even with an identical symbol) yields a distinct,
// non-equal declaration.
func NewVariableDeclaration(symbol Identifier) *VariableDeclaration {
	return &VariableDeclaration{id: uuid.New(), Symbol: symbol}
}

func (d *VariableDeclaration) String() string { return d.Symbol.String() }

func (d *VariableDeclaration) Equal(other *VariableDeclaration) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.id == other.id
}

func (d *VariableDeclaration) hash(h hash.Hash64) {
	writeHashTag(h, tagVarDecl)
	_, _ = h.Write(d.id[:])
}

// StandardisedVariableSymbol is the Identifier assigned to a variable
// declaration produced by standardisation-apart. It carries the original
// surface symbol and a back-pointer to the whole sentence it was
// standardised from, used only by the explanation formatter -- never
// traversed for equality or hashing (§9).
type StandardisedVariableSymbol struct {
	id       uuid.UUID
	Original Identifier
	Source   Sentence
}

func newStandardisedVariableSymbol(original Identifier, source Sentence) *StandardisedVariableSymbol {
	return &StandardisedVariableSymbol{id: uuid.New(), Original: original, Source: source}
}

func (s *StandardisedVariableSymbol) String() string {
	return fmt.Sprintf("%s#%s", s.Original.String(), s.id.String()[:8])
}

func (s *StandardisedVariableSymbol) Equal(other Identifier) bool {
	o, ok := other.(*StandardisedVariableSymbol)
	return ok && s.id == o.id
}

func (s *StandardisedVariableSymbol) hash(h hash.Hash64) {
	writeHashTag(h, tagStdVarSym)
	_, _ = h.Write(s.id[:])
}

// SkolemFunctionSymbol is the Identifier of a function symbol introduced by
// Skolemisation in place of an existentially-quantified variable. It
// carries the standardised variable it replaces and the original sentence,
// again only for explanation purposes.
type SkolemFunctionSymbol struct {
	id       uuid.UUID
	Replaces *VariableDeclaration
	Source   Sentence
}

func newSkolemFunctionSymbol(replaces *VariableDeclaration, source Sentence) *SkolemFunctionSymbol {
	return &SkolemFunctionSymbol{id: uuid.New(), Replaces: replaces, Source: source}
}

func (s *SkolemFunctionSymbol) String() string {
	return fmt.Sprintf("sk_%s", s.id.String()[:8])
}

func (s *SkolemFunctionSymbol) Equal(other Identifier) bool {
	o, ok := other.(*SkolemFunctionSymbol)
	return ok && s.id == o.id
}

func (s *SkolemFunctionSymbol) hash(h hash.Hash64) {
	writeHashTag(h, tagSkolemSym)
	_, _ = h.Write(s.id[:])
}
