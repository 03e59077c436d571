package fol

import (
	"hash"
	"hash/fnv"
)

// hashTag disambiguates structurally-different variants that might
// otherwise hash identically (e.g. an empty Conjunction vs an empty
// Disjunction). Every Term/Sentence/Identifier variant writes its tag
// before its payload.
//
// §9 documents hash collisions as a known, accepted weakness of clause
// canonicalisation (ordering clauses by literal hash code); this hasher
// does not attempt to be collision-free, only structural.
type hashTag byte

const (
	tagSymbol hashTag = iota
	tagVarDecl
	tagStdVarSym
	tagSkolemSym
	tagConstant
	tagFunction
	tagVarRef
	tagPredicate
	tagNegation
	tagConjunction
	tagDisjunction
	tagEquivalence
	tagImplication
	tagForall
	tagExists
	tagLiteral
)

func writeHashTag(h hash.Hash64, tag hashTag) {
	_, _ = h.Write([]byte{byte(tag)})
}

func newHasher() hash.Hash64 { return fnv.New64a() }

// structuralHash runs write against a fresh hasher and returns its digest.
// It is the single entry point every Hash() method funnels through so the
// combination strategy (FNV-1a, tag-then-payload) stays consistent.
func structuralHash(write func(hash.Hash64)) uint64 {
	h := newHasher()
	write(h)
	return h.Sum64()
}

func writeUint64(h hash.Hash64, v uint64) {
	var buf [8]byte
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
	_, _ = h.Write(buf[:])
}
