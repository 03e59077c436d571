package fol

import "strings"

// CNFSentence is an ordered set of CNFClauses produced by ToCNF (§3).
// "Set" semantics are enforced by Add: adding a clause equal to one
// already present is a no-op. Order is insertion order, which keeps
// iteration deterministic (§5).
type CNFSentence struct {
	clauses []*CNFClause
}

// NewCNFSentence builds a CNFSentence from clauses, deduplicating equal
// clauses through Add. No clause is dropped otherwise: an empty clause
// (⊥) passed in is kept as a member.
func NewCNFSentence(clauses []*CNFClause) *CNFSentence {
	s := &CNFSentence{}
	for _, c := range clauses {
		s.Add(c)
	}
	return s
}

// Add appends c unless an equal clause is already present; returns true iff
// c was new.
func (s *CNFSentence) Add(c *CNFClause) bool {
	for _, existing := range s.clauses {
		if existing.Equal(c) {
			return false
		}
	}
	s.clauses = append(s.clauses, c)
	return true
}

// Clauses returns the clauses in insertion order. Callers must not mutate
// the returned slice.
func (s *CNFSentence) Clauses() []*CNFClause { return s.clauses }

// Len returns the number of clauses.
func (s *CNFSentence) Len() int { return len(s.clauses) }

func (s *CNFSentence) String() string {
	parts := make([]string, len(s.clauses))
	for i, c := range s.clauses {
		parts[i] = "(" + c.String() + ")"
	}
	return strings.Join(parts, " ∧ ")
}
