// Package engine implements the resolution-refutation prover (C7, §4.5)
// and the KnowledgeBase/Query facade (§6) built on top of it.
//
// Grounded on gokanlogic's search.go/solver.go state-machine style (an
// explicit Step()/Complete() pair rather than a blocking call, so a caller
// can interleave queries, impose a deadline, or drive many queries
// concurrently) and on the resolution/SOS literature reflected in
// other_examples/Talismanch1k-neuro-solver and other_examples/bbiangul-go-reason.
package engine

import (
	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
	"github.com/gitrdm/gokanlogic/pkg/fol/index"
)

// ClauseStore holds a set of clauses subsumption-indexed by C8, used both
// as the permanent knowledge base and as a per-query scratch copy.
type ClauseStore struct {
	idx *index.FVIndex[*fol.CNFClause]
}

// NewClauseStore builds an empty store using the default feature selector.
func NewClauseStore() *ClauseStore {
	return &ClauseStore{idx: index.New[*fol.CNFClause](index.DefaultFeatureSelector)}
}

// Add inserts c unless it is subsumed by an already-stored clause, pruning
// any stored clause c subsumes (§4.5's subsumption-aware store). Reports
// whether c was actually added.
func (s *ClauseStore) Add(c *fol.CNFClause) (bool, error) {
	return s.idx.TryReplaceSubsumed(c, c)
}

// Iterate returns every stored clause in deterministic order.
func (s *ClauseStore) Iterate() []*fol.CNFClause {
	entries := s.idx.Iterate()
	clauses := make([]*fol.CNFClause, len(entries))
	for i, e := range entries {
		clauses[i] = e.Clause
	}
	return clauses
}

// Len returns the number of stored clauses.
func (s *ClauseStore) Len() int { return s.idx.Len() }

// Snapshot returns an independent copy of s -- a fresh store pre-populated
// with s's current clauses -- for use as a query's private scratch space
// (§4.5 "dispose"): derived clauses accumulate there and never leak back
// into the permanent knowledge base.
func (s *ClauseStore) Snapshot() *ClauseStore {
	cp := NewClauseStore()
	for _, c := range s.Iterate() {
		if _, err := cp.Add(c); err != nil {
			// Add only fails on the empty clause, which a well-formed
			// ClauseStore never stores (ToCNF never emits ⊥ as a
			// standalone member the engine would re-add; the empty
			// clause is detected and handled before ever reaching Add).
			panic(err)
		}
	}
	return cp
}

// Candidate is one potential resolution step the store can produce for a
// given clause against its own contents.
type Candidate struct {
	Other     *fol.CNFClause
	Unifier   *fol.VariableSubstitution
	Resolvent *fol.CNFClause
}

// FindResolutions returns every resolvable pair of query against a stored
// clause passing filter, each already resolved into its candidate
// resolvents (§4.5).
func (s *ClauseStore) FindResolutions(query *fol.CNFClause, filter PairFilter) []Candidate {
	var out []Candidate
	for _, other := range s.Iterate() {
		if other == query {
			continue
		}
		if filter != nil && !filter(query, other) {
			continue
		}
		for _, r := range query.Resolve(other) {
			out = append(out, Candidate{Other: other, Unifier: r.Unifier, Resolvent: r.Resolvent})
		}
	}
	return out
}

var errEmptyClauseKey = folerr.New("ClauseStore.Add", folerr.InvalidArgument, "the empty clause cannot be stored as a knowledge-base member")

// AddRefusingEmpty is Add, but rejects the empty clause outright instead of
// delegating to the index (used by Tell, where deriving ⊥ from the user's
// own assertions means the knowledge base is contradictory and callers
// should be told directly rather than via the generic index error).
func (s *ClauseStore) AddRefusingEmpty(c *fol.CNFClause) (bool, error) {
	if c.IsEmpty() {
		return false, errEmptyClauseKey
	}
	return s.Add(c)
}
