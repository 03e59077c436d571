package engine

import "github.com/gitrdm/gokanlogic/pkg/fol"

// ClausePair is two clauses queued as a candidate resolution step, before
// C6's Resolve has actually been run on them.
type ClausePair struct {
	A, B *fol.CNFClause
}

// PairFilter decides whether a pair of clauses is even worth queuing for
// resolution (§4.5's pair_filter). Returning false prunes the pair
// permanently; it is never reconsidered.
type PairFilter func(a, b *fol.CNFClause) bool

// PairPriority imposes a search order over queued pairs (§4.5's
// pair_priority): Less(p1, p2) reports whether p1 should be explored
// before p2. Ties are broken by queue (insertion) order.
type PairPriority interface {
	Less(p1, p2 ClausePair) bool
}

// AllPairs is the trivial filter: every pair is a candidate. Useful as a
// baseline or combined with a selective priority function.
func AllPairs(_, _ *fol.CNFClause) bool { return true }

// SetOfSupport restricts resolution to pairs where at least one clause is
// "supported" -- descended from the negated query rather than from the
// original knowledge base (§4.5's named strategy). supported reports
// whether a clause is currently in the support set; the returned filter
// closes over it so the support set can grow as the search proceeds.
func SetOfSupport(supported func(*fol.CNFClause) bool) PairFilter {
	return func(a, b *fol.CNFClause) bool {
		return supported(a) || supported(b)
	}
}

// unitPreference is a PairPriority that prefers pairs where at least one
// clause is a unit clause (a single literal), since unit resolution tends
// to shrink clauses fastest.
type unitPreference struct{}

// UnitPreference is the shared UnitPreference strategy instance.
var UnitPreference PairPriority = unitPreference{}

func (unitPreference) Less(p1, p2 ClausePair) bool {
	return unitScore(p1) < unitScore(p2)
}

func unitScore(p ClausePair) int {
	score := 0
	if !p.A.IsUnit() {
		score++
	}
	if !p.B.IsUnit() {
		score++
	}
	return score
}

// shortestClause is a PairPriority that prefers pairs whose combined
// literal count is smallest, a simple proxy for "closest to the empty
// clause".
type shortestClause struct{}

// ShortestClause is the shared ShortestClause strategy instance.
var ShortestClause PairPriority = shortestClause{}

func (shortestClause) Less(p1, p2 ClausePair) bool {
	return len(p1.A.Literals)+len(p1.B.Literals) < len(p2.A.Literals)+len(p2.B.Literals)
}

// fifoPriority treats every pair as equally preferred, which combined with
// stable dequeueing yields plain breadth-first exploration.
type fifoPriority struct{}

// FIFO is the strategy that imposes no extra ordering beyond insertion
// order. It is not the default: a query with no PairPriority uses
// UnitPreference.
var FIFO PairPriority = fifoPriority{}

func (fifoPriority) Less(ClausePair, ClausePair) bool { return false }
