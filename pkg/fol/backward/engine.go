// Package backward implements SLD-style backward chaining over definite
// clauses (§4.2's CNFDefiniteClause, specified at interface level only in
// the toolkit's own §6): given a knowledge base of "conjuncts ⇒
// consequent" clauses and a goal predicate, it lazily enumerates proofs by
// repeatedly selecting the leftmost outstanding subgoal and trying every
// clause whose consequent unifies with it, in the classic Prolog
// resolution strategy.
//
// Grounded on gokanlogic's own goal-stack search (search.go) for the
// depth-first-with-backtracking shape, expressed here as a producer
// goroutine feeding an unbuffered channel -- the idiomatic Go generator
// pattern -- so a caller can pull proofs one at a time and stop early
// without the engine needing to support resumable continuations itself.
package backward

import (
	"context"
	"sync"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// KnowledgeBase indexes definite clauses by their consequent's predicate
// identifier, so looking up candidate clauses for a subgoal is a single
// map lookup rather than a scan of every asserted fact and rule.
type KnowledgeBase struct {
	mu           sync.RWMutex
	byConsequent map[string][]fol.CNFDefiniteClause
}

// NewKnowledgeBase returns an empty backward-chaining knowledge base.
func NewKnowledgeBase() *KnowledgeBase {
	return &KnowledgeBase{byConsequent: map[string][]fol.CNFDefiniteClause{}}
}

// Add registers dc as usable to prove goals matching its consequent.
func (kb *KnowledgeBase) Add(dc fol.CNFDefiniteClause) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	key := dc.Consequent.ID.String()
	kb.byConsequent[key] = append(kb.byConsequent[key], dc)
}

func (kb *KnowledgeBase) candidatesFor(p fol.Predicate) []fol.CNFDefiniteClause {
	kb.mu.RLock()
	defer kb.mu.RUnlock()
	return append([]fol.CNFDefiniteClause(nil), kb.byConsequent[p.ID.String()]...)
}

// Step records, for one proof, which clause resolved which subgoal.
type Step struct {
	Goal    fol.Predicate
	Clause  fol.CNFDefiniteClause
	Unifier *fol.VariableSubstitution
}

// Proof is one successful derivation of the original goal: the overall
// substitution accumulated while proving it (every binding made along the
// way, including those of clause variables) and the sequence of clause uses
// that produced it, in resolution order.
type Proof struct {
	Goal         fol.Predicate
	Substitution *fol.VariableSubstitution
	Steps        []Step
}

// Query streams every proof of goal against a KnowledgeBase, depth-first
// over its definite clauses in the order they were Add-ed.
type Query struct {
	proofs chan proofOrErr
	cancel context.CancelFunc
	once   sync.Once
}

type proofOrErr struct {
	proof *Proof
	err   error
}

// CreateQuery starts a backward-chaining search for goal. The search runs
// in its own goroutine and blocks on sending to an unbuffered channel, so
// no work happens beyond what Next actually consumes.
func (kb *KnowledgeBase) CreateQuery(goal fol.Predicate) *Query {
	ctx, cancel := context.WithCancel(context.Background())
	q := &Query{proofs: make(chan proofOrErr), cancel: cancel}
	go q.run(ctx, kb, goal)
	return q
}

func (q *Query) run(ctx context.Context, kb *KnowledgeBase, goal fol.Predicate) {
	defer close(q.proofs)
	var steps []Step
	solve(ctx, kb, []fol.Predicate{goal}, fol.EmptySubstitution(), &steps, q.proofs, goal)
}

// solve resolves the leftmost of goals, backtracking over every clause
// whose (freshly renamed) consequent unifies with it. Each time goals
// becomes empty, a Proof is sent on out (blocking, so the receiver
// controls pacing); ctx cancellation unwinds the search early.
func solve(
	ctx context.Context,
	kb *KnowledgeBase,
	goals []fol.Predicate,
	subst *fol.VariableSubstitution,
	steps *[]Step,
	out chan<- proofOrErr,
	original fol.Predicate,
) bool {
	select {
	case <-ctx.Done():
		return true
	default:
	}

	if len(goals) == 0 {
		proof := &Proof{
			Goal:         fol.ApplyToPredicate(subst, original),
			Substitution: subst,
			Steps:        append([]Step(nil), *steps...),
		}
		select {
		case out <- proofOrErr{proof: proof}:
		case <-ctx.Done():
			return true
		}
		return false
	}

	goal := fol.ApplyToPredicate(subst, goals[0])
	rest := goals[1:]
	for _, dc := range kb.candidatesFor(goal) {
		renamed := dc.Rename()
		unified, ok := fol.TryUpdatePredicate(goal, renamed.Consequent, subst)
		if !ok {
			continue
		}
		newGoals := append(append([]fol.Predicate(nil), renamed.Conjuncts...), rest...)
		*steps = append(*steps, Step{Goal: goal, Clause: renamed, Unifier: unified})
		cancelled := solve(ctx, kb, newGoals, unified, steps, out, original)
		*steps = (*steps)[:len(*steps)-1]
		if cancelled {
			return true
		}
	}
	return false
}

// Next blocks until a proof is available, the search is exhausted (ok ==
// false, err == nil), or ctx is done.
func (q *Query) Next(ctx context.Context) (*Proof, bool, error) {
	select {
	case res, open := <-q.proofs:
		if !open {
			return nil, false, nil
		}
		if res.err != nil {
			return nil, false, res.err
		}
		return res.proof, true, nil
	case <-ctx.Done():
		return nil, false, folerr.Wrap(ctx.Err(), "backward.Query.Next")
	}
}

// Dispose stops the search goroutine. Safe to call multiple times and
// safe to call before the search has been fully drained.
func (q *Query) Dispose() {
	q.once.Do(q.cancel)
}
