package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// QueryState is the lifecycle of a Query (§4.5, §6): a query is
// constructed Initialising, transitions to Running as soon as the negated
// goal's clauses have been seeded into its private store, and reaches
// Complete either because the empty clause was derived (a proof) or the
// pair queue ran dry (no proof found within this query's search space).
type QueryState int

const (
	Initialising QueryState = iota
	Running
	Complete
)

func (s QueryState) String() string {
	switch s {
	case Initialising:
		return "initialising"
	case Running:
		return "running"
	case Complete:
		return "complete"
	default:
		return "unknown"
	}
}

// ProofStep records one resolution: Resolvent was derived from Parent1 and
// Parent2 via Unifier. The explanation walker (explain.go) reconstructs a
// proof by following these back from the empty clause.
type ProofStep struct {
	Parent1, Parent2 *fol.CNFClause
	Unifier          *fol.VariableSubstitution
	Resolvent        *fol.CNFClause
}

// Query is a single resolution-refutation search against a private,
// disposable copy of a KnowledgeBase's clauses (§4.5, §6). It is driven
// either one Step at a time or to exhaustion via Complete, mirroring
// gokanlogic's own explicit search-loop state machine (search.go) rather
// than a single blocking call a caller cannot interleave or cancel
// mid-flight.
type Query struct {
	store    *ClauseStore
	filter   PairFilter
	priority PairPriority
	queue    []ClausePair
	support  map[*fol.CNFClause]bool

	state  QueryState
	result bool

	steps        map[*fol.CNFClause]ProofStep
	emptyClause  *fol.CNFClause
	negatedGoals []*fol.CNFClause

	logger *zap.SugaredLogger
}

// QueryConfig configures a Query's search strategy. A zero-value
// QueryConfig runs set-of-support resolution with unit preference, a
// reasonable default for most goal-directed queries (§4.5).
type QueryConfig struct {
	Filter   PairFilter
	Priority PairPriority
	Logger   *zap.SugaredLogger
}

func newQuery(base *ClauseStore, goal fol.Sentence, cfg QueryConfig) (*Query, error) {
	if goal == nil {
		return nil, folerr.New("engine.NewQuery", folerr.InvalidArgument, "goal sentence is nil")
	}
	negated := fol.ToCNF(fol.Negation{Child: goal})

	q := &Query{
		store:   base.Snapshot(),
		support: map[*fol.CNFClause]bool{},
		steps:   map[*fol.CNFClause]ProofStep{},
		logger:  cfg.Logger,
	}
	if q.logger == nil {
		q.logger = zap.NewNop().Sugar()
	}
	q.priority = cfg.Priority
	if q.priority == nil {
		q.priority = UnitPreference
	}
	baseFilter := cfg.Filter
	if baseFilter == nil {
		baseFilter = SetOfSupport(func(c *fol.CNFClause) bool { return q.support[c] })
	}
	q.filter = baseFilter

	for _, c := range negated.Clauses() {
		q.negatedGoals = append(q.negatedGoals, c)
		if c.IsEmpty() {
			q.emptyClause = c
			q.state = Complete
			q.result = true
			return q, nil
		}
	}

	for _, c := range q.negatedGoals {
		added, err := q.store.Add(c)
		if err != nil {
			return nil, folerr.Wrap(err, "engine.NewQuery")
		}
		if added {
			q.support[c] = true
			q.enqueuePairsFor(c)
		}
	}

	q.state = Running
	if len(q.queue) == 0 {
		q.state = Complete
		q.result = false
	}
	return q, nil
}

func (q *Query) enqueuePairsFor(c *fol.CNFClause) {
	for _, other := range q.store.Iterate() {
		if other == c {
			continue
		}
		if q.filter == nil || q.filter(c, other) {
			q.enqueue(ClausePair{A: c, B: other})
		}
	}
}

func (q *Query) enqueue(p ClausePair) {
	q.queue = append(q.queue, p)
	if q.priority == nil {
		return
	}
	// Stable insertion-sort by priority: small queues (typical for a
	// single query's local search frontier) make this cheap and it keeps
	// ties resolved by arrival order without a separate heap type.
	i := len(q.queue) - 1
	for i > 0 && q.priority.Less(q.queue[i], q.queue[i-1]) {
		q.queue[i], q.queue[i-1] = q.queue[i-1], q.queue[i]
		i--
	}
}

func (q *Query) popBest() ClausePair {
	p := q.queue[0]
	q.queue = q.queue[1:]
	return p
}

// IsComplete reports whether the query has reached a final state.
func (q *Query) IsComplete() bool { return q.state == Complete }

// State returns the query's current lifecycle state.
func (q *Query) State() QueryState { return q.state }

// Step performs a single resolution attempt: it dequeues the
// highest-priority remaining pair, computes every (θ, resolvent) C6's
// Resolve yields for it, and for each resolvent either declares victory
// (⊥ derived) or folds it into the private store, enqueueing any newly
// viable pairs. Reports whether the query reached completion as a result
// of this step.
func (q *Query) Step(ctx context.Context) (bool, error) {
	if q.state == Complete {
		return false, folerr.New("Query.Step", folerr.InvalidState, "query already complete")
	}
	select {
	case <-ctx.Done():
		return false, folerr.New("Query.Step", folerr.Cancelled, "%v", ctx.Err())
	default:
	}
	if len(q.queue) == 0 {
		q.state = Complete
		q.result = false
		return true, nil
	}

	pair := q.popBest()
	for _, r := range pair.A.Resolve(pair.B) {
		if r.Resolvent.IsEmpty() {
			q.steps[r.Resolvent] = ProofStep{Parent1: pair.A, Parent2: pair.B, Unifier: r.Unifier, Resolvent: r.Resolvent}
			q.emptyClause = r.Resolvent
			q.state = Complete
			q.result = true
			return true, nil
		}
		added, err := q.store.Add(r.Resolvent)
		if err != nil {
			return false, folerr.Wrap(err, "Query.Step")
		}
		if !added {
			continue
		}
		q.steps[r.Resolvent] = ProofStep{Parent1: pair.A, Parent2: pair.B, Unifier: r.Unifier, Resolvent: r.Resolvent}
		if q.support[pair.A] || q.support[pair.B] {
			q.support[r.Resolvent] = true
		}
		q.logger.Debugw("derived clause", "resolvent", r.Resolvent.String())
		q.enqueuePairsFor(r.Resolvent)
	}

	if len(q.queue) == 0 {
		q.state = Complete
		q.result = false
		return true, nil
	}
	return false, nil
}

// Complete drives the query to completion, one Step at a time, stopping
// early if ctx is cancelled.
func (q *Query) Complete(ctx context.Context) (bool, error) {
	for !q.IsComplete() {
		if _, err := q.Step(ctx); err != nil {
			return false, err
		}
	}
	return q.result, nil
}

// Result returns the query's outcome. Valid only once IsComplete is true.
func (q *Query) Result() (bool, error) {
	if q.state != Complete {
		return false, folerr.New("Query.Result", folerr.InvalidState, "query is not complete")
	}
	return q.result, nil
}

// Dispose releases the query's private clause store. After Dispose the
// Query must not be stepped further.
func (q *Query) Dispose() {
	q.store = nil
	q.steps = nil
}
