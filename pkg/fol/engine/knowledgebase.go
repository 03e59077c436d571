package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/backward"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// KnowledgeBase is the top-level facade of §6: a set of asserted
// sentences, exposed both through resolution refutation (Query, this
// package) and backward chaining over the definite-clause subset
// (CreateBackwardQuery, pkg/fol/backward).
type KnowledgeBase struct {
	store    *ClauseStore
	definite *backward.KnowledgeBase
	cfg      QueryConfig
	logger   *zap.SugaredLogger
}

// Option configures a KnowledgeBase at construction.
type Option func(*KnowledgeBase)

// WithQueryConfig sets the default strategy new resolution queries use.
func WithQueryConfig(cfg QueryConfig) Option {
	return func(kb *KnowledgeBase) { kb.cfg = cfg }
}

// WithLogger attaches a zap logger; Tell/Ask log at debug level.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(kb *KnowledgeBase) { kb.logger = logger }
}

// New returns an empty KnowledgeBase.
func New(opts ...Option) *KnowledgeBase {
	kb := &KnowledgeBase{
		store:    NewClauseStore(),
		definite: backward.NewKnowledgeBase(),
		logger:   zap.NewNop().Sugar(),
	}
	for _, o := range opts {
		o(kb)
	}
	if kb.cfg.Logger == nil {
		kb.cfg.Logger = kb.logger
	}
	return kb
}

// Tell asserts sentence: it is converted to CNF (§3) and every resulting
// clause is added to both the resolution store and, when the clause is
// definite, the backward-chaining index (§6). Reports how many of the
// clauses were new (a clause subsumed by one already known contributes
// nothing and is not recounted).
func (kb *KnowledgeBase) Tell(sentence fol.Sentence) (int, error) {
	cnf := fol.ToCNF(sentence)
	added := 0
	for _, c := range cnf.Clauses() {
		isNew, err := kb.store.AddRefusingEmpty(c)
		if err != nil {
			return added, folerr.Wrap(err, "KnowledgeBase.Tell")
		}
		if !isNew {
			continue
		}
		added++
		if dc, ok := c.AsDefiniteClause(); ok {
			kb.definite.Add(dc)
		}
		kb.logger.Debugw("told clause", "clause", c.String())
	}
	return added, nil
}

// TellMany asserts every sentence in order, returning the total count of
// newly added clauses.
func (kb *KnowledgeBase) TellMany(sentences []fol.Sentence) (int, error) {
	total := 0
	for _, s := range sentences {
		n, err := kb.Tell(s)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// CreateQuery starts a resolution-refutation search for goal, using the
// knowledge base's configured default strategy.
func (kb *KnowledgeBase) CreateQuery(goal fol.Sentence) (*Query, error) {
	return newQuery(kb.store, goal, kb.cfg)
}

// CreateQueryWithConfig is CreateQuery with a per-call strategy override.
func (kb *KnowledgeBase) CreateQueryWithConfig(goal fol.Sentence, cfg QueryConfig) (*Query, error) {
	return newQuery(kb.store, goal, cfg)
}

// Ask is the common-case convenience wrapping CreateQuery + Complete +
// Result + Dispose for a yes/no answer.
func (kb *KnowledgeBase) Ask(ctx context.Context, goal fol.Sentence) (bool, error) {
	q, err := kb.CreateQuery(goal)
	if err != nil {
		return false, err
	}
	defer q.Dispose()
	return q.Complete(ctx)
}

// CreateBackwardQuery starts a backward-chaining proof search for goal
// over the knowledge base's definite clauses (§4.2, §6).
func (kb *KnowledgeBase) CreateBackwardQuery(goal fol.Predicate) *backward.Query {
	return kb.definite.CreateQuery(goal)
}

// Len returns the number of clauses currently in the resolution store.
func (kb *KnowledgeBase) Len() int { return kb.store.Len() }
