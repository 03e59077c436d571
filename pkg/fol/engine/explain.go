package engine

import (
	"fmt"
	"strings"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// Proof is the ordered sequence of resolution steps that derived the empty
// clause, topologically sorted so that a parent which was itself derived
// appears as an earlier step's resolvent. Other parents are negated-goal
// premises or knowledge-base clauses.
type Proof struct {
	NegatedGoals []*fol.CNFClause
	Steps        []ProofStep
}

// Explain reconstructs the Proof for a query that completed with
// Result() == true. It walks ProofStep.Parent1/Parent2 back from the
// empty clause, following only the steps actually used, so an explanation
// never mentions a dead-end resolvent the search also happened to derive.
func (q *Query) Explain() (*Proof, error) {
	if q.state != Complete {
		return nil, folerr.New("Query.Explain", folerr.InvalidState, "query is not complete")
	}
	if !q.result {
		return nil, folerr.New("Query.Explain", folerr.InvalidState, "query did not find a proof")
	}

	used := map[*fol.CNFClause]bool{}
	var order []*fol.CNFClause
	var visit func(c *fol.CNFClause)
	visit = func(c *fol.CNFClause) {
		if used[c] {
			return
		}
		used[c] = true
		if step, ok := q.steps[c]; ok {
			visit(step.Parent1)
			visit(step.Parent2)
		}
		order = append(order, c)
	}
	visit(q.emptyClause)

	proof := &Proof{NegatedGoals: q.negatedGoals}
	for _, c := range order {
		if step, ok := q.steps[c]; ok {
			proof.Steps = append(proof.Steps, step)
		}
	}
	return proof, nil
}

// String renders the proof using each clause's own String() method --
// callers wanting stable short variable/Skolem labels across the whole
// proof should use format.Formatter.ProofStep instead.
func (p *Proof) String() string {
	var b strings.Builder
	fmt.Fprintln(&b, "negated goal:")
	for _, c := range p.NegatedGoals {
		fmt.Fprintf(&b, "  %s\n", c.String())
	}
	fmt.Fprintln(&b, "derivation:")
	for i, step := range p.Steps {
		fmt.Fprintf(&b, "  %d. %s  and  %s  [%s]  ⊢  %s\n",
			i+1, step.Parent1.String(), step.Parent2.String(), step.Unifier.String(), step.Resolvent.String())
	}
	return b.String()
}
