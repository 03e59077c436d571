package fol

import (
	"sort"
	"strings"
)

// CNFClause is a disjunction of literals, represented as a deterministically
// ordered sequence (§3): sorted by literal hash, ties allowed. This is a
// documented, accepted weakness -- hash collisions can make clauses that
// are logically equal compare unequal (§9) -- rather than a bug to silently
// paper over with a content-derived total order.
type CNFClause struct {
	Literals []Literal
}

// NewCNFClause builds a clause from literals, deduplicating and sorting by
// hash. Tautologies (a literal and its complement both present) are kept
// as they are: ToCNF drops clauses for which HasComplementaryLiterals
// holds, so that CNFClause itself stays a pure, total constructor over any
// literal set.
func NewCNFClause(literals []Literal) *CNFClause {
	dedup := make([]Literal, 0, len(literals))
	for _, l := range literals {
		found := false
		for _, d := range dedup {
			if d.Equal(l) {
				found = true
				break
			}
		}
		if !found {
			dedup = append(dedup, l)
		}
	}
	sort.SliceStable(dedup, func(i, j int) bool {
		return dedup[i].Hash() < dedup[j].Hash()
	})
	return &CNFClause{Literals: dedup}
}

// EmptyClause is the clause with zero literals (logically false, ⊥).
func EmptyClause() *CNFClause { return &CNFClause{Literals: nil} }

func (c *CNFClause) String() string {
	if len(c.Literals) == 0 {
		return "⊥"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " ∨ ")
}

// IsEmpty reports whether c has zero literals.
func (c *CNFClause) IsEmpty() bool { return len(c.Literals) == 0 }

// IsUnit reports whether c has exactly one literal.
func (c *CNFClause) IsUnit() bool { return len(c.Literals) == 1 }

// PositiveCount returns the number of non-negated literals.
func (c *CNFClause) PositiveCount() int {
	n := 0
	for _, l := range c.Literals {
		if !l.IsNegated {
			n++
		}
	}
	return n
}

// IsHorn reports whether c has at most one positive literal.
func (c *CNFClause) IsHorn() bool { return c.PositiveCount() <= 1 }

// IsDefinite reports whether c has exactly one positive literal.
func (c *CNFClause) IsDefinite() bool { return c.PositiveCount() == 1 }

// IsGoal reports whether c has zero positive literals (all negated).
func (c *CNFClause) IsGoal() bool { return c.PositiveCount() == 0 && len(c.Literals) > 0 }

// Equal reports whether c and other have equal ordered literal sequences.
func (c *CNFClause) Equal(other *CNFClause) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.Literals) != len(other.Literals) {
		return false
	}
	for i := range c.Literals {
		if !c.Literals[i].Equal(other.Literals[i]) {
			return false
		}
	}
	return true
}

// Hash is a pure function of the ordered literal sequence.
func (c *CNFClause) Hash() uint64 {
	h := newHasher()
	writeUint64(h, uint64(len(c.Literals)))
	for _, l := range c.Literals {
		writeUint64(h, l.Hash())
	}
	return h.Sum64()
}

// HasComplementaryLiterals reports whether c contains both some literal l
// and its complement -- i.e. c is a tautology.
func (c *CNFClause) HasComplementaryLiterals() bool {
	for i := range c.Literals {
		for j := range c.Literals {
			if i != j && c.Literals[i].Predicate.Equal(c.Literals[j].Predicate) &&
				c.Literals[i].IsNegated != c.Literals[j].IsNegated {
				return true
			}
		}
	}
	return false
}

// Subsumes reports whether there exists a substitution θ such that every
// literal in c appears (after applying θ) in other (§4.4). It is the sole
// semantic predicate C8's correctness depends on.
func (c *CNFClause) Subsumes(other *CNFClause) bool {
	return subsumesBacktrack(c.Literals, other.Literals, EmptySubstitution())
}

// subsumesBacktrack tries to match each of self's remaining literals
// (selfLits) against some literal of other, threading one substitution
// across the whole backtracking search.
func subsumesBacktrack(selfLits []Literal, other []Literal, sub *VariableSubstitution) bool {
	if len(selfLits) == 0 {
		return true
	}
	head, rest := selfLits[0], selfLits[1:]
	for _, cand := range other {
		if head.IsNegated != cand.IsNegated {
			continue
		}
		trial := sub.Builder()
		if !tryUpdateInPlacePredicate(head.Predicate, cand.Predicate, trial) {
			continue
		}
		next := trial.Snapshot()
		// θ may only instantiate c's side: θ(head) must be cand itself, not
		// merely unifiable with it.
		if !ApplyToPredicate(next, head.Predicate).Equal(cand.Predicate) {
			continue
		}
		if subsumesBacktrack(rest, other, next) {
			return true
		}
	}
	return false
}

// ResolutionResult pairs the unifier used with the resolvent clause
// produced from one literal pair.
type ResolutionResult struct {
	Unifier   *VariableSubstitution
	Resolvent *CNFClause
	// SelfLiteral/OtherLiteral record which literals were eliminated, used
	// by the explanation formatter.
	SelfLiteral, OtherLiteral Literal
}

// Resolve enumerates every resolution of c against other: for each pair of
// literals with opposite signs and unifiable predicates, it yields
// (θ, (c \ {l}) ∪ θ(other \ {l'})), with factoring applied (§4.4).
func (c *CNFClause) Resolve(other *CNFClause) []ResolutionResult {
	var results []ResolutionResult
	for _, l := range c.Literals {
		for _, lp := range other.Literals {
			if l.IsNegated == lp.IsNegated {
				continue
			}
			theta, ok := TryCreatePredicate(l.Predicate, lp.Predicate)
			if !ok {
				continue
			}
			remaining := make([]Literal, 0, len(c.Literals)+len(other.Literals)-2)
			for _, x := range c.Literals {
				if x.Equal(l) {
					continue
				}
				remaining = append(remaining, ApplyToLiteral(theta, x))
			}
			for _, y := range other.Literals {
				if y.Equal(lp) {
					continue
				}
				remaining = append(remaining, ApplyToLiteral(theta, y))
			}
			results = append(results, ResolutionResult{
				Unifier:     theta,
				Resolvent:   NewCNFClause(remaining), // NewCNFClause dedups => factoring
				SelfLiteral: l,
				OtherLiteral: lp,
			})
		}
	}
	return results
}

// AsDefiniteClause views c as a CNFDefiniteClause if IsDefinite() holds.
func (c *CNFClause) AsDefiniteClause() (CNFDefiniteClause, bool) {
	if !c.IsDefinite() {
		return CNFDefiniteClause{}, false
	}
	var consequent Predicate
	conjuncts := make([]Predicate, 0, len(c.Literals)-1)
	for _, l := range c.Literals {
		if !l.IsNegated {
			consequent = l.Predicate
		} else {
			conjuncts = append(conjuncts, l.Predicate)
		}
	}
	return CNFDefiniteClause{Clause: c, Consequent: consequent, Conjuncts: conjuncts}, true
}

// CNFDefiniteClause is the refinement of CNFClause exposing the single
// positive literal's predicate (Consequent) and the negated literals'
// predicates (Conjuncts), i.e. "conjuncts ⇒ consequent" (§3).
type CNFDefiniteClause struct {
	Clause     *CNFClause
	Consequent Predicate
	Conjuncts  []Predicate
}

// Rename returns a copy of d with every variable replaced by a fresh
// declaration sharing the same surface symbol. This is the clause-renaming
// step SLD resolution performs on every use of a program clause (§4.5
// "definite clause" re-use in C9's backward chaining) so that two
// concurrent uses of the same clause in one proof don't alias variables.
func (d CNFDefiniteClause) Rename() CNFDefiniteClause {
	seen := map[*VariableDeclaration]*VariableDeclaration{}
	var collect func(t Term)
	collect = func(t Term) {
		VisitTerm(t, renameCollectVisitor{seen: seen})
	}
	for _, a := range d.Consequent.Args {
		collect(a)
	}
	for _, p := range d.Conjuncts {
		for _, a := range p.Args {
			collect(a)
		}
	}
	b := NewSubstitutionBuilder()
	for old, fresh := range seen {
		b.Bind(old, NewVariableReference(fresh))
	}
	sub := b.Snapshot()
	renamed := CNFDefiniteClause{
		Consequent: ApplyToPredicate(sub, d.Consequent),
		Conjuncts:  make([]Predicate, len(d.Conjuncts)),
	}
	for i, p := range d.Conjuncts {
		renamed.Conjuncts[i] = ApplyToPredicate(sub, p)
	}
	lits := make([]Literal, 0, len(d.Conjuncts)+1)
	lits = append(lits, PositiveLiteral(renamed.Consequent))
	for _, p := range renamed.Conjuncts {
		lits = append(lits, NegativeLiteral(p))
	}
	renamed.Clause = NewCNFClause(lits)
	return renamed
}

type renameCollectVisitor struct {
	seen map[*VariableDeclaration]*VariableDeclaration
}

func (r renameCollectVisitor) VisitConstant(Constant) {}

func (r renameCollectVisitor) VisitFunction(f Function) {
	for _, a := range f.Args {
		VisitTerm(a, r)
	}
}

func (r renameCollectVisitor) VisitVariableReference(v VariableReference) {
	if _, ok := r.seen[v.Decl]; !ok {
		r.seen[v.Decl] = NewVariableDeclaration(v.Decl.Symbol)
	}
}

func (d CNFDefiniteClause) String() string {
	if len(d.Conjuncts) == 0 {
		return d.Consequent.String()
	}
	parts := make([]string, len(d.Conjuncts))
	for i, p := range d.Conjuncts {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ∧ ") + " ⇒ " + d.Consequent.String()
}
