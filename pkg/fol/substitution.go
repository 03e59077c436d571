package fol

import (
	"fmt"
	"strings"
)

// VariableSubstitution maps VariableReference declarations to terms. It is
// the read-only, freely shareable form (§3): once built it is never
// mutated, so it can be passed across engine/goroutine boundaries as a
// plain snapshot, mirroring gokanlogic's own Substitution.Clone/Bind split
// in core.go generalized into two distinct types instead of one mutable
// map that happens to get cloned on every write.
type VariableSubstitution struct {
	bindings map[*VariableDeclaration]Term
}

// EmptySubstitution is the substitution with no bindings.
func EmptySubstitution() *VariableSubstitution {
	return &VariableSubstitution{bindings: map[*VariableDeclaration]Term{}}
}

// Lookup returns the term bound to decl and true, or (nil, false) if decl
// is unbound.
func (s *VariableSubstitution) Lookup(decl *VariableDeclaration) (Term, bool) {
	if s == nil {
		return nil, false
	}
	t, ok := s.bindings[decl]
	return t, ok
}

// Len returns the number of bindings.
func (s *VariableSubstitution) Len() int {
	if s == nil {
		return 0
	}
	return len(s.bindings)
}

// Extend returns a new VariableSubstitution with decl bound to term added
// to s's bindings. s is never mutated.
func (s *VariableSubstitution) Extend(decl *VariableDeclaration, term Term) *VariableSubstitution {
	b := s.Builder()
	b.Bind(decl, term)
	return b.Snapshot()
}

// Builder returns a mutable builder pre-populated with s's bindings (or
// empty, if s is nil), matching §9's "mutable builder inside an otherwise
// immutable map" idiom.
func (s *VariableSubstitution) Builder() *SubstitutionBuilder {
	b := &SubstitutionBuilder{bindings: map[*VariableDeclaration]Term{}}
	if s != nil {
		for k, v := range s.bindings {
			b.bindings[k] = v
		}
	}
	return b
}

func (s *VariableSubstitution) String() string {
	if s.Len() == 0 {
		return "{}"
	}
	parts := make([]string, 0, len(s.bindings))
	for decl, term := range s.bindings {
		parts = append(parts, fmt.Sprintf("%s ↦ %s", decl.String(), term.String()))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// SubstitutionBuilder is the mutable, exclusively-owned-by-one-engine
// counterpart to VariableSubstitution (§3, §5). Callers mutate it on a
// hot path (e.g. inside a single resolution step) and call Snapshot once
// to hand a read-only value back across a boundary.
type SubstitutionBuilder struct {
	bindings map[*VariableDeclaration]Term
}

// NewSubstitutionBuilder returns an empty builder.
func NewSubstitutionBuilder() *SubstitutionBuilder {
	return &SubstitutionBuilder{bindings: map[*VariableDeclaration]Term{}}
}

// Lookup mirrors VariableSubstitution.Lookup.
func (b *SubstitutionBuilder) Lookup(decl *VariableDeclaration) (Term, bool) {
	t, ok := b.bindings[decl]
	return t, ok
}

// Bind adds or overwrites decl's binding in place.
func (b *SubstitutionBuilder) Bind(decl *VariableDeclaration, term Term) {
	b.bindings[decl] = term
}

// Snapshot produces an immutable VariableSubstitution holding a copy of
// the builder's current bindings; the builder remains usable afterwards,
// but further Bind calls do not affect snapshots already taken.
func (b *SubstitutionBuilder) Snapshot() *VariableSubstitution {
	cp := make(map[*VariableDeclaration]Term, len(b.bindings))
	for k, v := range b.bindings {
		cp[k] = v
	}
	return &VariableSubstitution{bindings: cp}
}

// ApplyToTerm walks term, replacing every bound VariableReference --
// recursively, so chains like α ↦ β, β ↦ C collapse to α ↦ C on demand
// (§3). Unbound variables and ground sub-terms are returned unchanged by
// reference (share-on-no-change, §4.1).
func ApplyToTerm(s *VariableSubstitution, t Term) Term {
	return TransformTerm(t, substApplyTransform{s: s})
}

type substApplyTransform struct{ s *VariableSubstitution }

func (a substApplyTransform) TransformConstant(c Constant) Term { return c }

func (a substApplyTransform) TransformFunction(f Function) Term {
	return IdentityTermTransform{Self: a}.TransformFunction(f)
}

func (a substApplyTransform) TransformVariableReference(v VariableReference) Term {
	bound, ok := a.s.Lookup(v.Decl)
	if !ok {
		return v
	}
	// Follow the binding chain: the bound term may itself contain
	// variables bound further in s.
	return ApplyToTerm(a.s, bound)
}

// ApplyToPredicate applies s to every argument of p.
func ApplyToPredicate(s *VariableSubstitution, p Predicate) Predicate {
	changed := false
	args := make([]Term, len(p.Args))
	for i, a := range p.Args {
		na := ApplyToTerm(s, a)
		args[i] = na
		if !changed && !na.Equal(a) {
			changed = true
		}
	}
	if !changed {
		return p
	}
	return Predicate{ID: p.ID, Args: args}
}

// ApplyToLiteral applies s to l's predicate, preserving sign.
func ApplyToLiteral(s *VariableSubstitution, l Literal) Literal {
	return Literal{IsNegated: l.IsNegated, Predicate: ApplyToPredicate(s, l.Predicate)}
}

// ApplyToClause applies s to every literal of c.
func ApplyToClause(s *VariableSubstitution, c *CNFClause) *CNFClause {
	lits := make([]Literal, len(c.Literals))
	for i, l := range c.Literals {
		lits[i] = ApplyToLiteral(s, l)
	}
	return NewCNFClause(lits)
}

// SubstitutionDecls returns s's bound variable declarations in an
// arbitrary but callable order, for callers (format.Formatter) that need
// to iterate a substitution's domain without reaching into its unexported
// map.
func SubstitutionDecls(s *VariableSubstitution) []*VariableDeclaration {
	if s == nil {
		return nil
	}
	decls := make([]*VariableDeclaration, 0, len(s.bindings))
	for d := range s.bindings {
		decls = append(decls, d)
	}
	return decls
}

// OccursIn reports whether decl occurs anywhere within t after applying s
// -- the occurs check of §4.3 walks the term post-substitution so that
// already-bound aliases cannot hide a cycle.
func OccursIn(s *VariableSubstitution, decl *VariableDeclaration, t Term) bool {
	walked := ApplyToTerm(s, t)
	found := false
	VisitTerm(walked, occursVisitor{decl: decl, found: &found})
	return found
}

type occursVisitor struct {
	decl  *VariableDeclaration
	found *bool
}

func (o occursVisitor) VisitConstant(Constant) {}

func (o occursVisitor) VisitFunction(f Function) {
	for _, a := range f.Args {
		if *o.found {
			return
		}
		VisitTerm(a, o)
	}
}

func (o occursVisitor) VisitVariableReference(v VariableReference) {
	if v.Decl.Equal(o.decl) {
		*o.found = true
	}
}
