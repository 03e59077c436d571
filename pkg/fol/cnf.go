package fol

// ToCNF converts any well-formed Sentence into a CNFSentence by running
// the fixed, ordered composition of transformations described in §4.2:
// eliminate equivalence, eliminate implication, drive negations inward
// (NNF), standardise variables apart, Skolemise, then drop universals and
// distribute ∨ over ∧ to a fixed point, finally collecting clauses. The
// pipeline is total over syntactically well-formed sentences -- no
// runtime errors are raised by correct input (§4.2 "Failure modes").
func ToCNF(s Sentence) *CNFSentence {
	original := s
	s = EliminateEquivalence(s)
	s = EliminateImplication(s)
	s = NNF(s)
	s = StandardiseApart(s, original)
	s = Skolemise(s, original)
	s = DropUniversals(s)
	s = Distribute(s)

	var clauses []*CNFClause
	for _, conjunct := range collectConjuncts(s) {
		clause := NewCNFClause(collectLiterals(conjunct))
		if clause.HasComplementaryLiterals() {
			continue // tautologies are dropped (§4.2)
		}
		clauses = append(clauses, clause)
	}
	return NewCNFSentence(clauses)
}

// EliminateEquivalence rewrites every A ⇔ B into (A ⇒ B) ∧ (B ⇒ A)
// (§4.2 step 1), recursively. It is implemented as a SentenceTransform
// (§4.1/§4.2) rather than a bare recursive function so that the "share on
// no change" contract is exercised the same way any caller-supplied
// transform would use it: the transform value self-references through a
// pointer so the override applies at every recursion depth, not just the
// top level.
func EliminateEquivalence(s Sentence) Sentence {
	t := &eliminateEquivalenceTransform{}
	t.Self = t
	return TransformSentence(s, t)
}

type eliminateEquivalenceTransform struct {
	IdentitySentenceTransform
}

func (t *eliminateEquivalenceTransform) TransformEquivalence(e Equivalence) Sentence {
	left := TransformSentence(e.Left, t)
	right := TransformSentence(e.Right, t)
	return Conjunction{
		Left:  Implication{Antecedent: left, Consequent: right},
		Right: Implication{Antecedent: right, Consequent: left},
	}
}

// EliminateImplication rewrites every A ⇒ B into ¬A ∨ B (§4.2 step 2),
// recursively, via the same self-referencing SentenceTransform pattern as
// EliminateEquivalence.
func EliminateImplication(s Sentence) Sentence {
	t := &eliminateImplicationTransform{}
	t.Self = t
	return TransformSentence(s, t)
}

type eliminateImplicationTransform struct {
	IdentitySentenceTransform
}

func (t *eliminateImplicationTransform) TransformImplication(i Implication) Sentence {
	a := TransformSentence(i.Antecedent, t)
	c := TransformSentence(i.Consequent, t)
	return Disjunction{Left: Negation{Child: a}, Right: c}
}

// NNF drives negations inward via De Morgan's laws, ¬¬A ↦ A, and
// ¬∀x.P ↦ ∃x.¬P / ¬∃x.P ↦ ∀x.¬P (§4.2 step 3). It tolerates stray
// Implication/Equivalence nodes (eliminating them on the fly) so it
// remains safe to call standalone, though ToCNF always calls it after
// EliminateEquivalence/EliminateImplication.
func NNF(s Sentence) Sentence {
	switch t := s.(type) {
	case Predicate:
		return t
	case Negation:
		return negateNNF(t.Child)
	case Conjunction:
		return Conjunction{Left: NNF(t.Left), Right: NNF(t.Right)}
	case Disjunction:
		return Disjunction{Left: NNF(t.Left), Right: NNF(t.Right)}
	case Implication:
		return NNF(Disjunction{Left: Negation{Child: t.Antecedent}, Right: t.Consequent})
	case Equivalence:
		return NNF(Conjunction{
			Left:  Implication{Antecedent: t.Left, Consequent: t.Right},
			Right: Implication{Antecedent: t.Right, Consequent: t.Left},
		})
	case UniversalQuantification:
		return UniversalQuantification{Variable: t.Variable, Child: NNF(t.Child)}
	case ExistentialQuantification:
		return ExistentialQuantification{Variable: t.Variable, Child: NNF(t.Child)}
	default:
		return t
	}
}

// negateNNF computes the NNF of ¬child.
func negateNNF(child Sentence) Sentence {
	switch c := child.(type) {
	case Predicate:
		return Negation{Child: c}
	case Negation:
		return NNF(c.Child)
	case Conjunction:
		return Disjunction{Left: negateNNF(c.Left), Right: negateNNF(c.Right)}
	case Disjunction:
		return Conjunction{Left: negateNNF(c.Left), Right: negateNNF(c.Right)}
	case UniversalQuantification:
		return ExistentialQuantification{Variable: c.Variable, Child: negateNNF(c.Child)}
	case ExistentialQuantification:
		return UniversalQuantification{Variable: c.Variable, Child: negateNNF(c.Child)}
	case Implication:
		// ¬(A ⇒ B) = A ∧ ¬B
		return Conjunction{Left: NNF(c.Antecedent), Right: negateNNF(c.Consequent)}
	case Equivalence:
		// ¬(A ⇔ B) = (A ∧ ¬B) ∨ (¬A ∧ B)
		return Disjunction{
			Left:  Conjunction{Left: NNF(c.Left), Right: negateNNF(c.Right)},
			Right: Conjunction{Left: negateNNF(c.Left), Right: NNF(c.Right)},
		}
	default:
		return Negation{Child: c}
	}
}

// StandardiseApart renames every quantifier's bound variable to a fresh
// StandardisedVariableSymbol-carrying declaration (§4.2 step 4). Distinct
// quantifiers get distinct standardised symbols even for the same surface
// name; original is the whole sentence prior to any pipeline step, kept
// for the symbol's explanation back-pointer (§9, never used for equality
// or hashing).
func StandardiseApart(s Sentence, original Sentence) Sentence {
	return standardiseApartRec(s, map[*VariableDeclaration]*VariableDeclaration{}, original)
}

func standardiseApartRec(s Sentence, renames map[*VariableDeclaration]*VariableDeclaration, original Sentence) Sentence {
	switch t := s.(type) {
	case Predicate:
		return renamePredicate(t, renames)
	case Negation:
		return Negation{Child: standardiseApartRec(t.Child, renames, original)}
	case Conjunction:
		return Conjunction{
			Left:  standardiseApartRec(t.Left, copyDeclMap(renames), original),
			Right: standardiseApartRec(t.Right, copyDeclMap(renames), original),
		}
	case Disjunction:
		return Disjunction{
			Left:  standardiseApartRec(t.Left, copyDeclMap(renames), original),
			Right: standardiseApartRec(t.Right, copyDeclMap(renames), original),
		}
	case UniversalQuantification:
		fresh := NewVariableDeclaration(newStandardisedVariableSymbol(t.Variable.Symbol, original))
		renames[t.Variable] = fresh
		return UniversalQuantification{Variable: fresh, Child: standardiseApartRec(t.Child, renames, original)}
	case ExistentialQuantification:
		fresh := NewVariableDeclaration(newStandardisedVariableSymbol(t.Variable.Symbol, original))
		renames[t.Variable] = fresh
		return ExistentialQuantification{Variable: fresh, Child: standardiseApartRec(t.Child, renames, original)}
	default:
		return s
	}
}

func copyDeclMap(m map[*VariableDeclaration]*VariableDeclaration) map[*VariableDeclaration]*VariableDeclaration {
	cp := make(map[*VariableDeclaration]*VariableDeclaration, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func renamePredicate(p Predicate, renames map[*VariableDeclaration]*VariableDeclaration) Predicate {
	args := make([]Term, len(p.Args))
	for i, a := range p.Args {
		args[i] = renameTerm(a, renames)
	}
	return Predicate{ID: p.ID, Args: args}
}

func renameTerm(t Term, renames map[*VariableDeclaration]*VariableDeclaration) Term {
	switch v := t.(type) {
	case VariableReference:
		if nd, ok := renames[v.Decl]; ok {
			return VariableReference{Decl: nd}
		}
		return v
	case Function:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = renameTerm(a, renames)
		}
		return Function{ID: v.ID, Args: args}
	default:
		return t
	}
}

// Skolemise replaces every existentially-quantified variable with a fresh
// SkolemFunctionSymbol applied to the universally-quantified variables
// currently in scope, dropping the existential quantifier (§4.2 step 5).
// Universal quantifiers are left in place for DropUniversals to remove.
func Skolemise(s Sentence, original Sentence) Sentence {
	return skolemiseRec(s, nil, map[*VariableDeclaration]Term{}, original)
}

func skolemiseRec(s Sentence, scope []*VariableDeclaration, subst map[*VariableDeclaration]Term, original Sentence) Sentence {
	switch t := s.(type) {
	case Predicate:
		return substitutePredicate(t, subst)
	case Negation:
		return Negation{Child: skolemiseRec(t.Child, scope, subst, original)}
	case Conjunction:
		return Conjunction{
			Left:  skolemiseRec(t.Left, copyScope(scope), copyTermMap(subst), original),
			Right: skolemiseRec(t.Right, copyScope(scope), copyTermMap(subst), original),
		}
	case Disjunction:
		return Disjunction{
			Left:  skolemiseRec(t.Left, copyScope(scope), copyTermMap(subst), original),
			Right: skolemiseRec(t.Right, copyScope(scope), copyTermMap(subst), original),
		}
	case UniversalQuantification:
		newScope := append(copyScope(scope), t.Variable)
		return UniversalQuantification{Variable: t.Variable, Child: skolemiseRec(t.Child, newScope, subst, original)}
	case ExistentialQuantification:
		sym := newSkolemFunctionSymbol(t.Variable, original)
		args := make([]Term, len(scope))
		for i, decl := range scope {
			args[i] = NewVariableReference(decl)
		}
		var skolemTerm Term
		if len(args) == 0 {
			skolemTerm = NewConstant(sym)
		} else {
			skolemTerm = NewFunction(sym, args...)
		}
		subst[t.Variable] = skolemTerm
		return skolemiseRec(t.Child, scope, subst, original)
	default:
		return s
	}
}

func copyScope(scope []*VariableDeclaration) []*VariableDeclaration {
	cp := make([]*VariableDeclaration, len(scope))
	copy(cp, scope)
	return cp
}

func copyTermMap(m map[*VariableDeclaration]Term) map[*VariableDeclaration]Term {
	cp := make(map[*VariableDeclaration]Term, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

func substitutePredicate(p Predicate, subst map[*VariableDeclaration]Term) Predicate {
	args := make([]Term, len(p.Args))
	for i, a := range p.Args {
		args[i] = substituteTerm(a, subst)
	}
	return Predicate{ID: p.ID, Args: args}
}

func substituteTerm(t Term, subst map[*VariableDeclaration]Term) Term {
	switch v := t.(type) {
	case VariableReference:
		if repl, ok := subst[v.Decl]; ok {
			return repl
		}
		return v
	case Function:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteTerm(a, subst)
		}
		return Function{ID: v.ID, Args: args}
	default:
		return t
	}
}

// DropUniversals removes every remaining UniversalQuantification wrapper:
// after Skolemisation, every free variable is implicitly universal, so the
// quantifier nodes carry no further information (§4.2 step 6, part one).
func DropUniversals(s Sentence) Sentence {
	switch t := s.(type) {
	case UniversalQuantification:
		return DropUniversals(t.Child)
	case Conjunction:
		return Conjunction{Left: DropUniversals(t.Left), Right: DropUniversals(t.Right)}
	case Disjunction:
		return Disjunction{Left: DropUniversals(t.Left), Right: DropUniversals(t.Right)}
	case Negation:
		return Negation{Child: DropUniversals(t.Child)}
	default:
		return s
	}
}

// Distribute applies A ∨ (B ∧ C) ↦ (A ∨ B) ∧ (A ∨ C), and its mirror, to a
// fixed point (§4.2 step 6, part two).
func Distribute(s Sentence) Sentence {
	switch t := s.(type) {
	case Conjunction:
		return Conjunction{Left: Distribute(t.Left), Right: Distribute(t.Right)}
	case Disjunction:
		left := Distribute(t.Left)
		right := Distribute(t.Right)
		if lc, ok := left.(Conjunction); ok {
			return Distribute(Conjunction{
				Left:  Disjunction{Left: lc.Left, Right: right},
				Right: Disjunction{Left: lc.Right, Right: right},
			})
		}
		if rc, ok := right.(Conjunction); ok {
			return Distribute(Conjunction{
				Left:  Disjunction{Left: left, Right: rc.Left},
				Right: Disjunction{Left: left, Right: rc.Right},
			})
		}
		return Disjunction{Left: left, Right: right}
	default:
		return s
	}
}

// collectConjuncts flattens a right- or left-leaning ∧-tree into its
// maximal list of non-Conjunction conjuncts, each of which becomes one
// CNFClause.
func collectConjuncts(s Sentence) []Sentence {
	if c, ok := s.(Conjunction); ok {
		return append(collectConjuncts(c.Left), collectConjuncts(c.Right)...)
	}
	return []Sentence{s}
}

// collectLiterals flattens a ∨-chain beneath negations/predicates into its
// literals.
func collectLiterals(s Sentence) []Literal {
	switch t := s.(type) {
	case Disjunction:
		return append(collectLiterals(t.Left), collectLiterals(t.Right)...)
	case Negation:
		if p, ok := t.Child.(Predicate); ok {
			return []Literal{NegativeLiteral(p)}
		}
		return nil
	case Predicate:
		return []Literal{PositiveLiteral(t)}
	default:
		return nil
	}
}
