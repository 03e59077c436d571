// Package format renders FOL values (terms, sentences, clauses,
// substitutions, proofs) for human consumption -- the CLI renders the
// steps of a Query.Explain proof (§4.5, §6) through a Formatter rather than
// the raw String() methods that Proof.String uses, because
// standardisation-apart and Skolemisation identifiers
// embed a random UUID fragment (identifier.go) that is unique but not
// stable or short enough to read in a multi-step proof. A Formatter
// assigns a short, proof-local label the first time it sees each
// identifier and reuses it afterwards, drawing labels from a pair of
// configurable LabelSets (§6, §9): lowercase Greek for variables
// (standardised or not), uppercase Latin for Skolem functions, by default.
package format

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/engine"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// LabelSet is an ordered, fixed-capacity sequence of single-symbol display
// labels. A Formatter draws one label per distinct identifier it
// encounters, in first-use order. Requesting a label past the set's
// capacity fails with folerr.ResourceExhausted (§7) rather than
// inventing a longer synthetic name.
type LabelSet struct {
	name   string
	labels []string
}

// NewLabelSet builds a named LabelSet from an explicit label sequence.
// name identifies the set in error messages and does not need to be
// unique.
func NewLabelSet(name string, labels ...string) LabelSet {
	return LabelSet{name: name, labels: append([]string(nil), labels...)}
}

// Cap returns the number of distinct labels the set can hand out.
func (ls LabelSet) Cap() int { return len(ls.labels) }

func (ls LabelSet) label(n int) (string, error) {
	if n < 0 || n >= len(ls.labels) {
		return "", folerr.New("format.LabelSet.label", folerr.ResourceExhausted,
			"%s label set (capacity %d) exhausted requesting label %d", ls.name, len(ls.labels), n+1)
	}
	return ls.labels[n], nil
}

// GreekLowerLabelSet is the default label set for variables:
// the 24 lowercase Greek letters, α through ω.
func GreekLowerLabelSet() LabelSet {
	return NewLabelSet("greek-lower", splitRunes("αβγδεζηθικλμνξοπρστυφχψω")...)
}

// LatinUpperLabelSet is the default label set for Skolem functions: the
// 26 uppercase Latin letters, A through Z.
func LatinUpperLabelSet() LabelSet {
	return NewLabelSet("latin-upper", splitRunes("ABCDEFGHIJKLMNOPQRSTUVWXYZ")...)
}

func splitRunes(s string) []string {
	runes := []rune(s)
	out := make([]string, len(runes))
	for i, r := range runes {
		out[i] = string(r)
	}
	return out
}

// Option configures a Formatter at construction. The default label sets
// are process-wide tunables (§9): bind a non-default LabelSet here, at
// the formatter factory, rather than mutating one mid-render.
type Option func(*Formatter)

// WithVariableLabelSet overrides the label set used for variables. The
// default is GreekLowerLabelSet.
func WithVariableLabelSet(ls LabelSet) Option {
	return func(f *Formatter) { f.varSet = ls }
}

// WithSkolemLabelSet overrides the label set used for Skolem functions.
// The default is LatinUpperLabelSet.
func WithSkolemLabelSet(ls LabelSet) Option {
	return func(f *Formatter) { f.skolemSet = ls }
}

// Formatter assigns stable, short display labels to variables and Skolem
// functions encountered during rendering. It is not safe for concurrent
// use by multiple goroutines -- create one Formatter per explanation or
// per CLI invocation.
type Formatter struct {
	varLabels    map[*fol.VariableDeclaration]string
	skolemLabels map[fol.Identifier]string
	varSet       LabelSet
	skolemSet    LabelSet
	err          error
}

// New returns an empty Formatter, configured by opts. With no options it
// draws variable labels from GreekLowerLabelSet and Skolem-function
// labels from LatinUpperLabelSet.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		varLabels:    map[*fol.VariableDeclaration]string{},
		skolemLabels: map[fol.Identifier]string{},
		varSet:       GreekLowerLabelSet(),
		skolemSet:    LatinUpperLabelSet(),
	}
	for _, o := range opts {
		o(f)
	}
	return f
}

// Err returns the first folerr.ResourceExhausted error raised while
// assigning a label, or nil if every identifier rendered so far was
// labelled from within its set's capacity. Once set, Formatter keeps
// rendering (falling back to a numeric placeholder label) so a caller
// can still see the rest of a proof; callers that must not tolerate a
// degraded rendering should check Err after each call.
func (f *Formatter) Err() error { return f.err }

func (f *Formatter) varLabel(d *fol.VariableDeclaration) string {
	if label, ok := f.varLabels[d]; ok {
		return label
	}
	label, err := f.varSet.label(len(f.varLabels))
	if err != nil {
		f.noteExhaustion(err)
		label = fmt.Sprintf("?v%d", len(f.varLabels)+1)
	}
	f.varLabels[d] = label
	return label
}

func (f *Formatter) skolemLabel(id fol.Identifier) string {
	if label, ok := f.skolemLabels[id]; ok {
		return label
	}
	label, err := f.skolemSet.label(len(f.skolemLabels))
	if err != nil {
		f.noteExhaustion(err)
		label = fmt.Sprintf("?sk%d", len(f.skolemLabels)+1)
	}
	f.skolemLabels[id] = label
	return label
}

func (f *Formatter) noteExhaustion(err error) {
	if f.err == nil {
		f.err = folerr.Wrap(err, "Formatter")
	}
}

// Term renders t, substituting short labels for every variable and for
// Skolem functions (including zero-argument Skolem constants) wherever
// they appear.
func (f *Formatter) Term(t fol.Term) string {
	switch v := t.(type) {
	case fol.VariableReference:
		return f.varLabel(v.Decl)
	case fol.Function:
		if _, ok := v.ID.(*fol.SkolemFunctionSymbol); ok {
			args := make([]string, len(v.Args))
			for i, a := range v.Args {
				args[i] = f.Term(a)
			}
			name := f.skolemLabel(v.ID)
			if len(args) == 0 {
				return name
			}
			return name + "(" + strings.Join(args, ", ") + ")"
		}
		args := make([]string, len(v.Args))
		for i, a := range v.Args {
			args[i] = f.Term(a)
		}
		if len(args) == 0 {
			return v.ID.String()
		}
		return v.ID.String() + "(" + strings.Join(args, ", ") + ")"
	case fol.Constant:
		if _, ok := v.ID.(*fol.SkolemFunctionSymbol); ok {
			return f.skolemLabel(v.ID)
		}
		return v.ID.String()
	default:
		return t.String()
	}
}

// Predicate renders p with Term's label substitution.
func (f *Formatter) Predicate(p fol.Predicate) string {
	if len(p.Args) == 0 {
		return p.ID.String()
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = f.Term(a)
	}
	return p.ID.String() + "(" + strings.Join(args, ", ") + ")"
}

// Literal renders l with Predicate's label substitution.
func (f *Formatter) Literal(l fol.Literal) string {
	if l.IsNegated {
		return "¬" + f.Predicate(l.Predicate)
	}
	return f.Predicate(l.Predicate)
}

// Clause renders c as a disjunction of formatted literals.
func (f *Formatter) Clause(c *fol.CNFClause) string {
	if c.IsEmpty() {
		return "⊥"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = f.Literal(l)
	}
	return strings.Join(parts, " ∨ ")
}

// Sentence renders s recursively, re-using Term/Predicate's labels.
func (f *Formatter) Sentence(s fol.Sentence) string {
	switch v := s.(type) {
	case fol.Predicate:
		return f.Predicate(v)
	case fol.Negation:
		return "¬" + f.parenIfCompound(v.Child)
	case fol.Conjunction:
		return f.parenIfCompound(v.Left) + " ∧ " + f.parenIfCompound(v.Right)
	case fol.Disjunction:
		return f.parenIfCompound(v.Left) + " ∨ " + f.parenIfCompound(v.Right)
	case fol.Equivalence:
		return f.parenIfCompound(v.Left) + " ⇔ " + f.parenIfCompound(v.Right)
	case fol.Implication:
		return f.parenIfCompound(v.Antecedent) + " ⇒ " + f.parenIfCompound(v.Consequent)
	case fol.UniversalQuantification:
		return "∀" + f.varLabel(v.Variable) + " " + f.parenIfCompound(v.Child)
	case fol.ExistentialQuantification:
		return "∃" + f.varLabel(v.Variable) + " " + f.parenIfCompound(v.Child)
	default:
		return s.String()
	}
}

func (f *Formatter) parenIfCompound(s fol.Sentence) string {
	switch s.(type) {
	case fol.Predicate, fol.Negation:
		return f.Sentence(s)
	default:
		return "(" + f.Sentence(s) + ")"
	}
}

// Substitution renders a binding map in a stable (key-label-sorted) order.
func (f *Formatter) Substitution(s *fol.VariableSubstitution) string {
	if s == nil || s.Len() == 0 {
		return "{}"
	}
	type pair struct{ label, value string }
	var pairs []pair
	for _, d := range substitutionDecls(s) {
		t, _ := s.Lookup(d)
		pairs = append(pairs, pair{label: f.varLabel(d), value: f.Term(t)})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].label < pairs[j].label })
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = fmt.Sprintf("%s ↦ %s", p.label, p.value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// substitutionDecls wraps fol.SubstitutionDecls, the one piece of API this
// package adds to pkg/fol (rather than merely consuming it) because
// VariableSubstitution's bindings map is unexported and this package needs
// to iterate its domain. The order it returns is arbitrary; Substitution
// sorts the rendered pairs by label afterwards.
func substitutionDecls(s *fol.VariableSubstitution) []*fol.VariableDeclaration {
	return fol.SubstitutionDecls(s)
}

// ProofStep renders one resolution step of an engine proof.
func (f *Formatter) ProofStep(index int, step engine.ProofStep) string {
	return fmt.Sprintf("%d. %s  and  %s  ⊢[%s]  %s",
		index, f.Clause(step.Parent1), f.Clause(step.Parent2), f.Substitution(step.Unifier), f.Clause(step.Resolvent))
}
