// Package sexpr implements a small, uniform-prefix textual notation for
// FOL sentences, used by cmd/folkb to read tell/ask goals from the command
// line or a knowledge-base file. There is no importable FOL s-expression
// reader anywhere in the retrieval pack, so this is one of the few pieces
// of the toolkit built directly on the standard library (text/scanner plus
// a hand-written recursive-descent parser) rather than a third-party
// dependency (see DESIGN.md).
//
// Grammar (every compound form is parenthesised, Lisp-style):
//
//	sentence  := "(" "not" sentence ")"
//	           | "(" "and" sentence sentence ")"
//	           | "(" "or" sentence sentence ")"
//	           | "(" "implies" sentence sentence ")"
//	           | "(" "iff" sentence sentence ")"
//	           | "(" "forall" IDENT sentence ")"
//	           | "(" "exists" IDENT sentence ")"
//	           | "(" IDENT term* ")"                  ; predicate
//	term      := "(" IDENT term* ")"                  ; function application
//	           | IDENT                                ; Capitalised = variable, else constant
//
// e.g. (forall X (implies (and (Man X) (Greedy X)) (Mortal X)))
package sexpr

import (
	"fmt"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/gitrdm/gokanlogic/pkg/fol"
	"github.com/gitrdm/gokanlogic/pkg/fol/folerr"
)

// Parser reads one FOL sentence from a string. Its variable environment is
// flat for the lifetime of one Parse call: two occurrences of the same
// capitalised name (even under different quantifiers) resolve to the same
// VariableDeclaration. This is a deliberate simplification for a
// command-line tool -- pkg/fol's own StandardiseApart re-apart-renames
// every variable before resolution runs anyway (§4.2), so it does not
// affect prover correctness, only how literally a user's re-used variable
// names are scoped while authoring a sentence.
type Parser struct {
	sc   scanner.Scanner
	vars map[string]*fol.VariableDeclaration
}

// New returns a Parser reading from src.
func New(src string) *Parser {
	p := &Parser{vars: map[string]*fol.VariableDeclaration{}}
	p.sc.Init(strings.NewReader(src))
	p.sc.Mode = scanner.ScanIdents
	p.sc.Whitespace = 1<<'\t' | 1<<'\n' | 1<<'\r' | 1<<' '
	return p
}

// Parse parses a single sentence from src.
func Parse(src string) (fol.Sentence, error) {
	p := New(src)
	s, err := p.parseSentence()
	if err != nil {
		return nil, err
	}
	return s, nil
}

// ParseTerm parses a single term from src, for contexts (e.g. backward
// query goal arguments) that need just a term rather than a whole
// sentence.
func ParseTerm(src string) (fol.Term, error) {
	p := New(src)
	return p.parseTerm()
}

func (p *Parser) errf(format string, args ...any) error {
	return folerr.New("sexpr.Parse", folerr.InvalidArgument, format, args...)
}

func (p *Parser) expect(r rune) error {
	got := p.sc.Scan()
	if got != r {
		return p.errf("expected %q, got %q at %s", string(r), p.sc.TokenText(), p.sc.Pos())
	}
	return nil
}

func (p *Parser) parseSentence() (fol.Sentence, error) {
	if err := p.expect('('); err != nil {
		return nil, err
	}
	tok := p.sc.Scan()
	if tok != scanner.Ident {
		return nil, p.errf("expected a keyword or predicate name, got %q at %s", p.sc.TokenText(), p.sc.Pos())
	}
	head := p.sc.TokenText()

	switch head {
	case "not":
		child, err := p.parseSentence()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return fol.Negation{Child: child}, nil
	case "and", "or", "implies", "iff":
		left, err := p.parseSentence()
		if err != nil {
			return nil, err
		}
		right, err := p.parseSentence()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		switch head {
		case "and":
			return fol.Conjunction{Left: left, Right: right}, nil
		case "or":
			return fol.Disjunction{Left: left, Right: right}, nil
		case "implies":
			return fol.Implication{Antecedent: left, Consequent: right}, nil
		default:
			return fol.Equivalence{Left: left, Right: right}, nil
		}
	case "forall", "exists":
		varTok := p.sc.Scan()
		if varTok != scanner.Ident {
			return nil, p.errf("expected a variable name after %q, got %q at %s", head, p.sc.TokenText(), p.sc.Pos())
		}
		decl := p.declareVar(p.sc.TokenText())
		child, err := p.parseSentence()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		if head == "forall" {
			return fol.UniversalQuantification{Variable: decl, Child: child}, nil
		}
		return fol.ExistentialQuantification{Variable: decl, Child: child}, nil
	default:
		args, err := p.parseTermList()
		if err != nil {
			return nil, err
		}
		return fol.NewPredicate(fol.Symbol(head), args...), nil
	}
}

// parseTermList parses terms up to the closing ')', consuming it.
func (p *Parser) parseTermList() ([]fol.Term, error) {
	var args []fol.Term
	for {
		peek := p.sc.Peek()
		for peek == ' ' || peek == '\t' || peek == '\n' || peek == '\r' {
			p.sc.Next()
			peek = p.sc.Peek()
		}
		if peek == ')' {
			p.sc.Next()
			return args, nil
		}
		t, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
}

func (p *Parser) parseTerm() (fol.Term, error) {
	peek := p.sc.Peek()
	for peek == ' ' || peek == '\t' || peek == '\n' || peek == '\r' {
		p.sc.Next()
		peek = p.sc.Peek()
	}
	if peek == '(' {
		p.sc.Next()
		nameTok := p.sc.Scan()
		if nameTok != scanner.Ident {
			return nil, p.errf("expected a function name, got %q at %s", p.sc.TokenText(), p.sc.Pos())
		}
		name := p.sc.TokenText()
		args, err := p.parseTermList()
		if err != nil {
			return nil, err
		}
		return fol.NewFunction(fol.Symbol(name), args...), nil
	}
	tok := p.sc.Scan()
	if tok != scanner.Ident {
		return nil, p.errf("expected a term, got %q at %s", p.sc.TokenText(), p.sc.Pos())
	}
	name := p.sc.TokenText()
	if isVariableName(name) {
		return fol.NewVariableReference(p.declareVar(name)), nil
	}
	return fol.NewConstant(fol.Symbol(name)), nil
}

func (p *Parser) declareVar(name string) *fol.VariableDeclaration {
	if decl, ok := p.vars[name]; ok {
		return decl
	}
	decl := fol.NewVariableDeclaration(fol.Symbol(name))
	p.vars[name] = decl
	return decl
}

func isVariableName(s string) bool {
	if s == "" {
		return false
	}
	return unicode.IsUpper(rune(s[0]))
}

// FormatParseError adds positional context suitable for CLI output.
func FormatParseError(src string, err error) string {
	return fmt.Sprintf("parsing %q: %v", src, err)
}
