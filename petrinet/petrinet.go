// Package petrinet implements the textual Petri-net spec format of spec
// §6 (a recursive-descent parser for the bit-exact EBNF grammar), the
// InitializedPetriNet model with its JSON persistence, and the lowering
// of a Petri net into a vass.VASS.
//
// The parser follows the teacher's builder-package error style
// (sentinel errors wrapped with fmt.Errorf's %w, never bare strings) but
// is hand-rolled recursive descent rather than a parser-combinator
// library, since no example repo in the reference pack parses a custom
// textual grammar — see DESIGN.md.
package petrinet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// ErrSyntax is wrapped by every parse failure, carrying the offending
// token/position in its message.
var ErrSyntax = errors.New("petrinet: syntax error")

// Guard is a single "id >= integer" atom.
type Guard struct {
	Place     string
	Threshold int64
}

// Update is a single "id' = id (+|-) integer" atom. Per spec §6 only
// p' = p ± k is supported: the LHS and the RHS base place are always
// the same identifier.
type Update struct {
	Place string
	Sign  int64 // +1 or -1
	Delta int64
}

// Rule is one "guard -> updates ;" production: a transition's full
// guard set and update set.
type Rule struct {
	Guards  []Guard
	Updates []Update
}

// EqAtom is a single "id = integer" atom, used in the init/target
// sections.
type EqAtom struct {
	Place string
	Value int64
}

// Spec is the parsed form of a Petri-net spec file.
type Spec struct {
	Vars   []string
	Rules  []Rule
	Init   []EqAtom
	Target []EqAtom
}

// Parse parses src per the spec §6 EBNF:
//
//	spec      := "vars" vars "rules" rules "init" eq_guard "target" eq_guard
//	vars      := id (WS id)*
//	rules     := rule+
//	rule      := guard "->" updates ";"
//	guard     := atom ("," atom)*
//	atom      := id ">=" integer
//	updates   := update ("," update)*
//	update    := id "'" "=" id ("+"|"-") integer
//	eq_guard  := eq_atom ("," eq_atom)*
//	eq_atom   := id "=" integer
//	id        := ALPHA ALNUM*
func Parse(src string) (*Spec, error) {
	p := &parser{toks: tokenize(src)}
	s := &Spec{}

	if err := p.expectKeyword("vars"); err != nil {
		return nil, err
	}
	vars, err := p.parseVars()
	if err != nil {
		return nil, err
	}
	s.Vars = vars

	if err := p.expectKeyword("rules"); err != nil {
		return nil, err
	}
	rules, err := p.parseRules()
	if err != nil {
		return nil, err
	}
	s.Rules = rules

	if err := p.expectKeyword("init"); err != nil {
		return nil, err
	}
	init, err := p.parseEqGuard()
	if err != nil {
		return nil, err
	}
	s.Init = init

	if err := p.expectKeyword("target"); err != nil {
		return nil, err
	}
	target, err := p.parseEqGuard()
	if err != nil {
		return nil, err
	}
	s.Target = target

	if !p.atEnd() {
		return nil, fmt.Errorf("%w: unexpected trailing token %q", ErrSyntax, p.peek())
	}
	return s, nil
}

type parser struct {
	toks []string
	pos  int
}

func (p *parser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() string {
	if p.atEnd() {
		return ""
	}
	return p.toks[p.pos]
}

func (p *parser) next() (string, error) {
	if p.atEnd() {
		return "", fmt.Errorf("%w: unexpected end of input", ErrSyntax)
	}
	t := p.toks[p.pos]
	p.pos++
	return t, nil
}

func (p *parser) expectKeyword(kw string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t != kw {
		return fmt.Errorf("%w: expected %q, got %q", ErrSyntax, kw, t)
	}
	return nil
}

func (p *parser) expect(tok string) error {
	t, err := p.next()
	if err != nil {
		return err
	}
	if t != tok {
		return fmt.Errorf("%w: expected %q, got %q", ErrSyntax, tok, t)
	}
	return nil
}

func isID(t string) bool {
	if t == "" || !unicode.IsLetter(rune(t[0])) {
		return false
	}
	for _, r := range t {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func (p *parser) parseID() (string, error) {
	t, err := p.next()
	if err != nil {
		return "", err
	}
	if !isID(t) {
		return "", fmt.Errorf("%w: expected identifier, got %q", ErrSyntax, t)
	}
	return t, nil
}

func (p *parser) parseInt() (int64, error) {
	t, err := p.next()
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.ParseInt(t, 10, 64)
	if convErr != nil {
		return 0, fmt.Errorf("%w: expected integer, got %q", ErrSyntax, t)
	}
	return n, nil
}

// parseVars consumes identifiers until the next reserved keyword.
func (p *parser) parseVars() ([]string, error) {
	var vars []string
	for !p.atEnd() && isID(p.peek()) && !isKeyword(p.peek()) {
		id, err := p.parseID()
		if err != nil {
			return nil, err
		}
		vars = append(vars, id)
	}
	if len(vars) == 0 {
		return nil, fmt.Errorf("%w: expected at least one variable", ErrSyntax)
	}
	return vars, nil
}

func isKeyword(t string) bool {
	switch t {
	case "rules", "init", "target":
		return true
	default:
		return false
	}
}

func (p *parser) parseRules() ([]Rule, error) {
	var rules []Rule
	for !p.atEnd() && !isKeyword(p.peek()) {
		r, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: expected at least one rule", ErrSyntax)
	}
	return rules, nil
}

func (p *parser) parseRule() (Rule, error) {
	guards, err := p.parseGuard()
	if err != nil {
		return Rule{}, err
	}
	if err := p.expect("->"); err != nil {
		return Rule{}, err
	}
	updates, err := p.parseUpdates()
	if err != nil {
		return Rule{}, err
	}
	if err := p.expect(";"); err != nil {
		return Rule{}, err
	}
	return Rule{Guards: guards, Updates: updates}, nil
}

func (p *parser) parseGuard() ([]Guard, error) {
	var out []Guard
	for {
		place, err := p.parseID()
		if err != nil {
			return nil, err
		}
		if err := p.expect(">="); err != nil {
			return nil, err
		}
		k, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		out = append(out, Guard{Place: place, Threshold: k})
		if p.peek() != "," {
			break
		}
		p.pos++
	}
	return out, nil
}

func (p *parser) parseUpdates() ([]Update, error) {
	var out []Update
	for {
		place, err := p.parseID()
		if err != nil {
			return nil, err
		}
		if err := p.expect("'"); err != nil {
			return nil, err
		}
		if err := p.expect("="); err != nil {
			return nil, err
		}
		base, err := p.parseID()
		if err != nil {
			return nil, err
		}
		if base != place {
			return nil, fmt.Errorf("%w: cross-variable update %s' = %s not supported", ErrSyntax, place, base)
		}
		op, err := p.next()
		if err != nil {
			return nil, err
		}
		var sign int64
		switch op {
		case "+":
			sign = 1
		case "-":
			sign = -1
		default:
			return nil, fmt.Errorf("%w: expected '+' or '-', got %q", ErrSyntax, op)
		}
		k, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		out = append(out, Update{Place: place, Sign: sign, Delta: k})
		if p.peek() != "," {
			break
		}
		p.pos++
	}
	return out, nil
}

func (p *parser) parseEqGuard() ([]EqAtom, error) {
	var out []EqAtom
	for {
		place, err := p.parseID()
		if err != nil {
			return nil, err
		}
		if err := p.expect("="); err != nil {
			return nil, err
		}
		v, err := p.parseInt()
		if err != nil {
			return nil, err
		}
		out = append(out, EqAtom{Place: place, Value: v})
		if p.peek() != "," {
			break
		}
		p.pos++
	}
	return out, nil
}

// tokenize splits src into whitespace-separated words, additionally
// splitting the multi-char operators ">=", "->", "'", "=", "+", "-", ","
// and ";" off of adjacent identifiers/integers so the parser never has
// to peek into a token's interior.
func tokenize(src string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	runes := []rune(src)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '>' && i+1 < len(runes) && runes[i+1] == '=':
			flush()
			toks = append(toks, ">=")
			i++
		case r == '-' && i+1 < len(runes) && runes[i+1] == '>':
			flush()
			toks = append(toks, "->")
			i++
		case r == '\'' || r == '=' || r == '+' || r == '-' || r == ',' || r == ';':
			flush()
			toks = append(toks, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
