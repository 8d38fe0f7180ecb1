// Package condition compiles the small boolean language used by field
// enabledWhen rules.
//
// Grammar:
//
//	expr    = and { "||" and }
//	and     = unary { "&&" unary }
//	unary   = "!" unary | primary
//	primary = "(" expr ")" | ident [ ("==" | "!=") literal ]
//	literal = string | number | true | false | null | ident
//
// A bare identifier is true when its value is truthy. A bare identifier on
// the right of a comparison is read as a string literal.
package condition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrSyntax wraps every parse failure.
var ErrSyntax = errors.New("condition: syntax error")

// Lookup resolves a variable name to its current value.
type Lookup func(name string) (any, bool)

// Values adapts a map into a Lookup.
func Values(values map[string]any) Lookup {
	return func(name string) (any, bool) {
		v, ok := values[name]
		return v, ok
	}
}

// Expression is a compiled condition. The zero value always evaluates true.
type Expression struct {
	source string
	root   node
	idents []string
}

// Always returns an expression that is always true.
func Always() Expression { return Expression{} }

// Parse compiles rule. An empty rule compiles to Always.
func Parse(rule string) (Expression, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return Always(), nil
	}
	toks, err := scan(trimmed)
	if err != nil {
		return Expression{}, err
	}
	p := &parser{toks: toks}
	root, err := p.or()
	if err != nil {
		return Expression{}, err
	}
	if p.pos < len(p.toks) {
		return Expression{}, fmt.Errorf("%w: unexpected %q", ErrSyntax, p.toks[p.pos].text)
	}
	return Expression{source: trimmed, root: root, idents: p.idents}, nil
}

// MustParse is Parse for init-time constants.
func MustParse(rule string) Expression {
	expr, err := Parse(rule)
	if err != nil {
		panic(err)
	}
	return expr
}

// String returns the source rule.
func (e Expression) String() string { return e.source }

// IsAlways reports whether e has no condition.
func (e Expression) IsAlways() bool { return e.root == nil }

// Identifiers returns the variable names e reads, in order of first use.
func (e Expression) Identifiers() []string {
	return append([]string(nil), e.idents...)
}

// Eval evaluates e against lookup. Unknown variables read as null.
func (e Expression) Eval(lookup Lookup) bool {
	if e.root == nil {
		return true
	}
	if lookup == nil {
		lookup = func(string) (any, bool) { return nil, false }
	}
	return e.root.eval(lookup)
}

type node interface {
	eval(Lookup) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(l Lookup) bool { return n.left.eval(l) || n.right.eval(l) }

type andNode struct{ left, right node }

func (n andNode) eval(l Lookup) bool { return n.left.eval(l) && n.right.eval(l) }

type notNode struct{ inner node }

func (n notNode) eval(l Lookup) bool { return !n.inner.eval(l) }

type truthyNode struct{ name string }

func (n truthyNode) eval(l Lookup) bool {
	v, _ := l(n.name)
	return truthy(v)
}

type compareNode struct {
	name    string
	negate  bool
	literal token
}

func (n compareNode) eval(l Lookup) bool {
	v, _ := l(n.name)
	return n.equal(v) != n.negate
}

func (n compareNode) equal(v any) bool {
	switch n.literal.kind {
	case tokNull:
		return v == nil || v == ""
	case tokBool:
		want := n.literal.text == "true"
		switch typed := v.(type) {
		case bool:
			return typed == want
		case string:
			got, err := strconv.ParseBool(strings.TrimSpace(typed))
			return err == nil && got == want
		default:
			return truthy(v) == want
		}
	case tokNumber:
		want, _ := strconv.ParseFloat(n.literal.text, 64)
		got, ok := number(v)
		return ok && got == want
	default:
		return stringify(v) == n.literal.text
	}
}

type parser struct {
	toks   []token
	pos    int
	idents []string
}

func (p *parser) or() (node, error) {
	left, err := p.and()
	if err != nil {
		return nil, err
	}
	for p.accept(tokOr) {
		right, err := p.and()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) and() (node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.accept(tokAnd) {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (node, error) {
	if p.accept(tokNot) {
		inner, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.primary()
}

func (p *parser) primary() (node, error) {
	if p.accept(tokLParen) {
		inner, err := p.or()
		if err != nil {
			return nil, err
		}
		if !p.accept(tokRParen) {
			return nil, fmt.Errorf("%w: missing ')'", ErrSyntax)
		}
		return inner, nil
	}
	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("%w: unexpected end of rule", ErrSyntax)
	}
	ident := p.toks[p.pos]
	if ident.kind != tokIdent {
		return nil, fmt.Errorf("%w: expected variable name, got %q", ErrSyntax, ident.text)
	}
	p.pos++
	p.remember(ident.text)

	negate := false
	switch {
	case p.accept(tokEq):
	case p.accept(tokNeq):
		negate = true
	default:
		return truthyNode{name: ident.text}, nil
	}

	if p.pos >= len(p.toks) {
		return nil, fmt.Errorf("%w: missing value after %q", ErrSyntax, ident.text)
	}
	lit := p.toks[p.pos]
	switch lit.kind {
	case tokString, tokNumber, tokBool, tokNull:
	case tokIdent:
		lit.kind = tokString
	default:
		return nil, fmt.Errorf("%w: expected value, got %q", ErrSyntax, lit.text)
	}
	p.pos++
	return compareNode{name: ident.text, negate: negate, literal: lit}, nil
}

func (p *parser) accept(kind tokenKind) bool {
	if p.pos < len(p.toks) && p.toks[p.pos].kind == kind {
		p.pos++
		return true
	}
	return false
}

func (p *parser) remember(name string) {
	for _, existing := range p.idents {
		if existing == name {
			return
		}
	}
	p.idents = append(p.idents, name)
}

func truthy(v any) bool {
	switch typed := v.(type) {
	case nil:
		return false
	case bool:
		return typed
	case string:
		trimmed := strings.TrimSpace(typed)
		if b, err := strconv.ParseBool(trimmed); err == nil {
			return b
		}
		return trimmed != ""
	case float64:
		return typed != 0
	case int:
		return typed != 0
	default:
		return true
	}
}

func number(v any) (float64, bool) {
	switch typed := v.(type) {
	case float64:
		return typed, true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprint(typed)
	}
}
