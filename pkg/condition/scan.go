package condition

import (
	"fmt"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokIdent tokenKind = iota
	tokString
	tokNumber
	tokBool
	tokNull
	tokEq
	tokNeq
	tokAnd
	tokOr
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

type operator struct {
	text string
	kind tokenKind
}

// operators lists the operator spellings, longer ones first.
var operators = []operator{
	{"==", tokEq},
	{"!=", tokNeq},
	{"&&", tokAnd},
	{"||", tokOr},
	{"!", tokNot},
	{"(", tokLParen},
	{")", tokRParen},
}

func scan(input string) ([]token, error) {
	var toks []token
	for i := 0; i < len(input); {
		ch := input[i]
		if isSpace(ch) {
			i++
			continue
		}

		if op, ok := matchOperator(input[i:]); ok {
			toks = append(toks, token{kind: op.kind, text: op.text})
			i += len(op.text)
			continue
		}

		switch ch {
		case '=', '&', '|':
			return nil, fmt.Errorf("%w: stray %q at offset %d", ErrSyntax, ch, i)
		case '"', '\'':
			end := closingQuote(input, i)
			if end < 0 {
				return nil, fmt.Errorf("%w: unterminated string at offset %d", ErrSyntax, i)
			}
			raw := input[i : end+1]
			if ch == '\'' {
				raw = `"` + strings.ReplaceAll(raw[1:len(raw)-1], `"`, `\"`) + `"`
			}
			value, err := strconv.Unquote(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid string %s", ErrSyntax, input[i:end+1])
			}
			toks = append(toks, token{kind: tokString, text: value})
			i = end + 1
			continue
		}

		start := i
		for i < len(input) && !isSpace(input[i]) && !strings.ContainsRune("()!=&|\"'", rune(input[i])) {
			i++
		}
		word := input[start:i]
		toks = append(toks, classify(word))
	}
	return toks, nil
}

func matchOperator(rest string) (operator, bool) {
	for _, op := range operators {
		if strings.HasPrefix(rest, op.text) {
			return op, true
		}
	}
	return operator{}, false
}

func closingQuote(input string, start int) int {
	quote := input[start]
	for i := start + 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}
	return -1
}

func classify(word string) token {
	switch strings.ToLower(word) {
	case "true", "false":
		return token{kind: tokBool, text: strings.ToLower(word)}
	case "null", "nil":
		return token{kind: tokNull, text: "null"}
	}
	if looksNumeric(word) {
		return token{kind: tokNumber, text: word}
	}
	return token{kind: tokIdent, text: word}
}

func looksNumeric(word string) bool {
	if word == "" || !strings.ContainsAny(word[:1], "0123456789+-.") {
		return false
	}
	_, err := strconv.ParseFloat(word, 64)
	return err == nil
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}
