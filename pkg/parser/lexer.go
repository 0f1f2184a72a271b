package parser

import (
	"sort"
	"unicode/utf8"

	"github.com/leapstack-labs/dynq/pkg/token"
)

// lexer scans an expression one token at a time. Whitespace between
// tokens is skipped. Each call to next dispatches over the rule table:
// every rule is tried at the cursor and the longest match wins, with
// priority breaking ties (an imaginary literal outranks a real one,
// which outranks unit symbols, and longer unit literals outrank
// prefixed shorter ones). A handler that rejects its match yields to
// the next-best candidate.
type lexer struct {
	input string
	pos   int
}

func newLexer(input string) *lexer {
	return &lexer{input: input}
}

func (l *lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		switch l.input[l.pos] {
		case ' ', '\t', '\n', '\f':
			l.pos++
		default:
			return
		}
	}
}

// next returns the next token. ok is false once the input is
// exhausted. Unrecognized input yields a *ParseError with the span of
// the offending rune.
func (l *lexer) next() (tok token.Token, ok bool, err *ParseError) {
	l.skipWhitespace()
	if l.pos >= len(l.input) {
		return token.Token{}, false, nil
	}

	rest := l.input[l.pos:]
	type candidate struct {
		rule   int
		length int
	}
	var cands []candidate
	for i := range rules {
		loc := rules[i].re.FindStringIndex(rest)
		if loc == nil {
			continue
		}
		cands = append(cands, candidate{rule: i, length: loc[1]})
	}

	if len(cands) == 0 {
		_, size := utf8.DecodeRuneInString(rest)
		span := token.Span{Start: l.pos, End: l.pos + size}
		return token.Token{}, false, &ParseError{
			Substring: l.input[span.Start:span.End],
			Span:      span,
			Reason:    ReasonUnexpectedToken,
		}
	}

	sort.SliceStable(cands, func(a, b int) bool {
		if cands[a].length != cands[b].length {
			return cands[a].length > cands[b].length
		}
		return rules[cands[a].rule].priority > rules[cands[b].rule].priority
	})

	for _, c := range cands {
		span := token.Span{Start: l.pos, End: l.pos + c.length}
		tok, built := rules[c.rule].build(rest[:c.length], span)
		if !built {
			continue
		}
		l.pos = span.End
		return tok, true, nil
	}

	// Every candidate's handler rejected; report the longest match.
	span := token.Span{Start: l.pos, End: l.pos + cands[0].length}
	return token.Token{}, false, &ParseError{
		Substring: l.input[span.Start:span.End],
		Span:      span,
		Reason:    ReasonUnexpectedToken,
	}
}

// Lex tokenizes the whole input. Parsing drives the lexer internally;
// this entry point exists for inspection and tests.
func Lex(input string) ([]token.Token, error) {
	lx := newLexer(input)
	var out []token.Token
	for {
		tok, ok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tok)
	}
}
