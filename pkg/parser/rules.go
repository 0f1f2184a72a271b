package parser

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/dynq/pkg/token"
)

// lexRule pairs an anchored pattern with the handler that turns its
// match into a token. Among all rules matching at the cursor the
// longest match wins; equal lengths are broken by priority. A handler
// may reject its match (e.g. an unknown prefix letter), in which case
// the lexer falls through to the next-best candidate.
type lexRule struct {
	re       *regexp.Regexp
	priority int
	build    func(match string, span token.Span) (token.Token, bool)
}

const prefixClass = `[a-zA-Zµ]?`

var rules = buildRules()

func buildRules() []lexRule {
	rs := []lexRule{
		// Imaginary literal: digits with an optional fraction, an
		// optional space, then i or j. Bare "i" means 1i.
		{
			re:       regexp.MustCompile(`^(\d*)(\.\d+)? ?[ij]`),
			priority: 4,
			build: func(m string, sp token.Span) (token.Token, bool) {
				v, ok := imagValue(m)
				if !ok {
					return token.Token{}, false
				}
				return token.Token{Kind: token.Imag, Value: v, Span: sp}, true
			},
		},
		// Real literal, integer or float.
		{
			re:       regexp.MustCompile(`^(\d*)((\.)?\d+)`),
			priority: 3,
			build: func(m string, sp token.Span) (token.Token, bool) {
				v, err := strconv.ParseFloat(m, 64)
				if err != nil {
					return token.Token{}, false
				}
				return token.Token{Kind: token.Real, Value: v, Span: sp}, true
			},
		},
		// Power of ten, "* 10^x" form.
		{
			re:       regexp.MustCompile(`^\* ?10\^-?\d+`),
			priority: 1,
			build: func(m string, sp token.Span) (token.Token, bool) {
				exp, ok := caretSuffix(m)
				if !ok {
					return token.Token{}, false
				}
				return token.Token{Kind: token.PowerOfTen, Exponent: exp, Span: sp}, true
			},
		},
		// Power of ten, "ex" form.
		{
			re:       regexp.MustCompile(`^e-?\d+`),
			priority: 1,
			build: func(m string, sp token.Span) (token.Token, bool) {
				exp, err := strconv.Atoi(m[1:])
				if err != nil {
					return token.Token{}, false
				}
				return token.Token{Kind: token.PowerOfTen, Exponent: exp, Span: sp}, true
			},
		},
		simpleRule(`^-(?:infinity|Infinity|INFINITY|\.inf|\.Inf|\.INF|inf|Inf|INF)`, token.NegInfinity),
		simpleRule(`^(?:infinity|Infinity|INFINITY|\.inf|\.Inf|\.INF|inf|Inf|INF)`, token.Infinity),
		simpleRule(`^\(`, token.LeftBracket),
		// Closing bracket with an optional single exponent.
		{
			re:       regexp.MustCompile(`^\)(?:\^-?\d+)?`),
			priority: 1,
			build: func(m string, sp token.Span) (token.Token, bool) {
				exp := 1
				if strings.ContainsRune(m, '^') {
					var ok bool
					exp, ok = caretSuffix(m)
					if !ok {
						return token.Token{}, false
					}
				}
				return token.Token{Kind: token.RightBracket, Exponent: exp, Span: sp}, true
			},
		},
		simpleRule(`^\+`, token.Add),
		simpleRule(`^-`, token.Sub),
		simpleRule(`^\*`, token.Mul),
		simpleRule(`^/`, token.Div),
		simpleRule(`^%`, token.Percent),
	}

	units := []struct {
		kind    token.Kind
		symbols []string
	}{
		{token.Second, []string{"s"}},
		{token.Meter, []string{"m"}},
		{token.Gram, []string{"g"}},
		{token.Ampere, []string{"A"}},
		{token.Kelvin, []string{"K"}},
		{token.Mol, []string{"mol"}},
		{token.Candela, []string{"cd"}},
		{token.Celsius, []string{"°C"}},
		{token.Volt, []string{"V"}},
		{token.Newton, []string{"N"}},
		{token.NewtonMeter, []string{"Nm"}},
		{token.Watt, []string{"W"}},
		{token.Joule, []string{"J"}},
		{token.Hertz, []string{"Hz"}},
		{token.RPM, []string{"rpm"}},
		{token.Weber, []string{"Wb"}},
		{token.Tesla, []string{"T"}},
		{token.Henry, []string{"H"}},
		{token.Siemens, []string{"S"}},
		{token.Ton, []string{"t"}},
		{token.Ohm, []string{"Ohm", "ohm", "Ω"}},
	}
	for _, u := range units {
		rs = append(rs, unitRule(u.kind, u.symbols))
	}

	// Constants and angle units. Longer spellings come first so the
	// regex alternation prefers them.
	rs = append(rs,
		unitRule(token.Pi, []string{"pi", "π", "PI", "Pi"}),
		unitRule(token.Degree, []string{"degree", "Degree", "deg", "Deg", "°"}),
		unitRule(token.Radian, []string{"radians", "Radians", "rad", "Rad"}),
	)

	return rs
}

func simpleRule(pattern string, kind token.Kind) lexRule {
	re := regexp.MustCompile(pattern)
	return lexRule{
		re:       re,
		priority: 1,
		build: func(_ string, sp token.Span) (token.Token, bool) {
			return token.Token{Kind: kind, Span: sp}, true
		},
	}
}

// unitRule builds the rule for a unit with one or more spellings: an
// optional single prefix letter, the symbol, and an optional integer
// exponent suffix. The priority is the longest spelling's rune count:
// on an equal-length match a multi-letter symbol outranks a prefixed
// shorter one, so "Nm" is a newton meter rather than an unknown
// prefix on the meter.
func unitRule(kind token.Kind, symbols []string) lexRule {
	priority := 0
	for _, s := range symbols {
		if n := len([]rune(s)); n > priority {
			priority = n
		}
	}
	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = regexp.QuoteMeta(s)
	}
	re := regexp.MustCompile(`^` + prefixClass + `(?:` + strings.Join(quoted, "|") + `)(?:\^-?\d+)?`)
	return lexRule{
		re:       re,
		priority: priority,
		build: func(m string, sp token.Span) (token.Token, bool) {
			exps, ok := unitExponents(m, symbols)
			if !ok {
				return token.Token{}, false
			}
			return token.Token{Kind: kind, Exponents: exps, Span: sp}, true
		},
	}
}

// unitExponents resolves the prefix and exponent of a matched unit,
// trying each spelling in order.
func unitExponents(m string, symbols []string) (token.Exponents, bool) {
	for _, sym := range symbols {
		if exps, ok := exponentsForSymbol(m, sym); ok {
			return exps, true
		}
	}
	return token.Exponents{}, false
}

func exponentsForSymbol(m, sym string) (token.Exponents, bool) {
	prefix := 0
	if hasPrefixLetter(m, sym) {
		r, _ := utf8.DecodeRuneInString(m)
		p, ok := token.PrefixPower(r)
		if !ok {
			return token.Exponents{}, false
		}
		prefix = p
	}
	exp := 1
	if strings.ContainsRune(m, '^') {
		var ok bool
		exp, ok = caretSuffix(m)
		if !ok {
			return token.Exponents{}, false
		}
	}
	return token.Exponents{Unit: exp, Prefix: prefix}, true
}

// hasPrefixLetter reports whether the match carries a prefix letter in
// front of the unit symbol: its second rune equals the symbol's first.
func hasPrefixLetter(m, sym string) bool {
	mr := []rune(m)
	sr := []rune(sym)
	return len(mr) > 1 && len(sr) > 0 && mr[1] == sr[0]
}

// caretSuffix parses the integer after the '^' in the match.
func caretSuffix(m string) (int, bool) {
	i := strings.IndexByte(m, '^')
	if i < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(m[i+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// imagValue extracts the numerical value of an imaginary literal,
// stripping the optional space and the trailing i or j. A bare marker
// means 1i.
func imagValue(m string) (float64, bool) {
	if i := strings.IndexByte(m, ' '); i >= 0 {
		if i == 0 {
			return 1, true
		}
		v, err := strconv.ParseFloat(m[:i], 64)
		return v, err == nil
	}
	if len(m) == 1 {
		return 1, true
	}
	v, err := strconv.ParseFloat(m[:len(m)-1], 64)
	return v, err == nil
}
