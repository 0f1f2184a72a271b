// Package parser turns human-written strings such as "1 kA / m * 3.14 m^2"
// or "(1 A + 2i A)^2" into quantities.
//
// The syntax combines real and imaginary numbers (2, 3.5, 2i, 2 j),
// powers of ten (e5, * 10^-3), infinities, SI unit symbols with metric
// prefixes and integer exponents (kA, mm^2, kg), derived units (V, N,
// Nm, W, J, Hz, rpm, Wb, T, H, S, t, Ohm, Ω), temperatures (K, °C),
// angles (degree, rad; values are normalized to radians), the constant
// pi, percentages, the operators + - * / and round brackets with an
// optional integer exponent ")^n". Multiplication is implicit between
// adjacent values and units; plain numbers still require an explicit
// operator between them.
//
// Parsing is a single pass and allocation-light: each call owns its
// lexer and evaluation stack, so the package is safe for concurrent
// use. Failures are reported as *ParseError with the exact byte span
// of the offending input.
package parser

import (
	"github.com/leapstack-labs/dynq/pkg/quantity"
)

func init() {
	// Lets pkg/quantity decode quantities from their string form
	// without importing this package.
	quantity.RegisterStringParser(Parse)
}

// Parse evaluates the expression into a quantity. The value may be
// complex; use ParseReal when a real result is required. Errors are of
// type *ParseError.
func Parse(s string) (quantity.Quantity, error) {
	q, perr := evaluate(s)
	if perr != nil {
		return quantity.Quantity{}, perr
	}
	return q, nil
}

// ParseReal evaluates the expression and requires all imaginary
// components to cancel out, e.g. "(2i)^2" is fine but "5i" is not.
func ParseReal(s string) (quantity.Quantity, error) {
	q, perr := evaluate(s)
	if perr != nil {
		return quantity.Quantity{}, perr
	}
	if _, err := q.Real(); err != nil {
		notReal := err.(*quantity.NotRealError)
		return quantity.Quantity{}, &ParseError{
			Reason:  ReasonNotReal,
			NotReal: notReal,
		}
	}
	return q, nil
}
