package parser

import (
	"errors"
	"math"

	"github.com/leapstack-labs/dynq/pkg/quantity"
	"github.com/leapstack-labs/dynq/pkg/token"
	"github.com/leapstack-labs/dynq/pkg/unit"
)

// prevClass tracks the operator class of the previous token, used to
// reject operator runs like "-+" or "* /".
type prevClass int

const (
	prevOther prevClass = iota
	prevAdd
	prevSub
	prevMul
	prevDiv
)

type evalOp int

const (
	opAdd evalOp = iota
	opMul
	opDiv
)

// stackEntry is a quantity together with the operation that follows
// it. stack = [add(x), mul(y)] with active z reads "x + y * z".
type stackEntry struct {
	q  quantity.Quantity
	op evalOp
}

// evaluate runs the operator-stack evaluation over the token stream.
// The accumulator (active) absorbs adjacent values and units
// multiplicatively; + and - push the accumulator onto the stack; /
// pushes a pending divisor that resolves against the next value, or at
// the closing bracket if the divisor is bracketed.
func evaluate(s string) (quantity.Quantity, *ParseError) {
	lx := newLexer(s)

	var active *quantity.Quantity
	var stack []stackEntry
	bracketLevel := 0
	prev := prevOther
	divisionPending := false
	prevNumber := false
	lastSpan := token.Span{}

	errAt := func(span token.Span, reason Reason) *ParseError {
		return &ParseError{Substring: s[span.Start:span.End], Span: span, Reason: reason}
	}
	unitsErrAt := func(span token.Span, addErr error) *ParseError {
		var une *quantity.UnitsNotEqualError
		errors.As(addErr, &une)
		return &ParseError{
			Substring: s[span.Start:span.End],
			Span:      span,
			Reason:    ReasonUnitsNotEqual,
			Units:     une,
		}
	}
	setActive := func(q quantity.Quantity) { active = &q }

	for {
		tok, ok, lerr := lx.next()
		if lerr != nil {
			return quantity.Quantity{}, lerr
		}
		if !ok {
			break
		}
		lastSpan = tok.Span

		wasNumber := prevNumber
		prevNumber = false

		switch tok.Kind {
		case token.Real, token.Imag:
			if wasNumber {
				return quantity.Quantity{}, errAt(tok.Span, ReasonTwoNumbersWithoutOperator)
			}
			v := complex(tok.Value, 0)
			if tok.Kind == token.Imag {
				v = complex(0, tok.Value)
			}
			lit := quantity.New(v, unit.Unit{})
			if active != nil {
				setActive(active.Mul(lit))
			} else {
				setActive(lit)
			}
			prevNumber = true

		case token.Infinity:
			active = includeInfinity(active, math.Inf(1))

		case token.NegInfinity:
			active = includeInfinity(active, math.Inf(-1))

		case token.Mul:
			// Multiplication is implicit; the token itself is a no-op
			// beyond validation.
			if prev != prevOther {
				return quantity.Quantity{}, errAt(tok.Span, ReasonTwoOperatorsWithoutNumber)
			}
			if active == nil {
				return quantity.Quantity{}, errAt(tok.Span, ReasonMustNotStartWith)
			}
			prev = prevMul
			continue

		case token.Div:
			if prev != prevOther {
				return quantity.Quantity{}, errAt(tok.Span, ReasonTwoOperatorsWithoutNumber)
			}
			if active == nil {
				return quantity.Quantity{}, errAt(tok.Span, ReasonMustNotStartWith)
			}
			stack = append(stack, stackEntry{q: *active, op: opDiv})
			active = nil
			prev = prevDiv
			divisionPending = true
			continue

		case token.Percent:
			q := adjust(active)
			q.Value = scaleValue(q.Value, 1e-2)
			setActive(q)

		case token.Add, token.Sub:
			// "*+1" and "/-1" are fine, "++1" and "-+1" are not.
			if prev == prevAdd || prev == prevSub {
				return quantity.Quantity{}, errAt(tok.Span, ReasonTwoOperatorsWithoutNumber)
			}
			sign := 1.0
			cls := prevAdd
			if tok.Kind == token.Sub {
				sign = -1.0
				cls = prevSub
			}
			if active != nil {
				stack = append(stack, stackEntry{q: *active, op: opAdd})
			}
			setActive(quantity.FromReal(sign, unit.Unit{}))
			prev = cls
			continue

		case token.PowerOfTen:
			if active != nil {
				q := *active
				q.Value = scaleValue(q.Value, pow10(tok.Exponent))
				setActive(q)
			} else {
				setActive(quantity.FromReal(pow10(tok.Exponent), unit.Unit{}))
			}

		case token.LeftBracket:
			if active != nil {
				stack = append(stack, stackEntry{q: *active, op: opMul})
				active = nil
			} else if prev == prevOther {
				// No operand and no operator before the bracket: push a
				// neutral multiplication so the stack folding of the
				// closing bracket stops here.
				stack = append(stack, stackEntry{q: quantity.FromReal(1, unit.Unit{}), op: opMul})
			}
			bracketLevel++

		case token.RightBracket:
			if bracketLevel == 0 || active == nil {
				return quantity.Quantity{}, errAt(tok.Span, ReasonUnbalancedBrackets)
			}
			// Fold the stack into the bracket's result, up to and
			// including the first multiplication or division. The
			// optional `)^n` exponent applies before that last step.
			q := *active
			active = nil
			folded := false
			for len(stack) > 0 && !folded {
				entry := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				switch entry.op {
				case opAdd:
					sum, addErr := q.TryAdd(entry.q)
					if addErr != nil {
						return quantity.Quantity{}, unitsErrAt(tok.Span, addErr)
					}
					q = sum
				case opMul:
					q = entry.q.Mul(q.Pow(tok.Exponent))
					folded = true
				case opDiv:
					q = entry.q.Div(q.Pow(tok.Exponent))
					folded = true
				}
			}
			setActive(q)
			bracketLevel--

		default:
			// Unit symbols and constants merge into the accumulator.
			setActive(applyUnit(adjust(active), tok))
		}

		// A pending divisor resolves against the value just produced,
		// unless that value is still being built inside a bracket (then
		// the closing bracket performs the division).
		if divisionPending {
			if len(stack) == 0 {
				return quantity.Quantity{}, errAt(tok.Span, ReasonUnbalancedBrackets)
			}
			if top := stack[len(stack)-1]; top.op == opDiv && active != nil {
				stack = stack[:len(stack)-1]
				setActive(top.q.Div(*active))
			}
		}
		divisionPending = false
		prev = prevOther
	}

	if bracketLevel != 0 {
		return quantity.Quantity{}, errAt(lastSpan, ReasonUnbalancedBrackets)
	}

	if len(stack) == 0 {
		if active != nil {
			return *active, nil
		}
		return quantity.Quantity{}, errAt(lastSpan, ReasonInputIsEmpty)
	}

	// Fold the remaining stack front to back. Only additions can be
	// left at this point; multiplications and divisions were resolved
	// at their closing brackets or immediately after the divisor.
	var acc quantity.Quantity
	if active != nil {
		acc = *active
	} else {
		acc = stack[len(stack)-1].q
		stack = stack[:len(stack)-1]
	}
	for _, entry := range stack {
		switch entry.op {
		case opAdd:
			sum, addErr := acc.TryAdd(entry.q)
			if addErr != nil {
				return quantity.Quantity{}, unitsErrAt(lastSpan, addErr)
			}
			acc = sum
		case opMul:
			acc = entry.q.Mul(acc)
		case opDiv:
			acc = entry.q.Div(acc)
		}
	}
	return acc, nil
}

// adjust returns the accumulator, creating a neutral 1 when absent so
// units and constants can merge multiplicatively.
func adjust(active *quantity.Quantity) quantity.Quantity {
	if active == nil {
		return quantity.FromReal(1, unit.Unit{})
	}
	return *active
}

// includeInfinity blows the accumulator's nonzero components up to
// infinity, keeping each component's own sign. Zero components stay
// zero, so "0 * inf" is 0. Without an accumulator it installs a bare
// infinity.
func includeInfinity(active *quantity.Quantity, inf float64) *quantity.Quantity {
	if active == nil {
		q := quantity.FromReal(inf, unit.Unit{})
		return &q
	}
	re, im := real(active.Value), imag(active.Value)
	if re != 0 {
		re = math.Copysign(inf, re)
	}
	if im != 0 {
		im = math.Copysign(inf, im)
	}
	q := quantity.New(complex(re, im), active.Unit)
	return &q
}

func pow10(n int) float64 {
	return math.Pow(10, float64(n))
}

// scaleValue multiplies each component by a real factor separately: a
// full complex multiplication turns an infinite real component into a
// NaN imaginary one through the Inf*0 cross term. Zero times infinity
// coerces to zero, like quantity multiplication.
func scaleValue(v complex128, s float64) complex128 {
	return complex(scalePart(real(v), s), scalePart(imag(v), s))
}

func scalePart(v, s float64) float64 {
	if (v == 0 && math.IsInf(s, 0)) || (s == 0 && math.IsInf(v, 0)) {
		return 0
	}
	return v * s
}

// applyUnit merges a unit or constant token into the quantity: its
// base-dimension exponents add up and the value is scaled by the
// metric prefix plus any unit-specific conversion factor.
func applyUnit(q quantity.Quantity, tok token.Token) quantity.Quantity {
	u := tok.Exponents.Unit
	scale := pow10(tok.Exponents.Exponent())

	switch tok.Kind {
	case token.Second:
		q.Unit.Second += u
	case token.Meter:
		q.Unit.Meter += u
	case token.Gram:
		// The SI base unit is the kilogram, so a bare gram scales by
		// an extra 10^-3.
		q.Unit.Kilogram += u
		scale = pow10(u * (tok.Exponents.Prefix - 3))
	case token.Ampere:
		q.Unit.Ampere += u
	case token.Kelvin:
		q.Unit.Kelvin += u
	case token.Mol:
		q.Unit.Mol += u
	case token.Candela:
		q.Unit.Candela += u
	case token.Celsius:
		q.Unit.Kelvin += u
		q.Value += complex(math.Pow(273.15, float64(u)), 0)
	case token.Volt:
		q.Unit.Kilogram += u
		q.Unit.Meter += 2 * u
		q.Unit.Ampere -= u
		q.Unit.Second -= 3 * u
	case token.Newton:
		q.Unit.Kilogram += u
		q.Unit.Meter += u
		q.Unit.Second -= 2 * u
	case token.NewtonMeter, token.Joule:
		q.Unit.Kilogram += u
		q.Unit.Meter += 2 * u
		q.Unit.Second -= 2 * u
	case token.Watt:
		q.Unit.Kilogram += u
		q.Unit.Meter += 2 * u
		q.Unit.Second -= 3 * u
	case token.Hertz:
		q.Unit.Second -= u
	case token.RPM:
		q.Unit.Second -= u
		scale *= math.Pow(1.0/60.0, float64(u))
	case token.Weber:
		q.Unit.Kilogram += u
		q.Unit.Meter += 2 * u
		q.Unit.Ampere -= u
		q.Unit.Second -= 2 * u
	case token.Tesla:
		q.Unit.Kilogram += u
		q.Unit.Ampere -= u
		q.Unit.Second -= 2 * u
	case token.Henry:
		q.Unit.Kilogram += u
		q.Unit.Meter += 2 * u
		q.Unit.Ampere -= 2 * u
		q.Unit.Second -= 2 * u
	case token.Siemens:
		q.Unit.Kilogram -= u
		q.Unit.Meter -= 2 * u
		q.Unit.Second += 3 * u
		q.Unit.Ampere += 2 * u
	case token.Ton:
		q.Unit.Kilogram += u
		scale = pow10(u * (tok.Exponents.Prefix + 3))
	case token.Ohm:
		q.Unit.Kilogram += u
		q.Unit.Meter += 2 * u
		q.Unit.Second -= 3 * u
		q.Unit.Ampere -= 2 * u
	case token.Pi:
		scale *= math.Pow(math.Pi, float64(u))
	case token.Degree:
		scale *= math.Pow(math.Pi/180, float64(u))
	case token.Radian:
		// Radians are the base angle representation; only the prefix
		// scaling applies.
	}

	q.Value = scaleValue(q.Value, scale)
	return q
}
