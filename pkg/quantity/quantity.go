// Package quantity implements physical quantities whose unit of
// measurement is carried at runtime rather than in the type system.
//
// A Quantity pairs a complex numerical value with the SI base-unit
// exponents of pkg/unit. Complex values cover quantities such as
// alternating currents; use Real to narrow once all imaginary
// components have cancelled out.
package quantity

import (
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"github.com/leapstack-labs/dynq/pkg/unit"
)

// Quantity is a physical quantity: a numerical value together with the
// exponents of its SI base units. Quantities are value types; all
// operations return a new Quantity and failed checked operations leave
// their operands untouched.
type Quantity struct {
	Value complex128
	Unit  unit.Unit
}

// New returns a quantity with the given value and unit.
func New(value complex128, u unit.Unit) Quantity {
	return Quantity{Value: value, Unit: u}
}

// FromReal returns a quantity with a purely real value.
func FromReal(value float64, u unit.Unit) Quantity {
	return Quantity{Value: complex(value, 0), Unit: u}
}

// TryAdd adds two quantities. It fails with *UnitsNotEqualError unless
// both units are identical.
func (q Quantity) TryAdd(other Quantity) (Quantity, error) {
	if q.Unit != other.Unit {
		return Quantity{}, &UnitsNotEqualError{Left: q.Unit, Right: other.Unit}
	}
	return Quantity{Value: q.Value + other.Value, Unit: q.Unit}, nil
}

// TrySub subtracts other from q. It fails with *UnitsNotEqualError
// unless both units are identical.
func (q Quantity) TrySub(other Quantity) (Quantity, error) {
	if q.Unit != other.Unit {
		return Quantity{}, &UnitsNotEqualError{Left: q.Unit, Right: other.Unit}
	}
	return Quantity{Value: q.Value - other.Value, Unit: q.Unit}, nil
}

// Mul multiplies two quantities, adding unit exponents. A product of
// zero and an infinite component yields 0 instead of the IEEE NaN;
// the guard is applied per partial product of the complex multiply.
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{
		Value: mulNoNaN(q.Value, other.Value),
		Unit:  q.Unit.Mul(other.Unit),
	}
}

// Div divides q by other, subtracting unit exponents. When the
// numerator is infinite, NaN components of the quotient are replaced
// by 0 so that e.g. inf/x keeps a meaningful magnitude.
func (q Quantity) Div(other Quantity) Quantity {
	v := q.Value / other.Value
	if cmplx.IsInf(q.Value) {
		re, im := real(v), imag(v)
		if math.IsNaN(re) {
			re = 0
		}
		if math.IsNaN(im) {
			im = 0
		}
		v = complex(re, im)
	}
	return Quantity{Value: v, Unit: q.Unit.Div(other.Unit)}
}

// Pow raises the quantity to an integer power. The value is computed
// by repeated multiplication so that Gaussian-integer results stay
// exact, e.g. (2i)^2 == -4.
func (q Quantity) Pow(n int) Quantity {
	return Quantity{Value: powInt(q.Value, n), Unit: q.Unit.Pow(n)}
}

// Root returns the n-th root. It fails unless every unit exponent is
// divisible by n. Purely real values use the real power function, so
// the root of a negative real is NaN rather than a principal complex
// root.
func (q Quantity) Root(n int) (Quantity, error) {
	u, err := q.Unit.Root(n)
	if err != nil {
		return Quantity{}, err
	}
	var v complex128
	if imag(q.Value) == 0 {
		v = complex(math.Pow(real(q.Value), 1/float64(n)), 0)
	} else {
		v = cmplx.Pow(q.Value, complex(1/float64(n), 0))
	}
	return Quantity{Value: v, Unit: u}, nil
}

// Real narrows the value to a float64. It fails with *NotRealError if
// the imaginary component is nonzero.
func (q Quantity) Real() (float64, error) {
	if imag(q.Value) != 0 {
		return 0, &NotRealError{Value: q.Value, TargetType: "float64"}
	}
	return real(q.Value), nil
}

// IsDimensionless reports whether the quantity carries no units.
func (q Quantity) IsDimensionless() bool {
	return q.Unit.IsDimensionless()
}

// String renders the quantity as its magnitude followed by the nonzero
// unit factors, e.g. "9.81 s^-2 m". A value with a nonzero imaginary
// component is parenthesized: "(3+4i) A^2".
func (q Quantity) String() string {
	var b strings.Builder
	if imag(q.Value) == 0 {
		b.WriteString(formatFloat(real(q.Value)))
	} else {
		b.WriteByte('(')
		b.WriteString(formatComplex(q.Value))
		b.WriteByte(')')
	}
	if f := q.Unit.Format(); f != "" {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	return b.String()
}

// Values extracts the values of a slice of quantities without checking
// their units.
func Values(qs []Quantity) []complex128 {
	out := make([]complex128, len(qs))
	for i, q := range qs {
		out[i] = q.Value
	}
	return out
}

// ValuesChecked extracts the values of a slice of quantities. It fails
// with *UnitMismatchError unless all elements share the unit of the
// first one.
func ValuesChecked(qs []Quantity) ([]complex128, error) {
	if len(qs) == 0 {
		return nil, nil
	}
	expected := qs[0].Unit
	out := make([]complex128, len(qs))
	for i, q := range qs {
		if q.Unit != expected {
			return nil, &UnitMismatchError{Expected: expected, Found: q.Unit}
		}
		out[i] = q.Value
	}
	return out, nil
}

// powInt computes z^n by binary exponentiation. Exact for integer
// operands, unlike the exp/log based cmplx.Pow.
func powInt(z complex128, n int) complex128 {
	if n < 0 {
		return 1 / powInt(z, -n)
	}
	result := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			result *= z
		}
		z *= z
		n >>= 1
	}
	return result
}

// mulNoNaN multiplies two complex numbers, treating each 0 times
// infinity partial product as 0 instead of NaN.
func mulNoNaN(a, b complex128) complex128 {
	ar, ai := real(a), imag(a)
	br, bi := real(b), imag(b)

	var re, im float64
	if !(math.IsInf(ar, 0) && br == 0) && !(ar == 0 && math.IsInf(br, 0)) {
		re += ar * br
	}
	if !(math.IsInf(ai, 0) && br == 0) && !(ai == 0 && math.IsInf(br, 0)) {
		im += ai * br
	}
	if !(math.IsInf(ar, 0) && bi == 0) && !(ar == 0 && math.IsInf(bi, 0)) {
		im += ar * bi
	}
	if !(math.IsInf(ai, 0) && bi == 0) && !(ai == 0 && math.IsInf(bi, 0)) {
		re -= ai * bi
	}
	return complex(re, im)
}

// formatFloat renders the shortest positional decimal, never switching
// to exponent notation: 1e-6 prints as "0.000001".
func formatFloat(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatComplex renders "a+bi" or "a-bi" without surrounding brackets.
func formatComplex(v complex128) string {
	re, im := real(v), imag(v)
	if im < 0 {
		return formatFloat(re) + "-" + formatFloat(-im) + "i"
	}
	return formatFloat(re) + "+" + formatFloat(im) + "i"
}
