package parser_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dynq/pkg/parser"
	"github.com/leapstack-labs/dynq/pkg/quantity"
	"github.com/leapstack-labs/dynq/pkg/token"
	"github.com/leapstack-labs/dynq/pkg/unit"
)

func assertQuantity(t *testing.T, want quantity.Quantity, got quantity.Quantity) {
	t.Helper()
	assert.Equal(t, want.Unit, got.Unit)
	assert.InDelta(t, real(want.Value), real(got.Value), 1e-9)
	assert.InDelta(t, imag(want.Value), imag(got.Value), 1e-9)
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  quantity.Quantity
	}{
		{"42", quantity.FromReal(42, unit.Unit{})},
		{"2e5", quantity.FromReal(200000, unit.Unit{})},
		{"2 * 10^-3", quantity.FromReal(0.002, unit.Unit{})},
		{"1 km", quantity.FromReal(1000, unit.Length())},
		{"1 mg", quantity.FromReal(1e-6, unit.Mass())},
		{"1 t", quantity.FromReal(1000, unit.Mass())},
		{"1 MHz", quantity.FromReal(1e6, unit.Frequency())},
		{"60 rpm", quantity.FromReal(1, unit.Frequency())},
		{"1 kOhm", quantity.FromReal(1000, unit.Resistance())},
		{"1 V/A", quantity.FromReal(1, unit.Resistance())},
		{"2 °C", quantity.FromReal(275.15, unit.Temperature())},
		{"50 %", quantity.FromReal(0.5, unit.Unit{})},
		{"pi", quantity.FromReal(math.Pi, unit.Unit{})},
		{"180 degree/s", quantity.FromReal(math.Pi, unit.Frequency())},
		{"90 deg", quantity.FromReal(math.Pi/2, unit.Unit{})},
		{"2 rad", quantity.FromReal(2, unit.Unit{})},
		{"5 N * 2 m", quantity.FromReal(10, unit.Energy())},
		{"3 Nm", quantity.FromReal(3, unit.Torque())},
		{"2 mNm", quantity.FromReal(0.002, unit.Torque())},
		{"1 kA / m * 3.14 m^2", quantity.FromReal(3140, unit.Unit{Meter: 1, Ampere: 1})},
		{"(2 + 3) A", quantity.FromReal(5, unit.Current())},
		{"12 A - (3 A + 5 A)", quantity.FromReal(4, unit.Current())},
		{"12 A / (1 + 5) 2A", quantity.FromReal(4, unit.Unit{Ampere: 2})},
		{"-4 / -4", quantity.FromReal(1, unit.Unit{})},
		{"(1 A + 2i A)^2", quantity.New(complex(-3, 4), unit.Unit{Ampere: 2})},
		{"(2i)^2", quantity.FromReal(-4, unit.Unit{})},
		{"2i * 3i", quantity.FromReal(-6, unit.Unit{})},
		{
			"3e9((0.5 / kg - 1.5 / kg)) ms^3 + 2 s^3/kg",
			quantity.FromReal(-1, unit.Unit{Second: 3, Kilogram: -1}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parser.Parse(tt.input)
			require.NoError(t, err)
			assertQuantity(t, tt.want, got)
		})
	}
}

func TestParseInfinity(t *testing.T) {
	q, err := parser.Parse("inf A")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(q.Value), 1))
	assert.Equal(t, 0.0, imag(q.Value))
	assert.Equal(t, unit.Current(), q.Unit)

	q, err = parser.Parse("-infinity")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(q.Value), -1))

	// Prefix and power-of-ten scaling keep the zero imaginary
	// component zero.
	q, err = parser.Parse("inf e3")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(q.Value), 1))
	assert.Equal(t, 0.0, imag(q.Value))

	q, err = parser.Parse("-infinity km")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(q.Value), -1))
	assert.Equal(t, 0.0, imag(q.Value))
	assert.Equal(t, unit.Length(), q.Unit)

	q, err = parser.ParseReal("inf A")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(q.Value), 1))

	// Infinity absorbs a nonzero accumulator but never a zero one.
	q, err = parser.Parse("0 * inf")
	require.NoError(t, err)
	assert.Equal(t, complex(0, 0), q.Value)

	q, err = parser.Parse("-2 * inf")
	require.NoError(t, err)
	assert.True(t, math.IsInf(real(q.Value), -1))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input     string
		reason    parser.Reason
		substring string
		span      token.Span
	}{
		{"", parser.ReasonInputIsEmpty, "", token.Span{}},
		{"   ", parser.ReasonInputIsEmpty, "", token.Span{}},
		{"2 l", parser.ReasonUnexpectedToken, "l", token.Span{Start: 2, End: 3}},
		{"(2)^2^3", parser.ReasonUnexpectedToken, "^", token.Span{Start: 5, End: 6}},
		{"5 32", parser.ReasonTwoNumbersWithoutOperator, "32", token.Span{Start: 2, End: 4}},
		{"3 / * 2", parser.ReasonTwoOperatorsWithoutNumber, "*", token.Span{Start: 4, End: 5}},
		{"++1", parser.ReasonTwoOperatorsWithoutNumber, "+", token.Span{Start: 1, End: 2}},
		{"*3", parser.ReasonMustNotStartWith, "*", token.Span{Start: 0, End: 1}},
		{"/3", parser.ReasonMustNotStartWith, "/", token.Span{Start: 0, End: 1}},
		{"(1 + 2", parser.ReasonUnbalancedBrackets, "2", token.Span{Start: 5, End: 6}},
		{"1)", parser.ReasonUnbalancedBrackets, ")", token.Span{Start: 1, End: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := parser.Parse(tt.input)
			var perr *parser.ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.reason, perr.Reason)
			assert.Equal(t, tt.substring, perr.Substring)
			assert.Equal(t, tt.span, perr.Span)
		})
	}
}

func TestParseUnitsNotEqual(t *testing.T) {
	_, err := parser.Parse("1 + 2V")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.ReasonUnitsNotEqual, perr.Reason)
	require.NotNil(t, perr.Units)
	assert.Equal(t, unit.Voltage(), perr.Units.Left)
	assert.Equal(t, unit.Dimensionless(), perr.Units.Right)

	// The underlying unit error is reachable through errors.As.
	var une *quantity.UnitsNotEqualError
	require.ErrorAs(t, err, &une)
}

func TestParseReal(t *testing.T) {
	q, err := parser.ParseReal("(2i)^2")
	require.NoError(t, err)
	assert.Equal(t, complex(-4, 0), q.Value)

	_, err = parser.ParseReal("5i")
	var perr *parser.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.ReasonNotReal, perr.Reason)
	require.NotNil(t, perr.NotReal)
	assert.Equal(t, complex(0, 5), perr.NotReal.Value)
}

func TestParseEquivalentSpellings(t *testing.T) {
	pairs := [][2]string{
		{"1 km", "1e3 m"},
		{"3 A m", "3 m A"},
		{"1 Ohm", "1 Ω"},
		{"0.5", "50 %"},
		{"2i", "2 j"},
	}
	for _, p := range pairs {
		t.Run(p[0]+" == "+p[1], func(t *testing.T) {
			a, err := parser.Parse(p[0])
			require.NoError(t, err)
			b, err := parser.Parse(p[1])
			require.NoError(t, err)
			assertQuantity(t, a, b)
		})
	}
}

func TestParseStringRoundTrip(t *testing.T) {
	for _, q := range []quantity.Quantity{
		quantity.FromReal(9.81, unit.Unit{Second: -2, Meter: 1}),
		quantity.New(complex(1, 2), unit.Current()),
		quantity.FromReal(42, unit.Unit{}),
	} {
		t.Run(q.String(), func(t *testing.T) {
			got, err := parser.Parse(q.String())
			require.NoError(t, err)
			assert.Equal(t, q, got)
		})
	}
}

func TestParseConcurrent(t *testing.T) {
	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			for range 100 {
				q, err := parser.Parse("1 kA / m * 3.14 m^2")
				if err != nil {
					return err
				}
				if q.Unit != (unit.Unit{Meter: 1, Ampere: 1}) {
					return &quantity.UnitMismatchError{
						Expected: unit.Unit{Meter: 1, Ampere: 1},
						Found:    q.Unit,
					}
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}
