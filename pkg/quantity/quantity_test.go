package quantity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dynq/pkg/unit"
)

func TestTryAdd(t *testing.T) {
	a := FromReal(1, unit.Current())
	b := FromReal(2, unit.Current())

	sum, err := a.TryAdd(b)
	require.NoError(t, err)
	assert.Equal(t, complex(3, 0), sum.Value)
	assert.Equal(t, unit.Current(), sum.Unit)
}

func TestTryAddUnitMismatch(t *testing.T) {
	a := FromReal(1, unit.Current())
	v := FromReal(-5, unit.Voltage())

	_, err := v.TryAdd(a)
	require.Error(t, err)
	var unitsErr *UnitsNotEqualError
	require.ErrorAs(t, err, &unitsErr)
	assert.Equal(t, unit.Voltage(), unitsErr.Left)
	assert.Equal(t, unit.Current(), unitsErr.Right)
}

func TestTrySub(t *testing.T) {
	a := FromReal(1, unit.Current())
	b := FromReal(1, unit.Current())

	diff, err := a.TrySub(b)
	require.NoError(t, err)
	assert.Equal(t, complex(0, 0), diff.Value)

	_, err = a.TrySub(FromReal(1, unit.Voltage()))
	assert.Error(t, err)
}

func TestMulCombinesUnits(t *testing.T) {
	v := FromReal(2, unit.Voltage())
	a := FromReal(3, unit.Current())

	p := v.Mul(a)
	assert.Equal(t, complex(6, 0), p.Value)
	assert.Equal(t, unit.Power(), p.Unit)
}

func TestMulZeroTimesInfinity(t *testing.T) {
	zero := FromReal(0, unit.Unit{})
	inf := FromReal(math.Inf(1), unit.Current())

	assert.Equal(t, complex(0, 0), zero.Mul(inf).Value)
	assert.Equal(t, complex(0, 0), inf.Mul(zero).Value)

	// Components are guarded independently.
	mixed := New(complex(0, 2), unit.Unit{})
	got := mixed.Mul(inf)
	assert.Equal(t, 0.0, real(got.Value))
	assert.True(t, math.IsInf(imag(got.Value), 1))
}

func TestDivInfiniteNumerator(t *testing.T) {
	inf := FromReal(math.Inf(1), unit.Voltage())
	two := FromReal(2, unit.Current())

	got := inf.Div(two)
	assert.True(t, math.IsInf(real(got.Value), 1))
	assert.Equal(t, 0.0, imag(got.Value))
	assert.Equal(t, unit.Resistance(), got.Unit)
}

func TestPow(t *testing.T) {
	q := FromReal(2, unit.Unit{Ampere: 2})
	cubed := q.Pow(3)
	assert.Equal(t, complex(8, 0), cubed.Value)
	assert.Equal(t, 6, cubed.Unit.Ampere)

	// Exact for Gaussian integers.
	sq := New(complex(0, 2), unit.Unit{}).Pow(2)
	assert.Equal(t, complex(-4, 0), sq.Value)

	inv := FromReal(2, unit.Length()).Pow(-1)
	assert.Equal(t, complex(0.5, 0), inv.Value)
	assert.Equal(t, -1, inv.Unit.Meter)

	ident := FromReal(7, unit.Length()).Pow(0)
	assert.Equal(t, complex(1, 0), ident.Value)
	assert.True(t, ident.Unit.IsDimensionless())
}

func TestRoot(t *testing.T) {
	q := FromReal(9, unit.Area())
	root, err := q.Root(2)
	require.NoError(t, err)
	assert.InDelta(t, 3, real(root.Value), 1e-12)
	assert.Equal(t, unit.Length(), root.Unit)

	_, err = FromReal(9, unit.Length()).Root(2)
	var rootErr *unit.RootError
	require.ErrorAs(t, err, &rootErr)
}

func TestReal(t *testing.T) {
	v, err := FromReal(2.5, unit.Unit{}).Real()
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	_, err = New(complex(0, 5), unit.Unit{}).Real()
	var notReal *NotRealError
	require.ErrorAs(t, err, &notReal)
	assert.Equal(t, complex(0, 5), notReal.Value)
	assert.EqualError(t, notReal, "could not convert from 0+5i into target type float64")
}

func TestString(t *testing.T) {
	tests := []struct {
		name string
		q    Quantity
		want string
	}{
		{"acceleration", FromReal(9.81, unit.Unit{Second: -2, Meter: 1}), "9.81 s^-2 m"},
		{"dimensionless", FromReal(42, unit.Unit{}), "42"},
		{"small value stays positional", FromReal(1e-6, unit.Unit{Second: 2}), "0.000001 s^2"},
		{"large value stays positional", FromReal(1e6, unit.Unit{Meter: -2}), "1000000 m^-2"},
		{"complex", New(complex(1, 2), unit.Current()), "(1+2i) A"},
		{"complex negative imaginary", New(complex(3, -4), unit.Unit{Ampere: 2}), "(3-4i) A^2"},
		{"squared unit", FromReal(1, unit.Unit{Kilogram: 2}), "1 kg^2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.q.String())
		})
	}
}

func TestValues(t *testing.T) {
	qs := []Quantity{
		FromReal(1, unit.Current()),
		New(complex(2, 1), unit.Current()),
	}
	assert.Equal(t, []complex128{complex(1, 0), complex(2, 1)}, Values(qs))
}

func TestValuesChecked(t *testing.T) {
	qs := []Quantity{
		FromReal(1, unit.Current()),
		FromReal(2, unit.Current()),
	}
	vals, err := ValuesChecked(qs)
	require.NoError(t, err)
	assert.Equal(t, []complex128{complex(1, 0), complex(2, 0)}, vals)

	qs = append(qs, FromReal(3, unit.Voltage()))
	_, err = ValuesChecked(qs)
	var mismatch *UnitMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, unit.Current(), mismatch.Expected)
	assert.Equal(t, unit.Voltage(), mismatch.Found)

	vals, err = ValuesChecked(nil)
	require.NoError(t, err)
	assert.Empty(t, vals)
}
