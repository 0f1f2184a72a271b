// Package unit represents physical dimensions as integer exponents of
// the seven SI base units.
package unit

import (
	"fmt"
	"strings"
)

// Unit is a vector of exponents over the SI base units. The zero value
// is dimensionless. Units are value types; all operations return a new
// Unit.
type Unit struct {
	Second   int `json:"second" yaml:"second"`
	Meter    int `json:"meter" yaml:"meter"`
	Kilogram int `json:"kilogram" yaml:"kilogram"`
	Ampere   int `json:"ampere" yaml:"ampere"`
	Kelvin   int `json:"kelvin" yaml:"kelvin"`
	Mol      int `json:"mol" yaml:"mol"`
	Candela  int `json:"candela" yaml:"candela"`
}

// RootError reports an n-th root of a unit whose exponents are not all
// divisible by n.
type RootError struct {
	Unit Unit
	N    int
}

func (e *RootError) Error() string {
	return fmt.Sprintf("not possible to calculate the %dth root (exponents %s cannot be divided by %d without remainder)", e.N, e.Unit, e.N)
}

// Mul returns the unit of a product, adding exponents.
func (u Unit) Mul(v Unit) Unit {
	return Unit{
		Second:   u.Second + v.Second,
		Meter:    u.Meter + v.Meter,
		Kilogram: u.Kilogram + v.Kilogram,
		Ampere:   u.Ampere + v.Ampere,
		Kelvin:   u.Kelvin + v.Kelvin,
		Mol:      u.Mol + v.Mol,
		Candela:  u.Candela + v.Candela,
	}
}

// Div returns the unit of a quotient, subtracting exponents.
func (u Unit) Div(v Unit) Unit {
	return Unit{
		Second:   u.Second - v.Second,
		Meter:    u.Meter - v.Meter,
		Kilogram: u.Kilogram - v.Kilogram,
		Ampere:   u.Ampere - v.Ampere,
		Kelvin:   u.Kelvin - v.Kelvin,
		Mol:      u.Mol - v.Mol,
		Candela:  u.Candela - v.Candela,
	}
}

// Pow returns the unit raised to an integer power.
func (u Unit) Pow(n int) Unit {
	return Unit{
		Second:   u.Second * n,
		Meter:    u.Meter * n,
		Kilogram: u.Kilogram * n,
		Ampere:   u.Ampere * n,
		Kelvin:   u.Kelvin * n,
		Mol:      u.Mol * n,
		Candela:  u.Candela * n,
	}
}

// Root returns the n-th root of the unit. It fails unless every
// exponent is divisible by n.
func (u Unit) Root(n int) (Unit, error) {
	s := u.Slice()
	for i, e := range s {
		if e%n != 0 {
			return Unit{}, &RootError{Unit: u, N: n}
		}
		s[i] = e / n
	}
	return FromSlice(s), nil
}

// IsDimensionless reports whether all exponents are zero.
func (u Unit) IsDimensionless() bool {
	return u == Unit{}
}

// Slice returns the exponents in canonical order (s, m, kg, A, K, mol, cd).
func (u Unit) Slice() [7]int {
	return [7]int{u.Second, u.Meter, u.Kilogram, u.Ampere, u.Kelvin, u.Mol, u.Candela}
}

// FromSlice builds a Unit from exponents in canonical order.
func FromSlice(s [7]int) Unit {
	return Unit{
		Second:   s[0],
		Meter:    s[1],
		Kilogram: s[2],
		Ampere:   s[3],
		Kelvin:   s[4],
		Mol:      s[5],
		Candela:  s[6],
	}
}

var symbols = [7]string{"s", "m", "kg", "A", "K", "mol", "cd"}

// String renders all seven exponents in canonical order, e.g.
// "s^0 m^1 kg^0 A^1 K^0 mol^0 cd^0". Used in error messages where the
// full vector aids debugging.
func (u Unit) String() string {
	s := u.Slice()
	return fmt.Sprintf("s^%d m^%d kg^%d A^%d K^%d mol^%d cd^%d",
		s[0], s[1], s[2], s[3], s[4], s[5], s[6])
}

// Format renders the unit as space-separated factors in canonical
// order, omitting zero exponents and the `^1` suffix. A dimensionless
// unit renders as the empty string.
func (u Unit) Format() string {
	var b strings.Builder
	for i, e := range u.Slice() {
		if e == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(symbols[i])
		if e != 1 {
			fmt.Fprintf(&b, "^%d", e)
		}
	}
	return b.String()
}
