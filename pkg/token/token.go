// Package token defines the lexical tokens of a quantity expression.
package token

// Kind identifies the type of a token.
type Kind int

// Token kinds.
const (
	Invalid Kind = iota

	// Numeric literals and constants.
	Real
	Imag
	PowerOfTen
	Infinity
	NegInfinity

	// Structure and operators.
	LeftBracket
	RightBracket
	Add
	Sub
	Mul
	Div
	Percent

	// SI base units.
	Second
	Meter
	Gram
	Ampere
	Kelvin
	Mol
	Candela

	// Derived and accepted units.
	Celsius
	Volt
	Newton
	NewtonMeter
	Watt
	Joule
	Hertz
	RPM
	Weber
	Tesla
	Henry
	Siemens
	Ton
	Ohm

	// Dimensionless constants and angles.
	Pi
	Degree
	Radian
)

var kindNames = map[Kind]string{
	Invalid:      "invalid",
	Real:         "number",
	Imag:         "imaginary number",
	PowerOfTen:   "power of ten",
	Infinity:     "infinity",
	NegInfinity:  "negative infinity",
	LeftBracket:  "(",
	RightBracket: ")",
	Add:          "+",
	Sub:          "-",
	Mul:          "*",
	Div:          "/",
	Percent:      "%",
	Second:       "s",
	Meter:        "m",
	Gram:         "g",
	Ampere:       "A",
	Kelvin:       "K",
	Mol:          "mol",
	Candela:      "cd",
	Celsius:      "°C",
	Volt:         "V",
	Newton:       "N",
	NewtonMeter:  "Nm",
	Watt:         "W",
	Joule:        "J",
	Hertz:        "Hz",
	RPM:          "rpm",
	Weber:        "Wb",
	Tesla:        "T",
	Henry:        "H",
	Siemens:      "S",
	Ton:          "t",
	Ohm:          "Ohm",
	Pi:           "pi",
	Degree:       "degree",
	Radian:       "rad",
}

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsNumber reports whether the kind is a plain numeric literal.
// Two of these in a row without an operator is an input error.
func (k Kind) IsNumber() bool {
	return k == Real || k == Imag
}

// IsUnit reports whether the kind carries unit exponents.
func (k Kind) IsUnit() bool {
	return k >= Second && k <= Ohm
}

// Span is a half-open byte range [Start, End) into the source string.
type Span struct {
	Start int
	End   int
}

// Exponents holds the exponent pair of a unit token: the power the unit
// itself is raised to and the power of ten contributed by its metric
// prefix. The effective power of ten is their product, since "km^2"
// means (10^3 m)^2.
type Exponents struct {
	Unit   int
	Prefix int
}

// Exponent returns the effective power of ten of the token.
func (e Exponents) Exponent() int {
	return e.Unit * e.Prefix
}

// Token is a single lexeme with its payload and source location.
// Value is set for Real and Imag, Exponent for PowerOfTen and for the
// optional `)^n` suffix of RightBracket (1 when absent), and Exponents
// for unit kinds.
type Token struct {
	Kind      Kind
	Value     float64
	Exponent  int
	Exponents Exponents
	Span      Span
}
