package quantity

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/leapstack-labs/dynq/pkg/unit"
)

// EncodeMode selects the wire representation a Codec produces.
type EncodeMode int

const (
	// EncodeStruct emits the full representation: the numerical value
	// plus the unit exponents. This is the default.
	EncodeStruct EncodeMode = iota
	// EncodeString emits the display string, which can be parsed back
	// into an identical quantity.
	EncodeString
	// EncodeValue emits the bare numerical value. Only valid for
	// dimensionless quantities, since the unit would be lost.
	EncodeValue
)

// Codec encodes quantities in a selectable wire representation.
// Decoding is representation-free: a Quantity unmarshals from any of
// the three shapes regardless of how it was produced.
type Codec struct {
	Mode EncodeMode
}

// wire is the struct-shaped representation. A real value is encoded as
// a plain number, a complex one as a [re, im] pair.
type wire struct {
	Value     any       `json:"value" yaml:"value"`
	Exponents unit.Unit `json:"exponents" yaml:"exponents"`
}

func encodeValue(v complex128) any {
	if imag(v) == 0 {
		return real(v)
	}
	return [2]float64{real(v), imag(v)}
}

// Encode returns the plain Go value for the codec's mode, ready for
// json or yaml marshalling.
func (c Codec) Encode(q Quantity) (any, error) {
	switch c.Mode {
	case EncodeString:
		return q.String(), nil
	case EncodeValue:
		if !q.IsDimensionless() {
			return nil, &UnitMismatchError{Expected: unit.Unit{}, Found: q.Unit}
		}
		return encodeValue(q.Value), nil
	default:
		return wire{Value: encodeValue(q.Value), Exponents: q.Unit}, nil
	}
}

// MarshalJSON encodes q as JSON in the codec's mode.
func (c Codec) MarshalJSON(q Quantity) ([]byte, error) {
	v, err := c.Encode(q)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

// MarshalYAML encodes q as YAML in the codec's mode.
func (c Codec) MarshalYAML(q Quantity) ([]byte, error) {
	v, err := c.Encode(q)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// MarshalJSON implements json.Marshaler using the struct shape.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return Codec{Mode: EncodeStruct}.MarshalJSON(q)
}

// MarshalYAML implements yaml.Marshaler using the struct shape.
func (q Quantity) MarshalYAML() (any, error) {
	return Codec{Mode: EncodeStruct}.Encode(q)
}

// stringParser is installed by pkg/parser on import. The indirection
// avoids an import cycle: the parser produces quantities, yet decoding
// a quantity from its string form needs the parser.
var stringParser func(string) (Quantity, error)

// RegisterStringParser installs the parser used when decoding a
// quantity from its string representation. Importing pkg/parser does
// this automatically.
func RegisterStringParser(fn func(string) (Quantity, error)) {
	stringParser = fn
}

func parseQuantityString(s string) (Quantity, error) {
	if stringParser == nil {
		return Quantity{}, errors.New("decoding a quantity from a string requires importing the parser package")
	}
	return stringParser(s)
}

func decodeRawValue(raw json.RawMessage) (complex128, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return complex(f, 0), nil
	}
	var pair [2]float64
	if err := json.Unmarshal(raw, &pair); err != nil {
		return 0, fmt.Errorf("quantity value must be a number or a [re, im] pair: %w", err)
	}
	return complex(pair[0], pair[1]), nil
}

// UnmarshalJSON implements json.Unmarshaler. It accepts a bare number
// (dimensionless), a [re, im] pair (dimensionless), a quantity string
// or the struct shape.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*q = FromReal(f, unit.Unit{})
		return nil
	}
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err == nil {
		*q = New(complex(pair[0], pair[1]), unit.Unit{})
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := parseQuantityString(s)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	}
	var w struct {
		Value     json.RawMessage `json:"value"`
		Exponents unit.Unit       `json:"exponents"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("cannot decode quantity: %w", err)
	}
	if len(w.Value) == 0 {
		return errors.New("cannot decode quantity: missing value")
	}
	v, err := decodeRawValue(w.Value)
	if err != nil {
		return err
	}
	*q = New(v, w.Exponents)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler with the same accepted
// shapes as UnmarshalJSON.
func (q *Quantity) UnmarshalYAML(node *yaml.Node) error {
	var f float64
	if err := node.Decode(&f); err == nil {
		*q = FromReal(f, unit.Unit{})
		return nil
	}
	var pair [2]float64
	if err := node.Decode(&pair); err == nil {
		*q = New(complex(pair[0], pair[1]), unit.Unit{})
		return nil
	}
	var s string
	if err := node.Decode(&s); err == nil {
		parsed, err := parseQuantityString(s)
		if err != nil {
			return err
		}
		*q = parsed
		return nil
	}
	var w struct {
		Value     yaml.Node `yaml:"value"`
		Exponents unit.Unit `yaml:"exponents"`
	}
	if err := node.Decode(&w); err != nil {
		return fmt.Errorf("cannot decode quantity: %w", err)
	}
	var value complex128
	var vf float64
	if err := w.Value.Decode(&vf); err == nil {
		value = complex(vf, 0)
	} else {
		var vp [2]float64
		if err := w.Value.Decode(&vp); err != nil {
			return fmt.Errorf("quantity value must be a number or a [re, im] pair: %w", err)
		}
		value = complex(vp[0], vp[1])
	}
	*q = New(value, w.Exponents)
	return nil
}
