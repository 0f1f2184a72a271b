package quantity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	// Registers the string parser used when decoding quantities from
	// their display form.
	_ "github.com/leapstack-labs/dynq/pkg/parser"

	"github.com/leapstack-labs/dynq/pkg/quantity"
	"github.com/leapstack-labs/dynq/pkg/unit"
)

func TestEncodeStructJSON(t *testing.T) {
	q := quantity.FromReal(2, unit.Unit{Meter: 1, Ampere: 1})

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"value":2,"exponents":{"second":0,"meter":1,"kilogram":0,"ampere":1,"kelvin":0,"mol":0,"candela":0}}`,
		string(data))
}

func TestEncodeStructComplexValue(t *testing.T) {
	q := quantity.New(complex(1, 2), unit.Current())

	data, err := json.Marshal(q)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"value":[1,2]`)
}

func TestEncodeString(t *testing.T) {
	q := quantity.FromReal(3140, unit.Unit{Meter: 1, Ampere: 1})

	data, err := quantity.Codec{Mode: quantity.EncodeString}.MarshalJSON(q)
	require.NoError(t, err)
	assert.Equal(t, `"3140 m A"`, string(data))
}

func TestEncodeValue(t *testing.T) {
	c := quantity.Codec{Mode: quantity.EncodeValue}

	data, err := c.MarshalJSON(quantity.FromReal(0.5, unit.Unit{}))
	require.NoError(t, err)
	assert.Equal(t, "0.5", string(data))

	_, err = c.MarshalJSON(quantity.FromReal(0.5, unit.Voltage()))
	var mismatch *quantity.UnitMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestDecodeJSONShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  quantity.Quantity
	}{
		{"bare number", `5`, quantity.FromReal(5, unit.Unit{})},
		{"pair", `[1, 2]`, quantity.New(complex(1, 2), unit.Unit{})},
		{"string", `"2 V"`, quantity.FromReal(2, unit.Voltage())},
		{
			"struct",
			`{"value":2,"exponents":{"meter":1,"ampere":1}}`,
			quantity.FromReal(2, unit.Unit{Meter: 1, Ampere: 1}),
		},
		{
			"struct with complex value",
			`{"value":[0,1],"exponents":{"ampere":1}}`,
			quantity.New(complex(0, 1), unit.Current()),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q quantity.Quantity
			require.NoError(t, json.Unmarshal([]byte(tt.input), &q))
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestDecodeJSONInvalid(t *testing.T) {
	var q quantity.Quantity
	assert.Error(t, json.Unmarshal([]byte(`"2 l"`), &q))
	assert.Error(t, json.Unmarshal([]byte(`{"exponents":{"meter":1}}`), &q))
}

func TestDecodeYAMLShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  quantity.Quantity
	}{
		{"bare number", `2.5`, quantity.FromReal(2.5, unit.Unit{})},
		{"string", `9.81 m/s^2`, quantity.FromReal(9.81, unit.Unit{Second: -2, Meter: 1})},
		{
			"struct",
			"value: 2\nexponents:\n  second: 0\n  meter: 1\n  kilogram: 0\n  ampere: 1\n  kelvin: 0\n  mol: 0\n  candela: 0\n",
			quantity.FromReal(2, unit.Unit{Meter: 1, Ampere: 1}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var q quantity.Quantity
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &q))
			assert.Equal(t, tt.want, q)
		})
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	want := quantity.FromReal(3, unit.Force())

	data, err := yaml.Marshal(want)
	require.NoError(t, err)

	var got quantity.Quantity
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, want, got)
}
