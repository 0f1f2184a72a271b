package commands

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/dynq/internal/cli/config"
)

func TestEvalCommandTable(t *testing.T) {
	cmd := NewEvalCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"1 kA / m * 3.14 m^2"})

	require.NoError(t, cmd.Execute())

	out := buf.String()
	assert.Contains(t, out, "3140")
	assert.Contains(t, out, "m A")
	assert.Contains(t, out, "s^0 m^1 kg^0 A^1 K^0 mol^0 cd^0")
}

func TestEvalCommandJSON(t *testing.T) {
	cmd := NewEvalCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"2", "V"})

	ctx := context.WithValue(context.Background(), ConfigKey(), &config.Config{
		OutputFormat: "json",
		Precision:    config.DefaultPrecision,
	})
	require.NoError(t, cmd.ExecuteContext(ctx))

	assert.JSONEq(t,
		`{"value":2,"exponents":{"second":-3,"meter":2,"kilogram":1,"ampere":-1,"kelvin":0,"mol":0,"candela":0}}`,
		buf.String())
}

func TestEvalCommandParseError(t *testing.T) {
	cmd := NewEvalCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"2 l"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected token")
}

func TestEvalCommandRealFlag(t *testing.T) {
	cmd := NewEvalCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--real", "5i"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not convert")

	cmd = NewEvalCommand()
	buf.Reset()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--real", "(2i)^2"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "-4")
}

func TestFormatQuantityPrecision(t *testing.T) {
	q, err := evalExpression("pi m/s", false)
	require.NoError(t, err)

	assert.Equal(t, "3.14 s^-1 m", formatQuantity(q, 2))
	assert.True(t, strings.HasPrefix(formatQuantity(q, -1), "3.14159265358979"))

	c, err := evalExpression("1 A + 2i A", false)
	require.NoError(t, err)
	assert.Equal(t, "(1.0+2.0i) A", formatQuantity(c, 1))
}
