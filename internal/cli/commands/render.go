// Package commands implements the dynq subcommands.
package commands

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/dynq/internal/cli/config"
	"github.com/leapstack-labs/dynq/pkg/quantity"
)

// configKey is used to store config in context.
// This key is shared with the cli package via ConfigKey.
type configKey struct{}

// ConfigKey returns the context key used for storing the config.
func ConfigKey() interface{} {
	return configKey{}
}

// getConfig retrieves the config from the command context.
func getConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		OutputFormat: config.DefaultOutput,
		Precision:    config.DefaultPrecision,
		HistoryFile:  config.DefaultHistoryFile,
	}
}

// renderQuantity writes a single evaluation result in the configured
// output format.
func renderQuantity(w io.Writer, q quantity.Quantity, format string, precision int) error {
	switch format {
	case "json":
		data, err := quantity.Codec{}.MarshalJSON(q)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(w, string(data))
		return nil
	case "yaml":
		data, err := quantity.Codec{}.MarshalYAML(q)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprint(w, string(data))
		return nil
	case "text":
		_, _ = fmt.Fprintln(w, formatQuantity(q, precision))
		return nil
	default:
		renderQuantityTable(w, q, precision)
		return nil
	}
}

func renderQuantityTable(w io.Writer, q quantity.Quantity, precision int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Value", "Unit", "Dimension"})

	u := q.Unit.Format()
	if u == "" {
		u = "-"
	}
	t.AppendRow(table.Row{formatComplexValue(q.Value, precision), u, q.Unit.String()})
	t.Render()
}

// formatQuantity renders the quantity like Quantity.String, but with a
// fixed number of digits when precision is non-negative.
func formatQuantity(q quantity.Quantity, precision int) string {
	if precision < 0 {
		return q.String()
	}
	s := formatComplexValue(q.Value, precision)
	if u := q.Unit.Format(); u != "" {
		s += " " + u
	}
	return s
}

func formatComplexValue(v complex128, precision int) string {
	if imag(v) == 0 {
		return formatRealValue(real(v), precision)
	}
	im := imag(v)
	sign := "+"
	if im < 0 {
		sign = "-"
		im = -im
	}
	return fmt.Sprintf("(%s%s%si)", formatRealValue(real(v), precision), sign, formatRealValue(im, precision))
}

func formatRealValue(v float64, precision int) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
