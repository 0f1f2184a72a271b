package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dynq/pkg/token"
	"github.com/leapstack-labs/dynq/pkg/unit"
)

// unitInfo describes one recognized unit symbol for the listing.
type unitInfo struct {
	Symbol    string
	Name      string
	Dimension unit.Unit
	Note      string
}

func unitListing() []unitInfo {
	return []unitInfo{
		{"s", "second", unit.Time(), ""},
		{"m", "meter", unit.Length(), ""},
		{"g", "gram", unit.Mass(), "10^-3 kg"},
		{"A", "ampere", unit.Current(), ""},
		{"K", "kelvin", unit.Temperature(), ""},
		{"mol", "mole", unit.AmountOfSubstance(), ""},
		{"cd", "candela", unit.LuminousIntensity(), ""},
		{"°C", "degree Celsius", unit.Temperature(), "offset by 273.15 K"},
		{"V", "volt", unit.Voltage(), ""},
		{"N", "newton", unit.Force(), ""},
		{"Nm", "newton meter", unit.Torque(), ""},
		{"W", "watt", unit.Power(), ""},
		{"J", "joule", unit.Energy(), ""},
		{"Hz", "hertz", unit.Frequency(), ""},
		{"rpm", "revolutions per minute", unit.Frequency(), "1/60 s^-1"},
		{"Wb", "weber", unit.MagneticFlux(), ""},
		{"T", "tesla", unit.MagneticFluxDensity(), ""},
		{"H", "henry", unit.Inductance(), ""},
		{"S", "siemens", unit.Conductance(), ""},
		{"t", "ton", unit.Mass(), "10^3 kg"},
		{"Ohm, Ω", "ohm", unit.Resistance(), ""},
		{"pi, π", "circle constant", unit.Dimensionless(), "3.14159..."},
		{"degree, °", "degree of arc", unit.Dimensionless(), "pi/180 rad"},
		{"rad", "radian", unit.Dimensionless(), ""},
		{"%", "percent", unit.Dimensionless(), "10^-2"},
	}
}

// NewUnitsCommand creates the units command.
func NewUnitsCommand() *cobra.Command {
	var prefixes bool

	cmd := &cobra.Command{
		Use:   "units",
		Short: "List recognized unit symbols",
		Long: `List the unit symbols, constants and metric prefixes the parser
recognizes, together with their SI dimensions and conversion factors.`,
		Example: `  # List unit symbols
  dynq units

  # List metric prefixes
  dynq units --prefixes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if prefixes {
				renderPrefixTable(cmd.OutOrStdout())
				return nil
			}
			renderUnitsTable(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().BoolVar(&prefixes, "prefixes", false, "List metric prefixes instead of units")

	return cmd
}

func renderUnitsTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Symbol", "Name", "Dimension", "Note"})

	for _, u := range unitListing() {
		dim := u.Dimension.Format()
		if dim == "" {
			dim = "-"
		}
		t.AppendRow(table.Row{u.Symbol, u.Name, dim, u.Note})
	}
	t.Render()
}

func renderPrefixTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Prefix", "Factor"})

	for _, p := range token.Prefixes() {
		t.AppendRow(table.Row{string(p.Symbol), fmt.Sprintf("10^%d", p.Power)})
	}
	t.Render()
}
