package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dynq/internal/cli/config"
	"github.com/leapstack-labs/dynq/pkg/parser"
	"github.com/leapstack-labs/dynq/pkg/quantity"
)

// EvalOptions holds options for the eval command.
type EvalOptions struct {
	Real bool
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "eval <expression>",
		Short: "Evaluate a quantity expression",
		Long: `Evaluate a quantity expression and print the result.

The expression may be given as arguments or piped on stdin.`,
		Example: `  # Evaluate an expression
  dynq eval "1 kA / m * 3.14 m^2"

  # Complex arithmetic
  dynq eval "(1 A + 2i A)^2"

  # Require a real result
  dynq eval --real "(2i)^2"

  # Output as JSON
  dynq eval "9.81 m/s^2" --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Real, "real", false, "Fail unless the result is purely real")

	return cmd
}

func runEval(cmd *cobra.Command, args []string, opts *EvalOptions) error {
	cfg := getConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	var expr string
	switch {
	case len(args) > 0:
		expr = strings.Join(args, " ")
	case !isTerminal(os.Stdin):
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		expr = strings.TrimSpace(string(content))
	default:
		return fmt.Errorf("no expression given (see 'dynq eval --help')")
	}

	logger.Debug("evaluating expression", "expr", expr, "real", opts.Real)

	q, err := evalExpression(expr, opts.Real)
	if err != nil {
		return err
	}

	return renderQuantity(cmd.OutOrStdout(), q, cfg.OutputFormat, cfg.Precision)
}

func evalExpression(expr string, real bool) (quantity.Quantity, error) {
	if real {
		return parser.ParseReal(expr)
	}
	return parser.Parse(expr)
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}
