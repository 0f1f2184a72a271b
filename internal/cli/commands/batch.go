package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/dynq/internal/cli/config"
	"github.com/leapstack-labs/dynq/pkg/quantity"
)

// BatchOptions holds options for the batch command.
type BatchOptions struct {
	Real        bool
	KeepGoing   bool
	Concurrency int
}

// batchResult pairs one input line with its outcome, keeping the input
// order of the file.
type batchResult struct {
	Expr   string
	Result quantity.Quantity
	Err    error
}

// NewBatchCommand creates the batch command.
func NewBatchCommand() *cobra.Command {
	opts := &BatchOptions{}

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Evaluate expressions from a file",
		Long: `Evaluate one expression per line from a file, concurrently.

Blank lines and lines starting with # are skipped. Results are printed
in input order. Use "-" to read from stdin.`,
		Example: `  # Evaluate a file of expressions
  dynq batch expressions.txt

  # Pipe expressions in
  cat expressions.txt | dynq batch -

  # Keep going past failing lines
  dynq batch expressions.txt --keep-going`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Real, "real", false, "Fail unless results are purely real")
	cmd.Flags().BoolVar(&opts.KeepGoing, "keep-going", false, "Report failing lines instead of stopping")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 0, "Max concurrent evaluations (default: number of CPUs)")

	return cmd
}

func runBatch(cmd *cobra.Command, path string, opts *BatchOptions) error {
	cfg := getConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	exprs, err := readExpressions(path)
	if err != nil {
		return err
	}
	if len(exprs) == 0 {
		return fmt.Errorf("no expressions in %s", path)
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	logger.Debug("evaluating batch", "expressions", len(exprs), "concurrency", limit)

	// Evaluate concurrently, collect by index so output stays in input
	// order.
	results := make([]batchResult, len(exprs))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(limit)
	for i, expr := range exprs {
		g.Go(func() error {
			q, err := evalExpression(expr, opts.Real)
			results[i] = batchResult{Expr: expr, Result: q, Err: err}
			if err != nil && !opts.KeepGoing {
				return fmt.Errorf("%s: %w", expr, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	return renderBatchResults(cmd.OutOrStdout(), results, cfg.OutputFormat, cfg.Precision)
}

// readExpressions reads one expression per line, skipping blanks and
// comments. "-" reads from stdin.
func readExpressions(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var exprs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		exprs = append(exprs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return exprs, nil
}

func renderBatchResults(w io.Writer, results []batchResult, format string, precision int) error {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			_, _ = fmt.Fprintf(w, "%s = error: %v\n", r.Expr, r.Err)
			continue
		}
		switch format {
		case "json", "yaml":
			if err := renderQuantity(w, r.Result, format, precision); err != nil {
				return err
			}
		default:
			_, _ = fmt.Fprintf(w, "%s = %s\n", r.Expr, formatQuantity(r.Result, precision))
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d expressions failed", failed, len(results))
	}
	return nil
}
