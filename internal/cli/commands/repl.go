package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/dynq/pkg/parser"
)

type replStyles struct {
	Prompt lipgloss.Style
	Error  lipgloss.Style
	Caret  lipgloss.Style
}

func newREPLStyles() replStyles {
	return replStyles{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Caret:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	opts := &EvalOptions{}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Interactive expression evaluation",
		Long: `Evaluate quantity expressions interactively.

Parse errors point at the offending part of the input. History is kept
across sessions in the configured history file.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runREPL(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Real, "real", false, "Fail unless results are purely real")

	return cmd
}

func runREPL(cmd *cobra.Command, opts *EvalOptions) error {
	cfg := getConfig(cmd.Context())
	styles := newREPLStyles()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          styles.Prompt.Render("dynq> "),
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "dynq %s\n", cmd.Root().Version)
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if line == ".quit" || line == ".exit" {
				break
			}
			handleDotCommand(cmd, line)
			continue
		}

		q, err := evalExpression(line, opts.Real)
		if err != nil {
			printEvalError(cmd.ErrOrStderr(), line, err, styles)
			continue
		}
		if err := renderQuantity(out, q, cfg.OutputFormat, cfg.Precision); err != nil {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), styles.Error.Render(fmt.Sprintf("Error: %v", err)))
		}
	}

	return nil
}

// printEvalError reports a failed evaluation. For parse errors with a
// span the input is echoed with a caret line underneath.
func printEvalError(w io.Writer, line string, err error, styles replStyles) {
	var perr *parser.ParseError
	if errors.As(err, &perr) && perr.Span.End > perr.Span.Start {
		width := perr.Span.End - perr.Span.Start
		_, _ = fmt.Fprintf(w, "  %s\n", line)
		_, _ = fmt.Fprintf(w, "  %s%s\n",
			strings.Repeat(" ", perr.Span.Start),
			styles.Caret.Render(strings.Repeat("^", width)))
	}
	_, _ = fmt.Fprintln(w, styles.Error.Render(fmt.Sprintf("Error: %v", err)))
}

func handleDotCommand(cmd *cobra.Command, line string) {
	out := cmd.OutOrStdout()
	switch strings.ToLower(strings.Fields(line)[0]) {
	case ".help":
		printREPLHelp(out)
	case ".units":
		renderUnitsTable(out)
	case ".prefixes":
		renderPrefixTable(out)
	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", line)
	}
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .units          List recognized unit symbols
  .prefixes       List metric prefixes
  .quit / .exit   Exit the REPL

Tips:
  - Multiplication is implicit: "2 V 3 A" is 6 W
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for unit symbols and
// dot-commands.
func newREPLCompleter() *readline.PrefixCompleter {
	var items []readline.PrefixCompleterInterface
	for _, u := range unitListing() {
		items = append(items, readline.PcItem(u.Symbol))
	}
	items = append(items,
		readline.PcItem(".help"),
		readline.PcItem(".units"),
		readline.PcItem(".prefixes"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
	return readline.NewPrefixCompleter(items...)
}
