package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite"
)

const traceTextPreviewLen = 40

func traceCmd() *cobra.Command {
	var fromStdin bool

	cmd := &cobra.Command{
		Use:   "trace [file]",
		Short: "Show the insertion list a rewrite would apply, in emission order",
		Long: `Trace parses a host script fragment and prints every insertion the
rewrite would splice into it, in the exact order Emit would write them,
without actually applying the rewrite.

Examples:
  asyncrewrite trace script.js
  cat script.js | asyncrewrite trace -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runTrace(args, fromStdin)
		},
	}

	cmd.Flags().BoolVarP(&fromStdin, "stdin", "i", false, "read the script from stdin")

	return cmd
}

func runTrace(args []string, fromStdin bool) error {
	src, _, err := readRewriteInput(args, fromStdin)
	if err != nil {
		return err
	}

	entries, err := rewrite.Trace(src)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}

	printTraceTable(entries)

	return nil
}

func printTraceTable(entries []rewrite.TraceEntry) {
	openLabel := color.New(color.FgGreen).Sprint("open")
	closeLabel := color.New(color.FgRed).Sprint("close")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "seq", "offset", "kind", "text"})

	for i, entry := range entries {
		kind := openLabel
		if entry.Close {
			kind = closeLabel
		}

		t.AppendRow(table.Row{i, entry.Sequence, entry.Offset, kind, previewText(entry.Text)})
	}

	t.Render()
}

func previewText(text string) string {
	escaped := sanitizeForTerminal(text)
	if len(escaped) <= traceTextPreviewLen {
		return escaped
	}

	return escaped[:traceTextPreviewLen] + "..."
}
