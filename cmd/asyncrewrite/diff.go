package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite"
)

func diffCmd() *cobra.Command {
	var (
		output    string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "diff [file]",
		Short: "Show a character-level diff between a script and its rewritten form",
		Long: `Diff parses a host script fragment, rewrites it, and prints a
character-level diff between the original source and the rewritten output
under ---/+++ headers, with inserted text highlighted inline (no hunks).

Examples:
  asyncrewrite diff script.js
  cat script.js | asyncrewrite diff -i`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDiff(args, output, fromStdin)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVarP(&fromStdin, "stdin", "i", false, "read the script from stdin")

	return cmd
}

func runDiff(args []string, output string, fromStdin bool) error {
	src, sourceName, err := readRewriteInput(args, fromStdin)
	if err != nil {
		return err
	}

	rewritten, err := rewrite.Rewrite(src, rewrite.DebugNone)
	if err != nil {
		return fmt.Errorf("diff %s: %w", sourceName, err)
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(src, rewritten, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	return writeDiffOutput(sourceName, diffs, output)
}

func writeDiffOutput(sourceName string, diffs []diffmatchpatch.Diff, output string) error {
	var writer io.Writer = os.Stdout

	if output != "" {
		outputFile, err := os.Create(output) //nolint:gosec // output path is an operator-supplied CLI flag
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		defer outputFile.Close()

		writer = outputFile
	}

	fmt.Fprintf(writer, "--- %s\n", sourceName)
	fmt.Fprintf(writer, "+++ %s (rewritten)\n", sourceName)

	dmp := diffmatchpatch.New()
	fmt.Fprintln(writer, dmp.DiffPrettyText(diffs))

	return nil
}
