package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite"
)

// ErrUnsupportedDebugLevel is returned when --debug names an unrecognized level.
var ErrUnsupportedDebugLevel = errors.New("unsupported debug level")

func rewriteCmd() *cobra.Command {
	var (
		output    string
		debugFlag string
		fromStdin bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite [file]",
		Short: "Rewrite a host script so synthetic promises are implicitly awaited",
		Long: `Rewrite parses a host script fragment and emits the equivalent fragment
with implicit-await wrapping applied.

Examples:
  asyncrewrite rewrite script.js              # write result to stdout
  asyncrewrite rewrite -o out.js script.js    # write result to a file
  cat script.js | asyncrewrite rewrite -i     # read from stdin`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runRewrite(args, output, debugFlag, fromStdin)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&debugFlag, "debug", "d", "none", "debug level: none, types, verbose")
	cmd.Flags().BoolVarP(&fromStdin, "stdin", "i", false, "read the script from stdin")

	return cmd
}

func runRewrite(args []string, output, debugFlag string, fromStdin bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := loadLogger(cfg)

	src, sourceName, err := readRewriteInput(args, fromStdin)
	if err != nil {
		return err
	}

	level, err := parseDebugLevel(debugFlag)
	if err != nil {
		return err
	}

	logger.Debug("rewriting script", "source", sourceName, "bytes", len(src))

	rewritten, err := rewrite.Rewrite(src, level)
	if err != nil {
		return fmt.Errorf("rewrite %s: %w", sourceName, err)
	}

	return writeRewriteOutput(rewritten, output)
}

func readRewriteInput(args []string, fromStdin bool) (src, sourceName string, err error) {
	if fromStdin || len(args) == 0 {
		content, readErr := readAllStdin()
		if readErr != nil {
			return "", "", fmt.Errorf("read stdin: %w", readErr)
		}

		return content, "<stdin>", nil
	}

	content, resolvedPath, readErr := safeReadFile(args[0])
	if readErr != nil {
		return "", "", readErr
	}

	return string(content), resolvedPath, nil
}

func writeRewriteOutput(rewritten, output string) error {
	if output == "" {
		writeTerminalLine(rewritten)
		return nil
	}

	if err := os.WriteFile(output, []byte(rewritten), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	return nil
}

func parseDebugLevel(flag string) (rewrite.DebugLevel, error) {
	switch flag {
	case "", "none":
		return rewrite.DebugNone, nil
	case "types":
		return rewrite.DebugTypesOnly, nil
	case "verbose":
		return rewrite.DebugVerbose, nil
	default:
		return rewrite.DebugNone, fmt.Errorf("%w: %q", ErrUnsupportedDebugLevel, flag)
	}
}
