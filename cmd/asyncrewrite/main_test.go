package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

type testCase struct {
	wantOut string
	args    []string
	wantErr bool
}

func TestAsyncRewriteCLI_HelpAndSubcommands(t *testing.T) {
	t.Parallel()

	for _, currentTest := range getHelpAndSubcommandTests() {
		runHelpAndSubcommandTest(t, currentTest)
	}
}

func getHelpAndSubcommandTests() []testCase {
	return []testCase{
		{wantOut: "Rewrite host scripts", args: []string{"--help"}},
		{wantOut: "Rewrite parses a host script fragment", args: []string{"rewrite", "--help"}},
		{wantOut: "Diff parses a host script fragment", args: []string{"diff", "--help"}},
		{wantOut: "Trace parses a host script fragment", args: []string{"trace", "--help"}},
		{wantOut: "unknown command", args: []string{"unknown"}, wantErr: true},
	}
}

func runHelpAndSubcommandTest(t *testing.T, currentTest testCase) {
	t.Helper()

	rootCmd := buildTestRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(currentTest.args)

	err := rootCmd.Execute()

	if currentTest.wantErr && err == nil {
		t.Errorf("args %v: expected error, got nil", currentTest.args)
	}

	if !currentTest.wantErr && err != nil {
		t.Errorf("args %v: unexpected error: %v", currentTest.args, err)
	}

	if !strings.Contains(buf.String(), currentTest.wantOut) {
		t.Errorf("args %v: output missing %q\ngot: %s", currentTest.args, currentTest.wantOut, buf.String())
	}
}

func TestAsyncRewriteCLI_RewriteCommand(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "script.js")
	if err := os.WriteFile(path, []byte("1+1"), 0o600); err != nil {
		t.Fatalf("write temp script: %v", err)
	}

	rootCmd := buildTestRootCmd()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"rewrite", path})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rewrite command failed: %v", err)
	}
}

func buildTestRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "asyncrewrite",
		Short: "Rewrite host scripts so synthetic promises are implicitly awaited",
	}

	rootCmd.AddCommand(rewriteCmd())
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(traceCmd())
	rootCmd.AddCommand(completionCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}
