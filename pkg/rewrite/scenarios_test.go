package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite"
	"github.com/codefang-labs/asyncrewrite/pkg/rewrite/syntax"
)

// requireValidOutput re-parses a rewrite's output with the same grammar the
// engine itself reads, so a nesting bug that produces text no parser would
// accept fails the test even when it happens to contain every substring a
// Contains-only assertion checks for.
func requireValidOutput(t *testing.T, out string) {
	t.Helper()

	_, parseErrs, err := syntax.Parse([]byte(out))
	require.NoError(t, err)
	assert.Empty(t, parseErrs, "rewritten output must itself parse cleanly:\n%s", out)
}

func TestScenarioArithmeticExpressionParsesAsCompletionRecord(t *testing.T) {
	out, err := rewrite.Rewrite("1+1", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Contains(t, out, "_cr = (1+1);")
}

func TestScenarioHoistedConstDeclarationParses(t *testing.T) {
	out, err := rewrite.Rewrite("const x = 42; x", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Contains(t, out, "var x;")
}

func TestScenarioNamedFunctionHoistAndCallParses(t *testing.T) {
	out, err := rewrite.Rewrite("function f(){ return 1 } f()", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Contains(t, out, "_cr = f = f__;")
}

func TestScenarioAsyncFunctionPassthroughParses(t *testing.T) {
	out, err := rewrite.Rewrite("async function g(){ return 1 } g()", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Equal(t, 1, strings.Count(out, "let _functionState = 'sync'"), "an async function body is never wrapped")
}

func TestScenarioTypeofOfUndeclaredIdentifierParses(t *testing.T) {
	out, err := rewrite.Rewrite("typeof undefinedIdent", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Contains(t, out, "typeof undefinedIdent === 'undefined'")
}

func TestScenarioSyntheticPromiseObjectParses(t *testing.T) {
	src := `const p = { [Symbol.for('@@mongosh.syntheticPromise')]: true, then(r){ r(7) } }; p`

	out, err := rewrite.Rewrite(src, rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Contains(t, out, "_isp(_ex) ? await _ex : _ex")
}

func TestScenarioClassicForLoopParses(t *testing.T) {
	out, err := rewrite.Rewrite("for (let i=0; i<3; i++) i", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
	assert.Contains(t, out, "let i=0", "the for-init declaration keeps its native block scoping")
}

func TestScenarioDestructuringAndClassDeclarationParse(t *testing.T) {
	out, err := rewrite.Rewrite("class C {} new C(); const { a } = C;", rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
}

func TestScenarioDirectivePrologueAndTrailingExpressionParse(t *testing.T) {
	out, err := rewrite.Rewrite(`"use strict"; let x; x = 1;`, rewrite.DebugNone)
	require.NoError(t, err)
	requireValidOutput(t, out)
}
