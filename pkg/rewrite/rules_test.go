package rewrite_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite"
)

func TestRewriteArrowExpressionBodyGetsReturnFunnel(t *testing.T) {
	out, err := rewrite.Rewrite("const f = (x) => x + 1; f(2)", rewrite.DebugNone)
	require.NoError(t, err)
	assert.Contains(t, out, "return (_synchronousReturnValue = (")
	assert.Contains(t, out, "_functionState === 'async' ? _synchronousReturnValue : null);")
}

func TestRewriteArrowBlockBodyGetsStandardWrap(t *testing.T) {
	out, err := rewrite.Rewrite("const f = (x) => { return x; }; f(1)", rewrite.DebugNone)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "const _asynchronousReturnValue"), "the script IIFE and the arrow body each get the wrap")
	assert.NotContains(t, out, "f__", "arrow functions never hoist a name of their own")
}

func TestRewriteDestructuringDeclarationHoistsAllNames(t *testing.T) {
	out, err := rewrite.Rewrite("const { a, b: [c, ...d] } = obj;", rewrite.DebugNone)
	require.NoError(t, err)
	assert.Contains(t, out, "var a;")
	assert.Contains(t, out, "var c;")
	assert.Contains(t, out, "var d;")
}

func TestRewriteNestedVariableDeclarationInsideFunctionIsUntouched(t *testing.T) {
	out, err := rewrite.Rewrite("function f() { const y = 1; return y; }", rewrite.DebugNone)
	require.NoError(t, err)
	assert.Contains(t, out, "const y = 1;")
	assert.NotContains(t, out, "var y;")
}

func TestRewriteClassDeclarationIsHoistedAndRecordedAsCompletion(t *testing.T) {
	out, err := rewrite.Rewrite("class C {} new C()", rewrite.DebugNone)
	require.NoError(t, err)
	assert.Contains(t, out, "var C;")
	assert.Contains(t, out, "_cr = C = ")
}

func TestRewriteReturnInsideAsyncFunctionIsNotFunneled(t *testing.T) {
	out, err := rewrite.Rewrite("async function f() { return 1; }", rewrite.DebugNone)
	require.NoError(t, err)
	assert.NotContains(t, out, "_synchronousReturnValue = (")
}

func TestRewriteReturnInsideNonAsyncFunctionIsFunneled(t *testing.T) {
	out, err := rewrite.Rewrite("function f() { return 1; }", rewrite.DebugNone)
	require.NoError(t, err)
	assert.Contains(t, out, "(_synchronousReturnValue = (1)")
	assert.Contains(t, out, "_functionState === 'async' ? _synchronousReturnValue : null);")
}

func TestRewriteCalleeMemberExpressionOfCallIsNotWrapped(t *testing.T) {
	out, err := rewrite.Rewrite("a.b.c()", rewrite.DebugNone)
	require.NoError(t, err)
	// a.b.c() is a call_expression whose function field is the member
	// expression a.b.c; the member expression itself is exempt from
	// wrapping because its parent is a call, but the call result is wrapped.
	assert.NotContains(t, out, ".c, _isp(_ex)")
}
