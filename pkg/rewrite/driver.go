// Package rewrite implements the source-to-source transform that makes
// every expression capable of evaluating to a synthetic promise implicitly
// awaited, while preserving completion-record semantics and top-level
// declaration hoisting across the injected IIFE.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite/syntax"
)

// Rewrite is the single entry point exported across the language boundary
// (spec.md §6): it parses input as a fragment of the host script language
// and returns the rewritten fragment, or an error naming why the rewrite
// could not be produced.
func Rewrite(input string, debug DebugLevel) (string, error) {
	src, list, err := buildInsertions(input, debug)
	if err != nil {
		return "", err
	}

	if debug == DebugVerbose {
		list.DebugTag()
	}

	return list.Emit(src), nil
}

// TraceEntry describes a single insertion in final emission order, for
// tooling that wants to inspect the rewrite step by step without the
// /*iSEQ@OFFSET*/ comments Rewrite's DebugVerbose level inlines into the
// output itself.
type TraceEntry struct {
	Text     string
	Offset   uint32
	Sequence int
	Close    bool
}

// Trace runs the same pipeline as Rewrite but returns the sorted insertion
// list instead of the emitted text, for the CLI's trace command.
func Trace(input string) ([]TraceEntry, error) {
	_, list, err := buildInsertions(input, DebugNone)
	if err != nil {
		return nil, err
	}

	entries := make([]TraceEntry, len(list.items))
	for i, ins := range list.items {
		entries[i] = TraceEntry{Text: ins.Text, Offset: ins.Offset, Sequence: ins.sequence, Close: ins.Reverse}
	}

	return entries, nil
}

func buildInsertions(input string, debug DebugLevel) ([]byte, *InsertionList, error) {
	src := []byte(input)

	root, parseErrs, err := syntax.Parse(src)
	if err != nil {
		return nil, nil, fmt.Errorf("rewrite: %w", err)
	}

	if len(parseErrs) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrParse, formatParseErrors(parseErrs))
	}

	engine := newRuleEngine(src)
	engine.debug = debug
	engine.visit(root)

	if engine.err != nil {
		return nil, nil, engine.err
	}

	body := engine.list
	end := uint32(len(src))

	// The script-level wrap is the outermost layer around the whole
	// traversal, so every one of its insertions must be recorded before any
	// insertion the traversal produced: Sort stamps sequence in append
	// order, and at a shared offset openers emit in ascending sequence while
	// closers emit in descending sequence, so "recorded first" is what
	// "outermost" requires on both ends of the source. Building this wrap in
	// a separate list and merging body in afterward (rather than appending
	// to body once the traversal is done) is what keeps it first regardless
	// of how late body's own hoisted-var names become known.
	wrap := NewInsertionList()

	for _, directive := range directivePrologues(root, src) {
		wrap.Open(0, directive)
	}

	wrap.Open(0, scriptPrologue)
	wrap.Open(0, syntheticPromiseHelpersTopLevel)
	wrap.Open(0, "var _cr;")

	for _, name := range body.Vars() {
		wrap.Open(0, "var "+name+";")
	}

	// Pushed outer-to-inner-layer-last so the descending-sequence tie-break
	// for closers at a shared offset emits them innermost-first: the
	// completion-record return closes the try block, functionWrapCloser's
	// catch/finally/state-machine epilogue runs next, and scriptEpilogue's
	// "})()" closes and invokes the wrapping IIFE last of all.
	wrap.Close(end, scriptEpilogue)
	wrap.Close(end, functionWrapCloser)
	wrap.Close(end, ";\n return _synchronousReturnValue = _cr;")

	wrap.Merge(body)
	wrap.Sort()

	return src, wrap, nil
}

// directivePrologues returns the raw source text of every leading
// directive statement (a maximal run of top-level expression statements
// each consisting of a single string literal), so the driver can reinsert
// them verbatim immediately before the wrapping IIFE (spec.md §4.4 step 4).
// They have to stay ahead of scriptPrologue's own opening text rather than
// move inside it: a directive only takes effect when it is one of the
// leading statements of whatever it prologues, and scriptPrologue's
// "const __SymbolFor = ..." would already occupy that leading position if
// the directives were spliced in after it. Reinserting rather than
// relocating is deliberate: the original occurrence is still visited and
// rewritten like any other top-level expression statement, and only the
// fresh copy at offset 0 has to parse as an actual directive.
func directivePrologues(root *syntax.Node, src []byte) []string {
	var out []string

	for _, child := range root.Children {
		if child.Kind == kindHashBangLine {
			continue
		}

		if child.Kind != kindExpressionStmt {
			break
		}

		inner := firstNamedChild(child)
		if inner == nil || inner.Kind != kindString {
			break
		}

		out = append(out, child.Text(src))
	}

	return out
}

func formatParseErrors(errs []syntax.ParseError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.String()
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
