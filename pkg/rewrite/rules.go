package rewrite

import (
	"fmt"

	"github.com/codefang-labs/asyncrewrite/pkg/rewrite/syntax"
)

// ruleEngine walks a parsed tree and, for each node, emits the insertions
// spec.md §4.3 assigns to that node's syntactic category. It accumulates
// into a single InsertionList and aborts the whole traversal on the first
// structural precondition failure (spec.md §7): once err is set, visit
// becomes a no-op so partial, inconsistent insertions are never returned.
type ruleEngine struct {
	src      []byte
	classify *classifier
	list     *InsertionList
	debug    DebugLevel
	err      error
}

func newRuleEngine(src []byte) *ruleEngine {
	return &ruleEngine{src: src, classify: newClassifier(src), list: NewInsertionList()}
}

// visit applies the rule for n, then recurses into n's children. Applying
// the rule before recursing is load-bearing: it guarantees n's own
// insertions are produced strictly before any insertion a descendant
// contributes, which is what makes the tie-break rules in §4.2 nest
// wraps correctly when a node's span coincides exactly with a child's.
func (e *ruleEngine) visit(n *syntax.Node) {
	if e.err != nil {
		return
	}

	if e.debug != DebugNone {
		e.list.Open(n.Start, nodeKindComment(n.Kind))
	}

	e.applyRule(n)

	for _, c := range n.Children {
		e.visit(c)
	}
}

func (e *ruleEngine) applyRule(n *syntax.Node) {
	switch n.Kind {
	case kindFunctionDecl, kindFunctionExpr, kindGeneratorFnDecl, kindGeneratorFnExpr, kindMethodDefinition:
		e.ruleFunctionLike(n)
	case kindArrowFunction:
		e.ruleArrowFunction(n)
	case kindClassDecl:
		e.ruleClass(n)
	case kindVariableDecl, kindLexicalDecl:
		e.ruleVariableDeclaration(n)
	case kindExpressionStmt:
		e.ruleExpressionStatement(n)
	case kindReturnStmt:
		e.ruleReturn(n)
	default:
		e.ruleExpressionWrap(n)
	}
}

// ruleFunctionLike implements (F1): named top-level functions are hoisted
// by renaming the declaration to F__ and reassigning the hoisted F binding
// after the function; every non-async function body gets the runtime wrap.
func (e *ruleEngine) ruleFunctionLike(n *syntax.Node) {
	if e.classify.enclosingFunction(n) == nil {
		if name := n.Field("name"); name != nil {
			rawName := e.classify.sourceOf(name)

			e.list.Open(name.End, "__")
			e.list.Close(n.End, ";\n_cr = "+rawName+" = "+rawName+"__;\n")
			e.list.AddVar(rawName)
		}
	}

	if !e.classify.isAsync(n) {
		e.wrapNonAsyncBody(n)
	}
}

// ruleArrowFunction implements (F2): same runtime wrap as (F1), but arrows
// are never hoisted since they cannot bind a name of their own.
func (e *ruleEngine) ruleArrowFunction(n *syntax.Node) {
	if !e.classify.isAsync(n) {
		e.wrapNonAsyncBody(n)
	}
}

// wrapNonAsyncBody lays down the literal runtime snippet (spec.md §4.5)
// around a non-async function's body. A block body is wrapped just inside
// its braces; a bare arrow expression body additionally gets synthesized
// braces and an implicit-return funnel, since the snippet needs a statement
// context to declare its locals in.
func (e *ruleEngine) wrapNonAsyncBody(n *syntax.Node) {
	body := n.Field("body")
	if body == nil {
		e.err = fmt.Errorf("%w: %s at offset %d", ErrMissingBody, n.Kind, n.Start)
		return
	}

	if body.Kind == kindStatementBlock {
		e.list.Open(body.Start+1, syntheticPromiseHelpers)
		e.list.Close(body.End-1, functionWrapCloser)

		return
	}

	e.list.Open(body.Start, "{")
	e.list.Open(body.Start, syntheticPromiseHelpers)
	e.list.Open(body.Start, exprBodyReturnOpen)
	e.list.Close(body.End, "}")
	e.list.Close(body.End, functionWrapCloser)
	e.list.Close(body.End, exprBodyReturnClose)
}

// ruleClass implements (C): a named top-level class is recorded as the
// completion record and hoisted like a named function.
func (e *ruleEngine) ruleClass(n *syntax.Node) {
	if e.classify.enclosingFunction(n) != nil {
		return
	}

	name := n.Field("name")
	if name == nil {
		return
	}

	rawName := e.classify.sourceOf(name)

	e.list.Open(n.Start, "_cr = "+rawName+" = ")
	e.list.Close(n.End, ";")
	e.list.AddVar(rawName)
}

// ruleVariableDeclaration implements (V): at top level, outside a for-init,
// the declaration keyword is commented out and the declarator list becomes
// a parenthesized assignment-expression statement, so that the names (now
// hoisted as vars) retain their top-level bindings across the IIFE wrap.
func (e *ruleEngine) ruleVariableDeclaration(n *syntax.Node) {
	if e.classify.enclosingFunction(n) != nil {
		return
	}

	if e.classify.isForInitPosition(n) {
		return
	}

	if len(n.Children) == 0 {
		return
	}

	keyword := n.Children[0]

	tailEnd := n.End
	if last := n.Children[len(n.Children)-1]; !last.Named && last.Kind == ";" {
		tailEnd = last.Start
	}

	e.list.Open(n.Start, "/*")
	e.list.Open(keyword.End, "*/(")
	e.list.Close(tailEnd, ")")

	for _, child := range n.NamedChildren() {
		if child.Kind != kindVariableDtor {
			continue
		}

		e.collectPatternNames(child.Field("name"))
	}
}

// collectPatternNames recursively gathers every bound identifier out of a
// (possibly nested, possibly destructuring) binding pattern.
func (e *ruleEngine) collectPatternNames(n *syntax.Node) {
	if n == nil {
		return
	}

	switch n.Kind {
	case kindIdentifier, kindShorthandPropPat, kindShorthandProp:
		e.list.AddVar(e.classify.sourceOf(n))
	case kindAssignmentPattern:
		e.collectPatternNames(n.Field("left"))
	case kindPairPattern:
		if v := n.Field("value"); v != nil {
			e.collectPatternNames(v)
			return
		}

		for _, c := range n.NamedChildren() {
			e.collectPatternNames(c)
		}
	case kindArrayPattern, kindObjectPattern, kindRestPattern:
		for _, c := range n.NamedChildren() {
			e.collectPatternNames(c)
		}
	}
}

// ruleExpressionStatement implements (E). An arrow's implicit-return
// expression body is never itself wrapped in an expression_statement by
// the grammar, but the guard mirrors spec.md §4.3 literally in case a host
// grammar variant ever models it that way.
func (e *ruleEngine) ruleExpressionStatement(n *syntax.Node) {
	if e.classify.parentKind(n) == kindArrowFunction {
		return
	}

	inner := firstNamedChild(n)
	if inner == nil {
		return
	}

	atTopLevel := e.classify.enclosingFunction(n) == nil

	e.list.Open(inner.Start, ";")
	if atTopLevel {
		e.list.Open(inner.Start, "_cr = (")
	}

	e.list.Close(inner.End, ";")
	if atTopLevel {
		e.list.Close(inner.End, ")")
	}
}

// ruleReturn implements (R): inside a non-async function, a return's
// argument is funneled through _synchronousReturnValue so the outer
// function wrap can tell a synchronous return from a suspended one.
// return_statement carries no field for its argument in this grammar: the
// 'return' keyword and the trailing ';' are its only other children, and
// neither is named, so the argument (if any) is the statement's one named
// child and is found via firstNamedChild rather than Field.
func (e *ruleEngine) ruleReturn(n *syntax.Node) {
	fn := e.classify.enclosingFunction(n)
	if fn == nil || e.classify.isAsync(fn) {
		return
	}

	arg := firstNamedChild(n)
	if arg == nil {
		return
	}

	e.list.Open(arg.Start, returnWrapOpen)
	e.list.Close(arg.End, returnWrapClose)
}

// ruleExpressionWrap implements (X) plus the typeof-safety addendum. The
// typeof guard, when it applies, is laid down as the outer layer and the
// implicit-await wrap as the inner layer, so the guard's own (throw-free)
// typeof check is what decides whether the wrap ever runs at all.
func (e *ruleEngine) ruleExpressionWrap(n *syntax.Node) {
	ref := e.classify.identifierReferenceOf(n)
	parent := n.Parent

	isTypeofOperand := ref != nil && parent != nil && parent.Kind == kindUnaryExpr &&
		parent.Field("operator") != nil && parent.Field("operator").Kind == kindTypeofOperator &&
		parent.Field("argument") == n

	wrap := e.shouldWrap(n)

	if isTypeofOperand {
		e.list.Open(parent.Start, typeofGuardOpen+typeofGuardMiddle(e.classify.sourceOf(ref)))
	}

	if wrap {
		e.list.Open(n.Start, exprWrapOpen)
	}

	if isTypeofOperand {
		e.list.Close(parent.End, typeofGuardClose)
	}

	if wrap {
		e.list.Close(n.End, exprWrapClose)
	}
}

// shouldWrap implements the 7-step decision procedure of (X).
func (e *ruleEngine) shouldWrap(n *syntax.Node) bool {
	wrap := false

	// Step 2. Shorthand object properties parse as a distinct
	// shorthand_property_identifier(_pattern) kind in this grammar, never as
	// a plain identifier, so they never reach identifierReferenceOf here;
	// the "parent is not shorthand" clause is therefore always satisfied.
	if ref := e.classify.identifierReferenceOf(n); ref != nil {
		name := e.classify.sourceOf(ref)
		if name != "eval" && name != "this" && name != "super" {
			wrap = true
		}
	}

	switch n.Kind {
	case kindCallExpr:
		wrap = true
	case kindChainExpr:
		wrap = e.classify.parentKind(n) != kindCallExpr
	case kindMemberExpr, kindSubscriptExpr:
		wrap = e.classify.parentKind(n) != kindCallExpr
	}

	if e.isDeleteOperand(n) {
		wrap = false
	}

	if e.isForbiddenParentPosition(n) {
		wrap = false
	}

	return wrap
}

func (e *ruleEngine) isDeleteOperand(n *syntax.Node) bool {
	parent := n.Parent
	if parent == nil || parent.Kind != kindUnaryExpr {
		return false
	}

	op := parent.Field("operator")

	return op != nil && op.Kind == kindDeleteOperator && parent.Field("argument") == n
}

func (e *ruleEngine) isForbiddenParentPosition(n *syntax.Node) bool {
	if e.classify.isForInitPosition(n) || e.classify.isAssignmentTargetPosition(n) ||
		e.classify.isFormalParameterPosition(n) {
		return true
	}

	// The name a function or class declares is a binding, not a reference.
	if p := n.Parent; p != nil && (functionLikeKinds[p.Kind] || p.Kind == kindClassDecl) && p.Field("name") == n {
		return true
	}

	return n.Parent != nil && n.Parent.Kind == kindAwaitExpr
}
