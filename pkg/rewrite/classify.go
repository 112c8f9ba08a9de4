package rewrite

import "github.com/codefang-labs/asyncrewrite/pkg/rewrite/syntax"

// classifier answers the structural questions the rule engine needs about a
// node's position in the tree (spec.md §4.1). It holds no mutable state of
// its own; every method is a pure function of the node (and, where needed,
// the original source bytes for sourceOf).
type classifier struct {
	src []byte
}

func newClassifier(src []byte) *classifier {
	return &classifier{src: src}
}

// enclosingFunction returns fn(n): the innermost ancestor of n (not n
// itself) that is a function declaration, function expression, method, or
// arrow function (spec.md §3).
func (c *classifier) enclosingFunction(n *syntax.Node) *syntax.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if functionLikeKinds[p.Kind] {
			return p
		}
	}

	return nil
}

// isAsync reports isAsync(fn): whether the given function-like node carries
// the async marker. The JavaScript grammar models `async` as an anonymous
// leading token rather than a dedicated field.
func (c *classifier) isAsync(fn *syntax.Node) bool {
	if fn == nil {
		return false
	}

	return fn.HasNamedChildOfKind(kindAsync)
}

// parentKind returns the syntactic category label of n's parent, or "" if n
// has no parent (the root).
func (c *classifier) parentKind(n *syntax.Node) string {
	if n.Parent == nil {
		return ""
	}

	return n.Parent.Kind
}

// identifierReferenceOf returns n itself if n is a bare identifier
// reference, or peels through a chain of parenthesized expressions wrapping
// one (spec.md §9, "Identifier-or-parenthesized unwrapping"); otherwise nil.
func (c *classifier) identifierReferenceOf(n *syntax.Node) *syntax.Node {
	cur := n
	for cur != nil && cur.Kind == kindParenthesized {
		inner := firstNamedChild(cur)
		if inner == nil {
			return nil
		}

		cur = inner
	}

	if cur != nil && identifierLikeKinds[cur.Kind] {
		return cur
	}

	return nil
}

// sourceOf returns the raw substring of the original source the node spans,
// used once for the typeof-safety rewrite (spec.md §4.1, §4.3).
func (c *classifier) sourceOf(n *syntax.Node) string {
	return n.Text(c.src)
}

func firstNamedChild(n *syntax.Node) *syntax.Node {
	for _, c := range n.Children {
		if c.Named {
			return c
		}
	}

	return nil
}

// isAssignmentTargetPosition reports whether n sits in any of the
// assignment-target forms rule (X).7 exempts from wrapping: the left-hand
// side of a plain or augmented assignment, the bound name (not the
// initializer) of a variable declarator, or a pattern slot of a
// destructuring assignment/declaration (array/object pattern element,
// assignment pattern default, rest pattern).
func (c *classifier) isAssignmentTargetPosition(n *syntax.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}

	switch parent.Kind {
	case kindAssignmentExpr, kindAugAssignmentExpr:
		return parent.Field("left") == n
	case kindVariableDtor:
		return parent.Field("name") == n
	case kindArrayPattern, kindObjectPattern, kindRestPattern, kindAssignmentPattern,
		kindPairPattern, kindShorthandPropPat:
		return true
	default:
		return false
	}
}

// isForInitPosition reports whether n is the init clause of a C-style for
// loop or the left-hand side of a for-in/for-of loop (rule (X).7, and rule
// (V)'s "not the init of a for/for-in/for-of" exemption). The iterated
// object of a for-in/for-of is not an init position.
func (c *classifier) isForInitPosition(n *syntax.Node) bool {
	parent := n.Parent
	if parent == nil {
		return false
	}

	if parent.Kind == kindForStmt && parent.Field("initializer") == n {
		return true
	}

	return parent.Kind == kindForInStmt && parent.Field("left") == n
}

// isFormalParameterPosition reports whether n sits directly inside a
// function's parameter list (rule (X).7).
func (c *classifier) isFormalParameterPosition(n *syntax.Node) bool {
	return n.Parent != nil && n.Parent.Kind == kindFormalParameters
}
