package syntax

import (
	"context"
	"fmt"

	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// fieldNames lists every tree-sitter field name the classifier and rule
// engine need resolved eagerly. The JavaScript grammar exposes far more
// fields than this, but only these are ever read by a rule (§4.1, §4.3).
var fieldNames = []string{ //nolint:gochecknoglobals // fixed lookup table, not mutated after init
	"name", "body", "left", "right", "object", "property", "index",
	"function", "arguments", "value", "argument", "condition", "initializer",
	"increment", "key", "parameters", "consequence", "alternative", "operator",
}

// Node is a parent-linked syntax tree node with a byte-offset span and
// resolved field accessors. It is this module's concrete instance of the
// "syntax tree producer" interface spec.md §1 leaves abstract: kind, span,
// and the structural accessors (Parent, Children, Field) the classifier
// needs.
type Node struct {
	Parent   *Node
	fields   map[string]*Node
	Kind     string
	Children []*Node
	Start    uint32
	End      uint32
	Named    bool
}

// ParseError is a single parser diagnostic, formatted for §6's error surface.
type ParseError struct {
	Kind  string
	Start uint32
	End   uint32
}

func (e ParseError) String() string {
	return fmt.Sprintf("%s at [%d,%d)", e.Kind, e.Start, e.End)
}

// Field returns the node reachable through the given tree-sitter field name,
// or nil if the node has no such field. Used by the classifier's
// assignment-target and for-init checks and by rules ((F1)/(C)'s name,
// (F1)/(F2)'s body, (V)'s declarator name, (X)'s unary operator/argument).
func (n *Node) Field(name string) *Node {
	if n == nil {
		return nil
	}

	return n.fields[name]
}

// Text returns the raw source substring spanned by the node.
func (n *Node) Text(src []byte) string {
	return string(src[n.Start:n.End])
}

// HasNamedChildOfKind reports whether any direct child (named or not) has
// the given kind. Used to detect keyword tokens the grammar models as
// anonymous children, e.g. the "async" token preceding a function/arrow.
func (n *Node) HasNamedChildOfKind(kind string) bool {
	for _, c := range n.Children {
		if c.Kind == kind {
			return true
		}
	}

	return false
}

// NamedChildren returns only the named (non-punctuation/keyword) children.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.Children))

	for _, c := range n.Children {
		if c.Named {
			out = append(out, c)
		}
	}

	return out
}

// Parse parses src as a fragment of the host script language and returns its
// root node plus any parse error nodes the grammar recovered from the
// driver's perspective (§4.4 step 1, §7): a non-empty error slice means the
// caller should fail the whole rewrite rather than emit a partial result.
func Parse(src []byte) (*Node, []ParseError, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(HostLanguage())

	tree, err := parser.ParseString(context.Background(), nil, src)
	if err != nil {
		return nil, nil, fmt.Errorf("syntax: parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return nil, nil, errNoRoot
	}

	converted := convert(root, nil)

	var errs []ParseError

	collectErrors(converted, &errs)

	return converted, errs, nil
}

func convert(raw sitter.Node, parent *Node) *Node {
	n := &Node{
		Kind:   raw.Type(),
		Start:  raw.StartByte(),
		End:    raw.EndByte(),
		Named:  raw.IsNamed(),
		Parent: parent,
	}

	count := int(raw.ChildCount())
	n.Children = make([]*Node, 0, count)

	for i := range count {
		child := raw.Child(i)
		if child.IsNull() {
			continue
		}

		n.Children = append(n.Children, convert(child, n))
	}

	n.fields = resolveFields(raw, n)

	return n
}

// resolveFields matches each of fieldNames against the raw node's
// ChildByFieldName lookup, then finds the already-converted child with the
// same span so the returned map points into n.Children rather than
// reconverting the subtree.
func resolveFields(raw sitter.Node, n *Node) map[string]*Node {
	fields := make(map[string]*Node, len(fieldNames))

	for _, name := range fieldNames {
		target := raw.ChildByFieldName(name)
		if target.IsNull() {
			continue
		}

		if match := findChildBySpan(n.Children, target.StartByte(), target.EndByte()); match != nil {
			fields[name] = match
		}
	}

	return fields
}

func findChildBySpan(children []*Node, start, end uint32) *Node {
	for _, c := range children {
		if c.Start == start && c.End == end {
			return c
		}
	}

	return nil
}

func collectErrors(n *Node, errs *[]ParseError) {
	if n.Kind == "ERROR" {
		*errs = append(*errs, ParseError{Kind: n.Kind, Start: n.Start, End: n.End})
	}

	for _, c := range n.Children {
		collectErrors(c, errs)
	}
}
