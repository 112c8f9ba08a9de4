package syntax

import "errors"

// errNoRoot is returned when the tree-sitter parser produces no root node at
// all (as opposed to a root node containing ERROR children, which Parse
// reports via its ParseError slice instead).
var errNoRoot = errors.New("syntax: parser produced no root node")
