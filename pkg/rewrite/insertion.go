package rewrite

import (
	"fmt"
	"slices"
	"strings"
)

// Insertion is a single offset-anchored text edit (spec.md §3, "Insertion").
// sequence is unset (zero) until InsertionList.Sort assigns it; callers never
// set it directly, matching the original implementation's trick of stamping
// a single ordering counter in one pass immediately before sorting.
type Insertion struct {
	Text     string
	Offset   uint32
	sequence int
	Reverse  bool
}

// InsertionList is the ordered, appendable collection of edits produced
// during traversal, plus the set of identifier names to hoist (spec.md §3,
// "Insertion list"). The zero value is not usable; construct with
// NewInsertionList.
type InsertionList struct {
	varSeen map[string]bool
	items   []Insertion
	vars    []string
	sorted  bool
}

// NewInsertionList returns an empty, ready-to-use insertion list.
func NewInsertionList() *InsertionList {
	return &InsertionList{varSeen: make(map[string]bool)}
}

// Open records an opening insertion: text emitted before the node it
// anchors to (Reverse == false).
func (l *InsertionList) Open(offset uint32, text string) {
	l.items = append(l.items, Insertion{Offset: offset, Text: text, Reverse: false})
}

// Close records a closing insertion: text emitted after the node it anchors
// to (Reverse == true).
func (l *InsertionList) Close(offset uint32, text string) {
	l.items = append(l.items, Insertion{Offset: offset, Text: text, Reverse: true})
}

// AddVar adds name to the set of identifiers to hoist as `var` declarations.
// Order of first appearance is preserved so the emitted preamble is
// deterministic across otherwise-equivalent traversals.
func (l *InsertionList) AddVar(name string) {
	if l.varSeen[name] {
		return
	}

	l.varSeen[name] = true
	l.vars = append(l.vars, name)
}

// Vars returns the hoisted names in first-seen order.
func (l *InsertionList) Vars() []string {
	return l.vars
}

// Merge appends other's insertions and vars into l, in traversal order. The
// child list is considered consumed afterward; spec.md §3 ("Lifecycle")
// treats insertions as owned exclusively by the list that collects them.
func (l *InsertionList) Merge(other *InsertionList) {
	l.items = append(l.items, other.items...)

	for _, name := range other.vars {
		l.AddVar(name)
	}
}

// Len reports how many insertions are currently recorded.
func (l *InsertionList) Len() int {
	return len(l.items)
}

// Sort finalizes sequence numbers and reorders the list by the total order
// spec.md §4.2 defines: lower offset first; among closers at one offset the
// later-produced comes first; among openers at one offset the
// earlier-produced comes first; and at a shared offset a closer always
// precedes an opener. Sort must be called exactly once, after every
// insertion has been recorded and before Emit.
func (l *InsertionList) Sort() {
	for i := range l.items {
		l.items[i].sequence = i
	}

	slices.SortFunc(l.items, compareInsertions)
	l.sorted = true
}

func compareInsertions(a, b Insertion) int {
	if a.Offset != b.Offset {
		return int(a.Offset) - int(b.Offset)
	}

	switch {
	case a.Reverse && b.Reverse:
		return b.sequence - a.sequence
	case !a.Reverse && !b.Reverse:
		return a.sequence - b.sequence
	case a.Reverse && !b.Reverse:
		return -1
	default:
		return 1
	}
}

// Emit walks the sorted list with a cursor over src, copying untouched bytes
// and splicing in each insertion's text in order (spec.md §4.2,
// "Emission"). Sort must have been called first; Emit panics on the
// structural invariant spec.md §7 calls out ("Offset monotonicity during
// emission is asserted") because a violation can only mean a bug in Sort or
// in a rule that emitted an out-of-range offset, never a recoverable runtime
// condition.
func (l *InsertionList) Emit(src []byte) string {
	if !l.sorted {
		panic("rewrite: InsertionList.Emit called before Sort")
	}

	var out strings.Builder

	out.Grow(len(src) + estimateInsertedBytes(l.items))

	cursor := uint32(0)

	for _, ins := range l.items {
		if ins.Offset < cursor {
			panic(fmt.Sprintf("rewrite: insertion offset %d precedes cursor %d", ins.Offset, cursor))
		}

		out.Write(src[cursor:ins.Offset])
		out.WriteString(ins.Text)

		cursor = ins.Offset
	}

	out.Write(src[cursor:])

	return out.String()
}

// DebugTag rewrites every recorded insertion's text to carry a trace comment
// (debug.go's applyTraceTags). Must be called after Sort, since it reports
// each insertion's traversal sequence number.
func (l *InsertionList) DebugTag() {
	applyTraceTags(l.items)
}

func estimateInsertedBytes(items []Insertion) int {
	total := 0
	for _, ins := range items {
		total += len(ins.Text)
	}

	return total
}
