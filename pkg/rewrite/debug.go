package rewrite

import (
	"fmt"
	"strings"
)

// DebugLevel selects how much tracing the emitted output carries (spec.md §6).
type DebugLevel int

const (
	// DebugNone emits no tracing at all.
	DebugNone DebugLevel = iota
	// DebugTypesOnly prefixes every visited node with a /*<NodeKind>*/ comment.
	DebugTypesOnly
	// DebugVerbose does everything DebugTypesOnly does, plus wraps every
	// emitted insertion in a /*iSEQ@OFFSET*/ trace comment.
	DebugVerbose
)

// nodeKindComment is the insertion text DebugTypesOnly and DebugVerbose add
// at the start of every traversed node (spec.md §4.4, "If a debug level is
// enabled").
func nodeKindComment(kind string) string {
	return "/*" + kind + "*/"
}

// applyTraceTags rewrites each insertion's text in place to carry a
// /*iSEQ@OFFSET*/ trace comment, using the sequence number Sort assigned.
// The closing copy of the tag is omitted when the insertion's own text
// already contains "/*", since appending another "*/" after an
// already-opened comment would truncate it (spec.md §4.4).
func applyTraceTags(items []Insertion) {
	for i := range items {
		tag := fmt.Sprintf("/*i%d@%d*/", items[i].sequence, items[i].Offset)

		if strings.Contains(items[i].Text, "/*") {
			items[i].Text = tag + items[i].Text
			continue
		}

		items[i].Text = tag + items[i].Text + tag
	}
}
