// Package syntax adapts the tree-sitter JavaScript grammar into the
// parent-linked, span-bearing node shape the rewrite engine's classifier and
// rule engine need. It is the concrete implementation of the "syntax tree
// producer" spec.md §1 treats as an out-of-scope collaborator: a real parser
// exposing (kind, span, structural accessors), nothing more.
package syntax

import (
	"sync"

	"github.com/alexaandru/go-sitter-forest/javascript"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

var (
	hostLanguage     *sitter.Language //nolint:gochecknoglobals // lazily initialized, process-lifetime singleton
	hostLanguageOnce sync.Once        //nolint:gochecknoglobals // guards hostLanguage initialization
)

// HostLanguage returns the tree-sitter Language for the host script language
// the engine rewrites, loading it once per process the same way the teacher's
// GetLanguage helper lazily loads and caches a grammar.
func HostLanguage() *sitter.Language {
	hostLanguageOnce.Do(func() {
		hostLanguage = sitter.NewLanguage(javascript.GetLanguage())
	})

	return hostLanguage
}
