// Package active tracks the single document shown in the content pane.
package active

import (
	"errors"

	"github.com/Paintersrp/notetree/internal/hierarchy"
)

var ErrNotADocument = errors.New("only documents can be shown")

// Resolver answers whether a path is still a document. The hierarchy index
// satisfies it after a refresh.
type Resolver interface {
	Lookup(path string) (*hierarchy.Node, bool)
}

type Tracker struct {
	path string
}

func NewTracker() *Tracker {
	return &Tracker{}
}

// Show makes node the active document.
func (t *Tracker) Show(node *hierarchy.Node) error {
	if node == nil || !node.IsDocument() {
		return ErrNotADocument
	}
	t.path = node.Path
	return nil
}

// Current returns the active document path.
func (t *Tracker) Current() (string, bool) {
	return t.path, t.path != ""
}

// Is reports whether path is the active document.
func (t *Tracker) Is(path string) bool {
	return t.path != "" && t.path == path
}

func (t *Tracker) Clear() {
	t.path = ""
}

// OnHierarchyRefresh drops the active document when its path no longer
// resolves to a document in the refreshed tree. It reports whether the
// reference was cleared.
func (t *Tracker) OnHierarchyRefresh(r Resolver) bool {
	if t.path == "" {
		return false
	}
	if n, ok := r.Lookup(t.path); ok && n.IsDocument() {
		return false
	}
	t.path = ""
	return true
}
