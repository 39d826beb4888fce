package active

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/internal/hierarchy"
)

type fakeResolver map[string]*hierarchy.Node

func (f fakeResolver) Lookup(path string) (*hierarchy.Node, bool) {
	n, ok := f[path]
	return n, ok
}

func TestShowRequiresDocument(t *testing.T) {
	tr := NewTracker()

	assert.ErrorIs(t, tr.Show(nil), ErrNotADocument)
	assert.ErrorIs(t, tr.Show(&hierarchy.Node{Path: "/n/dir", Kind: hierarchy.Folder}), ErrNotADocument)

	_, ok := tr.Current()
	assert.False(t, ok)

	require.NoError(t, tr.Show(&hierarchy.Node{Path: "/n/a.md", Kind: hierarchy.Document}))
	p, ok := tr.Current()
	assert.True(t, ok)
	assert.Equal(t, "/n/a.md", p)
	assert.True(t, tr.Is("/n/a.md"))
	assert.False(t, tr.Is("/n/b.md"))
}

func TestOnHierarchyRefresh(t *testing.T) {
	doc := &hierarchy.Node{Path: "/n/a.md", Kind: hierarchy.Document}

	tr := NewTracker()
	require.NoError(t, tr.Show(doc))

	assert.False(t, tr.OnHierarchyRefresh(fakeResolver{doc.Path: doc}))
	assert.True(t, tr.Is(doc.Path))

	// Path now resolves to a folder.
	assert.True(t, tr.OnHierarchyRefresh(fakeResolver{doc.Path: {Path: doc.Path, Kind: hierarchy.Folder}}))
	_, ok := tr.Current()
	assert.False(t, ok)

	require.NoError(t, tr.Show(doc))
	assert.True(t, tr.OnHierarchyRefresh(fakeResolver{}))
	assert.False(t, tr.OnHierarchyRefresh(fakeResolver{}))
}

func TestClear(t *testing.T) {
	tr := NewTracker()
	require.NoError(t, tr.Show(&hierarchy.Node{Path: "/n/a.md", Kind: hierarchy.Document}))

	tr.Clear()

	_, ok := tr.Current()
	assert.False(t, ok)
}
