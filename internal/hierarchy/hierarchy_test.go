package hierarchy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/internal/storage"
)

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte("# test\n"), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}

func newTestIndex(t *testing.T, opts Options) (*Index, string) {
	t.Helper()
	root := t.TempDir()
	idx, err := New(storage.NewFileStore(root), opts)
	require.NoError(t, err)
	return idx, root
}

func childNames(n *Node) []string {
	names := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		names = append(names, c.Name)
	}
	return names
}

func TestRefreshBuildsTreeFoldersFirst(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	mustWriteFile(t, filepath.Join(root, "b.md"))
	mustWriteFile(t, filepath.Join(root, "A.md"))
	mustMkdirAll(t, filepath.Join(root, "zeta"))
	mustWriteFile(t, filepath.Join(root, "alpha", "inner.md"))
	mustWriteFile(t, filepath.Join(root, "notes.txt"))
	mustWriteFile(t, filepath.Join(root, ".hidden", "secret.md"))

	require.NoError(t, idx.Refresh())

	assert.Equal(t, []string{"alpha", "zeta", "A.md", "b.md"}, childNames(idx.Root()))

	alpha, ok := idx.Lookup(filepath.Join(root, "alpha"))
	require.True(t, ok)
	assert.True(t, alpha.IsFolder())
	assert.Equal(t, []string{"inner.md"}, childNames(alpha))

	zeta, ok := idx.Lookup(filepath.Join(root, "zeta"))
	require.True(t, ok)
	assert.NotNil(t, zeta.Children)
	assert.Empty(t, zeta.Children)
}

func TestRefreshNumericOrdering(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	mustWriteFile(t, filepath.Join(root, "note10.md"))
	mustWriteFile(t, filepath.Join(root, "note2.md"))
	mustWriteFile(t, filepath.Join(root, "note1.md"))

	require.NoError(t, idx.Refresh())

	assert.Equal(t, []string{"note1.md", "note2.md", "note10.md"}, childNames(idx.Root()))
}

func TestRefreshAppliesIgnorePatterns(t *testing.T) {
	idx, root := newTestIndex(t, Options{Ignore: []string{"archive", "drafts/**", "*.tmp.md"}})
	mustWriteFile(t, filepath.Join(root, "archive", "old.md"))
	mustWriteFile(t, filepath.Join(root, "drafts", "wip.md"))
	mustWriteFile(t, filepath.Join(root, "scratch.tmp.md"))
	mustWriteFile(t, filepath.Join(root, "keep.md"))

	require.NoError(t, idx.Refresh())

	assert.Equal(t, []string{"drafts", "keep.md"}, childNames(idx.Root()))
	_, ok := idx.Lookup(filepath.Join(root, "drafts", "wip.md"))
	assert.False(t, ok)
}

func TestNewRejectsBadPattern(t *testing.T) {
	_, err := New(storage.NewFileStore(t.TempDir()), Options{Ignore: []string{"[unclosed"}})
	assert.Error(t, err)
}

func TestRefreshClearsVanishedSelection(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	note := filepath.Join(root, "todo.md")
	mustWriteFile(t, note)
	require.NoError(t, idx.Refresh())
	require.NoError(t, idx.Select(note))

	require.NoError(t, os.Remove(note))
	require.NoError(t, idx.Refresh())

	_, ok := idx.Selection()
	assert.False(t, ok)
}

func TestRefreshRebindsSurvivingSelection(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	note := filepath.Join(root, "todo.md")
	mustWriteFile(t, note)
	require.NoError(t, idx.Refresh())
	require.NoError(t, idx.Select(note))
	before, _ := idx.Selection()

	require.NoError(t, idx.Refresh())

	after, ok := idx.Selection()
	require.True(t, ok)
	assert.Equal(t, note, after.Path)
	assert.NotSame(t, before, after)
	current, _ := idx.Lookup(note)
	assert.Same(t, current, after)
}

func TestRefreshFailsWhenRootMissingAndKeepsSnapshot(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	mustWriteFile(t, filepath.Join(root, "a.md"))
	require.NoError(t, idx.Refresh())

	require.NoError(t, os.RemoveAll(root))
	assert.ErrorIs(t, idx.Refresh(), storage.ErrNotFound)
	assert.Equal(t, []string{"a.md"}, childNames(idx.Root()))
}

func TestResolveParentDirectory(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	folder := filepath.Join(root, "A")
	doc := filepath.Join(folder, "note.md")
	top := filepath.Join(root, "top.md")
	mustWriteFile(t, doc)
	mustWriteFile(t, top)
	require.NoError(t, idx.Refresh())

	assert.Equal(t, root, idx.ResolveParentDirectory(nil))

	folderNode, _ := idx.Lookup(folder)
	assert.Equal(t, folder, idx.ResolveParentDirectory(folderNode))

	docNode, _ := idx.Lookup(doc)
	assert.Equal(t, folder, idx.ResolveParentDirectory(docNode))

	topNode, _ := idx.Lookup(top)
	assert.Equal(t, root, idx.ResolveParentDirectory(topNode))

	assert.Equal(t, root, idx.ResolveParentDirectory(idx.Root()))
}

func TestSelectUnknownPath(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	require.NoError(t, idx.Refresh())

	err := idx.Select(filepath.Join(root, "nope.md"))
	assert.ErrorIs(t, err, ErrUnknownPath)
	_, ok := idx.Selection()
	assert.False(t, ok)
}

func TestParent(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	doc := filepath.Join(root, "A", "note.md")
	mustWriteFile(t, doc)
	require.NoError(t, idx.Refresh())

	p, ok := idx.Parent(doc)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "A"), p.Path)

	_, ok = idx.Parent(root)
	assert.False(t, ok)
}

func TestRowsFollowExpansion(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	folder := filepath.Join(root, "A")
	doc := filepath.Join(folder, "note.md")
	mustWriteFile(t, doc)
	mustWriteFile(t, filepath.Join(root, "top.md"))
	require.NoError(t, idx.Refresh())

	rows := idx.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, root, rows[0].Node.Path)
	assert.Equal(t, 1, rows[1].Depth)

	idx.Toggle(folder)
	rows = idx.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, doc, rows[2].Node.Path)
	assert.Equal(t, 2, rows[2].Depth)

	idx.Toggle(root)
	assert.True(t, idx.IsExpanded(root))
}

func TestSelectExpandsAncestors(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	doc := filepath.Join(root, "A", "B", "deep.md")
	mustWriteFile(t, doc)
	require.NoError(t, idx.Refresh())

	require.NoError(t, idx.Select(doc))

	assert.True(t, idx.IsExpanded(filepath.Join(root, "A")))
	assert.True(t, idx.IsExpanded(filepath.Join(root, "A", "B")))
	assert.Equal(t, []string{filepath.Join(root, "A"), filepath.Join(root, "A", "B")}, idx.ExpandedPaths())
}

func TestRestoreExpandedSkipsUnknown(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	mustMkdirAll(t, filepath.Join(root, "A"))
	mustWriteFile(t, filepath.Join(root, "b.md"))
	require.NoError(t, idx.Refresh())

	idx.RestoreExpanded([]string{filepath.Join(root, "A"), filepath.Join(root, "b.md"), filepath.Join(root, "gone")})

	assert.Equal(t, []string{filepath.Join(root, "A")}, idx.ExpandedPaths())
}

func TestRefreshPrunesExpandedFolders(t *testing.T) {
	idx, root := newTestIndex(t, Options{})
	folder := filepath.Join(root, "A")
	mustMkdirAll(t, folder)
	require.NoError(t, idx.Refresh())
	idx.Toggle(folder)

	require.NoError(t, os.Remove(folder))
	require.NoError(t, idx.Refresh())

	assert.Empty(t, idx.ExpandedPaths())
}
