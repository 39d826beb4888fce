package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/internal/hierarchy"
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

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "state", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLoadUnknownRootIsEmpty(t *testing.T) {
	s := openStore(t)

	snap, err := s.Load(context.Background(), "/nowhere")
	require.NoError(t, err)
	assert.Empty(t, snap.Selected)
	assert.Empty(t, snap.Expanded)
}

func TestSaveReplacesSnapshot(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "/notes", Snapshot{Selected: "A/x.md", Expanded: []string{"B", "A"}}))
	require.NoError(t, s.Save(ctx, "/other", Snapshot{Selected: "y.md", Expanded: []string{"C"}}))

	snap, err := s.Load(ctx, "/notes")
	require.NoError(t, err)
	assert.Equal(t, Snapshot{Selected: "A/x.md", Expanded: []string{"A", "B"}}, snap)

	require.NoError(t, s.Save(ctx, "/notes", Snapshot{Selected: "z.md"}))
	snap, err = s.Load(ctx, "/notes")
	require.NoError(t, err)
	assert.Equal(t, "z.md", snap.Selected)
	assert.Empty(t, snap.Expanded)

	other, err := s.Load(ctx, "/other")
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, other.Expanded)
}

func TestCaptureAndRestoreRoundTripThroughIndex(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "A", "inner", "x.md"))
	mustWriteFile(t, filepath.Join(root, "B", "y.md"))

	idx, err := hierarchy.New(storage.NewFileStore(root), hierarchy.Options{})
	require.NoError(t, err)
	require.NoError(t, idx.Refresh())
	require.NoError(t, idx.Select(filepath.Join(root, "A", "inner", "x.md")))
	idx.Toggle(filepath.Join(root, "B"))

	snap := Capture(idx)
	assert.Equal(t, "A/inner/x.md", snap.Selected)
	assert.Equal(t, []string{"A", "A/inner", "B"}, snap.Expanded)

	fresh, err := hierarchy.New(storage.NewFileStore(root), hierarchy.Options{})
	require.NoError(t, err)
	require.NoError(t, fresh.Refresh())
	Restore(fresh, snap)

	sel, ok := fresh.Selection()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "A", "inner", "x.md"), sel.Path)
	assert.True(t, fresh.IsExpanded(filepath.Join(root, "B")))
}

func TestRestoreIgnoresVanishedEntries(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "keep.md"))

	idx, err := hierarchy.New(storage.NewFileStore(root), hierarchy.Options{})
	require.NoError(t, err)
	require.NoError(t, idx.Refresh())

	Restore(idx, Snapshot{Selected: "gone.md", Expanded: []string{"missing"}})

	_, ok := idx.Selection()
	assert.False(t, ok)
	assert.Empty(t, idx.ExpandedPaths())
}

func TestDraftsRoundTripPerRoot(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	root := filepath.Join(t.TempDir(), "notes")
	note := filepath.Join(root, "work", "todo.md")

	require.NoError(t, s.SaveDraft(ctx, root, note, "first"))
	require.NoError(t, s.SaveDraft(ctx, root, note, "second\twith tab\r\n"))

	drafts, err := s.Drafts(ctx, root)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, note, drafts[0].Path)
	assert.Equal(t, "second\twith tab\r\n", drafts[0].Content)
	assert.False(t, drafts[0].UpdatedAt.IsZero())

	other, err := s.Drafts(ctx, filepath.Join(t.TempDir(), "elsewhere"))
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, s.ClearDraft(ctx, root, note))
	drafts, err = s.Drafts(ctx, root)
	require.NoError(t, err)
	assert.Empty(t, drafts)
}

func TestSaveDraftOutsideRootFails(t *testing.T) {
	s := openStore(t)
	root := filepath.Join(t.TempDir(), "notes")

	err := s.SaveDraft(context.Background(), root, filepath.Join(root, "..", "x.md"), "x")
	assert.Error(t, err)
}
