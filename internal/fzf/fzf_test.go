package fzf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/markdown"
	"github.com/Paintersrp/notetree/internal/storage"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

func newFinder(t *testing.T, root string) *FuzzyFinder {
	t.Helper()
	store := storage.NewFileStore(root)
	idx, err := hierarchy.New(store, hierarchy.Options{})
	require.NoError(t, err)
	require.NoError(t, idx.Refresh())
	renderer := markdown.NewRenderer(markdown.Options{Style: "notty", Profile: termenv.Ascii})
	return NewFuzzyFinder(idx, store, renderer, "Select a note")
}

func TestCollectsDocumentsInTreeOrder(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "b.md"), "plain body\n")
	mustWriteFile(t, filepath.Join(root, "A", "x.md"), "# Experiment\n")
	mustWriteFile(t, filepath.Join(root, "notes.txt"), "ignored")

	f := newFinder(t, root)

	assert.Equal(t, []string{
		filepath.Join(root, "A", "x.md"),
		filepath.Join(root, "b.md"),
	}, f.Files())
	assert.Equal(t, []string{"A/x.md  [Experiment]", "b.md"}, f.labels)
}

func TestPreviewRendersSelectedNote(t *testing.T) {
	root := t.TempDir()
	mustWriteFile(t, filepath.Join(root, "a.md"), "# Alpha\n\nhello preview\n")

	f := newFinder(t, root)

	assert.Empty(t, f.renderMarkdownPreview(-1, 80, 20))
	assert.Contains(t, f.renderMarkdownPreview(0, 80, 20), "hello preview")
}

func TestRunWithoutNotesFails(t *testing.T) {
	f := newFinder(t, t.TempDir())

	_, err := f.Run("")
	assert.Error(t, err)
}
