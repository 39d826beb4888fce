package remove

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/internal/storage"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func setup(t *testing.T) (*cmd.Loader, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)

	root := filepath.Join(home, "notes")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "full"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "full", "a.md"), []byte("# a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "todo.md"), []byte("# todo\n"), 0o644))

	v := viper.New()
	v.Set("notes_dir", root)
	v.Set("no_watch", true)
	l := cmd.NewLoader(v)
	t.Cleanup(func() { _ = l.Close() })
	return l, root
}

func execute(l *cmd.Loader, args ...string) (string, error) {
	c := NewCmdRemove(l)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	calls := 0
	prev := Confirm
	Confirm = func(string) (bool, error) {
		calls++
		return answer, nil
	}
	t.Cleanup(func() { Confirm = prev })
	return &calls
}

func TestRemoveNoteAfterConfirm(t *testing.T) {
	l, root := setup(t)
	calls := stubConfirm(t, true)

	out, err := execute(l, "todo")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
	assert.Contains(t, out, "Deleted: todo.md")
	assert.NoFileExists(t, filepath.Join(root, "todo.md"))
}

func TestRemoveAborted(t *testing.T) {
	l, root := setup(t)
	stubConfirm(t, false)

	out, err := execute(l, "todo")
	require.NoError(t, err)
	assert.Contains(t, out, "Aborted.")
	assert.FileExists(t, filepath.Join(root, "todo.md"))
}

func TestRemoveYesSkipsPrompt(t *testing.T) {
	l, root := setup(t)
	calls := stubConfirm(t, false)

	out, err := execute(l, "empty", "--yes")
	require.NoError(t, err)
	assert.Zero(t, *calls)
	assert.Contains(t, out, "Deleted folder: empty")
	assert.NoDirExists(t, filepath.Join(root, "empty"))
}

func TestRemoveRefusesNonEmptyFolder(t *testing.T) {
	l, root := setup(t)

	_, err := execute(l, "full", "-y")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrFolderNotEmpty)
	assert.FileExists(t, filepath.Join(root, "full", "a.md"))
}
