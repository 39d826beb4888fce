package move

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/internal/storage"
	"github.com/Paintersrp/notetree/internal/workflow"
	"github.com/Paintersrp/notetree/pkg/cmd"
)

func setup(t *testing.T) (func(args ...string) (string, error), string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := filepath.Join(home, "notes")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "work"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "todo.md"), []byte("# todo\n"), 0o644))

	v := viper.New()
	v.Set("notes_dir", root)
	v.Set("no_watch", true)
	l := cmd.NewLoader(v)
	t.Cleanup(func() { _ = l.Close() })

	return func(args ...string) (string, error) {
		c := NewCmdMove(l)
		var out bytes.Buffer
		c.SetOut(&out)
		c.SetErr(&out)
		c.SetArgs(args)
		err := c.Execute()
		return out.String(), err
	}, root
}

func TestMoveNoteIntoFolder(t *testing.T) {
	run, root := setup(t)

	out, err := run("todo", "work")
	require.NoError(t, err)
	assert.Contains(t, out, "Moved to: work")
	assert.FileExists(t, filepath.Join(root, "work", "todo.md"))
	assert.NoFileExists(t, filepath.Join(root, "todo.md"))

	_, err = run("work/todo", "/")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(root, "todo.md"))
}

func TestMoveRejectsMissingDestination(t *testing.T) {
	run, root := setup(t)

	_, err := run("todo", "nowhere")
	require.ErrorIs(t, err, workflow.ErrBadDestination)
	assert.FileExists(t, filepath.Join(root, "todo.md"))
}

func TestMoveRefusesToOverwrite(t *testing.T) {
	run, root := setup(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "work", "todo.md"), []byte("# other\n"), 0o644))

	_, err := run("todo", "work")
	require.ErrorIs(t, err, storage.ErrAlreadyExists)

	data, err := os.ReadFile(filepath.Join(root, "work", "todo.md"))
	require.NoError(t, err)
	assert.Equal(t, "# other\n", string(data))
}
