package open

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Paintersrp/notetree/pkg/cmd"
)

func newLoader(t *testing.T) (*cmd.Loader, string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := filepath.Join(home, "notes")
	require.NoError(t, os.MkdirAll(root, 0o755))

	v := viper.New()
	v.Set("notes_dir", root)
	v.Set("no_watch", true)
	l := cmd.NewLoader(v)
	t.Cleanup(func() { _ = l.Close() })
	return l, root
}

func execute(l *cmd.Loader, args ...string) error {
	c := NewCmdOpen(l)
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	return c.Execute()
}

func TestOpenWithoutNotes(t *testing.T) {
	l, _ := newLoader(t)

	err := execute(l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notes to choose from")
}

func TestOpenIgnoresHiddenNotes(t *testing.T) {
	l, root := newLoader(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, ".secret.md"), []byte("# s\n"), 0o644))

	err := execute(l, "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no notes to choose from")
}

func TestOpenTakesOneQuery(t *testing.T) {
	l, _ := newLoader(t)

	require.Error(t, execute(l, "a", "b"))
}
