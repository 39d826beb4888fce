package show

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

const note = "# Todo\n\n- [ ] write tests\n"

func setup(t *testing.T) func(args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := filepath.Join(home, "notes")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "work"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "work", "todo.md"), []byte(note), 0o644))

	v := viper.New()
	v.Set("notes_dir", root)
	v.Set("no_watch", true)
	l := cmd.NewLoader(v)
	t.Cleanup(func() { _ = l.Close() })

	return func(args ...string) (string, error) {
		c := NewCmdShow(l)
		var out bytes.Buffer
		c.SetOut(&out)
		c.SetErr(&out)
		c.SetArgs(args)
		err := c.Execute()
		return out.String(), err
	}
}

func TestShowPrintsSourceWhenPiped(t *testing.T) {
	run := setup(t)

	out, err := run("work/todo")
	require.NoError(t, err)
	assert.Equal(t, note, out)
}

func TestShowRaw(t *testing.T) {
	run := setup(t)

	out, err := run("work/todo.md", "--raw")
	require.NoError(t, err)
	assert.Equal(t, note, out)
}

func TestShowMissingNote(t *testing.T) {
	run := setup(t)

	_, err := run("nope")
	require.Error(t, err)

	_, err = run("../outside")
	require.Error(t, err)
}

func TestTerminalWidthOnlyForTerminals(t *testing.T) {
	_, tty := terminalWidth(&bytes.Buffer{})
	assert.False(t, tty)

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	_, tty = terminalWidth(f)
	assert.False(t, tty, "a regular file is not a terminal")
}
