package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/internal/pathutil"
	"github.com/Paintersrp/notetree/internal/state"
)

// ResolveNotesPath turns a command argument into an absolute path inside the
// notes root. Relative arguments are taken from the root, and a missing
// ".md" is added when only the note form exists.
func ResolveNotesPath(s *state.State, arg string) (string, error) {
	if s == nil || s.Root == "" {
		return "", fmt.Errorf("notes directory is not configured")
	}
	root := filepath.Clean(s.Root)

	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	var resolved string
	if filepath.IsAbs(arg) {
		resolved = filepath.Clean(arg)
	} else {
		resolved = filepath.Join(root, pathutil.NormalizePath(arg))
	}

	if err := ensureWithinRoot(root, resolved); err != nil {
		return "", err
	}

	if _, err := os.Stat(resolved); os.IsNotExist(err) && filepath.Ext(resolved) == "" {
		withExt := resolved + constants.NoteExt
		if _, err := os.Stat(withExt); err == nil {
			return withExt, nil
		}
	}

	return resolved, nil
}

func ensureWithinRoot(root, resolved string) error {
	if !pathutil.Within(root, resolved) {
		return fmt.Errorf("path %q is outside the notes directory %q", resolved, root)
	}
	return nil
}

// ResolveFolder resolves arg to an existing folder in the notes tree. An
// empty argument means the root.
func ResolveFolder(s *state.State, arg string) (string, error) {
	if strings.TrimSpace(arg) == "" {
		if s == nil || s.Root == "" {
			return "", fmt.Errorf("notes directory is not configured")
		}
		return filepath.Clean(s.Root), nil
	}

	dir, err := ResolveNotesPath(s, arg)
	if err != nil {
		return "", err
	}
	if !s.Store.IsFolder(dir) {
		return "", fmt.Errorf("%q is not a folder in the notes directory", arg)
	}
	return dir, nil
}
