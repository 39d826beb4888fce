package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Paintersrp/notetree/internal/state"
)

func TestResolveNotesPath(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "todo.md"), []byte("# todo\n"), 0o644); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	st := &state.State{Root: root}

	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"absolute inside root": {
			input: filepath.Join(root, "note.md"),
			want:  filepath.Join(root, "note.md"),
		},
		"relative inside root": {
			input: filepath.Join("A", "note.md"),
			want:  filepath.Join(root, "A", "note.md"),
		},
		"extension inferred for existing note": {
			input: "todo",
			want:  filepath.Join(root, "todo.md"),
		},
		"missing note keeps bare name": {
			input: "later",
			want:  filepath.Join(root, "later"),
		},
		"root itself": {
			input: ".",
			want:  root,
		},
		"escape attempt": {
			input:   "../evil.md",
			wantErr: true,
		},
		"absolute outside root": {
			input:   filepath.Join(filepath.Dir(root), "elsewhere.md"),
			wantErr: true,
		},
		"empty": {
			input:   "  ",
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ResolveNotesPath(st, tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none (resolved %q)", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestResolveNotesPathRequiresState(t *testing.T) {
	if _, err := ResolveNotesPath(nil, "x.md"); err == nil {
		t.Fatalf("expected error without state")
	}
}
