package notes

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

// editorSession wraps the textarea. The textarea normalises tabs and line
// endings on load, so loaded keeps what it showed right after SetValue and
// an untouched buffer saves original byte for byte.
type editorSession struct {
	area     textarea.Model
	path     string
	original string
	loaded   string
	active   bool
}

func newEditorSession() *editorSession {
	area := textarea.New()
	area.Placeholder = "..."
	area.CharLimit = 0
	area.MaxHeight = 0
	area.MaxWidth = 0
	area.ShowLineNumbers = true
	return &editorSession{area: area}
}

func (s *editorSession) begin(path, content string) tea.Cmd {
	s.path = path
	s.original = content
	s.active = true
	s.area.SetValue(content)
	s.loaded = s.area.Value()
	return s.area.Focus()
}

// restore replaces the buffer with recovered text, leaving it marked as
// modified against the file on disk.
func (s *editorSession) restore(content string) {
	s.area.SetValue(content)
}

func (s *editorSession) end() {
	s.active = false
	s.area.Blur()
}

func (s *editorSession) hasChanges() bool {
	return s.active && s.area.Value() != s.loaded
}

func (s *editorSession) viewHeader() string {
	if !s.active {
		return ""
	}
	header := fmt.Sprintf("Editing %s", filepath.Base(s.path))
	if s.hasChanges() {
		header += " (modified)"
	}
	return header
}

func (s *editorSession) setSize(width, height int) {
	if width > 0 {
		s.area.SetWidth(width)
	}
	if height > 0 {
		s.area.SetHeight(height)
	}
}

func (s *editorSession) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.area, cmd = s.area.Update(msg)
	return cmd
}

func (s *editorSession) value() string {
	if !s.hasChanges() {
		return s.original
	}
	return s.area.Value()
}
