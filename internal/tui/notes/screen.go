package notes

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/markdown"
	"github.com/Paintersrp/notetree/internal/pathutil"
	"github.com/Paintersrp/notetree/internal/workflow"
)

const placeholderText = "Select a note to view its content"

type notice struct {
	message  string
	severity workflow.Severity
	seq      int
}

// screen is the workflow.Presenter half of the UI. It only records what the
// machine asks for; Model.View turns it into text.
type screen struct {
	root     string
	renderer *markdown.Renderer

	tree     workflow.TreeView
	document workflow.DocumentView
	title    string
	rendered string
	doc      viewport.Model

	prompt     workflow.NamePrompt
	prompting  bool
	input      textinput.Model
	editor     *editorSession
	notice     notice
	noticeSeq  int
	pending    []tea.Cmd
	docWidth   int
	treeHeight int
}

func newScreen(root string, renderer *markdown.Renderer) *screen {
	in := textinput.New()
	in.Cursor.Style = cursorStyle
	in.PromptStyle = focusedStyle
	in.TextStyle = focusedStyle
	in.CharLimit = 255

	return &screen{
		root:     root,
		renderer: renderer,
		doc:      viewport.New(0, 0),
		input:    in,
		editor:   newEditorSession(),
		document: workflow.DocumentView{Empty: true},
	}
}

func (s *screen) RenderTree(tree workflow.TreeView) {
	s.tree = tree
}

func (s *screen) RenderDocument(view workflow.DocumentView) {
	s.document = view
	s.renderDocument()
	s.doc.GotoTop()
}

func (s *screen) PromptForName(p workflow.NamePrompt) {
	s.prompt = p
	s.prompting = true
	s.input.Placeholder = fmt.Sprintf("Enter %s name", p.Kind)
	if p.Move {
		s.input.Placeholder = "Destination folder (relative to notes root)"
	}
	s.input.SetValue(p.Initial)
	s.input.CursorEnd()
	s.pending = append(s.pending, s.input.Focus())
}

func (s *screen) PromptForEdit(p workflow.EditPrompt) {
	s.pending = append(s.pending, s.editor.begin(p.Path, p.Content))
}

func (s *screen) Notify(message string, severity workflow.Severity) {
	s.noticeSeq++
	s.notice = notice{message: message, severity: severity, seq: s.noticeSeq}
}

// closeModals hides any prompt or editor that the machine has left.
func (s *screen) closeModals(mode workflow.Mode) {
	switch mode {
	case workflow.ModeCreatingNote, workflow.ModeCreatingFolder, workflow.ModeRenaming, workflow.ModeMoving:
		if s.editor.active {
			s.editor.end()
		}
	case workflow.ModeEditing:
		if s.prompting {
			s.prompting = false
			s.input.Blur()
		}
	default:
		if s.prompting {
			s.prompting = false
			s.input.Blur()
			s.input.SetValue("")
		}
		if s.editor.active {
			s.editor.end()
		}
	}
}

func (s *screen) drainPending() []tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return cmds
}

func (s *screen) setSize(treeHeight, docWidth, docHeight int) {
	s.treeHeight = treeHeight
	widthChanged := docWidth != s.docWidth
	s.docWidth = docWidth
	s.doc.Width = docWidth
	s.doc.Height = docHeight
	s.input.Width = max(docWidth-4, 10)
	s.editor.setSize(docWidth, docHeight-2)
	if widthChanged {
		s.renderDocument()
	}
}

func (s *screen) renderDocument() {
	if s.document.Empty {
		s.title = ""
		s.rendered = placeholderStyle.Render(placeholderText)
		s.doc.SetContent(s.rendered)
		return
	}

	s.title = markdown.Title(s.document.Content)
	if s.title == "" {
		s.title = strings.TrimSuffix(filepath.Base(s.document.Path), filepath.Ext(s.document.Path))
	}

	out := s.document.Content
	if s.renderer != nil {
		rendered, err := s.renderer.Render(s.document.Path, s.document.Content, s.docWidth)
		if err == nil {
			out = rendered
		} else {
			log.WithError(err).Warn("markdown render failed, showing raw text")
		}
	}
	s.rendered = out
	s.doc.SetContent(out)
}

func (s *screen) cursor() int {
	if s.tree.Selection == nil {
		return -1
	}
	for i, row := range s.tree.Rows {
		if row.Node.Path == s.tree.Selection.Path {
			return i
		}
	}
	return -1
}

func (s *screen) rowAt(i int) (hierarchy.Row, bool) {
	if i < 0 || i >= len(s.tree.Rows) {
		return hierarchy.Row{}, false
	}
	return s.tree.Rows[i], true
}

func (s *screen) promptTitle() string {
	location := s.prompt.Location
	if s.prompt.Move {
		return fmt.Sprintf("Move %s %s to folder", s.prompt.Kind, s.prompt.Subject)
	}
	if s.prompt.Rename {
		return fmt.Sprintf("Rename %s in %s", s.prompt.Kind, location)
	}
	return fmt.Sprintf("New %s in %s", s.prompt.Kind, location)
}

func (s *screen) documentHeader() string {
	if s.document.Empty {
		return "Document"
	}
	label := pathutil.LocationLabel(s.root, s.document.Path)
	if s.title != "" && s.title != strings.TrimSuffix(filepath.Base(label), filepath.Ext(label)) {
		return fmt.Sprintf("%s · %s", s.title, label)
	}
	return label
}
