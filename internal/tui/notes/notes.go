// Package notes is the interactive tree-and-document UI. It implements
// workflow.Presenter on top of bubbletea and turns key presses into workflow
// triggers.
package notes

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/logging"
	"github.com/Paintersrp/notetree/internal/session"
	"github.com/Paintersrp/notetree/internal/state"
	"github.com/Paintersrp/notetree/internal/workflow"
)

var log = logging.New("tui")

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

const noticeTTL = 4 * time.Second

type clearNoticeMsg struct {
	seq int
}

type Model struct {
	state   *state.State
	machine *workflow.Machine
	screen  *screen
	keys    *treeKeyMap
	prompts *promptKeyMap
	drafts  []session.Draft
	draft   *session.Draft
	help    help.Model
	width   int
	height  int
	offset  int

	draftKeys *draftKeyMap
}

// New builds the model and starts the workflow machine, which seeds and
// loads the notes tree.
func New(s *state.State) (*Model, error) {
	scr := newScreen(s.Root, s.Renderer)
	machine := workflow.New(workflow.Env{
		Store:   s.Store,
		Index:   s.Index,
		Tracker: s.Tracker,
		View:    scr,
	})

	if err := machine.Start(); err != nil {
		return nil, err
	}

	m := &Model{
		state:   s,
		machine: machine,
		screen:  scr,
		keys:    newTreeKeyMap(),
		prompts: newPromptKeyMap(),
		help:    help.New(),

		draftKeys: newDraftKeyMap(),
	}

	if s.Session != nil {
		m.restoreSession()
		m.loadDrafts()
		m.nextDraft()
	}

	return m, nil
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.state.Watcher.Start(), m.scheduleDraftSave())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	seq := m.screen.notice.seq

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case state.NotesChangedMsg:
		_ = m.machine.Dispatch(workflow.Refresh{Quiet: true})
		cmds = append(cmds, m.state.Watcher.Start())

	case state.NotesWatcherErrMsg:
		m.screen.Notify(fmt.Sprintf("Watcher error: %v", msg.Err), workflow.SeverityError)
		cmds = append(cmds, m.state.Watcher.Start())

	case clearNoticeMsg:
		if msg.seq == m.screen.notice.seq {
			m.screen.notice = notice{}
		}

	case draftTickMsg:
		m.saveDraft()
		cmds = append(cmds, m.scheduleDraftSave())

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	m.screen.closeModals(m.machine.Mode())
	m.nextDraft()
	m.follow()
	cmds = append(cmds, m.screen.drainPending()...)

	if n := m.screen.notice; n.seq != seq && n.message != "" {
		cmds = append(cmds, tea.Tick(noticeTTL, func(time.Time) tea.Msg {
			return clearNoticeMsg{seq: n.seq}
		}))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.draft != nil && m.machine.Mode() == workflow.ModeBrowsing {
		return m.handleDraftKey(msg)
	}

	switch m.machine.Mode() {
	case workflow.ModeCreatingNote, workflow.ModeCreatingFolder, workflow.ModeRenaming, workflow.ModeMoving:
		return m.handlePromptKey(msg)
	case workflow.ModeEditing:
		return m.handleEditorKey(msg)
	default:
		return m.handleTreeKey(msg)
	}
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.prompts.abort):
		return tea.Quit
	case key.Matches(msg, m.prompts.cancel):
		_ = m.machine.Dispatch(workflow.Cancel{})
		return nil
	case key.Matches(msg, m.prompts.confirm):
		_ = m.machine.Dispatch(workflow.Confirm{Text: m.screen.input.Value()})
		return nil
	}

	var cmd tea.Cmd
	m.screen.input, cmd = m.screen.input.Update(msg)
	_ = m.machine.Dispatch(workflow.Input{Text: m.screen.input.Value()})
	return cmd
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.prompts.abort):
		return tea.Quit
	case key.Matches(msg, m.prompts.cancel):
		path := m.screen.editor.path
		_ = m.machine.Dispatch(workflow.Cancel{})
		m.clearDraft(path)
		return nil
	case key.Matches(msg, m.prompts.save):
		path, content := m.screen.editor.path, m.screen.editor.value()
		if err := m.machine.Dispatch(workflow.Confirm{Text: content}); err != nil {
			// Keep the buffer recoverable; the editor has closed.
			m.storeDraft(path, content)
			return nil
		}
		m.clearDraft(path)
		return nil
	}

	cmd := m.screen.editor.update(msg)
	_ = m.machine.Dispatch(workflow.Input{Text: m.screen.editor.value()})
	return cmd
}

func (m *Model) handleTreeKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	case key.Matches(msg, m.keys.up):
		m.move(-1)
	case key.Matches(msg, m.keys.down):
		m.move(1)
	case key.Matches(msg, m.keys.top):
		m.jump(0)
	case key.Matches(msg, m.keys.bottom):
		m.jump(len(m.screen.tree.Rows) - 1)
	case key.Matches(msg, m.keys.expand):
		m.expand()
	case key.Matches(msg, m.keys.collapse):
		m.collapse()
	case key.Matches(msg, m.keys.open):
		if row, ok := m.screen.rowAt(m.screen.cursor()); ok {
			_ = m.machine.Dispatch(workflow.Open{Path: row.Node.Path})
		}
	case key.Matches(msg, m.keys.newNote):
		_ = m.machine.Dispatch(workflow.StartNewNote{})
	case key.Matches(msg, m.keys.newFolder):
		_ = m.machine.Dispatch(workflow.StartNewFolder{})
	case key.Matches(msg, m.keys.edit):
		_ = m.machine.Dispatch(workflow.StartEdit{})
	case key.Matches(msg, m.keys.rename):
		_ = m.machine.Dispatch(workflow.StartRename{})
	case key.Matches(msg, m.keys.move):
		_ = m.machine.Dispatch(workflow.StartMove{})
	case key.Matches(msg, m.keys.delete):
		_ = m.machine.Dispatch(workflow.Delete{})
	case key.Matches(msg, m.keys.refresh):
		if m.state.Renderer != nil {
			m.state.Renderer.Reset()
		}
		_ = m.machine.Dispatch(workflow.Refresh{})
	case key.Matches(msg, m.keys.copyPath):
		m.copySelectionPath()
	case key.Matches(msg, m.keys.copyContent):
		m.copyActiveContent()
	case key.Matches(msg, m.keys.scrollUp):
		m.screen.doc.HalfViewUp()
	case key.Matches(msg, m.keys.scrollDown):
		m.screen.doc.HalfViewDown()
	}
	return nil
}

// move shifts the selection by delta rows. With nothing selected the first
// press lands on the root row.
func (m *Model) move(delta int) {
	rows := m.screen.tree.Rows
	if len(rows) == 0 {
		return
	}

	next := m.screen.cursor()
	if next < 0 {
		next = 0
	} else {
		next += delta
	}
	next = min(max(next, 0), len(rows)-1)

	_ = m.machine.Dispatch(workflow.Select{Path: rows[next].Node.Path})
}

// jump selects the row at index i.
func (m *Model) jump(i int) {
	if row, ok := m.screen.rowAt(i); ok {
		_ = m.machine.Dispatch(workflow.Select{Path: row.Node.Path})
	}
}

func (m *Model) expand() {
	row, ok := m.screen.rowAt(m.screen.cursor())
	if !ok {
		return
	}
	if row.Node.IsFolder() && !row.Expanded {
		_ = m.machine.Dispatch(workflow.Open{Path: row.Node.Path})
		return
	}
	if row.Node.IsDocument() {
		_ = m.machine.Dispatch(workflow.Open{Path: row.Node.Path})
	}
}

func (m *Model) collapse() {
	row, ok := m.screen.rowAt(m.screen.cursor())
	if !ok {
		return
	}
	if row.Node.IsFolder() && row.Expanded && row.Depth > 0 {
		_ = m.machine.Dispatch(workflow.Collapse{Path: row.Node.Path})
		return
	}
	if parent := row.Node.Parent(); parent != nil {
		_ = m.machine.Dispatch(workflow.Select{Path: parent.Path})
	}
}

func (m *Model) copySelectionPath() {
	sel := m.screen.tree.Selection
	if sel == nil {
		m.screen.Notify("No item selected", workflow.SeverityWarning)
		return
	}
	if err := writeClipboard(sel.Path); err != nil {
		m.screen.Notify(fmt.Sprintf("Error copying path: %v", err), workflow.SeverityError)
		return
	}
	m.screen.Notify("Copied: "+sel.Path, workflow.SeverityInfo)
}

func (m *Model) copyActiveContent() {
	if m.screen.document.Empty {
		m.screen.Notify("No note selected", workflow.SeverityWarning)
		return
	}
	if err := writeClipboard(m.screen.document.Content); err != nil {
		m.screen.Notify(fmt.Sprintf("Error copying note: %v", err), workflow.SeverityError)
		return
	}
	m.screen.Notify("Copied note: "+filepath.Base(m.screen.document.Path), workflow.SeverityInfo)
}

// follow keeps the selected row inside the visible window of the tree pane.
func (m *Model) follow() {
	height := m.screen.treeHeight
	if height <= 0 {
		return
	}
	cur := m.screen.cursor()
	if cur < 0 {
		m.offset = min(m.offset, max(len(m.screen.tree.Rows)-height, 0))
		return
	}
	if cur < m.offset {
		m.offset = cur
	}
	if cur >= m.offset+height {
		m.offset = cur - height + 1
	}
}

func (m *Model) resize() {
	h, v := appStyle.GetFrameSize()
	width := m.width - h
	height := m.height - v

	// Status line and help.
	chrome := 2 + lipgloss.Height(m.helpView(width))
	body := max(height-chrome, 3)

	treeWidth := max(width/3, 24)
	docWidth := max(width-treeWidth-3, 20)

	m.screen.setSize(body-1, docWidth, body-1)
}

func (m *Model) treeWidth() int {
	h, _ := appStyle.GetFrameSize()
	return max((m.width-h)/3, 24)
}

func (m *Model) helpView(width int) string {
	m.help.Width = width
	if m.draft != nil && m.machine.Mode() == workflow.ModeBrowsing {
		return m.help.View(m.draftKeys)
	}
	switch m.machine.Mode() {
	case workflow.ModeEditing:
		return m.help.View(editorHelp{m.prompts})
	case workflow.ModeCreatingNote, workflow.ModeCreatingFolder, workflow.ModeRenaming, workflow.ModeMoving:
		return m.help.View(namePromptHelp{m.prompts})
	default:
		return m.help.View(m.keys)
	}
}

func (m *Model) View() string {
	h, _ := appStyle.GetFrameSize()
	width := m.width - h

	tree := treeStyle.Width(m.treeWidth()).Render(m.treeView())

	var right string
	switch {
	case m.draft != nil && m.machine.Mode() == workflow.ModeBrowsing:
		right = m.draftView()
	case m.screen.editor.active:
		right = fmt.Sprintf("%s\n%s", titleStyle.Render(m.screen.editor.viewHeader()), m.screen.editor.area.View())
	case m.screen.prompting:
		right = fmt.Sprintf(
			"%s\n\n%s",
			titleStyle.Render(m.screen.promptTitle()),
			inputStyle.Render(m.screen.input.View()),
		)
	default:
		right = fmt.Sprintf("%s\n%s", titleStyle.Render(m.screen.documentHeader()), m.screen.doc.View())
	}

	layout := lipgloss.JoinHorizontal(lipgloss.Top, tree, documentStyle.Render(right))
	status := severityStyle(m.screen.notice.severity).Render(m.screen.notice.message)

	return appStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		layout,
		status,
		renderHelpWithinWidth(width, m.helpView(width)),
	))
}

func (m *Model) treeView() string {
	rows := m.screen.tree.Rows
	end := len(rows)
	if height := m.screen.treeHeight; height > 0 {
		end = min(m.offset+height, len(rows))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Notes"))
	b.WriteString("\n")

	cursor := m.screen.cursor()
	activePath, _ := m.state.Tracker.Current()

	for i := m.offset; i < end; i++ {
		row := rows[i]
		line := strings.Repeat("  ", row.Depth) + rowLabel(row, m.state.Root)

		switch {
		case i == cursor:
			line = selectedRowStyle.Render(line)
		case row.Node.Path == activePath:
			line = activeRowStyle.Render(line)
		case row.Node.IsFolder():
			line = folderStyle.Render(line)
		default:
			line = textStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

type Options struct {
	// Open is a note to show once the tree is loaded.
	Open string
}

// Run starts the full-screen UI and saves the session on exit.
func Run(s *state.State, opts Options) error {
	ctx := context.Background()
	s.OpenSession(ctx)
	if err := s.StartWatching(); err != nil {
		log.WithError(err).Warn("continuing without file watching")
	}

	m, err := New(s)
	if err != nil {
		return err
	}
	if opts.Open != "" {
		_ = m.machine.Dispatch(workflow.Open{Path: opts.Open})
	}

	_, runErr := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen()).Run()
	m.saveSession(ctx)

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) {
		return fmt.Errorf("error running program: %w", runErr)
	}
	return nil
}

func (m *Model) restoreSession() {
	snap, err := m.state.Session.Load(context.Background(), m.state.Root)
	if err != nil {
		log.WithError(err).Warn("could not load session")
		return
	}
	session.Restore(m.state.Index, snap)
	// Re-render with the restored expansion and selection.
	_ = m.machine.Dispatch(workflow.Refresh{Quiet: true})
}

func (m *Model) saveSession(ctx context.Context) {
	if m.state.Session == nil {
		return
	}
	if err := m.state.Session.Save(ctx, m.state.Root, session.Capture(m.state.Index)); err != nil {
		log.WithError(err).Warn("could not save session")
	}
}

func rowLabel(row hierarchy.Row, root string) string {
	if row.Depth == 0 {
		return "▾ " + filepath.Base(root) + "/"
	}
	if row.Node.IsFolder() {
		if row.Expanded {
			return "▾ " + row.Node.Name + "/"
		}
		return "▸ " + row.Node.Name + "/"
	}
	return "• " + row.Node.Name
}
