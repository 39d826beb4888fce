package notes

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Paintersrp/notetree/internal/pathutil"
	"github.com/Paintersrp/notetree/internal/workflow"
)

const draftInterval = 5 * time.Second

type draftTickMsg struct{}

func (m *Model) scheduleDraftSave() tea.Cmd {
	if m.state.Session == nil {
		return nil
	}
	return tea.Tick(draftInterval, func(time.Time) tea.Msg {
		return draftTickMsg{}
	})
}

// saveDraft stores the editor buffer while it differs from what was loaded.
func (m *Model) saveDraft() {
	if m.state.Session == nil || m.machine.Mode() != workflow.ModeEditing {
		return
	}
	ed := m.screen.editor
	if !ed.hasChanges() {
		return
	}
	m.storeDraft(ed.path, ed.value())
}

func (m *Model) storeDraft(path, content string) {
	if m.state.Session == nil || path == "" {
		return
	}
	if err := m.state.Session.SaveDraft(context.Background(), m.state.Root, path, content); err != nil {
		log.WithError(err).WithField("path", path).Warn("could not save draft")
	}
}

func (m *Model) clearDraft(path string) {
	if m.state.Session == nil || path == "" {
		return
	}
	if err := m.state.Session.ClearDraft(context.Background(), m.state.Root, path); err != nil {
		log.WithError(err).WithField("path", path).Warn("could not clear draft")
	}
}

// loadDrafts queues drafts left behind by an earlier run. Drafts that match
// the note on disk, or whose note is gone, are dropped.
func (m *Model) loadDrafts() {
	drafts, err := m.state.Session.Drafts(context.Background(), m.state.Root)
	if err != nil {
		log.WithError(err).Warn("could not load drafts")
		return
	}

	for _, d := range drafts {
		node, ok := m.state.Index.Lookup(d.Path)
		if !ok || !node.IsDocument() {
			log.WithField("path", d.Path).Warn("dropping draft for missing note")
			m.clearDraft(d.Path)
			continue
		}
		if content, err := m.state.Store.ReadDocument(d.Path); err == nil && content == d.Content {
			m.clearDraft(d.Path)
			continue
		}
		m.drafts = append(m.drafts, d)
	}
}

// nextDraft puts the next queued draft up for a decision once the user is
// back to browsing.
func (m *Model) nextDraft() {
	if m.draft != nil || len(m.drafts) == 0 || m.machine.Mode() != workflow.ModeBrowsing {
		return
	}
	d := m.drafts[0]
	m.drafts = m.drafts[1:]
	m.draft = &d
	m.screen.Notify("Unsaved draft found", workflow.SeverityWarning)
}

func (m *Model) handleDraftKey(msg tea.KeyMsg) tea.Cmd {
	d := *m.draft
	name := filepath.Base(d.Path)

	switch {
	case key.Matches(msg, m.draftKeys.recover):
		m.draft = nil
		if err := m.machine.Dispatch(workflow.Open{Path: d.Path}); err != nil {
			return nil
		}
		if err := m.machine.Dispatch(workflow.StartEdit{}); err != nil {
			return nil
		}
		m.screen.editor.restore(d.Content)
		_ = m.machine.Dispatch(workflow.Input{Text: m.screen.editor.value()})
		m.screen.Notify(fmt.Sprintf("Recovered draft: %s (ctrl+s to save)", name), workflow.SeverityInfo)
	case key.Matches(msg, m.draftKeys.discard):
		m.draft = nil
		m.clearDraft(d.Path)
		m.screen.Notify("Discarded draft: "+name, workflow.SeverityInfo)
	case key.Matches(msg, m.draftKeys.skip):
		m.draft = nil
		m.drafts = nil
		m.screen.Notify("Skipped draft recovery", workflow.SeverityInfo)
	case key.Matches(msg, m.keys.quit):
		return tea.Quit
	}
	return nil
}

func (m *Model) draftView() string {
	d := m.draft
	return fmt.Sprintf(
		"%s\n\n%s\n%s",
		titleStyle.Render("Unsaved draft found"),
		textStyle.Render(fmt.Sprintf("%s, autosaved %s.", pathutil.LocationLabel(m.state.Root, d.Path), d.UpdatedAt.Format("2006-01-02 15:04"))),
		textStyle.Render("Recover it into the editor?"),
	)
}
