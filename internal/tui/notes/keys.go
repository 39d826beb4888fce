package notes

import "github.com/charmbracelet/bubbles/key"

type treeKeyMap struct {
	up          key.Binding
	down        key.Binding
	top         key.Binding
	bottom      key.Binding
	expand      key.Binding
	collapse    key.Binding
	open        key.Binding
	newNote     key.Binding
	newFolder   key.Binding
	edit        key.Binding
	rename      key.Binding
	move        key.Binding
	delete      key.Binding
	refresh     key.Binding
	copyPath    key.Binding
	copyContent key.Binding
	scrollUp    key.Binding
	scrollDown  key.Binding
	help        key.Binding
	quit        key.Binding
}

func newTreeKeyMap() *treeKeyMap {
	return &treeKeyMap{
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		expand: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "expand"),
		),
		collapse: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "collapse"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "open"),
		),
		newNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		newFolder: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "new folder"),
		),
		edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		rename: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "rename"),
		),
		move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move"),
		),
		delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		copyPath: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy path"),
		),
		copyContent: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy note"),
		),
		scrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "scroll note up"),
		),
		scrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "scroll note down"),
		),
		help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (m treeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.open, m.newNote, m.newFolder, m.edit, m.delete, m.help, m.quit}
}

func (m treeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.up, m.down, m.top, m.bottom, m.expand, m.collapse, m.open},
		{m.newNote, m.newFolder, m.edit, m.rename, m.move, m.delete},
		{m.refresh, m.copyPath, m.copyContent, m.scrollUp, m.scrollDown},
		{m.help, m.quit},
	}
}

// promptKeyMap covers the name prompt and the editor.
type promptKeyMap struct {
	confirm key.Binding
	save    key.Binding
	cancel  key.Binding
	abort   key.Binding
}

func newPromptKeyMap() *promptKeyMap {
	return &promptKeyMap{
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "confirm"),
		),
		save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

type namePromptHelp struct{ *promptKeyMap }

func (h namePromptHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.confirm, h.cancel}
}

func (h namePromptHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

type editorHelp struct{ *promptKeyMap }

func (h editorHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.save, h.cancel}
}

func (h editorHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}

// draftKeyMap answers the startup question about an unsaved draft.
type draftKeyMap struct {
	recover key.Binding
	discard key.Binding
	skip    key.Binding
}

func newDraftKeyMap() *draftKeyMap {
	return &draftKeyMap{
		recover: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "recover"),
		),
		discard: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "discard"),
		),
		skip: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "skip all"),
		),
	}
}

func (m draftKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{m.recover, m.discard, m.skip}
}

func (m draftKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{m.ShortHelp()}
}
