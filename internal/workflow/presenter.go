package workflow

import "github.com/Paintersrp/notetree/internal/hierarchy"

type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

type NameKind int

const (
	NameNote NameKind = iota
	NameFolder
)

func (k NameKind) String() string {
	if k == NameFolder {
		return "folder"
	}
	return "note"
}

// NamePrompt asks for a note or folder name. Initial pre-fills the field
// when renaming. With Move set the answer is a destination folder relative
// to the notes root, and Subject names the entry being moved.
type NamePrompt struct {
	Kind     NameKind
	Location string
	Initial  string
	Subject  string
	Rename   bool
	Move     bool
}

type EditPrompt struct {
	Path    string
	Content string
}

// DocumentView is the content pane. Empty means no active document and the
// placeholder should be shown.
type DocumentView struct {
	Path    string
	Content string
	Empty   bool
}

// TreeView is the snapshot handed to the presenter after every change. Rows
// is the flattened, expansion-aware rendering order of Root.
type TreeView struct {
	Root      *hierarchy.Node
	Selection *hierarchy.Node
	Rows      []hierarchy.Row
}

// Presenter receives view instructions from the machine. Prompts are modal:
// the answer comes back later as a Confirm or Cancel trigger.
type Presenter interface {
	RenderTree(tree TreeView)
	RenderDocument(view DocumentView)
	PromptForName(prompt NamePrompt)
	PromptForEdit(prompt EditPrompt)
	Notify(message string, severity Severity)
}
