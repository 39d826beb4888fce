package workflow

import "github.com/Paintersrp/notetree/internal/hierarchy"

type Mode int

const (
	ModeBrowsing Mode = iota
	ModeCreatingNote
	ModeCreatingFolder
	ModeEditing
	ModeRenaming
	ModeMoving
)

func (m Mode) String() string {
	switch m {
	case ModeCreatingNote:
		return "creating-note"
	case ModeCreatingFolder:
		return "creating-folder"
	case ModeEditing:
		return "editing"
	case ModeRenaming:
		return "renaming"
	case ModeMoving:
		return "moving"
	default:
		return "browsing"
	}
}

// State is the machine's current mode plus its transient data. The concrete
// types below are the only implementations.
type State interface {
	Mode() Mode
}

type Browsing struct{}

// CreatingNote holds the folder the note will be created in and the name
// typed so far.
type CreatingNote struct {
	Dir  string
	Name string
}

type CreatingFolder struct {
	Dir  string
	Name string
}

// Editing holds the document being edited, its content when editing began,
// and the in-progress buffer.
type Editing struct {
	Path     string
	Original string
	Buffer   string
}

type Renaming struct {
	Target string
	Kind   hierarchy.Kind
	Name   string
}

// Moving holds the entry being moved and the destination folder typed so
// far, relative to the notes root.
type Moving struct {
	Target string
	Kind   hierarchy.Kind
	Dest   string
}

func (Browsing) Mode() Mode       { return ModeBrowsing }
func (CreatingNote) Mode() Mode   { return ModeCreatingNote }
func (CreatingFolder) Mode() Mode { return ModeCreatingFolder }
func (Editing) Mode() Mode        { return ModeEditing }
func (Renaming) Mode() Mode       { return ModeRenaming }
func (Moving) Mode() Mode         { return ModeMoving }
