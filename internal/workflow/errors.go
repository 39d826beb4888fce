package workflow

import (
	"errors"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/storage"
)

var (
	ErrNoSelection      = errors.New("no item selected")
	ErrNoActiveDocument = errors.New("no note selected")
	ErrDeleteRoot       = errors.New("cannot delete the root notes directory")
	ErrRenameRoot       = errors.New("cannot rename the root notes directory")
	ErrInvalidName      = errors.New("names cannot contain path separators or be '.' or '..'")
	ErrInvalidTrigger   = errors.New("trigger not valid in the current state")
	ErrHiddenName       = errors.New("names starting with '.' or matching an ignore pattern are hidden from the tree")
	ErrMoveRoot         = errors.New("cannot move the root notes directory")
	ErrMoveIntoSelf     = errors.New("cannot move a folder into itself")
	ErrBadDestination   = errors.New("destination must be an existing folder inside the notes directory")
)

// Category groups failures by how the machine reacts to them.
type Category int

const (
	CategoryIO Category = iota
	CategoryValidation
	CategoryConflict
	CategoryPrecondition
	CategoryDisappearance
)

func (c Category) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryConflict:
		return "conflict"
	case CategoryPrecondition:
		return "precondition"
	case CategoryDisappearance:
		return "disappearance"
	default:
		return "io"
	}
}

// Severity is the notification level used for the category.
func (c Category) Severity() Severity {
	switch c {
	case CategoryValidation, CategoryPrecondition:
		return SeverityWarning
	default:
		return SeverityError
	}
}

// Classify maps err onto a Category.
func Classify(err error) Category {
	switch {
	case errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrHiddenName),
		errors.Is(err, ErrMoveIntoSelf),
		errors.Is(err, ErrBadDestination):
		return CategoryValidation
	case errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, storage.ErrPathConflict):
		return CategoryConflict
	case errors.Is(err, storage.ErrFolderNotEmpty),
		errors.Is(err, storage.ErrRootProtected),
		errors.Is(err, storage.ErrOutsideRoot),
		errors.Is(err, ErrNoSelection),
		errors.Is(err, ErrNoActiveDocument),
		errors.Is(err, ErrDeleteRoot),
		errors.Is(err, ErrRenameRoot),
		errors.Is(err, ErrMoveRoot):
		return CategoryPrecondition
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, storage.ErrNotADocument),
		errors.Is(err, storage.ErrNotAFolder),
		errors.Is(err, hierarchy.ErrUnknownPath):
		return CategoryDisappearance
	default:
		return CategoryIO
	}
}
