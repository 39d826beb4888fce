package storage

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists  = errors.New("already exists")
	ErrPathConflict   = errors.New("a document occupies that path")
	ErrNotFound       = errors.New("not found")
	ErrNotADocument   = errors.New("not a document")
	ErrNotAFolder     = errors.New("not a folder")
	ErrFolderNotEmpty = errors.New("folder is not empty")
	ErrOutsideRoot    = errors.New("path is outside the notes root")
	ErrRootProtected  = errors.New("the notes root cannot be modified")
)

// PathError records the gateway operation and path that failed. Err is
// either one of the sentinel errors above or the underlying I/O error.
type PathError struct {
	Op   string
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func pathErr(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
