// Package storage is the gateway between notetree and the filesystem. Every
// operation takes an absolute path inside the notes root and reports failures
// as *PathError values wrapping the sentinel errors in errors.go.
package storage

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/internal/logging"
	"github.com/Paintersrp/notetree/internal/pathutil"
)

var log = logging.New("storage")

// Entry is a single directory child returned by ListChildren.
type Entry struct {
	Path    string
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// Gateway is the storage contract consumed by the hierarchy index and the
// workflow machine.
type Gateway interface {
	Root() string
	CreateDocument(path, content string) error
	CreateFolder(path string) error
	ReadDocument(path string) (string, error)
	WriteDocument(path, content string) error
	DeleteEntry(path string) error
	RenameEntry(from, to string) error
	ListChildren(path string) ([]Entry, error)
	Exists(path string) bool
	IsDocument(path string) bool
	IsFolder(path string) bool
}

// FileStore implements Gateway on the local filesystem.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: pathutil.NormalizePath(root)}
}

func (s *FileStore) Root() string {
	return s.root
}

// IsNoteName reports whether name carries the note extension.
func IsNoteName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), constants.NoteExt)
}

func (s *FileStore) check(op, path string) (string, error) {
	cleaned := pathutil.NormalizePath(path)
	if !filepath.IsAbs(cleaned) || !pathutil.Within(s.root, cleaned) {
		return "", pathErr(op, path, ErrOutsideRoot)
	}
	return cleaned, nil
}

// CreateDocument writes content to a new file at path. The file appears with
// its full content or not at all.
func (s *FileStore) CreateDocument(path, content string) error {
	const op = "create document"

	path, err := s.check(op, path)
	if err != nil {
		return err
	}
	if !IsNoteName(path) {
		return pathErr(op, path, ErrNotADocument)
	}
	if _, err := os.Lstat(path); err == nil {
		return pathErr(op, path, ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return pathErr(op, path, classify(err))
	}

	tmp, err := writeTemp(filepath.Dir(path), content, 0o644)
	if err != nil {
		return pathErr(op, path, classify(err))
	}
	defer os.Remove(tmp)

	// Link refuses to replace an existing file, which closes the race between
	// the Lstat above and publishing the new document.
	if err := os.Link(tmp, path); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return pathErr(op, path, ErrAlreadyExists)
		}
		if _, statErr := os.Lstat(path); statErr == nil {
			return pathErr(op, path, ErrAlreadyExists)
		}
		if err := os.Rename(tmp, path); err != nil {
			return pathErr(op, path, classify(err))
		}
	}

	log.WithField("path", path).Debug("document created")
	return nil
}

// CreateFolder creates path and any missing parents. An existing folder is
// not an error.
func (s *FileStore) CreateFolder(path string) error {
	const op = "create folder"

	path, err := s.check(op, path)
	if err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return nil
		}
		return pathErr(op, path, ErrPathConflict)
	}

	if err := os.MkdirAll(path, 0o755); err != nil {
		if errors.Is(err, syscall.ENOTDIR) || errors.Is(err, fs.ErrExist) {
			return pathErr(op, path, ErrPathConflict)
		}
		return pathErr(op, path, classify(err))
	}

	log.WithField("path", path).Debug("folder created")
	return nil
}

func (s *FileStore) ReadDocument(path string) (string, error) {
	const op = "read document"

	path, err := s.check(op, path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", pathErr(op, path, classify(err))
	}
	if info.IsDir() || !IsNoteName(path) {
		return "", pathErr(op, path, ErrNotADocument)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", pathErr(op, path, classify(err))
	}
	return string(data), nil
}

// WriteDocument replaces the content of an existing document.
func (s *FileStore) WriteDocument(path, content string) error {
	const op = "write document"

	path, err := s.check(op, path)
	if err != nil {
		return err
	}

	info, err := os.Stat(path)
	if err != nil {
		return pathErr(op, path, classify(err))
	}
	if info.IsDir() || !IsNoteName(path) {
		return pathErr(op, path, ErrNotADocument)
	}

	tmp, err := writeTemp(filepath.Dir(path), content, info.Mode().Perm())
	if err != nil {
		return pathErr(op, path, classify(err))
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return pathErr(op, path, classify(err))
	}

	log.WithFields(logrus.Fields{"path": path, "bytes": len(content)}).Debug("document written")
	return nil
}

// DeleteEntry removes a single document or an empty folder.
func (s *FileStore) DeleteEntry(path string) error {
	const op = "delete"

	path, err := s.check(op, path)
	if err != nil {
		return err
	}
	if path == s.root {
		return pathErr(op, path, ErrRootProtected)
	}

	info, err := os.Lstat(path)
	if err != nil {
		return pathErr(op, path, classify(err))
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return pathErr(op, path, classify(err))
		}
		if len(entries) > 0 {
			return pathErr(op, path, ErrFolderNotEmpty)
		}
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, syscall.ENOTEMPTY) || errors.Is(err, syscall.EEXIST) {
			return pathErr(op, path, ErrFolderNotEmpty)
		}
		return pathErr(op, path, classify(err))
	}

	log.WithField("path", path).Debug("entry deleted")
	return nil
}

// RenameEntry moves a single entry to a new path that must not exist yet.
func (s *FileStore) RenameEntry(from, to string) error {
	const op = "rename"

	from, err := s.check(op, from)
	if err != nil {
		return err
	}
	to, err = s.check(op, to)
	if err != nil {
		return err
	}
	if from == s.root || to == s.root {
		return pathErr(op, from, ErrRootProtected)
	}

	info, err := os.Lstat(from)
	if err != nil {
		return pathErr(op, from, classify(err))
	}
	if !info.IsDir() && !IsNoteName(to) {
		return pathErr(op, to, ErrNotADocument)
	}
	if info.IsDir() && pathutil.Within(from, to) {
		return pathErr(op, to, ErrPathConflict)
	}
	if _, err := os.Lstat(to); err == nil {
		return pathErr(op, to, ErrAlreadyExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return pathErr(op, to, classify(err))
	}

	if err := os.Rename(from, to); err != nil {
		return pathErr(op, from, classify(err))
	}

	log.WithFields(logrus.Fields{"from": from, "to": to}).Debug("entry renamed")
	return nil
}

// ListChildren returns the entries directly inside path, ordered by name.
func (s *FileStore) ListChildren(path string) ([]Entry, error) {
	const op = "list"

	path, err := s.check(op, path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, pathErr(op, path, classify(err))
	}
	if !info.IsDir() {
		return nil, pathErr(op, path, ErrNotAFolder)
	}

	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, pathErr(op, path, classify(err))
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(path, de.Name()),
			Name:    de.Name(),
			IsDir:   info.IsDir(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

func (s *FileStore) Exists(path string) bool {
	path, err := s.check("exists", path)
	if err != nil {
		return false
	}
	_, err = os.Lstat(path)
	return err == nil
}

func (s *FileStore) IsDocument(path string) bool {
	path, err := s.check("is document", path)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && IsNoteName(path)
}

func (s *FileStore) IsFolder(path string) bool {
	path, err := s.check("is folder", path)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// writeTemp writes content to a synced temporary file inside dir and returns
// its path.
func writeTemp(dir, content string, perm fs.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, ".notetree-*.tmp")
	if err != nil {
		return "", err
	}
	name := f.Name()

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(name)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(name)
		return "", err
	}
	if err := os.Chmod(name, perm); err != nil {
		os.Remove(name)
		return "", err
	}
	return name, nil
}

// classify folds missing-path errors into ErrNotFound and leaves everything
// else as an I/O error.
func classify(err error) error {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return ErrNotFound
	}
	return err
}
