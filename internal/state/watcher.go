package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/internal/pathutil"
)

// NotesChangedMsg reports that something under the notes root changed
// outside the application. Path is the first root-relative path seen in the
// burst; Count is how many events were coalesced.
type NotesChangedMsg struct {
	Path  string
	Count int
}

type NotesWatcherErrMsg struct {
	Err error
}

const defaultSettle = 150 * time.Millisecond

type NotesWatcher struct {
	watcher  *fsnotify.Watcher
	root     string
	done     chan struct{}
	once     sync.Once
	settle   time.Duration
	onChange func(string)
}

func NewNotesWatcher(root string) (*NotesWatcher, error) {
	normalizedRoot := pathutil.NormalizePath(root)
	if normalizedRoot == "" {
		return nil, errors.New("notes directory cannot be empty")
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &NotesWatcher{
		watcher: w,
		root:    normalizedRoot,
		done:    make(chan struct{}),
		settle:  defaultSettle,
	}

	if err := watcher.addRecursive(normalizedRoot); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the next burst of relevant
// changes has settled. Callers re-issue it after handling each message.
func (w *NotesWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		var (
			first string
			count int
			quiet <-chan time.Time
		)

		for {
			select {
			case <-w.done:
				return nil
			case <-quiet:
				return NotesChangedMsg{Path: first, Count: count}
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						_ = w.addRecursive(event.Name)
					}
				}

				if !w.isRelevant(event) {
					continue
				}

				rel, err := w.relativePath(event.Name)
				if err != nil || rel == "" {
					continue
				}

				if w.onChange != nil {
					w.onChange(rel)
				}

				if count == 0 {
					first = rel
				}
				count++
				quiet = time.After(w.settle)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return NotesWatcherErrMsg{Err: err}
				}
			}
		}
	}
}

func (w *NotesWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
	})

	return closeErr
}

// OnChange registers a callback that receives root-relative paths whenever
// the watcher sees a relevant change.
func (w *NotesWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

// SetSettle changes how long the watcher waits for a burst to go quiet.
func (w *NotesWatcher) SetSettle(d time.Duration) {
	if w == nil || d <= 0 {
		return
	}
	w.settle = d
}

func (w *NotesWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if path != normalized && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

// isRelevant keeps structural changes to any visible entry and content
// writes to notes.
func (w *NotesWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return false
	}

	for _, part := range strings.Split(rel, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
		return true
	}

	return strings.EqualFold(filepath.Ext(rel), constants.NoteExt)
}

func (w *NotesWatcher) relativePath(path string) (string, error) {
	rel, err := pathutil.RootRelative(w.root, path)
	if err != nil {
		return "", err
	}

	if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", nil
	}

	return rel, nil
}
