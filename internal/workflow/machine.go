// Package workflow implements the modal core of notetree: a state machine
// over Browsing and the prompt and editor modes that
// validates input, performs mutations through the storage gateway, and keeps
// the hierarchy index, the active document and the presenter in step.
//
// A Machine is driven from a single event loop and is not safe for
// concurrent use.
package workflow

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Paintersrp/notetree/internal/active"
	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/logging"
	"github.com/Paintersrp/notetree/internal/pathutil"
	"github.com/Paintersrp/notetree/internal/storage"
)

var log = logging.New("workflow")

// Env bundles the collaborators a Machine works against. It is built once
// at startup.
type Env struct {
	Store   storage.Gateway
	Index   *hierarchy.Index
	Tracker *active.Tracker
	View    Presenter
}

type Machine struct {
	store   storage.Gateway
	index   *hierarchy.Index
	tracker *active.Tracker
	view    Presenter
	state   State
}

func New(env Env) *Machine {
	return &Machine{
		store:   env.Store,
		index:   env.Index,
		tracker: env.Tracker,
		view:    env.View,
		state:   Browsing{},
	}
}

func (m *Machine) State() State {
	return m.state
}

func (m *Machine) Mode() Mode {
	return m.state.Mode()
}

// Start creates the notes root if needed, seeds the welcome note into an
// empty root, builds the tree and renders the initial view.
func (m *Machine) Start() error {
	root := m.index.RootPath()
	if err := m.store.CreateFolder(root); err != nil {
		return fmt.Errorf("prepare notes root: %w", err)
	}

	entries, err := m.store.ListChildren(root)
	if err != nil {
		return fmt.Errorf("list notes root: %w", err)
	}
	if len(entries) == 0 {
		welcome := filepath.Join(root, constants.WelcomeNote)
		if err := m.store.CreateDocument(welcome, constants.WelcomeContent); err != nil &&
			!errors.Is(err, storage.ErrAlreadyExists) {
			return fmt.Errorf("seed welcome note: %w", err)
		}
		log.WithField("path", welcome).Info("seeded welcome note")
	}

	if _, err := m.reload(); err != nil {
		return fmt.Errorf("build tree: %w", err)
	}
	m.renderTree()
	m.showActive()
	return nil
}

// Dispatch applies t to the current state. A non-nil error means the trigger
// was rejected or its mutation failed; the presenter has already been told
// about anything the user needs to see.
func (m *Machine) Dispatch(t Trigger) error {
	from := m.state.Mode()
	err := m.dispatch(t)

	entry := log.WithFields(logrus.Fields{
		"trigger": fmt.Sprintf("%T", t),
		"from":    from.String(),
		"to":      m.state.Mode().String(),
	})
	if err != nil {
		entry.WithError(err).Debug("trigger rejected")
	} else {
		entry.Debug("transition")
	}
	return err
}

func (m *Machine) dispatch(t Trigger) error {
	if r, ok := t.(Refresh); ok {
		return m.refresh(!r.Quiet)
	}

	switch s := m.state.(type) {
	case Browsing:
		return m.browsing(t)
	case CreatingNote:
		return m.creatingNote(s, t)
	case CreatingFolder:
		return m.creatingFolder(s, t)
	case Editing:
		return m.editing(s, t)
	case Renaming:
		return m.renaming(s, t)
	case Moving:
		return m.moving(s, t)
	default:
		m.state = Browsing{}
		return ErrInvalidTrigger
	}
}

func (m *Machine) browsing(t Trigger) error {
	switch t := t.(type) {
	case StartNewNote:
		dir := m.targetDir()
		m.state = CreatingNote{Dir: dir}
		m.view.PromptForName(NamePrompt{Kind: NameNote, Location: m.location(dir)})
		return nil
	case StartNewFolder:
		dir := m.targetDir()
		m.state = CreatingFolder{Dir: dir}
		m.view.PromptForName(NamePrompt{Kind: NameFolder, Location: m.location(dir)})
		return nil
	case StartEdit:
		return m.startEdit()
	case StartRename:
		return m.startRename()
	case StartMove:
		return m.startMove()
	case Delete:
		return m.delete()
	case Select:
		return m.selectPath(t.Path)
	case Open:
		return m.open(t.Path)
	case Collapse:
		m.index.Collapse(t.Path)
		m.renderTree()
		return nil
	default:
		return ErrInvalidTrigger
	}
}

func (m *Machine) creatingNote(s CreatingNote, t Trigger) error {
	switch t := t.(type) {
	case Input:
		s.Name = t.Text
		m.state = s
		return nil
	case Cancel:
		m.state = Browsing{}
		return nil
	case Confirm:
		s.Name = t.Text
		name, err := cleanName(t.Text)
		if err != nil {
			m.state = s
			m.view.Notify(capitalize(err.Error()), SeverityWarning)
			return err
		}
		if name == "" {
			m.state = s
			return nil
		}
		path := filepath.Join(s.Dir, noteFileName(name))
		if err := m.visible(path, false); err != nil {
			m.state = s
			return err
		}
		m.state = Browsing{}
		return m.createNote(path)
	default:
		return ErrInvalidTrigger
	}
}

func (m *Machine) creatingFolder(s CreatingFolder, t Trigger) error {
	switch t := t.(type) {
	case Input:
		s.Name = t.Text
		m.state = s
		return nil
	case Cancel:
		m.state = Browsing{}
		return nil
	case Confirm:
		s.Name = t.Text
		name, err := cleanName(t.Text)
		if err != nil {
			m.state = s
			m.view.Notify(capitalize(err.Error()), SeverityWarning)
			return err
		}
		if name == "" {
			m.state = s
			return nil
		}
		path := filepath.Join(s.Dir, name)
		if err := m.visible(path, true); err != nil {
			m.state = s
			return err
		}
		m.state = Browsing{}
		return m.createFolder(path)
	default:
		return ErrInvalidTrigger
	}
}

func (m *Machine) editing(s Editing, t Trigger) error {
	switch t := t.(type) {
	case Input:
		s.Buffer = t.Text
		m.state = s
		return nil
	case Cancel:
		m.state = Browsing{}
		m.showActive()
		return nil
	case Confirm:
		m.state = Browsing{}
		if err := m.store.WriteDocument(s.Path, t.Text); err != nil {
			return m.fail("Error saving note", err)
		}
		m.renderTree()
		m.showActive()
		m.view.Notify("Saved: "+filepath.Base(s.Path), SeverityInfo)
		return nil
	default:
		return ErrInvalidTrigger
	}
}

func (m *Machine) renaming(s Renaming, t Trigger) error {
	switch t := t.(type) {
	case Input:
		s.Name = t.Text
		m.state = s
		return nil
	case Cancel:
		m.state = Browsing{}
		return nil
	case Confirm:
		s.Name = t.Text
		name, err := cleanName(t.Text)
		if err != nil {
			m.state = s
			m.view.Notify(capitalize(err.Error()), SeverityWarning)
			return err
		}
		if name == "" {
			m.state = s
			return nil
		}
		if s.Kind == hierarchy.Document {
			name = noteFileName(name)
		}
		to := filepath.Join(filepath.Dir(s.Target), name)
		if err := m.visible(to, s.Kind == hierarchy.Folder); err != nil {
			m.state = s
			return err
		}
		m.state = Browsing{}
		return m.rename(s, to)
	default:
		return ErrInvalidTrigger
	}
}

func (m *Machine) moving(s Moving, t Trigger) error {
	switch t := t.(type) {
	case Input:
		s.Dest = t.Text
		m.state = s
		return nil
	case Cancel:
		m.state = Browsing{}
		return nil
	case Confirm:
		s.Dest = t.Text
		if strings.TrimSpace(t.Text) == "" {
			m.state = s
			return nil
		}
		dest, err := m.destination(s, t.Text)
		if err != nil {
			m.state = s
			m.view.Notify(capitalize(err.Error()), SeverityWarning)
			return err
		}
		m.state = Browsing{}
		return m.move(s, dest)
	default:
		return ErrInvalidTrigger
	}
}

func (m *Machine) createNote(path string) error {
	fileName := filepath.Base(path)
	title := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	if err := m.store.CreateDocument(path, fmt.Sprintf(constants.NoteTemplate, title)); err != nil {
		return m.fail("Error creating note", err)
	}

	m.commit(path)
	if node, ok := m.index.Lookup(path); ok {
		_ = m.tracker.Show(node)
	}
	m.showActive()
	m.view.Notify("Created note: "+fileName, SeverityInfo)
	return nil
}

func (m *Machine) createFolder(path string) error {
	name := filepath.Base(path)

	if err := m.store.CreateFolder(path); err != nil {
		return m.fail("Error creating folder", err)
	}

	m.commit(path)
	m.view.Notify("Created folder: "+name, SeverityInfo)
	return nil
}

func (m *Machine) startEdit() error {
	path, ok := m.tracker.Current()
	if !ok {
		m.view.Notify("No note selected", SeverityWarning)
		return ErrNoActiveDocument
	}

	content, err := m.store.ReadDocument(path)
	if err != nil {
		return m.fail("Error opening note", err)
	}

	m.state = Editing{Path: path, Original: content, Buffer: content}
	m.view.PromptForEdit(EditPrompt{Path: path, Content: content})
	return nil
}

func (m *Machine) startRename() error {
	sel, ok := m.index.Selection()
	if !ok {
		m.view.Notify("No item selected", SeverityWarning)
		return ErrNoSelection
	}
	if sel.Path == m.index.RootPath() {
		m.view.Notify("Cannot rename the root notes directory", SeverityWarning)
		return ErrRenameRoot
	}

	kind := NameFolder
	initial := sel.Name
	if sel.IsDocument() {
		kind = NameNote
		initial = strings.TrimSuffix(sel.Name, filepath.Ext(sel.Name))
	}

	m.state = Renaming{Target: sel.Path, Kind: sel.Kind, Name: initial}
	m.view.PromptForName(NamePrompt{
		Kind:     kind,
		Location: m.location(filepath.Dir(sel.Path)),
		Initial:  initial,
		Rename:   true,
	})
	return nil
}

func (m *Machine) rename(s Renaming, to string) error {
	newName := filepath.Base(to)
	if to == s.Target {
		return nil
	}

	if err := m.store.RenameEntry(s.Target, to); err != nil {
		return m.fail("Error renaming", err)
	}

	if current, ok := m.tracker.Current(); ok && pathutil.Within(s.Target, current) {
		m.tracker.Clear()
		m.view.RenderDocument(DocumentView{Empty: true})
	}

	m.commit(to)
	m.view.Notify(fmt.Sprintf("Renamed: %s → %s", filepath.Base(s.Target), newName), SeverityInfo)
	return nil
}

func (m *Machine) startMove() error {
	sel, ok := m.index.Selection()
	if !ok {
		m.view.Notify("No item selected", SeverityWarning)
		return ErrNoSelection
	}
	if sel.Path == m.index.RootPath() {
		m.view.Notify("Cannot move the root notes directory", SeverityWarning)
		return ErrMoveRoot
	}

	kind := NameFolder
	if sel.IsDocument() {
		kind = NameNote
	}
	initial := m.location(filepath.Dir(sel.Path))

	m.state = Moving{Target: sel.Path, Kind: sel.Kind, Dest: initial}
	m.view.PromptForName(NamePrompt{
		Kind:     kind,
		Location: initial,
		Initial:  initial,
		Subject:  sel.Name,
		Move:     true,
	})
	return nil
}

// destination resolves a typed folder against the notes root. A leading "/"
// also means the root. The folder must be visible in the tree.
func (m *Machine) destination(s Moving, text string) (string, error) {
	root := m.index.RootPath()
	rel := strings.TrimLeft(filepath.FromSlash(strings.TrimSpace(text)), string(filepath.Separator))
	dest := filepath.Clean(filepath.Join(root, rel))

	if !pathutil.Within(root, dest) {
		return "", ErrBadDestination
	}
	node, ok := m.index.Lookup(dest)
	if !ok || !node.IsFolder() {
		return "", ErrBadDestination
	}
	if s.Kind == hierarchy.Folder && pathutil.Within(s.Target, dest) {
		return "", ErrMoveIntoSelf
	}
	return node.Path, nil
}

// move relocates the target into dest keeping its name. The active document
// follows the move.
func (m *Machine) move(s Moving, dest string) error {
	name := filepath.Base(s.Target)
	to := filepath.Join(dest, name)
	label := m.location(dest)
	if to == s.Target {
		m.view.Notify("Item already in that folder", SeverityInfo)
		return nil
	}

	if err := m.store.RenameEntry(s.Target, to); err != nil {
		return m.fail("Error moving", err)
	}

	follow := ""
	if current, ok := m.tracker.Current(); ok && pathutil.Within(s.Target, current) {
		rel, err := filepath.Rel(s.Target, current)
		if err == nil {
			follow = filepath.Join(to, rel)
		}
		m.tracker.Clear()
	}

	m.commit(to)
	if follow != "" {
		if node, ok := m.index.Lookup(follow); ok {
			_ = m.tracker.Show(node)
		}
		m.showActive()
	}
	m.view.Notify("Moved to: "+label, SeverityInfo)
	return nil
}

// delete removes the selected document or empty folder. Non-empty folders
// are refused outright.
func (m *Machine) delete() error {
	sel, ok := m.index.Selection()
	if !ok {
		m.view.Notify("No item selected", SeverityWarning)
		return ErrNoSelection
	}
	if sel.Path == m.index.RootPath() {
		m.view.Notify("Cannot delete the root notes directory", SeverityWarning)
		return ErrDeleteRoot
	}

	path, name, folder := sel.Path, sel.Name, sel.IsFolder()

	if folder {
		children, err := m.store.ListChildren(path)
		if err != nil {
			return m.fail("Error deleting", err)
		}
		if len(children) > 0 {
			m.view.Notify("Folder is not empty. Delete contents first.", SeverityWarning)
			return fmt.Errorf("delete %s: %w", path, storage.ErrFolderNotEmpty)
		}
	}

	if err := m.store.DeleteEntry(path); err != nil {
		return m.fail("Error deleting", err)
	}

	if m.tracker.Is(path) {
		m.tracker.Clear()
		m.view.RenderDocument(DocumentView{Empty: true})
	}
	m.index.ClearSelection()
	m.commit("")

	if folder {
		m.view.Notify("Deleted folder: "+name, SeverityInfo)
	} else {
		m.view.Notify("Deleted: "+name, SeverityInfo)
	}
	return nil
}

func (m *Machine) selectPath(path string) error {
	if err := m.index.Select(path); err != nil {
		return m.fail("Error selecting", err)
	}
	m.renderTree()
	return nil
}

func (m *Machine) open(path string) error {
	node, ok := m.index.Lookup(path)
	if !ok {
		return m.fail("Error opening", fmt.Errorf("open %s: %w", path, hierarchy.ErrUnknownPath))
	}

	if err := m.index.Select(node.Path); err != nil {
		return m.fail("Error opening", err)
	}

	if node.IsFolder() {
		m.index.Toggle(node.Path)
		m.renderTree()
		return nil
	}

	if err := m.tracker.Show(node); err != nil {
		return m.fail("Error opening", err)
	}
	m.renderTree()
	m.showActive()
	return nil
}

func (m *Machine) refresh(announce bool) error {
	if err := m.resync(); err != nil {
		return err
	}
	if _, ok := m.tracker.Current(); ok {
		m.showActive()
	}
	if announce {
		m.view.Notify("Refreshed", SeverityInfo)
	}
	return nil
}

// commit runs the post-mutation sequence: rebuild the index, reconcile the
// active document, select selectPath when given, and re-render the tree.
func (m *Machine) commit(selectPath string) {
	cleared, err := m.reload()
	if err != nil {
		m.view.Notify(fmt.Sprintf("Error refreshing: %v", err), SeverityError)
	}
	if selectPath != "" {
		if err := m.index.Select(selectPath); err != nil {
			log.WithError(err).WithField("path", selectPath).Warn("new entry missing after refresh")
		}
	}
	m.renderTree()
	if cleared {
		m.view.RenderDocument(DocumentView{Empty: true})
	}
}

// resync is commit without a selection change, used after disappearance
// errors and for explicit refreshes.
func (m *Machine) resync() error {
	cleared, err := m.reload()
	m.renderTree()
	if cleared {
		m.view.RenderDocument(DocumentView{Empty: true})
	}
	if err != nil {
		m.view.Notify(fmt.Sprintf("Error refreshing: %v", err), SeverityError)
		return err
	}
	return nil
}

func (m *Machine) reload() (bool, error) {
	if err := m.index.Refresh(); err != nil {
		return false, err
	}
	return m.tracker.OnHierarchyRefresh(m.index), nil
}

// fail reports err to the user and resynchronises the tree when the error
// means the filesystem changed underneath us.
func (m *Machine) fail(action string, err error) error {
	cat := Classify(err)
	m.view.Notify(fmt.Sprintf("%s: %s", action, describe(err)), cat.Severity())
	log.WithError(err).WithField("category", cat.String()).Warn(action)

	if cat == CategoryDisappearance {
		_ = m.resync()
	}
	return err
}

func (m *Machine) showActive() {
	path, ok := m.tracker.Current()
	if !ok {
		m.view.RenderDocument(DocumentView{Empty: true})
		return
	}

	content, err := m.store.ReadDocument(path)
	if err != nil {
		m.tracker.Clear()
		m.view.RenderDocument(DocumentView{Empty: true})
		m.view.Notify("Error reading note: "+describe(err), SeverityError)
		if Classify(err) == CategoryDisappearance {
			_ = m.resync()
		}
		return
	}

	m.view.RenderDocument(DocumentView{Path: path, Content: content})
}

func (m *Machine) renderTree() {
	sel, _ := m.index.Selection()
	m.view.RenderTree(TreeView{Root: m.index.Root(), Selection: sel, Rows: m.index.Rows()})
}

func (m *Machine) targetDir() string {
	sel, _ := m.index.Selection()
	return m.index.ResolveParentDirectory(sel)
}

// visible rejects a new path the tree would not show, so storage and the
// index never disagree about a freshly created entry.
func (m *Machine) visible(path string, isDir bool) error {
	if !m.index.Hides(path, isDir) {
		return nil
	}
	m.view.Notify(fmt.Sprintf("%s: %s", capitalize(ErrHiddenName.Error()), filepath.Base(path)), SeverityWarning)
	return ErrHiddenName
}

func (m *Machine) location(dir string) string {
	return pathutil.LocationLabel(m.index.RootPath(), dir)
}

// noteFileName adds the note extension when the name lacks it.
func noteFileName(name string) string {
	if storage.IsNoteName(name) {
		return name
	}
	return name + constants.NoteExt
}

// cleanName trims the typed name. An empty result with a nil error means the
// prompt should simply stay open.
func cleanName(text string) (string, error) {
	name := strings.TrimSpace(text)
	if name == "" {
		return "", nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidName
	}
	return name, nil
}

// describe shortens gateway errors to "<name>: <reason>".
func describe(err error) string {
	var pe *storage.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: %v", filepath.Base(pe.Path), pe.Err)
	}
	return err.Error()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
