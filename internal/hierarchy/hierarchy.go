// Package hierarchy holds the in-memory projection of the notes directory
// tree together with the user's current selection.
package hierarchy

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Paintersrp/notetree/internal/logging"
	"github.com/Paintersrp/notetree/internal/pathutil"
	"github.com/Paintersrp/notetree/internal/storage"
)

var log = logging.New("hierarchy")

var ErrUnknownPath = errors.New("path is not in the tree")

type Kind int

const (
	Document Kind = iota
	Folder
)

func (k Kind) String() string {
	if k == Folder {
		return "folder"
	}
	return "document"
}

// Node is one filesystem entry under the notes root. Children is non-nil
// for folders and nil for documents.
type Node struct {
	Path     string
	Name     string
	Kind     Kind
	ModTime  time.Time
	Children []*Node
	parent   *Node
}

func (n *Node) IsFolder() bool {
	return n != nil && n.Kind == Folder
}

func (n *Node) IsDocument() bool {
	return n != nil && n.Kind == Document
}

// Parent returns the containing folder node, nil for the root.
func (n *Node) Parent() *Node {
	if n == nil {
		return nil
	}
	return n.parent
}

// Lister is the part of the storage gateway the index reads from.
type Lister interface {
	Root() string
	ListChildren(path string) ([]storage.Entry, error)
}

type Options struct {
	// Ignore holds glob patterns matched against root-relative slash paths.
	Ignore []string
}

// Index is the navigable snapshot of the notes tree. It is the only writer
// of the node tree and the selection.
type Index struct {
	store    Lister
	root     string
	tree     *Node
	nodes    map[string]*Node
	selected *Node
	expanded map[string]bool
	ignore   []glob.Glob
	collator *collate.Collator
}

func New(store Lister, opts Options) (*Index, error) {
	idx := &Index{
		store:    store,
		root:     pathutil.NormalizePath(store.Root()),
		nodes:    make(map[string]*Node),
		expanded: make(map[string]bool),
		collator: collate.New(language.Und, collate.IgnoreCase, collate.Numeric),
	}

	for _, pattern := range opts.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		idx.ignore = append(idx.ignore, g)
	}

	idx.tree = &Node{Path: idx.root, Name: filepath.Base(idx.root), Kind: Folder, Children: []*Node{}}
	idx.nodes[idx.root] = idx.tree
	return idx, nil
}

func (idx *Index) RootPath() string {
	return idx.root
}

// Root returns the root node of the current snapshot.
func (idx *Index) Root() *Node {
	return idx.tree
}

// Refresh rebuilds the whole tree from storage. The previous snapshot is kept
// when the root itself cannot be listed. A selection whose path disappeared is
// cleared.
func (idx *Index) Refresh() error {
	tree := &Node{Path: idx.root, Name: filepath.Base(idx.root), Kind: Folder}
	nodes := map[string]*Node{idx.root: tree}

	if err := idx.populate(tree, nodes, true); err != nil {
		return err
	}

	idx.tree = tree
	idx.nodes = nodes

	for path := range idx.expanded {
		if n, ok := nodes[path]; !ok || !n.IsFolder() {
			delete(idx.expanded, path)
		}
	}

	if idx.selected != nil {
		if n, ok := nodes[idx.selected.Path]; ok {
			idx.selected = n
		} else {
			log.WithField("path", idx.selected.Path).Debug("selection removed by refresh")
			idx.selected = nil
		}
	}

	log.WithField("nodes", len(nodes)).Debug("tree refreshed")
	return nil
}

func (idx *Index) populate(dir *Node, nodes map[string]*Node, isRoot bool) error {
	entries, err := idx.store.ListChildren(dir.Path)
	dir.Children = []*Node{}
	if err != nil {
		if isRoot {
			return err
		}
		log.WithError(err).WithField("path", dir.Path).Warn("skipping unreadable folder")
		return nil
	}

	for _, e := range entries {
		if idx.skip(e) {
			continue
		}

		child := &Node{Path: e.Path, Name: e.Name, ModTime: e.ModTime, parent: dir}
		if e.IsDir {
			child.Kind = Folder
		} else {
			child.Kind = Document
		}
		nodes[child.Path] = child
		dir.Children = append(dir.Children, child)

		if child.IsFolder() {
			_ = idx.populate(child, nodes, false)
		}
	}

	idx.sortChildren(dir.Children)
	return nil
}

func (idx *Index) skip(e storage.Entry) bool {
	return idx.hides(e.Path, e.Name, e.IsDir)
}

// Hides reports whether an entry at path would be left out of the tree:
// dot names, non-note files and anything matching an ignore pattern.
func (idx *Index) Hides(path string, isDir bool) bool {
	path = pathutil.NormalizePath(path)
	return idx.hides(path, filepath.Base(path), isDir)
}

func (idx *Index) hides(path, name string, isDir bool) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if !isDir && !storage.IsNoteName(name) {
		return true
	}

	if len(idx.ignore) > 0 {
		rel, err := pathutil.RootRelative(idx.root, path)
		if err != nil {
			return true
		}
		for _, g := range idx.ignore {
			if g.Match(rel) || g.Match(name) {
				return true
			}
		}
	}
	return false
}

// sortChildren orders folders before documents, then by collated name.
func (idx *Index) sortChildren(children []*Node) {
	sort.SliceStable(children, func(i, j int) bool {
		return idx.less(children[i], children[j])
	})
}

func (idx *Index) less(a, b *Node) bool {
	if a.Kind != b.Kind {
		return a.Kind == Folder
	}
	if c := idx.collator.CompareString(a.Name, b.Name); c != 0 {
		return c < 0
	}
	return a.Name < b.Name
}

// Lookup finds the node for path in the current snapshot.
func (idx *Index) Lookup(path string) (*Node, bool) {
	n, ok := idx.nodes[pathutil.NormalizePath(path)]
	return n, ok
}

// Parent returns the folder containing path, or false for the root and for
// unknown paths.
func (idx *Index) Parent(path string) (*Node, bool) {
	n, ok := idx.Lookup(path)
	if !ok || n.parent == nil {
		return nil, false
	}
	return n.parent, true
}

// Selection returns the selected node, if any.
func (idx *Index) Selection() (*Node, bool) {
	return idx.selected, idx.selected != nil
}

// Select points the selection at path and expands its ancestors so the node
// is visible.
func (idx *Index) Select(path string) error {
	n, ok := idx.Lookup(path)
	if !ok {
		return fmt.Errorf("select %s: %w", path, ErrUnknownPath)
	}
	idx.selected = n
	for p := n.parent; p != nil; p = p.parent {
		idx.expanded[p.Path] = true
	}
	return nil
}

func (idx *Index) ClearSelection() {
	idx.selected = nil
}

// ResolveParentDirectory returns the folder a new entry should be created in:
// the selected folder itself, the parent of a selected document, or the root
// when nothing is selected.
func (idx *Index) ResolveParentDirectory(sel *Node) string {
	if sel == nil {
		return idx.root
	}
	if sel.IsFolder() {
		return sel.Path
	}
	if sel.parent != nil {
		return sel.parent.Path
	}
	return filepath.Dir(sel.Path)
}
