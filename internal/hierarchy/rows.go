package hierarchy

import "sort"

// Row is one visible line of the rendered tree.
type Row struct {
	Node     *Node
	Depth    int
	Expanded bool
}

// Rows flattens the tree depth-first, descending only into expanded folders.
// The root is always the first row and is always expanded.
func (idx *Index) Rows() []Row {
	rows := []Row{{Node: idx.tree, Depth: 0, Expanded: true}}
	idx.appendRows(&rows, idx.tree, 1)
	return rows
}

func (idx *Index) appendRows(rows *[]Row, dir *Node, depth int) {
	for _, child := range dir.Children {
		open := child.IsFolder() && idx.expanded[child.Path]
		*rows = append(*rows, Row{Node: child, Depth: depth, Expanded: open})
		if open {
			idx.appendRows(rows, child, depth+1)
		}
	}
}

func (idx *Index) IsExpanded(path string) bool {
	if path == idx.root {
		return true
	}
	return idx.expanded[path]
}

// Toggle flips a folder's expanded state. The root stays expanded.
func (idx *Index) Toggle(path string) {
	n, ok := idx.Lookup(path)
	if !ok || !n.IsFolder() || n.Path == idx.root {
		return
	}
	idx.expanded[n.Path] = !idx.expanded[n.Path]
}

func (idx *Index) Collapse(path string) {
	delete(idx.expanded, path)
}

// ExpandedPaths returns the expanded folders in sorted order.
func (idx *Index) ExpandedPaths() []string {
	paths := make([]string, 0, len(idx.expanded))
	for p, open := range idx.expanded {
		if open {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// RestoreExpanded marks the given folders as expanded, ignoring paths that
// are not folders in the current snapshot.
func (idx *Index) RestoreExpanded(paths []string) {
	for _, p := range paths {
		if n, ok := idx.Lookup(p); ok && n.IsFolder() && n.Path != idx.root {
			idx.expanded[n.Path] = true
		}
	}
}
