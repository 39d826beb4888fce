package fzf

import (
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/Paintersrp/notetree/internal/hierarchy"
	"github.com/Paintersrp/notetree/internal/markdown"
	"github.com/Paintersrp/notetree/internal/pathutil"
	"github.com/Paintersrp/notetree/internal/storage"
)

var ErrNoSelection = errors.New("no note selected")

// FuzzyFinder lets the user pick a note from the tree with a live preview.
type FuzzyFinder struct {
	store    storage.Gateway
	renderer *markdown.Renderer
	root     string
	Header   string
	files    []string
	labels   []string
}

func NewFuzzyFinder(
	idx *hierarchy.Index,
	store storage.Gateway,
	renderer *markdown.Renderer,
	header string,
) *FuzzyFinder {
	f := &FuzzyFinder{
		store:    store,
		renderer: renderer,
		root:     idx.RootPath(),
		Header:   header,
	}
	f.collect(idx.Root())
	return f
}

// collect gathers documents in tree order.
func (f *FuzzyFinder) collect(n *hierarchy.Node) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		if child.IsFolder() {
			f.collect(child)
			continue
		}
		f.files = append(f.files, child.Path)
		f.labels = append(f.labels, f.label(child.Path))
	}
}

// label shows the root-relative path followed by the note's title when it
// differs from the file name.
func (f *FuzzyFinder) label(path string) string {
	rel := pathutil.LocationLabel(f.root, path)
	content, err := f.store.ReadDocument(path)
	if err != nil {
		return rel
	}
	title := markdown.Title(content)
	if title == "" {
		return rel
	}
	return fmt.Sprintf("%s  [%s]", rel, title)
}

func (f *FuzzyFinder) Files() []string {
	return f.files
}

// Run shows the finder, optionally pre-filled with query, and returns the
// chosen note's absolute path.
func (f *FuzzyFinder) Run(query string) (string, error) {
	if len(f.files) == 0 {
		return "", fmt.Errorf("no notes to choose from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := fuzzyfinder.Find(f.files, func(i int) string {
		return f.labels[i]
	}, options...)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", ErrNoSelection
		}
		return "", err
	}

	return f.files[idx], nil
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i == -1 {
		return ""
	}

	content, err := f.store.ReadDocument(f.files[i])
	if err != nil {
		return "Error reading file"
	}

	if f.renderer == nil {
		return content
	}
	out, err := f.renderer.Render(f.files[i], content, w)
	if err != nil {
		return "Error rendering markdown"
	}
	return out
}
