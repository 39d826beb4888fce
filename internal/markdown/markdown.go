// Package markdown extracts note titles and renders note bodies for the
// terminal.
package markdown

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/Paintersrp/notetree/internal/cache"
	"github.com/Paintersrp/notetree/internal/constants"
	"github.com/Paintersrp/notetree/internal/logging"
)

var log = logging.New("markdown")

// Title returns the text of the first top-level heading in source, falling
// back to the first heading of any level. It returns "" when there is none.
func Title(source string) string {
	src := []byte(source)
	doc := goldmark.DefaultParser().Parse(text.NewReader(src))

	var first, top string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title := strings.TrimSpace(string(h.Text(src)))
		if title == "" {
			return ast.WalkSkipChildren, nil
		}
		if first == "" {
			first = title
		}
		if h.Level == 1 {
			top = title
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})

	if top != "" {
		return top
	}
	return first
}

type Options struct {
	Style    string
	WordWrap int
	Profile  termenv.Profile
	// CacheSize bounds the number of rendered documents kept in memory.
	CacheSize int
}

type renderKey struct {
	path  string
	width int
	sum   uint64
}

// Renderer turns markdown into styled terminal output. Results are cached
// by path, width and content hash.
type Renderer struct {
	mu       sync.Mutex
	opts     Options
	width    int
	term     *glamour.TermRenderer
	rendered *cache.LRUCache[renderKey, string]
}

func NewRenderer(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = constants.DefaultGlamourStyle
	}
	if opts.WordWrap <= 0 {
		opts.WordWrap = constants.DefaultWordWrap
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 32
	}
	return &Renderer{
		opts:     opts,
		rendered: cache.NewLRUCache[renderKey, string](opts.CacheSize),
	}
}

// Render renders content for a pane width columns wide. A width of zero uses
// the configured word wrap.
func (r *Renderer) Render(path, content string, width int) (string, error) {
	wrap := r.opts.WordWrap
	if width > 0 && width < wrap {
		wrap = width
	}

	key := renderKey{path: path, width: wrap, sum: checksum(content)}
	if out, ok := r.rendered.Get(key); ok {
		return out, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	term, err := r.termFor(wrap)
	if err != nil {
		return "", err
	}

	out, err := term.Render(content)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}

	r.rendered.Put(key, out)
	return out, nil
}

// Forget drops cached renders of path.
func (r *Renderer) Forget(path string) {
	r.rendered.RemoveFunc(func(k renderKey) bool { return k.path == path })
}

// Reset drops every cached render.
func (r *Renderer) Reset() {
	log.WithField("entries", r.rendered.Len()).Debug("render cache cleared")
	r.rendered.Purge()
}

func (r *Renderer) termFor(wrap int) (*glamour.TermRenderer, error) {
	if r.term != nil && r.width == wrap {
		return r.term, nil
	}

	style := glamour.WithStandardStyle(r.opts.Style)
	if r.opts.Style == "auto" {
		style = glamour.WithAutoStyle()
	}

	term, err := glamour.NewTermRenderer(
		style,
		glamour.WithWordWrap(wrap),
		glamour.WithColorProfile(r.opts.Profile),
	)
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}

	log.WithField("wrap", wrap).Debug("markdown renderer rebuilt")
	r.term = term
	r.width = wrap
	return term, nil
}

func checksum(content string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(content))
	return h.Sum64()
}
