package render

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// Renderer renders chat replies with one style for the whole session.
// Built glamour renderers are kept per wrap width, so resizing the terminal
// only builds each width once.
type Renderer struct {
	opts Options

	mu      sync.Mutex
	byWidth map[int]*glamour.TermRenderer
}

// NewRenderer creates a Renderer for opts. Width is ignored; callers pass it
// per reply.
func NewRenderer(opts Options) *Renderer {
	if opts.Style == "" {
		opts.Style = DefaultOptions().Style
	}
	return &Renderer{
		opts:    opts,
		byWidth: make(map[int]*glamour.TermRenderer),
	}
}

// Options returns the options the renderer was built with
func (r *Renderer) Options() Options {
	return r.opts
}

// Markdown renders content wrapped at width
func (r *Renderer) Markdown(content string, width int) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opts := r.opts.WithWidth(width)
	tr, ok := r.byWidth[opts.Width]
	if !ok {
		var err error
		tr, err = newTermRenderer(opts)
		if err != nil {
			return "", err
		}
		r.byWidth[opts.Width] = tr
	}

	// glamour.TermRenderer is not safe for concurrent Render calls
	return tr.Render(content)
}

// Reply renders an assistant reply for a chat bubble. Rendering failures
// fall back to the raw text; glamour's trailing blank lines are trimmed.
func (r *Renderer) Reply(content string, width int) string {
	rendered, err := r.Markdown(content, width)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// widths reports how many wrap widths have a built renderer
func (r *Renderer) widths() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byWidth)
}

// newTermRenderer builds a TermRenderer. Style is resolved by glamour: a file
// path if one exists, otherwise a standard style name.
func newTermRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(rendererOpts...)
}
