package panels

import (
	"html"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/microcosm-cc/bluemonday"
)

// DefaultWrap is the markdown word-wrap width
const DefaultWrap = 80

var (
	sanitizer = bluemonday.StrictPolicy()

	renderersMu sync.Mutex
	renderers   = map[int]*glamour.TermRenderer{}
)

// Sanitize strips markup from model text. Entities escaped by the policy
// are decoded again so markdown punctuation survives.
func Sanitize(s string) string {
	return html.UnescapeString(sanitizer.Sanitize(s))
}

// RenderMarkdown sanitises s and renders it for the terminal. When the
// renderer fails the sanitised text is returned as is.
func RenderMarkdown(s string, width int) string {
	clean := Sanitize(s)
	if width <= 0 {
		width = DefaultWrap
	}

	// Renderers reuse an internal buffer
	renderersMu.Lock()
	defer renderersMu.Unlock()

	r, err := renderer(width)
	if err != nil {
		return clean
	}
	out, err := r.Render(clean)
	if err != nil {
		return clean
	}
	return strings.TrimRight(out, "\n")
}

func renderer(width int) (*glamour.TermRenderer, error) {
	if r, ok := renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[width] = r
	return r, nil
}
