package topics

import "github.com/dotyhq/doty/pkg/display"

// Renderer formats topic content for the terminal
type Renderer interface {
	// Render takes raw content and its file extension
	Render(content string, ext string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, ext string) string {
	return content
}

// MarkdownRenderer renders .md topics through glamour and passes other
// formats through.
type MarkdownRenderer struct {
	md *display.MarkdownRenderer
}

// NewMarkdownRenderer uses glamour's auto style detection
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{md: display.NewMarkdownRenderer()}
}

// Render converts markdown topics for terminal display
func (r *MarkdownRenderer) Render(content string, ext string) string {
	if ext != ".md" {
		return content
	}
	return r.md.Render(content)
}
