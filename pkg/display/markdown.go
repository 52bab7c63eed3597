package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/types"
)

// MarkdownRenderer renders markdown through glamour.
type MarkdownRenderer struct {
	Style string // "dark", "light", "notty", "auto", or path to custom style
	Width int    // 0 leaves wrapping to glamour
}

// NewMarkdownRenderer uses glamour's auto style detection.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{Style: "auto", Width: 80}
}

// Render converts markdown for terminal display, falling back to the raw
// content on any error.
func (r *MarkdownRenderer) Render(content string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" && r.Style != "auto" {
		options = append(options, glamour.WithStylePath(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := tr.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// Markdown renders content for f. Plain text output gets it unchanged.
func Markdown(content string, f Format) string {
	if f != FormatTerminal {
		return content
	}
	return NewMarkdownRenderer().Render(content)
}

// RenderEntry writes the details of one entry, notes included.
func RenderEntry(w io.Writer, e *entry.Entry, fsys types.FS, f Format) error {
	status, detail := StatusOf(e, fsys)

	var b strings.Builder
	fmt.Fprintf(&b, "[title]%s[/title]\n", e.Name)
	fmt.Fprintf(&b, "  Status:    %s\n", statusCell(status, f))
	if detail != "" {
		fmt.Fprintf(&b, "  Detail:    %s\n", detail)
	}
	fmt.Fprintf(&b, "  Source:    [path]%s[/path]\n", e.Src)
	fmt.Fprintf(&b, "  Stored at: [path]%s[/path]\n", e.Dst)
	if e.Linked && !e.Broken {
		fmt.Fprintf(&b, "  Link:      [path]%s[/path]\n", e.LinkPath())
	} else {
		b.WriteString("  Link:      [muted]none[/muted]\n")
	}
	if _, err := io.WriteString(w, Markup(b.String(), f)); err != nil {
		return err
	}

	if strings.TrimSpace(e.Notes) == "" {
		return nil
	}
	if _, err := fmt.Fprintln(w, Markup("\n[bold]Notes[/bold]", f)); err != nil {
		return err
	}
	_, err := io.WriteString(w, Markdown(e.Notes, f))
	return err
}
