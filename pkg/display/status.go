package display

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/style"
	"github.com/dotyhq/doty/pkg/types"
)

// Row is one entry as shown by `doty status`.
type Row struct {
	Name   string
	Src    string
	Dst    string
	Link   string
	Linked bool
	Status style.Status
	Detail string
}

// StatusOf classifies e against the filesystem.
func StatusOf(e *entry.Entry, fsys types.FS) (style.Status, string) {
	if e.Broken {
		return style.StatusBroken, e.BrokenReason.Error()
	}
	state := e.Inspect(fsys)
	switch {
	case state.Complete():
		return style.StatusComplete, ""
	case !state.Location.OK:
		return style.StatusPending, state.Location.Reason
	default:
		return style.StatusDrifted, state.Link.Reason
	}
}

// Rows builds the status rows for entries, in order.
func Rows(entries []*entry.Entry, fsys types.FS) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		status, detail := StatusOf(e, fsys)
		row := Row{
			Name:   e.Name,
			Src:    e.Src,
			Dst:    e.Dst,
			Linked: e.Linked,
			Status: status,
			Detail: detail,
		}
		if row.Name == "" {
			row.Name = "<unnamed>"
		}
		if !e.Broken {
			row.Link = e.LinkPath()
		}
		rows = append(rows, row)
	}
	return rows
}

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleLight),
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// RenderStatus writes rows as a table followed by a one-line summary.
func RenderStatus(w io.Writer, rows []Row, f Format) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, Markup("[muted]No entries in the manifest[/muted]", f))
		return err
	}

	table := newTable(w, []string{"Name", "Status", "Linked", "Stored at", "Detail"})
	counts := make(map[style.Status]int)
	statuses := make([]style.Status, 0, len(rows))
	for _, r := range rows {
		counts[r.Status]++
		statuses = append(statuses, r.Status)
		if err := table.Append([]string{
			r.Name,
			statusCell(r.Status, f),
			strconv.FormatBool(r.Linked),
			r.Dst,
			r.Detail,
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	overall := style.Aggregate(statuses)
	_, err := fmt.Fprintf(w, "\n%s %d entries: %d complete, %d pending, %d drifted, %d broken\n",
		statusCell(overall, f), len(rows),
		counts[style.StatusComplete], counts[style.StatusPending],
		counts[style.StatusDrifted], counts[style.StatusBroken])
	return err
}

func statusCell(s style.Status, f Format) string {
	text := style.StatusSymbol(s) + " " + string(s)
	if f != FormatTerminal {
		return text
	}
	return style.StatusStyle(s).Sprint(text)
}

// RenderList writes one line per entry: name, src and dst.
func RenderList(w io.Writer, entries []*entry.Entry, f Format) error {
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "<unnamed>"
		}
		line := fmt.Sprintf("[bold]%s[/bold] [path]%s[/path] -> [path]%s[/path]", name, e.Src, e.Dst)
		if e.Broken {
			line += " [error](broken)[/error]"
		} else if !e.Linked {
			line += " [muted](not linked)[/muted]"
		}
		if _, err := fmt.Fprintln(w, Markup(line, f)); err != nil {
			return err
		}
	}
	return nil
}

// Markup applies or strips style tags depending on f.
func Markup(text string, f Format) string {
	if f == FormatTerminal {
		return style.Render(text)
	}
	return style.Strip(text)
}
