// Package report accumulates what a reconciliation run did, per entry
// name, and renders it for people and for commit messages.
package report

import (
	"fmt"
	"strings"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/style"
)

// Kind classifies the file or link event recorded for one name.
type Kind int

const (
	None Kind = iota
	Added
	Removed
	UpdatedPath
	UpdatedLinkName
	UpdatedLink
	NoOp
)

func (k Kind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case UpdatedPath:
		return "updated-path"
	case UpdatedLinkName:
		return "updated-link-name"
	case UpdatedLink:
		return "updated-link"
	case NoOp:
		return "no-op"
	default:
		return "none"
	}
}

func (k Kind) updated() bool {
	return k == UpdatedPath || k == UpdatedLinkName || k == UpdatedLink
}

// Event is the classified outcome for one axis of one name.
type Event struct {
	Kind    Kind
	Message string
}

// Failure is a per-entry error that did not stop the run.
type Failure struct {
	Name string
	Err  error
}

type pair struct {
	added   *entry.Entry
	removed *entry.Entry
}

type item struct {
	file pair
	link pair
}

// Report collects events in the order names are first seen.
type Report struct {
	order    []string
	items    map[string]*item
	failures []Failure
	modified int
}

// New returns an empty Report.
func New() *Report {
	return &Report{items: make(map[string]*item)}
}

func (r *Report) item(name string) *item {
	it, ok := r.items[name]
	if !ok {
		it = &item{}
		r.items[name] = it
		r.order = append(r.order, name)
	}
	return it
}

// AddFile records that e's file was captured into the repository.
func (r *Report) AddFile(e *entry.Entry) { r.item(e.Name).file.added = e }

// RmFile records that e's file was restored out of the repository.
func (r *Report) RmFile(e *entry.Entry) { r.item(e.Name).file.removed = e }

// AddLink records that e's home side symlink was created.
func (r *Report) AddLink(e *entry.Entry) { r.item(e.Name).link.added = e }

// RmLink records that e's home side symlink was removed.
func (r *Report) RmLink(e *entry.Entry) { r.item(e.Name).link.removed = e }

// Fail records a per-entry error.
func (r *Report) Fail(name string, err error) {
	r.failures = append(r.failures, Failure{Name: name, Err: err})
}

// Failures returns the recorded per-entry errors in order.
func (r *Report) Failures() []Failure {
	return append([]Failure(nil), r.failures...)
}

// SetModified records how many other repository paths were modified.
func (r *Report) SetModified(n int) { r.modified = n }

// Names returns every name with at least one recorded event.
func (r *Report) Names() []string {
	return append([]string(nil), r.order...)
}

// FileEvent classifies the file axis for name.
func (r *Report) FileEvent(name string) Event {
	it, ok := r.items[name]
	if !ok {
		return Event{}
	}
	add, rm := it.file.added, it.file.removed
	switch {
	case add != nil && rm != nil:
		switch {
		case add.Dst != rm.Dst:
			return Event{UpdatedPath, fmt.Sprintf("[updated]Updated dotfile path[/updated] %s: %s -> %s", name, rm.Dst, add.Dst)}
		case add.LinkName != rm.LinkName:
			return Event{UpdatedLinkName, fmt.Sprintf("[updated]Updated dotfile link name[/updated] %s: %s -> %s", name, rm.LinkName, add.LinkName)}
		default:
			return Event{Kind: NoOp}
		}
	case add != nil:
		return Event{Added, fmt.Sprintf("[added]Added file[/added] %s: %s -> %s", name, add.Src, add.Dst)}
	case rm != nil:
		return Event{Removed, fmt.Sprintf("[removed]Removed file[/removed] %s: %s -> %s", name, rm.Dst, rm.Src)}
	}
	return Event{}
}

// LinkEvent classifies the link axis for name.
func (r *Report) LinkEvent(name string) Event {
	it, ok := r.items[name]
	if !ok {
		return Event{}
	}
	add, rm := it.link.added, it.link.removed
	switch {
	case add != nil && rm != nil:
		if add.LinkPath() == rm.LinkPath() && add.Dst == rm.Dst {
			return Event{Kind: NoOp}
		}
		return Event{UpdatedLink, fmt.Sprintf("[updated]Updated link[/updated] %s: %s -> %s (was %s -> %s)",
			name, add.LinkPath(), add.Dst, rm.LinkPath(), rm.Dst)}
	case add != nil:
		return Event{Added, fmt.Sprintf("[added]Added link[/added] %s: %s -> %s", name, add.LinkPath(), add.Dst)}
	case rm != nil:
		return Event{Removed, fmt.Sprintf("[removed]Removed link[/removed] %s: %s -> %s", name, rm.LinkPath(), rm.Dst)}
	}
	return Event{}
}

// HasChanges reports whether any name has an event that is not a no-op.
func (r *Report) HasChanges() bool {
	for _, name := range r.order {
		if k := r.FileEvent(name).Kind; k != None && k != NoOp {
			return true
		}
		if k := r.LinkEvent(name).Kind; k != None && k != NoOp {
			return true
		}
	}
	return false
}

// Counts tallies events per axis.
type Counts struct {
	FilesAdded, FilesRemoved, FilesUpdated int
	LinksAdded, LinksRemoved, LinksUpdated int
	Modified                               int
}

// Counts tallies every recorded event.
func (r *Report) Counts() Counts {
	c := Counts{Modified: r.modified}
	for _, name := range r.order {
		switch k := r.FileEvent(name).Kind; {
		case k == Added:
			c.FilesAdded++
		case k == Removed:
			c.FilesRemoved++
		case k.updated():
			c.FilesUpdated++
		}
		switch k := r.LinkEvent(name).Kind; {
		case k == Added:
			c.LinksAdded++
		case k == Removed:
			c.LinksRemoved++
		case k.updated():
			c.LinksUpdated++
		}
	}
	return c
}

// Markup renders the report with style tags left in.
func (r *Report) Markup() string {
	var b strings.Builder

	if !r.HasChanges() {
		b.WriteString("[muted]No changes detected[/muted]\n")
	} else {
		for _, name := range r.order {
			for _, ev := range []Event{r.FileEvent(name), r.LinkEvent(name)} {
				if ev.Message != "" {
					b.WriteString(ev.Message)
					b.WriteString("\n")
				}
			}
		}
	}

	for _, f := range r.failures {
		fmt.Fprintf(&b, "[error]Error[/error] %s: %v\n", f.Name, f.Err)
	}

	if r.HasChanges() {
		c := r.Counts()
		b.WriteString("\n[bold]Summary[/bold]\n")
		fmt.Fprintf(&b, "  Files: %d added, %d removed, %d updated\n", c.FilesAdded, c.FilesRemoved, c.FilesUpdated)
		fmt.Fprintf(&b, "  Links: %d added, %d removed, %d updated\n", c.LinksAdded, c.LinksRemoved, c.LinksUpdated)
		fmt.Fprintf(&b, "  Other modified files: %d\n", c.Modified)
	}
	return b.String()
}

// Render returns the plain text report.
func (r *Report) Render() string {
	return style.Strip(r.Markup())
}

// RenderStyled returns the report with terminal styling applied.
func (r *Report) RenderStyled() string {
	return style.Render(r.Markup())
}

// CommitMessage is the one-line counter summary used for commits.
func (r *Report) CommitMessage() string {
	c := r.Counts()
	return fmt.Sprintf("Links (A%d|R%d|U%d) | Files (A%d|R%d|U%d|M%d)",
		c.LinksAdded, c.LinksRemoved, c.LinksUpdated,
		c.FilesAdded, c.FilesRemoved, c.FilesUpdated, c.Modified)
}
