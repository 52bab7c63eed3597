package entry

import (
	"fmt"

	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/types"
)

// Check is the result of a single validation.
type Check struct {
	OK     bool
	Reason string
}

// Valid is the passing Check.
var Valid = Check{OK: true}

// Invalid returns a failing Check with a formatted reason.
func Invalid(format string, args ...interface{}) Check {
	return Check{Reason: fmt.Sprintf(format, args...)}
}

// State is a snapshot of an entry against the filesystem.
type State struct {
	Broken   bool
	Location Check
	Link     Check
}

// Complete reports whether nothing is left to do for the entry.
func (s State) Complete() bool {
	return !s.Broken && s.Location.OK && s.Link.OK
}

// CheckLocation passes when dst is an existing regular file.
func (e *Entry) CheckLocation(fsys types.FS) Check {
	info, err := fsys.Lstat(e.Dst)
	if err != nil {
		return Invalid("%s does not exist", e.Dst)
	}
	if !info.Mode().IsRegular() {
		return Invalid("%s is not a regular file", e.Dst)
	}
	return Valid
}

// CheckLink passes for linked entries when the link path is a symlink to
// exactly dst, and for unlinked entries when it is not.
func (e *Entry) CheckLink(fsys types.FS) Check {
	link := e.LinkPath()
	matching := filesystem.PointsTo(fsys, link, e.Dst)

	if !e.Linked {
		if matching {
			return Invalid("%s still links to %s", link, e.Dst)
		}
		return Valid
	}

	switch {
	case matching:
		return Valid
	case filesystem.IsSymlink(fsys, link):
		target, _ := filesystem.LinkTarget(fsys, link)
		return Invalid("%s links to %s instead of %s", link, target, e.Dst)
	case filesystem.Exists(fsys, link):
		return Invalid("%s is occupied by a file", link)
	default:
		return Invalid("%s is missing", link)
	}
}

// Inspect runs every check.
func (e *Entry) Inspect(fsys types.FS) State {
	if e.Broken {
		return State{Broken: true, Location: Invalid("broken"), Link: Invalid("broken")}
	}
	return State{
		Location: e.CheckLocation(fsys),
		Link:     e.CheckLink(fsys),
	}
}
