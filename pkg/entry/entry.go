package entry

import (
	"path/filepath"
	"strings"

	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/internal/hashutil"
	"github.com/dotyhq/doty/pkg/types"
	"github.com/rs/zerolog"
)

// Env carries everything entries need from the outside world.
type Env struct {
	Home   string
	Repo   string
	FS     types.FS
	Logger zerolog.Logger
}

// NewEnv returns an Env with a disabled logger.
func NewEnv(home, repo string, fsys types.FS) Env {
	return Env{
		Home:   filepath.Clean(home),
		Repo:   filepath.Clean(repo),
		FS:     fsys,
		Logger: zerolog.Nop(),
	}
}

// InRepo reports whether path lies inside the repository. With a
// filesystem at hand, symlinked directories on the way are followed.
func (env Env) InRepo(path string) bool {
	if env.FS == nil {
		return filesystem.Within(env.Repo, path)
	}
	return filesystem.WithinResolved(env.FS, env.Repo, path)
}

// Entry is a normalized manifest record.
type Entry struct {
	Name     string
	Src      string
	Dst      string
	Notes    string
	Linked   bool
	LinkName string

	// Broken entries are never acted on. BrokenReason says why.
	Broken       bool
	BrokenReason error

	raw  Raw
	hash string
}

// Build normalizes raw against env. Missing src defaults to home/name,
// missing dst to repo/name and missing link_name to name; relative paths
// resolve under home and repo respectively. Build never fails: entries
// that cannot be acted on come back with Broken set.
func Build(raw Raw, env Env) *Entry {
	e := &Entry{
		Notes:  raw.Notes,
		Linked: true,
		raw:    raw,
	}
	if raw.Linked != nil {
		e.Linked = *raw.Linked
	}

	name := raw.DerivedName()
	if name == "" {
		e.Src = strings.TrimSpace(raw.Src)
		e.Dst = strings.TrimSpace(raw.Dst)
		e.markBroken(errors.New(errors.ErrBrokenEntry, "entry has neither a name nor a src to derive one from"))
		return e
	}

	e.Name = name
	e.Src = resolvePath(env.Home, env.Home, raw.Src, name)
	e.Dst = resolvePath(env.Repo, env.Home, raw.Dst, name)
	e.LinkName = baseName(raw.LinkName)
	if e.LinkName == "" {
		e.LinkName = name
	}
	e.rehash()

	switch {
	case !env.InRepo(e.Dst):
		e.markBroken(errors.Newf(errors.ErrOutOfBounds,
			"File %s - %s is not in the dotfiles directory", e.Name, e.Dst))
	case env.FS != nil && !filesystem.Exists(env.FS, e.Src) && !filesystem.Exists(env.FS, e.Dst):
		e.markBroken(errors.Newf(errors.ErrBrokenEntry,
			"File %s - neither %s nor %s exists", e.Name, e.Src, e.Dst))
	}
	return e
}

func resolvePath(base, home, p, name string) string {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return filepath.Join(base, name)
	case p == "~":
		return filepath.Clean(home)
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(home, p[2:])
	case filepath.IsAbs(p):
		return filepath.Clean(p)
	default:
		return filepath.Join(base, p)
	}
}

func (e *Entry) markBroken(reason error) {
	e.Broken = true
	e.BrokenReason = reason
}

func (e *Entry) rehash() {
	// Strings and bools always encode.
	e.hash, _ = hashutil.Digest(map[string]interface{}{
		"name":   e.Name,
		"src":    e.Src,
		"dst":    e.Dst,
		"linked": e.Linked,
	})
}

// Hash is a digest of name, src, dst and linked.
func (e *Entry) Hash() string {
	return e.hash
}

// Equal compares the full normalized record. Notes are not part of an
// entry's identity.
func (e *Entry) Equal(o *Entry) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.hash == o.hash &&
		e.Name == o.Name &&
		e.Src == o.Src &&
		e.Dst == o.Dst &&
		e.Linked == o.Linked &&
		e.LinkName == o.LinkName
}

// LinkPath is where the home side symlink lives: src's directory joined
// with link_name.
func (e *Entry) LinkPath() string {
	return filepath.Join(filepath.Dir(e.Src), e.LinkName)
}

// Downgrade clears Linked after a link could not be created, so that the
// manifest records the state actually reached.
func (e *Entry) Downgrade() {
	e.Linked = false
	e.rehash()
}

// Record returns the form written back to the manifest. Broken entries are
// written exactly as they were read.
func (e *Entry) Record() Raw {
	if e.Broken {
		return e.raw
	}
	linked := e.Linked
	return Raw{
		Name:     e.Name,
		Src:      e.Src,
		Dst:      e.Dst,
		Notes:    e.Notes,
		Linked:   &linked,
		LinkName: e.LinkName,
	}
}

// Source returns the record the entry was built from.
func (e *Entry) Source() Raw {
	return e.raw
}

func (e *Entry) String() string {
	return e.Name
}
