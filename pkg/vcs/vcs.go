// Package vcs is the version control collaborator: it reads the committed
// copy of a file, reports working tree status and commits everything.
package vcs

import (
	stderrors "errors"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dotyhq/doty/pkg/errors"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// StatusFlag is a bitmask of changes to one path. Flags combine, so a
// renamed and modified path carries both bits.
type StatusFlag uint

const (
	StatusNew StatusFlag = 1 << iota
	StatusModified
	StatusDeleted
	StatusRenamed
)

func (f StatusFlag) Has(other StatusFlag) bool {
	return f&other != 0
}

// Status maps slash separated paths, relative to the worktree root, to
// their change flags. Unchanged paths are absent.
type Status map[string]StatusFlag

// Dirty lists changed paths other than the ones in except, sorted.
func (s Status) Dirty(except ...string) []string {
	skip := make(map[string]bool, len(except))
	for _, e := range except {
		skip[e] = true
	}
	var out []string
	for p := range s {
		if !skip[p] {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// IsClean reports whether nothing outside except has changed.
func (s Status) IsClean(except ...string) bool {
	return len(s.Dirty(except...)) == 0
}

// Count returns how many paths carry flag.
func (s Status) Count(flag StatusFlag) int {
	n := 0
	for _, f := range s {
		if f.Has(flag) {
			n++
		}
	}
	return n
}

// Repository is what reconciliation needs from version control.
type Repository interface {
	LastCommitted(path string) ([]byte, error)
	CommitAll(message string) (string, error)
	Status() (Status, error)
	Rel(path string) (string, error)
}

// Author identifies who commits.
type Author struct {
	Name  string
	Email string
}

// Git implements Repository with go-git.
type Git struct {
	repo   *git.Repository
	root   string
	author Author
	now    func() time.Time
}

// Open finds the git repository containing dir.
func Open(dir string, author Author) (*Git, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVCS, "%s is not inside a git repository", dir)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "repository has no worktree")
	}
	return &Git{
		repo:   repo,
		root:   filepath.Clean(wt.Filesystem.Root()),
		author: author,
		now:    time.Now,
	}, nil
}

// Root is the worktree root.
func (g *Git) Root() string {
	return g.root
}

// Rel converts an absolute path to the slash separated form used in Status.
func (g *Git) Rel(path string) (string, error) {
	rel, err := filepath.Rel(g.root, filepath.Clean(path))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrVCS, "%s is outside the repository at %s", path, g.root)
	}
	return filepath.ToSlash(rel), nil
}

// LastCommitted returns the content of path at HEAD. A repository without
// commits, or a path not in HEAD, yields nil.
func (g *Git) LastCommitted(path string) ([]byte, error) {
	rel, err := g.Rel(path)
	if err != nil {
		return nil, err
	}

	head, err := g.repo.Head()
	if err != nil {
		if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrVCS, "failed to resolve HEAD")
	}
	commit, err := g.repo.CommitObject(head.Hash())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "failed to load HEAD commit")
	}
	file, err := commit.File(rel)
	if err != nil {
		if stderrors.Is(err, object.ErrFileNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrVCS, "failed to read %s at HEAD", rel)
	}
	contents, err := file.Contents()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrVCS, "failed to read %s at HEAD", rel)
	}
	return []byte(contents), nil
}

// Status reports every changed path in the worktree and index.
func (g *Git) Status() (Status, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "repository has no worktree")
	}
	st, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrVCS, "failed to read worktree status")
	}

	out := make(Status, len(st))
	for path, fs := range st {
		flags := flagsFor(fs.Staging) | flagsFor(fs.Worktree)
		if flags != 0 {
			out[path] = flags
		}
	}
	return out, nil
}

func flagsFor(code git.StatusCode) StatusFlag {
	switch code {
	case git.Untracked, git.Added, git.Copied:
		return StatusNew
	case git.Modified, git.UpdatedButUnmerged:
		return StatusModified
	case git.Deleted:
		return StatusDeleted
	case git.Renamed:
		return StatusRenamed
	default:
		return 0
	}
}

// CommitAll stages every change, deletions included, and commits with
// message. It returns the new commit hash, or "" when there was nothing
// to commit.
func (g *Git) CommitAll(message string) (string, error) {
	wt, err := g.repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCS, "repository has no worktree")
	}
	st, err := wt.Status()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCS, "failed to read worktree status")
	}
	if st.IsClean() {
		return "", nil
	}

	for path, fs := range st {
		switch {
		case fs.Worktree == git.Deleted:
			if _, err := wt.Remove(path); err != nil {
				return "", errors.Wrapf(err, errors.ErrVCS, "failed to stage removal of %s", path)
			}
		case fs.Worktree != git.Unmodified:
			if _, err := wt.Add(path); err != nil {
				return "", errors.Wrapf(err, errors.ErrVCS, "failed to stage %s", path)
			}
		}
	}

	hash, err := wt.Commit(message, &git.CommitOptions{
		Author: &object.Signature{Name: g.author.Name, Email: g.author.Email, When: g.now()},
	})
	if err != nil {
		return "", errors.Wrap(err, errors.ErrVCS, "failed to commit")
	}
	return hash.String(), nil
}
