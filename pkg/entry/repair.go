package entry

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/filesystem"
)

// LinkChange is what FixLink did.
type LinkChange int

const (
	LinkUnchanged LinkChange = iota
	LinkCreated
	LinkRemoved
)

// Capture moves the live file at src into the repository at dst.
// It refuses when src is missing or a symlink, when dst is taken, and
// when dst lies outside the repository.
func (e *Entry) Capture(env Env) error {
	if e.Broken {
		return e.BrokenReason
	}

	info, err := env.FS.Lstat(e.Src)
	if err != nil || info.Mode()&fs.ModeSymlink != 0 {
		return errors.Newf(errors.ErrBrokenEntry, "File %s - %s does not exist", e.Name, e.Src)
	}
	if !info.Mode().IsRegular() {
		return errors.Newf(errors.ErrBrokenEntry, "File %s - %s is not a regular file", e.Name, e.Src)
	}
	if filesystem.Exists(env.FS, e.Dst) {
		return errors.Newf(errors.ErrCollision, "File %s - %s already exists", e.Name, e.Dst)
	}
	if !env.InRepo(e.Dst) {
		return errors.Newf(errors.ErrOutOfBounds, "File %s - %s is not in the dotfiles directory", e.Name, e.Dst)
	}

	if err := filesystem.Move(env.FS, e.Src, e.Dst); err != nil {
		return errors.Wrapf(err, errors.ErrTransientIO, "File %s - could not move %s to %s", e.Name, e.Src, e.Dst)
	}
	env.Logger.Debug().
		Str("entry", e.Name).
		Str("from", e.Src).
		Str("to", e.Dst).
		Msg("Captured file")
	return nil
}

// FixLink brings the link path in line with Linked. A linked entry gets a
// symlink to dst, replacing any other symlink already there; an unlinked
// entry loses a symlink that points at dst.
func (e *Entry) FixLink(env Env) (LinkChange, error) {
	if e.Broken {
		return LinkUnchanged, e.BrokenReason
	}
	if e.CheckLink(env.FS).OK {
		return LinkUnchanged, nil
	}

	link := e.LinkPath()
	if !e.Linked {
		if _, err := filesystem.RemoveSymlink(env.FS, link); err != nil {
			return LinkUnchanged, errors.Wrapf(err, errors.ErrTransientIO, "File %s - could not remove link %s", e.Name, link)
		}
		env.Logger.Debug().Str("entry", e.Name).Str("link", link).Msg("Removed link")
		return LinkRemoved, nil
	}

	if err := filesystem.ReplaceSymlink(env.FS, e.Dst, link); err != nil {
		if stderrors.Is(err, fs.ErrExist) {
			return LinkUnchanged, errors.Newf(errors.ErrCollision, "File %s - %s already exists", e.Name, link)
		}
		return LinkUnchanged, errors.Wrapf(err, errors.ErrTransientIO, "File %s - could not link %s", e.Name, link)
	}
	env.Logger.Debug().Str("entry", e.Name).Str("link", link).Str("target", e.Dst).Msg("Created link")
	return LinkCreated, nil
}

// Fix repairs the entry until it is complete. It is a no-op for complete
// entries and refuses broken ones. The returned bool is the final
// completeness check.
func (e *Entry) Fix(env Env) (bool, error) {
	if e.Broken {
		return false, e.BrokenReason
	}
	if e.Inspect(env.FS).Complete() {
		return true, nil
	}

	if !e.CheckLocation(env.FS).OK {
		if err := e.Capture(env); err != nil {
			return false, err
		}
	}
	if _, err := e.FixLink(env); err != nil {
		return false, err
	}
	return e.Inspect(env.FS).Complete(), nil
}

// UndoResult is what Undo managed to do before it stopped.
type UndoResult struct {
	LinkRemoved  bool
	FileRestored bool
}

// Undo reverses a committed entry: it removes the symlink pointing at dst,
// moves dst back to src and prunes directories left empty in the
// repository.
func (e *Entry) Undo(env Env) (UndoResult, error) {
	var res UndoResult
	if e.Broken {
		return res, e.BrokenReason
	}

	link := e.LinkPath()
	if e.Linked && filesystem.PointsTo(env.FS, link, e.Dst) {
		if err := env.FS.Remove(link); err != nil {
			return res, errors.Wrapf(err, errors.ErrTransientIO, "File %s - could not remove link %s", e.Name, link)
		}
		res.LinkRemoved = true
	}

	if !filesystem.IsRegular(env.FS, e.Dst) {
		return res, errors.Newf(errors.ErrBrokenEntry, "File %s - %s does not exist", e.Name, e.Dst)
	}
	if filesystem.Exists(env.FS, e.Src) {
		return res, errors.Newf(errors.ErrCollision, "File %s - %s already exists", e.Name, e.Src)
	}

	if err := filesystem.Move(env.FS, e.Dst, e.Src); err != nil {
		return res, errors.Wrapf(err, errors.ErrTransientIO, "File %s - could not move %s back to %s", e.Name, e.Dst, e.Src)
	}
	res.FileRestored = true

	if err := filesystem.PruneEmptyDirs(env.FS, filepath.Dir(e.Dst), env.Repo); err != nil {
		env.Logger.Debug().Err(err).Str("entry", e.Name).Msg("Could not prune empty directories")
	}
	env.Logger.Debug().Str("entry", e.Name).Str("to", e.Src).Msg("Restored file")
	return res, nil
}
