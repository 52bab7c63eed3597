package filesystem

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/dotyhq/doty/pkg/types"
)

// Move renames src to dst. When the first attempt fails because the
// destination's parent is missing, the parent is created and the rename
// is retried exactly once. Moves across devices fall back to copy and
// remove.
func Move(fsys types.FS, src, dst string) error {
	err := fsys.Rename(src, dst)
	if err == nil {
		return nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		if _, serr := fsys.Lstat(src); serr != nil {
			return err
		}
		if merr := fsys.MkdirAll(filepath.Dir(dst), 0755); merr != nil {
			return merr
		}
		err = fsys.Rename(src, dst)
		if err == nil {
			return nil
		}
	}

	if errors.Is(err, syscall.EXDEV) {
		return copyAndRemove(fsys, src, dst)
	}
	return err
}

func copyAndRemove(fsys types.FS, src, dst string) error {
	info, err := fsys.Lstat(src)
	if err != nil {
		return err
	}
	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return err
	}
	return fsys.Remove(src)
}

// Exists reports whether anything, including a dangling symlink, occupies path.
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// IsRegular reports whether path is a regular file and not a symlink.
func IsRegular(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode().IsRegular()
}

// IsSymlink reports whether path is a symlink, dangling or not.
func IsSymlink(fsys types.FS, path string) bool {
	info, err := fsys.Lstat(path)
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

// LinkTarget returns the cleaned, absolute target of the symlink at link.
func LinkTarget(fsys types.FS, link string) (string, bool) {
	if !IsSymlink(fsys, link) {
		return "", false
	}
	target, err := fsys.Readlink(link)
	if err != nil {
		return "", false
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(link), target)
	}
	return filepath.Clean(target), true
}

// PointsTo reports whether link is a symlink whose target is exactly target.
func PointsTo(fsys types.FS, link, target string) bool {
	got, ok := LinkTarget(fsys, link)
	return ok && got == filepath.Clean(target)
}

// ReplaceSymlink creates link pointing at target, removing an existing
// symlink first. Anything else at link is left alone and reported as
// fs.ErrExist.
func ReplaceSymlink(fsys types.FS, target, link string) error {
	info, err := fsys.Lstat(link)
	if err == nil {
		if info.Mode()&fs.ModeSymlink == 0 {
			return &fs.PathError{Op: "symlink", Path: link, Err: fs.ErrExist}
		}
		if err := fsys.Remove(link); err != nil {
			return err
		}
	}
	if err := fsys.MkdirAll(filepath.Dir(link), 0755); err != nil {
		return err
	}
	return fsys.Symlink(target, link)
}

// RemoveSymlink deletes link if it is a symlink and reports whether it did.
func RemoveSymlink(fsys types.FS, link string) (bool, error) {
	if !IsSymlink(fsys, link) {
		return false, nil
	}
	if err := fsys.Remove(link); err != nil {
		return false, err
	}
	return true, nil
}

// Within reports whether path lies strictly below root.
func Within(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." || filepath.IsAbs(rel) {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// maxLinkHops bounds symlink expansion in Resolve, mirroring the kernel's
// ELOOP limit.
const maxLinkHops = 40

// Resolve expands every symlink in the existing prefix of the absolute
// path. Components below the deepest existing ancestor are kept as
// written, so a destination that does not exist yet resolves through the
// directories that will hold it.
func Resolve(fsys types.FS, path string) (string, error) {
	path = filepath.Clean(path)
	for hops := 0; ; hops++ {
		if hops > maxLinkHops {
			return "", &fs.PathError{Op: "resolve", Path: path, Err: syscall.ELOOP}
		}
		next, done, err := resolveStep(fsys, path)
		if err != nil {
			return "", err
		}
		if done {
			return next, nil
		}
		path = next
	}
}

// resolveStep walks path from the root up to the first symlink and
// returns the path rewritten through that link. done is set once the
// existing prefix holds no more symlinks.
func resolveStep(fsys types.FS, path string) (string, bool, error) {
	vol := filepath.VolumeName(path)
	sep := string(filepath.Separator)
	parts := strings.Split(strings.TrimPrefix(path[len(vol):], sep), sep)
	resolved := vol + sep

	for i, part := range parts {
		if part == "" {
			continue
		}
		next := filepath.Join(resolved, part)
		info, err := fsys.Lstat(next)
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return filepath.Join(append([]string{resolved}, parts[i:]...)...), true, nil
		}
		if err != nil {
			return "", false, err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			resolved = next
			continue
		}

		target, err := fsys.Readlink(next)
		if err != nil {
			return "", false, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(resolved, target)
		}
		return filepath.Join(append([]string{target}, parts[i+1:]...)...), false, nil
	}
	return resolved, true, nil
}

// WithinResolved is Within after Resolve has expanded the symlinks in
// both root and path. A symlinked directory inside root that points
// elsewhere therefore does not count as inside root. Resolution errors
// count as outside.
func WithinResolved(fsys types.FS, root, path string) bool {
	if !Within(root, path) {
		return false
	}
	r, err := Resolve(fsys, root)
	if err != nil {
		return false
	}
	p, err := Resolve(fsys, path)
	if err != nil {
		return false
	}
	return Within(r, p)
}

// PruneEmptyDirs removes dir and then each parent while they are empty,
// stopping at stop, which is never removed.
func PruneEmptyDirs(fsys types.FS, dir, stop string) error {
	for cur := filepath.Clean(dir); Within(stop, cur); cur = filepath.Dir(cur) {
		entries, err := fsys.ReadDir(cur)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return err
		}
		if len(entries) > 0 {
			return nil
		}
		if err := fsys.Remove(cur); err != nil {
			return err
		}
	}
	return nil
}
