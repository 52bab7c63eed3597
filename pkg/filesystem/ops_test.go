// pkg/filesystem/ops_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Test move, symlink and pruning helpers

package filesystem_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingFS counts Rename attempts and can fail them on demand.
type countingFS struct {
	types.FS
	renames   int
	failAfter int
}

func (c *countingFS) Rename(oldpath, newpath string) error {
	c.renames++
	if c.failAfter > 0 && c.renames >= c.failAfter {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	return c.FS.Rename(oldpath, newpath)
}

func TestMove(t *testing.T) {
	t.Run("creates_missing_parent_and_retries_once", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "home", ".vimrc")
		dst := filepath.Join(dir, "repo", "vim", ".vimrc")
		require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))
		require.NoError(t, os.WriteFile(src, []byte("set nu"), 0644))

		fsys := &countingFS{FS: filesystem.NewOS()}
		require.NoError(t, filesystem.Move(fsys, src, dst))

		assert.Equal(t, 2, fsys.renames)
		assert.NoFileExists(t, src)
		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "set nu", string(data))
	})

	t.Run("second_failure_is_returned", func(t *testing.T) {
		dir := t.TempDir()
		src := filepath.Join(dir, "a")
		require.NoError(t, os.WriteFile(src, []byte("x"), 0644))

		fsys := &countingFS{FS: filesystem.NewOS(), failAfter: 1}
		err := filesystem.Move(fsys, src, filepath.Join(dir, "missing", "b"))

		require.Error(t, err)
		assert.Equal(t, 2, fsys.renames)
		assert.FileExists(t, src)
	})

	t.Run("missing_source_does_not_retry", func(t *testing.T) {
		dir := t.TempDir()
		fsys := &countingFS{FS: filesystem.NewOS()}
		err := filesystem.Move(fsys, filepath.Join(dir, "nope"), filepath.Join(dir, "x", "y"))

		require.Error(t, err)
		assert.True(t, errors.Is(err, fs.ErrNotExist))
		assert.Equal(t, 1, fsys.renames)
		assert.NoDirExists(t, filepath.Join(dir, "x"))
	})
}

func TestSymlinkHelpers(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewOS()
	target := filepath.Join(dir, "target")
	other := filepath.Join(dir, "other")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, nil, 0644))
	require.NoError(t, os.WriteFile(other, nil, 0644))

	assert.False(t, filesystem.Exists(fsys, link))
	require.NoError(t, filesystem.ReplaceSymlink(fsys, other, link))
	assert.True(t, filesystem.PointsTo(fsys, link, other))

	require.NoError(t, filesystem.ReplaceSymlink(fsys, target, link))
	assert.True(t, filesystem.PointsTo(fsys, link, target))
	assert.False(t, filesystem.PointsTo(fsys, link, other))
	assert.True(t, filesystem.IsSymlink(fsys, link))
	assert.False(t, filesystem.IsRegular(fsys, link))
	assert.True(t, filesystem.IsRegular(fsys, target))

	err := filesystem.ReplaceSymlink(fsys, target, other)
	assert.True(t, errors.Is(err, fs.ErrExist), "regular files are never replaced")

	removed, err := filesystem.RemoveSymlink(fsys, other)
	require.NoError(t, err)
	assert.False(t, removed)

	removed, err = filesystem.RemoveSymlink(fsys, link)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.False(t, filesystem.Exists(fsys, link))
}

func TestLinkTargetRelative(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewOS()
	require.NoError(t, os.Symlink("sub/file", filepath.Join(dir, "rel")))

	got, ok := filesystem.LinkTarget(fsys, filepath.Join(dir, "rel"))
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "sub", "file"), got)
}

func TestWithin(t *testing.T) {
	tests := []struct {
		root, path string
		want       bool
	}{
		{"/home/u/dotfiles", "/home/u/dotfiles/.bashrc", true},
		{"/home/u/dotfiles", "/home/u/dotfiles/a/b", true},
		{"/home/u/dotfiles", "/home/u/dotfiles", false},
		{"/home/u/dotfiles", "/home/u/dotfiles-old/x", false},
		{"/home/u/dotfiles", "/etc/passwd", false},
		{"/home/u/dotfiles", "/home/u/dotfiles/../x", false},
		{"/home/u/dotfiles", "/home/u/dotfiles/..x", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filesystem.Within(tt.root, tt.path), "%s in %s", tt.path, tt.root)
	}
}

// resolvedTempDir is t.TempDir with its own symlinks expanded, so paths
// built under it compare equal to resolved ones.
func resolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func TestResolve(t *testing.T) {
	dir := resolvedTempDir(t)
	fsys := filesystem.NewOS()
	realDir := filepath.Join(dir, "real")
	require.NoError(t, os.MkdirAll(realDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(realDir, "f"), []byte("x"), 0644))
	require.NoError(t, os.Symlink("real", filepath.Join(dir, "rel")))
	require.NoError(t, os.Symlink(realDir, filepath.Join(dir, "abs")))
	require.NoError(t, os.Symlink("rel", filepath.Join(dir, "chain")))
	require.NoError(t, os.Symlink("loop", filepath.Join(dir, "loop")))

	tests := []struct {
		name, path, want string
	}{
		{"plain", filepath.Join(realDir, "f"), filepath.Join(realDir, "f")},
		{"relative_link_missing_tail", filepath.Join(dir, "rel", "x", "y"), filepath.Join(realDir, "x", "y")},
		{"absolute_link", filepath.Join(dir, "abs", "f"), filepath.Join(realDir, "f")},
		{"chained_links", filepath.Join(dir, "chain", "f"), filepath.Join(realDir, "f")},
		{"below_a_file", filepath.Join(realDir, "f", "g"), filepath.Join(realDir, "f", "g")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := filesystem.Resolve(fsys, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("loop", func(t *testing.T) {
		_, err := filesystem.Resolve(fsys, filepath.Join(dir, "loop", "f"))
		assert.True(t, errors.Is(err, syscall.ELOOP), "got %v", err)
	})
}

func TestWithinResolved(t *testing.T) {
	dir := resolvedTempDir(t)
	fsys := filesystem.NewOS()
	repo := filepath.Join(dir, "dotfiles")
	elsewhere := filepath.Join(dir, "elsewhere")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, "in"), 0755))
	require.NoError(t, os.MkdirAll(elsewhere, 0755))
	require.NoError(t, os.Symlink(elsewhere, filepath.Join(repo, "out")))
	require.NoError(t, os.Symlink("in", filepath.Join(repo, "alias")))
	require.NoError(t, os.Symlink(repo, filepath.Join(dir, "repo-link")))

	tests := []struct {
		root, path string
		want       bool
	}{
		{repo, filepath.Join(repo, "in", ".bashrc"), true},
		{repo, filepath.Join(repo, "not-yet", "deep", ".bashrc"), true},
		{repo, filepath.Join(repo, "alias", ".bashrc"), true},
		{repo, filepath.Join(repo, "out", ".bashrc"), false},
		{repo, filepath.Join(repo, "out"), false},
		{repo, filepath.Join(elsewhere, ".bashrc"), false},
		{filepath.Join(dir, "repo-link"), filepath.Join(dir, "repo-link", "in", ".bashrc"), true},
		{filepath.Join(dir, "repo-link"), filepath.Join(dir, "repo-link", "out", ".bashrc"), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, filesystem.WithinResolved(fsys, tt.root, tt.path), "%s in %s", tt.path, tt.root)
		if tt.want {
			assert.True(t, filesystem.Within(tt.root, tt.path))
		}
	}
}

func TestPruneEmptyDirs(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewOS()
	deep := filepath.Join(dir, "a", "b", "c")
	keep := filepath.Join(dir, "a", "keep.txt")
	require.NoError(t, os.MkdirAll(deep, 0755))
	require.NoError(t, os.WriteFile(keep, nil, 0644))

	require.NoError(t, filesystem.PruneEmptyDirs(fsys, deep, dir))

	assert.NoDirExists(t, filepath.Join(dir, "a", "b"))
	assert.DirExists(t, filepath.Join(dir, "a"))
	assert.DirExists(t, dir)

	require.NoError(t, os.Remove(keep))
	require.NoError(t, filesystem.PruneEmptyDirs(fsys, filepath.Join(dir, "a"), dir))
	assert.NoDirExists(t, filepath.Join(dir, "a"))
	assert.DirExists(t, dir, "stop directory is never removed")
}
