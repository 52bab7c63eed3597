// pkg/filesystem/overlay_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir) as the read-only base
// PURPOSE: Verify the overlay simulates mutations without touching disk

package filesystem_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverlayMoveAndLink(t *testing.T) {
	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	repo := filepath.Join(dir, "repo")
	require.NoError(t, os.MkdirAll(home, 0755))
	require.NoError(t, os.MkdirAll(repo, 0755))
	src := filepath.Join(home, ".bashrc")
	dst := filepath.Join(repo, "shell", ".bashrc")
	require.NoError(t, os.WriteFile(src, []byte("export A=1"), 0644))

	ov := filesystem.NewOverlay(filesystem.NewOS())

	require.NoError(t, filesystem.Move(ov, src, dst))
	require.NoError(t, filesystem.ReplaceSymlink(ov, dst, src))

	// the overlay sees the result
	assert.True(t, filesystem.IsRegular(ov, dst))
	assert.True(t, filesystem.PointsTo(ov, src, dst))
	data, err := ov.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "export A=1", string(data))
	data, err = ov.ReadFile(src)
	require.NoError(t, err, "reading through the simulated symlink")
	assert.Equal(t, "export A=1", string(data))

	// the disk does not
	info, err := os.Lstat(src)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.NoDirExists(t, filepath.Join(repo, "shell"))

	var kinds []string
	for _, op := range ov.Ops() {
		kinds = append(kinds, op.Kind)
	}
	assert.Equal(t, []string{"mkdir", "rename", "symlink"}, kinds)
}

func TestOverlayRemoveAndReadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "a"), nil, 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b"), nil, 0644))

	ov := filesystem.NewOverlay(filesystem.NewOS())

	err := ov.Remove(filepath.Join(dir, "sub"))
	require.Error(t, err, "non-empty directories cannot be removed")

	require.NoError(t, ov.Remove(filepath.Join(dir, "sub", "a")))
	entries, err := ov.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, filesystem.PruneEmptyDirs(ov, filepath.Join(dir, "sub"), dir))
	_, err = ov.Lstat(filepath.Join(dir, "sub"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.FileExists(t, filepath.Join(dir, "sub", "a"), "base is untouched")

	require.NoError(t, ov.WriteFile(filepath.Join(dir, "c"), []byte("new"), 0644))
	entries, err = ov.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"b", "c"}, names)
	assert.NoFileExists(t, filepath.Join(dir, "c"))
}

func TestOverlaySymlinkCollision(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "taken")
	require.NoError(t, os.WriteFile(existing, nil, 0644))

	ov := filesystem.NewOverlay(filesystem.NewOS())
	err := ov.Symlink("/anywhere", existing)
	assert.True(t, errors.Is(err, fs.ErrExist))

	err = ov.Symlink("/anywhere", filepath.Join(dir, "missing", "link"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestOverlayRenameIntoMissingParent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "f")
	require.NoError(t, os.WriteFile(src, nil, 0644))

	ov := filesystem.NewOverlay(filesystem.NewOS())
	err := ov.Rename(src, filepath.Join(dir, "x", "f"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, filesystem.Exists(ov, src))
}
