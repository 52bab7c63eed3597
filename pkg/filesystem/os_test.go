// pkg/filesystem/os_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: Real filesystem (t.TempDir)
// PURPOSE: Exercise the OS and afero backed FS implementations

package filesystem_test

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fsys := filesystem.NewOS()
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")

	require.NoError(t, fsys.WriteFile(testFile, []byte("hello world"), 0644))

	info, err := fsys.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())

	content, err := fsys.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, "hello world", string(content))

	require.NoError(t, fsys.MkdirAll(filepath.Join(tmpDir, "sub", "dir"), 0755))

	link := filepath.Join(tmpDir, "link")
	require.NoError(t, fsys.Symlink(testFile, link))
	target, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, testFile, target)

	linfo, err := fsys.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, linfo.Mode()&fs.ModeSymlink)

	entries, err := fsys.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	moved := filepath.Join(tmpDir, "sub", "moved.txt")
	require.NoError(t, fsys.Rename(testFile, moved))
	_, err = fsys.Stat(testFile)
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, fsys.Remove(link))
	require.NoError(t, fsys.RemoveAll(filepath.Join(tmpDir, "sub")))
	entries, err = fsys.ReadDir(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewOSWriteFileReplacesAtomically(t *testing.T) {
	fsys := filesystem.NewOS()
	dir := t.TempDir()
	path := filepath.Join(dir, "doty_lock.yml")
	require.NoError(t, os.WriteFile(path, []byte("- .bashrc\n"), 0600))

	require.NoError(t, fsys.WriteFile(path, []byte("- .vimrc\n"), 0644))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "- .vimrc\n", string(content))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temporary file is left behind")
	assert.Equal(t, "doty_lock.yml", entries[0].Name())

	err = fsys.WriteFile(filepath.Join(dir, "missing", "f"), []byte("x"), 0644)
	assert.True(t, os.IsNotExist(err))
}

func TestAferoFSMemMap(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())

	require.NoError(t, fsys.MkdirAll("/repo/.doty_config", 0755))
	require.NoError(t, fsys.WriteFile("/repo/.doty_config/doty_lock.yml", []byte("- .bashrc\n"), 0644))

	data, err := fsys.ReadFile("/repo/.doty_config/doty_lock.yml")
	require.NoError(t, err)
	assert.Equal(t, "- .bashrc\n", string(data))

	_, err = fsys.ReadFile("/repo")
	assert.Error(t, err)

	info, err := fsys.Lstat("/repo/.doty_config/doty_lock.yml")
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())

	entries, err := fsys.ReadDir("/repo")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".doty_config", entries[0].Name())

	assert.Error(t, fsys.Symlink("/repo/a", "/home/a"), "MemMapFs cannot hold symlinks")
	_, err = fsys.Readlink("/home/a")
	assert.Error(t, err)
}

func TestAferoFSOsBackendSymlinks(t *testing.T) {
	dir := t.TempDir()
	fsys := filesystem.NewAferoFS(afero.NewOsFs())

	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, fsys.WriteFile(target, []byte("x"), 0644))
	require.NoError(t, fsys.Symlink(target, link))

	got, err := fsys.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	assert.True(t, filesystem.IsSymlink(fsys, link))
}
