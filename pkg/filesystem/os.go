package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dotyhq/doty/pkg/types"
)

// disk is the FS every real run works against: home, repository and
// manifest all live on the local disk.
type disk struct{}

var _ types.FS = disk{}

// NewOS returns the local disk as a types.FS. Writes replace files
// atomically, so an interrupted run never leaves a half-written manifest.
func NewOS() types.FS {
	return disk{}
}

func (disk) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }
func (disk) Lstat(name string) (fs.FileInfo, error) { return os.Lstat(name) }
func (disk) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

// WriteFile writes data to a sibling temporary file and renames it over
// name. The rename is atomic on the same filesystem.
func (disk) WriteFile(name string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return err
	}
	return os.Rename(tmpName, name)
}

func (disk) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (disk) MkdirAll(path string, perm fs.FileMode) error { return os.MkdirAll(path, perm) }
func (disk) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }

func (disk) Symlink(target, link string) error { return os.Symlink(target, link) }
func (disk) Readlink(link string) (string, error) { return os.Readlink(link) }
func (disk) Remove(name string) error { return os.Remove(name) }
func (disk) RemoveAll(path string) error { return os.RemoveAll(path) }
