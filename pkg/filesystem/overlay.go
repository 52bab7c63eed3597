package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dotyhq/doty/pkg/types"
)

var (
	errNotEmpty  = errors.New("directory not empty")
	errNotDir    = errors.New("not a directory")
	errLinkLoop  = errors.New("too many levels of symbolic links")
	errDirRename = errors.New("directory rename is not supported")
)

// Op is one mutation recorded by an Overlay.
type Op struct {
	Kind   string
	Path   string
	Target string
}

func (o Op) String() string {
	if o.Target == "" {
		return fmt.Sprintf("%s %s", o.Kind, o.Path)
	}
	return fmt.Sprintf("%s %s -> %s", o.Kind, o.Path, o.Target)
}

type node struct {
	mode    fs.FileMode
	target  string
	origin  string
	data    []byte
	hasData bool
	size    int64
}

func (n *node) info(path string) fs.FileInfo {
	return &overlayInfo{name: filepath.Base(path), mode: n.mode, size: n.size}
}

// Overlay is a types.FS that reads through to a base filesystem but keeps
// every mutation in memory. Nothing is ever written to the base.
type Overlay struct {
	base    types.FS
	nodes   map[string]*node
	removed map[string]bool
	ops     []Op
}

// NewOverlay wraps base in a copy-on-write layer.
func NewOverlay(base types.FS) *Overlay {
	return &Overlay{
		base:    base,
		nodes:   make(map[string]*node),
		removed: make(map[string]bool),
	}
}

// Ops returns the mutations recorded so far, in order.
func (o *Overlay) Ops() []Op {
	out := make([]Op, len(o.ops))
	copy(out, o.ops)
	return out
}

func (o *Overlay) record(kind, path, target string) {
	o.ops = append(o.ops, Op{Kind: kind, Path: path, Target: target})
}

// masked reports whether path, or one of its ancestors, was removed in
// the overlay and not recreated since.
func (o *Overlay) masked(path string) bool {
	for cur := path; ; {
		if o.removed[cur] {
			return true
		}
		if cur != path {
			if _, ok := o.nodes[cur]; ok {
				return false
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return false
		}
		cur = parent
	}
}

func (o *Overlay) Lstat(name string) (fs.FileInfo, error) {
	p := filepath.Clean(name)
	if n, ok := o.nodes[p]; ok {
		return n.info(p), nil
	}
	if o.masked(p) {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return o.base.Lstat(p)
}

func (o *Overlay) Stat(name string) (fs.FileInfo, error) {
	p, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	return o.Lstat(p)
}

// resolve follows symlinks at the final path element.
func (o *Overlay) resolve(name string) (string, error) {
	p := filepath.Clean(name)
	for i := 0; i < maxLinkHops; i++ {
		info, err := o.Lstat(p)
		if err != nil {
			return "", err
		}
		if info.Mode()&fs.ModeSymlink == 0 {
			return p, nil
		}
		target, err := o.Readlink(p)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(p), target)
		}
		p = filepath.Clean(target)
	}
	return "", &fs.PathError{Op: "stat", Path: name, Err: errLinkLoop}
}

func (o *Overlay) Readlink(name string) (string, error) {
	p := filepath.Clean(name)
	if n, ok := o.nodes[p]; ok {
		if n.mode&fs.ModeSymlink == 0 {
			return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrInvalid}
		}
		return n.target, nil
	}
	if o.masked(p) {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: fs.ErrNotExist}
	}
	return o.base.Readlink(p)
}

func (o *Overlay) ReadFile(name string) ([]byte, error) {
	p, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	if n, ok := o.nodes[p]; ok {
		switch {
		case n.mode.IsDir():
			return nil, &fs.PathError{Op: "read", Path: name, Err: fs.ErrInvalid}
		case n.hasData:
			return append([]byte(nil), n.data...), nil
		default:
			return o.base.ReadFile(n.origin)
		}
	}
	return o.base.ReadFile(p)
}

func (o *Overlay) requireDir(op, path string) error {
	info, err := o.Stat(path)
	if err != nil {
		return &fs.PathError{Op: op, Path: path, Err: fs.ErrNotExist}
	}
	if !info.IsDir() {
		return &fs.PathError{Op: op, Path: path, Err: errNotDir}
	}
	return nil
}

func (o *Overlay) WriteFile(name string, data []byte, perm fs.FileMode) error {
	p := filepath.Clean(name)
	if err := o.requireDir("open", filepath.Dir(p)); err != nil {
		return err
	}
	o.nodes[p] = &node{mode: perm.Perm(), data: append([]byte(nil), data...), hasData: true, size: int64(len(data))}
	delete(o.removed, p)
	o.record("write", p, "")
	return nil
}

func (o *Overlay) MkdirAll(path string, perm fs.FileMode) error {
	p := filepath.Clean(path)
	var missing []string
	for cur := p; ; {
		info, err := o.Stat(cur)
		if err == nil {
			if !info.IsDir() {
				return &fs.PathError{Op: "mkdir", Path: cur, Err: errNotDir}
			}
			break
		}
		missing = append(missing, cur)
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		cur = parent
	}
	for i := len(missing) - 1; i >= 0; i-- {
		o.nodes[missing[i]] = &node{mode: fs.ModeDir | perm.Perm()}
		delete(o.removed, missing[i])
		o.record("mkdir", missing[i], "")
	}
	return nil
}

func (o *Overlay) Symlink(oldname, newname string) error {
	p := filepath.Clean(newname)
	if _, err := o.Lstat(p); err == nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrExist}
	}
	if err := o.requireDir("symlink", filepath.Dir(p)); err != nil {
		return &os.LinkError{Op: "symlink", Old: oldname, New: newname, Err: fs.ErrNotExist}
	}
	o.nodes[p] = &node{mode: fs.ModeSymlink | 0777, target: oldname, size: int64(len(oldname))}
	delete(o.removed, p)
	o.record("symlink", p, oldname)
	return nil
}

func (o *Overlay) Remove(name string) error {
	p := filepath.Clean(name)
	info, err := o.Lstat(p)
	if err != nil {
		return &fs.PathError{Op: "remove", Path: name, Err: fs.ErrNotExist}
	}
	if info.IsDir() {
		entries, err := o.ReadDir(p)
		if err != nil {
			return err
		}
		if len(entries) > 0 {
			return &fs.PathError{Op: "remove", Path: name, Err: errNotEmpty}
		}
	}
	delete(o.nodes, p)
	o.removed[p] = true
	o.record("remove", p, "")
	return nil
}

func (o *Overlay) RemoveAll(path string) error {
	p := filepath.Clean(path)
	prefix := p + string(filepath.Separator)
	for k := range o.nodes {
		if k == p || (len(k) > len(prefix) && k[:len(prefix)] == prefix) {
			delete(o.nodes, k)
		}
	}
	o.removed[p] = true
	o.record("remove", p, "")
	return nil
}

func (o *Overlay) Rename(oldpath, newpath string) error {
	src := filepath.Clean(oldpath)
	dst := filepath.Clean(newpath)

	info, err := o.Lstat(src)
	if err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	if info.IsDir() {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errDirRename}
	}
	if err := o.requireDir("rename", filepath.Dir(dst)); err != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}

	moved, ok := o.nodes[src]
	if !ok {
		moved = &node{mode: info.Mode(), size: info.Size()}
		if info.Mode()&fs.ModeSymlink != 0 {
			target, err := o.base.Readlink(src)
			if err != nil {
				return err
			}
			moved.target = target
		} else {
			moved.origin = src
		}
	}

	o.nodes[dst] = moved
	delete(o.removed, dst)
	delete(o.nodes, src)
	o.removed[src] = true
	o.record("rename", src, dst)
	return nil
}

func (o *Overlay) ReadDir(name string) ([]fs.DirEntry, error) {
	p, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	if err := o.requireDir("readdir", p); err != nil {
		return nil, err
	}

	seen := make(map[string]fs.DirEntry)
	if _, overlaid := o.nodes[p]; !overlaid || !o.masked(p) {
		baseEntries, err := o.base.ReadDir(p)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		for _, e := range baseEntries {
			child := filepath.Join(p, e.Name())
			if o.removed[child] {
				continue
			}
			if _, ok := o.nodes[child]; ok {
				continue
			}
			seen[e.Name()] = e
		}
	}
	for path, n := range o.nodes {
		if filepath.Dir(path) == p && path != p {
			seen[filepath.Base(path)] = fs.FileInfoToDirEntry(n.info(path))
		}
	}

	out := make([]fs.DirEntry, 0, len(seen))
	for _, e := range seen {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

type overlayInfo struct {
	name string
	mode fs.FileMode
	size int64
}

func (i *overlayInfo) Name() string       { return i.name }
func (i *overlayInfo) Size() int64        { return i.size }
func (i *overlayInfo) Mode() fs.FileMode  { return i.mode }
func (i *overlayInfo) ModTime() time.Time { return time.Time{} }
func (i *overlayInfo) IsDir() bool        { return i.mode.IsDir() }
func (i *overlayInfo) Sys() interface{}   { return nil }
