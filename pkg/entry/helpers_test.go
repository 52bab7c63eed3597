package entry_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/stretchr/testify/require"
)

type sandbox struct {
	t    *testing.T
	home string
	repo string
	env  entry.Env
}

func newSandbox(t *testing.T) *sandbox {
	t.Helper()
	dir := t.TempDir()
	s := &sandbox{
		t:    t,
		home: filepath.Join(dir, "home"),
		repo: filepath.Join(dir, "dotfiles"),
	}
	require.NoError(t, os.MkdirAll(s.home, 0755))
	require.NoError(t, os.MkdirAll(s.repo, 0755))
	s.env = entry.NewEnv(s.home, s.repo, filesystem.NewOS())
	return s
}

func (s *sandbox) write(path, content string) string {
	s.t.Helper()
	require.NoError(s.t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(s.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (s *sandbox) writeHome(rel, content string) string {
	return s.write(filepath.Join(s.home, rel), content)
}

func (s *sandbox) writeRepo(rel, content string) string {
	return s.write(filepath.Join(s.repo, rel), content)
}

func (s *sandbox) build(raw entry.Raw) *entry.Entry {
	return entry.Build(raw, s.env)
}

func boolPtr(b bool) *bool { return &b }
