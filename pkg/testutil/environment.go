// pkg/testutil/environment.go
// DEPENDENCIES: go-git
// PURPOSE: Orchestrate isolated doty environments for tests

package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/manifest"
	"github.com/dotyhq/doty/pkg/types"
	"github.com/dotyhq/doty/pkg/vcs"
)

// Author commits test fixtures and doty's own commits.
var Author = vcs.Author{Name: "doty", Email: "doty@email.com"}

// FileTree maps relative paths to file contents.
type FileTree map[string]string

// TestEnvironment is a temp home directory plus a dotfiles repository
// that is a real git repository.
type TestEnvironment struct {
	HomeDir      string
	DotfilesRoot string

	Config *config.Config
	FS     types.FS
	Git    *git.Repository

	t *testing.T
}

// NewTestEnvironment creates the directories, initializes the repository
// and points HOME and the XDG directories into the temp tree.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	root := t.TempDir()

	env := &TestEnvironment{
		HomeDir:      filepath.Join(root, "home"),
		DotfilesRoot: filepath.Join(root, "home", "dotfiles"),
		FS:           filesystem.NewOS(),
		t:            t,
	}
	require.NoError(t, os.MkdirAll(env.DotfilesRoot, 0755))

	repo, err := git.PlainInit(env.DotfilesRoot, false)
	require.NoError(t, err)
	env.Git = repo

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(root, "xdg", "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(root, "xdg", "state"))
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	env.Config = &config.Config{
		Home:     env.HomeDir,
		Repo:     env.DotfilesRoot,
		Manifest: manifest.DefaultPath,
		Commit:   true,
		Color:    config.ColorNever,
		LogFile:  filepath.Join(root, "xdg", "state", "doty", "doty.log"),
	}
	return env
}

// Env is the entry environment for this test environment.
func (env *TestEnvironment) Env() entry.Env {
	return entry.NewEnv(env.HomeDir, env.DotfilesRoot, env.FS)
}

// ManifestPath is the absolute manifest location.
func (env *TestEnvironment) ManifestPath() string {
	return env.Config.ManifestPath()
}

func (env *TestEnvironment) write(base string, tree FileTree) {
	env.t.Helper()
	for rel, content := range tree {
		path := filepath.Join(base, rel)
		require.NoError(env.t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(env.t, os.WriteFile(path, []byte(content), 0644))
	}
}

// WithHomeFiles writes tree under the home directory.
func (env *TestEnvironment) WithHomeFiles(tree FileTree) {
	env.t.Helper()
	env.write(env.HomeDir, tree)
}

// WithRepoFiles writes tree under the dotfiles repository.
func (env *TestEnvironment) WithRepoFiles(tree FileTree) {
	env.t.Helper()
	env.write(env.DotfilesRoot, tree)
}

// WriteManifest replaces the manifest with content.
func (env *TestEnvironment) WriteManifest(content string) {
	env.t.Helper()
	env.write(env.DotfilesRoot, FileTree{env.Config.Manifest: content})
}

// ReadManifest returns the manifest on disk.
func (env *TestEnvironment) ReadManifest() string {
	env.t.Helper()
	data, err := os.ReadFile(env.ManifestPath())
	require.NoError(env.t, err)
	return string(data)
}

// CommitAll stages everything in the repository and commits it, so the
// worktree is clean.
func (env *TestEnvironment) CommitAll(message string) string {
	env.t.Helper()
	wt, err := env.Git.Worktree()
	require.NoError(env.t, err)
	require.NoError(env.t, wt.AddWithOptions(&git.AddOptions{All: true}))
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            &object.Signature{Name: Author.Name, Email: Author.Email, When: time.Now()},
		AllowEmptyCommits: true,
	})
	require.NoError(env.t, err)
	return hash.String()
}

// HeadMessage returns the message of the commit at HEAD.
func (env *TestEnvironment) HeadMessage() string {
	env.t.Helper()
	head, err := env.Git.Head()
	require.NoError(env.t, err)
	commit, err := env.Git.CommitObject(head.Hash())
	require.NoError(env.t, err)
	return commit.Message
}

// Repository opens the dotfiles repository through pkg/vcs.
func (env *TestEnvironment) Repository() *vcs.Git {
	env.t.Helper()
	g, err := vcs.Open(env.DotfilesRoot, Author)
	require.NoError(env.t, err)
	return g
}
