// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem
// PURPOSE: Test the manifest editing and read-only commands

package commands_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/style"
	"github.com/dotyhq/doty/pkg/testutil"
)

func names(entries []*entry.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

func TestAddAndRemove(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHomeFiles(testutil.FileTree{".bashrc": "x", ".vimrc": "y"})

	e, err := commands.Add(commands.AddOptions{Config: env.Config, Raw: entry.Raw{Name: ".bashrc"}})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(env.DotfilesRoot, ".bashrc"), e.Dst)

	no := false
	_, err = commands.Add(commands.AddOptions{Config: env.Config, Raw: entry.Raw{
		Src:    "~/.vimrc",
		Dst:    "vim/.vimrc",
		Linked: &no,
		Notes:  "editor settings",
	}})
	require.NoError(t, err)

	list, err := commands.List(commands.ListOptions{Config: env.Config})
	require.NoError(t, err)
	assert.Equal(t, []string{".bashrc", ".vimrc"}, names(list))
	assert.Contains(t, env.ReadManifest(), "dst: vim/.vimrc")

	t.Run("duplicate", func(t *testing.T) {
		_, err := commands.Add(commands.AddOptions{Config: env.Config, Raw: entry.Raw{Name: ".bashrc"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateName))
	})

	t.Run("unresolvable", func(t *testing.T) {
		_, err := commands.Add(commands.AddOptions{Config: env.Config, Raw: entry.Raw{Name: ".ghost"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrBrokenEntry))
		_, err = commands.Add(commands.AddOptions{Config: env.Config, Raw: entry.Raw{Name: ".bashrc2", Dst: "/etc/bashrc"}})
		assert.True(t, errors.IsErrorCode(err, errors.ErrOutOfBounds))

		list, err := commands.List(commands.ListOptions{Config: env.Config})
		require.NoError(t, err)
		assert.Len(t, list, 2, "rejected entries are not written")
	})

	raw, err := commands.Remove(commands.RemoveOptions{Config: env.Config, Name: ".bashrc"})
	require.NoError(t, err)
	assert.Equal(t, ".bashrc", raw.Name)

	list, err = commands.List(commands.ListOptions{Config: env.Config})
	require.NoError(t, err)
	assert.Equal(t, []string{".vimrc"}, names(list))

	_, err = commands.Remove(commands.RemoveOptions{Config: env.Config, Name: ".bashrc"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestListAndStatusFilter(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHomeFiles(testutil.FileTree{".bashrc": "x", ".zshrc": "y"})
	env.WithRepoFiles(testutil.FileTree{"vim/.vimrc": "z"})
	env.WriteManifest(`
- .bashrc
- .zshrc
- {name: .vimrc, dst: vim/.vimrc}
`)

	list, err := commands.List(commands.ListOptions{Config: env.Config, Pattern: ".*sh*"})
	require.NoError(t, err)
	assert.Equal(t, []string{".bashrc", ".zshrc"}, names(list))

	list, err = commands.List(commands.ListOptions{Config: env.Config, Pattern: "vim/**"})
	require.NoError(t, err)
	assert.Equal(t, []string{".vimrc"}, names(list))

	_, err = commands.List(commands.ListOptions{Config: env.Config, Pattern: "[unclosed"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	rows, err := commands.Status(commands.StatusOptions{Config: env.Config})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, style.StatusPending, rows[0].Status)
	assert.Equal(t, style.StatusPending, rows[1].Status)
	assert.Equal(t, style.StatusDrifted, rows[2].Status)
}

func TestShow(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.WithHomeFiles(testutil.FileTree{".bashrc": "x"})
	env.WriteManifest(`[{name: .bashrc, notes: "Login shell config"}]`)

	e, err := commands.Show(commands.ShowOptions{Config: env.Config, Name: ".bashrc"})
	require.NoError(t, err)
	assert.Equal(t, "Login shell config", e.Notes)

	_, err = commands.Show(commands.ShowOptions{Config: env.Config, Name: ".zshrc"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}
