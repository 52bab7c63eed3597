// pkg/manifest/manifest_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: afero in-memory filesystem
// PURPOSE: Test manifest parsing, diagnostics, duplicate rejection and writing

package manifest_test

import (
	"strings"
	"testing"

	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/manifest"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestParse(t *testing.T) {
	data := []byte(`
- .bashrc
- name: .vimrc
  Dst: vim/.vimrc
  LINKED: false
  notes: |
    # Vim
    plugins live elsewhere
- src: ~/.config/git/config
  link_name: config
`)
	m, err := manifest.Parse(data)
	require.NoError(t, err)
	assert.Empty(t, m.Diagnostics)
	assert.Equal(t, []entry.Raw{
		{Name: ".bashrc"},
		{Name: ".vimrc", Dst: "vim/.vimrc", Linked: boolPtr(false), Notes: "# Vim\nplugins live elsewhere"},
		{Src: "~/.config/git/config", LinkName: "config"},
	}, m.Records)
}

func TestParseEmpty(t *testing.T) {
	for _, input := range []string{"", "   \n", "# only a comment\n", "~\n"} {
		m, err := manifest.Parse([]byte(input))
		require.NoError(t, err, "%q", input)
		assert.Empty(t, m.Records, "%q", input)
	}
}

func TestParseErrors(t *testing.T) {
	t.Run("not_yaml", func(t *testing.T) {
		_, err := manifest.Parse([]byte("- [unclosed"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})

	t.Run("not_a_sequence", func(t *testing.T) {
		_, err := manifest.Parse([]byte("name: .bashrc\n"))
		assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
	})
}

func TestParseDiagnostics(t *testing.T) {
	data := []byte(`
- .bashrc
- 42
- [nested, list]
- name: .zshrc
  linkd: true
- ""
`)
	m, err := manifest.Parse(data)
	require.NoError(t, err)

	assert.Equal(t, []entry.Raw{{Name: ".bashrc"}, {Name: ".zshrc"}}, m.Records)
	require.Len(t, m.Diagnostics, 4)

	var skipped []int
	for _, d := range m.Diagnostics {
		if d.Skipped {
			skipped = append(skipped, d.Index)
		}
	}
	assert.Equal(t, []int{1, 2, 4}, skipped)
	assert.Contains(t, m.Diagnostics[2].Message, "linkd")
	assert.False(t, m.Diagnostics[2].Skipped)
	assert.Equal(t, 5, m.Diagnostics[2].Line)

	m.Log(zerolog.Nop(), "test")
}

func TestParseRejectsMalformedMappings(t *testing.T) {
	tests := []struct {
		name     string
		element  string
		contains string
	}{
		{name: "linked_as_string", element: `{name: .vimrc, linked: "no"}`, contains: "linked"},
		{name: "name_as_list", element: `{name: [a, b]}`, contains: "name"},
		{name: "notes_as_number", element: `{name: .vimrc, notes: 5}`, contains: "notes"},
		{name: "empty_link_name", element: `{src: ~/.gitconfig, link_name: ""}`, contains: "link_name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("- .bashrc\n- " + tt.element + "\n- .zshrc\n")
			m, err := manifest.Parse(data)
			require.Error(t, err)
			assert.Nil(t, m)
			assert.True(t, errors.IsErrorCode(err, errors.ErrManifestParse))
			assert.Contains(t, err.Error(), "element 1 (line 2)")
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestEntriesRejectsDuplicates(t *testing.T) {
	m, err := manifest.Parse([]byte("- .bashrc\n- src: ~/work/.bashrc\n- .vimrc\n"))
	require.NoError(t, err)

	_, err = m.Entries(entry.NewEnv("/home/u", "/home/u/dotfiles", nil))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateName))
	assert.Contains(t, err.Error(), ".bashrc")
}

func TestEntriesBuildsInOrder(t *testing.T) {
	m, err := manifest.Parse([]byte("- b\n- a\n"))
	require.NoError(t, err)

	entries, err := m.Entries(entry.NewEnv("/home/u", "/home/u/dotfiles", nil))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Name)
	assert.Equal(t, "/home/u/dotfiles/a", entries[1].Dst)
}

func TestAddAndRemove(t *testing.T) {
	m := &manifest.Manifest{}
	require.NoError(t, m.Add(entry.Raw{Name: ".bashrc"}))
	require.NoError(t, m.Add(entry.Raw{Src: "~/.vimrc"}))

	err := m.Add(entry.Raw{Name: ".vimrc"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrDuplicateName))
	assert.True(t, errors.IsErrorCode(m.Add(entry.Raw{}), errors.ErrInvalidInput))

	raw, err := m.Remove(".vimrc")
	require.NoError(t, err)
	assert.Equal(t, "~/.vimrc", raw.Src)
	assert.Equal(t, []entry.Raw{{Name: ".bashrc"}}, m.Records)

	_, err = m.Remove(".vimrc")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestEncode(t *testing.T) {
	records := []entry.Raw{
		{Name: ".bashrc", Src: "/home/u/.bashrc", Dst: "/home/u/dotfiles/.bashrc", Linked: boolPtr(true), LinkName: ".bashrc"},
		{Name: "legacy", Notes: "kept as written"},
	}

	data, err := manifest.Encode(records)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, manifest.Header))
	assert.Contains(t, out, "- name: .bashrc\n  src: /home/u/.bashrc\n  dst: /home/u/dotfiles/.bashrc\n  linked: true\n  link_name: .bashrc\n")

	back, err := manifest.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, records, back.Records)

	empty, err := manifest.Encode(nil)
	require.NoError(t, err)
	parsed, err := manifest.Parse(empty)
	require.NoError(t, err)
	assert.Empty(t, parsed.Records)
}

func TestReadWrite(t *testing.T) {
	fsys := filesystem.NewAferoFS(afero.NewMemMapFs())
	path := "/home/u/dotfiles/" + manifest.DefaultPath

	data, err := manifest.Read(fsys, path)
	require.NoError(t, err)
	assert.Nil(t, data, "a missing manifest reads as empty")

	require.NoError(t, manifest.Write(fsys, path, []byte("- .bashrc\n")))
	data, err = manifest.Read(fsys, path)
	require.NoError(t, err)
	assert.Equal(t, "- .bashrc\n", string(data))
}

func TestPreview(t *testing.T) {
	same, err := manifest.Preview("m.yml", []byte("- a\n"), []byte("- a\n"))
	require.NoError(t, err)
	assert.Empty(t, same)

	diff, err := manifest.Preview("m.yml", []byte("- a\n- b\n"), []byte("- a\n- c\n"))
	require.NoError(t, err)
	assert.Contains(t, diff, "--- m.yml")
	assert.Contains(t, diff, "+++ m.yml (after update)")
	assert.Contains(t, diff, "-- b")
	assert.Contains(t, diff, "+- c")
}
