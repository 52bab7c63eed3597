// Package internal holds the manifest plumbing shared by doty commands.
package internal

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"

	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/manifest"
	"github.com/dotyhq/doty/pkg/types"
)

// Session is the configuration and collaborators a command runs with.
type Session struct {
	Config *config.Config
	FS     types.FS
	Logger zerolog.Logger
}

// NewSession fills in the real filesystem when fsys is nil.
func NewSession(cfg *config.Config, fsys types.FS, logger zerolog.Logger) Session {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	return Session{Config: cfg, FS: fsys, Logger: logger}
}

// Env is the entry environment for the session.
func (s Session) Env() entry.Env {
	env := entry.NewEnv(s.Config.Home, s.Config.Repo, s.FS)
	env.Logger = s.Logger
	return env
}

// ReadManifest parses the manifest on disk. A missing file is an empty
// manifest. Element diagnostics are logged as warnings.
func (s Session) ReadManifest() (*manifest.Manifest, error) {
	path := s.Config.ManifestPath()
	data, err := manifest.Read(s.FS, path)
	if err != nil {
		return nil, err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestParse, "failed to parse %s", path)
	}
	m.Log(s.Logger, path)
	return m, nil
}

// Entries reads the manifest and builds every entry.
func (s Session) Entries() (*manifest.Manifest, []*entry.Entry, error) {
	m, err := s.ReadManifest()
	if err != nil {
		return nil, nil, err
	}
	entries, err := m.Entries(s.Env())
	if err != nil {
		return nil, nil, err
	}
	return m, entries, nil
}

// WriteManifest encodes and stores m's records.
func (s Session) WriteManifest(m *manifest.Manifest) error {
	data, err := manifest.Encode(m.Records)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	if err := manifest.Write(s.FS, s.Config.ManifestPath(), data); err != nil {
		return errors.Wrap(err, errors.ErrTransientIO, "failed to write manifest")
	}
	return nil
}

// Find returns the entry named name.
func Find(entries []*entry.Entry, name string) (*entry.Entry, error) {
	for _, e := range entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, errors.Newf(errors.ErrNotFound, "manifest has no entry named %s", name)
}

// Filter keeps entries whose name, or dst relative to repo, matches the
// doublestar pattern. An empty pattern keeps everything.
func Filter(entries []*entry.Entry, pattern, repo string) ([]*entry.Entry, error) {
	if pattern == "" {
		return entries, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid pattern %q", pattern)
	}

	var out []*entry.Entry
	for _, e := range entries {
		if ok, _ := doublestar.Match(pattern, e.Name); ok {
			out = append(out, e)
			continue
		}
		rel, err := filepath.Rel(repo, e.Dst)
		if err != nil {
			continue
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			out = append(out, e)
		}
	}
	return out, nil
}
