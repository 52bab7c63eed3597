// Package remove implements `doty remove`.
package remove

import (
	"github.com/dotyhq/doty/pkg/commands/internal"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/logging"
	"github.com/dotyhq/doty/pkg/types"
)

// Options defines the options for the Remove command.
type Options struct {
	Config *config.Config
	FS     types.FS
	Name   string
}

// Remove drops the named entry from the manifest and returns its record.
// Nothing on disk changes until the next update undoes the entry.
func Remove(opts Options) (entry.Raw, error) {
	log := logging.GetLogger("commands.remove")
	log.Debug().Str("name", opts.Name).Msg("Executing command")

	s := internal.NewSession(opts.Config, opts.FS, log)
	m, err := s.ReadManifest()
	if err != nil {
		return entry.Raw{}, err
	}
	raw, err := m.Remove(opts.Name)
	if err != nil {
		return entry.Raw{}, err
	}
	if err := s.WriteManifest(m); err != nil {
		return entry.Raw{}, err
	}

	log.Info().Str("name", opts.Name).Msg("Removed entry from manifest")
	return raw, nil
}
