// Package show implements `doty show`.
package show

import (
	"github.com/dotyhq/doty/pkg/commands/internal"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/logging"
	"github.com/dotyhq/doty/pkg/types"
)

// Options defines the options for the Show command.
type Options struct {
	Config *config.Config
	FS     types.FS
	Name   string
}

// Show returns the entry named opts.Name.
func Show(opts Options) (*entry.Entry, error) {
	log := logging.GetLogger("commands.show")
	log.Debug().Str("name", opts.Name).Msg("Executing command")

	s := internal.NewSession(opts.Config, opts.FS, log)
	_, entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	return internal.Find(entries, opts.Name)
}
