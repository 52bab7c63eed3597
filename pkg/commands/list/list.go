// Package list implements `doty list`.
package list

import (
	"github.com/dotyhq/doty/pkg/commands/internal"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/logging"
	"github.com/dotyhq/doty/pkg/types"
)

// Options defines the options for the List command.
type Options struct {
	Config  *config.Config
	FS      types.FS
	Pattern string
}

// List returns the manifest entries matching the pattern, in manifest order.
func List(opts Options) ([]*entry.Entry, error) {
	log := logging.GetLogger("commands.list")
	log.Debug().Str("pattern", opts.Pattern).Msg("Executing command")

	s := internal.NewSession(opts.Config, opts.FS, log)
	_, entries, err := s.Entries()
	if err != nil {
		return nil, err
	}
	entries, err = internal.Filter(entries, opts.Pattern, opts.Config.Repo)
	if err != nil {
		return nil, err
	}

	log.Info().Int("entries", len(entries)).Msg("Command finished")
	return entries, nil
}
