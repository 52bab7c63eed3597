// Package status implements `doty status`.
package status

import (
	"github.com/dotyhq/doty/pkg/commands/internal"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/display"
	"github.com/dotyhq/doty/pkg/logging"
	"github.com/dotyhq/doty/pkg/types"
)

// Options defines the options for the Status command.
type Options struct {
	Config *config.Config
	FS     types.FS

	// Pattern is a doublestar glob matched against entry names and
	// repository relative destinations.
	Pattern string
}

// Status classifies every matching manifest entry against the filesystem.
// It never mutates anything.
func Status(opts Options) ([]display.Row, error) {
	log := logging.GetLogger("commands.status")
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

	rows := display.Rows(entries, s.FS)
	log.Info().Int("entries", len(rows)).Msg("Command finished")
	return rows, nil
}
