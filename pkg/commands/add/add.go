// Package add implements `doty add`.
package add

import (
	"github.com/dotyhq/doty/pkg/commands/internal"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/logging"
	"github.com/dotyhq/doty/pkg/types"
)

// Options defines the options for the Add command.
type Options struct {
	Config *config.Config
	FS     types.FS
	Raw    entry.Raw
}

// Add appends an entry to the manifest without reconciling. The entry
// must resolve: a name is derivable, its dst is inside the repository
// and src or dst exists.
func Add(opts Options) (*entry.Entry, error) {
	log := logging.GetLogger("commands.add")
	log.Debug().Str("name", opts.Raw.DerivedName()).Msg("Executing command")

	s := internal.NewSession(opts.Config, opts.FS, log)
	m, err := s.ReadManifest()
	if err != nil {
		return nil, err
	}
	if err := m.CheckDuplicates(); err != nil {
		return nil, err
	}
	if err := m.Add(opts.Raw); err != nil {
		return nil, err
	}

	e := entry.Build(opts.Raw, s.Env())
	if e.Broken {
		return nil, e.BrokenReason
	}
	if err := s.WriteManifest(m); err != nil {
		return nil, err
	}

	log.Info().Str("name", e.Name).Msg("Added entry to manifest")
	return e, nil
}
