// Package commands provides the command implementations behind the doty
// CLI. Each command lives in its own subdirectory:
//   - update/ - reconcile the manifest and commit
//   - status/ - classify entries against the filesystem
//   - list/   - list manifest entries
//   - add/    - append an entry to the manifest
//   - remove/ - drop an entry from the manifest
//   - show/   - describe one entry
//
// This file re-exports the command functions for the CLI layer.
package commands

import (
	"github.com/dotyhq/doty/pkg/commands/add"
	"github.com/dotyhq/doty/pkg/commands/list"
	"github.com/dotyhq/doty/pkg/commands/remove"
	"github.com/dotyhq/doty/pkg/commands/show"
	"github.com/dotyhq/doty/pkg/commands/status"
	"github.com/dotyhq/doty/pkg/commands/update"
	"github.com/dotyhq/doty/pkg/display"
	"github.com/dotyhq/doty/pkg/entry"
)

// Update reconciles the manifest and commits the result.
type UpdateOptions = update.Options

// UpdateResult is the outcome of Update.
type UpdateResult = update.Result

func Update(opts UpdateOptions) (*UpdateResult, error) {
	return update.Update(opts)
}

// Status classifies entries against the filesystem.
type StatusOptions = status.Options

func Status(opts StatusOptions) ([]display.Row, error) {
	return status.Status(opts)
}

// List returns manifest entries.
type ListOptions = list.Options

func List(opts ListOptions) ([]*entry.Entry, error) {
	return list.List(opts)
}

// Add appends an entry to the manifest.
type AddOptions = add.Options

func Add(opts AddOptions) (*entry.Entry, error) {
	return add.Add(opts)
}

// Remove drops an entry from the manifest.
type RemoveOptions = remove.Options

func Remove(opts RemoveOptions) (entry.Raw, error) {
	return remove.Remove(opts)
}

// Show describes one entry.
type ShowOptions = show.Options

func Show(opts ShowOptions) (*entry.Entry, error) {
	return show.Show(opts)
}
