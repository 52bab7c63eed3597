// Package reconcile applies the difference between two manifests to the
// filesystem.
//
// A run has four strict phases:
//
//  1. entries dropped from the manifest are undone
//  2. new, changed and drifted entries are captured and linked
//  3. links are repaired across the whole current entry set
//  4. the achieved state is written back to the manifest
//
// Per-entry failures are recorded on the report and never stop the run.
// A dry run executes the same code against an in-memory overlay of the
// filesystem, so its report matches what a real run would print.
package reconcile

import (
	"bytes"

	"github.com/rs/zerolog"

	"github.com/dotyhq/doty/pkg/diff"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/filesystem"
	"github.com/dotyhq/doty/pkg/manifest"
	"github.com/dotyhq/doty/pkg/report"
)

// Options configures a run.
type Options struct {
	Env          entry.Env
	Logger       zerolog.Logger
	ManifestPath string
	DryRun       bool
}

// Result is the outcome of a run.
type Result struct {
	Report *report.Report

	// Entries is the current entry set in the state the run reached.
	Entries []*entry.Entry

	// Manifest is what was written, Previous what was on disk before.
	Manifest []byte
	Previous []byte

	// ManifestChanged is set when the written manifest differs from the
	// previous one. Preview is the unified diff between the two.
	ManifestChanged bool
	Preview         string

	// Ops lists the mutations a dry run would have made.
	Ops []filesystem.Op
}

// Run reconciles current against prior.
func Run(opts Options, current, prior []*entry.Entry) (*Result, error) {
	env := opts.Env
	env.Logger = opts.Logger

	var overlay *filesystem.Overlay
	if opts.DryRun {
		overlay = filesystem.NewOverlay(env.FS)
		env.FS = overlay
	}

	logger := opts.Logger.With().Bool("dry_run", opts.DryRun).Logger()
	rep := report.New()

	newOrChanged, removed := diff.Entries(current, prior)
	queued := diff.Drifted(env.FS, current, newOrChanged)
	logger.Info().
		Int("current", len(current)).
		Int("prior", len(prior)).
		Int("removed", len(removed)).
		Int("changed", len(newOrChanged)).
		Int("drifted", len(queued)-len(newOrChanged)).
		Msg("Reconciling manifest")

	undoRemoved(env, logger, rep, removed)
	materialize(env, logger, rep, queued)
	sweepLinks(env, logger, rep, current)

	res, err := writeManifest(env, logger, opts.ManifestPath, current)
	if err != nil {
		return nil, err
	}
	res.Report = rep
	res.Entries = current
	if overlay != nil {
		res.Ops = overlay.Ops()
	}
	return res, nil
}

// undoRemoved is phase 1.
func undoRemoved(env entry.Env, logger zerolog.Logger, rep *report.Report, removed []*entry.Entry) {
	for _, e := range removed {
		if e.Broken {
			logger.Debug().Str("entry", e.Name).Msg("Skipping broken removed entry")
			continue
		}
		res, err := e.Undo(env)
		if res.LinkRemoved {
			rep.RmLink(e)
		}
		if res.FileRestored {
			rep.RmFile(e)
		}
		if err != nil {
			logger.Warn().Err(err).Str("entry", e.Name).Msg("Could not undo entry")
			rep.Fail(e.Name, err)
		}
	}
}

// materialize is phase 2.
func materialize(env entry.Env, logger zerolog.Logger, rep *report.Report, queued []*entry.Entry) {
	for _, e := range queued {
		if e.Broken {
			logger.Warn().Err(e.BrokenReason).Str("entry", e.Name).Msg("Skipping broken entry")
			rep.Fail(label(e), e.BrokenReason)
			continue
		}

		state := e.Inspect(env.FS)
		if state.Complete() {
			continue
		}

		// Link-only drift is left to the sweep.
		if state.Location.OK && !filesystem.IsRegular(env.FS, e.Src) {
			continue
		}

		if err := e.Capture(env); err != nil {
			logger.Warn().Err(err).Str("entry", e.Name).Msg("Could not capture file")
			rep.Fail(e.Name, err)
			continue
		}
		rep.AddFile(e)

		if !e.Linked {
			continue
		}
		link := e.LinkPath()
		if filesystem.Exists(env.FS, link) && !filesystem.PointsTo(env.FS, link, e.Dst) {
			logger.Warn().Str("entry", e.Name).Str("link", link).Msg("Link path is occupied, entry will not be linked")
			e.Downgrade()
			continue
		}
		applyLink(env, logger, rep, e)
	}
}

// sweepLinks is phase 3.
func sweepLinks(env entry.Env, logger zerolog.Logger, rep *report.Report, current []*entry.Entry) {
	for _, e := range current {
		if e.Broken || !e.CheckLocation(env.FS).OK {
			continue
		}
		if e.Linked && filesystem.Exists(env.FS, e.LinkPath()) && !filesystem.IsSymlink(env.FS, e.LinkPath()) {
			logger.Debug().Str("entry", e.Name).Str("link", e.LinkPath()).Msg("Link path holds a file, leaving it alone")
			continue
		}
		applyLink(env, logger, rep, e)
	}
}

func applyLink(env entry.Env, logger zerolog.Logger, rep *report.Report, e *entry.Entry) {
	change, err := e.FixLink(env)
	switch {
	case err != nil:
		logger.Warn().Err(err).Str("entry", e.Name).Msg("Could not fix link")
		rep.Fail(e.Name, err)
	case change == entry.LinkCreated:
		rep.AddLink(e)
	case change == entry.LinkRemoved:
		rep.RmLink(e)
	}
}

// writeManifest is phase 4.
func writeManifest(env entry.Env, logger zerolog.Logger, path string, current []*entry.Entry) (*Result, error) {
	previous, err := manifest.Read(env.FS, path)
	if err != nil {
		return nil, err
	}
	data, err := manifest.Encode(manifest.Records(current))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode manifest")
	}
	if err := manifest.Write(env.FS, path, data); err != nil {
		return nil, errors.Wrap(err, errors.ErrTransientIO, "failed to write manifest")
	}

	res := &Result{
		Manifest:        data,
		Previous:        previous,
		ManifestChanged: !bytes.Equal(previous, data),
	}
	if res.ManifestChanged {
		preview, err := manifest.Preview(path, previous, data)
		if err != nil {
			logger.Debug().Err(err).Msg("Could not render manifest preview")
		}
		res.Preview = preview
	}
	logger.Debug().Str("manifest", path).Bool("changed", res.ManifestChanged).Msg("Wrote manifest")
	return res, nil
}

func label(e *entry.Entry) string {
	if e.Name != "" {
		return e.Name
	}
	if src := e.Source().Src; src != "" {
		return src
	}
	return "<unnamed>"
}
