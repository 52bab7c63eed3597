// Package update implements `doty update`: a full reconciliation pass
// bracketed by version control.
package update

import (
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/dotyhq/doty/pkg/commands/internal"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/entry"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/logging"
	"github.com/dotyhq/doty/pkg/manifest"
	"github.com/dotyhq/doty/pkg/reconcile"
	"github.com/dotyhq/doty/pkg/types"
	"github.com/dotyhq/doty/pkg/vcs"
)

// Options defines the options for the Update command.
type Options struct {
	Config *config.Config

	// FS defaults to the real filesystem.
	FS types.FS

	// Repository defaults to the git repository containing Config.Repo.
	Repository vcs.Repository
	Author     vcs.Author

	DryRun   bool
	NoCommit bool
}

// Result is what an update did, or in a dry run would do.
type Result struct {
	RunID     string
	DryRun    bool
	Reconcile *reconcile.Result
	Commit    string
}

// Update reconciles the manifest on disk against the last committed one
// and commits the outcome.
func Update(opts Options) (*Result, error) {
	runID := ulid.Make().String()
	logger := logging.GetLogger("commands.update").With().Str("run_id", runID).Logger()
	logger.Debug().Bool("dryRun", opts.DryRun).Bool("noCommit", opts.NoCommit).Msg("Executing command")
	defer logging.LogOperationStart(logger, "update")()

	s := internal.NewSession(opts.Config, opts.FS, logger)
	manifestPath := opts.Config.ManifestPath()

	repo := opts.Repository
	if repo == nil {
		g, err := vcs.Open(opts.Config.Repo, opts.Author)
		if err != nil {
			return nil, err
		}
		repo = g
	}

	rel, err := repo.Rel(manifestPath)
	if err != nil {
		return nil, err
	}
	before, err := repo.Status()
	if err != nil {
		return nil, err
	}
	if dirty := before.Dirty(rel); len(dirty) > 0 {
		return nil, errors.Newf(errors.ErrDirtyRepository,
			"the dotfiles repository has uncommitted changes: %s", strings.Join(dirty, ", ")).
			WithDetail("paths", dirty)
	}

	prior, committed, err := priorEntries(s, repo, manifestPath)
	if err != nil {
		return nil, err
	}
	_, current, err := s.Entries()
	if err != nil {
		return nil, err
	}

	res, err := reconcile.Run(reconcile.Options{
		Env:          s.Env(),
		Logger:       logger,
		ManifestPath: manifestPath,
		DryRun:       opts.DryRun,
	}, current, prior)
	if err != nil {
		return nil, err
	}

	modified, err := modifiedCount(repo, before, rel, res.ManifestChanged && committed, opts.DryRun)
	if err != nil {
		return nil, err
	}
	res.Report.SetModified(modified)

	out := &Result{RunID: runID, DryRun: opts.DryRun, Reconcile: res}
	if opts.DryRun || opts.NoCommit || !opts.Config.Commit {
		logger.Info().Msg("Skipping commit")
		return out, nil
	}
	if !res.Report.HasChanges() && !res.ManifestChanged {
		logger.Info().Msg("Nothing to commit")
		return out, nil
	}

	out.Commit, err = repo.CommitAll(res.Report.CommitMessage())
	if err != nil {
		return nil, err
	}
	logger.Info().Str("commit", out.Commit).Str("message", res.Report.CommitMessage()).Msg("Committed changes")
	return out, nil
}

// priorEntries builds the manifest at HEAD and reports whether it is
// committed at all.
func priorEntries(s internal.Session, repo vcs.Repository, manifestPath string) ([]*entry.Entry, bool, error) {
	data, err := repo.LastCommitted(manifestPath)
	if err != nil {
		return nil, false, err
	}
	m, err := manifest.Parse(data)
	if err != nil {
		return nil, false, errors.Wrap(err, errors.ErrManifestParse, "failed to parse the committed manifest")
	}
	m.Log(s.Logger, manifestPath+"@HEAD")
	entries, err := m.Entries(s.Env())
	if err != nil {
		return nil, false, err
	}
	return entries, data != nil, nil
}

// modifiedCount is the number of modified repository paths after the run.
// A dry run predicts it from the status before the run and whether the
// committed manifest would change.
func modifiedCount(repo vcs.Repository, before vcs.Status, rel string, manifestModified, dryRun bool) (int, error) {
	if !dryRun {
		after, err := repo.Status()
		if err != nil {
			return 0, err
		}
		return after.Count(vcs.StatusModified), nil
	}

	predicted := make(vcs.Status, len(before)+1)
	for p, f := range before {
		predicted[p] = f
	}
	if manifestModified {
		predicted[rel] |= vcs.StatusModified
	}
	return predicted.Count(vcs.StatusModified), nil
}
