// Package app holds the state shared by the doty subcommands: the
// effective configuration and the output format, both resolved once by
// the root command before any subcommand runs.
package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/config"
	"github.com/dotyhq/doty/pkg/display"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/vcs"
)

// App is filled in by the root command's PersistentPreRunE.
type App struct {
	Verbosity  int
	ConfigFile string

	// Overrides are the flag values the user set explicitly, keyed by
	// config field.
	Overrides map[string]interface{}

	Config *config.Config
	Format display.Format
	Author vcs.Author
}

// New returns an empty App.
func New() *App {
	return &App{Overrides: map[string]interface{}{}}
}

// Load resolves the configuration, the output format and the commit
// identity.
func (a *App) Load(ctx context.Context) error {
	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: a.ConfigFile,
		Overrides:  a.Overrides,
	})
	if err != nil {
		return err
	}
	f, err := display.ParseFormat(cfg.Color)
	if err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid color setting")
	}
	id, err := config.LoadIdentity(ctx, nil)
	if err != nil {
		return err
	}
	a.Config = cfg
	a.Format = display.Resolve(f, os.Stdout)
	a.Author = vcs.Author{Name: id.Name, Email: id.Email}
	return nil
}

// CompleteNames offers manifest entry names for shell completion. Cobra
// does not run the root pre-run hooks when completing, so the
// configuration is loaded here if needed.
func (a *App) CompleteNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	if a.Config == nil {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		if err := a.Load(ctx); err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
	}
	entries, err := commands.List(commands.ListOptions{Config: a.Config})
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Name != "" {
			names = append(names, e.Name)
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
