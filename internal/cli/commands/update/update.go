package update

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/display"
	"github.com/dotyhq/doty/pkg/logging"
)

// NewCommand creates the update command
func NewCommand(a *app.App) *cobra.Command {
	var (
		dryRun   bool
		noCommit bool
		quiet    bool
	)

	cmd := &cobra.Command{
		Use:     "update",
		Aliases: []string{"up"},
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.GetLogger("cli.update")
			log.Info().
				Str("repo", a.Config.Repo).
				Bool("dryRun", dryRun).
				Msg("Updating dotfiles")

			res, err := commands.Update(commands.UpdateOptions{
				Config:   a.Config,
				Author:   a.Author,
				DryRun:   dryRun,
				NoCommit: noCommit,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			rep := res.Reconcile.Report
			if !quiet {
				fmt.Fprint(out, display.Markup(rep.Markup(), a.Format))
				if res.Commit != "" {
					fmt.Fprintf(out, MsgCommitted, shortHash(res.Commit), rep.CommitMessage())
				}
				if dryRun {
					fmt.Fprintln(out)
					fmt.Fprintln(out, display.Markup("[warning]"+MsgDryRunNotice+"[/warning]", a.Format))
					if res.Reconcile.Preview != "" {
						fmt.Fprintln(out, MsgManifestDiff)
						fmt.Fprint(out, res.Reconcile.Preview)
					}
				}
			}

			if failures := rep.Failures(); len(failures) > 0 {
				warn := pterm.Warning.WithWriter(cmd.ErrOrStderr())
				if quiet {
					for _, f := range failures {
						warn.Printfln(MsgEntryFailed, f.Name, f.Err)
					}
				}
				warn.Printfln(MsgFailureSummary, len(failures))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, MsgFlagDryRun)
	cmd.Flags().BoolVar(&noCommit, "no-commit", false, MsgFlagNoCommit)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, MsgFlagQuiet)

	return cmd
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
