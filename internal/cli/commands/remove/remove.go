package remove

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/display"
)

// NewCommand creates the remove command
func NewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             MsgShort,
		Long:              MsgLong,
		Example:           MsgExample,
		GroupID:           "manifest",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.CompleteNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := commands.Remove(commands.RemoveOptions{Config: a.Config, Name: args[0]})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, display.Markup(fmt.Sprintf(MsgRemoved, "[bold]"+raw.DerivedName()+"[/bold]"), a.Format))
			fmt.Fprintln(out, MsgHint)
			return nil
		},
	}
}
