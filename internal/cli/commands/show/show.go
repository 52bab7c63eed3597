package show

import (
	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/display"
	"github.com/dotyhq/doty/pkg/filesystem"
)

// NewCommand creates the show command
func NewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "show <name>",
		Short:             MsgShort,
		Long:              MsgLong,
		Example:           MsgExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.CompleteNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := commands.Show(commands.ShowOptions{Config: a.Config, Name: args[0]})
			if err != nil {
				return err
			}
			return display.RenderEntry(cmd.OutOrStdout(), e, filesystem.NewOS(), a.Format)
		},
	}
}
