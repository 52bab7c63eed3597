package status

import (
	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/display"
)

// NewCommand creates the status command
func NewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "status [pattern]",
		Short:             MsgShort,
		Long:              MsgLong,
		Example:           MsgExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.CompleteNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.StatusOptions{Config: a.Config}
			if len(args) == 1 {
				opts.Pattern = args[0]
			}
			rows, err := commands.Status(opts)
			if err != nil {
				return err
			}
			return display.RenderStatus(cmd.OutOrStdout(), rows, a.Format)
		},
	}
}
