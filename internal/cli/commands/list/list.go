package list

import (
	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/display"
)

// NewCommand creates the list command
func NewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:               "list [pattern]",
		Aliases:           []string{"ls"},
		Short:             MsgShort,
		Long:              MsgLong,
		Example:           MsgExample,
		GroupID:           "core",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: a.CompleteNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := commands.ListOptions{Config: a.Config}
			if len(args) == 1 {
				opts.Pattern = args[0]
			}
			entries, err := commands.List(opts)
			if err != nil {
				return err
			}
			return display.RenderList(cmd.OutOrStdout(), entries, a.Format)
		},
	}
}
