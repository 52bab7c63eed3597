package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/config"
)

// NewCommand creates the config command
func NewCommand(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Dump(a.Config)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
}
