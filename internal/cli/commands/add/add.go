package add

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dotyhq/doty/internal/cli/app"
	"github.com/dotyhq/doty/pkg/commands"
	"github.com/dotyhq/doty/pkg/display"
	"github.com/dotyhq/doty/pkg/entry"
)

// NewCommand creates the add command
func NewCommand(a *app.App) *cobra.Command {
	var (
		raw    entry.Raw
		noLink bool
	)

	cmd := &cobra.Command{
		Use:     "add <name>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		GroupID: "manifest",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw.Name = args[0]
			if noLink {
				linked := false
				raw.Linked = &linked
			}

			e, err := commands.Add(commands.AddOptions{Config: a.Config, Raw: raw})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, display.Markup(fmt.Sprintf(MsgAdded,
				"[bold]"+e.Name+"[/bold]", "[path]"+e.Src+"[/path]", "[path]"+e.Dst+"[/path]"), a.Format))
			fmt.Fprintln(out, MsgHint)
			return nil
		},
	}

	cmd.Flags().StringVar(&raw.Src, "src", "", MsgFlagSrc)
	cmd.Flags().StringVar(&raw.Dst, "dst", "", MsgFlagDst)
	cmd.Flags().StringVar(&raw.LinkName, "link-name", "", MsgFlagLinkName)
	cmd.Flags().BoolVar(&noLink, "no-link", false, MsgFlagNoLink)
	cmd.Flags().StringVar(&raw.Notes, "notes", "", MsgFlagNotes)

	return cmd
}
