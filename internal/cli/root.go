// Package cli builds the doty command tree.
package cli

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/dotyhq/doty/internal/cli/app"
	addcmd "github.com/dotyhq/doty/internal/cli/commands/add"
	configcmd "github.com/dotyhq/doty/internal/cli/commands/config"
	listcmd "github.com/dotyhq/doty/internal/cli/commands/list"
	removecmd "github.com/dotyhq/doty/internal/cli/commands/remove"
	showcmd "github.com/dotyhq/doty/internal/cli/commands/show"
	statuscmd "github.com/dotyhq/doty/internal/cli/commands/status"
	updatecmd "github.com/dotyhq/doty/internal/cli/commands/update"
	"github.com/dotyhq/doty/internal/version"
	"github.com/dotyhq/doty/pkg/cobrax/topics"
	"github.com/dotyhq/doty/pkg/errors"
	"github.com/dotyhq/doty/pkg/logging"
)

//go:embed topics
var topicFiles embed.FS

// flagKeys maps root flags to the config fields they override.
var flagKeys = map[string]string{
	"home":     "home",
	"repo":     "repo",
	"manifest": "manifest",
	"color":    "color",
	"log-file": "log_file",
}

// Commands that never need the configuration. A broken config file must
// not stop a user from reading help or installing completions.
var skipConfig = map[string]bool{
	"help":       true,
	"version":    true,
	"completion": true,
	"man":        true,
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := app.New()

	rootCmd := &cobra.Command{
		Use:     "doty",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipConfig[cmd.Name()] {
				logging.SetupLogger(a.Verbosity, "")
				log.Debug().Str("command", cmd.Name()).Msg("Command started")
				return nil
			}
			for flag, key := range flagKeys {
				if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
					a.Overrides[key] = f.Value.String()
				}
			}
			if err := a.Load(cmd.Context()); err != nil {
				return err
			}
			logging.SetupLogger(a.Verbosity, a.Config.LogFile)
			log.Debug().Str("command", cmd.Name()).Str("config", a.Config.String()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, MsgErrNoCommand)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&a.Verbosity, "verbose", "v", MsgFlagVerbose)
	pf.StringVarP(&a.ConfigFile, "config", "c", "", MsgFlagConfig)
	pf.String("home", "", MsgFlagHome)
	pf.String("repo", "", MsgFlagRepo)
	pf.String("manifest", "", MsgFlagManifest)
	pf.String("color", "", MsgFlagColor)
	pf.String("log-file", "", MsgFlagLogFile)
	_ = rootCmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(
		[]string{"auto", "always", "never"}, cobra.ShellCompDirectiveNoFileComp))

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "manifest", Title: "MANIFEST:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(updatecmd.NewCommand(a))
	rootCmd.AddCommand(statuscmd.NewCommand(a))
	rootCmd.AddCommand(listcmd.NewCommand(a))
	rootCmd.AddCommand(showcmd.NewCommand(a))
	rootCmd.AddCommand(addcmd.NewCommand(a))
	rootCmd.AddCommand(removecmd.NewCommand(a))
	rootCmd.AddCommand(configcmd.NewCommand(a))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd(rootCmd))

	sub, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		_, err = topics.Initialize(rootCmd, sub, topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewMarkdownRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd(rootCmd *cobra.Command) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:    "man",
		Short:  MsgManShort,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			header := &doc.GenManHeader{
				Title:   "DOTY",
				Section: "1",
			}
			return doc.GenManTree(rootCmd, header, dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}
