package cli

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	MsgRootShort       = "Keep dotfiles in a git repository and link them into place"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/doty/config.toml)"
	MsgFlagHome     = "Home directory that src paths are relative to"
	MsgFlagRepo     = "Dotfiles repository (default ~/dotfiles)"
	MsgFlagManifest = "Manifest path relative to the repository"
	MsgFlagColor    = "Colorize output: auto, always or never"
	MsgFlagLogFile  = "Log file (default $XDG_STATE_HOME/doty/doty.log)"
	MsgFlagManDir   = "Directory to write man pages to"

	// Version output
	MsgVersionFormat = "doty version %s\n  commit: %s\n  built:  %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)
