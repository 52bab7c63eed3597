package add

// Message constants
const (
	MsgShort = "Add an entry to the manifest"
	MsgLong  = `Add appends an entry to the manifest. Nothing on disk changes until the next
'doty update' captures and links it.

The entry must resolve: its name must be new, its stored path must be inside
the repository, and the file must exist at one of its two paths.`

	MsgExample = `  # Manage ~/.bashrc, stored as .bashrc in the repository
  doty add .bashrc

  # Store under a subdirectory
  doty add .vimrc --dst vim/.vimrc

  # A file outside the home directory root, kept as a copy without a link
  doty add starship --src ~/.config/starship.toml --no-link --notes "Prompt theme"`

	MsgFlagSrc      = "Path the file is managed at (default ~/<name>)"
	MsgFlagDst      = "Path the file is stored at, relative to the repository (default <name>)"
	MsgFlagLinkName = "File name of the link created next to src (default <name>)"
	MsgFlagNoLink   = "Store the file without linking it back"
	MsgFlagNotes    = "Markdown notes shown by 'doty show'"

	MsgAdded = "Added %s: %s -> %s\n"
	MsgHint  = "Run 'doty update' to apply."
)
