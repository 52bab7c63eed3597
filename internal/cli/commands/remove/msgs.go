package remove

// Message constants
const (
	MsgShort = "Remove an entry from the manifest"
	MsgLong  = `Remove drops an entry from the manifest. The next 'doty update' removes its
link and moves the stored file back to where it was managed.`

	MsgExample = `  doty remove .zshrc`

	MsgRemoved = "Removed %s from the manifest.\n"
	MsgHint    = "Run 'doty update' to move it back into place."
)
