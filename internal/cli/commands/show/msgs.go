package show

// Message constants
const (
	MsgShort = "Show one entry in detail"
	MsgLong  = `Show prints an entry's state, its paths and its notes. Notes are rendered as
markdown.`

	MsgExample = `  doty show .vimrc`
)
