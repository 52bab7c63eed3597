package status

// Message constants
const (
	MsgShort = "Show the state of managed entries"
	MsgLong  = `Status compares every manifest entry with the filesystem and reports one
of four states:
  - complete: stored in the repository and linked into place
  - pending:  not captured yet
  - drifted:  stored, but the link is missing or points elsewhere
  - broken:   cannot be acted on until the manifest or filesystem is fixed

An optional glob pattern selects entries by name or by repository path.`

	MsgExample = `  # Every entry
  doty status

  # Shell configuration only
  doty status '.*sh*'

  # Everything stored under vim/
  doty status 'vim/**'`
)
