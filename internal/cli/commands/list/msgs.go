package list

// Message constants
const (
	MsgShort = "List manifest entries"
	MsgLong  = `List prints every manifest entry with the path it is managed at and the
path it is stored at in the repository, in manifest order. An optional glob
pattern selects entries by name or by repository path.`

	MsgExample = `  # All entries
  doty list

  # Entries stored under config/
  doty ls 'config/**'`
)
