package update

// Message constants
const (
	MsgShort = "Reconcile the filesystem with the manifest and commit"
	MsgLong  = `The 'update' command is doty's primary command. One pass:
  - moves entries removed from the manifest back to their original location
  - captures new entries into the repository and links them into place
  - repairs links that are missing or point elsewhere
  - rewrites the manifest to match what is on disk

The outcome is committed to the dotfiles repository with a one-line summary
such as "Links (A1|R0|U0) | Files (A1|R0|U0|M0)". The repository must be
clean apart from the manifest itself.

Entries that cannot be acted on are reported and skipped; the rest of the
pass proceeds.`

	MsgExample = `  # Reconcile and commit
  doty update

  # Preview the report and the manifest rewrite
  doty up --dry-run

  # Reconcile without committing
  doty update --no-commit`

	MsgFlagDryRun   = "Preview changes without touching the filesystem"
	MsgFlagNoCommit = "Do not commit the result"
	MsgFlagQuiet    = "Only print failures"

	MsgDryRunNotice   = "DRY RUN MODE - No changes were made"
	MsgManifestDiff   = "Manifest changes:"
	MsgCommitted      = "Committed %s: %s\n"
	MsgEntryFailed    = "%s: %v"
	MsgFailureSummary = "%d entries could not be reconciled, see above"
)
