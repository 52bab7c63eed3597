// Package entry models one manifest record: where a dotfile lives in the
// home directory, where it is stored in the repository, and whether the
// home side should be a symlink back to the stored copy.
//
// Entries are rebuilt from the manifest on every run. Build fills in the
// defaults, checks the result against the filesystem and marks records
// that cannot be acted on as broken. Check results are plain values; the
// only methods that mutate anything are Capture, FixLink, Fix and Undo.
package entry
