// Package filesystem provides implementations of types.FS and the
// handful of compound operations doty builds on them.
//
// NewOS talks to the real disk. NewOverlay wraps any FS and records
// mutations in memory instead of applying them, which is how dry runs
// observe the same intermediate state a real run would. NewAferoFS adapts
// an afero.Fs, mostly for tests that only need plain files.
package filesystem
