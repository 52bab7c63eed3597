// Package types defines the small interfaces shared across doty packages,
// chiefly the filesystem abstraction every mutation goes through.
package types
