// Package testutil provides utilities for testing doty components.
//
// Key components:
//   - TestEnvironment: temp home directory with a dotfiles repository that
//     is a real git repository, plus a matching config.Config
//   - Assert helpers for symlinks and captured files
//
// Core packages test against t.TempDir or afero's in-memory filesystem;
// TestEnvironment is for commands that need version control.
package testutil
