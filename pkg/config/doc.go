// Package config handles configuration management for doty.
// Values are layered from embedded defaults, the user's config file,
// DOTY_* environment variables and command-line flag overrides.
package config
