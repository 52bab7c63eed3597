package config

// Message constants
const (
	MsgShort = "Print the effective configuration"
	MsgLong  = `Config prints the configuration doty runs with, after defaults, the config
file, DOTY_* environment variables and flags have been applied. The output
is valid TOML and can be used as a starting config file.`

	MsgExample = `  # Inspect
  doty config

  # Start a config file from the current settings
  doty config > ~/.config/doty/config.toml`
)
