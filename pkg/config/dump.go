package config

import (
	"github.com/pelletier/go-toml/v2"

	doerrors "github.com/dotyhq/doty/pkg/errors"
)

// Dump renders cfg as TOML.
func Dump(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", doerrors.Wrap(err, doerrors.ErrInternal, "failed to encode configuration")
	}
	return string(out), nil
}
