package config

import (
	"context"

	"github.com/sethvargo/go-envconfig"

	doerrors "github.com/dotyhq/doty/pkg/errors"
)

// Identity is the author recorded on commits doty makes.
type Identity struct {
	Name  string `env:"GIT_AUTHOR_NAME, default=doty"`
	Email string `env:"GIT_AUTHOR_EMAIL, default=doty@email.com"`
}

// LoadIdentity reads the commit identity from lookuper. A nil lookuper
// reads the process environment.
func LoadIdentity(ctx context.Context, lookuper envconfig.Lookuper) (Identity, error) {
	if lookuper == nil {
		lookuper = envconfig.OsLookuper()
	}
	var id Identity
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &id,
		Lookuper: lookuper,
	}); err != nil {
		return Identity{}, doerrors.Wrap(err, doerrors.ErrConfigLoad, "failed to read commit identity")
	}
	return id, nil
}
