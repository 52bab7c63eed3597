package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/dotyhq/doty/internal/cli"
	"github.com/dotyhq/doty/pkg/errors"
)

const msgDirtyHint = "Commit or discard those changes, then run doty again."

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.WithWriter(os.Stderr).Println(err.Error())
		if errors.IsErrorCode(err, errors.ErrDirtyRepository) {
			pterm.Info.WithWriter(os.Stderr).Println(msgDirtyHint)
		}
		os.Exit(1)
	}
}
