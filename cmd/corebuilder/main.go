package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/corebuilder/cmd/corebuilder/commands"
	"git.home.luguber.info/inful/corebuilder/internal/errors"
	"git.home.luguber.info/inful/corebuilder/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("corebuilder"),
		kong.Description("Build setup tool for hardware IP core definitions"),
		kong.UsageOnError(),
		kong.Vars{"version": version.Version},
	)

	global := &commands.Global{Logger: slog.Default()}
	if err := ctx.Run(global, &cli); err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(errors.ExitCodeFor(err))
	}
}
