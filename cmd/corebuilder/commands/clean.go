package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/corebuilder/internal/buildtree"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

// CleanCmd implements the 'clean' command.
type CleanCmd struct {
	Core       string `arg:"" help:"Core type name whose build directory should be removed"`
	CoreVer    string `name:"core-version" help:"Core version (defaults to the version in the definition file)"`
	SkipTarget bool   `name:"skip-make-clean" help:"Remove the tree without running 'make clean' first"`
}

func (c *CleanCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	registry, err := discovery.Scan(cfg.SearchRoot)
	if err != nil {
		return err
	}
	name, version, err := resolveIdentity(registry, c.Core, c.CoreVer)
	if err != nil {
		return err
	}

	hook := buildtree.MakeClean
	if c.SkipTarget {
		hook = nil
	}
	if err := buildtree.Clean(name, version, hook); err != nil {
		return err
	}

	slog.Info("Build directory removed",
		logfields.Core(name),
		logfields.Version(version),
		logfields.Path(buildtree.RootDir(name, version)))
	return nil
}
