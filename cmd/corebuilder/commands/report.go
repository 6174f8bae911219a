package commands

import (
	"fmt"

	"git.home.luguber.info/inful/corebuilder/internal/buildtree"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
)

// ReportCmd implements the 'report' command: print the build root derived
// from a core's name and version, without touching the filesystem tree.
type ReportCmd struct {
	Core    string `arg:"" help:"Core type name"`
	CoreVer string `name:"core-version" help:"Core version (defaults to the version in the definition file)"`
}

func (r *ReportCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	registry, err := discovery.Scan(cfg.SearchRoot)
	if err != nil {
		return err
	}
	name, version, err := resolveIdentity(registry, r.Core, r.CoreVer)
	if err != nil {
		return err
	}

	fmt.Println(buildtree.ReportPath(name, version))
	return nil
}
