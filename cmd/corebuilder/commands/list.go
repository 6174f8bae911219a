package commands

import (
	"fmt"

	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	"git.home.luguber.info/inful/corebuilder/internal/util/sets"
)

// ListCmd implements the 'list' command.
type ListCmd struct {
	All bool `help:"List every discoverable core type, not only YAML-defined ones"`
}

func (l *ListCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	registry, err := discovery.Scan(cfg.SearchRoot)
	if err != nil {
		return err
	}

	names := sets.New[string]()
	if l.All {
		for _, n := range registry.Types("") {
			names.Add(n)
		}
	} else {
		for _, ext := range []string{".yaml", ".yml"} {
			for _, n := range registry.Types(ext) {
				names.Add(n)
			}
		}
	}

	for _, n := range sets.SortedStrings(names) {
		fmt.Println(n)
	}
	return nil
}
