package commands

import (
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/corebuilder/internal/gitlib"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

// LibCmd implements the 'lib' command: fetch an external core library into
// the search root so its cores become discoverable.
type LibCmd struct {
	URL    string `arg:"" help:"Git URL of the core library repository"`
	Name   string `help:"Target directory name (defaults to the repository base name)"`
	Branch string `short:"b" help:"Branch to check out"`
	Depth  int    `help:"Shallow clone depth (0 for full history)" default:"1"`
}

func (l *LibCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dir, err := gitlib.Clone(cfg.SearchRoot, gitlib.CloneOptions{
		URL:    l.URL,
		Name:   l.Name,
		Branch: l.Branch,
		Depth:  l.Depth,
	})
	if err != nil {
		return err
	}

	slog.Info("Library cloned", logfields.URL(l.URL), logfields.Path(dir))
	return nil
}
