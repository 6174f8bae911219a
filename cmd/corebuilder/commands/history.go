package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"git.home.luguber.info/inful/corebuilder/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int `short:"n" help:"Maximum number of entries to show" default:"20"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if !cfg.HistoryEnabled() {
		return fmt.Errorf("build history is disabled in %s", root.Config)
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	entries, err := store.Recent(context.Background(), h.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("no builds recorded")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tCORE\tVERSION\tSTATUS\tDURATION\tBUILD DIR")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%dms\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Core, e.Version, e.Status, e.DurationMS, e.BuildDir)
	}
	return tw.Flush()
}
