package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"git.home.luguber.info/inful/corebuilder/internal/build"
	"git.home.luguber.info/inful/corebuilder/internal/config"
	"git.home.luguber.info/inful/corebuilder/internal/history"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	failureColor = color.New(color.FgRed, color.Bold)
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Core string `arg:"" help:"Core type name to build (base name of its definition file)"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	orch, _, err := newOrchestrator(cfg, nil)
	if err != nil {
		return err
	}

	res, buildErr := orch.Build(ctx, b.Core)
	// Record even when the build was interrupted, so use an uncancelable context.
	recordHistory(context.WithoutCancel(ctx), cfg, b.Core, res, buildErr)

	if buildErr != nil {
		failureColor.Printf("✗ build of %s failed\n", b.Core)
		return buildErr
	}

	successColor.Printf("✓ %s_%s set up in %s\n", res.Desc.Name, res.Desc.Version, res.Desc.BuildDir)
	return nil
}

// recordHistory persists the build outcome when the history store is enabled.
// History failures are logged, never fatal: the build result stands on its own.
func recordHistory(ctx context.Context, cfg *config.Config, typeName string, res *build.Result, buildErr error) {
	if !cfg.HistoryEnabled() {
		return
	}

	store, err := history.Open(cfg.History.Path)
	if err != nil {
		slog.Warn("Cannot open build history", logfields.Path(cfg.History.Path), logfields.Error(err))
		return
	}
	defer func() { _ = store.Close() }()

	entry := history.Entry{Core: typeName, Status: "failed"}
	if res != nil {
		entry.BuildID = res.BuildID
		entry.Core = res.Desc.Name
		entry.Version = res.Desc.Version
		entry.BuildDir = res.Desc.BuildDir
		entry.DurationMS = res.Duration.Milliseconds()
		if buildErr == nil {
			entry.Status = "success"
		}
	}

	if err := store.Record(ctx, entry); err != nil {
		slog.Warn("Cannot record build history", logfields.Error(err))
	}
}
