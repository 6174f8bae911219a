package commands

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"git.home.luguber.info/inful/corebuilder/internal/build"
	"git.home.luguber.info/inful/corebuilder/internal/config"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
	"git.home.luguber.info/inful/corebuilder/internal/metrics"
	"git.home.luguber.info/inful/corebuilder/internal/watch"
)

// WatchCmd implements the 'watch' command: rebuild a core whenever its setup
// directory changes, until interrupted.
type WatchCmd struct {
	Core string `arg:"" help:"Core type name to rebuild on changes"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var recorder metrics.Recorder
	if cfg.Metrics.Enabled {
		prom := metrics.NewPrometheusRecorder(nil)
		recorder = prom
		go serveMetrics(ctx, cfg.Metrics.Listen, prom)
	}

	registry, err := discovery.Scan(cfg.SearchRoot)
	if err != nil {
		return err
	}
	setupDir, err := registry.Lookup(w.Core)
	if err != nil {
		return err
	}

	rebuild := func(ctx context.Context) {
		if _, err := buildOnce(ctx, cfg, recorder, w.Core); err != nil {
			slog.Error("Rebuild failed", logfields.Core(w.Core), logfields.Error(err))
		}
	}

	// Initial build before entering the watch loop.
	rebuild(ctx)

	watcher, err := watch.New(setupDir, cfg.WatchDebounce(), rebuild)
	if err != nil {
		return err
	}

	slog.Info("Watching setup directory", logfields.Core(w.Core), logfields.SetupDir(setupDir))
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// buildOnce rescans the search root and runs one build. The fresh scan makes
// core definitions added while watching visible to the next rebuild.
func buildOnce(ctx context.Context, cfg *config.Config, recorder metrics.Recorder, typeName string) (*build.Result, error) {
	orch, _, err := newOrchestrator(cfg, recorder)
	if err != nil {
		return nil, err
	}
	return orch.Build(ctx, typeName)
}

func serveMetrics(ctx context.Context, listen string, prom *metrics.PrometheusRecorder) {
	srv := &http.Server{
		Addr:              listen,
		Handler:           prom.HTTPHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	slog.Info("Serving metrics", logfields.URL("http://"+listen+"/metrics"))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Metrics server failed", logfields.Error(err))
	}
}
