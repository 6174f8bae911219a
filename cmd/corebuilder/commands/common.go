package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/corebuilder/internal/build"
	"git.home.luguber.info/inful/corebuilder/internal/config"
	"git.home.luguber.info/inful/corebuilder/internal/coredef"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	"git.home.luguber.info/inful/corebuilder/internal/metrics"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"corebuilder.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Set up a build directory for a top-level core"`
	Clean   CleanCmd   `cmd:"" help:"Remove a core's build directory"`
	Report  ReportCmd  `cmd:"" help:"Show the timing report path for a built core"`
	List    ListCmd    `cmd:"" help:"List core types discoverable under the search root"`
	Watch   WatchCmd   `cmd:"" help:"Rebuild a core whenever its setup directory changes"`
	History HistoryCmd `cmd:"" help:"Show recent build history"`
	Lib     LibCmd     `cmd:"" help:"Clone a core library repository into the search root"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the project configuration, falling back to built-in
// defaults when the default config file is absent.
func loadConfig(root *CLI) (*config.Config, error) {
	return config.LoadOrDefault(root.Config)
}

// newOrchestrator scans the search root and assembles a build orchestrator.
func newOrchestrator(cfg *config.Config, recorder metrics.Recorder) (*build.Orchestrator, *discovery.Registry, error) {
	registry, err := discovery.Scan(cfg.SearchRoot)
	if err != nil {
		return nil, nil, err
	}
	return build.New(cfg, registry, recorder), registry, nil
}

// resolveIdentity returns the effective core name and version for a core
// type, as declared in (or defaulted for) the definition file. The build tree
// is derived from the definition's name, which may differ from the type name.
// An explicit version flag wins over the declared version.
func resolveIdentity(registry *discovery.Registry, typeName, explicitVersion string) (name, version string, err error) {
	defFile, err := registry.DefinitionFile(typeName)
	if err != nil {
		return "", "", err
	}
	def, err := coredef.Load(defFile)
	if err != nil {
		return "", "", err
	}
	version = def.Version
	if explicitVersion != "" {
		version = explicitVersion
	}
	return def.Name, version, nil
}
