// Package build composes the registry, build tree, copy utility, generation
// phases, snippet resolver and deduplicator into one sequential core build.
//
// A top-level core runs the full pipeline; sub-cores (instances) reuse the
// top core's build tree and run only resolution, source copy-in and the
// generation phases. Construction is eager: a caller observes either a fully
// constructed descriptor or an error.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/corebuilder/internal/buildtree"
	"git.home.luguber.info/inful/corebuilder/internal/config"
	"git.home.luguber.info/inful/corebuilder/internal/copysrcs"
	"git.home.luguber.info/inful/corebuilder/internal/core"
	"git.home.luguber.info/inful/corebuilder/internal/coredef"
	"git.home.luguber.info/inful/corebuilder/internal/dedupe"
	"git.home.luguber.info/inful/corebuilder/internal/discovery"
	cberrors "git.home.luguber.info/inful/corebuilder/internal/errors"
	"git.home.luguber.info/inful/corebuilder/internal/gen"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
	"git.home.luguber.info/inful/corebuilder/internal/metrics"
	"git.home.luguber.info/inful/corebuilder/internal/snippets"
)

// Orchestrator drives core builds against one registry scan.
type Orchestrator struct {
	cfg      *config.Config
	registry *discovery.Registry
	tree     *buildtree.Manager
	recorder metrics.Recorder
}

// Result reports a completed top-level build.
type Result struct {
	Desc     *core.Descriptor
	BuildID  string
	RegTable gen.RegTable
	Duration time.Duration
	Timings  map[StageName]time.Duration
}

// New creates an Orchestrator. A nil recorder disables metrics.
func New(cfg *config.Config, registry *discovery.Registry, recorder metrics.Recorder) *Orchestrator {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Orchestrator{
		cfg:      cfg,
		registry: registry,
		tree:     buildtree.NewManager(cfg.LibDir),
		recorder: recorder,
	}
}

// Build constructs the named top-level core: resolves its definition, creates
// the build tree and runs every generation and finalization stage. Any stage
// failure aborts the build without cleaning up partial output.
func (o *Orchestrator) Build(ctx context.Context, typeName string) (*Result, error) {
	buildID := uuid.NewString()
	bs := newBuildState(buildID, typeName)
	start := time.Now()

	slog.Info("Starting core build", logfields.Core(typeName), logfields.BuildID(buildID))

	err := runStages(ctx, bs, o.topStages(), o.recorder)
	dur := time.Since(start)
	o.recorder.ObserveBuildDuration(dur)
	if err != nil {
		o.recorder.IncBuildOutcome("failed")
		return nil, cberrors.Wrap(err, classify(err), cberrors.SeverityFatal, fmt.Sprintf("build %s", typeName))
	}
	o.recorder.IncBuildOutcome("success")

	slog.Info("Core build complete",
		logfields.Core(bs.Desc.Name),
		logfields.Version(bs.Desc.Version),
		logfields.BuildDir(bs.Desc.BuildDir),
		logfields.DurationMS(float64(dur.Milliseconds())))

	return &Result{
		Desc:     bs.Desc,
		BuildID:  buildID,
		RegTable: bs.RegTable,
		Duration: dur,
		Timings:  bs.Timings,
	}, nil
}

// topStages is the full pipeline run by the root descriptor.
func (o *Orchestrator) topStages() []StageDef {
	return []StageDef{
		{StageResolve, o.stageResolve},
		{StageTreeInit, o.stageTreeInit},
		{StageFlowsSetup, o.stageFlowsSetup},
		{StageCopySources, o.stageCopySources},
		{StageInstances, o.stageInstances},
		{StageConfig, o.stageConfig},
		{StageConfs, o.stageConfs},
		{StageParams, o.stageParams},
		{StagePorts, o.stagePorts},
		{StageCSRs, o.stageCSRs},
		{StageSnippets, o.stageSnippets},
		{StageDedup, o.stageDedup},
		{StageDocs, o.stageDocs},
	}
}

// subStages is the participant pipeline run by each sub-core. Tree creation,
// snippet resolution, deduplication and doc emission are the exclusive
// responsibility of the top descriptor.
func (o *Orchestrator) subStages() []StageDef {
	return []StageDef{
		{StageResolve, o.stageResolve},
		{StageCopySources, o.stageCopySources},
		{StageInstances, o.stageInstances},
		{StageConfig, o.stageConfig},
		{StageConfs, o.stageConfs},
		{StageParams, o.stageParams},
		{StagePorts, o.stagePorts},
		{StageCSRs, o.stageCSRs},
	}
}

// stageResolve locates the core's definition, loads it with defaults applied,
// and creates the descriptor. The build directory is derived for a top core
// and inherited unchanged for a sub-core.
func (o *Orchestrator) stageResolve(_ context.Context, bs *BuildState) error {
	setupDir, err := o.registry.Lookup(bs.TypeName)
	if err != nil {
		return err
	}
	defFile, err := o.registry.DefinitionFile(bs.TypeName)
	if err != nil {
		return err
	}

	def, err := coredef.Load(defFile)
	if err != nil {
		return cberrors.Wrap(err, cberrors.CategoryDefinition, cberrors.SeverityFatal, "load core definition")
	}
	if !bs.IsTop && bs.PurposeOverride != "" {
		def.Purpose = bs.PurposeOverride
	}

	buildDir := bs.InheritedDir
	if bs.IsTop {
		buildDir = buildtree.BuildDir(def.Name, def.Version)
	}

	bs.Desc = core.NewDescriptor(def, bs.IsTop, setupDir, buildDir)
	bs.DefFile = defFile

	slog.Debug("Resolved core",
		logfields.Core(def.Name),
		logfields.SetupDir(setupDir),
		logfields.BuildDir(buildDir),
		logfields.Purpose(string(def.Purpose)))
	return nil
}

func (o *Orchestrator) stageTreeInit(_ context.Context, bs *BuildState) error {
	if err := bs.Desc.RequireTop("create build dir"); err != nil {
		return err
	}
	return o.tree.Create(bs.Desc.BuildDir)
}

// Library scaffolding is copied before the core's own sources so that
// core-specific files may override scaffold files.
func (o *Orchestrator) stageFlowsSetup(_ context.Context, bs *BuildState) error {
	if err := bs.Desc.RequireTop("flows setup"); err != nil {
		return err
	}
	return copysrcs.FlowsSetup(o.cfg.LibDir, bs.Desc.BuildDir)
}

func (o *Orchestrator) stageCopySources(_ context.Context, bs *BuildState) error {
	return copysrcs.CopySetupDir(bs.Desc.SetupDir, bs.Desc.BuildDir, bs.Desc.Purpose, bs.DefFile)
}

// stageInstances constructs every declared sub-core before the parent's own
// generation phases run. Sub-cores share the parent's build tree.
func (o *Orchestrator) stageInstances(ctx context.Context, bs *BuildState) error {
	for _, ref := range bs.Desc.Definition.Instances {
		for _, ancestor := range bs.chain {
			if ancestor == ref.Core {
				return fmt.Errorf("instance cycle: %s instantiates ancestor %s", bs.TypeName, ref.Core)
			}
		}
		slog.Info("Building sub-core",
			logfields.Core(ref.Core),
			logfields.Instance(ref.Name),
			logfields.BuildID(bs.BuildID))

		sub := newSubBuildState(bs, ref)
		if err := runStages(ctx, sub, o.subStages(), o.recorder); err != nil {
			return fmt.Errorf("instance %s: %w", ref.Name, err)
		}
		bs.Desc.Instances = append(bs.Desc.Instances, sub.Desc)
	}
	return nil
}

func (o *Orchestrator) stageConfig(_ context.Context, bs *BuildState) error {
	return gen.GenerateConfigBuildMk(bs.Desc)
}

func (o *Orchestrator) stageConfs(_ context.Context, bs *BuildState) error {
	return gen.GenerateConfs(bs.Desc)
}

func (o *Orchestrator) stageParams(_ context.Context, bs *BuildState) error {
	return gen.GenerateParams(bs.Desc)
}

func (o *Orchestrator) stagePorts(_ context.Context, bs *BuildState) error {
	return gen.GeneratePorts(bs.Desc)
}

func (o *Orchestrator) stageCSRs(_ context.Context, bs *BuildState) error {
	table, err := gen.GenerateCSRs(bs.Desc)
	if err != nil {
		return err
	}
	bs.RegTable = table
	return nil
}

func (o *Orchestrator) stageSnippets(_ context.Context, bs *BuildState) error {
	if err := bs.Desc.RequireTop("snippet resolution"); err != nil {
		return err
	}
	r, err := snippets.NewResolver(bs.Desc.SetupDir, bs.Desc.BuildDir, bs.Desc.IgnoreSnippets)
	if err != nil {
		return err
	}
	return r.Resolve(bs.Desc.BuildDir)
}

func (o *Orchestrator) stageDedup(_ context.Context, bs *BuildState) error {
	if err := bs.Desc.RequireTop("deduplication"); err != nil {
		return err
	}
	_, err := dedupe.Run(bs.Desc.BuildDir)
	return err
}

func (o *Orchestrator) stageDocs(_ context.Context, bs *BuildState) error {
	if err := bs.Desc.RequireTop("doc generation"); err != nil {
		return err
	}
	return gen.GenerateDocs(bs.Desc, bs.RegTable)
}
