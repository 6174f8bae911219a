package build

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/corebuilder/internal/core"
	"git.home.luguber.info/inful/corebuilder/internal/coredef"
	"git.home.luguber.info/inful/corebuilder/internal/gen"
	"git.home.luguber.info/inful/corebuilder/internal/logfields"
	"git.home.luguber.info/inful/corebuilder/internal/metrics"
)

// Stage is a discrete unit of work in a core build. Stages run strictly in
// order; the first failure aborts the whole construction.
type Stage func(ctx context.Context, bs *BuildState) error

// StageError is a structured error carrying the failing stage and cause.
type StageError struct {
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("stage %s: %v", e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

// BuildState carries mutable state across the stages of one descriptor's
// construction. Each stage may extend it but must not remove or retype what
// an earlier stage set.
type BuildState struct {
	BuildID string

	// Inputs fixed before the pipeline starts.
	TypeName        string
	IsTop           bool
	InheritedDir    string          // sub-cores: the top core's build dir
	PurposeOverride coredef.Purpose // sub-cores: instance-declared purpose

	// Populated by the resolve stage.
	Desc    *core.Descriptor
	DefFile string

	// Populated by the CSR phase, consumed by the doc phase.
	RegTable gen.RegTable

	// chain is the ancestry of core types leading to this state; it guards
	// against a core transitively instantiating itself.
	chain []string

	Timings map[StageName]time.Duration
}

func newBuildState(buildID, typeName string) *BuildState {
	return &BuildState{
		BuildID:  buildID,
		TypeName: typeName,
		IsTop:    true,
		chain:    []string{typeName},
		Timings:  make(map[StageName]time.Duration),
	}
}

func newSubBuildState(parent *BuildState, ref coredef.InstanceRef) *BuildState {
	return &BuildState{
		BuildID:         parent.BuildID,
		TypeName:        ref.Core,
		IsTop:           false,
		InheritedDir:    parent.Desc.BuildDir,
		PurposeOverride: ref.Purpose,
		chain:           append(append([]string{}, parent.chain...), ref.Core),
		Timings:         make(map[StageName]time.Duration),
	}
}

// runStages executes stages in order, recording timing and stopping on the
// first error. There is no partial-success state.
func runStages(ctx context.Context, bs *BuildState, stages []StageDef, rec metrics.Recorder) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			return &StageError{Stage: st.Name, Err: ctx.Err()}
		default:
		}

		t0 := time.Now()
		err := st.Fn(ctx, bs)
		dur := time.Since(t0)
		bs.Timings[st.Name] = dur
		rec.ObserveStageDuration(string(st.Name), dur)

		if err != nil {
			rec.IncStageResult(string(st.Name), metrics.ResultFatal)
			slog.Error("Stage failed",
				logfields.Stage(string(st.Name)),
				logfields.Core(bs.TypeName),
				logfields.BuildID(bs.BuildID),
				logfields.Error(err))
			return &StageError{Stage: st.Name, Err: err}
		}
		rec.IncStageResult(string(st.Name), metrics.ResultSuccess)
		slog.Debug("Stage complete",
			logfields.Stage(string(st.Name)),
			logfields.Core(bs.TypeName),
			logfields.DurationMS(float64(dur.Milliseconds())))
	}
	return nil
}
