package build

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here for compile-time safety.
type StageName string

// Canonical stage names.
const (
	StageResolve     StageName = "resolve"
	StageTreeInit    StageName = "tree_init"
	StageFlowsSetup  StageName = "flows_setup"
	StageCopySources StageName = "copy_sources"
	StageInstances   StageName = "instances"
	StageConfig      StageName = "config"
	StageConfs       StageName = "confs"
	StageParams      StageName = "params"
	StagePorts       StageName = "ports"
	StageCSRs        StageName = "csrs"
	StageSnippets    StageName = "snippets"
	StageDedup       StageName = "dedup"
	StageDocs        StageName = "docs"
)

// StageDef pairs a stage name with its executing function (internal wiring helper).
type StageDef struct {
	Name StageName
	Fn   Stage
}
