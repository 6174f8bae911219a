package coredef

// Purpose selects which source subtree of the build tree a core's files
// belong to.
type Purpose string

const (
	PurposeHardware   Purpose = "hardware"
	PurposeSimulation Purpose = "simulation"
	PurposeFPGA       Purpose = "fpga"
)

// CanonicalPurpose is the purpose whose subtree wins during deduplication.
const CanonicalPurpose = PurposeHardware

// PurposeDirs maps each purpose to its destination subtree below the build
// directory. The mapping is static and shared process-wide.
var PurposeDirs = map[Purpose]string{
	PurposeHardware:   "hardware/src",
	PurposeSimulation: "hardware/simulation/src",
	PurposeFPGA:       "hardware/fpga/src",
}

// Valid reports whether p is one of the known purposes.
func (p Purpose) Valid() bool {
	_, ok := PurposeDirs[p]
	return ok
}

// Dir returns the source subtree for p, or "" for an unknown purpose.
func (p Purpose) Dir() string { return PurposeDirs[p] }
