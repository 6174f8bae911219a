// Package coredef defines the YAML schema for core definition files and the
// default-filling applied when a definition is loaded. A core type `foo` is
// defined by a file named `foo.yaml` somewhere under the search root.
package coredef

// Definition is the declarative description of one core type as read from its
// definition file. Optional fields use pointers (or zero values) so the
// default applier can distinguish "absent" from "explicitly false/empty";
// explicit values are never overwritten.
type Definition struct {
	Name            string   `yaml:"name,omitempty"` // defaults to the core type name
	Version         string   `yaml:"version,omitempty"`
	PreviousVersion string   `yaml:"previous_version,omitempty"`
	CSRIf           string   `yaml:"csr_if,omitempty"`
	Purpose         Purpose  `yaml:"purpose,omitempty"`
	UseNetlist      *bool    `yaml:"use_netlist,omitempty"`
	IsSystem        *bool    `yaml:"is_system,omitempty"`
	RWOverlap       *bool    `yaml:"rw_overlap,omitempty"`
	BoardList       []string `yaml:"board_list,omitempty"`
	IgnoreSnippets  []string `yaml:"ignore_snippets,omitempty"`

	Confs     []Conf        `yaml:"confs,omitempty"`
	Ports     []Port        `yaml:"ports,omitempty"`
	CSRs      []CSR         `yaml:"csrs,omitempty"`
	Instances []InstanceRef `yaml:"instances,omitempty"`
}

// ConfType enumerates the kinds of configuration entries a core may declare.
type ConfType string

const (
	ConfParam ConfType = "P" // Verilog parameter
	ConfMacro ConfType = "M" // Verilog macro definition
)

// Conf is one configuration entry (parameter or macro).
type Conf struct {
	Name  string   `yaml:"name"`
	Type  ConfType `yaml:"type,omitempty"` // defaults to P
	Val   string   `yaml:"val"`
	Min   string   `yaml:"min,omitempty"`
	Max   string   `yaml:"max,omitempty"`
	Descr string   `yaml:"descr,omitempty"`
}

// PortDirection enumerates Verilog port directions.
type PortDirection string

const (
	DirInput  PortDirection = "input"
	DirOutput PortDirection = "output"
	DirInout  PortDirection = "inout"
)

// Port is one top-level port of the core.
type Port struct {
	Name      string        `yaml:"name"`
	Direction PortDirection `yaml:"direction"`
	Width     string        `yaml:"width,omitempty"` // expression; defaults to "1"
	Descr     string        `yaml:"descr,omitempty"`
}

// CSRMode enumerates software access modes of a control/status register.
type CSRMode string

const (
	ModeRW CSRMode = "rw"
	ModeR  CSRMode = "r"
	ModeW  CSRMode = "w"
)

// CSR is one control/status register declaration. A nil Addr requests
// automatic address assignment.
type CSR struct {
	Name       string  `yaml:"name"`
	Mode       CSRMode `yaml:"mode"`
	NBits      int     `yaml:"n_bits,omitempty"` // defaults to 1
	RstVal     int     `yaml:"rst_val,omitempty"`
	Addr       *int    `yaml:"addr,omitempty"` // nil = auto
	Log2NItems int     `yaml:"log2n_items,omitempty"`
	Autoreg    *bool   `yaml:"autoreg,omitempty"` // defaults to true
	Descr      string  `yaml:"descr,omitempty"`
}

// InstanceRef declares one sub-core instance. Core names the instantiated
// core type (resolved through the registry); Name is the instance label.
type InstanceRef struct {
	Core    string  `yaml:"core"`
	Name    string  `yaml:"name,omitempty"`    // defaults to <core>_inst
	Purpose Purpose `yaml:"purpose,omitempty"` // optional override of the sub-core's own purpose
}
