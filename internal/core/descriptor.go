// Package core holds the in-memory record of one core participating in a
// build: its identity, configuration and sub-instances. Descriptors are
// created by the build orchestrator and never mutated after construction
// completes, except by the generation phases during construction.
package core

import (
	"errors"
	"fmt"

	"git.home.luguber.info/inful/corebuilder/internal/coredef"
	"git.home.luguber.info/inful/corebuilder/internal/util/sets"
)

// ErrNotTopModule signals that an operation requiring top-level status was
// invoked on a sub-core descriptor. It is a usage/ordering bug, not a
// recoverable condition.
var ErrNotTopModule = errors.New("not a top module")

// Descriptor is the in-memory record of one core.
type Descriptor struct {
	Name            string
	Version         string
	PreviousVersion string
	CSRIf           string
	Purpose         coredef.Purpose
	IsTopModule     bool

	SetupDir string // where the definition file was discovered; immutable once resolved
	BuildDir string // shared build tree; derived for the top core, inherited by sub-cores

	UseNetlist bool
	IsSystem   bool
	RWOverlap  bool
	BoardList  []string

	IgnoreSnippets sets.Set[string]

	Definition *coredef.Definition // the parsed definition feeding the phases
	Instances  []*Descriptor       // sub-cores, fully constructed before the parent's phases run
}

// NewDescriptor builds a descriptor from a defaulted definition. The caller
// supplies role and directory placement; all remaining fields come from the
// definition.
func NewDescriptor(def *coredef.Definition, isTop bool, setupDir, buildDir string) *Descriptor {
	return &Descriptor{
		Name:            def.Name,
		Version:         def.Version,
		PreviousVersion: def.PreviousVersion,
		CSRIf:           def.CSRIf,
		Purpose:         def.Purpose,
		IsTopModule:     isTop,
		SetupDir:        setupDir,
		BuildDir:        buildDir,
		UseNetlist:      *def.UseNetlist,
		IsSystem:        *def.IsSystem,
		RWOverlap:       *def.RWOverlap,
		BoardList:       def.BoardList,
		IgnoreSnippets:  sets.New(def.IgnoreSnippets...),
		Definition:      def,
	}
}

// RequireTop returns ErrNotTopModule when d is not the root of its build.
func (d *Descriptor) RequireTop(op string) error {
	if !d.IsTopModule {
		return fmt.Errorf("%s on core %s: %w", op, d.Name, ErrNotTopModule)
	}
	return nil
}

// String implements fmt.Stringer for log output.
func (d *Descriptor) String() string {
	role := "sub"
	if d.IsTopModule {
		role = "top"
	}
	return fmt.Sprintf("%s_%s (%s, %s)", d.Name, d.Version, role, d.Purpose)
}
