package coredef

import (
	"fmt"
	"strings"
)

// Validate checks a fully defaulted Definition for structural errors.
func Validate(d *Definition) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("core name is empty")
	}
	if !d.Purpose.Valid() {
		return fmt.Errorf("unknown purpose %q (want hardware, simulation or fpga)", d.Purpose)
	}
	for _, c := range d.Confs {
		if c.Name == "" {
			return fmt.Errorf("conf with empty name")
		}
		if c.Type != ConfParam && c.Type != ConfMacro {
			return fmt.Errorf("conf %s: unknown type %q", c.Name, c.Type)
		}
	}
	for _, p := range d.Ports {
		if p.Name == "" {
			return fmt.Errorf("port with empty name")
		}
		switch p.Direction {
		case DirInput, DirOutput, DirInout:
		default:
			return fmt.Errorf("port %s: unknown direction %q", p.Name, p.Direction)
		}
	}
	for _, r := range d.CSRs {
		if r.Name == "" {
			return fmt.Errorf("csr with empty name")
		}
		switch r.Mode {
		case ModeRW, ModeR, ModeW:
		default:
			return fmt.Errorf("csr %s: unknown mode %q", r.Name, r.Mode)
		}
		if r.NBits < 1 {
			return fmt.Errorf("csr %s: n_bits must be >= 1", r.Name)
		}
		if r.Addr != nil && *r.Addr < 0 {
			return fmt.Errorf("csr %s: negative address", r.Name)
		}
		if r.Log2NItems < 0 {
			return fmt.Errorf("csr %s: negative log2n_items", r.Name)
		}
	}
	for _, inst := range d.Instances {
		if inst.Core == "" {
			return fmt.Errorf("instance %s: empty core type", inst.Name)
		}
		// Empty means no override: the sub-core keeps its own purpose.
		if inst.Purpose != "" && !inst.Purpose.Valid() {
			return fmt.Errorf("instance %s: unknown purpose %q", inst.Name, inst.Purpose)
		}
	}
	return nil
}
