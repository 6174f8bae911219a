package coredef

import "fmt"

// defaultApplier fills a single domain of a Definition. Appliers run once, in
// order, at load time; later build phases never introduce defaults of their
// own.
type defaultApplier struct {
	domain string
	apply  func(d *Definition, typeName string) error
}

var appliers = []defaultApplier{
	{"identity", applyIdentityDefaults},
	{"flags", applyFlagDefaults},
	{"confs", applyConfDefaults},
	{"ports", applyPortDefaults},
	{"csrs", applyCSRDefaults},
	{"instances", applyInstanceDefaults},
}

// ApplyDefaults fills every absent field of d with its fixed default.
// Explicitly supplied values are never overwritten.
func ApplyDefaults(d *Definition, typeName string) error {
	for _, a := range appliers {
		if err := a.apply(d, typeName); err != nil {
			return fmt.Errorf("applying defaults for %s: %w", a.domain, err)
		}
	}
	return nil
}

func applyIdentityDefaults(d *Definition, typeName string) error {
	if d.Name == "" {
		d.Name = typeName
	}
	if d.Version == "" {
		d.Version = "1.0"
	}
	if d.PreviousVersion == "" {
		d.PreviousVersion = d.Version
	}
	if d.CSRIf == "" {
		d.CSRIf = "iob"
	}
	if d.Purpose == "" {
		d.Purpose = PurposeHardware
	}
	return nil
}

func applyFlagDefaults(d *Definition, _ string) error {
	f := false
	if d.UseNetlist == nil {
		d.UseNetlist = &f
	}
	if d.IsSystem == nil {
		d.IsSystem = &f
	}
	if d.RWOverlap == nil {
		d.RWOverlap = &f
	}
	if d.BoardList == nil {
		d.BoardList = []string{}
	}
	return nil
}

func applyConfDefaults(d *Definition, _ string) error {
	for i := range d.Confs {
		if d.Confs[i].Type == "" {
			d.Confs[i].Type = ConfParam
		}
	}
	return nil
}

func applyPortDefaults(d *Definition, _ string) error {
	for i := range d.Ports {
		if d.Ports[i].Width == "" {
			d.Ports[i].Width = "1"
		}
	}
	return nil
}

func applyCSRDefaults(d *Definition, _ string) error {
	tr := true
	for i := range d.CSRs {
		if d.CSRs[i].NBits == 0 {
			d.CSRs[i].NBits = 1
		}
		if d.CSRs[i].Autoreg == nil {
			d.CSRs[i].Autoreg = &tr
		}
	}
	return nil
}

func applyInstanceDefaults(d *Definition, _ string) error {
	for i := range d.Instances {
		if d.Instances[i].Name == "" {
			d.Instances[i].Name = d.Instances[i].Core + "_inst"
		}
	}
	return nil
}
