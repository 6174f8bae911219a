package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/core"
)

// GenerateCSRs computes the register table from the core's CSR declarations
// and emits <name>_csrs.vh with address and width macros. The returned table
// is passed opaquely to the documentation phase.
func GenerateCSRs(d *core.Descriptor) (RegTable, error) {
	table, err := BuildRegTable(d.Definition.CSRs, d.RWOverlap)
	if err != nil {
		return nil, fmt.Errorf("core %s: %w", d.Name, err)
	}
	if len(table) == 0 {
		return table, nil
	}

	prefix := strings.ToUpper(d.Name)
	var b strings.Builder
	b.WriteString("// CSR address map. Generated by corebuilder.\n")
	fmt.Fprintf(&b, "`define %s_CSRS_ADDR_W %d\n\n", prefix, table.AddrWidth())
	for _, r := range table {
		fmt.Fprintf(&b, "`define %s_%s_ADDR %d\n", prefix, strings.ToUpper(r.Name), r.Addr)
		fmt.Fprintf(&b, "`define %s_%s_W %d\n", prefix, strings.ToUpper(r.Name), r.NBits)
	}

	path := filepath.Join(d.BuildDir, d.Purpose.Dir(), d.Name+"_csrs.vh")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return nil, fmt.Errorf("write %s_csrs.vh: %w", d.Name, err)
	}
	return table, nil
}
