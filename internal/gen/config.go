package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/core"
)

// GenerateConfigBuildMk writes build_dir/config_build.mk, the make fragment
// carrying the core's identity and flags for the copied Makefile.
func GenerateConfigBuildMk(d *core.Descriptor) error {
	var b strings.Builder
	b.WriteString("# Generated by corebuilder. Do not edit.\n")
	fmt.Fprintf(&b, "NAME=%s\n", d.Name)
	fmt.Fprintf(&b, "VERSION=%s\n", d.Version)
	fmt.Fprintf(&b, "PREVIOUS_VERSION=%s\n", d.PreviousVersion)
	fmt.Fprintf(&b, "BUILD_DIR_NAME=%s_%s\n", d.Name, d.Version)
	fmt.Fprintf(&b, "CSR_IF=%s\n", d.CSRIf)
	fmt.Fprintf(&b, "IS_SYSTEM=%s\n", mkBool(d.IsSystem))
	fmt.Fprintf(&b, "USE_NETLIST=%s\n", mkBool(d.UseNetlist))
	fmt.Fprintf(&b, "BOARD_LIST=%s\n", strings.Join(d.BoardList, " "))

	path := filepath.Join(d.BuildDir, "config_build.mk")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write config_build.mk: %w", err)
	}
	return nil
}

func mkBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
