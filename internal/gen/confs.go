package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/core"
)

// GenerateConfs emits <name>_conf.vh into the core's purpose subtree: one
// macro per conf entry, guarded against double inclusion.
func GenerateConfs(d *core.Descriptor) error {
	prefix := strings.ToUpper(d.Name)
	guard := fmt.Sprintf("VH_%s_CONF_VH", prefix)

	var b strings.Builder
	fmt.Fprintf(&b, "`ifndef %s\n", guard)
	fmt.Fprintf(&b, "`define %s\n\n", guard)
	for _, c := range d.Definition.Confs {
		if c.Descr != "" {
			fmt.Fprintf(&b, "// %s\n", c.Descr)
		}
		fmt.Fprintf(&b, "`define %s_%s %s\n", prefix, strings.ToUpper(c.Name), c.Val)
	}
	fmt.Fprintf(&b, "\n`endif // %s\n", guard)

	path := filepath.Join(d.BuildDir, d.Purpose.Dir(), d.Name+"_conf.vh")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s_conf.vh: %w", d.Name, err)
	}
	return nil
}
