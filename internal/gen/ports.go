package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/core"
)

// GeneratePorts emits <name>_io.vs, a Verilog snippet declaring the core's
// ports for inclusion inside a module port list.
func GeneratePorts(d *core.Descriptor) error {
	var lines []string
	for _, p := range d.Definition.Ports {
		if p.Width == "1" {
			lines = append(lines, fmt.Sprintf("%s %s", p.Direction, p.Name))
		} else {
			lines = append(lines, fmt.Sprintf("%s [%s-1:0] %s", p.Direction, p.Width, p.Name))
		}
	}

	path := filepath.Join(d.BuildDir, d.Purpose.Dir(), d.Name+"_io.vs")
	content := strings.Join(lines, ",\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s_io.vs: %w", d.Name, err)
	}
	return nil
}
