package gen

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/corebuilder/internal/core"
	"git.home.luguber.info/inful/corebuilder/internal/coredef"
)

// GenerateParams emits <name>_params.vs, a Verilog snippet declaring the
// core's parameters (conf entries of type P). The snippet is meant to be
// included inside a module's parameter list, so every line but the last
// carries a trailing comma.
func GenerateParams(d *core.Descriptor) error {
	var params []coredef.Conf
	for _, c := range d.Definition.Confs {
		if c.Type == coredef.ConfParam {
			params = append(params, c)
		}
	}

	var lines []string
	for _, p := range params {
		lines = append(lines, fmt.Sprintf("parameter %s = %s", p.Name, p.Val))
	}

	path := filepath.Join(d.BuildDir, d.Purpose.Dir(), d.Name+"_params.vs")
	content := strings.Join(lines, ",\n")
	if content != "" {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s_params.vs: %w", d.Name, err)
	}
	return nil
}
