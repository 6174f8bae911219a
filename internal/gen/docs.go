package gen

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"git.home.luguber.info/inful/corebuilder/internal/core"
)

// GenerateDocs writes the register-map documentation for a top-level build:
// a markdown source under doc/tsrc and its HTML rendering under doc.
func GenerateDocs(d *core.Descriptor, table RegTable) error {
	md := registerMapMarkdown(d, table)

	mdPath := filepath.Join(d.BuildDir, "doc", "tsrc", d.Name+"_csrs.md")
	if err := os.WriteFile(mdPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write register map markdown: %w", err)
	}

	var html bytes.Buffer
	renderer := goldmark.New(goldmark.WithExtensions(extension.Table))
	if err := renderer.Convert([]byte(md), &html); err != nil {
		return fmt.Errorf("render register map: %w", err)
	}

	var page bytes.Buffer
	fmt.Fprintf(&page, "<!DOCTYPE html>\n<html>\n<head><title>%s register map</title></head>\n<body>\n", d.Name)
	page.Write(html.Bytes())
	page.WriteString("</body>\n</html>\n")

	htmlPath := filepath.Join(d.BuildDir, "doc", d.Name+"_csrs.html")
	if err := os.WriteFile(htmlPath, page.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write register map html: %w", err)
	}
	return nil
}

func registerMapMarkdown(d *core.Descriptor, table RegTable) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s register map\n\n", d.Name)
	fmt.Fprintf(&b, "Version %s, CSR interface `%s`.\n\n", d.Version, d.CSRIf)

	if len(table) == 0 {
		b.WriteString("This core declares no control/status registers.\n")
		return b.String()
	}

	b.WriteString("| Name | Mode | Address | Width | Reset | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- |\n")
	for _, r := range table {
		fmt.Fprintf(&b, "| %s | %s | 0x%02X | %d | %d | %s |\n",
			r.Name, r.Mode, r.Addr, r.NBits, r.RstVal, r.Descr)
	}
	return b.String()
}
