package coredef

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and parses a core definition file, applies defaults derived from
// the core type name (the file's extension-stripped base name), and validates
// the result. Fields explicitly supplied in the file are never overwritten by
// the default applier.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read core definition: %w", err)
	}

	typeName := TypeNameFromPath(path)

	def := &Definition{}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse core definition %s: %w", path, err)
	}

	if err := ApplyDefaults(def, typeName); err != nil {
		return nil, fmt.Errorf("apply defaults for %s: %w", typeName, err)
	}
	if err := Validate(def); err != nil {
		return nil, fmt.Errorf("invalid core definition %s: %w", path, err)
	}
	return def, nil
}

// TypeNameFromPath derives the core type name from a definition file path by
// stripping the directory and everything after the first dot of the base name.
func TypeNameFromPath(path string) string {
	base := filepath.Base(path)
	if i := strings.Index(base, "."); i >= 0 {
		return base[:i]
	}
	return base
}
