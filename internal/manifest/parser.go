package manifest

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Parse unmarshals manifest YAML. path is only used in error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &m, nil
}

// ParseFile reads and parses a manifest from disk.
func ParseFile(path string) (*Manifest, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data, path)
}

// ParseFS reads and parses a manifest from fsys.
func ParseFS(fsys fs.FS, path string) (*Manifest, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return Parse(data, path)
}

// Defaults returns the default value of every variable that declares one.
func (m *Manifest) Defaults() map[string]string {
	out := make(map[string]string)
	for _, v := range m.Variables {
		if v.Default != nil {
			out[v.Name] = *v.Default
		}
	}
	return out
}

// Variable returns the declared variable called name.
func (m *Manifest) Variable(name string) (Variable, bool) {
	for _, v := range m.Variables {
		if v.Name == name {
			return v, true
		}
	}
	return Variable{}, false
}

// TargetFor returns the output path template for f.
func TargetFor(f File) string {
	if f.Target != "" {
		return f.Target
	}
	return strings.TrimSuffix(f.Source, ".tmpl")
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
