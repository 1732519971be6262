package manifest

// FileName is the manifest file expected at the root of a template set.
const FileName = "template.yaml"

// Manifest describes a template set.
type Manifest struct {
	Name        string       `yaml:"name" json:"name"`
	Version     string       `yaml:"version" json:"version"`
	Description string       `yaml:"description" json:"description"`
	Tags        []string     `yaml:"tags,omitempty" json:"tags,omitempty"`
	Author      string       `yaml:"author,omitempty" json:"author,omitempty"`
	Requires    string       `yaml:"requires,omitempty" json:"requires,omitempty"` // semver constraint on the engine
	Variables   []Variable   `yaml:"variables,omitempty" json:"variables,omitempty"`
	Derivations []Derivation `yaml:"derivations,omitempty" json:"derivations,omitempty"`
	Files       []File       `yaml:"files" json:"files"`
	Render      RenderConfig `yaml:"render,omitempty" json:"render,omitempty"`
}

// Variable is a value the user supplies.
type Variable struct {
	Name        string  `yaml:"name" json:"name"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Required    bool    `yaml:"required,omitempty" json:"required,omitempty"`
	Default     *string `yaml:"default,omitempty" json:"default,omitempty"`
}

// Derivation computes a placeholder from other values. Exactly one of From
// or Pattern is set.
type Derivation struct {
	Name       string   `yaml:"name" json:"name"`
	From       string   `yaml:"from,omitempty" json:"from,omitempty"`
	Pattern    string   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Transforms []string `yaml:"transforms,omitempty" json:"transforms,omitempty"`
}

// File maps a template file in the set to an output path. Target is itself
// a template rendered with the same bindings; when empty, Source is used
// with a trailing ".tmpl" removed.
type File struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}

// RenderConfig holds render options for every file in the set.
type RenderConfig struct {
	Indent bool   `yaml:"indent,omitempty" json:"indent,omitempty"`
	Escape string `yaml:"escape,omitempty" json:"escape,omitempty"`
}
