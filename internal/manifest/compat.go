package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/agentx-labs/stamp/internal/binding"
	"github.com/agentx-labs/stamp/internal/render"
	"github.com/agentx-labs/stamp/internal/template"
)

// ErrIncompatible is returned by CheckCompatible when the engine version
// does not satisfy a manifest's requires constraint.
var ErrIncompatible = errors.New("template set requires a different engine version")

// Rules builds the derivation registry declared by the manifest.
func (m *Manifest) Rules() (binding.Rules, error) {
	rules := make([]binding.Rule, 0, len(m.Derivations))
	for _, d := range m.Derivations {
		var (
			r   binding.Rule
			err error
		)
		switch {
		case d.From != "" && d.Pattern != "":
			return binding.Rules{}, fmt.Errorf("derivation %q: from and pattern are mutually exclusive", d.Name)
		case d.Pattern != "":
			r, err = binding.Pattern(d.Name, d.Pattern, d.Transforms...)
		case d.From != "":
			r, err = binding.Derive(d.Name, d.From, d.Transforms...)
		default:
			return binding.Rules{}, fmt.Errorf("derivation %q: one of from or pattern is required", d.Name)
		}
		if err != nil {
			return binding.Rules{}, err
		}
		rules = append(rules, r)
	}
	return binding.NewRules(rules...)
}

// RenderOptions converts the manifest's render block into render options.
func (m *Manifest) RenderOptions() ([]render.Option, error) {
	esc, err := render.EscaperByName(m.Render.Escape)
	if err != nil {
		return nil, fmt.Errorf("render.escape: %w", err)
	}
	return []render.Option{render.WithIndent(m.Render.Indent), render.WithEscaper(esc)}, nil
}

// CheckCompatible reports whether engineVersion satisfies the manifest's
// requires constraint. Unversioned builds ("dev", "") and manifests without
// a constraint are always compatible.
func (m *Manifest) CheckCompatible(engineVersion string) error {
	if m.Requires == "" || engineVersion == "" || engineVersion == "dev" {
		return nil
	}
	c, err := semver.NewConstraint(m.Requires)
	if err != nil {
		return fmt.Errorf("parsing requires constraint %q: %w", m.Requires, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(engineVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing engine version %q: %w", engineVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: %s needs %s, running %s", ErrIncompatible, m.Name, m.Requires, engineVersion)
	}
	return nil
}

// Lint performs checks the schema cannot express: semver fields, unique
// variable names, buildable and acyclic derivations, and that no
// derivation shadows a declared variable.
func (m *Manifest) Lint() []ValidationIssue {
	var issues []ValidationIssue
	add := func(path, keyword, format string, args ...any) {
		issues = append(issues, ValidationIssue{Path: path, Keyword: keyword, Message: printer.Sprintf(format, args...)})
	}

	if _, err := semver.NewVersion(strings.TrimPrefix(m.Version, "v")); err != nil {
		add("/version", "semver", "invalid version %q: %v", m.Version, err)
	}
	if m.Requires != "" {
		if _, err := semver.NewConstraint(m.Requires); err != nil {
			add("/requires", "semver", "invalid constraint %q: %v", m.Requires, err)
		}
	}

	seen := make(map[string]bool)
	for i, v := range m.Variables {
		if seen[v.Name] {
			add(fmt.Sprintf("/variables/%d/name", i), "unique", "duplicate variable %q", v.Name)
		}
		seen[v.Name] = true
	}
	for i, d := range m.Derivations {
		if seen[d.Name] {
			add(fmt.Sprintf("/derivations/%d/name", i), "unique", "derivation %q shadows a variable", d.Name)
		}
	}

	rules, err := m.Rules()
	if err != nil {
		add("/derivations", "derivation", "%v", err)
	} else if err := rules.Validate(); err != nil {
		add("/derivations", "cycle", "%v", err)
	}

	for i, f := range m.Files {
		if _, err := template.Parse(TargetFor(f)); err != nil {
			add(fmt.Sprintf("/files/%d/target", i), "template", "%v", err)
		}
	}

	if _, err := render.EscaperByName(m.Render.Escape); err != nil {
		add("/render/escape", "enum", "%v", err)
	}
	return issues
}
