package cli

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/agentx-labs/stamp/internal/binding"
	"github.com/agentx-labs/stamp/internal/template"
)

// parseAssignments turns repeated --set name=value flags into a map. The
// value may be empty and may contain '='.
func parseAssignments(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected name=value", p)
		}
		name = strings.TrimSpace(name)
		if !template.ValidName(name) {
			return nil, fmt.Errorf("invalid --set %q: %q is not a placeholder name", p, name)
		}
		values[name] = value
	}
	return values, nil
}

// loadValues reads a YAML mapping of placeholder names to scalar values.
// Scalars keep their source text: 1.10, 01234 and 0x1F stay as written.
func loadValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading values file %s: %w", path, err)
	}
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing values file %s: %w", path, err)
	}
	values := make(map[string]string, len(raw))
	for k, node := range raw {
		n := &node
		if n.Kind == yaml.AliasNode && n.Alias != nil {
			n = n.Alias
		}
		if n.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("values file %s: %q must be a scalar", path, k)
		}
		if n.Tag == "!!null" {
			values[k] = ""
			continue
		}
		values[k] = n.Value
	}
	return values, nil
}

// collectValues merges a values file (if any) with --set flags; flags win.
func collectValues(valuesFile string, pairs []string) (map[string]string, error) {
	values := make(map[string]string)
	if valuesFile != "" {
		fromFile, err := loadValues(valuesFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			values[k] = v
		}
	}
	fromFlags, err := parseAssignments(pairs)
	if err != nil {
		return nil, err
	}
	for k, v := range fromFlags {
		values[k] = v
	}
	return values, nil
}

// parseDerivations turns --derive flags into rules. Two forms are accepted:
//
//	name=from[:transform,transform...]   e.g. component_class=component:kebab
//	name=<template>                      e.g. file={{component}}.test.jsx
func parseDerivations(specs []string) (binding.Rules, error) {
	rules := make([]binding.Rule, 0, len(specs))
	for _, s := range specs {
		name, rhs, ok := strings.Cut(s, "=")
		if !ok || rhs == "" {
			return binding.Rules{}, fmt.Errorf("invalid --derive %q: expected name=from[:transforms] or name=<template>", s)
		}

		var (
			r   binding.Rule
			err error
		)
		if strings.Contains(rhs, "{{") {
			r, err = binding.Pattern(name, rhs)
		} else {
			from, list, _ := strings.Cut(rhs, ":")
			var transforms []string
			if list != "" {
				for _, t := range strings.Split(list, ",") {
					transforms = append(transforms, strings.TrimSpace(t))
				}
			}
			r, err = binding.Derive(name, from, transforms...)
		}
		if err != nil {
			return binding.Rules{}, fmt.Errorf("invalid --derive %q: %w", s, err)
		}
		rules = append(rules, r)
	}
	return binding.NewRules(rules...)
}

// missingHint suggests the flags that would satisfy a MissingBindingError.
func missingHint(err error) string {
	var missing *binding.MissingBindingError
	if !errors.As(err, &missing) {
		return ""
	}
	names := append([]string(nil), missing.Names...)
	sort.Strings(names)
	var b strings.Builder
	b.WriteString("Supply the missing values with:")
	for _, n := range names {
		fmt.Fprintf(&b, " --set %s=...", n)
	}
	return b.String()
}
