package binding

import (
	"sort"

	"github.com/agentx-labs/stamp/internal/template"
)

// Map binds placeholder names to values.
type Map map[string]string

// Resolution is the outcome of a successful Resolve.
type Resolution struct {
	// Values holds an entry for every placeholder in the template plus any
	// intermediate value a derivation needed.
	Values Map
	// Derived lists names computed by rules, in evaluation order.
	Derived []string
	// Unused lists supplied keys that nothing consumed, sorted. These are
	// warnings, not errors.
	Unused []string
}

// Resolve completes the binding map for tmpl.
//
// Rules are checked for cycles first. Every placeholder not produced by a
// rule must be present in values, as must every input a needed rule cannot
// derive; all absent names are reported together in a MissingBindingError.
// A value supplied for a derived name overrides its rule. Values are never
// escaped.
func Resolve(tmpl *template.Template, values map[string]string, rules Rules) (*Resolution, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}

	r := &resolver{
		values:   values,
		rules:    rules,
		out:      make(Map),
		consumed: make(map[string]bool),
		missed:   make(map[string]bool),
	}

	names := tmpl.Names()
	for _, name := range names {
		r.need(name)
	}
	if len(r.missing) > 0 {
		return nil, &MissingBindingError{Names: r.missing}
	}

	for _, name := range names {
		if _, err := r.eval(name); err != nil {
			return nil, err
		}
	}

	res := &Resolution{Values: r.out, Derived: r.derived}
	for k := range values {
		if !r.consumed[k] {
			res.Unused = append(res.Unused, k)
		}
	}
	sort.Strings(res.Unused)
	return res, nil
}

type resolver struct {
	values map[string]string
	rules  Rules

	out      Map
	derived  []string
	consumed map[string]bool
	missing  []string
	missed   map[string]bool
}

// need walks the dependencies of name, recording supplied keys as consumed
// and collecting names nobody can provide.
func (r *resolver) need(name string) {
	if _, ok := r.values[name]; ok {
		r.consumed[name] = true
		return
	}
	if rule, ok := r.rules.Get(name); ok {
		for _, in := range rule.Inputs {
			r.need(in)
		}
		return
	}
	if !r.missed[name] {
		r.missed[name] = true
		r.missing = append(r.missing, name)
	}
}

func (r *resolver) eval(name string) (string, error) {
	if v, ok := r.out[name]; ok {
		return v, nil
	}
	if v, ok := r.values[name]; ok {
		r.out[name] = v
		return v, nil
	}

	rule, _ := r.rules.Get(name)
	args := make([]string, len(rule.Inputs))
	for i, in := range rule.Inputs {
		v, err := r.eval(in)
		if err != nil {
			return "", err
		}
		args[i] = v
	}

	v, err := rule.Derive(args...)
	if err != nil {
		return "", &DerivationError{Name: name, Err: err}
	}
	r.out[name] = v
	r.derived = append(r.derived, name)
	return v, nil
}
