// Package binding resolves the values bound to a template's placeholders.
// User-supplied values cover the primary placeholders; derivation rules
// compute the rest (a CSS class from a component name, a package name from a
// module path) in dependency order.
package binding

import (
	"fmt"
	"sort"

	"github.com/agentx-labs/stamp/internal/template"
)

// Func computes a derived value from the values of a rule's inputs, passed
// in the order the inputs are declared.
type Func func(inputs ...string) (string, error)

// Rule derives the placeholder Name from one or more Inputs.
type Rule struct {
	Name   string
	Inputs []string
	Derive Func
}

// Rules is an immutable registry of derivation rules keyed by the name of
// the placeholder they produce. The zero value holds no rules.
type Rules struct {
	byName map[string]Rule
	names  []string // sorted
}

// NewRules builds a registry. Names and inputs must satisfy the placeholder
// grammar and each name may be derived by at most one rule. Cycles are not
// checked here; see Validate.
func NewRules(rules ...Rule) (Rules, error) {
	rs := Rules{byName: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		if !template.ValidName(r.Name) {
			return Rules{}, fmt.Errorf("invalid derivation name %q", r.Name)
		}
		if r.Derive == nil {
			return Rules{}, fmt.Errorf("derivation %q has no function", r.Name)
		}
		if len(r.Inputs) == 0 {
			return Rules{}, fmt.Errorf("derivation %q has no inputs", r.Name)
		}
		for _, in := range r.Inputs {
			if !template.ValidName(in) {
				return Rules{}, fmt.Errorf("derivation %q: invalid input name %q", r.Name, in)
			}
		}
		if _, dup := rs.byName[r.Name]; dup {
			return Rules{}, fmt.Errorf("duplicate derivation for %q", r.Name)
		}

		inputs := make([]string, len(r.Inputs))
		copy(inputs, r.Inputs)
		r.Inputs = inputs
		rs.byName[r.Name] = r
		rs.names = append(rs.names, r.Name)
	}
	sort.Strings(rs.names)
	return rs, nil
}

// MustRules is like NewRules but panics on error.
func MustRules(rules ...Rule) Rules {
	rs, err := NewRules(rules...)
	if err != nil {
		panic(err)
	}
	return rs
}

// Len returns the number of registered rules.
func (rs Rules) Len() int { return len(rs.names) }

// Names returns the derived names in sorted order.
func (rs Rules) Names() []string {
	out := make([]string, len(rs.names))
	copy(out, rs.names)
	return out
}

// Get returns the rule that derives name.
func (rs Rules) Get(name string) (Rule, bool) {
	r, ok := rs.byName[name]
	return r, ok
}

// Covers reports whether name is derived by a rule.
func (rs Rules) Covers(name string) bool {
	_, ok := rs.byName[name]
	return ok
}

// Validate reports the first derivation cycle found, walking rules in name
// order. A rule whose input is (transitively) its own output is a cycle.
func (rs Rules) Validate() error {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(rs.names))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		state[name] = visiting
		stack = append(stack, name)
		for _, in := range rs.byName[name].Inputs {
			if !rs.Covers(in) {
				continue
			}
			switch state[in] {
			case visiting:
				return &CyclicDerivationError{Cycle: cycleFrom(stack, in)}
			case unvisited:
				if err := visit(in); err != nil {
					return err
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	for _, name := range rs.names {
		if state[name] == unvisited {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

func cycleFrom(stack []string, start string) []string {
	for i, n := range stack {
		if n == start {
			cycle := make([]string, 0, len(stack)-i+1)
			cycle = append(cycle, stack[i:]...)
			return append(cycle, start)
		}
	}
	return []string{start, start}
}

// Classify returns a copy of ps with Derived set on every placeholder a
// rule produces.
func (rs Rules) Classify(ps []template.Placeholder) []template.Placeholder {
	out := make([]template.Placeholder, len(ps))
	for i, p := range ps {
		p.Derived = rs.Covers(p.Name)
		out[i] = p
	}
	return out
}
