// Package engine ties parsing, binding resolution and rendering together.
// It performs no I/O: callers read template text from wherever they like and
// write the returned string wherever they like.
package engine

import (
	"github.com/agentx-labs/stamp/internal/binding"
	"github.com/agentx-labs/stamp/internal/render"
	"github.com/agentx-labs/stamp/internal/template"
)

// Generate parses source, resolves values against rules and renders the
// result. The first error is returned and no partial output is produced.
func Generate(source string, values map[string]string, rules binding.Rules, opts ...render.Option) (string, error) {
	tmpl, err := template.Parse(source)
	if err != nil {
		return "", err
	}
	res, err := binding.Resolve(tmpl, values, rules)
	if err != nil {
		return "", err
	}
	return render.Render(tmpl, res.Values, opts...)
}

// Engine holds a validated rule set and render options so many templates
// can be generated against the same configuration. Safe for concurrent use.
type Engine struct {
	rules binding.Rules
	opts  []render.Option
}

// New validates rules, failing with a *binding.CyclicDerivationError if
// they contain a cycle.
func New(rules binding.Rules, opts ...render.Option) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Engine{rules: rules, opts: opts}, nil
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() binding.Rules { return e.rules }

// Output is the result of (*Engine).Generate.
type Output struct {
	Text         string
	Placeholders []template.Placeholder
	Values       binding.Map
	// Unused lists supplied values the template never consumed.
	Unused []string
}

// Generate is the package-level Generate with the engine's configuration,
// additionally reporting placeholders and unused values.
func (e *Engine) Generate(source string, values map[string]string) (*Output, error) {
	tmpl, err := template.Parse(source)
	if err != nil {
		return nil, err
	}
	return e.Execute(tmpl, values)
}

// Execute renders an already parsed template.
func (e *Engine) Execute(tmpl *template.Template, values map[string]string) (*Output, error) {
	res, err := binding.Resolve(tmpl, values, e.rules)
	if err != nil {
		return nil, err
	}
	text, err := render.Render(tmpl, res.Values, e.opts...)
	if err != nil {
		return nil, err
	}
	return &Output{
		Text:         text,
		Placeholders: e.rules.Classify(tmpl.Placeholders()),
		Values:       res.Values,
		Unused:       res.Unused,
	}, nil
}

// Inspect parses source and returns its placeholders with Derived set
// according to the engine's rules.
func (e *Engine) Inspect(source string) ([]template.Placeholder, error) {
	tmpl, err := template.Parse(source)
	if err != nil {
		return nil, err
	}
	return e.rules.Classify(tmpl.Placeholders()), nil
}
