package binding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/iancoleman/strcase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentx-labs/stamp/internal/template"
)

// Transform is a single-value naming conversion.
type Transform func(string) string

var transforms = map[string]Transform{
	"kebab":           strcase.ToKebab,
	"snake":           strcase.ToSnake,
	"camel":           strcase.ToCamel,
	"lower_camel":     strcase.ToLowerCamel,
	"screaming_snake": strcase.ToScreamingSnake,
	"lower":           strings.ToLower,
	"upper":           strings.ToUpper,
	"title":           title,
	"trim":            strings.TrimSpace,
}

// A Caser is stateful, so each call gets its own.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// LookupTransform returns the named built-in transform.
func LookupTransform(name string) (Transform, bool) {
	t, ok := transforms[name]
	return t, ok
}

// TransformNames lists the built-in transforms in sorted order.
func TransformNames() []string {
	names := make([]string, 0, len(transforms))
	for name := range transforms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func chain(names []string) (Transform, error) {
	fns := make([]Transform, 0, len(names))
	for _, n := range names {
		t, ok := LookupTransform(n)
		if !ok {
			return nil, fmt.Errorf("unknown transform %q (available: %s)", n, strings.Join(TransformNames(), ", "))
		}
		fns = append(fns, t)
	}
	return func(s string) string {
		for _, fn := range fns {
			s = fn(s)
		}
		return s
	}, nil
}

// Derive builds a rule that computes name from the single input from by
// applying the named transforms left to right. With no transforms the
// value is copied.
//
//	Derive("component_class", "component", "kebab")
func Derive(name, from string, transformNames ...string) (Rule, error) {
	fn, err := chain(transformNames)
	if err != nil {
		return Rule{}, fmt.Errorf("derivation %q: %w", name, err)
	}
	return Rule{
		Name:   name,
		Inputs: []string{from},
		Derive: func(in ...string) (string, error) {
			return fn(in[0]), nil
		},
	}, nil
}

// Pattern builds a rule whose value is pattern with each {{input}}
// substituted, then passed through the named transforms. The inputs are the
// placeholders of pattern. Substituted values are not re-parsed.
//
//	Pattern("test_file", "{{component}}.test", "kebab")
func Pattern(name, pattern string, transformNames ...string) (Rule, error) {
	tmpl, err := template.Parse(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("derivation %q: %w", name, err)
	}
	inputs := tmpl.Names()
	if len(inputs) == 0 {
		return Rule{}, fmt.Errorf("derivation %q: pattern %q references no placeholders", name, pattern)
	}
	fn, err := chain(transformNames)
	if err != nil {
		return Rule{}, fmt.Errorf("derivation %q: %w", name, err)
	}

	segs := tmpl.Segments()
	return Rule{
		Name:   name,
		Inputs: inputs,
		Derive: func(in ...string) (string, error) {
			vals := make(map[string]string, len(inputs))
			for i, n := range inputs {
				vals[n] = in[i]
			}
			var b strings.Builder
			for _, seg := range segs {
				if seg.Kind == template.Literal {
					b.WriteString(seg.Text)
					continue
				}
				b.WriteString(vals[seg.Name])
			}
			return fn(b.String()), nil
		},
	}, nil
}
