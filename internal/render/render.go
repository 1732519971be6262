// Package render substitutes bound values into a parsed template.
package render

import (
	"fmt"
	"html"
	"strings"

	"github.com/agentx-labs/stamp/internal/template"
)

// Escaper converts a value into the syntax of the destination file.
type Escaper func(string) string

var (
	// EscapeNone inserts values unchanged.
	EscapeNone Escaper = func(s string) string { return s }
	// EscapeHTML escapes <, >, &, ' and ".
	EscapeHTML Escaper = html.EscapeString
)

var escapers = map[string]Escaper{
	"":     EscapeNone,
	"none": EscapeNone,
	"html": EscapeHTML,
}

// EscaperByName returns the escaper registered under name ("none", "html").
// The empty name means none.
func EscaperByName(name string) (Escaper, error) {
	e, ok := escapers[name]
	if !ok {
		return nil, fmt.Errorf("unknown escaper %q", name)
	}
	return e, nil
}

type options struct {
	indent bool
	escape Escaper
}

// Option configures Render.
type Option func(*options)

// WithIndent enables line-aware indentation: every continuation line of a
// multi-line value is prefixed with the leading whitespace of the line the
// placeholder sits on. Off by default.
func WithIndent(on bool) Option {
	return func(o *options) { o.indent = on }
}

// WithEscaper applies e to every substituted value.
func WithEscaper(e Escaper) Option {
	return func(o *options) {
		if e == nil {
			e = EscapeNone
		}
		o.escape = e
	}
}

// UnboundPlaceholderError means the binding map lacks a value the template
// requires. After a successful binding.Resolve this indicates a bug.
type UnboundPlaceholderError struct {
	Name string
}

func (e *UnboundPlaceholderError) Error() string {
	return fmt.Sprintf("unbound placeholder %q", e.Name)
}

// Render walks the template's segments in order, copying literals verbatim
// and replacing each placeholder with its bound value. Values are opaque:
// a value containing "{{x}}" is emitted as is and never substituted.
func Render(tmpl *template.Template, values map[string]string, opts ...Option) (string, error) {
	o := options{escape: EscapeNone}
	for _, opt := range opts {
		opt(&o)
	}

	for _, name := range tmpl.Names() {
		if _, ok := values[name]; !ok {
			return "", &UnboundPlaceholderError{Name: name}
		}
	}

	var b strings.Builder
	b.Grow(len(tmpl.Source()))
	for _, seg := range tmpl.Segments() {
		if seg.Kind == template.Literal {
			b.WriteString(seg.Text)
			continue
		}

		v := o.escape(values[seg.Name])
		if o.indent && strings.Contains(v, "\n") {
			v = indent(v, lineIndent(b.String()))
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

// lineIndent returns the leading whitespace of the last line of out.
func lineIndent(out string) string {
	line := out[strings.LastIndexByte(out, '\n')+1:]
	end := 0
	for end < len(line) && (line[end] == ' ' || line[end] == '\t') {
		end++
	}
	return line[:end]
}

// indent prefixes every non-empty line after the first with prefix.
func indent(v, prefix string) string {
	if prefix == "" {
		return v
	}
	lines := strings.Split(v, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
