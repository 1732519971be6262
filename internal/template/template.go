package template

import (
	"strings"
)

// Kind discriminates the two segment variants.
type Kind int

const (
	// Literal is a span of source text copied to the output verbatim.
	Literal Kind = iota
	// Ref is a reference to a named placeholder.
	Ref
)

func (k Kind) String() string {
	switch k {
	case Literal:
		return "literal"
	case Ref:
		return "ref"
	default:
		return "unknown"
	}
}

// Pos is a location in the template source. Line and Column are 1-based;
// Column counts runes, not bytes.
type Pos struct {
	Offset int
	Line   int
	Column int
}

// Segment is either a literal span (Text set) or a placeholder reference
// (Name set). Text of a literal holds the unescaped text.
type Segment struct {
	Kind Kind
	Text string
	Name string
	Pos  Pos
}

// Placeholder is a distinct placeholder name found in a template.
type Placeholder struct {
	Name        string
	Occurrences int  // always >= 1
	Derived     bool // set by binding.Rules.Classify, false as parsed
}

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	source       string
	segments     []Segment
	placeholders []Placeholder
	index        map[string]int // name -> position in placeholders
}

// Source returns the text the template was parsed from.
func (t *Template) Source() string {
	return t.source
}

// Segments returns a copy of the template's segments in source order.
func (t *Template) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// Placeholders returns the distinct placeholders in order of first
// appearance, each carrying its occurrence count.
func (t *Template) Placeholders() []Placeholder {
	out := make([]Placeholder, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// Names returns the distinct placeholder names in order of first appearance.
func (t *Template) Names() []string {
	names := make([]string, len(t.placeholders))
	for i, p := range t.placeholders {
		names[i] = p.Name
	}
	return names
}

// Has reports whether the template references the named placeholder.
func (t *Template) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Occurrences returns how many times name is referenced, or 0.
func (t *Template) Occurrences(name string) int {
	i, ok := t.index[name]
	if !ok {
		return 0
	}
	return t.placeholders[i].Occurrences
}

// String reassembles the template in canonical form: placeholders are
// written as {{name}} and literal double braces are re-escaped, so the
// result parses back to an equivalent template.
func (t *Template) String() string {
	var b strings.Builder
	b.Grow(len(t.source))
	for _, seg := range t.segments {
		switch seg.Kind {
		case Literal:
			b.WriteString(strings.ReplaceAll(seg.Text, openDelim, escapedOpen))
		case Ref:
			b.WriteString(openDelim)
			b.WriteString(seg.Name)
			b.WriteString(closeDelim)
		}
	}
	return b.String()
}
