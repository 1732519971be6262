package template

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	openDelim   = "{{"
	closeDelim  = "}}"
	escapedOpen = `\{{`
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidName reports whether name satisfies the placeholder grammar
// [A-Za-z_][A-Za-z0-9_]*.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Parse scans source left to right and splits it into literal and
// placeholder segments.
//
// Only a double brace opens a placeholder. A lone "{", and any "}" or "}}"
// outside a placeholder, is literal text. "\{{" is an escape for a literal
// "{{". Whitespace around a placeholder name is ignored.
func Parse(source string) (*Template, error) {
	p := &parser{src: source, lines: lineStarts(source)}
	if err := p.run(); err != nil {
		return nil, err
	}

	t := &Template{
		source:   source,
		segments: p.segments,
		index:    make(map[string]int),
	}
	for _, seg := range p.segments {
		if seg.Kind != Ref {
			continue
		}
		if i, ok := t.index[seg.Name]; ok {
			t.placeholders[i].Occurrences++
			continue
		}
		t.index[seg.Name] = len(t.placeholders)
		t.placeholders = append(t.placeholders, Placeholder{Name: seg.Name, Occurrences: 1})
	}
	return t, nil
}

// MustParse is like Parse but panics on error. Intended for templates
// compiled into the binary.
func MustParse(source string) *Template {
	t, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return t
}

type parser struct {
	src      string
	lines    []int
	segments []Segment

	lit      strings.Builder
	litStart int
}

func (p *parser) run() error {
	i := 0
	p.litStart = 0
	for i < len(p.src) {
		rest := p.src[i:]
		switch {
		case strings.HasPrefix(rest, escapedOpen):
			p.lit.WriteString(openDelim)
			i += len(escapedOpen)

		case strings.HasPrefix(rest, openDelim):
			p.flush()
			n, err := p.placeholder(i)
			if err != nil {
				return err
			}
			i += n
			p.litStart = i

		default:
			p.lit.WriteByte(p.src[i])
			i++
		}
	}
	p.flush()
	return nil
}

// placeholder parses the placeholder opening at offset start and returns
// the number of source bytes it spans.
func (p *parser) placeholder(start int) (int, error) {
	bodyStart := start + len(openDelim)
	end := strings.Index(p.src[bodyStart:], closeDelim)
	if end < 0 {
		return 0, p.errorf(start, "", "unclosed placeholder: %q has no matching %q", openDelim, closeDelim)
	}
	body := p.src[bodyStart : bodyStart+end]

	if nested := strings.Index(body, openDelim); nested >= 0 {
		return 0, p.errorf(bodyStart+nested, "", "nested placeholder: %q before closing %q", openDelim, closeDelim)
	}

	name := strings.TrimSpace(body)
	if !ValidName(name) {
		if name == "" {
			return 0, p.errorf(start, name, "empty placeholder name")
		}
		return 0, p.errorf(start, name, "invalid placeholder name %q: must match [A-Za-z_][A-Za-z0-9_]*", name)
	}

	p.segments = append(p.segments, Segment{
		Kind: Ref,
		Name: name,
		Pos:  p.pos(start),
	})
	return len(openDelim) + end + len(closeDelim), nil
}

func (p *parser) flush() {
	if p.lit.Len() == 0 {
		return
	}
	p.segments = append(p.segments, Segment{
		Kind: Literal,
		Text: p.lit.String(),
		Pos:  p.pos(p.litStart),
	})
	p.lit.Reset()
}

func (p *parser) errorf(offset int, name, format string, args ...any) error {
	return &MalformedTemplateError{
		Pos:    p.pos(offset),
		Name:   name,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (p *parser) pos(offset int) Pos {
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > offset }) - 1
	return Pos{
		Offset: offset,
		Line:   line + 1,
		Column: utf8.RuneCountInString(p.src[p.lines[line]:offset]) + 1,
	}
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(src string) []int {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
