package template

import "fmt"

// MalformedTemplateError reports a template that cannot be parsed: an
// unclosed or nested placeholder, or a name outside the grammar.
type MalformedTemplateError struct {
	Pos    Pos
	Name   string // offending name, if any
	Reason string
}

func (e *MalformedTemplateError) Error() string {
	return fmt.Sprintf("malformed template at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Reason)
}
