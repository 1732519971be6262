// Package template parses scaffold templates into an immutable sequence of
// literal and placeholder segments. Placeholders use double braces
// ({{name}}); single braces belong to the host language (JSX expressions,
// Go blocks, JSON objects) and always pass through as literal text.
//
// A literal "{{" is written as "\{{". The escape is resolved at parse time,
// so rendered output contains a plain "{{" and is no longer a fixed point:
// parsing that output again reads the brace pair as a placeholder. Output
// is free of "{{" and re-renders unchanged only when the template uses no
// escapes. Template.String re-escapes literals for a lossless round trip.
package template
