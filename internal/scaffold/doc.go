// Package scaffold generates projects from template sets. It powers the
// "stamp create" command: values are layered over the set's defaults, every
// file and target path is rendered through the engine, and the results are
// written below an output directory. The built-in sets (react-component,
// go-package) are embedded in the binary.
package scaffold
