// Package cli defines the Cobra command tree for the stamp CLI. Each file
// in this package registers one top-level command (render, inspect, create,
// list, validate, etc.) with the root command. Command implementations
// delegate to internal packages for business logic and only handle flag
// parsing, I/O formatting, and logging.
package cli
