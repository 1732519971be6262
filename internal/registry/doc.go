// Package registry discovers and resolves template sets. It scans sources
// (the embedded built-ins, the user's templates directory, extra
// directories) for template.yaml manifests; earlier sources shadow later
// ones, so a user can override a built-in set by name.
package registry
