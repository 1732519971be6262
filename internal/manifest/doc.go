// Package manifest handles parsing and validation of template-set manifests
// (template.yaml). A manifest names a template set, declares the variables a
// user supplies, the derivations computed from them, the files to render and
// how to render them. Manifests are validated against an embedded JSON
// Schema and, for version fields, with semver.
package manifest
