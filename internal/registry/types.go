package registry

import (
	"io/fs"

	"github.com/agentx-labs/stamp/internal/manifest"
)

// Source is a location to search for template sets (built-ins, the user's
// templates directory, an extra --templates-dir).
type Source struct {
	Name string // e.g. "builtin", "user"
	FS   fs.FS
	Root string // display path; empty for embedded sources
}

// ResolvedSet is a template set found in a source.
type ResolvedSet struct {
	Path         string // slash-separated directory relative to the source root
	ManifestPath string // path of template.yaml inside the source FS
	SourceName   string
	source       Source
}

// Set is a loaded template set: its manifest and a filesystem rooted at the
// set's directory.
type Set struct {
	Manifest   *manifest.Manifest
	FS         fs.FS
	Path       string
	SourceName string
}
