package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/agentx-labs/stamp/internal/manifest"
)

// ErrNotFound is returned when no source holds the requested set.
var ErrNotFound = errors.New("template set not found")

// ResolveSet searches for a set across sources in priority order. name may
// be the set's path ("javascript/react-component"), its last path element
// ("react-component") or the name declared in its manifest.
func ResolveSet(name string, sources []Source) (*ResolvedSet, error) {
	sets, err := DiscoverSets(sources)
	if err != nil {
		return nil, err
	}

	for _, s := range sets {
		if s.Path == name {
			return s, nil
		}
	}
	for _, s := range sets {
		if NameFromPath(s.Path) == name {
			return s, nil
		}
	}
	for _, s := range sets {
		m, err := manifest.ParseFS(s.source.FS, s.ManifestPath)
		if err == nil && m.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
}

// Load parses the set's manifest and roots a filesystem at its directory.
func (r *ResolvedSet) Load() (*Set, error) {
	m, err := manifest.ParseFS(r.source.FS, r.ManifestPath)
	if err != nil {
		return nil, err
	}
	sub, err := fs.Sub(r.source.FS, path.Dir(r.ManifestPath))
	if err != nil {
		return nil, fmt.Errorf("opening set %s: %w", r.Path, err)
	}
	return &Set{Manifest: m, FS: sub, Path: r.Path, SourceName: r.SourceName}, nil
}

// Validate checks the set's manifest against the schema.
func (r *ResolvedSet) Validate() (*manifest.ValidationResult, error) {
	return manifest.ValidateFS(r.source.FS, r.ManifestPath)
}

// LoadDir loads the template set rooted at dir on disk.
func LoadDir(dir string) (*Set, error) {
	r := &ResolvedSet{
		Path:         path.Base(dir),
		ManifestPath: manifest.FileName,
		SourceName:   "local",
		source:       DirSource("local", dir),
	}
	return r.Load()
}

// Load resolves and loads a set in one step.
func Load(name string, sources []Source) (*Set, error) {
	r, err := ResolveSet(name, sources)
	if err != nil {
		return nil, err
	}
	return r.Load()
}
