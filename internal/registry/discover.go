package registry

import (
	"io/fs"
	"os"
	"path"
	"sort"

	"github.com/agentx-labs/stamp/internal/manifest"
)

// DiscoveredSet is a template set enriched with manifest metadata.
type DiscoveredSet struct {
	Path        string   `json:"path"`
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Source      string   `json:"source"`
}

// DirSource returns a Source backed by a directory on disk.
func DirSource(name, dir string) Source {
	return Source{Name: name, FS: os.DirFS(dir), Root: dir}
}

// DiscoverAll walks all sources and returns every template set with the
// metadata from its manifest. Sets found in earlier sources take priority
// (later duplicates are skipped). Sets whose manifest does not parse are
// still listed, named after their directory.
func DiscoverAll(sources []Source) ([]DiscoveredSet, error) {
	resolved, err := DiscoverSets(sources)
	if err != nil {
		return nil, err
	}

	var result []DiscoveredSet
	for _, r := range resolved {
		ds := DiscoveredSet{
			Path:   r.Path,
			Name:   NameFromPath(r.Path),
			Source: r.SourceName,
		}

		m, err := manifest.ParseFS(r.source.FS, r.ManifestPath)
		if err == nil {
			if m.Name != "" {
				ds.Name = m.Name
			}
			ds.Version = m.Version
			ds.Description = m.Description
			ds.Tags = m.Tags
		}
		result = append(result, ds)
	}
	return result, nil
}

// DiscoverSets walks all sources and returns every directory holding a
// template.yaml, sorted by path within each source. Sets found in earlier
// sources take priority.
func DiscoverSets(sources []Source) ([]*ResolvedSet, error) {
	seen := make(map[string]bool)
	var result []*ResolvedSet

	for _, src := range sources {
		sets, err := walkSource(src)
		if err != nil {
			continue // skip inaccessible sources
		}
		for _, s := range sets {
			if !seen[s.Path] {
				seen[s.Path] = true
				result = append(result, s)
			}
		}
	}
	return result, nil
}

// walkSource finds template sets at any nesting depth. A set's own
// subdirectories are not searched for further sets.
func walkSource(src Source) ([]*ResolvedSet, error) {
	if src.FS == nil {
		return nil, fs.ErrNotExist
	}

	var result []*ResolvedSet
	err := fs.WalkDir(src.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == "." {
				return err
			}
			return nil // skip inaccessible entries
		}
		if !d.IsDir() {
			return nil
		}

		manifestPath := path.Join(p, manifest.FileName)
		if _, err := fs.Stat(src.FS, manifestPath); err != nil {
			return nil
		}
		if p == "." {
			// A source that is itself a set is addressed by its source name.
			result = append(result, &ResolvedSet{Path: src.Name, ManifestPath: manifestPath, SourceName: src.Name, source: src})
			return fs.SkipAll
		}
		result = append(result, &ResolvedSet{Path: p, ManifestPath: manifestPath, SourceName: src.Name, source: src})
		return fs.SkipDir
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Path < result[j].Path })
	return result, nil
}

// NameFromPath returns the last element of a set path.
// "javascript/react-component" -> "react-component"
func NameFromPath(setPath string) string {
	return path.Base(setPath)
}
