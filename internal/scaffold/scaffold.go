package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/agentx-labs/stamp/internal/binding"
	"github.com/agentx-labs/stamp/internal/engine"
	"github.com/agentx-labs/stamp/internal/manifest"
	"github.com/agentx-labs/stamp/internal/registry"
)

// ErrOutputNotEmpty is returned when the output directory already has
// files and Options.Force is not set.
var ErrOutputNotEmpty = errors.New("output directory is not empty")

// DefaultConcurrency bounds parallel rendering when Options.Concurrency is
// not positive.
const DefaultConcurrency = 4

// Options control Generate.
type Options struct {
	Force       bool // write into a non-empty directory, overwriting files
	DryRun      bool // render only; nothing is written
	Concurrency int

	// EngineVersion is checked against the manifest's requires constraint.
	EngineVersion string

	// Config holds configured fallbacks (e.g. author). They apply only to
	// variables the set declares and lose to explicit values.
	Config map[string]string

	Logger *slog.Logger
}

// File is one rendered output file.
type File struct {
	Path    string // relative to the output directory, slash-separated
	Content string
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Rendered  []File
	Warnings  []string
}

// Generate renders every file of set with values and writes the results
// below outputDir. Values are layered: variable defaults, then
// opts.Config, then values. All files are rendered before anything is
// written, so a missing value or malformed template leaves outputDir
// untouched.
func Generate(ctx context.Context, set *registry.Set, values map[string]string, outputDir string, opts Options) (*Result, error) {
	m := set.Manifest
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	logger = logger.With("set", m.Name)

	if err := m.CheckCompatible(opts.EngineVersion); err != nil {
		return nil, err
	}

	merged := mergeValues(m, values, opts.Config)
	if err := checkRequired(m, merged); err != nil {
		return nil, err
	}

	rules, err := m.Rules()
	if err != nil {
		return nil, fmt.Errorf("building derivations for %s: %w", m.Name, err)
	}
	renderOpts, err := m.RenderOptions()
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", m.Name, err)
	}
	eng, err := engine.New(rules, renderOpts...)
	if err != nil {
		return nil, err
	}
	// Target paths are file names, not content: no escaping, no indent.
	paths, err := engine.New(rules)
	if err != nil {
		return nil, err
	}

	rendered, unused, err := renderAll(ctx, engines{content: eng, path: paths}, set, merged, opts.Concurrency, logger)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputDir: outputDir, Rendered: rendered}
	for _, f := range rendered {
		result.Files = append(result.Files, f.Path)
	}
	for _, name := range unused {
		if _, ok := values[name]; ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("value %q is not used by any file", name))
		}
	}
	for _, issue := range m.Lint() {
		msg := issue.Message
		if issue.Path != "" {
			msg = issue.Path + ": " + msg
		}
		result.Warnings = append(result.Warnings, msg)
	}

	if opts.DryRun {
		logger.Debug("dry run, nothing written", "files", len(rendered))
		return result, nil
	}

	if err := prepareOutputDir(outputDir, opts.Force); err != nil {
		return nil, err
	}
	for _, f := range rendered {
		outPath := filepath.Join(outputDir, filepath.FromSlash(f.Path))
		if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
			return nil, fmt.Errorf("creating directory for %s: %w", f.Path, err)
		}
		if err := os.WriteFile(outPath, []byte(f.Content), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		logger.Debug("wrote file", "path", outPath, "bytes", len(f.Content))
	}
	return result, nil
}

// mergeValues layers defaults < config < explicit values.
func mergeValues(m *manifest.Manifest, values, config map[string]string) map[string]string {
	merged := m.Defaults()
	for k, v := range config {
		if _, declared := m.Variable(k); declared && v != "" {
			merged[k] = v
		}
	}
	for k, v := range values {
		merged[k] = v
	}
	return merged
}

// checkRequired reports required variables with no value, in declaration
// order.
func checkRequired(m *manifest.Manifest, values map[string]string) error {
	var missing []string
	for _, v := range m.Variables {
		if !v.Required {
			continue
		}
		if _, ok := values[v.Name]; !ok {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) > 0 {
		return &binding.MissingBindingError{Names: missing}
	}
	return nil
}

// engines pairs the content engine, which applies the set's render
// options, with a plain engine for target paths.
type engines struct {
	content *engine.Engine
	path    *engine.Engine
}

// renderAll renders the content and target path of every file in
// parallel. Output keeps manifest order. unused lists value names no file
// consumed.
func renderAll(ctx context.Context, eng engines, set *registry.Set, values map[string]string, concurrency int, logger *slog.Logger) ([]File, []string, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	files := set.Manifest.Files
	out := make([]File, len(files))
	unused := make([][]string, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rf, u, err := renderFile(eng, set.FS, f, values)
			if err != nil {
				return err
			}
			logger.Debug("rendered file", "source", f.Source, "target", rf.Path)
			out[i] = rf
			unused[i] = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	seen := make(map[string]string, len(out))
	for i, f := range out {
		if prev, dup := seen[f.Path]; dup {
			return nil, nil, fmt.Errorf("files %s and %s both render to %s", prev, files[i].Source, f.Path)
		}
		seen[f.Path] = files[i].Source
	}
	return out, intersect(unused), nil
}

func renderFile(eng engines, fsys fs.FS, f manifest.File, values map[string]string) (File, []string, error) {
	data, err := fs.ReadFile(fsys, f.Source)
	if err != nil {
		return File{}, nil, fmt.Errorf("reading template %s: %w", f.Source, err)
	}
	content, err := eng.content.Generate(string(data), values)
	if err != nil {
		return File{}, nil, fmt.Errorf("rendering %s: %w", f.Source, err)
	}
	target, err := eng.path.Generate(manifest.TargetFor(f), values)
	if err != nil {
		return File{}, nil, fmt.Errorf("rendering target of %s: %w", f.Source, err)
	}

	p := filepath.ToSlash(filepath.Clean(filepath.FromSlash(target.Text)))
	if !filepath.IsLocal(filepath.FromSlash(p)) {
		return File{}, nil, fmt.Errorf("target %q of %s escapes the output directory", target.Text, f.Source)
	}

	var unused []string
	for _, name := range content.Unused {
		if slices.Contains(target.Unused, name) {
			unused = append(unused, name)
		}
	}
	return File{Path: p, Content: content.Text}, unused, nil
}

// intersect returns the names present in every list, sorted.
func intersect(lists [][]string) []string {
	if len(lists) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, l := range lists {
		for _, name := range l {
			counts[name]++
		}
	}
	var out []string
	for name, n := range counts {
		if n == len(lists) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// prepareOutputDir creates dir, refusing a non-empty one unless force.
func prepareOutputDir(dir string, force bool) error {
	entries, err := os.ReadDir(dir)
	if err == nil && len(entries) > 0 && !force {
		return fmt.Errorf("%w: %s; use --force to overwrite", ErrOutputNotEmpty, dir)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	return nil
}
