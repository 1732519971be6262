package scaffold

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/agentx-labs/stamp/internal/binding"
	"github.com/agentx-labs/stamp/internal/manifest"
	"github.com/agentx-labs/stamp/internal/registry"
	"github.com/agentx-labs/stamp/internal/template"
)

func TestGenerateReactComponent(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "components")

	values := map[string]string{
		"component":  "UserCard",
		"props":      "name, email",
		"prop_types": "name: PropTypes.string,\nemail: PropTypes.string,",
	}
	result, err := Generate(context.Background(), loadBuiltin(t, "react-component"), values, outDir, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{"UserCard/UserCard.jsx", "UserCard/index.js"})
	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}

	jsx := readGenerated(t, outDir, "UserCard/UserCard.jsx")
	assertContains(t, jsx, "const UserCard = ({ name, email }) => {")
	assertContains(t, jsx, `<div className="user-card">`)
	assertContains(t, jsx, "UserCard.propTypes = {\n  name: PropTypes.string,\n  email: PropTypes.string,\n};")
	assertContains(t, jsx, "export default UserCard;")
	assertNotContains(t, jsx, "{{")

	index := readGenerated(t, outDir, "UserCard/index.js")
	assertContains(t, index, "export { default } from './UserCard';")
}

func TestGenerateGoPackage(t *testing.T) {
	outDir := t.TempDir()

	result, err := Generate(context.Background(), loadBuiltin(t, "go-package"), map[string]string{"package": "store"}, outDir, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{"store/doc.go", "store/store.go", "store/store_test.go"})

	assertContains(t, readGenerated(t, outDir, "store/doc.go"), "// Package store is a new package.\npackage store")
	code := readGenerated(t, outDir, "store/store.go")
	assertContains(t, code, "type Store struct{}")
	assertContains(t, code, "return &Store{}")
	assertContains(t, readGenerated(t, outDir, "store/store_test.go"), "func TestStore(t *testing.T) {")
}

func TestGenerateValueLayering(t *testing.T) {
	set := loadBuiltin(t, "react-component")
	config := map[string]string{"author": "Configured", "unrelated": "x"}

	t.Run("config fills declared variables", func(t *testing.T) {
		result, err := Generate(context.Background(), set, map[string]string{"component": "Nav"}, "", Options{DryRun: true, Config: config})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		assertContains(t, result.Rendered[0].Content, "@author Configured")
		if len(result.Warnings) != 0 {
			t.Errorf("config keys must not produce warnings, got %v", result.Warnings)
		}
	})

	t.Run("explicit values win", func(t *testing.T) {
		values := map[string]string{"component": "Nav", "author": "Flag"}
		result, err := Generate(context.Background(), set, values, "", Options{DryRun: true, Config: config})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		assertContains(t, result.Rendered[0].Content, "@author Flag")
	})

	t.Run("explicit value overrides derivation", func(t *testing.T) {
		values := map[string]string{"component": "Nav", "component_class": "site-nav"}
		result, err := Generate(context.Background(), set, values, "", Options{DryRun: true})
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		assertContains(t, result.Rendered[0].Content, `className="site-nav"`)
	})
}

func TestGenerateMissingRequired(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	_, err := Generate(context.Background(), loadBuiltin(t, "react-component"), nil, outDir, Options{})
	var missing *binding.MissingBindingError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingBindingError", err)
	}
	if len(missing.Names) != 1 || missing.Names[0] != "component" {
		t.Errorf("Names = %v, want [component]", missing.Names)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("output directory should not be created on failure")
	}
}

func TestGenerateNonEmptyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	set := loadBuiltin(t, "go-package")
	values := map[string]string{"package": "cache"}

	_, err := Generate(context.Background(), set, values, dir, Options{})
	if !errors.Is(err, ErrOutputNotEmpty) {
		t.Fatalf("err = %v, want ErrOutputNotEmpty", err)
	}
	if !strings.Contains(err.Error(), "not empty") {
		t.Errorf("error should mention non-empty dir, got: %v", err)
	}

	if _, err := Generate(context.Background(), set, values, dir, Options{Force: true}); err != nil {
		t.Fatalf("Generate(Force) error: %v", err)
	}
	assertContains(t, readGenerated(t, dir, "cache/cache.go"), "type Cache struct{}")
	assertContains(t, readGenerated(t, dir, "existing.txt"), "hello")
}

func TestGenerateDryRun(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "dry")

	result, err := Generate(context.Background(), loadBuiltin(t, "go-package"), map[string]string{"package": "queue"}, outDir, Options{DryRun: true})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Rendered) != 3 {
		t.Fatalf("Rendered = %d files, want 3", len(result.Rendered))
	}
	assertContains(t, result.Rendered[1].Content, "type Queue struct{}")
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("dry run must not create the output directory")
	}
}

func TestGenerateUnusedValueWarning(t *testing.T) {
	values := map[string]string{"package": "log", "colour": "blue"}
	result, err := Generate(context.Background(), loadBuiltin(t, "go-package"), values, "", Options{DryRun: true})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], `"colour"`) {
		t.Errorf("Warnings = %v, want one about colour", result.Warnings)
	}
}

func TestGenerateIncompatibleEngine(t *testing.T) {
	_, err := Generate(context.Background(), loadBuiltin(t, "go-package"), map[string]string{"package": "x"}, "", Options{DryRun: true, EngineVersion: "0.0.1"})
	if !errors.Is(err, manifest.ErrIncompatible) {
		t.Errorf("err = %v, want ErrIncompatible", err)
	}
}

func TestGenerateMalformedTemplate(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	set := loadMapSet(t, fstest.MapFS{
		"bad/template.yaml": {Data: []byte("name: bad\nversion: 1.0.0\ndescription: d\nfiles:\n  - source: ok.tmpl\n  - source: broken.tmpl\n")},
		"bad/ok.tmpl":       {Data: []byte("fine")},
		"bad/broken.tmpl":   {Data: []byte("line\n{{oops")},
	})

	_, err := Generate(context.Background(), set, nil, outDir, Options{})
	var malformed *template.MalformedTemplateError
	if !errors.As(err, &malformed) {
		t.Fatalf("err = %v, want MalformedTemplateError", err)
	}
	if malformed.Pos.Line != 2 {
		t.Errorf("Line = %d, want 2", malformed.Pos.Line)
	}
	if !strings.Contains(err.Error(), "broken.tmpl") {
		t.Errorf("error should name the file, got: %v", err)
	}
	if _, err := os.Stat(outDir); !os.IsNotExist(err) {
		t.Error("no file may be written when any template fails")
	}
}

func TestGenerateTargetChecks(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		wantErr  string
	}{
		{
			name:     "escaping target",
			manifest: "name: t\nversion: 1.0.0\ndescription: d\nfiles:\n  - source: a.tmpl\n    target: \"../{{name}}\"\n",
			wantErr:  "escapes the output directory",
		},
		{
			name:     "duplicate target",
			manifest: "name: t\nversion: 1.0.0\ndescription: d\nfiles:\n  - source: a.tmpl\n    target: out\n  - source: b.tmpl\n    target: out\n",
			wantErr:  "both render to out",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := loadMapSet(t, fstest.MapFS{
				"t/template.yaml": {Data: []byte(tt.manifest)},
				"t/a.tmpl":        {Data: []byte("a")},
				"t/b.tmpl":        {Data: []byte("b")},
			})
			_, err := Generate(context.Background(), set, map[string]string{"name": "x"}, t.TempDir(), Options{})
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateEscapeAppliesToContentOnly(t *testing.T) {
	set := loadMapSet(t, fstest.MapFS{
		"html/template.yaml": {Data: []byte("name: html\nversion: 1.0.0\ndescription: d\nrender:\n  escape: html\nfiles:\n  - source: page.tmpl\n    target: \"{{name}}/page.html\"\n")},
		"html/page.tmpl":     {Data: []byte("<h1>{{name}}</h1>")},
	})
	outDir := t.TempDir()

	result, err := Generate(context.Background(), set, map[string]string{"name": "A&B"}, outDir, Options{})
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	assertFiles(t, result, []string{"A&B/page.html"})
	if got := readGenerated(t, outDir, "A&B/page.html"); got != "<h1>A&amp;B</h1>" {
		t.Errorf("content = %q, want %q", got, "<h1>A&amp;B</h1>")
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Generate(ctx, loadBuiltin(t, "go-package"), map[string]string{"package": "x"}, "", Options{DryRun: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuiltinSetsValid(t *testing.T) {
	sets, err := registry.DiscoverSets([]registry.Source{Builtin()})
	if err != nil {
		t.Fatalf("DiscoverSets: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("found %d built-in sets, want 2", len(sets))
	}

	for _, r := range sets {
		t.Run(r.Path, func(t *testing.T) {
			result, err := r.Validate()
			if err != nil {
				t.Fatalf("Validate: %v", err)
			}
			if !result.Valid {
				t.Errorf("built-in manifest invalid: %+v", result.Issues)
			}

			set, err := r.Load()
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if issues := set.Manifest.Lint(); len(issues) != 0 {
				t.Errorf("Lint() = %+v", issues)
			}
			for _, f := range set.Manifest.Files {
				data, err := fs.ReadFile(set.FS, f.Source)
				if err != nil {
					t.Fatalf("reading %s: %v", f.Source, err)
				}
				if _, err := template.Parse(string(data)); err != nil {
					t.Errorf("parsing %s: %v", f.Source, err)
				}
			}
		})
	}
}

func TestIntersect(t *testing.T) {
	got := intersect([][]string{{"a", "b", "c"}, {"c", "a"}, {"a", "c", "d"}})
	if strings.Join(got, ",") != "a,c" {
		t.Errorf("intersect = %v, want [a c]", got)
	}
	if got := intersect(nil); got != nil {
		t.Errorf("intersect(nil) = %v, want nil", got)
	}
}

// ─── Test Helpers ──────────────────────────────────────────────────

func loadBuiltin(t *testing.T, name string) *registry.Set {
	t.Helper()
	set, err := registry.Load(name, []registry.Source{Builtin()})
	if err != nil {
		t.Fatalf("loading built-in %s: %v", name, err)
	}
	return set
}

func loadMapSet(t *testing.T, fsys fstest.MapFS) *registry.Set {
	t.Helper()
	sets, err := registry.DiscoverSets([]registry.Source{{Name: "test", FS: fsys}})
	if err != nil || len(sets) != 1 {
		t.Fatalf("DiscoverSets = %v, %v", sets, err)
	}
	set, err := sets[0].Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return set
}

func readGenerated(t *testing.T, dir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(filename)))
	if err != nil {
		t.Fatalf("reading %s: %v", filename, err)
	}
	return string(data)
}

func assertFiles(t *testing.T, result *Result, expected []string) {
	t.Helper()
	if len(result.Files) != len(expected) {
		t.Errorf("got %d files %v, want %d files %v", len(result.Files), result.Files, len(expected), expected)
		return
	}
	for i, f := range expected {
		if result.Files[i] != f {
			t.Errorf("file[%d] = %q, want %q", i, result.Files[i], f)
		}
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q", substr)
	}
}
