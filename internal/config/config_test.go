package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	Load()
	return home
}

func TestDefaults(t *testing.T) {
	home := setup(t)

	if got, want := FilePath(), filepath.Join(home, ".stamp", "config.yaml"); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
	if got, want := TemplatesDir(), filepath.Join(home, ".stamp", "templates"); got != want {
		t.Errorf("TemplatesDir() = %q, want %q", got, want)
	}
	if Concurrency() != 4 {
		t.Errorf("Concurrency() = %d, want 4", Concurrency())
	}
	if Indent() {
		t.Error("Indent() = true, want false")
	}
	if Author() != "" {
		t.Errorf("Author() = %q, want empty", Author())
	}
}

func TestSetPersists(t *testing.T) {
	setup(t)

	if err := Set(KeyAuthor, "Ada"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := Set(KeyConcurrency, "8"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "author: Ada") {
		t.Errorf("config file = %q, want author entry", data)
	}

	viper.Reset()
	Load()
	if Author() != "Ada" {
		t.Errorf("Author() after reload = %q, want %q", Author(), "Ada")
	}
	if Concurrency() != 8 {
		t.Errorf("Concurrency() after reload = %d, want 8", Concurrency())
	}
}

func TestSetRejects(t *testing.T) {
	setup(t)

	tests := []struct {
		key, value string
	}{
		{"mirror", "x"},
		{KeyConcurrency, "zero"},
		{KeyConcurrency, "0"},
		{KeyIndent, "sometimes"},
	}
	for _, tt := range tests {
		if err := Set(tt.key, tt.value); err == nil {
			t.Errorf("Set(%q, %q) succeeded, want error", tt.key, tt.value)
		}
	}
	if _, err := os.Stat(FilePath()); !os.IsNotExist(err) {
		t.Error("rejected values must not create the config file")
	}
}

func TestEnvOverride(t *testing.T) {
	setup(t)
	t.Setenv("STAMP_AUTHOR", "Env Author")

	if Author() != "Env Author" {
		t.Errorf("Author() = %q, want value from STAMP_AUTHOR", Author())
	}
}
