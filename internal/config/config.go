package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/spf13/viper"

	"github.com/agentx-labs/stamp/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognised keys.
const (
	KeyAuthor       = "author"
	KeyTemplatesDir = "templates_dir"
	KeyConcurrency  = "concurrency"
	KeyIndent       = "indent"
)

// Keys lists every key accepted by Set, sorted.
var Keys = []string{KeyAuthor, KeyConcurrency, KeyIndent, KeyTemplatesDir}

// Dir returns the path to the config directory (~/.stamp/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.stamp/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment
// (STAMP_AUTHOR, STAMP_TEMPLATES_DIR, ...).
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyTemplatesDir, filepath.Join(Dir(), branding.TemplatesDir()))
	viper.SetDefault(KeyConcurrency, 4)
	viper.SetDefault(KeyIndent, false)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Author is the fallback for template variables named "author".
func Author() string { return viper.GetString(KeyAuthor) }

// TemplatesDir is the directory searched for user template sets.
func TemplatesDir() string { return viper.GetString(KeyTemplatesDir) }

// Concurrency bounds parallel file rendering in "create".
func Concurrency() int { return viper.GetInt(KeyConcurrency) }

// Indent is the default for "render --indent".
func Indent() bool { return viper.GetBool(KeyIndent) }

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := check(key, value); err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

func check(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
	switch key {
	case KeyConcurrency:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %q", key, value)
		}
	case KeyIndent:
		if _, err := strconv.ParseBool(value); err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
	}
	return nil
}
