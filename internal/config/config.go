// Package config loads smilegen configuration from JSONC files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/tailscale/hujson"
)

// FileName is the project config file name.
const FileName = ".smilegen.json"

// Errors returned while loading configuration.
var (
	ErrFileNotFound  = errors.New("config file not found")
	ErrFileRead      = errors.New("cannot read config file")
	ErrInvalid       = errors.New("invalid config file")
	ErrTestsDirEmpty = errors.New("tests-dir cannot be empty")
	ErrInvalidCount  = errors.New("shared counts must be positive")
)

// Config holds all configuration options.
type Config struct {
	TestsDir    string `json:"tests_dir"`
	EnsureASCII bool   `json:"ensure_ascii"`
	Shared      Shared `json:"shared"`

	// Resolved, not serialized.
	WorkDir     string  `json:"-"`
	TestsDirAbs string  `json:"-"`
	Sources     Sources `json:"-"`
}

// Shared sizes the shared_property and shared_string scenarios.
type Shared struct {
	ABCount       int `json:"ab_count"`
	LargeDistinct int `json:"large_distinct"`
	LargeCopies   int `json:"large_copies"`
	EvictCount    int `json:"evict_count"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		TestsDir:    "tests",
		EnsureASCII: true,
		Shared: Shared{
			ABCount:       10,
			LargeDistinct: 100,
			LargeCopies:   2,
			EvictCount:    1300,
		},
	}
}

// fileConfig is the on-disk form. Pointers distinguish unset from zero.
type fileConfig struct {
	TestsDir    *string     `json:"tests_dir"`
	EnsureASCII *bool       `json:"ensure_ascii"`
	Shared      *fileShared `json:"shared"`
}

type fileShared struct {
	ABCount       *int `json:"ab_count"`
	LargeDistinct *int `json:"large_distinct"`
	LargeCopies   *int `json:"large_copies"`
	EvictCount    *int `json:"evict_count"`
}

// LoadInput holds the inputs for Load.
type LoadInput struct {
	WorkDirOverride     string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath          string            // -c/--config flag value
	TestsDirOverride    string            // --tests-dir flag value
	HasTestsDirOverride bool              // --tests-dir was given, even if empty
	Env                 map[string]string // environment variables
}

// Load resolves configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config ($XDG_CONFIG_HOME/smilegen/config.json or ~/.config/smilegen/config.json)
// 3. Project config file (.smilegen.json in the work dir, if it exists)
//    or the explicit file given by ConfigPath, which must exist
// 4. CLI overrides.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	cfg := Default()

	if globalPath := globalConfigPath(input.Env); globalPath != "" {
		loaded, err := mergeFile(&cfg, globalPath, false)
		if err != nil {
			return Config{}, err
		}

		if loaded {
			cfg.Sources.Global = globalPath
		}
	}

	projectPath := filepath.Join(workDir, FileName)
	mustExist := false

	if input.ConfigPath != "" {
		projectPath = input.ConfigPath
		if !filepath.IsAbs(projectPath) {
			projectPath = filepath.Join(workDir, projectPath)
		}

		mustExist = true
	}

	loaded, err := mergeFile(&cfg, projectPath, mustExist)
	if err != nil {
		return Config{}, err
	}

	if loaded {
		cfg.Sources.Project = projectPath
	}

	if input.HasTestsDirOverride {
		cfg.TestsDir = input.TestsDirOverride
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.WorkDir = workDir

	cfg.TestsDirAbs = cfg.TestsDir
	if !filepath.IsAbs(cfg.TestsDirAbs) {
		cfg.TestsDirAbs = filepath.Join(workDir, cfg.TestsDirAbs)
	}

	return cfg, nil
}

// Format renders cfg as indented JSON.
func Format(cfg Config) (string, error) {
	data, err := json.Marshal(cfg, jsontext.WithIndent("  "))
	if err != nil {
		return "", fmt.Errorf("formatting config: %w", err)
	}

	return string(data), nil
}

// globalConfigPath returns $XDG_CONFIG_HOME/smilegen/config.json if set,
// otherwise ~/.config/smilegen/config.json, or "" without a home directory.
func globalConfigPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "smilegen", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "smilegen", "config.json")
	}

	return ""
}

// mergeFile overlays the file at path onto cfg. A missing file is skipped
// unless mustExist is set. Reports whether the file was loaded.
func mergeFile(cfg *Config, path string, mustExist bool) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return false, fmt.Errorf("%w: %s", ErrFileNotFound, path)
			}

			return false, nil
		}

		return false, fmt.Errorf("%w %s: %w", ErrFileRead, path, err)
	}

	fc, err := parse(data)
	if err != nil {
		return false, fmt.Errorf("%w %s: %w", ErrInvalid, path, err)
	}

	if fc.TestsDir != nil {
		if *fc.TestsDir == "" {
			return false, fmt.Errorf("%w %s: %w", ErrInvalid, path, ErrTestsDirEmpty)
		}

		cfg.TestsDir = *fc.TestsDir
	}

	if fc.EnsureASCII != nil {
		cfg.EnsureASCII = *fc.EnsureASCII
	}

	if s := fc.Shared; s != nil {
		overlay(&cfg.Shared.ABCount, s.ABCount)
		overlay(&cfg.Shared.LargeDistinct, s.LargeDistinct)
		overlay(&cfg.Shared.LargeCopies, s.LargeCopies)
		overlay(&cfg.Shared.EvictCount, s.EvictCount)
	}

	return true, nil
}

func overlay(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func parse(data []byte) (fileConfig, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var fc fileConfig

	if err := json.Unmarshal(standardized, &fc, json.RejectUnknownMembers(true)); err != nil {
		return fileConfig{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return fc, nil
}

func validate(cfg Config) error {
	if cfg.TestsDir == "" {
		return ErrTestsDirEmpty
	}

	s := cfg.Shared

	counts := []struct {
		name string
		n    int
	}{
		{"ab_count", s.ABCount},
		{"large_distinct", s.LargeDistinct},
		{"large_copies", s.LargeCopies},
		{"evict_count", s.EvictCount},
	}

	for _, c := range counts {
		if c.n <= 0 {
			return fmt.Errorf("%w: shared.%s = %d", ErrInvalidCount, c.name, c.n)
		}
	}

	return nil
}
