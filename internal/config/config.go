// Package config loads the TOML configuration of the tzdb tool.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// OnError policies for files that fail to parse.
const (
	OnErrorAbort = "abort"
	OnErrorSkip  = "skip"
)

// Output formats of the parse command.
const (
	OutputYAML    = "yaml"
	OutputJSON    = "json"
	OutputSummary = "summary"
)

// DefaultFiles are the source files zic(8) is usually run on.
var DefaultFiles = []string{
	"africa", "antarctica", "asia", "australasia", "europe",
	"northamerica", "southamerica", "etcetera", "backward",
}

// Config holds the settings of the tzdb tool.
type Config struct {
	SourceDir  string
	Files      []string
	OnError    string
	Output     string
	SQLitePath string
	EtagFile   string
	Timeout    time.Duration
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		SourceDir:  "./tzdata",
		Files:      append([]string(nil), DefaultFiles...),
		OnError:    OnErrorAbort,
		Output:     OutputYAML,
		SQLitePath: "./tzdb.sqlite",
		Timeout:    30 * time.Second,
	}
}

// config.toml key mapping.
type fileConfig struct {
	SourceDir  string   `toml:"source_dir"`
	Files      []string `toml:"files"`
	OnError    string   `toml:"on_error"`
	Output     string   `toml:"output"`
	SQLitePath string   `toml:"sqlite_path"`
	EtagFile   string   `toml:"etag_file"`
	Timeout    string   `toml:"timeout"`
}

// Load reads the TOML file at path and overlays it on Default.
// Keys absent from the file keep their default value.
func Load(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	cfg := Default()
	if meta.IsDefined("source_dir") {
		cfg.SourceDir = strings.TrimSpace(raw.SourceDir)
	}
	if meta.IsDefined("files") {
		cfg.Files = raw.Files
	}
	if meta.IsDefined("on_error") {
		cfg.OnError = strings.TrimSpace(raw.OnError)
	}
	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}
	if meta.IsDefined("sqlite_path") {
		cfg.SQLitePath = strings.TrimSpace(raw.SQLitePath)
	}
	if meta.IsDefined("etag_file") {
		cfg.EtagFile = strings.TrimSpace(raw.EtagFile)
	}
	if meta.IsDefined("timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return Config{}, fmt.Errorf("load config: timeout: %w", err)
		}
		cfg.Timeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	switch c.OnError {
	case OnErrorAbort, OnErrorSkip:
	default:
		return fmt.Errorf("unsupported on_error %q (expected %s or %s)", c.OnError, OnErrorAbort, OnErrorSkip)
	}
	switch c.Output {
	case OutputYAML, OutputJSON, OutputSummary:
	default:
		return fmt.Errorf("unsupported output %q (expected %s, %s or %s)", c.Output, OutputYAML, OutputJSON, OutputSummary)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	return nil
}
