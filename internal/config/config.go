// Package config holds the directory layout and ambient settings of the
// compressor. Values come from built-in defaults, an optional YAML or JSON
// file and command-line flags, in increasing precedence.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"cogcompress/internal/logging"
	"cogcompress/internal/trace"
)

const (
	DefaultDescriptorDir = "compressed"
	DefaultTraceDir      = "stigmergic_traces"
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Config is the resolved tool configuration.
type Config struct {
	Root          string `json:"root" yaml:"root"`
	DescriptorDir string `json:"descriptor_dir" yaml:"descriptor_dir"`
	TraceDir      string `json:"trace_dir" yaml:"trace_dir"`
	TraceFormat   string `json:"trace_format" yaml:"trace_format"`
	LogLevel      string `json:"log_level" yaml:"log_level"`
	LogFormat     string `json:"log_format" yaml:"log_format"`
}

// Default returns the layout relative to the working directory.
func Default() Config {
	return Config{
		Root:          ".",
		DescriptorDir: DefaultDescriptorDir,
		TraceDir:      DefaultTraceDir,
		TraceFormat:   string(trace.FormatJSON),
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// LoadFile overlays the config file at path onto the defaults. Keys absent
// from the file keep their default values.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Default(), fmt.Errorf("read config: %w", err)
	}
	cfg, err := Load(data, filepath.Ext(path))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Load parses config bytes. ext (".yaml", ".yml", ".json") selects the
// format; any other value detects JSON by a leading '{' and falls back to
// YAML.
func Load(data []byte, ext string) (Config, error) {
	cfg := Default()
	ext = strings.ToLower(ext)
	isJSON := ext == ".json"
	if ext != ".yaml" && ext != ".yml" && !isJSON {
		isJSON = strings.HasPrefix(strings.TrimSpace(string(data)), "{")
	}
	if isJSON {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config json: %w", err)
		}
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

// Validate checks the enumerated settings.
func (c Config) Validate() error {
	if _, err := trace.ParseFormat(c.TraceFormat); err != nil {
		return err
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", c.LogFormat)
	}
	return nil
}

// DescriptorPath is the descriptor directory resolved against Root.
func (c Config) DescriptorPath() string { return c.resolve(c.DescriptorDir) }

// TracePath is the trace directory resolved against Root.
func (c Config) TracePath() string { return c.resolve(c.TraceDir) }

// Level returns the parsed log level, falling back to warn.
func (c Config) Level() slog.Level {
	lvl, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

func (c Config) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Root, dir)
}
