// Package config loads renderer settings from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"digital.vasic.docrender/pkg/document"
	"digital.vasic.docrender/pkg/logging"
)

// Log output formats.
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// Output encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

// Config holds the settings of a render run.
type Config struct {
	// Mode is "prescriptive" or "descriptive".
	Mode string `yaml:"mode"`

	// Title overrides the document title.
	Title string `yaml:"title,omitempty"`

	// OnlyReturnFailures drops blocks from passing results.
	// Descriptive mode only.
	OnlyReturnFailures bool `yaml:"only_return_failures"`

	// Filter is a CEL expression selecting the items to render.
	Filter string `yaml:"filter,omitempty"`

	// Parallelism is the number of sections mapped concurrently.
	Parallelism int `yaml:"parallelism"`

	// Format is the output encoding: json, yaml or html.
	Format string `yaml:"format"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// LogFormat is "json" or "console".
	LogFormat string `yaml:"log_format"`

	// LogFile, when set, receives a JSON copy of every log entry
	// alongside the standard error output.
	LogFile string `yaml:"log_file,omitempty"`
}

// Default returns a Config with default values.
func Default() Config {
	return Config{
		Mode:        document.ModePrescriptive.String(),
		Parallelism: 1,
		Format:      FormatJSON,
		LogLevel:    "info",
		LogFormat:   LogFormatJSON,
	}
}

// Load reads a YAML config file. Fields absent from the file keep
// their default values; unknown fields are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML config data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	return cfg, nil
}

// RenderMode returns the parsed Mode.
func (c Config) RenderMode() (document.Mode, error) {
	return document.ParseMode(c.Mode)
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	mode, err := c.RenderMode()
	if err != nil {
		return err
	}
	if c.OnlyReturnFailures && mode != document.ModeDescriptive {
		return fmt.Errorf("only_return_failures requires descriptive mode, got %s", mode)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative: %d", c.Parallelism)
	}
	switch c.Format {
	case FormatJSON, FormatYAML, FormatHTML:
	default:
		return fmt.Errorf("unknown output format: %q", c.Format)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case LogFormatJSON, LogFormatConsole:
	default:
		return fmt.Errorf("unknown log format: %q", c.LogFormat)
	}
	return nil
}
