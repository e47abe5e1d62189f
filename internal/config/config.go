// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags. Model credentials stay here and in the
// environment: they never reach the rule engine or the field schema.
type Config struct {
	// Inputs
	Document    string `json:"document,omitempty"`     // Path to a claim document (text or PDF)
	DocumentURL string `json:"document_url,omitempty" validate:"omitempty,url"` // URL to fetch the document from
	InputDir    string `json:"input_dir,omitempty"`    // Directory of documents for batch mode

	// Extraction
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Model name override

	// Rules
	Ruleset string `json:"ruleset,omitempty"` // Path to a ruleset JSON file; empty uses the built-in set

	// Output
	Output      string `json:"output,omitempty"`       // Path for the decision JSON
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for decision audit
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed progress

	// Batch
	Workers int `json:"workers,omitempty" validate:"gte=0,lte=64"` // Concurrent runs in batch mode
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks field formats and ranges, plus cross-field constraints
// the struct tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	sources := 0
	for _, set := range []bool{c.Document != "", c.DocumentURL != "", c.InputDir != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return fmt.Errorf("config error: 'document', 'document_url' and 'input_dir' are mutually exclusive")
	}

	for _, path := range []string{c.Document, c.Ruleset} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: file not found: %s", path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Ruleset == "" {
		result.Ruleset = defaults.Ruleset
	}
	if result.Output == "" {
		result.Output = defaults.Output
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields cannot distinguish unset from false; CLI flags win.

	return result
}
