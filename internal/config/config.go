// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or come
// from environment variables.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Backends
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Analysis inputs (CLI runs)
	Resume         string `json:"resume,omitempty"`          // Path to resume PDF
	Job            string `json:"job,omitempty"`             // Path to job posting text file
	JobURL         string `json:"job_url,omitempty"`         // URL to fetch job posting from
	CompanyName    string `json:"company_name,omitempty"`    // Target company name
	JobTitle       string `json:"job_title,omitempty"`       // Target job title
	MaxUploadBytes int64  `json:"max_upload_bytes,omitempty"`

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// DefaultMaxUploadBytes caps uploaded resume PDFs at 20 MB.
const DefaultMaxUploadBytes = 20 << 20

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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

// FromEnv fills unset fields from environment variables: PORT, DATABASE_URL
// and GEMINI_API_KEY.
func (c *Config) FromEnv() error {
	if c.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return fmt.Errorf("invalid PORT: %v", err)
			}
			c.Port = port
		}
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' out of range: %d", c.Port)
	}
	if c.MaxUploadBytes < 0 {
		return fmt.Errorf("config error: 'max_upload_bytes' must be non-negative")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.CompanyName == "" {
		result.CompanyName = defaults.CompanyName
	}
	if result.JobTitle == "" {
		result.JobTitle = defaults.JobTitle
	}
	if result.MaxUploadBytes == 0 {
		if defaults.MaxUploadBytes > 0 {
			result.MaxUploadBytes = defaults.MaxUploadBytes
		} else {
			result.MaxUploadBytes = DefaultMaxUploadBytes
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
