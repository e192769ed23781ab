package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, LLMBENCH_CONFIG env, ./llmbench.yaml,
//     /etc/llmbench/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	// Start with defaults.
	cfg := Defaults()

	// Discover and load YAML config file.
	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	// Apply environment variable overrides.
	applyEnvOverrides(&cfg)

	// Resolve _file references.
	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	// Validate.
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
//  1. Explicit configPath argument
//  2. LLMBENCH_CONFIG environment variable
//  3. ./llmbench.yaml in the current directory
//  4. /etc/llmbench/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	// Explicit path takes priority.
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("LLMBENCH_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"llmbench.yaml",
		"/etc/llmbench/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps environment variables to config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LLMBENCH_BASE_URL"); v != "" {
		cfg.Endpoint.BaseURL = v
	}
	if v := os.Getenv("LLMBENCH_API_KEY"); v != "" {
		cfg.Endpoint.APIKey = v
	}
	// OPENROUTER_API_KEY is the variable OpenRouter's own docs use.
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" && cfg.Endpoint.APIKey == "" {
		cfg.Endpoint.APIKey = v
	}
	if v := os.Getenv("LLMBENCH_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Query.MaxRetries = n
		}
	}
	if v := os.Getenv("LLMBENCH_INITIAL_BACKOFF"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Query.InitialBackoff = d
		}
	}
	if v := os.Getenv("LLMBENCH_REQUEST_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Query.RequestDelay = d
		}
	}
	if v := os.Getenv("LLMBENCH_TRANSLATE_URL"); v != "" {
		cfg.Translation.BaseURL = v
	}
	if v := os.Getenv("LLMBENCH_REPORT_MIN_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Report.MinSize = n
		}
	}
	if v := os.Getenv("LLMBENCH_PENDING_FILE"); v != "" {
		cfg.Queue.Pending = v
	}
	if v := os.Getenv("LLMBENCH_RESOLVED_FILE"); v != "" {
		cfg.Queue.Resolved = v
	}
	if v := os.Getenv("LLMBENCH_EXCLUSIONS_FILE"); v != "" {
		cfg.Queue.Exclusions = v
	}
	if v := os.Getenv("LLMBENCH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. The file is read, whitespace is trimmed, and the value field
// is populated only when it is still empty.
func resolveFileReferences(cfg *Config) error {
	if cfg.Endpoint.APIKeyFile != "" && cfg.Endpoint.APIKey == "" {
		val, err := readSecretFile(cfg.Endpoint.APIKeyFile)
		if err != nil {
			return fmt.Errorf("endpoint.api_key_file: %w", err)
		}
		cfg.Endpoint.APIKey = val
	}
	return nil
}

// readSecretFile reads a file and returns its trimmed contents.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
