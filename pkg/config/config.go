// Package config provides unified configuration for the llmbench pipeline.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (LLMBENCH_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import "time"

// Config holds all configuration for the benchmark pipeline.
type Config struct {
	Endpoint      EndpointConfig      `yaml:"endpoint"`
	Query         QueryConfig         `yaml:"query"`
	Translation   TranslationConfig   `yaml:"translation"`
	Report        ReportConfig        `yaml:"report"`
	Queue         QueueConfig         `yaml:"queue"`
	Observability ObservabilityConfig `yaml:"observability"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// EndpointConfig holds the provider listing / chat completion endpoint.
type EndpointConfig struct {
	BaseURL    string        `yaml:"base_url"`     // default: OpenRouter API root
	APIKey     string        `yaml:"api_key"`      // optional
	APIKeyFile string        `yaml:"api_key_file"` // _file variant for api_key
	Timeout    time.Duration `yaml:"timeout"`      // default: 120s
}

// QueryConfig holds retry and pacing behavior for provider queries.
type QueryConfig struct {
	MaxRetries     int           `yaml:"max_retries"`     // default: 3
	InitialBackoff time.Duration `yaml:"initial_backoff"` // default: 5s
	RequestDelay   time.Duration `yaml:"request_delay"`   // default: 200ms
}

// TranslationConfig holds the translation service and language pair.
type TranslationConfig struct {
	BaseURL        string        `yaml:"base_url"` // default: Google translate endpoint
	Timeout        time.Duration `yaml:"timeout"`  // default: 30s
	SourceLanguage string        `yaml:"source_language"` // question language, default: "es"
	TargetLanguage string        `yaml:"target_language"` // prompt language, default: "en"
}

// ReportConfig holds report output locations and the acceptance threshold.
type ReportConfig struct {
	Dir       string `yaml:"dir"`        // accepted narrative reports, default: "html"
	FailedDir string `yaml:"failed_dir"` // rejected narrative reports, default: "html_failed"
	SheetDir  string `yaml:"sheet_dir"`  // accepted spreadsheets, default: "xcell"

	// MinSize is the acceptance floor in bytes for the rendered narrative
	// document. Reports below it are rejected as mostly empty.
	MinSize int64 `yaml:"min_size"` // default: 50 KiB
}

// QueueConfig holds the durable queue and exclusion file paths.
type QueueConfig struct {
	Pending    string `yaml:"pending"`    // default: "preguntas_pendientes.csv"
	Resolved   string `yaml:"resolved"`   // default: "preguntas_resueltas.csv"
	Exclusions string `yaml:"exclusions"` // default: "blacklist.csv"
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings. The endpoint is
// served only while a batch run is active.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: false
	Addr    string `yaml:"addr"`    // default: ":9090"
	Path    string `yaml:"path"`    // default: "/metrics"
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"; default: "info"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Endpoint: EndpointConfig{
			BaseURL: "https://openrouter.ai/api/v1",
			Timeout: 120 * time.Second,
		},
		Query: QueryConfig{
			MaxRetries:     3,
			InitialBackoff: 5 * time.Second,
			RequestDelay:   200 * time.Millisecond,
		},
		Translation: TranslationConfig{
			BaseURL:        "https://translate.googleapis.com",
			Timeout:        30 * time.Second,
			SourceLanguage: "es",
			TargetLanguage: "en",
		},
		Report: ReportConfig{
			Dir:       "html",
			FailedDir: "html_failed",
			SheetDir:  "xcell",
			MinSize:   50 * 1024,
		},
		Queue: QueueConfig{
			Pending:    "preguntas_pendientes.csv",
			Resolved:   "preguntas_resueltas.csv",
			Exclusions: "blacklist.csv",
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: false,
				Addr:    ":9090",
				Path:    "/metrics",
			},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
