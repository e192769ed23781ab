package config

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	if c.Endpoint.BaseURL == "" {
		errs = append(errs, fmt.Errorf("endpoint.base_url is required"))
	}

	if c.Query.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("query.max_retries must be >= 0, got %d", c.Query.MaxRetries))
	}
	if c.Query.InitialBackoff < 0 {
		errs = append(errs, fmt.Errorf("query.initial_backoff must be >= 0, got %s", c.Query.InitialBackoff))
	}
	if c.Query.RequestDelay < 0 {
		errs = append(errs, fmt.Errorf("query.request_delay must be >= 0, got %s", c.Query.RequestDelay))
	}

	if c.Translation.BaseURL == "" {
		errs = append(errs, fmt.Errorf("translation.base_url is required"))
	}
	if c.Translation.SourceLanguage == "" {
		errs = append(errs, fmt.Errorf("translation.source_language is required"))
	}
	if c.Translation.TargetLanguage == "" {
		errs = append(errs, fmt.Errorf("translation.target_language is required"))
	}
	if c.Translation.SourceLanguage == c.Translation.TargetLanguage {
		errs = append(errs, fmt.Errorf("translation.source_language and translation.target_language must differ, both are %q", c.Translation.SourceLanguage))
	}

	if c.Report.MinSize < 0 {
		errs = append(errs, fmt.Errorf("report.min_size must be >= 0, got %d", c.Report.MinSize))
	}
	for _, dir := range []struct{ field, val string }{
		{"report.dir", c.Report.Dir},
		{"report.failed_dir", c.Report.FailedDir},
		{"report.sheet_dir", c.Report.SheetDir},
	} {
		if dir.val == "" {
			errs = append(errs, fmt.Errorf("%s is required", dir.field))
		}
	}

	if c.Queue.Pending == "" {
		errs = append(errs, fmt.Errorf("queue.pending is required"))
	}
	if c.Queue.Resolved == "" {
		errs = append(errs, fmt.Errorf("queue.resolved is required"))
	}
	if c.Queue.Pending == c.Queue.Resolved {
		errs = append(errs, fmt.Errorf("queue.pending and queue.resolved must differ, both are %q", c.Queue.Pending))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
		// valid
	default:
		errs = append(errs, fmt.Errorf("logging.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", c.Logging.Level))
	}

	return errors.Join(errs...)
}
