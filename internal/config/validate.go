package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks configuration invariants after normalization.
func (c *Config) Validate() error {
	var problems []string

	if c.API.BaseURL == "" {
		problems = append(problems, "api.base_url must not be empty")
	} else if parsed, err := url.Parse(c.API.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		problems = append(problems, fmt.Sprintf("api.base_url %q is not an absolute URL", c.API.BaseURL))
	}
	if c.API.TimeoutSeconds <= 0 {
		problems = append(problems, "api.timeout_seconds must be positive")
	}
	if c.API.BatchSize <= 0 {
		problems = append(problems, "api.batch_size must be positive")
	}
	if c.Export.OutputFile == "" {
		problems = append(problems, "export.output_file must not be empty")
	}
	if c.Export.SourceUTCOffsetHours < -14 || c.Export.SourceUTCOffsetHours > 14 {
		problems = append(problems, "export.source_utc_offset_hours must be a real UTC offset")
	}
	if c.Cache.Enabled {
		if c.Cache.Dir == "" {
			problems = append(problems, "cache.dir must not be empty when cache.enabled")
		}
		if c.Cache.TTLHours <= 0 {
			problems = append(problems, "cache.ttl_hours must be positive when cache.enabled")
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported (console or json)", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}
