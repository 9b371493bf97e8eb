package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading and again after CLI overrides; Load calls
// it automatically.
func (c *Config) Validate() error {
	if err := c.Convert.validate(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	return nil
}

func (c *ConvertConfig) validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("input_path is required")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("output_path is required")
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.BatchSize <= 0 {
		return fmt.Errorf("batch_size must be > 0 (got %d)", d.BatchSize)
	}
	if d.MaxConns <= 0 {
		return fmt.Errorf("max_conns must be > 0 (got %d)", d.MaxConns)
	}
	if d.MinConns < 0 || d.MinConns > d.MaxConns {
		return fmt.Errorf("min_conns must be within [0, max_conns] (got %d)", d.MinConns)
	}
	if d.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", d.Timeout)
	}
	if d.Enabled && strings.TrimSpace(d.DSN) == "" {
		return fmt.Errorf("dsn is required when the database phase is enabled")
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("format must be json or text (got %q)", l.Format)
	}
}

// Markers returns the promotional markers with blanks removed.
func (c ConvertConfig) Markers() []string {
	markers := make([]string, 0, len(c.PromoMarkers))
	for _, m := range c.PromoMarkers {
		if m = strings.TrimSpace(m); m != "" {
			markers = append(markers, m)
		}
	}
	return markers
}
