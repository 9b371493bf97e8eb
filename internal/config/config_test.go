package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "vocabconv.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
convert:
  input_path: "lists/eng1000.txt"
  output_path: "out/words.csv"
  lessons_dir: "web/words"
  promo_markers:
    - "1000englishwords.com"
    - "-- page"
  dry_run: false

database:
  enabled: true
  dsn: "postgres://u:p@localhost:5432/vocab"
  max_conns: 8
  min_conns: 1
  timeout: "2m"
  batch_size: 250
  source: "eng1000-2024"

log:
  level: "debug"
  format: "json"
`

// validConfig returns a Config that passes validation.
func validConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			InputPath:    "eng1000.txt",
			OutputPath:   "1000_english_words.csv",
			PromoMarkers: []string{"1000englishwords.com"},
		},
		Database: DatabaseConfig{
			MaxConns:  4,
			Timeout:   5 * time.Minute,
			BatchSize: 500,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

func TestLoad_ValidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Convert
	if cfg.Convert.InputPath != "lists/eng1000.txt" {
		t.Errorf("convert.input_path = %q", cfg.Convert.InputPath)
	}
	if cfg.Convert.OutputPath != "out/words.csv" {
		t.Errorf("convert.output_path = %q", cfg.Convert.OutputPath)
	}
	if cfg.Convert.LessonsDir != "web/words" {
		t.Errorf("convert.lessons_dir = %q", cfg.Convert.LessonsDir)
	}
	if len(cfg.Convert.PromoMarkers) != 2 || cfg.Convert.PromoMarkers[1] != "-- page" {
		t.Errorf("convert.promo_markers = %v", cfg.Convert.PromoMarkers)
	}

	// Database
	if !cfg.Database.Enabled {
		t.Error("database.enabled should be true")
	}
	if cfg.Database.MaxConns != 8 {
		t.Errorf("database.max_conns = %d, want 8", cfg.Database.MaxConns)
	}
	if cfg.Database.Timeout != 2*time.Minute {
		t.Errorf("database.timeout = %v, want 2m", cfg.Database.Timeout)
	}
	if cfg.Database.BatchSize != 250 {
		t.Errorf("database.batch_size = %d, want 250", cfg.Database.BatchSize)
	}
	if cfg.Database.Source != "eng1000-2024" {
		t.Errorf("database.source = %q", cfg.Database.Source)
	}
	// Not in YAML: default applies.
	if !cfg.Database.Migrate {
		t.Error("database.migrate should default to true")
	}
	if cfg.Database.MaxConnLifetime != time.Hour {
		t.Errorf("database.max_conn_lifetime = %v, want 1h", cfg.Database.MaxConnLifetime)
	}

	// Log
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "json")
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("VOCAB_OUTPUT_PATH", "env.csv")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Convert.OutputPath != "env.csv" {
		t.Errorf("convert.output_path = %q, want env.csv (ENV override)", cfg.Convert.OutputPath)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
}

func TestLoad_ConfigPathEnv(t *testing.T) {
	path := writeYAML(t, t.TempDir(), validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Convert.InputPath != "lists/eng1000.txt" {
		t.Errorf("convert.input_path = %q, want value from CONFIG_PATH file", cfg.Convert.InputPath)
	}
}

func TestLoad_NoFile_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Convert.InputPath != "eng1000.txt" {
		t.Errorf("convert.input_path = %q, want default", cfg.Convert.InputPath)
	}
	if cfg.Convert.OutputPath != "1000_english_words.csv" {
		t.Errorf("convert.output_path = %q, want default", cfg.Convert.OutputPath)
	}
	if len(cfg.Convert.PromoMarkers) != 1 || cfg.Convert.PromoMarkers[0] != "1000englishwords.com" {
		t.Errorf("convert.promo_markers = %v, want default marker", cfg.Convert.PromoMarkers)
	}
	if cfg.Database.Enabled {
		t.Error("database phase should be disabled by default")
	}
	if cfg.Database.BatchSize != 500 {
		t.Errorf("database.batch_size = %d, want 500", cfg.Database.BatchSize)
	}
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := t.TempDir()
	writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(dir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Convert.OutputPath != "out/words.csv" {
		t.Errorf("convert.output_path = %q, want value from ./vocabconv.yaml", cfg.Convert.OutputPath)
	}
}

func TestLoad_MarkersFromEnv(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("VOCAB_PROMO_MARKERS", "a.com,b.com")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(cfg.Convert.PromoMarkers, "|"); got != "a.com|b.com" {
		t.Errorf("promo_markers = %q, want a.com|b.com", got)
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	_, err := Load("/nonexistent/vocabconv.yaml")
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_ConfigPathEnvNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/vocabconv.yaml")

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for missing CONFIG_PATH file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeYAML(t, t.TempDir(), `{{{invalid yaml`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	path := writeYAML(t, t.TempDir(), "database:\n  enabled: true\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error for enabled database without dsn")
	}
	if !strings.Contains(err.Error(), "dsn is required") {
		t.Errorf("error = %v, want mention of dsn", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty input path", func(c *Config) { c.Convert.InputPath = " " }, "input_path"},
		{"empty output path", func(c *Config) { c.Convert.OutputPath = "" }, "output_path"},
		{"zero batch size", func(c *Config) { c.Database.BatchSize = 0 }, "batch_size"},
		{"zero max conns", func(c *Config) { c.Database.MaxConns = 0 }, "max_conns"},
		{"min above max", func(c *Config) { c.Database.MinConns = 9 }, "min_conns"},
		{"zero timeout", func(c *Config) { c.Database.Timeout = 0 }, "timeout"},
		{"enabled without dsn", func(c *Config) { c.Database.Enabled = true }, "dsn"},
		{"enabled with dsn", func(c *Config) {
			c.Database.Enabled = true
			c.Database.DSN = "postgres://localhost/vocab"
		}, ""},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "format"},
		{"log format is case-insensitive", func(c *Config) { c.Log.Format = "JSON" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestConvertConfig_Markers(t *testing.T) {
	c := ConvertConfig{PromoMarkers: []string{" 1000englishwords.com ", "", "  ", "page"}}

	got := c.Markers()
	if len(got) != 2 || got[0] != "1000englishwords.com" || got[1] != "page" {
		t.Errorf("Markers() = %v, want [1000englishwords.com page]", got)
	}

	if got := (ConvertConfig{}).Markers(); len(got) != 0 {
		t.Errorf("Markers() on empty = %v, want empty", got)
	}
}
