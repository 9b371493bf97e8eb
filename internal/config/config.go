package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Convert  ConvertConfig  `yaml:"convert"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

// ConvertConfig holds word list conversion settings.
type ConvertConfig struct {
	InputPath    string   `yaml:"input_path"    env:"VOCAB_INPUT_PATH"    env-default:"eng1000.txt"`
	OutputPath   string   `yaml:"output_path"   env:"VOCAB_OUTPUT_PATH"   env-default:"1000_english_words.csv"`
	LessonsDir   string   `yaml:"lessons_dir"   env:"VOCAB_LESSONS_DIR"`
	PromoMarkers []string `yaml:"promo_markers" env:"VOCAB_PROMO_MARKERS" env-default:"1000englishwords.com" env-separator:","`
	DryRun       bool     `yaml:"dry_run"       env:"VOCAB_DRY_RUN"`
}

// DatabaseConfig holds PostgreSQL settings for the optional db phase.
type DatabaseConfig struct {
	Enabled         bool          `yaml:"enabled"            env:"DATABASE_ENABLED"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"4"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"0"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Timeout         time.Duration `yaml:"timeout"            env:"DATABASE_TIMEOUT"            env-default:"5m"`
	BatchSize       int           `yaml:"batch_size"         env:"DATABASE_BATCH_SIZE"         env-default:"500"`
	Source          string        `yaml:"source"             env:"DATABASE_SOURCE"             env-default:"1000englishwords"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}
