// Package config handles application configuration loading from a YAML file
// and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the trainer.
type Config struct {
	// Completion endpoint configuration
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	Backend string `yaml:"backend"` // "openai", "anthropic", "mock"

	// Timeout is set from the "timeout" key, which takes a Go duration
	// string like "60s". yaml.v3 cannot decode those directly.
	Timeout time.Duration `yaml:"-"`

	// File paths. Empty values are filled from the user's home directory.
	DataFile string `yaml:"data_file"`
	LockFile string `yaml:"lock_file"`
	LogDir   string `yaml:"log_dir"`

	// History caps
	MaxAttemptsHistory int `yaml:"max_attempts_history"`
	MaxRecentPhrases   int `yaml:"max_recent_phrases"`
	MaxErrorTracking   int `yaml:"max_error_tracking"`

	// Learning configuration
	XPPerLevel       int `yaml:"xp_per_level"`
	MaxRetryAttempts int `yaml:"max_retry_attempts"`
	MaxContextChars  int `yaml:"max_context_chars"`

	Debug bool `yaml:"debug"`
}

// Completion backends.
const (
	BackendOpenAI    = "openai"
	BackendAnthropic = "anthropic"
	BackendMock      = "mock"
)

// Default values for everything the config file or environment leaves unset.
const (
	DefaultBaseURL            = "http://localhost:3000/v1"
	DefaultModel              = "gpt-5-mini"
	DefaultTimeout            = 60 * time.Second
	DefaultMaxAttemptsHistory = 100
	DefaultMaxRecentPhrases   = 20
	DefaultMaxErrorTracking   = 50
	DefaultXPPerLevel         = 100
	DefaultMaxRetryAttempts   = 3
	DefaultMaxContextChars    = 6000
)

// New loads configuration: defaults, then the YAML file at path (if it
// exists), then .env, then ENGLISH_TRAINER_* environment variables.
// An empty path means "no config file".
func New(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg.overrideFromEnv()

	if err := cfg.fillPaths(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		BaseURL:            DefaultBaseURL,
		APIKey:             "dummy-key",
		Model:              DefaultModel,
		Backend:            BackendOpenAI,
		Timeout:            DefaultTimeout,
		MaxAttemptsHistory: DefaultMaxAttemptsHistory,
		MaxRecentPhrases:   DefaultMaxRecentPhrases,
		MaxErrorTracking:   DefaultMaxErrorTracking,
		XPPerLevel:         DefaultXPPerLevel,
		MaxRetryAttempts:   DefaultMaxRetryAttempts,
		MaxContextChars:    DefaultMaxContextChars,
	}
}

// UnmarshalYAML decodes the config, parsing the "timeout" key as a duration
// string.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type alias Config
	var aux struct {
		alias   `yaml:",inline"`
		Timeout string `yaml:"timeout"`
	}
	aux.alias = alias(*c)

	if err := value.Decode(&aux); err != nil {
		return err
	}
	*c = Config(aux.alias)

	if aux.Timeout != "" {
		d, err := time.ParseDuration(aux.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", aux.Timeout, err)
		}
		c.Timeout = d
	}
	return nil
}

func (c *Config) overrideFromEnv() {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("ENGLISH_TRAINER_BASE_URL", &c.BaseURL)
	setString("ENGLISH_TRAINER_API_KEY", &c.APIKey)
	setString("ENGLISH_TRAINER_MODEL", &c.Model)
	setString("ENGLISH_TRAINER_BACKEND", &c.Backend)
	setString("ENGLISH_TRAINER_DATA_FILE", &c.DataFile)
	setString("ENGLISH_TRAINER_LOCK_FILE", &c.LockFile)

	if v := os.Getenv("ENGLISH_TRAINER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Timeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("ENGLISH_TRAINER_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}

	setInt("ENGLISH_TRAINER_MAX_ATTEMPTS", &c.MaxAttemptsHistory)
	setInt("ENGLISH_TRAINER_MAX_RECENT_PHRASES", &c.MaxRecentPhrases)
	setInt("ENGLISH_TRAINER_MAX_ERROR_TRACKING", &c.MaxErrorTracking)
	setInt("ENGLISH_TRAINER_XP_PER_LEVEL", &c.XPPerLevel)
}

// fillPaths resolves the data, lock and log locations that were left empty.
func (c *Config) fillPaths() error {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	if c.DataFile == "" {
		c.DataFile = filepath.Join(home, ".english_trainer_data.json")
	}
	if c.LockFile == "" {
		c.LockFile = filepath.Join(os.TempDir(), "english_trainer.lock")
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(home, ".english_trainer_logs")
	}
	return nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: base URL cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %v", c.Timeout)
	}
	if c.XPPerLevel <= 0 {
		return fmt.Errorf("config: xp per level must be positive, got %d", c.XPPerLevel)
	}
	if c.MaxAttemptsHistory <= 0 {
		return fmt.Errorf("config: max attempts history must be positive, got %d", c.MaxAttemptsHistory)
	}
	if c.MaxRecentPhrases <= 0 {
		return fmt.Errorf("config: max recent phrases must be positive, got %d", c.MaxRecentPhrases)
	}
	if c.MaxErrorTracking <= 0 {
		return fmt.Errorf("config: max error tracking must be positive, got %d", c.MaxErrorTracking)
	}
	switch c.Backend {
	case BackendOpenAI, BackendAnthropic, BackendMock:
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	return nil
}
