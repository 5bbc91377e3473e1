package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the newswire API configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Database  DatabaseConfig  `yaml:"database"`
	Index     IndexConfig     `yaml:"index"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Geocoding GeocodingConfig `yaml:"geocoding"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Auth      AuthConfig      `yaml:"auth"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds index store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// IndexConfig holds settings for the pre-built article index. The index is
// owned by an external ingest pipeline; only read paths are configured here.
type IndexConfig struct {
	Name            string `yaml:"name"`       // FT index name
	KeyPrefix       string `yaml:"key_prefix"` // document hash key prefix
	CandidateFactor int    `yaml:"candidate_factor"`
	MaxSize         int    `yaml:"max_size"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// GeocodingConfig holds the remote geocoder and resolution cache settings.
type GeocodingConfig struct {
	BaseURL       string `yaml:"base_url"`
	UserAgent     string `yaml:"user_agent"`
	TimeoutSec    int    `yaml:"timeout_sec"`
	RetryAttempts int    `yaml:"retry_attempts"`
	RetryDelayMS  int    `yaml:"retry_delay_ms"`
	CacheSize     int    `yaml:"cache_size"`
}

// ScoringConfig selects the re-ranking profile and its corpus time anchor.
type ScoringConfig struct {
	// Profile is "boosted" (additive base + multiplicative boosts, default)
	// or "weighted" (fixed 0.6/0.4 split plus a recency term).
	Profile string `yaml:"profile"`
	// ReferenceDate anchors recency decay. The corpus is historical, so
	// the anchor is a fixed date rather than wall-clock time; a live
	// corpus deployment should leave it empty to use the current time.
	ReferenceDate string `yaml:"reference_date"` // ISO-8601
}

// RetryDelay returns the configured geocode retry delay.
func (g GeocodingConfig) RetryDelay() time.Duration {
	return time.Duration(g.RetryDelayMS) * time.Millisecond
}

// Timeout returns the configured geocoder HTTP timeout.
func (g GeocodingConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSec) * time.Second
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Index.Name == "" {
		c.Index.Name = "newswire:articles:idx"
	}
	if c.Index.KeyPrefix == "" {
		c.Index.KeyPrefix = "newswire:article:"
	}
	if c.Index.CandidateFactor <= 0 {
		c.Index.CandidateFactor = 2
	}
	if c.Index.MaxSize <= 0 {
		c.Index.MaxSize = 100
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Geocoding.BaseURL == "" {
		c.Geocoding.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if c.Geocoding.UserAgent == "" {
		c.Geocoding.UserAgent = "newswire"
	}
	if c.Geocoding.TimeoutSec <= 0 {
		c.Geocoding.TimeoutSec = 10
	}
	if c.Geocoding.RetryAttempts <= 0 {
		c.Geocoding.RetryAttempts = 3
	}
	if c.Geocoding.RetryDelayMS <= 0 {
		c.Geocoding.RetryDelayMS = 1000
	}
	if c.Geocoding.CacheSize <= 0 {
		c.Geocoding.CacheSize = 4096
	}
	if c.Scoring.Profile == "" {
		c.Scoring.Profile = "boosted"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	switch c.Scoring.Profile {
	case "boosted", "weighted":
		// ok
	default:
		return fmt.Errorf(
			"scoring.profile must be \"boosted\" or \"weighted\", got %q", c.Scoring.Profile,
		)
	}
	if c.Scoring.ReferenceDate != "" {
		if _, err := time.Parse("2006-01-02", c.Scoring.ReferenceDate); err != nil {
			return fmt.Errorf("scoring.reference_date must be ISO-8601 (YYYY-MM-DD): %w", err)
		}
	}
	return nil
}

// ReferenceTime returns the scoring anchor, falling back to the current
// time when no corpus anchor is configured.
func (c *Config) ReferenceTime() time.Time {
	if c.Scoring.ReferenceDate != "" {
		if t, err := time.Parse("2006-01-02", c.Scoring.ReferenceDate); err == nil {
			return t
		}
	}
	return time.Now().UTC()
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
