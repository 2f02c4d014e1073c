package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/bdgeo/internal/domain/search/options"
)

// Config holds the bdgeo configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Auth    AuthConfig    `yaml:"auth"`
	Catalog CatalogConfig `yaml:"catalog"`
	Search  SearchConfig  `yaml:"search"`
	Stats   StatsConfig   `yaml:"stats"`
	Logging LoggingConfig `yaml:"logging"`
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

// CatalogConfig says where the region catalog is loaded from.
type CatalogConfig struct {
	Dir string `yaml:"dir"` // empty = embedded data set
}

// SearchConfig holds search defaults. Every request's options are applied on top.
type SearchConfig struct {
	DefaultLimit     int      `yaml:"default_limit"`
	MaxLimit         int      `yaml:"max_limit"`
	DefaultThreshold *float64 `yaml:"default_threshold"`
	FuzzyThreshold   *float64 `yaml:"fuzzy_threshold"`
	CaseSensitive    bool     `yaml:"case_sensitive"`
	MaxQueryLength   int      `yaml:"max_query_length"`
}

// StatsConfig bounds the in-memory query statistics.
type StatsConfig struct {
	TopQueriesCapacity  int `yaml:"top_queries_capacity"`
	ZeroResultsCapacity int `yaml:"zero_results_capacity"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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

// Default returns a configuration with every default applied.
func Default() Config {
	var cfg Config
	cfg.ApplyDefaults()
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
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.DefaultLimit == 0 {
		c.Search.DefaultLimit = options.DefaultLimit
	}
	if c.Search.MaxLimit == 0 {
		c.Search.MaxLimit = 100
	}
	if c.Search.DefaultThreshold == nil {
		c.Search.DefaultThreshold = ptr(options.DefaultThreshold)
	}
	if c.Search.FuzzyThreshold == nil {
		c.Search.FuzzyThreshold = ptr(options.FuzzyThreshold)
	}
	if c.Search.MaxQueryLength <= 0 {
		c.Search.MaxQueryLength = 256
	}
	if c.Stats.TopQueriesCapacity <= 0 {
		c.Stats.TopQueriesCapacity = 100
	}
	if c.Stats.ZeroResultsCapacity <= 0 {
		c.Stats.ZeroResultsCapacity = 100
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if err := c.SearchDefaults().Validate(); err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		return fmt.Errorf("search.max_limit (%d) must be >= search.default_limit (%d)",
			c.Search.MaxLimit, c.Search.DefaultLimit)
	}
	if f := c.Search.FuzzyThreshold; f != nil && (*f < 0 || *f > 1) {
		return fmt.Errorf("search.fuzzy_threshold must be between 0 and 1, got %g", *f)
	}
	return nil
}

// SearchDefaults converts the search section into base search options.
func (c *Config) SearchDefaults() options.Options {
	opts := options.Defaults()
	opts.Limit = c.Search.DefaultLimit
	if c.Search.DefaultThreshold != nil {
		opts.Threshold = *c.Search.DefaultThreshold
	}
	opts.CaseSensitive = c.Search.CaseSensitive
	return opts
}

// FuzzyThreshold returns the configured typo-tolerant threshold.
func (c *Config) FuzzyThreshold() float64 {
	if c.Search.FuzzyThreshold == nil {
		return options.FuzzyThreshold
	}
	return *c.Search.FuzzyThreshold
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

func ptr[T any](v T) *T { return &v }

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
