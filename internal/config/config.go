package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the logodex API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Source  SourceConfig  `yaml:"source"`
	Assets  AssetsConfig  `yaml:"assets"`
	Search  SearchConfig  `yaml:"search"`
	CORS    CORSConfig    `yaml:"cors"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SourceConfig holds index source settings.
type SourceConfig struct {
	Driver string `yaml:"driver"` // http, file, redis (default: http)

	// http driver
	URL             string `yaml:"url"`
	FetchTimeoutSec int    `yaml:"fetch_timeout_sec"`

	// file driver
	Path string `yaml:"path"`

	// redis driver
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Key              string   `yaml:"key"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// AssetsConfig holds asset URL resolution settings.
type AssetsConfig struct {
	// BaseURL overrides the per-request origin when set.
	BaseURL      string `yaml:"base_url"`
	PathTemplate string `yaml:"path_template"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}

// SearchConfig holds scoring and fuzzy matcher settings.
type SearchConfig struct {
	BroadKeywords bool          `yaml:"broad_keywords"`
	Weights       WeightsConfig `yaml:"weights"`
	Fuzzy         FuzzyConfig   `yaml:"fuzzy"`
}

// WeightsConfig holds the structured scoring constants.
type WeightsConfig struct {
	IndustryExact    float64 `yaml:"industry_exact"`
	IndustryPartial  float64 `yaml:"industry_partial"`
	KeywordExact     float64 `yaml:"keyword_exact"`
	KeywordPartial   float64 `yaml:"keyword_partial"`
	KeywordBonus     float64 `yaml:"keyword_bonus"`
	DescriptionHit   float64 `yaml:"description_hit"`
	DescriptionBonus float64 `yaml:"description_bonus"`
}

// FuzzyConfig holds the fuzzy matcher settings.
type FuzzyConfig struct {
	Tolerance        float64 `yaml:"tolerance"`
	KeywordsWeight   float64 `yaml:"keywords_weight"`
	CategoryWeight   float64 `yaml:"category_weight"`
	CategoriesWeight float64 `yaml:"categories_weight"`
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
	if c.Source.Driver == "" {
		c.Source.Driver = "http"
	}
	if c.Source.FetchTimeoutSec <= 0 {
		c.Source.FetchTimeoutSec = 10
	}
	if c.Source.ReadinessTimeout <= 0 {
		c.Source.ReadinessTimeout = 10
	}
	if c.Source.Key == "" {
		c.Source.Key = "logodex:index"
	}
	if c.Assets.PathTemplate == "" {
		c.Assets.PathTemplate = "/logos/%s"
	}
	if c.CORS.AllowedOrigin == "" {
		c.CORS.AllowedOrigin = "*"
	}

	w := &c.Search.Weights
	if w.IndustryExact <= 0 {
		w.IndustryExact = 100
	}
	if w.IndustryPartial <= 0 {
		w.IndustryPartial = 50
	}
	if w.KeywordExact <= 0 {
		w.KeywordExact = 30
	}
	if w.KeywordPartial <= 0 {
		w.KeywordPartial = 15
	}
	if w.KeywordBonus <= 0 {
		w.KeywordBonus = 5
	}
	if w.DescriptionHit <= 0 {
		w.DescriptionHit = 20
	}
	if w.DescriptionBonus <= 0 {
		w.DescriptionBonus = 5
	}

	f := &c.Search.Fuzzy
	if f.Tolerance <= 0 {
		f.Tolerance = 0.6
	}
	if f.KeywordsWeight <= 0 {
		f.KeywordsWeight = 1.0
	}
	if f.CategoryWeight <= 0 {
		f.CategoryWeight = 0.7
	}
	if f.CategoriesWeight <= 0 {
		f.CategoriesWeight = 0.4
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Source.Driver {
	case "http":
		if c.Source.URL == "" {
			return fmt.Errorf("source.url is required for the http driver")
		}
	case "file":
		if c.Source.Path == "" {
			return fmt.Errorf("source.path is required for the file driver")
		}
	case "redis":
		if len(c.Source.Addrs) == 0 {
			return fmt.Errorf("source.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("source.driver must be http, file, or redis, got %q", c.Source.Driver)
	}
	if c.Search.Fuzzy.Tolerance > 1 {
		return fmt.Errorf("search.fuzzy.tolerance must be in (0, 1], got %v", c.Search.Fuzzy.Tolerance)
	}
	return nil
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
