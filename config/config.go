// Package config loads gotdoc settings from TOML files with GOTDOC_*
// environment overrides, and endpoint credentials from a key=value file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/ZaguanLabs/gotdoc"
)

// DefaultFile is the config file looked up in the application directory.
const DefaultFile = "gotdoc.toml"

// Config holds all configuration for gotdoc.
type Config struct {
	Provider    ProviderConfig    `toml:"provider"`
	Translation TranslationConfig `toml:"translation"`
	Output      OutputConfig      `toml:"output"`
	Cache       CacheConfig       `toml:"cache"`
	Logging     LoggingConfig     `toml:"logging"`
}

// ProviderConfig selects the completion backend.
type ProviderConfig struct {
	Name              string `toml:"name"` // openai, azure, azure-inference, gemini, mock
	Model             string `toml:"model"`
	APIVersion        string `toml:"api_version"`
	CredentialsFile   string `toml:"credentials_file"`
	RequestsPerMinute int    `toml:"requests_per_minute"` // 0 = unlimited
}

// TranslationConfig holds the translation defaults and retry schedule.
type TranslationConfig struct {
	SourceLang    string `toml:"source_lang"`
	TargetLang    string `toml:"target_lang"`
	Context       string `toml:"context"`
	TextChunkSize int    `toml:"text_chunk_size"`
	HTMLChunkSize int    `toml:"html_chunk_size"`
	MaxRetries    int    `toml:"max_retries"`
	ErrorDelay    string `toml:"error_delay"`  // wait after a failed request
	RejectDelay   string `toml:"reject_delay"` // wait after an unusable reply
	IncludeHTML   bool   `toml:"include_html"`
}

// OutputConfig holds where run folders are created.
type OutputConfig struct {
	Root string `toml:"root"`
}

// CacheConfig configures the optional translation cache.
type CacheConfig struct {
	Backend   string `toml:"backend"` // "", memory or redis
	RedisURL  string `toml:"redis_url"`
	TTL       string `toml:"ttl"`
	KeyPrefix string `toml:"key_prefix"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // console or json
}

// ApplicationDir returns the directory holding the running executable,
// or the working directory when it cannot be determined.
func ApplicationDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// NewDefaultConfig returns a Config with the built-in defaults.
func NewDefaultConfig() *Config {
	appDir := ApplicationDir()
	return &Config{
		Provider: ProviderConfig{
			Name:            "azure-inference",
			Model:           "DeepSeek-V3-0324",
			APIVersion:      "2024-05-01-preview",
			CredentialsFile: filepath.Join(appDir, DefaultCredentialsFile),
		},
		Translation: TranslationConfig{
			SourceLang:    "ko",
			TargetLang:    "en",
			TextChunkSize: gotdoc.DefaultTextChunkSize,
			HTMLChunkSize: gotdoc.DefaultHTMLChunkSize,
			MaxRetries:    5,
			ErrorDelay:    "2s",
			RejectDelay:   "1s",
			IncludeHTML:   true,
		},
		Output: OutputConfig{
			Root: appDir,
		},
		Cache: CacheConfig{
			TTL:       "168h",
			KeyPrefix: "gotdoc:",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from files with environment overrides. Later
// files override earlier ones; missing files are skipped.
func Load(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, &gotdoc.ConfigurationError{Message: "failed to read config file " + path, Cause: err}
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, &gotdoc.ConfigurationError{Message: "failed to parse config file " + path, Cause: err}
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("GOTDOC_PROVIDER"); v != "" {
		config.Provider.Name = v
	}
	if v := os.Getenv("GOTDOC_MODEL"); v != "" {
		config.Provider.Model = v
	}
	if v := os.Getenv("GOTDOC_API_VERSION"); v != "" {
		config.Provider.APIVersion = v
	}
	if v := os.Getenv("GOTDOC_CREDENTIALS_FILE"); v != "" {
		config.Provider.CredentialsFile = v
	}
	if v := os.Getenv("GOTDOC_REQUESTS_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Provider.RequestsPerMinute = n
		}
	}

	if v := os.Getenv("GOTDOC_SOURCE_LANG"); v != "" {
		config.Translation.SourceLang = v
	}
	if v := os.Getenv("GOTDOC_TARGET_LANG"); v != "" {
		config.Translation.TargetLang = v
	}
	if v := os.Getenv("GOTDOC_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			config.Translation.MaxRetries = n
		}
	}

	if v := os.Getenv("GOTDOC_OUTPUT_ROOT"); v != "" {
		config.Output.Root = v
	}

	if v := os.Getenv("GOTDOC_CACHE"); v != "" {
		config.Cache.Backend = v
	}
	if v := os.Getenv("GOTDOC_REDIS_URL"); v != "" {
		config.Cache.RedisURL = v
	}

	if v := os.Getenv("GOTDOC_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}

// Validate checks values that would otherwise fail late in a run.
func (c *Config) Validate() error {
	switch {
	case c.Translation.TextChunkSize <= 0 || c.Translation.HTMLChunkSize <= 0:
		return &gotdoc.ConfigurationError{Message: "chunk sizes must be positive"}
	case c.Translation.MaxRetries < 0:
		return &gotdoc.ConfigurationError{Message: "max_retries must not be negative"}
	case c.Translation.SourceLang == "" || c.Translation.TargetLang == "":
		return &gotdoc.ConfigurationError{Message: "source_lang and target_lang are required"}
	}

	switch strings.ToLower(c.Cache.Backend) {
	case "", "none", "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return &gotdoc.ConfigurationError{Message: "cache backend redis requires redis_url"}
		}
	default:
		return &gotdoc.ConfigurationError{Message: fmt.Sprintf("unknown cache backend %q", c.Cache.Backend)}
	}
	return nil
}

// RetryPolicy returns the configured retry schedule. Unparseable delays
// fall back to the defaults.
func (c *Config) RetryPolicy() gotdoc.RetryPolicy {
	p := gotdoc.DefaultRetryPolicy()
	p.MaxRetries = c.Translation.MaxRetries
	if d, err := time.ParseDuration(c.Translation.ErrorDelay); err == nil {
		p.ErrorDelay = d
	}
	if d, err := time.ParseDuration(c.Translation.RejectDelay); err == nil {
		p.RejectDelay = d
	}
	return p
}

// CacheTTL parses the cache TTL, 0 when unset or invalid.
func (c *Config) CacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 0
	}
	return d
}

// Write encodes the configuration as TOML to path.
func (c *Config) Write(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return &gotdoc.ConfigurationError{Message: "failed to encode config", Cause: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &gotdoc.WriteError{Path: path, Cause: err}
	}
	return nil
}
