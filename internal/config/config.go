// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/job-autofill/internal/llm"
	"github.com/jonathan/job-autofill/internal/observability"
	"github.com/jonathan/job-autofill/internal/server/ratelimit"
	"github.com/jonathan/job-autofill/internal/store"
)

// DefaultAddr is the default listen address; the server is local only.
const DefaultAddr = "127.0.0.1:8765"

// Config represents the CLI configuration that can be loaded from a JSON or
// YAML file. All fields are optional; missing values use defaults.
type Config struct {
	Log     observability.LogConfig `json:"log" yaml:"log"`
	Store   store.Config            `json:"store" yaml:"store"`
	Server  ServerConfig            `json:"server" yaml:"server"`
	AI      AIConfig                `json:"ai" yaml:"ai"`
	Browser BrowserConfig           `json:"browser" yaml:"browser"`
}

// ServerConfig configures the local message server.
type ServerConfig struct {
	Addr           string            `json:"addr,omitempty" yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
	AllowedOrigins []string          `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	RateLimit      *ratelimit.Config `json:"rate_limit,omitempty" yaml:"rate_limit,omitempty"`
}

// AIConfig supplies provider keys used when the store holds none.
type AIConfig struct {
	OpenAIKey string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	GeminiKey string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	Provider  string `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=openai gemini"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
}

// BrowserConfig configures the chromedp host.
type BrowserConfig struct {
	Headless bool          `json:"headless,omitempty" yaml:"headless,omitempty"`
	ExecPath string        `json:"exec_path,omitempty" yaml:"exec_path,omitempty"`
	Timeout  time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" validate:"gte=0"`
	Debounce time.Duration `json:"debounce,omitempty" yaml:"debounce,omitempty" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:   observability.LogConfig{Level: "info", Format: "console"},
		Store: store.Config{Backend: store.BackendSQLite},
		Server: ServerConfig{
			Addr:      DefaultAddr,
			RateLimit: ratelimit.DefaultConfig(),
		},
		Browser: BrowserConfig{
			Timeout:  2 * time.Minute,
			Debounce: 100 * time.Millisecond,
		},
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by
// extension. Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Load reads path when it is non-empty, fills gaps from Default, applies
// environment overrides and validates the result.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

// ApplyEnv overrides fields from environment variables. lookup is
// os.LookupEnv outside tests.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"AUTOFILL_LOG_LEVEL", &c.Log.Level},
		{"AUTOFILL_LOG_FORMAT", &c.Log.Format},
		{"AUTOFILL_STORE", &c.Store.Backend},
		{"AUTOFILL_SQLITE_PATH", &c.Store.SQLitePath},
		{"DATABASE_URL", &c.Store.DatabaseURL},
		{"REDIS_ADDR", &c.Store.RedisAddr},
		{"AUTOFILL_ADDR", &c.Server.Addr},
		{"OPENAI_API_KEY", &c.AI.OpenAIKey},
		{"GEMINI_API_KEY", &c.AI.GeminiKey},
		{"AUTOFILL_AI_PROVIDER", &c.AI.Provider},
	}
	for _, s := range strs {
		if v, ok := lookup(s.name); ok && v != "" {
			*s.dst = v
		}
	}

	if v, ok := lookup("AUTOFILL_HEADLESS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: AUTOFILL_HEADLESS: %w", err)
		}
		c.Browser.Headless = b
	}
	if v, ok := lookup("REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: REDIS_DB: %w", err)
		}
		c.Store.RedisDB = n
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags and then the cross-field rules.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("config error: '%s' failed '%s' check", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	switch c.Store.Backend {
	case store.BackendPostgres:
		if c.Store.DatabaseURL == "" {
			return fmt.Errorf("config error: postgres store requires 'database_url'")
		}
	case store.BackendRedis:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("config error: redis store requires 'redis_addr'")
		}
	}

	if c.AI.Provider != "" && !llm.Provider(c.AI.Provider).Valid() {
		return fmt.Errorf("config error: unknown AI provider %q", c.AI.Provider)
	}

	if rl := c.Server.RateLimit; rl != nil {
		for _, r := range rl.Rules {
			if r.Limit > 0 && r.Window <= 0 {
				return fmt.Errorf("config error: rate limit for %q needs a positive window", r.Action)
			}
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Log.Level == "" {
		result.Log.Level = defaults.Log.Level
	}
	if result.Log.Format == "" {
		result.Log.Format = defaults.Log.Format
	}
	if result.Store.Backend == "" {
		result.Store.Backend = defaults.Store.Backend
	}
	if result.Store.SQLitePath == "" {
		result.Store.SQLitePath = defaults.Store.SQLitePath
	}
	if result.Store.DatabaseURL == "" {
		result.Store.DatabaseURL = defaults.Store.DatabaseURL
	}
	if result.Store.RedisAddr == "" {
		result.Store.RedisAddr = defaults.Store.RedisAddr
	}
	if result.Server.Addr == "" {
		result.Server.Addr = defaults.Server.Addr
	}
	if result.AI.OpenAIKey == "" {
		result.AI.OpenAIKey = defaults.AI.OpenAIKey
	}
	if result.AI.GeminiKey == "" {
		result.AI.GeminiKey = defaults.AI.GeminiKey
	}
	if result.AI.Provider == "" {
		result.AI.Provider = defaults.AI.Provider
	}
	if result.Browser.ExecPath == "" {
		result.Browser.ExecPath = defaults.Browser.ExecPath
	}

	if len(result.Server.AllowedOrigins) == 0 {
		result.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if result.Server.RateLimit == nil {
		result.Server.RateLimit = defaults.Server.RateLimit
	}

	// Duration fields: use default if zero
	if result.Browser.Timeout == 0 {
		result.Browser.Timeout = defaults.Browser.Timeout
	}
	if result.Browser.Debounce == 0 {
		result.Browser.Debounce = defaults.Browser.Debounce
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Keys returns the configured provider keys in the store's shape.
func (a AIConfig) Keys() store.AIKeys {
	return store.AIKeys{OpenAIKey: a.OpenAIKey, GeminiKey: a.GeminiKey, ActiveProvider: a.Provider}
}
