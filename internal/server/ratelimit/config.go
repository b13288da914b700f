package ratelimit

import "time"

// Rule limits one message action.
type Rule struct {
	Action string        `json:"action" yaml:"action" validate:"required"`
	Limit  int           `json:"limit" yaml:"limit" validate:"gte=0"`
	Window time.Duration `json:"window" yaml:"window"`
	Burst  int           `json:"burst,omitempty" yaml:"burst,omitempty" validate:"gte=0"`
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool          `json:"enabled" yaml:"enabled"`
	CleanupInterval time.Duration `json:"cleanup_interval,omitempty" yaml:"cleanup_interval,omitempty"`
	// Whitelist holds client IDs that are never limited.
	Whitelist []string `json:"whitelist,omitempty" yaml:"whitelist,omitempty"`
	Rules     []Rule   `json:"rules,omitempty" yaml:"rules,omitempty" validate:"dive"`
}

// DefaultConfig limits the model-backed actions and nothing else.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		CleanupInterval: 5 * time.Minute,
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns the default per-action limits.
func DefaultRules() []Rule {
	return []Rule{
		{Action: "structureResume", Limit: 10, Window: time.Hour, Burst: 2},
		{Action: "generateAnswer", Limit: 60, Window: time.Hour, Burst: 5},
	}
}
