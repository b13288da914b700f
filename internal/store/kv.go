// Package store persists profiles, saved answers, mappings and logs in a
// durable key-value store. Values are JSON documents; every Set is atomic
// across the keys it writes.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// KV is a durable key-value store with multi-key atomic writes.
type KV interface {
	// Get returns the stored documents for the keys that exist.
	Get(ctx context.Context, keys []string) (map[string]json.RawMessage, error)
	// Set marshals and writes every entry in one atomic operation.
	Set(ctx context.Context, values map[string]any) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config selects and configures a backend.
type Config struct {
	Backend     string `json:"backend" yaml:"backend" validate:"omitempty,oneof=memory sqlite postgres redis"`
	SQLitePath  string `json:"sqlite_path,omitempty" yaml:"sqlite_path,omitempty"`
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	RedisAddr   string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisDB     int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
	RedisPrefix string `json:"redis_prefix,omitempty" yaml:"redis_prefix,omitempty"`
}

// Open connects to the configured backend. An empty backend means sqlite.
func Open(ctx context.Context, cfg Config) (KV, error) {
	switch cfg.Backend {
	case "", BackendSQLite:
		return NewSQLite(cfg.SQLitePath)
	case BackendMemory:
		return NewMemory(), nil
	case BackendPostgres:
		return NewPostgres(ctx, cfg.DatabaseURL)
	case BackendRedis:
		return NewRedis(ctx, RedisConfig{Addr: cfg.RedisAddr, DB: cfg.RedisDB, Prefix: cfg.RedisPrefix})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// encodeAll marshals values up front so a bad value fails the whole Set
// before anything is written.
func encodeAll(values map[string]any) (map[string][]byte, error) {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, &Error{Op: "encode", Key: key, Cause: err}
		}
		encoded[key] = b
	}
	return encoded, nil
}
