// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Sachin Kathar

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// viralprompts service. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the field-encryption
	// secret, token parameters, and the deployment environment.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for the relational database and the
	// Redis counter/cache store.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings for the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Limits holds the named rate-limit budgets.
	Limits Limits `envPrefix:"LIMITS_"`

	// Cache holds response-cache tuning.
	Cache CacheConfig `envPrefix:"CACHE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and deployment behavior.
type App struct {
	// Environment is the deployment environment name ("production",
	// "staging", "development"). In production the service refuses to
	// start without an encryption secret instead of falling back to the
	// development key.
	// Env: APP_ENVIRONMENT
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// EncryptionSecret is the operator-supplied secret for the prompt-text
	// field cipher. Treated as raw key bytes: zero-padded or truncated to
	// 32 bytes, not hashed. Must be kept confidential.
	// Env: APP_ENCRYPTION_SECRET
	EncryptionSecret string `env:"ENCRYPTION_SECRET"`

	// PasswordHashKey is the secret key used when hashing user passwords
	// with HMAC-SHA256. Must be kept confidential.
	// Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim embedded in every issued JWT token.
	// Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER" envDefault:"viralprompts"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "24h", "30m").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION" envDefault:"24h"`
}

// IsProduction reports whether the service runs in the production
// environment. Gates the encryption-secret startup check.
func (a App) IsProduction() bool {
	return a.Environment == "production"
}

// Storage groups the configuration for all storage backends used by the
// application.
type Storage struct {
	// DB holds the relational database connection settings.
	DB DBConfig `envPrefix:"DB_"`

	// Redis holds the counter/cache store connection settings.
	Redis RedisConfig `envPrefix:"REDIS_"`
}

// DBConfig holds the PostgreSQL connection settings.
type DBConfig struct {
	// DSN is the PostgreSQL connection string.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// RedisConfig holds the connection settings for the shared counter/cache
// key-value store. The store is optional infrastructure: when Address is
// empty or the store is unreachable, rate limiting and caching degrade to
// fail-open behavior rather than blocking requests.
type RedisConfig struct {
	// Address is the Redis TCP address in "host:port" format.
	// Env: STORAGE_REDIS_ADDRESS
	Address string `env:"ADDRESS"`

	// Password is the optional Redis AUTH password.
	// Env: STORAGE_REDIS_PASSWORD
	Password string `env:"PASSWORD"`

	// DB is the Redis logical database index.
	// Env: STORAGE_REDIS_DB
	DB int `env:"DB" envDefault:"0"`

	// MaxIdle caps the number of idle pooled connections.
	// Env: STORAGE_REDIS_MAX_IDLE
	MaxIdle int `env:"MAX_IDLE" envDefault:"10"`

	// MaxActive caps the number of simultaneously open connections.
	// Env: STORAGE_REDIS_MAX_ACTIVE
	MaxActive int `env:"MAX_ACTIVE" envDefault:"50"`

	// ConnectTimeout bounds dial and per-command round trips.
	// Env: STORAGE_REDIS_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" envDefault:"2s"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS" envDefault:":8080"`

	// ReadTimeout bounds the time spent reading a full request.
	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`

	// WriteTimeout bounds the time spent writing a full response.
	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`

	// AllowedOrigins is the CORS allow-list for the browser client.
	// Env: SERVER_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// LimitConfig is one named fixed-window budget.
type LimitConfig struct {
	// Max is the number of requests admitted per window.
	Max int `env:"MAX"`

	// Window is the fixed window length.
	Window time.Duration `env:"WINDOW"`
}

// Limits holds every named rate-limit budget. Defaults reproduce the
// production deployment values.
type Limits struct {
	// GlobalIP is the outermost per-IP throttle applied to all routes.
	GlobalIP LimitConfig `envPrefix:"GLOBAL_"`

	// Auth caps register/login attempts per principal.
	Auth LimitConfig `envPrefix:"AUTH_"`

	// Social caps like/follow/save actions per principal.
	Social LimitConfig `envPrefix:"SOCIAL_"`

	// Upload caps proof-attachment uploads per principal.
	Upload LimitConfig `envPrefix:"UPLOAD_"`

	// Search caps search queries per principal.
	Search LimitConfig `envPrefix:"SEARCH_"`

	// Comment caps comment submissions per principal.
	Comment LimitConfig `envPrefix:"COMMENT_"`

	// PoolCreate caps pool/call creation per principal.
	PoolCreate LimitConfig `envPrefix:"POOL_CREATE_"`

	// PromptCreationCap is the handler-level business rule: maximum
	// prompt creations per rolling lookback window for non-admin users,
	// counted from persisted rows rather than a store counter.
	PromptCreationCap      int           `env:"PROMPT_CREATION_CAP" envDefault:"3"`
	PromptCreationLookback time.Duration `env:"PROMPT_CREATION_LOOKBACK" envDefault:"12h"`
}

// CacheConfig holds response-cache tuning.
type CacheConfig struct {
	// TTL is the lifetime of read-through cache entries.
	// Env: CACHE_TTL
	TTL time.Duration `env:"TTL" envDefault:"5m"`
}
