// Package config loads and validates datepoll configuration.
//
// Values come from environment variables parsed with github.com/caarlos0/env
// struct tags; cmd/server loads an optional .env file first.
//
//	cfg, err := config.Load()
//	if err != nil { ... }
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: port, environment, timeouts, CORS origins, body limit
//   - DatabaseConfig: DB_DRIVER (sqlite or surrealdb) and its connection settings
//   - PollConfig: MAX_RANGE_DAYS
//   - RateLimitConfig: per-client limits on mutating requests
//
// Validate reports every problem at once using errors.Join.
package config
