// Package config handles configuration for the userbook server,
// including defaults, environment, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the userbook server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP server.
//   - DatabaseDSN: SQLite file path, or a postgres:// URL (pgx).
//   - SecretKey: HMAC secret for CSRF and flash tokens. Do not use the default in prod.
//   - CSRFTokenTTL: how long a rendered form stays submittable.
//   - ReadTimeout / WriteTimeout / ShutdownTimeout: HTTP server limits.
//   - CheckDeliverability: require the email domain to resolve.
//   - LogFormat: json, text or zap.
type Config struct {
	EndpointAddrHTTP    string
	DatabaseDSN         string
	SecretKey           string
	CSRFTokenTTL        time.Duration
	ReadTimeout         time.Duration
	WriteTimeout        time.Duration
	ShutdownTimeout     time.Duration
	CheckDeliverability bool
	LogFormat           string
}

// LoadDefaults populates Config with development defaults.
// NOTE: SecretKey must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.DatabaseDSN = "users.db"
	c.SecretKey = "your_secret_key"
	c.CSRFTokenTTL = 60 * time.Minute
	c.ReadTimeout = 10 * time.Second
	c.WriteTimeout = 10 * time.Second
	c.ShutdownTimeout = 5 * time.Second
	c.CheckDeliverability = false
	c.LogFormat = "json"
}

// LoadConfig builds a Config by applying defaults, then overlaying the
// environment (and .env), an optional JSON file and finally command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
