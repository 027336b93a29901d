package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variables read by parseEnv.
const (
	envAddr                = "USERBOOK_ADDR"
	envDSN                 = "USERBOOK_DSN"
	envSecretKey           = "USERBOOK_SECRET_KEY"
	envCSRFTokenTTL        = "USERBOOK_CSRF_TOKEN_TTL"
	envReadTimeout         = "USERBOOK_READ_TIMEOUT"
	envWriteTimeout        = "USERBOOK_WRITE_TIMEOUT"
	envShutdownTimeout     = "USERBOOK_SHUTDOWN_TIMEOUT"
	envCheckDeliverability = "USERBOOK_CHECK_DELIVERABILITY"
	envLogFormat           = "USERBOOK_LOG_FORMAT"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first if present; it never overrides variables
// that are already set. Durations use time.ParseDuration syntax ("30s").
func parseEnv(config *Config) {
	_ = godotenv.Load(".env")

	if v, ok := os.LookupEnv(envAddr); ok {
		config.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(envDSN); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok {
		config.SecretKey = v
	}
	if v, ok := os.LookupEnv(envCSRFTokenTTL); ok {
		config.CSRFTokenTTL = cast.ToDuration(v)
	}
	if v, ok := os.LookupEnv(envReadTimeout); ok {
		config.ReadTimeout = cast.ToDuration(v)
	}
	if v, ok := os.LookupEnv(envWriteTimeout); ok {
		config.WriteTimeout = cast.ToDuration(v)
	}
	if v, ok := os.LookupEnv(envShutdownTimeout); ok {
		config.ShutdownTimeout = cast.ToDuration(v)
	}
	if v, ok := os.LookupEnv(envCheckDeliverability); ok {
		config.CheckDeliverability = cast.ToBool(v)
	}
	if v, ok := os.LookupEnv(envLogFormat); ok {
		config.LogFormat = v
	}
}
