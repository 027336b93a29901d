package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseEnv(t *testing.T) {
	t.Setenv(envAddr, "127.0.0.1:9000")
	t.Setenv(envDSN, "postgres://u:p@db:5432/users")
	t.Setenv(envSecretKey, "s3cr3t")
	t.Setenv(envCSRFTokenTTL, "15m")
	t.Setenv(envReadTimeout, "3s")
	t.Setenv(envWriteTimeout, "4s")
	t.Setenv(envShutdownTimeout, "1s")
	t.Setenv(envCheckDeliverability, "true")
	t.Setenv(envLogFormat, "zap")

	c := &Config{}
	parseEnv(c)

	assert.Equal(t, &Config{
		EndpointAddrHTTP:    "127.0.0.1:9000",
		DatabaseDSN:         "postgres://u:p@db:5432/users",
		SecretKey:           "s3cr3t",
		CSRFTokenTTL:        15 * time.Minute,
		ReadTimeout:         3 * time.Second,
		WriteTimeout:        4 * time.Second,
		ShutdownTimeout:     time.Second,
		CheckDeliverability: true,
		LogFormat:           "zap",
	}, c)
}

func TestParseEnv_UnsetKeepsValues(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()
	want := *c

	parseEnv(c)
	assert.Equal(t, want, *c)
}
