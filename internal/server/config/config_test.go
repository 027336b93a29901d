package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, "users.db", c.DatabaseDSN)
	assert.Equal(t, "your_secret_key", c.SecretKey)
	assert.Equal(t, 60*time.Minute, c.CSRFTokenTTL)
	assert.Equal(t, 10*time.Second, c.ReadTimeout)
	assert.Equal(t, 10*time.Second, c.WriteTimeout)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
	assert.False(t, c.CheckDeliverability)
	assert.Equal(t, "json", c.LogFormat)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()
	require.NotNil(t, c, "LoadConfig must not return nil")

	var want Config
	want.LoadDefaults()
	assert.Equal(t, want, *c)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv(envAddr, ":7000")
	t.Setenv(envDSN, "env.db")
	t.Setenv(envSecretKey, "env-secret")

	path := writeTempJSON(t, "", "", map[string]any{
		"database_dsn": "json.db",
		"secret_key":   "json-secret",
	})
	os.Args = []string{"testbin", "-c", path, "-s", "flag-secret"}

	c := LoadConfig()
	assert.Equal(t, ":7000", c.EndpointAddrHTTP, "env over defaults")
	assert.Equal(t, "json.db", c.DatabaseDSN, "json over env")
	assert.Equal(t, "flag-secret", c.SecretKey, "flags over json")
}
