package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/userbook/internal/flagx"
	"github.com/dmitrijs2005/userbook/internal/timex"
)

// JsonConfig is the on-disk shape of the JSON config file. Durations accept
// "1m"-style strings or integer nanoseconds (see timex.Duration). Fields that
// are absent leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP    string          `json:"endpoint_addr_http"`
	DatabaseDSN         string          `json:"database_dsn"`
	SecretKey           string          `json:"secret_key"`
	CSRFTokenTTL        *timex.Duration `json:"csrf_token_ttl"`
	ReadTimeout         *timex.Duration `json:"read_timeout"`
	WriteTimeout        *timex.Duration `json:"write_timeout"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
	CheckDeliverability *bool           `json:"check_deliverability"`
	LogFormat           string          `json:"log_format"`
}

// parseJson loads the file named by -c / -config, if any, and overlays its
// values on config. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogFormat, c.LogFormat)
	setDuration(&config.CSRFTokenTTL, c.CSRFTokenTTL)
	setDuration(&config.ReadTimeout, c.ReadTimeout)
	setDuration(&config.WriteTimeout, c.WriteTimeout)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	if c.CheckDeliverability != nil {
		config.CheckDeliverability = *c.CheckDeliverability
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, v *timex.Duration) {
	if v != nil {
		*dst = v.Duration
	}
}
