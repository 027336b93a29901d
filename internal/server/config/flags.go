package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/userbook/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   database DSN (SQLite file or postgres:// URL)
//	-s string   secret key for form and flash tokens
//	-t int      CSRF token validity, minutes
//	-m          check that email domains resolve
//	-l string   log format: json, text or zap
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and any
// foreign flags do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-l"}, "-m")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	csrfTokenTTL := fs.Int("t", int(config.CSRFTokenTTL.Minutes()), "csrf token validity (in minutes)")
	fs.BoolVar(&config.CheckDeliverability, "m", config.CheckDeliverability, "check email domain deliverability")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json, text, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// only an explicit -t replaces the TTL; the default is rounded to minutes
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.CSRFTokenTTL = time.Duration(*csrfTokenTTL) * time.Minute
		}
	})
}
