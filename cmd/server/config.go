package main

import (
	"flag"
	"os"
	"strconv"
)

// Config holds runtime settings for the tenant auth server.
//
// Fields:
//   - HTTPAddr: bind address for the HTTP endpoint.
//   - DatabaseDSN: sqlite DSN (file path or ":memory:").
//   - SigningKey: HMAC secret for signing JWTs (HS256). Do not use the
//     default in production.
//   - TokenExpiration: token lifetime in hours.
type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	SigningKey      string
	TokenExpiration int
	Issuer          string
	Audience        string
	ContextKey      string
	AuthScheme      string
	Debug           bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8572"
	c.DatabaseDSN = "file:tenantauth.db?cache=shared"
	c.SigningKey = "secret"
	c.TokenExpiration = 10
	c.Issuer = "tenant-auth"
	c.Audience = "api"
	c.ContextKey = "user"
	c.AuthScheme = "Bearer"
	c.Debug = false
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from the environment and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(config *Config) {
	if v := os.Getenv("AUTH_HTTP_ADDR"); v != "" {
		config.HTTPAddr = v
	}
	if v := os.Getenv("AUTH_DATABASE_DSN"); v != "" {
		config.DatabaseDSN = v
	}
	if v := os.Getenv("AUTH_SIGNING_KEY"); v != "" {
		config.SigningKey = v
	}
	if v := os.Getenv("AUTH_TOKEN_EXPIRATION"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil {
			config.TokenExpiration = hours
		}
	}
	if v := os.Getenv("AUTH_ISSUER"); v != "" {
		config.Issuer = v
	}
	if v := os.Getenv("AUTH_AUDIENCE"); v != "" {
		config.Audience = v
	}
	if v := os.Getenv("AUTH_DEBUG"); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			config.Debug = debug
		}
	}
}

func parseFlags(config *Config) {
	flag.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	flag.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	flag.StringVar(&config.SigningKey, "s", config.SigningKey, "JWT signing key")
	flag.IntVar(&config.TokenExpiration, "t", config.TokenExpiration, "token validity (in hours)")
	flag.StringVar(&config.Issuer, "i", config.Issuer, "token issuer")
	flag.BoolVar(&config.Debug, "debug", config.Debug, "enable debug output")
	flag.Parse()
}

// Sanitized returns a copy safe for logging, with the signing key masked.
func (c *Config) Sanitized() Config {
	out := *c
	if out.SigningKey != "" {
		out.SigningKey = "[REDACTED]"
	}
	return out
}

// GetSigningKey returns the JWT signing key
func (c *Config) GetSigningKey() string { return c.SigningKey }

// GetTokenExpiration returns the token lifetime in hours
func (c *Config) GetTokenExpiration() int { return c.TokenExpiration }

// GetIssuer returns the token issuer
func (c *Config) GetIssuer() string { return c.Issuer }

// GetAudience returns the token audience
func (c *Config) GetAudience() []string {
	if c.Audience == "" {
		return nil
	}
	return []string{c.Audience}
}

// GetContextKey returns the router locals key for verified sessions
func (c *Config) GetContextKey() string { return c.ContextKey }

// GetAuthScheme returns the Authorization header scheme
func (c *Config) GetAuthScheme() string { return c.AuthScheme }
