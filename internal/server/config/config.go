// Package config handles configuration for the server, including defaults
// and the environment overlay.
package config

import "time"

// Config holds runtime settings for the API server.
//
// Fields:
//   - Port: TCP port the HTTP server listens on.
//   - DatabaseURL: MongoDB connection string. The client connects lazily, so
//     a wrong or unreachable URL does not fail startup.
//   - DatabaseName: database holding the users collection.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Deliberately has no
//     default: an empty secret makes every login fail with 500, which is the
//     deployed contract for a missing JWT_SECRET_KEY.
//   - TokenValidityDuration: session token lifetime.
//   - LegacyTokenClaims: sign the full user document into the token the way
//     the original deployment did, instead of the minimal claim set.
type Config struct {
	Port                  string
	DatabaseURL           string
	DatabaseName          string
	SecretKey             string
	TokenValidityDuration time.Duration
	LegacyTokenClaims     bool
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.Port = "8080"
	c.DatabaseURL = "mongodb://localhost:27017"
	c.DatabaseName = "fadhilapp"
	c.SecretKey = ""
	c.TokenValidityDuration = 3600 * time.Second
	c.LegacyTokenClaims = false
}

// LoadConfig builds a Config by applying defaults and then overlaying
// values from the environment (with an optional .env file).
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	return cfg
}
