package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. A .env file
// in the working directory is loaded first if present; real environment
// variables win over it.
//
// Recognized variables:
//
//	PORT                 HTTP listen port
//	DATABASE_URL         MongoDB connection string
//	DATABASE_NAME        database name
//	JWT_SECRET_KEY       HMAC signing secret
//	JWT_EXPIRY_SECONDS   token lifetime in seconds
//	JWT_LEGACY_CLAIMS    "true" signs the full user document into tokens
//
// Malformed numeric or boolean values leave the current value untouched.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		config.Port = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_NAME"); v != "" {
		config.DatabaseName = v
	}
	if v := os.Getenv("JWT_SECRET_KEY"); v != "" {
		config.SecretKey = v
	}
	if v := os.Getenv("JWT_EXPIRY_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			config.TokenValidityDuration = time.Duration(secs) * time.Second
		}
	}
	if v := os.Getenv("JWT_LEGACY_CLAIMS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			config.LegacyTokenClaims = b
		}
	}
}
