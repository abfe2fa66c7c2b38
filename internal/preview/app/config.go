package app

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"time"
)

type Config struct {
	TokenSecret string        // Optional: HMAC secret for session tokens (default: random per process)
	TokenIssuer string        // Optional: issuer claim for session tokens (default: previewd)
	TokenTTL    time.Duration // Optional: session token lifetime (default: 1h)

	FetchTimeout time.Duration // Optional: outbound fetch timeout (default: 15s)

	DatabaseFile string // Optional: path to SQLite database file (default: ./previewd.db)
	PepperFile   string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		TokenSecret:         os.Getenv("TOKEN_SECRET"),
		TokenIssuer:         getEnvOrDefault("TOKEN_ISSUER", "previewd"),
		TokenTTL:            getEnvDurationOrDefault("TOKEN_TTL", 1*time.Hour),
		FetchTimeout:        getEnvDurationOrDefault("FETCH_TIMEOUT", 15*time.Second),
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "previewd.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.TokenSecret == "" {
		// A random per-process secret keeps single-node deployments working
		// without configuration. Sessions do not survive a restart this way.
		cfg.TokenSecret = randomSecret()
	}

	return cfg
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("unable to generate token secret: " + err.Error())
	}
	return hex.EncodeToString(buf)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
