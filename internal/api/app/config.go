package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pixelfeedhq/pixelfeed/pkg/jwtx"
)

type Config struct {
	Issuer    string        // Optional: issuer claim for session tokens (default: pixelfeed-api)
	JWTSecret string        // Required: HMAC secret for signing session tokens
	TokenTTL  time.Duration // Optional: session token lifetime (default: 1h)

	DatabaseFile string // Optional: path to SQLite database file (default: ./pixelfeed.db)

	S3Region     string // Optional: bucket region (default: us-east-1)
	S3Endpoint   string // Optional: custom S3 endpoint (MinIO, localstack)
	S3AccessKey  string // Optional: static credential, falls back to the default chain
	S3SecretKey  string // Optional: static credential, falls back to the default chain
	S3Bucket     string // Required: bucket for uploaded post media
	MediaBaseURL string // Optional: public base URL for media (default: the endpoint)

	CORSOrigins []string // Optional: allowed browser origins, comma separated in env

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("API_ISSUER", "pixelfeed-api"),
		JWTSecret: os.Getenv("API_JWT_SECRET"),
		TokenTTL:  getEnvDurationOrDefault("API_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),

		DatabaseFile: getEnvOrDefault("API_DATABASE_FILE", "pixelfeed.db"),

		S3Region:     getEnvOrDefault("S3_REGION", "us-east-1"),
		S3Endpoint:   os.Getenv("S3_ENDPOINT"),
		S3AccessKey:  os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:  os.Getenv("S3_SECRET_KEY"),
		S3Bucket:     os.Getenv("S3_BUCKET"),
		MediaBaseURL: os.Getenv("MEDIA_BASE_URL"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
			}
		}
	}

	return cfg
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

	// Accept either a duration string ("1h", "30m") or plain minutes.
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
