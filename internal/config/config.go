package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Backend API Configuration
	Backend BackendConfig

	// HTTP Server Configuration
	Server ServerConfig

	// Session Cookie Configuration
	Session SessionConfig

	// Redis Configuration
	Redis RedisConfig

	// Logging Configuration
	Logging LoggingConfig
}

// BackendConfig holds marketplace backend API configuration
type BackendConfig struct {
	URL string // Base URL of the marketplace backend API
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	ListenAddr  string   // Address the gateway listens on (host:port)
	CORSOrigins []string // Allowed origins for the dashboard frontend
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	CookieName   string
	CookieSecure bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Address string // Redis address (host:port)
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// Backend base URL has no sensible default: the gateway cannot serve a
	// single authenticated request without it.
	backendURL := os.Getenv("BACKEND_API_URL")
	if backendURL == "" {
		return nil, fmt.Errorf("BACKEND_API_URL is required")
	}
	backendURL = strings.TrimRight(backendURL, "/")

	listenAddr := os.Getenv("LISTEN_ADDR")
	if listenAddr == "" {
		listenAddr = ":8080"
	}

	corsOrigins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		corsOrigins = nil
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	cookieName := os.Getenv("SESSION_COOKIE_NAME")
	if cookieName == "" {
		cookieName = "accessToken"
	}

	cookieSecure := os.Getenv("SESSION_COOKIE_SECURE") != "false"

	// Redis address - default to localhost:6379, allow override for dev/docker
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}

	// Logging configuration - defaults suitable for production
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := os.Getenv("LOG_FORMAT")
	if logFormat == "" {
		logFormat = "json"
	}

	return &Config{
		Backend: BackendConfig{
			URL: backendURL,
		},
		Server: ServerConfig{
			ListenAddr:  listenAddr,
			CORSOrigins: corsOrigins,
		},
		Session: SessionConfig{
			CookieName:   cookieName,
			CookieSecure: cookieSecure,
		},
		Redis: RedisConfig{
			Address: redisAddr,
		},
		Logging: LoggingConfig{
			Level:  logLevel,
			Format: logFormat,
		},
	}, nil
}
