package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds validated environment configuration for the room coordinator.
type Config struct {
	// Required variables
	Port string

	// Optional variables with defaults
	GoEnv          string
	LogLevel       string
	AllowedOrigins string

	// Room registry tuning (§6.4)
	MaxRooms         int
	RoomCleanupGrace time.Duration
	LandingURL       string

	OtelServiceName string
}

// ValidateEnv validates all required environment variables and returns a Config object.
// Returns an error if any required variable is missing or invalid.
func ValidateEnv() (*Config, error) {
	cfg := &Config{}
	var errors []string

	// Required: PORT (valid port number)
	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		errors = append(errors, "PORT is required")
	} else {
		port, err := strconv.Atoi(cfg.Port)
		if err != nil || port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be a valid port number between 1 and 65535 (got '%s')", cfg.Port))
		}
	}

	// Optional: GO_ENV (defaults to "production")
	cfg.GoEnv = os.Getenv("GO_ENV")
	if cfg.GoEnv == "" {
		cfg.GoEnv = "production"
	}

	// Optional: LOG_LEVEL (defaults to "info")
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.AllowedOrigins = os.Getenv("ALLOWED_ORIGINS")

	// Optional: MAX_ROOMS - registry capacity, default 2500 (§6.4)
	maxRoomsStr := getEnvOrDefault("MAX_ROOMS", "2500")
	maxRooms, err := strconv.Atoi(maxRoomsStr)
	if err != nil || maxRooms < 1 {
		errors = append(errors, fmt.Sprintf("MAX_ROOMS must be a positive integer (got '%s')", maxRoomsStr))
	} else {
		cfg.MaxRooms = maxRooms
	}

	// Optional: ROOM_CLEANUP_GRACE_SECONDS - defaults to 0. The value is parsed,
	// validated and logged only; nothing reads RoomCleanupGrace, so the registry
	// and hub always clean up immediately, whatever its value.
	graceStr := getEnvOrDefault("ROOM_CLEANUP_GRACE_SECONDS", "0")
	graceSec, err := strconv.Atoi(graceStr)
	if err != nil || graceSec < 0 {
		errors = append(errors, fmt.Sprintf("ROOM_CLEANUP_GRACE_SECONDS must be a non-negative integer (got '%s')", graceStr))
	} else {
		cfg.RoomCleanupGrace = time.Duration(graceSec) * time.Second
	}

	cfg.LandingURL = getEnvOrDefault("LANDING_URL", "/landing.html")
	cfg.OtelServiceName = getEnvOrDefault("OTEL_SERVICE_NAME", "room-coordinator")

	if len(errors) > 0 {
		return nil, fmt.Errorf("environment validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	logValidatedConfig(cfg)
	return cfg, nil
}

// logValidatedConfig logs the validated configuration.
func logValidatedConfig(cfg *Config) {
	slog.Info("environment configuration validated",
		"port", cfg.Port,
		"go_env", cfg.GoEnv,
		"log_level", cfg.LogLevel,
		"max_rooms", cfg.MaxRooms,
		"room_cleanup_grace", cfg.RoomCleanupGrace,
		"landing_url", cfg.LandingURL,
	)
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
