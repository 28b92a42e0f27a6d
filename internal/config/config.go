// Package config provides configuration management for the booking functions.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Marketing API variants selectable via MARKETING_API_VERSION.
const (
	MarketingAPITrack = "track"
	MarketingAPIV3    = "v3"
)

// Config holds all configuration values for the application.
type Config struct {
	// CORS
	AllowedOrigin string

	// CRM
	CRMWebhookURL string

	// Marketing events
	MarketingAPIKey     string
	MarketingAPIBaseURL string
	MarketingAPIVersion string

	// Payments
	StripeSecretKey string

	// Course
	CourseName string

	// HTTP client
	HTTPTimeoutSeconds int

	// Application
	Stage    string
	LogLevel string
	Port     int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	cfg := &Config{
		// CORS
		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "https://license-me.co.uk"),

		// CRM
		CRMWebhookURL: getEnv("CRM_WEBHOOK_URL", ""),

		// Marketing events
		MarketingAPIKey:     getEnv("MARKETING_API_KEY", getEnv("KLAVIYO_API_KEY", "")),
		MarketingAPIBaseURL: getEnv("MARKETING_API_BASE_URL", "https://a.klaviyo.com"),
		MarketingAPIVersion: getEnv("MARKETING_API_VERSION", MarketingAPIV3),

		// Payments
		StripeSecretKey: getEnv("STRIPE_SECRET_KEY", ""),

		// Course
		CourseName: getEnv("COURSE_NAME", "Door Supervisor Training"),

		// HTTP client
		HTTPTimeoutSeconds: getEnvInt("HTTP_TIMEOUT_SECONDS", 30),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnvInt("PORT", 8080),
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
