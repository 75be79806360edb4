package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string
	// HubSpot private app token, sent as a bearer credential
	HubSpotAPIKey  string
	HubSpotBaseURL string
	HubSpotTimeout time.Duration
	// Request handling
	MaxBodyBytes       int64
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
	LogLevel           string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win when both are set
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "3000"),
		HubSpotAPIKey: getEnv("HUBSPOT_API_KEY", ""),
		// Strip trailing slash so path joins don't produce //crm
		HubSpotBaseURL:     strings.TrimRight(getEnv("HUBSPOT_BASE_URL", "https://api.hubapi.com"), "/"),
		HubSpotTimeout:     time.Duration(getEnvInt("HUBSPOT_TIMEOUT_SECONDS", 10)) * time.Second,
		MaxBodyBytes:       int64(getEnvInt("MAX_BODY_BYTES", 100*1024)), // 100kb
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ShutdownTimeout:    time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
	}

	// Not fatal: every relay will fail authentication, but the endpoint still validates input
	if cfg.HubSpotAPIKey == "" {
		log.Println("WARNING: HUBSPOT_API_KEY is missing. Requests to HubSpot will be rejected.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil && intVal > 0 {
			return intVal
		}
	}
	return fallback
}

// getEnvList splits a comma separated variable, dropping empty entries
func getEnvList(key string, fallback []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
