package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Places  PlacesConfig
	Dataset DatasetConfig
}

// AppConfig holds general application configuration
type AppConfig struct {
	Env string
}

// PlacesConfig holds Google Places API configuration
type PlacesConfig struct {
	APIKey       string
	BaseURL      string
	RequestDelay time.Duration
	PageSize     int
}

// DatasetConfig holds dataset output configuration
type DatasetConfig struct {
	Path    string
	RawPath string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		App: AppConfig{
			Env: getEnv("APP_ENV", "development"),
		},
		Places: PlacesConfig{
			APIKey:       getEnv("PLACES_API_KEY", ""),
			BaseURL:      getEnv("PLACES_BASE_URL", "https://places.googleapis.com/v1"),
			RequestDelay: time.Duration(getEnvAsInt("SCRAPE_DELAY_MS", 200)) * time.Millisecond,
			PageSize:     getEnvAsInt("SCRAPE_PAGE_SIZE", 20),
		},
		Dataset: DatasetConfig{
			Path:    getEnv("DATASET_PATH", "data/clinics.json"),
			RawPath: getEnv("RAW_DATASET_PATH", "data/clinics-google.json"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
