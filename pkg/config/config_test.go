package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PlacesConfig(t *testing.T) {
	os.Setenv("PLACES_API_KEY", "test-key")
	os.Setenv("PLACES_BASE_URL", "http://places.test/v1")
	os.Setenv("SCRAPE_DELAY_MS", "50")
	defer func() {
		os.Unsetenv("PLACES_API_KEY")
		os.Unsetenv("PLACES_BASE_URL")
		os.Unsetenv("SCRAPE_DELAY_MS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "test-key", cfg.Places.APIKey)
	assert.Equal(t, "http://places.test/v1", cfg.Places.BaseURL)
	assert.Equal(t, 50*time.Millisecond, cfg.Places.RequestDelay)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PLACES_API_KEY")
	os.Unsetenv("PLACES_BASE_URL")
	os.Unsetenv("SCRAPE_DELAY_MS")
	os.Unsetenv("DATASET_PATH")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "", cfg.Places.APIKey)
	assert.Equal(t, "https://places.googleapis.com/v1", cfg.Places.BaseURL)
	assert.Equal(t, 200*time.Millisecond, cfg.Places.RequestDelay)
	assert.Equal(t, 20, cfg.Places.PageSize)
	assert.Equal(t, "data/clinics.json", cfg.Dataset.Path)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	os.Setenv("SCRAPE_PAGE_SIZE", "not-a-number")
	defer os.Unsetenv("SCRAPE_PAGE_SIZE")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 20, cfg.Places.PageSize)
}
