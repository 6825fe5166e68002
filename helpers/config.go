package helpers

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. It is constructed once at startup
// and passed into the components that need it, never mutated afterwards.
type Config struct {
	Port            string
	DatabaseURL     string
	AuthUsername    string
	AuthPassword    string
	AppTitle        string
	CalendarProdID  string
	FeedRequireAuth bool
}

// LoadConfig reads configuration from the environment, loading a local .env
// file first if one exists. AUTH_PASSWORD has no default and must be set.
func LoadConfig() (*Config, error) {
	// .env is optional, deployments usually set env vars directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:            os.Getenv("PORT"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		AuthUsername:    os.Getenv("AUTH_USERNAME"),
		AuthPassword:    os.Getenv("AUTH_PASSWORD"),
		AppTitle:        os.Getenv("APP_TITLE"),
		CalendarProdID:  os.Getenv("CALENDAR_PRODID"),
		FeedRequireAuth: os.Getenv("CALENDAR_FEED_REQUIRE_AUTH") == "true",
	}

	if cfg.Port == "" {
		cfg.Port = DEFAULT_PORT
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = DEFAULT_DATABASE_URL
	}
	if cfg.AuthUsername == "" {
		cfg.AuthUsername = DEFAULT_AUTH_USERNAME
	}
	if cfg.AuthPassword == "" {
		return nil, fmt.Errorf("AUTH_PASSWORD must be set")
	}
	if cfg.AppTitle == "" {
		cfg.AppTitle = DEFAULT_APP_TITLE
	}
	if cfg.CalendarProdID == "" {
		cfg.CalendarProdID = DEFAULT_CALENDAR_PRODID
	}

	return cfg, nil
}
