package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL      string
	OpenAIKey        string
	OpenAIModel      string
	Port             string
	Env              string
	WidgetBaseURL    string
	RelayURL         string
	RelayAppID       string
	FreeMessageLimit int
	RefreshSchedule  string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:     os.Getenv("OPENAI_MODEL"),
		Port:            os.Getenv("PORT"),
		Env:             os.Getenv("ENV"),
		WidgetBaseURL:   os.Getenv("WIDGET_BASE_URL"),
		RelayURL:        os.Getenv("RELAY_URL"),
		RelayAppID:      os.Getenv("RELAY_APP_ID"),
		RefreshSchedule: os.Getenv("KNOWLEDGE_REFRESH_SCHEDULE"),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.OpenAIModel == "" {
		cfg.OpenAIModel = "gpt-4o-mini"
	}
	if cfg.WidgetBaseURL == "" {
		cfg.WidgetBaseURL = "http://localhost:5173"
	}
	if cfg.RefreshSchedule == "" {
		// Daily at 03:00, off-peak for the sites we re-fetch
		cfg.RefreshSchedule = "0 3 * * *"
	}

	cfg.FreeMessageLimit = 100
	if v := os.Getenv("FREE_MESSAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FreeMessageLimit = n
		}
	}

	return cfg
}
