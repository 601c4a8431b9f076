package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ServerConfig keeps runtime settings for the API service.
type ServerConfig struct {
	ListenAddr string
	DataDir    string
}

// BotConfig keeps runtime settings for the Telegram front end.
type BotConfig struct {
	TelegramToken string
	APIBaseURL    string
	CacheTTL      time.Duration
	SessionTTL    time.Duration
}

// LoadServer reads API service configuration from environment variables with
// sane defaults.
func LoadServer() (ServerConfig, error) {
	cfg := ServerConfig{
		ListenAddr: strings.TrimSpace(os.Getenv("LISTEN_ADDR")),
		DataDir:    strings.TrimSpace(os.Getenv("DATA_DIR")),
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":5000"
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg, nil
}

// LoadBot reads bot configuration from environment variables.
func LoadBot() (BotConfig, error) {
	cfg := BotConfig{
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		APIBaseURL:    strings.TrimSpace(os.Getenv("API_BASE_URL")),
		CacheTTL:      parseUnit(os.Getenv("CACHE_TTL_SECONDS"), time.Second),
		SessionTTL:    parseUnit(os.Getenv("SESSION_TTL_MINUTES"), time.Minute),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = "http://localhost:5000"
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 60 * time.Second
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}

	return cfg, nil
}

func parseUnit(raw string, unit time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0
	}
	return time.Duration(n) * unit
}
