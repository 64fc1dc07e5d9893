package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	GatewayBaseURL string
	GatewayWSURL   string
	GatewayToken   string
	GatewayTimeout time.Duration
	GatewayRetries int

	BotPrefix string

	MainChannel   string
	HunterChannel string
	LogChannel    string

	RedisURL    string
	DatabaseURL string

	RunnerReaction string
	HunterReaction string

	RunnerRole string
	HunterRole string
	AdminRole  string

	TickInterval       time.Duration
	LocationSimilarity float64

	DefaultHeadstartMin int
	DefaultGametimeMin  int
	DefaultEndtimeMin   int
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		GatewayTimeout:      10 * time.Second,
		GatewayRetries:      3,
		RunnerReaction:      "👟",
		HunterReaction:      "🏹",
		RunnerRole:          "Runner",
		HunterRole:          "Hunter",
		AdminRole:           "Admin",
		TickInterval:        10 * time.Second,
		LocationSimilarity:  0.75,
		DefaultHeadstartMin: 5,
		DefaultGametimeMin:  70,
		DefaultEndtimeMin:   15,
	}

	cfg.GatewayBaseURL = strings.TrimSpace(os.Getenv("GATEWAY_BASE_URL"))
	cfg.GatewayWSURL = strings.TrimSpace(os.Getenv("GATEWAY_WS_URL"))
	cfg.BotPrefix = strings.TrimSpace(os.Getenv("BOT_PREFIX"))
	cfg.GatewayToken = strings.TrimSpace(os.Getenv("GATEWAY_TOKEN"))
	if v := strings.TrimSpace(os.Getenv("GATEWAY_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.GatewayTimeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("GATEWAY_RETRIES")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GatewayRetries = n
		}
	}

	cfg.MainChannel = strings.TrimSpace(os.Getenv("MAIN_CHANNEL"))
	cfg.HunterChannel = strings.TrimSpace(os.Getenv("HUNTER_CHANNEL"))
	cfg.LogChannel = strings.TrimSpace(os.Getenv("LOG_CHANNEL"))

	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))

	if v := strings.TrimSpace(os.Getenv("RUNNER_REACTION")); v != "" {
		cfg.RunnerReaction = v
	}
	if v := strings.TrimSpace(os.Getenv("HUNTER_REACTION")); v != "" {
		cfg.HunterReaction = v
	}
	if v := strings.TrimSpace(os.Getenv("RUNNER_ROLE")); v != "" {
		cfg.RunnerRole = v
	}
	if v := strings.TrimSpace(os.Getenv("HUNTER_ROLE")); v != "" {
		cfg.HunterRole = v
	}
	if v := strings.TrimSpace(os.Getenv("ADMIN_ROLE")); v != "" {
		cfg.AdminRole = v
	}

	if v := strings.TrimSpace(os.Getenv("TICK_INTERVAL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.TickInterval = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("LOCATION_SIMILARITY")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 && f <= 1 {
			cfg.LocationSimilarity = f
		}
	}

	if v := strings.TrimSpace(os.Getenv("DEFAULT_HEADSTART_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultHeadstartMin = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_GAMETIME_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultGametimeMin = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("DEFAULT_ENDTIME_MIN")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.DefaultEndtimeMin = n
		}
	}

	if cfg.GatewayBaseURL == "" {
		return nil, errors.New("GATEWAY_BASE_URL is required")
	}
	if cfg.GatewayWSURL == "" {
		return nil, errors.New("GATEWAY_WS_URL is required")
	}
	if cfg.BotPrefix == "" {
		return nil, errors.New("BOT_PREFIX is required")
	}
	if cfg.MainChannel == "" {
		return nil, errors.New("MAIN_CHANNEL is required")
	}
	if cfg.HunterChannel == "" {
		return nil, errors.New("HUNTER_CHANNEL is required")
	}
	if cfg.LogChannel == "" {
		return nil, errors.New("LOG_CHANNEL is required")
	}
	if cfg.RedisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	return cfg, nil
}
