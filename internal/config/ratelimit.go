package config

import (
	"time"

	"github.com/rs/zerolog/log"
)

type RateLimitConfig struct {
	Enabled bool
	MaxHits int
	Window  time.Duration
}

func GetRateLimitConfig(key string) RateLimitConfig {
	enabled := GetEnvOrDefault("RATELIMIT_ENABLED", "false") == "true"

	configs := map[string]RateLimitConfig{
		"global": {
			Enabled: enabled,
			MaxHits: GetEnvInt("RATELIMIT_GLOBAL", 1000), // 1000 requests per minute globally
			Window:  time.Minute,
		},
		"chat": {
			Enabled: enabled,
			MaxHits: GetEnvInt("RATELIMIT_CHAT", 60), // 60 requests per minute
			Window:  time.Minute,
		},
		"search": {
			Enabled: enabled,
			MaxHits: GetEnvInt("RATELIMIT_SEARCH", 30), // 30 requests per minute
			Window:  time.Minute,
		},
		"transcribe": {
			Enabled: enabled,
			MaxHits: GetEnvInt("RATELIMIT_TRANSCRIBE", 10), // 10 uploads per minute
			Window:  time.Minute,
		},
	}

	if config, exists := configs[key]; exists {
		return config
	}

	log.Warn().Str("key", key).Msg("No rate limit config found for key")
	return RateLimitConfig{Enabled: false}
}
