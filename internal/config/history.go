package config

import "time"

// GetHistoryBackend selects the conversation store implementation:
// memory (default), redis or sqlite.
func GetHistoryBackend() string {
	return GetEnvOrDefault("CHAT_HISTORY_BACKEND", "memory")
}

// GetHistoryMaxTurns bounds the in-memory history per session
func GetHistoryMaxTurns() int {
	return GetEnvInt("CHAT_HISTORY_MAX_TURNS", 50)
}

// GetHistoryTTL bounds the lifetime of Redis-backed histories
func GetHistoryTTL() time.Duration {
	return GetEnvDuration("CHAT_HISTORY_TTL", 24*time.Hour)
}

// GetHistorySQLitePath returns the SQLite database file for durable histories
func GetHistorySQLitePath() string {
	return GetEnvOrDefault("CHAT_HISTORY_SQLITE_PATH", "chat_history.db")
}
