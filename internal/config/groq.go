package config

import "github.com/rs/zerolog/log"

// GetGroqAPIKey returns the Groq API key. The key is required for core
// functionality, so a missing value is a startup failure.
func GetGroqAPIKey() string {
	value := GetEnvOrDefault("GROQ_API_KEY", "")
	if value == "" {
		log.Fatal().Msg("GROQ_API_KEY environment variable not set")
	}
	return value
}

// GetGroqBaseURL returns the OpenAI-compatible Groq endpoint
func GetGroqBaseURL() string {
	return GetEnvOrDefault("GROQ_BASE_URL", "https://api.groq.com/openai/v1")
}

// GetRouterModel returns the model used for agent classification
func GetRouterModel() string {
	return GetEnvOrDefault("ROUTER_MODEL", "llama-3.1-8b-instant")
}

// GetAgentModel returns the model used for response generation
func GetAgentModel() string {
	return GetEnvOrDefault("AGENT_MODEL", "llama-3.3-70b-versatile")
}

// GetWhisperModel returns the model used for speech-to-text
func GetWhisperModel() string {
	return GetEnvOrDefault("WHISPER_MODEL", "whisper-large-v3")
}
