package config

// GetPerplexityAPIKey returns the Perplexity API key. Search endpoints are
// optional; when the key is absent the service reports itself unavailable.
func GetPerplexityAPIKey() string {
	return GetEnvOrDefault("PERPLEXITY_API_KEY", "")
}

// GetPerplexityBaseURL returns the Perplexity OpenAI-compatible endpoint
func GetPerplexityBaseURL() string {
	return GetEnvOrDefault("PERPLEXITY_BASE_URL", "https://api.perplexity.ai")
}

// GetPerplexityModel returns the online search model
func GetPerplexityModel() string {
	return GetEnvOrDefault("PERPLEXITY_MODEL", "llama-3.1-sonar-large-128k-online")
}
