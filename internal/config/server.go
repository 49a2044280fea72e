package config

import "strings"

// GetListenAddr returns the address the HTTP server binds to
func GetListenAddr() string {
	return GetEnvOrDefault("LISTEN_ADDR", ":8080")
}

// GetAllowedOrigins returns the origins permitted by the CORS middleware
func GetAllowedOrigins() []string {
	raw := GetEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000,http://127.0.0.1:8000")
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// GetMaxUploadBytes returns the maximum accepted transcription upload size
func GetMaxUploadBytes() int64 {
	return int64(GetEnvInt("MAX_UPLOAD_BYTES", 25*1024*1024))
}
