package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	// Server
	ServerPort string

	// Storage
	DBDir string

	// Approval workflow override (YAML), empty means built-in defaults
	WorkflowConfig string

	// Assistant
	GoogleAPIKey   string
	AssistantModel string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		DBDir:          getEnv("DB_DIR", "db"),
		WorkflowConfig: getEnv("WORKFLOW_CONFIG", ""),
		GoogleAPIKey:   getEnv("GOOGLE_API_KEY", ""),
		AssistantModel: getEnv("ASSISTANT_MODEL", "gemini-1.5-flash"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
