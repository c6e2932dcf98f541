package config

import (
	"os"
	"strconv"

	"contract-analyzer/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort  string
	LogLevel    string
	MaxFileSize int64

	MongoURI      string
	MongoDatabase string

	GeminiAPIKey string
	GeminiModel  string

	ChunkSize          int
	MaxSummaryChunks   int
	SummaryConcurrency int

	OCRWorkers   int
	OCRLanguages string

	RulesPath string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:  getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		MaxFileSize: getEnvInt64OrDefault("MAX_FILE_SIZE", 20*1024*1024), // 20MB default

		MongoURI:      getEnvOrDefault("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("DB_NAME", "contract_analyzer"),

		GeminiAPIKey: getEnvOrDefault("GEMINI_API_KEY", ""),
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),

		ChunkSize:          getEnvIntOrDefault("CHUNK_SIZE", 3000),
		MaxSummaryChunks:   getEnvIntOrDefault("MAX_SUMMARY_CHUNKS", 5),
		SummaryConcurrency: getEnvIntOrDefault("SUMMARY_CONCURRENCY", 3),

		OCRWorkers:   getEnvIntOrDefault("OCR_WORKERS", 2),
		OCRLanguages: getEnvOrDefault("OCR_LANGUAGES", "deu+eng"),

		RulesPath: getEnvOrDefault("RULES_PATH", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetMongoURI returns the MongoDB connection string
func (c *AppConfig) GetMongoURI() string {
	return c.MongoURI
}

// GetMongoDatabase returns the MongoDB database name
func (c *AppConfig) GetMongoDatabase() string {
	return c.MongoDatabase
}

// GetGeminiAPIKey returns the Gemini API key
func (c *AppConfig) GetGeminiAPIKey() string {
	return c.GeminiAPIKey
}

// GetGeminiModel returns the Gemini model name
func (c *AppConfig) GetGeminiModel() string {
	return c.GeminiModel
}

// GetChunkSize returns the chunk size in bytes
func (c *AppConfig) GetChunkSize() int {
	return c.ChunkSize
}

// GetMaxSummaryChunks returns how many leading chunks are summarized
func (c *AppConfig) GetMaxSummaryChunks() int {
	return c.MaxSummaryChunks
}

// GetSummaryConcurrency returns the chunk summarization concurrency
func (c *AppConfig) GetSummaryConcurrency() int {
	return c.SummaryConcurrency
}

// GetOCRWorkers returns the maximum concurrent OCR processes
func (c *AppConfig) GetOCRWorkers() int {
	return c.OCRWorkers
}

// GetOCRLanguages returns the tesseract language string
func (c *AppConfig) GetOCRLanguages() string {
	return c.OCRLanguages
}

// GetRulesPath returns the optional rule override file path
func (c *AppConfig) GetRulesPath() string {
	return c.RulesPath
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
