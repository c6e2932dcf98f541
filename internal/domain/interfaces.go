package domain

// Logger defines the logging contract used across the application.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Info(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
}

// Config exposes runtime configuration to the rest of the application.
type Config interface {
	GetServerPort() string
	GetLogLevel() string
	GetMaxFileSize() int64

	GetMongoURI() string
	GetMongoDatabase() string

	GetGeminiAPIKey() string
	GetGeminiModel() string

	GetChunkSize() int
	GetMaxSummaryChunks() int
	GetSummaryConcurrency() int

	GetOCRWorkers() int
	GetOCRLanguages() string

	GetRulesPath() string
}
