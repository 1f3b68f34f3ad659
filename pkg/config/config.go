package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	Ollama    OllamaConfig
	Engine    EngineConfig
	OTEL      OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string
	APIKey string
}

// OllamaConfig holds configuration for the local LLM and embedding server
type OllamaConfig struct {
	BaseURL        string
	GenerateModel  string
	EmbedModel     string
	RequestTimeout time.Duration
	RatePerMinute  int
}

// EngineConfig holds the retrieval and cascade tuning knobs
type EngineConfig struct {
	SnapshotPath     string
	PredefinedQAPath string
	QAMatchThreshold float64
	ChunkThreshold   float64
	TopKChunks       int
	EmbedBatchSize   int
	HistoryTurns     int
	MaxContextChars  int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "proposal_intelligence"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Typesense: TypesenseConfig{
			URL:    getEnv("TYPESENSE_URL", "http://localhost:8108"),
			APIKey: getEnv("TYPESENSE_API_KEY", "xyz"),
		},
		Ollama: OllamaConfig{
			BaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			GenerateModel:  getEnv("OLLAMA_GENERATE_MODEL", "llama3:8b"),
			EmbedModel:     getEnv("OLLAMA_EMBED_MODEL", "nomic-embed-text"),
			RequestTimeout: time.Duration(getEnvAsInt("OLLAMA_TIMEOUT_SECONDS", 60)) * time.Second,
			RatePerMinute:  getEnvAsInt("OLLAMA_RATE_PER_MINUTE", 60),
		},
		Engine: EngineConfig{
			SnapshotPath:     getEnv("SNAPSHOT_PATH", "index/snapshot.json"),
			PredefinedQAPath: getEnv("PREDEFINED_QA_PATH", "evaluation/predefined_qa.json"),
			QAMatchThreshold: getEnvAsFloat("QA_MATCH_THRESHOLD", 0.85),
			ChunkThreshold:   getEnvAsFloat("CHUNK_SIMILARITY_THRESHOLD", 0.5),
			TopKChunks:       getEnvAsInt("TOP_K_CHUNKS", 5),
			EmbedBatchSize:   getEnvAsInt("EMBED_BATCH_SIZE", 16),
			HistoryTurns:     getEnvAsInt("HISTORY_TURNS", 5),
			MaxContextChars:  getEnvAsInt("MAX_CONTEXT_CHARS", 12000),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "proposal-intelligence"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
