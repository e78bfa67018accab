// ABOUTME: Centralized configuration for the learnrise server
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the learnrise system
type Config struct {
	// Server settings
	Addr string

	// Model backend settings
	BaseURL         string
	APIKey          string
	ChatModel       string
	ChatTemperature float64
	EmbeddingModel  string
	WhisperBaseURL  string
	WhisperModel    string
	Timeout         time.Duration
	MaxRetries      int
	RetryDelay      time.Duration

	// Retrieval settings
	ChunkSize    int
	ChunkOverlap int
	TopK         int
	MaxHistory   int
	QABatchSize  int

	// Audio settings
	FFmpegPath string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("LEARNRISE_ADDR", ":8080"),
		BaseURL:         getEnv("OLLAMA_BASE_URL", "http://localhost:11434/v1"),
		APIKey:          getEnv("LEARNRISE_API_KEY", "ollama"),
		ChatModel:       getEnv("LEARNRISE_CHAT_MODEL", "gemma3:4b"),
		ChatTemperature: getEnvFloat("LEARNRISE_CHAT_TEMPERATURE", 0.7),
		EmbeddingModel:  getEnv("LEARNRISE_EMBEDDING_MODEL", "nomic-embed-text"),
		WhisperModel:    getEnv("WHISPER_MODEL", "whisper-1"),
		Timeout:         getEnvDuration("LEARNRISE_TIMEOUT", 60*time.Second),
		MaxRetries:      getEnvInt("LEARNRISE_MAX_RETRIES", 3),
		RetryDelay:      getEnvDuration("LEARNRISE_RETRY_DELAY", 2*time.Second),
		ChunkSize:       getEnvInt("LEARNRISE_CHUNK_SIZE", 400),
		ChunkOverlap:    getEnvInt("LEARNRISE_CHUNK_OVERLAP", 20),
		TopK:            getEnvInt("LEARNRISE_TOP_K", 6),
		MaxHistory:      getEnvInt("LEARNRISE_MAX_HISTORY", 40),
		QABatchSize:     getEnvInt("LEARNRISE_QA_BATCH", 8),
		FFmpegPath:      getEnv("FFMPEG_PATH", "ffmpeg"),
	}

	// The speech backend defaults to the chat backend unless overridden
	cfg.WhisperBaseURL = getEnv("WHISPER_BASE_URL", cfg.BaseURL)

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("LEARNRISE_CHUNK_SIZE must be positive, got %d", c.ChunkSize)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkSize {
		return fmt.Errorf("LEARNRISE_CHUNK_OVERLAP must be in [0, chunk size), got %d", c.ChunkOverlap)
	}
	if c.TopK < 1 {
		return fmt.Errorf("LEARNRISE_TOP_K must be at least 1, got %d", c.TopK)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("LEARNRISE_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.ChatTemperature < 0 || c.ChatTemperature > 2 {
		return fmt.Errorf("LEARNRISE_CHAT_TEMPERATURE must be 0-2, got %f", c.ChatTemperature)
	}
	if c.MaxHistory < 2 {
		return fmt.Errorf("LEARNRISE_MAX_HISTORY must be at least 2, got %d", c.MaxHistory)
	}
	if c.QABatchSize < 1 {
		return fmt.Errorf("LEARNRISE_QA_BATCH must be at least 1, got %d", c.QABatchSize)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
