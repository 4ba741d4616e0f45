// ABOUTME: Centralized configuration for the cardscan index tooling
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for index builds and queries
type Config struct {
	// Pipeline settings
	ImagesDir          string
	IndexPath          string
	CheckpointPath     string
	CheckpointInterval int
	Workers            int

	// Embedding settings
	APIKey         string
	EmbeddingModel string
	BaseURL        string
	Dimension      int
	Timeout        time.Duration
	MaxRetries     int
	RetryDelay     time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		ImagesDir:          getEnv("CARDSCAN_IMAGES_DIR", "card-images"),
		IndexPath:          getEnv("CARDSCAN_INDEX_PATH", "card-embeddings.bin"),
		CheckpointPath:     getEnv("CARDSCAN_CHECKPOINT_PATH", "embeddings-checkpoint.json"),
		CheckpointInterval: getEnvInt("CARDSCAN_CHECKPOINT_INTERVAL", 100),
		Workers:            getEnvInt("CARDSCAN_WORKERS", 4),
		APIKey:             os.Getenv("OPENAI_API_KEY"),
		EmbeddingModel:     getEnv("CARDSCAN_EMBEDDING_MODEL", "mobileclip-s2"),
		BaseURL:            os.Getenv("CARDSCAN_EMBEDDING_BASE_URL"),
		Dimension:          getEnvInt("CARDSCAN_DIMENSION", 512),
		Timeout:            getEnvDuration("CARDSCAN_EMBED_TIMEOUT", 30*time.Second),
		MaxRetries:         getEnvInt("CARDSCAN_MAX_RETRIES", 3),
		RetryDelay:         getEnvDuration("CARDSCAN_RETRY_DELAY", 2*time.Second),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.CheckpointInterval <= 0 {
		return fmt.Errorf("CARDSCAN_CHECKPOINT_INTERVAL must be positive, got %d", c.CheckpointInterval)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("CARDSCAN_WORKERS must be positive, got %d", c.Workers)
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("CARDSCAN_DIMENSION must be positive, got %d", c.Dimension)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("CARDSCAN_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
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

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
