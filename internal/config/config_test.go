// ABOUTME: Tests for centralized configuration system
// ABOUTME: Verifies environment variable parsing and validation
package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear environment to test defaults
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify defaults
	if cfg.ImagesDir != "card-images" {
		t.Errorf("ImagesDir = %s, want card-images", cfg.ImagesDir)
	}
	if cfg.IndexPath != "card-embeddings.bin" {
		t.Errorf("IndexPath = %s, want card-embeddings.bin", cfg.IndexPath)
	}
	if cfg.CheckpointPath != "embeddings-checkpoint.json" {
		t.Errorf("CheckpointPath = %s, want embeddings-checkpoint.json", cfg.CheckpointPath)
	}
	if cfg.CheckpointInterval != 100 {
		t.Errorf("CheckpointInterval = %d, want 100", cfg.CheckpointInterval)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.EmbeddingModel != "mobileclip-s2" {
		t.Errorf("EmbeddingModel = %s, want mobileclip-s2", cfg.EmbeddingModel)
	}
	if cfg.Dimension != 512 {
		t.Errorf("Dimension = %d, want 512", cfg.Dimension)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want 30s", cfg.Timeout)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 2*time.Second {
		t.Errorf("RetryDelay = %v, want 2s", cfg.RetryDelay)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	// Set custom environment variables
	os.Clearenv()
	os.Setenv("CARDSCAN_IMAGES_DIR", "/data/cards")
	os.Setenv("CARDSCAN_INDEX_PATH", "/data/index.bin")
	os.Setenv("CARDSCAN_CHECKPOINT_PATH", "/data/ckpt.json")
	os.Setenv("CARDSCAN_CHECKPOINT_INTERVAL", "250")
	os.Setenv("CARDSCAN_WORKERS", "8")
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("CARDSCAN_EMBEDDING_MODEL", "mobileclip-b")
	os.Setenv("CARDSCAN_EMBEDDING_BASE_URL", "http://localhost:7997/v1")
	os.Setenv("CARDSCAN_DIMENSION", "768")
	os.Setenv("CARDSCAN_EMBED_TIMEOUT", "60s")
	os.Setenv("CARDSCAN_MAX_RETRIES", "5")
	os.Setenv("CARDSCAN_RETRY_DELAY", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Verify custom values
	if cfg.ImagesDir != "/data/cards" {
		t.Errorf("ImagesDir = %s, want /data/cards", cfg.ImagesDir)
	}
	if cfg.IndexPath != "/data/index.bin" {
		t.Errorf("IndexPath = %s, want /data/index.bin", cfg.IndexPath)
	}
	if cfg.CheckpointPath != "/data/ckpt.json" {
		t.Errorf("CheckpointPath = %s, want /data/ckpt.json", cfg.CheckpointPath)
	}
	if cfg.CheckpointInterval != 250 {
		t.Errorf("CheckpointInterval = %d, want 250", cfg.CheckpointInterval)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
	if cfg.APIKey != "test-key" {
		t.Errorf("APIKey = %s, want test-key", cfg.APIKey)
	}
	if cfg.EmbeddingModel != "mobileclip-b" {
		t.Errorf("EmbeddingModel = %s, want mobileclip-b", cfg.EmbeddingModel)
	}
	if cfg.BaseURL != "http://localhost:7997/v1" {
		t.Errorf("BaseURL = %s, want http://localhost:7997/v1", cfg.BaseURL)
	}
	if cfg.Dimension != 768 {
		t.Errorf("Dimension = %d, want 768", cfg.Dimension)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s", cfg.Timeout)
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("MaxRetries = %d, want 5", cfg.MaxRetries)
	}
	if cfg.RetryDelay != 3*time.Second {
		t.Errorf("RetryDelay = %v, want 3s", cfg.RetryDelay)
	}
}

func TestValidate_InvalidCheckpointInterval(t *testing.T) {
	cfg := &Config{
		CheckpointInterval: 0,
		Workers:            4,
		Dimension:          512,
		MaxRetries:         3,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for interval <= 0")
	}
}

func TestValidate_InvalidWorkers(t *testing.T) {
	cfg := &Config{
		CheckpointInterval: 100,
		Workers:            0,
		Dimension:          512,
		MaxRetries:         3,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for workers <= 0")
	}
}

func TestValidate_InvalidDimension(t *testing.T) {
	cfg := &Config{
		CheckpointInterval: 100,
		Workers:            4,
		Dimension:          -1,
		MaxRetries:         3,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for dimension <= 0")
	}
}

func TestValidate_InvalidMaxRetries(t *testing.T) {
	cfg := &Config{
		CheckpointInterval: 100,
		Workers:            4,
		Dimension:          512,
		MaxRetries:         15,
	}

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries > 10")
	}

	cfg.MaxRetries = -1
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for MaxRetries < 0")
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	os.Clearenv()
	os.Setenv("TEST_INT", "not-a-number")

	if got := getEnvInt("TEST_INT", 42); got != 42 {
		t.Errorf("getEnvInt() on garbage = %d, want default 42", got)
	}
}
