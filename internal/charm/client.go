// ABOUTME: Charm KV client wrapper for cloud-syncing the built index artifact
// ABOUTME: Pushes/pulls the binary index between devices with SSH key auth
package charm

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

// Keys for the synced index artifact and its metadata
const (
	IndexKey = "index:embeddings"
	MetaKey  = "index:meta"
)

// IndexMeta describes a pushed index artifact.
type IndexMeta struct {
	Count    int       `json:"count"`
	Dim      int       `json:"dim"`
	Size     int       `json:"size_bytes"`
	PushedAt time.Time `json:"pushed_at"`
}

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// DefaultConfig returns default configuration for charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "charm.2389.dev"
	}
	return &Config{
		Host:     host,
		DBName:   "cardscan",
		AutoSync: true,
	}
}

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
	clientMu     sync.Mutex
)

// Client wraps charm KV for index artifact storage
type Client struct {
	kv     *kv.KV
	config *Config
	mu     sync.Mutex
}

// InitClient initializes the global charm client (thread-safe singleton)
func InitClient() error {
	clientOnce.Do(func() {
		globalClient, clientErr = NewClient(DefaultConfig())
	})
	return clientErr
}

// GetClient returns the global client, initializing if needed
func GetClient() (*Client, error) {
	clientMu.Lock()
	defer clientMu.Unlock()

	// If client was closed, reinitialize
	if globalClient != nil && globalClient.kv == nil {
		clientOnce = sync.Once{}
		globalClient = nil
	}

	if err := InitClient(); err != nil {
		return nil, err
	}
	return globalClient, nil
}

// NewClient creates a new charm client with the given config
func NewClient(cfg *Config) (*Client, error) {
	// Set CHARM_HOST before opening KV
	os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil // Mark as closed so GetClient knows to reinitialize
		return err
	}
	return nil
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// PushIndex uploads the encoded index bytes along with metadata.
func (c *Client) PushIndex(data []byte, meta IndexMeta) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(IndexKey), data); err != nil {
		return fmt.Errorf("failed to push index: %w", err)
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to marshal index meta: %w", err)
	}
	if err := c.kv.Set([]byte(MetaKey), metaJSON); err != nil {
		return fmt.Errorf("failed to push index meta: %w", err)
	}

	c.syncIfEnabled()
	return nil
}

// PullIndex downloads the most recently pushed index bytes.
func (c *Client) PullIndex() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.kv.Get([]byte(IndexKey))
	if err != nil {
		return nil, fmt.Errorf("failed to pull index: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("no index has been pushed to this account")
	}
	return data, nil
}

// GetMeta returns metadata for the pushed index, if any.
func (c *Client) GetMeta() (*IndexMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.kv.Get([]byte(MetaKey))
	if err != nil {
		return nil, fmt.Errorf("failed to read index meta: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var meta IndexMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse index meta: %w", err)
	}
	return &meta, nil
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	return c.kv.Sync()
}
