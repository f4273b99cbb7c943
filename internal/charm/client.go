// ABOUTME: Charm KV client wrapper for cloud-synced index storage
// ABOUTME: Uses automatic SSH key auth; writes sync once per rebuild, not per key
package charm

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

// Key prefixes for different entity types
const (
	TweetPrefix = "tweet:"
	MetaPrefix  = "meta:"
)

// Config holds charm client configuration
type Config struct {
	Host   string
	DBName string
	// SyncOnOpen pulls remote data when the client is created
	SyncOnOpen bool
}

// DefaultConfig returns default configuration for charm client
func DefaultConfig() *Config {
	host := os.Getenv("CHARM_HOST")
	if host == "" {
		host = "cloud.charm.sh"
	}
	return &Config{
		Host:       host,
		DBName:     "tweetsim",
		SyncOnOpen: true,
	}
}

// kvStore is the subset of *kv.KV the client uses
type kvStore interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
}

// Client wraps charm KV for storage operations
type Client struct {
	kv     kvStore
	config *Config
	mu     sync.Mutex
}

func newClientWithKV(store kvStore, cfg *Config) *Client {
	return &Client{kv: store, config: cfg}
}

// NewClient creates a new charm client with the given config
func NewClient(cfg *Config) (*Client, error) {
	// Set CHARM_HOST before opening KV
	if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
		return nil, fmt.Errorf("failed to set CHARM_HOST: %w", err)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := newClientWithKV(db, cfg)

	if cfg.SyncOnOpen {
		_ = db.Sync()
	}

	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil
		return err
	}
	return nil
}

// set stores a value; callers hold c.mu
func (c *Client) set(key string, value []byte) error {
	if err := c.kv.Set([]byte(key), value); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// setJSON marshals and stores a value as JSON; callers hold c.mu
func (c *Client) setJSON(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return c.set(key, data)
}

// getJSON retrieves and unmarshals a JSON value; callers hold c.mu
func (c *Client) getJSON(key string, dest any) error {
	data, err := c.kv.Get([]byte(key))
	if err != nil {
		return fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if data == nil {
		return fmt.Errorf("key not found: %s", key)
	}
	return json.Unmarshal(data, dest)
}

// delete removes a key; callers hold c.mu
func (c *Client) delete(key string) error {
	if err := c.kv.Delete([]byte(key)); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// listKeys returns all keys with the given prefix; callers hold c.mu
func (c *Client) listKeys(prefix string) ([]string, error) {
	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var result []string
	for _, key := range keys {
		keyStr := string(key)
		if strings.HasPrefix(keyStr, prefix) {
			result = append(result, keyStr)
		}
	}
	return result, nil
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Reset wipes the local copy of the database; cloud data re-syncs on next open
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// AuthorizedKeys returns the SSH keys linked to the charm account
func (c *Client) AuthorizedKeys() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.AuthorizedKeys()
}

// Host returns the charm server this client talks to
func (c *Client) Host() string {
	return c.config.Host
}

// TweetKey generates a key for an indexed tweet.
// Zero-padded positions keep lexical key order equal to corpus order.
func TweetKey(position int, id string) string {
	return fmt.Sprintf("%s%09d:%s", TweetPrefix, position, id)
}

// MetaKey generates the key for the build metadata
func MetaKey() string {
	return MetaPrefix + "index"
}
