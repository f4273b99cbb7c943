// ABOUTME: Storage abstraction for the persisted tweet index
// ABOUTME: Selects the SQLite or Charm KV backend from configuration
package storage

import (
	"fmt"

	"github.com/harper/tweetsim/internal/charm"
	"github.com/harper/tweetsim/internal/config"
	"github.com/harper/tweetsim/internal/models"
	"github.com/harper/tweetsim/internal/storage/sqlite"
)

// Store persists one complete index build and serves reads against it
type Store interface {
	// ReplaceCorpus atomically swaps the stored corpus for a new build
	ReplaceCorpus(meta models.IndexMeta, tweets []models.IndexedTweet) error
	// TweetsByCelebrity returns one celebrity's tweets in corpus order
	TweetsByCelebrity(celebrity string) ([]models.IndexedTweet, error)
	// AllTweets returns the whole corpus in corpus order
	AllTweets() ([]models.IndexedTweet, error)
	Celebrities() ([]models.CelebritySummary, error)
	// Meta returns models.ErrNoIndex when nothing has been built
	Meta() (*models.IndexMeta, error)
	Close() error
}

var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*charm.Client)(nil)
)

// Open opens the backend named by cfg.Store
func Open(cfg *config.Config) (Store, error) {
	switch cfg.Store {
	case config.StoreSQLite, "":
		store, err := sqlite.NewStore(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite index at %s: %w", cfg.DBPath, err)
		}
		return store, nil
	case config.StoreCharm:
		client, err := charm.NewClient(&charm.Config{
			Host:       cfg.CharmHost,
			DBName:     cfg.CharmDBName,
			SyncOnOpen: true,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open charm index %s: %w", cfg.CharmDBName, err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}
