// ABOUTME: Tweet index store on top of Charm KV
// ABOUTME: Metadata is written last so an interrupted rebuild reads as no index
package charm

import (
	"fmt"
	"sort"

	"github.com/harper/tweetsim/internal/models"
)

// ReplaceCorpus swaps the stored corpus for a new build and syncs once
func (c *Client) ReplaceCorpus(meta models.IndexMeta, tweets []models.IndexedTweet) error {
	if err := models.ValidateIndex(meta, tweets); err != nil {
		return fmt.Errorf("refusing to persist index: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Drop the metadata first so readers never pair old meta with new tweets
	metaKeys, err := c.listKeys(MetaPrefix)
	if err != nil {
		return err
	}
	for _, key := range metaKeys {
		if err := c.delete(key); err != nil {
			return err
		}
	}

	oldKeys, err := c.listKeys(TweetPrefix)
	if err != nil {
		return err
	}
	for _, key := range oldKeys {
		if err := c.delete(key); err != nil {
			return err
		}
	}

	for _, t := range tweets {
		if err := c.setJSON(TweetKey(t.Position, t.ID), t); err != nil {
			return fmt.Errorf("failed to store tweet %s: %w", t.ID, err)
		}
	}

	if err := c.setJSON(MetaKey(), meta); err != nil {
		return fmt.Errorf("failed to store index metadata: %w", err)
	}

	if err := c.kv.Sync(); err != nil {
		return fmt.Errorf("failed to sync charm kv: %w", err)
	}
	return nil
}

// Meta returns the metadata of the last completed build
func (c *Client) Meta() (*models.IndexMeta, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.listKeys(MetaKey())
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, models.ErrNoIndex
	}

	var meta models.IndexMeta
	if err := c.getJSON(MetaKey(), &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// AllTweets returns every stored tweet with its vector, in corpus order
func (c *Client) AllTweets() ([]models.IndexedTweet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadTweets()
}

// TweetsByCelebrity returns one celebrity's tweets with vectors, in corpus order
func (c *Client) TweetsByCelebrity(celebrity string) ([]models.IndexedTweet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	tweets, err := c.loadTweets()
	if err != nil {
		return nil, err
	}
	return models.FilterByCelebrity(tweets, celebrity), nil
}

// Celebrities summarizes the stored corpus per celebrity
func (c *Client) Celebrities() ([]models.CelebritySummary, error) {
	tweets, err := c.AllTweets()
	if err != nil {
		return nil, err
	}

	plain := make([]models.Tweet, len(tweets))
	for i, t := range tweets {
		plain[i] = t.Tweet
	}
	return models.SummarizeCelebrities(plain), nil
}

// loadTweets reads every tweet key sorted by position; callers hold c.mu
func (c *Client) loadTweets() ([]models.IndexedTweet, error) {
	keys, err := c.listKeys(TweetPrefix)
	if err != nil {
		return nil, err
	}

	var tweets []models.IndexedTweet
	for _, key := range keys {
		var t models.IndexedTweet
		if err := c.getJSON(key, &t); err != nil {
			return nil, err
		}
		tweets = append(tweets, t)
	}

	sort.SliceStable(tweets, func(i, j int) bool {
		return tweets[i].Position < tweets[j].Position
	})
	return tweets, nil
}
