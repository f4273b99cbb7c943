// ABOUTME: SQLite-backed tweet index store
// ABOUTME: Replaces the whole corpus atomically and serves celebrity-filtered reads
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/harper/tweetsim/internal/models"
)

// Store persists indexed tweets and build metadata in SQLite
type Store struct {
	db *DB
	mu sync.RWMutex
}

// NewStore opens the index database at path
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreInMemory creates an in-memory store (for testing)
func NewStoreInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceCorpus swaps the stored corpus for a new build in one transaction.
// Either every tweet, vector, and the metadata are written, or nothing changes.
func (s *Store) ReplaceCorpus(meta models.IndexMeta, tweets []models.IndexedTweet) error {
	if err := models.ValidateIndex(meta, tweets); err != nil {
		return fmt.Errorf("refusing to persist index: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithTx(func(tx *sql.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM embeddings`,
			`DELETE FROM tweets`,
			`DELETE FROM index_meta`,
		} {
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to clear previous index: %w", err)
			}
		}

		insertTweet, err := tx.Prepare(`
			INSERT INTO tweets (id, position, celebrity, date, text, extra)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare tweet insert: %w", err)
		}
		defer func() { _ = insertTweet.Close() }()

		insertVector, err := tx.Prepare(`
			INSERT INTO embeddings (tweet_id, dimension, vector)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare embedding insert: %w", err)
		}
		defer func() { _ = insertVector.Close() }()

		for _, t := range tweets {
			extra, err := encodeExtra(t.Extra)
			if err != nil {
				return fmt.Errorf("tweet %s: %w", t.ID, err)
			}
			if _, err := insertTweet.Exec(t.ID, t.Position, t.Celebrity, t.Date.Format(time.RFC3339Nano), t.Text, extra); err != nil {
				return fmt.Errorf("failed to insert tweet %s: %w", t.ID, err)
			}
			if _, err := insertVector.Exec(t.ID, len(t.Vector), vectorToBlob(t.Vector)); err != nil {
				return fmt.Errorf("failed to insert embedding for %s: %w", t.ID, err)
			}
		}

		builtAt := meta.BuiltAt
		if builtAt.IsZero() {
			builtAt = time.Now().UTC()
		}
		_, err = tx.Exec(`
			INSERT INTO index_meta (id, embedding_model, dimension, tweet_count, source_path, built_at)
			VALUES (1, ?, ?, ?, ?, ?)
		`, meta.EmbeddingModel, meta.Dimension, meta.Count, meta.SourcePath, builtAt.Format(time.RFC3339Nano))
		if err != nil {
			return fmt.Errorf("failed to write index metadata: %w", err)
		}
		return nil
	})
}

// Meta returns the metadata of the last completed build
func (s *Store) Meta() (*models.IndexMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		meta       models.IndexMeta
		sourcePath sql.NullString
		builtAt    string
	)
	err := s.db.QueryRow(`
		SELECT embedding_model, dimension, tweet_count, source_path, built_at
		FROM index_meta
		WHERE id = 1
	`).Scan(&meta.EmbeddingModel, &meta.Dimension, &meta.Count, &sourcePath, &builtAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNoIndex
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index metadata: %w", err)
	}

	meta.SourcePath = sourcePath.String
	meta.BuiltAt, err = time.Parse(time.RFC3339Nano, builtAt)
	if err != nil {
		return nil, fmt.Errorf("invalid built_at %q: %w", builtAt, err)
	}
	return &meta, nil
}

// TweetsByCelebrity returns one celebrity's tweets with vectors, in corpus order
func (s *Store) TweetsByCelebrity(celebrity string) ([]models.IndexedTweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTweets(`
		SELECT t.id, t.position, t.celebrity, t.date, t.text, t.extra, e.dimension, e.vector
		FROM tweets t
		JOIN embeddings e ON e.tweet_id = t.id
		WHERE t.celebrity = ?
		ORDER BY t.position
	`, celebrity)
}

// AllTweets returns every stored tweet with its vector, in corpus order
func (s *Store) AllTweets() ([]models.IndexedTweet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryTweets(`
		SELECT t.id, t.position, t.celebrity, t.date, t.text, t.extra, e.dimension, e.vector
		FROM tweets t
		JOIN embeddings e ON e.tweet_id = t.id
		ORDER BY t.position
	`)
}

// Celebrities summarizes the stored corpus per celebrity
func (s *Store) Celebrities() ([]models.CelebritySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT celebrity, date FROM tweets ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query celebrities: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tweets []models.Tweet
	for rows.Next() {
		var (
			t    models.Tweet
			date string
		)
		if err := rows.Scan(&t.Celebrity, &date); err != nil {
			return nil, fmt.Errorf("failed to scan celebrity: %w", err)
		}
		if t.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("invalid stored date %q: %w", date, err)
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate celebrities: %w", err)
	}

	return models.SummarizeCelebrities(tweets), nil
}

func (s *Store) queryTweets(query string, args ...any) ([]models.IndexedTweet, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tweets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tweets []models.IndexedTweet
	for rows.Next() {
		var (
			t         models.IndexedTweet
			date      string
			extra     sql.NullString
			dimension int
			blob      []byte
		)
		if err := rows.Scan(&t.ID, &t.Position, &t.Celebrity, &date, &t.Text, &extra, &dimension, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan tweet: %w", err)
		}
		if t.Date, err = time.Parse(time.RFC3339Nano, date); err != nil {
			return nil, fmt.Errorf("tweet %s: invalid stored date %q: %w", t.ID, date, err)
		}
		if t.Extra, err = decodeExtra(extra); err != nil {
			return nil, fmt.Errorf("tweet %s: %w", t.ID, err)
		}
		if t.Vector, err = blobToVector(blob, dimension); err != nil {
			return nil, fmt.Errorf("tweet %s: %w", t.ID, err)
		}
		tweets = append(tweets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tweets: %w", err)
	}
	return tweets, nil
}

// encodeExtra stores extra CSV columns as a JSON object, NULL when there are none
func encodeExtra(extra map[string]string) (sql.NullString, error) {
	if len(extra) == 0 {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(extra)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to marshal extra columns: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func decodeExtra(extra sql.NullString) (map[string]string, error) {
	if !extra.Valid || extra.String == "" {
		return nil, nil
	}
	var out map[string]string
	if err := json.Unmarshal([]byte(extra.String), &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal extra columns: %w", err)
	}
	return out, nil
}
