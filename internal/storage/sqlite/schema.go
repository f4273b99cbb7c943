// ABOUTME: SQLite database schema for the tweet index
// ABOUTME: Tweets, their embeddings, and the build metadata live in one file
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- One row per corpus tweet, position is the source row index
CREATE TABLE IF NOT EXISTS tweets (
    id TEXT PRIMARY KEY,
    position INTEGER NOT NULL UNIQUE,
    celebrity TEXT NOT NULL,
    date TEXT NOT NULL,
    text TEXT NOT NULL,
    extra TEXT
);

CREATE INDEX IF NOT EXISTS idx_tweets_celebrity ON tweets(celebrity, position);

-- Unit-normalized vectors, little-endian float64 BLOBs keyed by tweet
CREATE TABLE IF NOT EXISTS embeddings (
    tweet_id TEXT PRIMARY KEY REFERENCES tweets(id) ON DELETE CASCADE,
    dimension INTEGER NOT NULL,
    vector BLOB NOT NULL
);

-- Build metadata singleton
CREATE TABLE IF NOT EXISTS index_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    embedding_model TEXT NOT NULL,
    dimension INTEGER NOT NULL,
    tweet_count INTEGER NOT NULL,
    source_path TEXT,
    built_at TEXT NOT NULL
);
`
