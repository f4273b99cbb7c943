// ABOUTME: Tweet records and retrieval results for the persona simulator
// ABOUTME: Defines Tweet, IndexedTweet, RetrievedTweet, and corpus summaries
package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar date format used in prompts and exports
const DateLayout = "2006-01-02"

// tweetNamespace scopes tweet IDs so they never collide with other UUIDv5 users
var tweetNamespace = uuid.MustParse("6f1d2c4e-8a53-4b7e-9d2f-3c5a7e9b1d40")

// Tweet is one row of the source corpus
type Tweet struct {
	ID        string            `json:"id" yaml:"id"`
	Position  int               `json:"position" yaml:"position"`
	Celebrity string            `json:"celebrity" yaml:"celebrity"`
	Date      time.Time         `json:"date" yaml:"date"`
	Text      string            `json:"text" yaml:"text"`
	Extra     map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
}

// DateString returns the tweet date as YYYY-MM-DD
func (t Tweet) DateString() string {
	return t.Date.Format(DateLayout)
}

// IndexedTweet pairs a tweet with its unit-normalized embedding
type IndexedTweet struct {
	Tweet
	Vector []float64 `json:"vector" yaml:"vector,flow"`
}

// RetrievedTweet is a retrieval hit with its inner-product score
type RetrievedTweet struct {
	Tweet
	Score float64 `json:"score" yaml:"score"`
}

// ErrNoIndex is returned by stores that have never completed a build
var ErrNoIndex = errors.New("no index has been built; run the build command first")

// IndexMeta describes a persisted index build
type IndexMeta struct {
	EmbeddingModel string    `json:"embedding_model" yaml:"embedding_model"`
	Dimension      int       `json:"dimension" yaml:"dimension"`
	Count          int       `json:"count" yaml:"count"`
	SourcePath     string    `json:"source_path" yaml:"source_path"`
	BuiltAt        time.Time `json:"built_at" yaml:"built_at"`
}

// CelebritySummary aggregates the indexed tweets of one celebrity
type CelebritySummary struct {
	Celebrity  string    `json:"celebrity" yaml:"celebrity"`
	TweetCount int       `json:"tweet_count" yaml:"tweet_count"`
	FirstDate  time.Time `json:"first_date" yaml:"first_date"`
	LastDate   time.Time `json:"last_date" yaml:"last_date"`
}

// NewTweetID derives a stable identifier from the row content and position.
// Rebuilding the same corpus yields the same IDs.
func NewTweetID(position int, celebrity string, date time.Time, text string) string {
	name := fmt.Sprintf("%d\x00%s\x00%s\x00%s", position, celebrity, date.Format(DateLayout), text)
	return uuid.NewSHA1(tweetNamespace, []byte(name)).String()
}

// SummarizeCelebrities groups tweets by celebrity, sorted by name
func SummarizeCelebrities(tweets []Tweet) []CelebritySummary {
	byName := make(map[string]*CelebritySummary)
	for _, t := range tweets {
		s, ok := byName[t.Celebrity]
		if !ok {
			s = &CelebritySummary{Celebrity: t.Celebrity, FirstDate: t.Date, LastDate: t.Date}
			byName[t.Celebrity] = s
		}
		s.TweetCount++
		if t.Date.Before(s.FirstDate) {
			s.FirstDate = t.Date
		}
		if t.Date.After(s.LastDate) {
			s.LastDate = t.Date
		}
	}

	summaries := make([]CelebritySummary, 0, len(byName))
	for _, s := range byName {
		summaries = append(summaries, *s)
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Celebrity < summaries[j].Celebrity
	})
	return summaries
}

// FilterByCelebrity keeps the tweets whose celebrity matches exactly, preserving order
func FilterByCelebrity(tweets []IndexedTweet, celebrity string) []IndexedTweet {
	var out []IndexedTweet
	for _, t := range tweets {
		if t.Celebrity == celebrity {
			out = append(out, t)
		}
	}
	return out
}

// ValidateIndex checks that a build is internally consistent before it is persisted
func ValidateIndex(meta IndexMeta, tweets []IndexedTweet) error {
	if len(tweets) == 0 {
		return fmt.Errorf("index cannot be empty")
	}
	if meta.Count != len(tweets) {
		return fmt.Errorf("index metadata count %d does not match %d tweets", meta.Count, len(tweets))
	}
	if meta.Dimension <= 0 {
		return fmt.Errorf("index dimension must be positive, got %d", meta.Dimension)
	}

	ids := make(map[string]struct{}, len(tweets))
	for i, t := range tweets {
		if t.ID == "" {
			return fmt.Errorf("tweet at position %d has no ID", t.Position)
		}
		if _, dup := ids[t.ID]; dup {
			return fmt.Errorf("duplicate tweet ID %s", t.ID)
		}
		ids[t.ID] = struct{}{}
		if t.Position != i {
			return fmt.Errorf("tweet %s has position %d, expected %d", t.ID, t.Position, i)
		}
		if err := ValidateDimension(t.Vector, meta.Dimension); err != nil {
			return fmt.Errorf("tweet %s: %w", t.ID, err)
		}
	}
	return nil
}
