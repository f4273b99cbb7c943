// ABOUTME: CSV loader for the celebrity tweet corpus
// ABOUTME: Validates required columns and parses dates into typed Tweet records
package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/harper/tweetsim/internal/models"
)

// Required column names
const (
	ColumnCelebrity = "celebrity"
	ColumnDate      = "date"
	ColumnText      = "text"
)

// ErrValidation marks malformed corpus input
var ErrValidation = errors.New("invalid corpus")

// ValidationError describes why a corpus was rejected
type ValidationError struct {
	Source string
	Row    int // 1-based data row, 0 when the problem is the header
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("invalid corpus %s: row %d: %s", e.Source, e.Row, e.Reason)
	}
	return fmt.Sprintf("invalid corpus %s: %s", e.Source, e.Reason)
}

// Is lets errors.Is match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// dateLayouts are tried in order when parsing the date column
var dateLayouts = []string{
	models.DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006/01/02",
	"2006/01/02 15:04:05",
	"01/02/2006",
	time.RubyDate,
	time.RFC1123Z,
	time.RFC1123,
}

// Load reads and validates a corpus CSV file
func Load(path string) ([]models.Tweet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, path)
}

// Read parses a corpus from r. name is used in error messages.
func Read(r io.Reader, name string) ([]models.Tweet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ValidationError{Source: name, Reason: "missing header row"}
	}
	if err != nil {
		return nil, fmt.Errorf("reading corpus header: %w", err)
	}

	columns := make(map[string]int, len(header))
	names := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		h = strings.ToLower(strings.TrimSpace(h))
		names[i] = h
		if _, dup := columns[h]; !dup {
			columns[h] = i
		}
	}

	var missing []string
	for _, col := range []string{ColumnCelebrity, ColumnDate, ColumnText} {
		if _, ok := columns[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{
			Source: name,
			Reason: fmt.Sprintf("missing required columns %v (need celebrity, date, text)", missing),
		}
	}

	var tweets []models.Tweet
	for row := 1; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ValidationError{Source: name, Row: row, Reason: err.Error()}
		}

		field := func(col string) string {
			idx := columns[col]
			if idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		// Stored verbatim; retrieval matches it exactly
		celebrity := field(ColumnCelebrity)
		if strings.TrimSpace(celebrity) == "" {
			return nil, &ValidationError{Source: name, Row: row, Reason: "empty celebrity"}
		}

		date, err := ParseDate(field(ColumnDate))
		if err != nil {
			return nil, &ValidationError{Source: name, Row: row, Reason: err.Error()}
		}

		var extra map[string]string
		for i, value := range record {
			if i >= len(names) {
				break
			}
			col := names[i]
			if col == ColumnCelebrity || col == ColumnDate || col == ColumnText || col == "" {
				continue
			}
			if extra == nil {
				extra = make(map[string]string)
			}
			extra[col] = value
		}

		position := len(tweets)
		text := field(ColumnText)
		tweets = append(tweets, models.Tweet{
			ID:        models.NewTweetID(position, celebrity, date, text),
			Position:  position,
			Celebrity: celebrity,
			Date:      date,
			Text:      text,
			Extra:     extra,
		})
	}

	if len(tweets) == 0 {
		return nil, &ValidationError{Source: name, Reason: "no data rows"}
	}

	return tweets, nil
}

// ParseDate parses a calendar date in any of the accepted layouts
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", value)
}
