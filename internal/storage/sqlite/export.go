// ABOUTME: Export functionality for the tweet index
// ABOUTME: Supports YAML and JSON export of metadata, tweets, and vectors
package sqlite

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/harper/tweetsim/internal/models"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Source is anything that can hand over a complete index
type Source interface {
	Meta() (*models.IndexMeta, error)
	AllTweets() ([]models.IndexedTweet, error)
	Celebrities() ([]models.CelebritySummary, error)
}

// ExportData represents the complete exportable data structure
type ExportData struct {
	Version     string                    `yaml:"version" json:"version"`
	ExportedAt  string                    `yaml:"exported_at" json:"exported_at"`
	Tool        string                    `yaml:"tool" json:"tool"`
	Index       *ExportIndex              `yaml:"index" json:"index"`
	Celebrities []models.CelebritySummary `yaml:"celebrities" json:"celebrities"`
	Tweets      []ExportTweet             `yaml:"tweets" json:"tweets"`
}

// ExportIndex represents build metadata for export
type ExportIndex struct {
	EmbeddingModel string `yaml:"embedding_model" json:"embedding_model"`
	Dimension      int    `yaml:"dimension" json:"dimension"`
	Count          int    `yaml:"count" json:"count"`
	SourcePath     string `yaml:"source_path,omitempty" json:"source_path,omitempty"`
	BuiltAt        string `yaml:"built_at" json:"built_at"`
}

// ExportTweet represents one indexed tweet for export
type ExportTweet struct {
	ID        string            `yaml:"id" json:"id"`
	Position  int               `yaml:"position" json:"position"`
	Celebrity string            `yaml:"celebrity" json:"celebrity"`
	Date      string            `yaml:"date" json:"date"`
	Text      string            `yaml:"text" json:"text"`
	Extra     map[string]string `yaml:"extra,omitempty" json:"extra,omitempty"`
	Vector    []float64         `yaml:"vector,flow" json:"vector"`
}

// Export collects the whole index from src
func Export(src Source) (*ExportData, error) {
	meta, err := src.Meta()
	if err != nil {
		return nil, fmt.Errorf("failed to get index metadata: %w", err)
	}

	tweets, err := src.AllTweets()
	if err != nil {
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}

	celebrities, err := src.Celebrities()
	if err != nil {
		return nil, fmt.Errorf("failed to list celebrities: %w", err)
	}

	data := &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now().Format(time.RFC3339),
		Tool:       "tweetsim",
		Index: &ExportIndex{
			EmbeddingModel: meta.EmbeddingModel,
			Dimension:      meta.Dimension,
			Count:          meta.Count,
			SourcePath:     meta.SourcePath,
			BuiltAt:        meta.BuiltAt.Format(time.RFC3339),
		},
		Celebrities: celebrities,
		Tweets:      make([]ExportTweet, 0, len(tweets)),
	}

	for _, t := range tweets {
		data.Tweets = append(data.Tweets, ExportTweet{
			ID:        t.ID,
			Position:  t.Position,
			Celebrity: t.Celebrity,
			Date:      t.DateString(),
			Text:      t.Text,
			Extra:     t.Extra,
			Vector:    t.Vector,
		})
	}

	return data, nil
}

// Export exports the whole index held by this store
func (s *Store) Export() (*ExportData, error) {
	return Export(s)
}

// WriteExport encodes data to w in the given format
func WriteExport(w io.Writer, data *ExportData, format string) error {
	switch format {
	case FormatYAML, "":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q (use yaml or json)", format)
	}
}

// ExportToFile exports the index from src to outputPath
func ExportToFile(src Source, outputPath, format string) error {
	if format != FormatYAML && format != FormatJSON {
		return fmt.Errorf("unsupported export format %q (use yaml or json)", format)
	}

	data, err := Export(src)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(outputPath) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	return writeAndClose(file, data, format)
}

// writeAndClose writes the export and reports a close failure when the write succeeded
func writeAndClose(w io.WriteCloser, data *ExportData, format string) (err error) {
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	return WriteExport(w, data, format)
}
