// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Loads the app context and renders structured or colored output
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/harper/tweetsim/internal/app"
	"github.com/harper/tweetsim/internal/config"
)

// Output formats accepted by --format
const (
	formatAuto = "auto"
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// openApp builds the application context; tests replace it
var openApp = app.New

// loadApp reads .env files and the environment, then opens the app
func loadApp() (*app.App, error) {
	if err := config.LoadEnvFiles(); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a, err := openApp(cfg)
	if err != nil {
		return nil, err
	}
	a.SetVerbose(verbose)
	return a, nil
}

// structuredFormat reports whether the output should be machine readable
func structuredFormat() bool {
	return outputFormat == formatJSON || outputFormat == formatYAML
}

// writeStructured encodes v in the selected structured format
func writeStructured(w io.Writer, v any) error {
	switch outputFormat {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return encoder.Close()
	default:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	}
}

// header prints a section header, colored when the output is a terminal
func header(w io.Writer, title string) {
	_, _ = color.New(color.FgCyan, color.Bold).Fprintln(w, title)
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
