// ABOUTME: CLI command to export the tweet index
// ABOUTME: Writes metadata, tweets, and vectors as YAML or JSON
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/tweetsim/internal/storage/sqlite"
)

var (
	exportOutput string
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the tweet index",
		Long: `Export the tweet index with its metadata and vectors.

Writes to stdout unless --output is given. --format json selects JSON;
every other format writes YAML.

Examples:
  tweetsim export > index.yaml
  tweetsim export --format json --output backup/index.json`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "File to write instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	format := sqlite.FormatYAML
	if outputFormat == formatJSON {
		format = sqlite.FormatJSON
	}

	if exportOutput != "" {
		if err := sqlite.ExportToFile(a.Store, exportOutput, format); err != nil {
			return err
		}
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported index to %s\n", exportOutput)
		}
		return nil
	}

	data, err := sqlite.Export(a.Store)
	if err != nil {
		return err
	}
	return sqlite.WriteExport(cmd.OutOrStdout(), data, format)
}
