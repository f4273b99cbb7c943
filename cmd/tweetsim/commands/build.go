// ABOUTME: CLI command to build the tweet index
// ABOUTME: Embeds the corpus and replaces the persisted index in one step
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the tweet index",
		Long: `Build the tweet index from the corpus CSV.

Reads celebrity, date, and text columns, embeds every tweet, and replaces
the persisted index. A failed build leaves the previous index untouched.

Examples:
  tweetsim build
  TWEETSIM_EMBEDDER=openai tweetsim build
  tweetsim build --format json`,
		Args: cobra.NoArgs,
		RunE: runBuild,
	}

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	report, err := a.Builder().Build(cmd.Context(), a.Config.DataPath)
	if err != nil {
		return err
	}

	if structuredFormat() {
		return writeStructured(cmd.OutOrStdout(), report)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d tweets from %d celebrities\n", report.Meta.Count, report.Celebrities)
		fmt.Fprintf(cmd.OutOrStdout(), "Model: %s (dimension %d)\n", report.Meta.EmbeddingModel, report.Meta.Dimension)
		fmt.Fprintf(cmd.OutOrStdout(), "Took %s\n", report.Duration.Round(time.Millisecond))
	}
	return nil
}
