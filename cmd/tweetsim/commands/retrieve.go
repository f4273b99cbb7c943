// ABOUTME: CLI command to retrieve a celebrity's tweets most similar to an event
// ABOUTME: Prints ranked matches as a table or structured output
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/tweetsim/internal/core"
)

var (
	retrieveCelebrity string
	retrieveEvent     string
	retrieveTopK      int
)

// NewRetrieveCmd creates the retrieve command
func NewRetrieveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retrieve",
		Short: "Retrieve tweets similar to an event",
		Long: `Retrieve a celebrity's past tweets that are most similar to an event.

Results are ordered by similarity, best first. Fewer than --top_k rows are
returned when the celebrity has fewer tweets.

Examples:
  tweetsim retrieve --celebrity "Elon Musk" --event "Bitcoin hits ATH"
  tweetsim retrieve --celebrity "Elon Musk" --event "Mars" --top_k 10 --format json`,
		Args: cobra.NoArgs,
		RunE: runRetrieve,
	}

	addQueryFlags(cmd, &retrieveCelebrity, &retrieveEvent, &retrieveTopK)

	return cmd
}

// addQueryFlags registers the shared celebrity/event/top_k flags
func addQueryFlags(cmd *cobra.Command, celebrity, event *string, topK *int) {
	cmd.Flags().StringVar(celebrity, "celebrity", "", "Celebrity whose tweets to use (required)")
	cmd.Flags().StringVar(event, "event", "", "Event to react to (required)")
	cmd.Flags().IntVar(topK, "top_k", core.DefaultTopK, "Number of example tweets to retrieve")
	_ = cmd.MarkFlagRequired("celebrity")
	_ = cmd.MarkFlagRequired("event")
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(retrieveTopK, "top_k"); err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	retriever, err := a.Retriever()
	if err != nil {
		return err
	}

	results, err := retriever.Retrieve(cmd.Context(), retrieveCelebrity, retrieveEvent, retrieveTopK)
	if err != nil {
		return err
	}

	if structuredFormat() {
		return writeStructured(cmd.OutOrStdout(), results)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SCORE\tDATE\tTEXT\n")
	fmt.Fprintf(w, "-----\t----\t----\n")
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%s\t%s\n", r.Score, r.DateString(), truncate(r.Text, 80))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d tweet(s) for %s\n", len(results), retrieveCelebrity)
	}
	return nil
}
