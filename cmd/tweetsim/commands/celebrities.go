// ABOUTME: CLI command to list indexed celebrities
// ABOUTME: Shows tweet counts and date ranges per celebrity
package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewCelebritiesCmd creates the celebrities command
func NewCelebritiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "celebrities",
		Aliases: []string{"ls"},
		Short:   "List indexed celebrities",
		Long: `List every celebrity in the index with tweet counts and date ranges.

Examples:
  tweetsim celebrities
  tweetsim celebrities --format yaml`,
		Args: cobra.NoArgs,
		RunE: runCelebrities,
	}

	return cmd
}

func runCelebrities(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if _, err := a.Store.Meta(); err != nil {
		return err
	}

	summaries, err := a.Store.Celebrities()
	if err != nil {
		return fmt.Errorf("listing celebrities: %w", err)
	}

	if structuredFormat() {
		return writeStructured(cmd.OutOrStdout(), summaries)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "CELEBRITY\tTWEETS\tFIRST\tLAST\n")
	fmt.Fprintf(w, "---------\t------\t-----\t----\n")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n",
			truncate(s.Celebrity, 30),
			s.TweetCount,
			s.FirstDate.Format("2006-01-02"),
			s.LastDate.Format("2006-01-02"))
	}
	_ = w.Flush()

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d celebrit(ies)\n", len(summaries))
	}
	return nil
}
