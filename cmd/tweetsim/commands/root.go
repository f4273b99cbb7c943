// ABOUTME: Root command and global flags for the tweetsim CLI
// ABOUTME: Wires subcommands and gates log output on --verbose/--quiet
package commands

import (
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"
)

// Global flags shared by every subcommand
var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
 ████████╗██╗    ██╗███████╗███████╗████████╗███████╗██╗███╗   ███╗
 ╚══██╔══╝██║    ██║██╔════╝██╔════╝╚══██╔══╝██╔════╝██║████╗ ████║
    ██║   ██║ █╗ ██║█████╗  █████╗     ██║   ███████╗██║██╔████╔██║
    ██║   ██║███╗██║██╔══╝  ██╔══╝     ██║   ╚════██║██║██║╚██╔╝██║
    ██║   ╚███╔███╔╝███████╗███████╗   ██║   ███████║██║██║ ╚═╝ ██║
    ╚═╝    ╚══╝╚══╝ ╚══════╝╚══════╝   ╚═╝   ╚══════╝╚═╝╚═╝     ╚═╝
`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tweetsim",
		Short: "Simulate celebrity tweets grounded on their own history",
		Long: banner + `
Simulate how a celebrity would tweet about an event.

tweetsim embeds a corpus of past tweets, retrieves the ones most similar
to an event for the requested celebrity, and asks an LLM to write new
tweets in that voice using the retrieved tweets as examples.

Data paths come from the environment (TWEETSIM_DATA_PATH, TWEETSIM_DB_PATH)
and default to data/tweets_merged.csv and embeddings/tweets.db.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(cmd.ErrOrStderr())
			return validateFormat(outputFormat)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show progress logs")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress logs and informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", formatAuto, "Output format: auto, text, json, yaml")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(
		NewBuildCmd(),
		NewRetrieveCmd(),
		NewSimulateCmd(),
		NewCelebritiesCmd(),
		NewExportCmd(),
		NewMCPCmd(),
		NewSyncCmd(),
		NewVersionCmd(),
	)

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}

// configureLogging routes log output to w, or discards it when quiet
func configureLogging(w io.Writer) {
	log.SetFlags(log.LstdFlags)
	if quiet {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(w)
}

func validateFormat(format string) error {
	switch format {
	case formatAuto, formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use auto, text, json, or yaml)", format)
	}
}
