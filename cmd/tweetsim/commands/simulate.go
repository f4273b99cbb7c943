// ABOUTME: CLI command to simulate a celebrity's tweets about an event
// ABOUTME: Prints the prompt sent to the LLM followed by the generated tweets
package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	simulateCelebrity string
	simulateEvent     string
	simulateTopK      int
)

// NewSimulateCmd creates the simulate command
func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate tweets about an event",
		Long: `Simulate how a celebrity would tweet about an event.

Retrieves the celebrity's most similar past tweets, renders them into a
prompt, and makes a single LLM call. Requires OPENAI_API_KEY.

Examples:
  tweetsim simulate --celebrity "Elon Musk" --event "Bitcoin hits ATH"
  tweetsim simulate --celebrity "Taylor Swift" --event "Grammys tonight" --top_k 3`,
		Args: cobra.NoArgs,
		RunE: runSimulate,
	}

	addQueryFlags(cmd, &simulateCelebrity, &simulateEvent, &simulateTopK)

	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(simulateTopK, "top_k"); err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	simulator, err := a.Simulator()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !structuredFormat() {
		fmt.Fprintf(out, "Simulating response for %s to event: %s\n", simulateCelebrity, simulateEvent)
	}

	sim, err := simulator.Simulate(cmd.Context(), simulateCelebrity, simulateEvent, simulateTopK)
	if err != nil {
		return err
	}

	if structuredFormat() {
		return writeStructured(out, sim)
	}

	fmt.Fprintln(out)
	header(out, "=== Prompt Sent to LLM ===")
	fmt.Fprintln(out, sim.Prompt)
	fmt.Fprintln(out)
	header(out, "=== Simulated Response ===")
	fmt.Fprintln(out, sim.Output)
	return nil
}
