package commands

import (
	"context"
	"fmt"
	"os"

	"openwork-summarizer/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "openwork-cli",
	Short: "openwork-cli scrapes a company's OpenWork reviews and summarizes them with an LLM.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
		// optional: exports traces/metrics when a telemetry.json5 is around
		_, err := telemetry.SetupFromEnv(cmd.Context(), "openwork-cli")
		if err == nil {
			telemetry.InstrumentPerfStats(cmd.Context())
		}
	},
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
