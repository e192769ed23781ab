package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "llmbench",
	Short: "llmbench benchmarks free LLM providers against a queue of questions",
	Long: `llmbench drains a durable queue of questions and benchmarks every
eligible free provider on an OpenRouter-compatible listing against each one.

For each pending question the pipeline:

  1. Translates the question to the prompt language
  2. Discovers the current free provider set, minus the exclusion list
  3. Queries every provider concurrently with bounded retry and backoff
  4. Back-translates each response to the question's language
  5. Renders an HTML report and a spreadsheet, accepting them only when
     the report clears the size threshold

Accepted questions move to the resolved list; everything else returns to
the pending list with a reason, so the run is resumable across restarts.

Configuration:
  Settings come from llmbench.yaml (or --config) with LLMBENCH_* environment
  overrides. The provider API key is read from LLMBENCH_API_KEY or
  OPENROUTER_API_KEY.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: llmbench.yaml)")
}
