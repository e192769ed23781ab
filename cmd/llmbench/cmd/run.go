package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keyday/llmbench/pkg/api"
	"github.com/keyday/llmbench/pkg/config"
	"github.com/keyday/llmbench/pkg/directory"
	"github.com/keyday/llmbench/pkg/observability"
	"github.com/keyday/llmbench/pkg/query"
	"github.com/keyday/llmbench/pkg/queue"
	"github.com/keyday/llmbench/pkg/report"
	"github.com/keyday/llmbench/pkg/runner"
	"github.com/keyday/llmbench/pkg/translate"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process the pending question queue once",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBatch(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	setupLogging(cfg.Logging.Level)

	if cfg.Observability.Metrics.Enabled {
		srv := observability.Serve(cfg.Observability.Metrics.Addr, cfg.Observability.Metrics.Path)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	excluded, err := directory.LoadExclusions(cfg.Queue.Exclusions)
	if err != nil {
		return err
	}

	dirClient := directory.NewClient(cfg.Endpoint.BaseURL, cfg.Endpoint.APIKey, cfg.Endpoint.Timeout)
	defer dirClient.Close()

	queryClient, err := query.New(query.Config{
		BaseURL:        cfg.Endpoint.BaseURL,
		APIKey:         cfg.Endpoint.APIKey,
		Timeout:        cfg.Endpoint.Timeout,
		MaxRetries:     cfg.Query.MaxRetries,
		InitialBackoff: cfg.Query.InitialBackoff,
	})
	if err != nil {
		return err
	}
	defer queryClient.Close()

	translator := translate.NewGoogleClient(cfg.Translation.BaseURL, cfg.Translation.Timeout)
	defer translator.Close()

	gate, err := report.NewGate(cfg.Report.Dir, cfg.Report.FailedDir, cfg.Report.SheetDir, cfg.Report.MinSize)
	if err != nil {
		return err
	}

	pipeline := &runner.Pipeline{
		Directory: dirClient,
		Coordinator: &runner.Coordinator{
			Client: queryClient,
			Delay:  cfg.Query.RequestDelay,
		},
		Translator: translator,
		Gate:       gate,
		Queue:      queue.NewManager(cfg.Queue.Pending, cfg.Queue.Resolved),
		Excluded:   excluded,
		SourceLang: cfg.Translation.SourceLanguage,
		TargetLang: cfg.Translation.TargetLanguage,
		In:         cmd.InOrStdin(),
		Out:        cmd.OutOrStdout(),
	}

	summary, err := pipeline.Run(cmd.Context())
	if summary != nil {
		printSummary(cmd, summary)
	}
	return err
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
	})))
}

// printSummary writes the end-of-run report folded from the pipeline's
// per-stage return values.
func printSummary(cmd *cobra.Command, s *api.RunSummary) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "\nRun %s finished in %s\n", s.RunID, time.Since(s.StartedAt).Round(time.Second))

	fmt.Fprintf(out, "\nResolved questions: %d\n", len(s.Resolved))
	for _, q := range s.Resolved {
		fmt.Fprintf(out, "- %s\n", q)
	}

	fmt.Fprintf(out, "\nFailed questions (returned to pending): %d\n", len(s.Failed))
	for _, f := range s.Failed {
		fmt.Fprintf(out, "- %s (reason: %s)\n", f.Question, f.Reason)
	}

	fmt.Fprintf(out, "\nRejected reports: %d\n", len(s.Relocated))
	for _, r := range s.Relocated {
		fmt.Fprintf(out, "- %s (reason: %s)\n", r.Path, r.Reason)
	}

	fmt.Fprintf(out, "\nExcluded providers: %d\n", s.Excluded)
}
