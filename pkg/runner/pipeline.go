// Package runner drives the benchmark pipeline: it drains the question
// queue, fans each question out across the eligible providers, validates
// and back-translates the results, and commits the report gate's decision
// back to the queue.
package runner

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keyday/llmbench/pkg/api"
	"github.com/keyday/llmbench/pkg/observability"
	"github.com/keyday/llmbench/pkg/queue"
	"github.com/keyday/llmbench/pkg/report"
	"github.com/keyday/llmbench/pkg/translate"
)

// ReasonNoProviders is recorded when filtering leaves no eligible provider.
const ReasonNoProviders = "no free models available"

// ReasonTranslationFailed is recorded when the question pre-translation
// produced nothing.
const ReasonTranslationFailed = "translation failed"

// ProviderLister is the slice of the provider directory the pipeline needs.
type ProviderLister interface {
	ListEligible(ctx context.Context, excluded map[string]struct{}) (map[string]api.ProviderRecord, error)
}

// Pipeline wires the stages for one batch run. Questions are processed
// strictly one at a time; only the per-question fan-out is concurrent.
type Pipeline struct {
	Directory   ProviderLister
	Coordinator *Coordinator
	Translator  translate.Translator
	Gate        *report.Gate
	Queue       *queue.Manager

	// Excluded is the provider exclusion set, loaded once per process.
	Excluded map[string]struct{}

	// SourceLang is the questions' language; TargetLang is the prompt
	// language sent to providers.
	SourceLang string
	TargetLang string

	// In and Out are the operator console for the ad hoc question prompt.
	In  io.Reader
	Out io.Writer
}

// questionOutcome is the per-question fold contributed to the run summary.
type questionOutcome struct {
	resolved  bool
	reason    string
	relocated string
}

// Run processes the whole pending batch and returns the run summary. The
// returned error is fatal queue I/O only; per-question failures are folded
// into the summary and the question requeued.
func (p *Pipeline) Run(ctx context.Context) (*api.RunSummary, error) {
	summary := &api.RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
		Excluded:  len(p.Excluded),
	}

	questions, err := p.Queue.Load()
	if err != nil {
		return nil, err
	}
	slog.Info("pending questions loaded", "run_id", summary.RunID, "count", len(questions))

	if len(questions) == 0 {
		q, ok, err := p.Queue.PromptAdHoc(p.In, p.Out)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Info("no question provided, exiting")
			return summary, nil
		}
		questions = []api.Question{q}
	}

	var remaining []api.Question
	for i, q := range questions {
		slog.Info("processing question", "index", i+1, "total", len(questions))

		outcome := p.processQuestion(ctx, q)
		if outcome.resolved {
			if err := p.Queue.AppendResolved(q); err != nil {
				return summary, err
			}
			summary.Resolved = append(summary.Resolved, q)
			observability.QuestionsTotal.WithLabelValues("resolved").Inc()
			continue
		}

		remaining = append(remaining, q)
		summary.Failed = append(summary.Failed, api.FailedQuestion{Question: q, Reason: outcome.reason})
		if outcome.relocated != "" {
			summary.Relocated = append(summary.Relocated, api.RelocatedReport{
				Path:   outcome.relocated,
				Reason: outcome.reason,
			})
		}
		observability.QuestionsTotal.WithLabelValues("requeued").Inc()
		slog.Warn("question requeued", "reason", outcome.reason)
	}

	if err := p.Queue.RewritePending(remaining); err != nil {
		return summary, err
	}
	slog.Info("pending file rewritten", "remaining", len(remaining))

	return summary, nil
}

// processQuestion runs one question through translation, discovery,
// fan-out, validation, and the report gate.
func (p *Pipeline) processQuestion(ctx context.Context, q api.Question) questionOutcome {
	translated, err := p.Translator.Translate(ctx, string(q), p.SourceLang, p.TargetLang)
	if err != nil || strings.TrimSpace(translated) == "" {
		slog.Warn("question translation failed", "error", err)
		return questionOutcome{reason: ReasonTranslationFailed}
	}

	providers, err := p.Directory.ListEligible(ctx, p.Excluded)
	if err != nil {
		slog.Warn("provider listing failed", "error", err)
		return questionOutcome{reason: ReasonNoProviders}
	}
	if len(providers) == 0 {
		return questionOutcome{reason: ReasonNoProviders}
	}
	slog.Info("eligible providers", "count", len(providers))

	results := p.Coordinator.Run(ctx, sortedRecords(providers), translated)

	for i := range results {
		translate.FillBackTranslation(ctx, p.Translator, &results[i], p.TargetLang, p.SourceLang)
	}

	rep := &api.Report{
		Question:           q,
		TranslatedQuestion: translated,
		Results:            results,
		CreatedAt:          time.Now(),
	}

	out := p.Gate.Write(rep)
	if !out.Accepted {
		return questionOutcome{reason: out.Reason, relocated: out.RelocatedPath}
	}

	slog.Info("report accepted",
		"narrative", out.HTMLPath,
		"sheet", out.SheetPath,
		"size_bytes", out.Size,
	)
	return questionOutcome{resolved: true}
}

// sortedRecords flattens the provider map in identifier order so result
// slots are assigned deterministically.
func sortedRecords(providers map[string]api.ProviderRecord) []api.ProviderRecord {
	records := make([]api.ProviderRecord, 0, len(providers))
	for _, rec := range providers {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	return records
}
