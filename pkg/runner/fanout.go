package runner

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/keyday/llmbench/pkg/api"
	"github.com/keyday/llmbench/pkg/observability"
	"github.com/keyday/llmbench/pkg/query"
)

// QueryClient is the slice of the query engine the coordinator needs.
type QueryClient interface {
	Complete(ctx context.Context, model, prompt string, maxTokens int) (*query.Completion, int, error)
}

// Coordinator fans one prompt out to every eligible provider, one goroutine
// per provider, and joins on all terminal results. One provider's failure
// never cancels or delays another's attempt, and there is no early exit.
type Coordinator struct {
	Client QueryClient

	// Delay is the pacing delay each unit applies after receiving its
	// response. It throttles only that unit, never the others.
	Delay time.Duration

	// Sleep overrides the pacing sleep. If nil, time.Sleep is used.
	// Intended for tests.
	Sleep func(time.Duration)
}

// Run executes the fan-out and returns exactly one terminal result per
// provider. Each result slot is written exactly once by its own goroutine;
// the WaitGroup join is the only synchronization needed.
func (c *Coordinator) Run(ctx context.Context, providers []api.ProviderRecord, prompt string) []api.ProviderResult {
	results := make([]api.ProviderResult, len(providers))
	var wg sync.WaitGroup

	for i, rec := range providers {
		wg.Add(1)
		go func(idx int, rec api.ProviderRecord) {
			defer wg.Done()
			results[idx] = c.queryOne(ctx, rec, prompt)
		}(i, rec)
	}

	wg.Wait()
	return results
}

// queryOne drives one provider to its terminal outcome and applies the
// per-unit pacing delay.
func (c *Coordinator) queryOne(ctx context.Context, rec api.ProviderRecord, prompt string) api.ProviderResult {
	res := api.ProviderResult{
		ProviderID:   rec.ID,
		ProviderName: rec.Name,
		StartTime:    time.Now(),
	}

	comp, attempts, err := c.Client.Complete(ctx, rec.ID, prompt, rec.MaxOutputTokens)

	res.EndTime = time.Now()
	res.Duration = res.EndTime.Sub(res.StartTime)
	res.Attempts = attempts

	outcome := "success"
	if err != nil {
		qerr, ok := err.(*api.QueryError)
		if !ok {
			qerr = api.NewTransportError(err.Error())
		}
		res.Err = qerr
		// Carry the error text as the response so the report row renders.
		res.Response = qerr.Error()
		outcome = string(qerr.Kind)

		slog.Warn("provider query failed",
			"provider", rec.ID,
			"kind", qerr.Kind,
			"attempts", attempts,
			"error", qerr.Message,
		)
	} else {
		res.Response = comp.Text
		res.Refusal = comp.Refusal
		res.Usage = comp.Usage
		if comp.Refusal {
			outcome = "refusal"
		}

		slog.Info("provider responded",
			"provider", rec.ID,
			"attempts", attempts,
			"chars", len(comp.Text),
			"duration", res.Duration,
		)
	}

	observability.ProviderRequestsTotal.WithLabelValues(rec.ID, outcome).Inc()
	observability.ProviderLatency.WithLabelValues(rec.ID).Observe(res.Duration.Seconds())
	if res.Usage != nil {
		observability.ProviderTokensTotal.WithLabelValues(rec.ID, "input").Add(float64(res.Usage.PromptTokens))
		observability.ProviderTokensTotal.WithLabelValues(rec.ID, "output").Add(float64(res.Usage.CompletionTokens))
	}

	// Per-unit pacing before this provider could be used again.
	if c.Delay > 0 {
		c.sleep(c.Delay)
	}

	return res
}

func (c *Coordinator) sleep(d time.Duration) {
	if c.Sleep != nil {
		c.Sleep(d)
		return
	}
	time.Sleep(d)
}
