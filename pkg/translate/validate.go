package translate

import (
	"context"
	"log/slog"
	"strings"

	"github.com/keyday/llmbench/pkg/api"
)

// FailedSentinel is substituted for the back-translation when the
// translation round trip produced nothing.
const FailedSentinel = "Translation failed"

// FillBackTranslation fills the BackTranslation field of one provider
// result, translating from the prompt language back to the question's
// source language.
//
// Error outcomes get the identical error text: it is already display text
// and not worth a translation round trip. Successful outcomes, refusals
// included, are translated; on failure the sentinel is substituted so one
// provider's translation trouble never aborts the question.
func FillBackTranslation(ctx context.Context, tr Translator, res *api.ProviderResult, promptLang, sourceLang string) {
	if res.Err != nil {
		res.BackTranslation = res.Response
		return
	}

	translated, err := tr.Translate(ctx, res.Response, promptLang, sourceLang)
	if err != nil || strings.TrimSpace(translated) == "" {
		slog.Warn("back-translation failed",
			"provider", res.ProviderID,
			"error", err,
		)
		res.BackTranslation = FailedSentinel
		return
	}

	res.BackTranslation = translated
}
