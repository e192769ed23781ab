package query

import "strings"

// refusalLexicon lists the phrases that mark a response as a refusal or an
// uncertainty disclaimer. Matching is a case-insensitive substring check.
var refusalLexicon = []string{
	"error:",
	"i apologize",
	"i'm sorry",
	"i cannot",
	"i don't",
	"i'm not sure",
	"i'm unable",
}

// IsRefusal reports whether the content matches the refusal lexicon.
// Refusals are still successful outcomes; the flag only tags them for the
// validator and the report.
func IsRefusal(content string) bool {
	lower := strings.ToLower(content)
	for _, phrase := range refusalLexicon {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
