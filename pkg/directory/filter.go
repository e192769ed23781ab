package directory

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/keyday/llmbench/pkg/api"
)

// FreeSuffix marks providers that are free regardless of their listed costs.
const FreeSuffix = ":free"

// fallbackOutputTokens is the output budget when the listing carries no
// usable context size.
const fallbackOutputTokens = 50

// FilterFree applies the eligibility rules to a raw listing, in order:
// excluded identifiers are dropped, then any provider whose prompt or
// completion cost is present but unparseable is dropped, then only
// providers with both costs exactly zero (or a FreeSuffix identifier)
// are retained.
func FilterFree(models []Model, excluded map[string]struct{}) map[string]api.ProviderRecord {
	eligible := make(map[string]api.ProviderRecord)

	for _, m := range models {
		if m.ID == "" {
			continue
		}
		if _, ok := excluded[m.ID]; ok {
			continue
		}

		promptCost, promptOK, promptBad := parseCost(m.Pricing.Prompt)
		completionCost, completionOK, completionBad := parseCost(m.Pricing.Completion)
		if promptBad || completionBad {
			continue
		}

		free := strings.HasSuffix(m.ID, FreeSuffix) ||
			(promptOK && completionOK && promptCost == 0 && completionCost == 0)
		if !free {
			continue
		}

		name := m.Name
		if name == "" {
			name = m.ID
		}

		eligible[m.ID] = api.ProviderRecord{
			ID:              m.ID,
			Name:            name,
			MaxOutputTokens: outputBudget(m.ContextLength),
		}
	}

	return eligible
}

// outputBudget derives the per-completion output budget: half the reported
// context size, or the fallback when the field is missing or malformed.
func outputBudget(raw json.RawMessage) int {
	v, ok := parseNumber(raw)
	if !ok {
		return fallbackOutputTokens
	}
	return int(v / 2)
}

// parseCost parses a pricing field. Returns the value and whether it was
// present and parseable; bad reports a field that was present but could not
// be parsed, which disqualifies the provider entirely.
func parseCost(raw json.RawMessage) (val float64, ok bool, bad bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false, false
	}
	v, parsed := parseNumber(raw)
	if !parsed {
		return 0, false, true
	}
	return v, true, false
}

// parseNumber accepts a JSON number or a quoted numeric string.
func parseNumber(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}

	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return n, true
		}
	}

	return 0, false
}
