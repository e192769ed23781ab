package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	"github.com/keyday/llmbench/pkg/api"
)

const displayTimeLayout = "2006-01-02 15:04:05"
const fileTimeLayout = "2006-01-02_15-04-05"

// rowView is one provider row prepared for the narrative template.
type rowView struct {
	Name             string
	ID               string
	RequestTime      string
	StartTime        string
	EndTime          string
	Duration         string
	PromptTokens     string
	CompletionTokens string
	TotalTokens      string
	CharCount        int
	Efficiency       string
	Response         template.HTML
	BackTranslation  template.HTML
	Refusal          bool
	IsError          bool
}

// reportView is the full template payload.
type reportView struct {
	Question           string
	TranslatedQuestion string
	Rows               []rowView
}

var narrativeTmpl = template.Must(template.New("narrative").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Model Comparison Report</title>
    <link rel="stylesheet" href="../css/estilo.css" media="all">
</head>
<body>
    <h1>Original Question:</h1>
    <p>{{.Question}}</p>
    <h2>Translated Prompt:</h2>
    <p>{{.TranslatedQuestion}}</p>
    <table>
        <thead>
            <tr>
                <th>Model</th>
                <th>Request Time</th>
                <th>Start Time</th>
                <th>End Time</th>
                <th>Duration (s)</th>
                <th>Token Usage</th>
                <th>Characters</th>
                <th>Chars/Token</th>
                <th>Response</th>
                <th>Back-Translation</th>
            </tr>
        </thead>
        <tbody>
{{range .Rows}}        <tr>
            <td>{{.Name}}<br><span class="model-id">{{.ID}}</span></td>
            <td>{{.RequestTime}}</td>
            <td>{{.StartTime}}</td>
            <td>{{.EndTime}}</td>
            <td>{{.Duration}}</td>
            <td><div class="token-info">Prompt: {{.PromptTokens}}<br>Completion: {{.CompletionTokens}}<br>Total: {{.TotalTokens}}</div></td>
            <td><div class="char-info">{{.CharCount}}</div></td>
            <td><div class="efficiency">{{.Efficiency}}</div></td>
            <td class="response-cell"><div class="provider-response">{{if .IsError}}<div class="error-message">{{.Response}}</div>{{else if .Refusal}}<div class="chain-of-thought">{{.Response}}</div>{{else}}{{.Response}}{{end}}</div></td>
            <td class="response-cell"><div class="translated-response">{{if .IsError}}<div class="error-message">{{.BackTranslation}}</div>{{else if .Refusal}}<div class="chain-of-thought">{{.BackTranslation}}</div>{{else}}{{.BackTranslation}}{{end}}</div></td>
        </tr>
{{end}}        </tbody>
    </table>
    <div class="footer">
        <p>Note: back-translations are machine generated</p>
    </div>
</body>
</html>
`))

// RenderNarrative renders the narrative HTML document for one report.
func RenderNarrative(rep *api.Report) ([]byte, error) {
	view := reportView{
		Question:           string(rep.Question),
		TranslatedQuestion: rep.TranslatedQuestion,
	}
	for i := range rep.Results {
		view.Rows = append(view.Rows, buildRow(&rep.Results[i]))
	}

	var buf bytes.Buffer
	if err := narrativeTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("rendering narrative report: %w", err)
	}
	return buf.Bytes(), nil
}

func buildRow(res *api.ProviderResult) rowView {
	row := rowView{
		Name:             res.ProviderName,
		ID:               res.ProviderID,
		RequestTime:      formatTime(res.EndTime),
		StartTime:        formatTime(res.StartTime),
		EndTime:          formatTime(res.EndTime),
		Duration:         fmt.Sprintf("%.2f", res.Duration.Seconds()),
		PromptTokens:     "N/A",
		CompletionTokens: "N/A",
		TotalTokens:      "N/A",
		CharCount:        res.CharCount(),
		Efficiency:       "N/A",
		Response:         formatMultiline(res.Response),
		BackTranslation:  formatMultiline(res.BackTranslation),
		Refusal:          res.Refusal,
		IsError:          res.Err != nil,
	}

	if res.Usage != nil {
		row.PromptTokens = fmt.Sprintf("%d", res.Usage.PromptTokens)
		row.CompletionTokens = fmt.Sprintf("%d", res.Usage.CompletionTokens)
		row.TotalTokens = fmt.Sprintf("%d", res.Usage.TotalTokens)
	}
	if eff, ok := res.CharsPerToken(); ok {
		row.Efficiency = fmt.Sprintf("%.2f", eff)
	}

	return row
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(displayTimeLayout)
}

// formatMultiline escapes the text and preserves line breaks as <br>.
func formatMultiline(s string) template.HTML {
	escaped := template.HTMLEscapeString(s)
	return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
}

// DocumentName builds the deterministic report base name: a sanitized
// 20-rune prefix of the question plus a timestamp.
func DocumentName(q api.Question, at time.Time) string {
	return sanitizePrefix(string(q)) + "_" + at.Format(fileTimeLayout)
}

// sanitizePrefix keeps letters, digits, spaces, and underscores, trims the
// result, replaces spaces with underscores, and caps it at 20 runes.
func sanitizePrefix(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' {
			b.WriteRune(r)
		}
	}
	cleaned := strings.ReplaceAll(strings.TrimSpace(b.String()), " ", "_")

	runes := []rune(cleaned)
	if len(runes) > 20 {
		runes = runes[:20]
	}
	return string(runes)
}
