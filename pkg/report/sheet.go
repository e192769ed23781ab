package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/keyday/llmbench/pkg/api"
)

const sheetName = "Model Responses"

var sheetHeaders = []string{
	"Model", "Model ID", "Prompt Tokens", "Completion Tokens",
	"Total Tokens", "Characters", "Chars/Token",
	"Response", "Back-Translation",
}

// RenderSheet writes the spreadsheet document for one report. It carries the
// same result data as the narrative document in tabular form.
func RenderSheet(rep *api.Report, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"34495E"}, Pattern: 1},
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	cellStyle, err := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return fmt.Errorf("creating cell style: %w", err)
	}

	for col, header := range sheetHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("writing header cell: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", "I1", headerStyle); err != nil {
		return fmt.Errorf("styling header row: %w", err)
	}

	for i := range rep.Results {
		res := &rep.Results[i]
		row := i + 2

		promptTokens, completionTokens, totalTokens := "N/A", "N/A", "N/A"
		if res.Usage != nil {
			promptTokens = fmt.Sprintf("%d", res.Usage.PromptTokens)
			completionTokens = fmt.Sprintf("%d", res.Usage.CompletionTokens)
			totalTokens = fmt.Sprintf("%d", res.Usage.TotalTokens)
		}
		efficiency := "N/A"
		if eff, ok := res.CharsPerToken(); ok {
			efficiency = fmt.Sprintf("%.2f", eff)
		}

		values := []any{
			res.ProviderName, res.ProviderID,
			promptTokens, completionTokens, totalTokens,
			res.CharCount(), efficiency,
			res.Response, res.BackTranslation,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing cell: %w", err)
			}
		}

		last, err := excelize.CoordinatesToCellName(len(values), row)
		if err != nil {
			return fmt.Errorf("addressing row end: %w", err)
		}
		first, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("addressing row start: %w", err)
		}
		if err := f.SetCellStyle(sheetName, first, last, cellStyle); err != nil {
			return fmt.Errorf("styling row: %w", err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "I", 20); err != nil {
		return fmt.Errorf("setting column widths: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving spreadsheet: %w", err)
	}
	return nil
}
