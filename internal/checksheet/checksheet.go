// Package checksheet renders classification and extraction results into a
// preparer checksheet workbook: one summary row per document in sorted order,
// and one sheet per extracted record with its field values and quality
// sub-record. Records that extraction marked unsafe to auto-populate are
// highlighted so a preparer's eye lands on them first.
package checksheet

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/a3tai/taxdoc-engine/internal/classify"
	"github.com/a3tai/taxdoc-engine/internal/extract"
)

const (
	summarySheet = "Summary"

	// Excel caps sheet names at 31 characters.
	maxSheetName = 31

	// Fill for records a preparer must review by hand.
	reviewFillColor = "FFC000"

	// Fields below this confidence get an annotation on their row.
	lowConfidence = 60
)

// Entry pairs a classified document with its extraction record. Record is nil
// when extraction was not run or the form type is not supported.
type Entry struct {
	Document classify.Document
	Record   *extract.Record
}

var summaryHeaders = []string{
	"Priority", "Form Type", "Payer", "Source File", "Pages",
	"OCR", "Confidence", "Auto-Populate", "Issues",
}

var fieldHeaders = []string{
	"Field", "Value", "Found", "Confidence", "Attempts", "Issues",
}

// Write renders the entries into a workbook at outputPath, creating parent
// directories as needed. Entries are written in the order given; callers that
// want priority order sort the documents first.
func Write(entries []Entry, outputPath string) error {
	f := excelize.NewFile()

	reviewStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{reviewFillColor}},
	})
	if err != nil {
		return fmt.Errorf("failed to create review style: %w", err)
	}

	if err := writeSummary(f, entries, reviewStyle); err != nil {
		return err
	}
	for i, entry := range entries {
		if entry.Record == nil {
			continue
		}
		if err := writeRecordSheet(f, i+1, entry.Record); err != nil {
			return err
		}
	}

	// Drop the default sheet excelize starts with.
	if idx, err := f.GetSheetIndex(summarySheet); err == nil {
		f.SetActiveSheet(idx)
	}
	_ = f.DeleteSheet("Sheet1")

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save checksheet: %w", err)
	}
	return nil
}

func writeSummary(f *excelize.File, entries []Entry, reviewStyle int) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}

	for i, h := range summaryHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(summarySheet, cell, h)
	}

	for i, entry := range entries {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(summarySheet, cell, value)
		}

		doc := entry.Document
		set(1, doc.Priority)
		set(2, doc.FormType)
		set(3, doc.Payer)
		set(4, filepath.Base(doc.Path))
		set(5, formatPages(doc.Pages))

		if rec := entry.Record; rec != nil {
			set(6, rec.IsOCR)
			set(7, rec.OverallConfidence)
			set(8, rec.AutoPopulate)
			set(9, summarizeIssues(rec))

			if !rec.AutoPopulate {
				first, _ := excelize.CoordinatesToCellName(1, r)
				last, _ := excelize.CoordinatesToCellName(len(summaryHeaders), r)
				_ = f.SetCellStyle(summarySheet, first, last, reviewStyle)
			}
		}
	}

	return nil
}

func writeRecordSheet(f *excelize.File, ordinal int, rec *extract.Record) error {
	name := recordSheetName(ordinal, rec.FormType)
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create record sheet %q: %w", name, err)
	}

	_ = f.SetCellValue(name, "A1", rec.FormType)
	_ = f.SetCellValue(name, "B1", rec.Source)

	for i, h := range fieldHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(name, cell, h)
	}

	for i, field := range rec.Fields() {
		r := i + 3
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(name, cell, value)
		}

		set(1, field)
		set(2, cellValue(rec.Data[field]))

		q, ok := rec.Quality[field]
		if !ok {
			continue
		}
		set(3, q.Found)
		set(4, q.Confidence)
		set(5, q.Attempts)

		issues := q.Issues
		if q.Found && q.Confidence < lowConfidence {
			issues = append(issues[:len(issues):len(issues)], "Low confidence")
		}
		set(6, strings.Join(issues, "; "))
	}

	return nil
}

// recordSheetName builds a unique, Excel-legal sheet name. The ordinal keeps
// duplicate form types apart; forbidden characters are stripped.
func recordSheetName(ordinal int, formType string) string {
	name := fmt.Sprintf("%d %s", ordinal, formType)
	name = strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, name)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	return name
}

// formatPages renders zero-based page indices as a one-based display range,
// "3-5" for contiguous runs and a comma list otherwise.
func formatPages(pages []int) string {
	if len(pages) == 0 {
		return ""
	}
	contiguous := true
	for i := 1; i < len(pages); i++ {
		if pages[i] != pages[i-1]+1 {
			contiguous = false
			break
		}
	}
	if contiguous {
		if len(pages) == 1 {
			return fmt.Sprintf("%d", pages[0]+1)
		}
		return fmt.Sprintf("%d-%d", pages[0]+1, pages[len(pages)-1]+1)
	}
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p+1)
	}
	return strings.Join(parts, ",")
}

func summarizeIssues(rec *extract.Record) string {
	var parts []string
	if len(rec.MissingRequired) > 0 {
		parts = append(parts, "Missing: "+strings.Join(rec.MissingRequired, ", "))
	}
	for _, c := range rec.MathErrors {
		parts = append(parts, fmt.Sprintf("%s (expected %.2f, got %.2f)", c.Name, c.Expected, c.Actual))
	}
	parts = append(parts, rec.Issues...)
	return strings.Join(parts, "; ")
}

// cellValue normalizes field values for the worksheet. excelize handles the
// concrete types directly; this only guards against future field types
// falling through as Go syntax.
func cellValue(v any) any {
	switch v := v.(type) {
	case nil:
		return ""
	case string, float64, bool, int:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
