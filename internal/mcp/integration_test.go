package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/xuri/excelize/v2"
)

// TestSweepPipeline drives the full directory sweep through the tool
// handlers: a directory with one unreadable PDF still sorts, and the
// checksheet export records the skip instead of failing.
func TestSweepPipeline(t *testing.T) {
	srv, cfg := testServer(t)

	broken := filepath.Join(cfg.DocumentDirectory, "scan-001.pdf")
	if err := os.WriteFile(broken, []byte("not really a pdf"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	sortRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}
	sortResult, err := srv.handleSortDirectory(context.Background(), sortRequest)
	if err != nil {
		t.Fatalf("sort handler returned error: %v", err)
	}
	if sortResult.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, sortResult))
	}
	sortText := resultText(t, sortResult)
	if !strings.Contains(sortText, "Skipped 1 unreadable file(s)") {
		t.Errorf("expected skip notice, got: %s", sortText)
	}
	if !strings.Contains(sortText, "scan-001.pdf") {
		t.Errorf("expected skipped file name, got: %s", sortText)
	}

	checksheetRequest := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{},
		},
	}
	checksheetResult, err := srv.handleWriteChecksheet(context.Background(), checksheetRequest)
	if err != nil {
		t.Fatalf("checksheet handler returned error: %v", err)
	}
	if checksheetResult.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, checksheetResult))
	}

	workbook := filepath.Join(cfg.DocumentDirectory, "checksheet.xlsx")
	f, err := excelize.OpenFile(workbook)
	if err != nil {
		t.Fatalf("checksheet should be a readable workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	found := false
	for _, s := range sheets {
		if s == "Summary" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected Summary sheet, got: %v", sheets)
	}
}

// TestExtractFieldsFormOverride verifies the form_type argument bypasses
// content classification. The file is unreadable, so the handler must fail
// before extraction regardless of the override.
func TestExtractFieldsFormOverride(t *testing.T) {
	srv, cfg := testServer(t)

	broken := filepath.Join(cfg.DocumentDirectory, "w2.pdf")
	if err := os.WriteFile(broken, []byte("junk"), 0o644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"path":      broken,
				"form_type": "W-2",
			},
		},
	}

	result, err := srv.handleExtractFields(context.Background(), request)
	if err != nil {
		t.Fatalf("handler should not return error: %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for unreadable file")
	}
}
