package mcp

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/a3tai/taxdoc-engine/internal/config"
	"github.com/a3tai/taxdoc-engine/internal/descriptions"
	"github.com/a3tai/taxdoc-engine/internal/engine"
	"github.com/a3tai/taxdoc-engine/internal/extract"
)

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	engine    *engine.Service
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, engineService *engine.Service) (*Server, error) {
	if engineService == nil {
		return nil, fmt.Errorf("engineService cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		engine:    engineService,
		mcpServer: mcpServer,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	classifyFileTool := mcp.NewTool(
		"taxdoc_classify_file",
		mcp.WithDescription(descriptions.TaxDocClassifyFileDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
	)
	s.mcpServer.AddTool(classifyFileTool, s.handleClassifyFile)

	sortDirectoryTool := mcp.NewTool(
		"taxdoc_sort_directory",
		mcp.WithDescription(descriptions.TaxDocSortDirectoryDescription),
		mcp.WithString("directory",
			mcp.Description("Directory path to analyze (uses default if empty)"),
		),
	)
	s.mcpServer.AddTool(sortDirectoryTool, s.handleSortDirectory)

	extractFieldsTool := mcp.NewTool(
		"taxdoc_extract_fields",
		mcp.WithDescription(descriptions.TaxDocExtractFieldsDescription),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Full path to the PDF file"),
		),
		mcp.WithString("form_type",
			mcp.Description("Form type override (e.g. W-2, 1099-INT); classified from content if empty"),
		),
	)
	s.mcpServer.AddTool(extractFieldsTool, s.handleExtractFields)

	writeChecksheetTool := mcp.NewTool(
		"taxdoc_write_checksheet",
		mcp.WithDescription(descriptions.TaxDocWriteChecksheetDescription),
		mcp.WithString("directory",
			mcp.Description("Directory path to sweep (uses default if empty)"),
		),
		mcp.WithString("output",
			mcp.Description("Output .xlsx path (defaults to checksheet.xlsx in the swept directory)"),
		),
	)
	s.mcpServer.AddTool(writeChecksheetTool, s.handleWriteChecksheet)
}

// Handler functions
func (s *Server) handleClassifyFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := s.engine.ClassifyFile(engine.ClassifyFileRequest{Path: path})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatClassifyFileResult(result)), nil
}

func (s *Server) handleSortDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}

	result, err := s.engine.SortDirectory(engine.SortDirectoryRequest{Directory: directory})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var responseText string
	if result.TotalFiles == 0 {
		responseText = fmt.Sprintf("No PDF files found in directory: %s", result.Directory)
	} else {
		responseText = s.formatSortDirectoryResult(result)
	}

	return mcp.NewToolResultText(responseText), nil
}

func (s *Server) handleExtractFields(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	args := request.GetArguments()
	formType := ""
	if ft, ok := args["form_type"].(string); ok {
		formType = ft
	}

	result, err := s.engine.ExtractFields(engine.ExtractFieldsRequest{Path: path, FormType: formType})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(s.formatExtractFieldsResult(result)), nil
}

func (s *Server) handleWriteChecksheet(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	directory := ""
	if dir, ok := args["directory"].(string); ok {
		directory = dir
	}
	output := ""
	if out, ok := args["output"].(string); ok {
		output = out
	}

	result, err := s.engine.WriteChecksheet(engine.WriteChecksheetRequest{
		Directory:  directory,
		OutputPath: output,
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	responseText := fmt.Sprintf("Checksheet written: %s\n", result.OutputPath)
	responseText += fmt.Sprintf("Documents: %d\n", result.Documents)
	responseText += fmt.Sprintf("Extracted records: %d\n", result.Records)
	if len(result.Skipped) > 0 {
		responseText += fmt.Sprintf("Skipped %d unreadable file(s):\n", len(result.Skipped))
		for _, skip := range result.Skipped {
			responseText += fmt.Sprintf("  - %s\n", skip)
		}
	}

	return mcp.NewToolResultText(responseText), nil
}

// Formatting methods
func (s *Server) formatClassifyFileResult(result *engine.ClassifyFileResult) string {
	text := fmt.Sprintf("Classified: %s\n", result.Path)
	text += fmt.Sprintf("Pages: %d\n", result.NumPages)

	if len(result.Groups) > 0 {
		text += fmt.Sprintf("Multi-form file with %d page group(s):\n", len(result.Groups))
		for i, g := range result.Groups {
			text += fmt.Sprintf("%d. %s", i+1, g.FormType)
			if g.Payer != "" {
				text += fmt.Sprintf(" (%s)", g.Payer)
			}
			text += fmt.Sprintf(" - pages %s, priority %d\n", formatPageList(g.Pages), g.Priority)
		}
	} else {
		text += fmt.Sprintf("Form Type: %s\n", displayFormType(result.FormType))
		if result.Payer != "" {
			text += fmt.Sprintf("Payer: %s\n", result.Payer)
		}
		text += fmt.Sprintf("Priority: %d\n", result.Priority)
	}

	if result.NeedsOCR {
		text += "\nThis document has little or no extractable text and needs OCR before field extraction.\n"
	}

	return text
}

func (s *Server) formatSortDirectoryResult(result *engine.SortDirectoryResult) string {
	text := fmt.Sprintf("Sorted %d document(s) from %d PDF file(s) in: %s\n",
		len(result.Documents), result.TotalFiles, result.Directory)
	text += "\nWorkpaper order:\n"

	for i, doc := range result.Documents {
		text += fmt.Sprintf("%d. [%d] %s", i+1, doc.Priority, displayFormType(doc.FormType))
		if doc.Payer != "" {
			text += fmt.Sprintf(" (%s)", doc.Payer)
		}
		text += fmt.Sprintf(" - %s", doc.Path)
		if len(doc.Pages) > 0 {
			text += fmt.Sprintf(" pages %s", formatPageList(doc.Pages))
		}
		text += "\n"
	}

	if len(result.Skipped) > 0 {
		text += fmt.Sprintf("\nSkipped %d unreadable file(s):\n", len(result.Skipped))
		for _, skip := range result.Skipped {
			text += fmt.Sprintf("  - %s\n", skip)
		}
	}

	return text
}

func (s *Server) formatExtractFieldsResult(result *engine.ExtractFieldsResult) string {
	rec := result.Record

	text := fmt.Sprintf("Extracted: %s\n", result.Path)
	text += fmt.Sprintf("Form Type: %s\n", displayFormType(rec.FormType))
	text += fmt.Sprintf("OCR: %t\n", result.NeedsOCR)
	text += fmt.Sprintf("Overall Confidence: %d%%\n", rec.OverallConfidence)
	text += fmt.Sprintf("Auto-Populate: %t\n", rec.AutoPopulate)

	if !extract.Supported(rec.FormType) {
		text += "\nNo field parser exists for this form type; classification only.\n"
		return text
	}

	text += "\nFields:\n"
	for _, field := range rec.Fields() {
		text += fmt.Sprintf("  %s: %s", field, formatFieldValue(rec.Data[field]))
		if q, ok := rec.Quality[field]; ok {
			text += fmt.Sprintf(" (confidence %d%%", q.Confidence)
			if q.Attempts > 1 {
				text += fmt.Sprintf(", %d attempts", q.Attempts)
			}
			if len(q.Issues) > 0 {
				text += ", " + strings.Join(q.Issues, "; ")
			}
			text += ")"
		}
		text += "\n"
	}

	if len(rec.MissingRequired) > 0 {
		text += fmt.Sprintf("\nMissing required fields: %s\n", strings.Join(rec.MissingRequired, ", "))
	}
	for _, c := range rec.MathErrors {
		text += fmt.Sprintf("Math check failed: %s (expected %.2f, got %.2f)\n", c.Name, c.Expected, c.Actual)
	}

	return text
}

func formatFieldValue(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return fmt.Sprintf("%.2f", v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// displayFormType fills the unclassified hole for display only; the engine
// keeps it empty so downstream logic can distinguish.
func displayFormType(formType string) string {
	if formType == "" {
		return "(unclassified)"
	}
	return formType
}

// formatPageList renders zero-based page indices one-based for humans.
func formatPageList(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprintf("%d", p+1)
	}
	return strings.Join(parts, ",")
}

// Run starts the MCP server in the configured mode
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode runs the server in stdio mode
func (s *Server) runStdioMode(_ context.Context) error {
	if s.config.IsDebug() {
		log.Printf("Starting tax document MCP server in stdio mode")
		log.Printf("Document directory: %s", s.config.DocumentDirectory)
	}

	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode runs the server over streamable HTTP until the context is
// cancelled.
func (s *Server) runServerMode(ctx context.Context) error {
	httpServer := server.NewStreamableHTTPServer(s.mcpServer)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting tax document MCP server on %s", s.config.Address())
		errCh <- httpServer.Start(s.config.Address())
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shut down server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve http: %w", err)
		}
		return nil
	}
}
