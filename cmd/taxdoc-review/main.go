package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/a3tai/taxdoc-engine/internal/config"
	"github.com/a3tai/taxdoc-engine/internal/engine"
	"github.com/a3tai/taxdoc-engine/internal/extract"
)

var (
	outputFormat = flag.String("format", "text", "Output format: text, json")
	formType     = flag.String("form", "", "Form type override for single-file extraction (e.g. W-2)")
	checksheet   = flag.String("checksheet", "", "Write a checksheet workbook to this path after a directory sweep")
	threshold    = flag.Int("threshold", config.DefaultConfidenceThreshold, "Confidence below which records need review")
	help         = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "Error: PDF file or directory path required\n\n")
		printUsage()
		os.Exit(1)
	}

	target := flag.Arg(0)
	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Cannot access %s: %v\n", target, err)
		os.Exit(1)
	}

	svc, err := buildService(target, info.IsDir())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		err = reviewDirectory(svc, target)
	} else {
		err = reviewFile(svc, target)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildService(target string, isDir bool) (*engine.Service, error) {
	directory := target
	if !isDir {
		directory = filepath.Dir(target)
	}
	cfg := &config.Config{
		DocumentDirectory:   directory,
		MaxFileSize:         config.DefaultMaxFileSize,
		MaxPages:            config.DefaultMaxPages,
		ConfidenceThreshold: *threshold,
	}
	return engine.NewService(cfg)
}

func reviewFile(svc *engine.Service, path string) error {
	result, err := svc.ExtractFields(engine.ExtractFieldsRequest{Path: path, FormType: *formType})
	if err != nil {
		return err
	}

	if *outputFormat == "json" {
		return printJSON(result)
	}

	rec := result.Record
	fmt.Printf("File: %s\n", result.Path)
	fmt.Printf("Form Type: %s\n", rec.FormType)
	fmt.Printf("Overall Confidence: %d%%\n", rec.OverallConfidence)
	fmt.Printf("Auto-Populate: %t\n", rec.AutoPopulate)
	if result.NeedsOCR {
		fmt.Println("Needs OCR: the document has little or no extractable text")
	}
	if !extract.Supported(rec.FormType) {
		fmt.Println("No field parser exists for this form type; classification only.")
		return nil
	}

	fmt.Println("\nFields:")
	for _, field := range rec.Fields() {
		q := rec.Quality[field]
		fmt.Printf("  %-24s %v", field, rec.Data[field])
		if q.Found {
			fmt.Printf("  (confidence %d%%)", q.Confidence)
		} else {
			fmt.Printf("  (not found)")
		}
		fmt.Println()
	}
	for _, missing := range rec.MissingRequired {
		fmt.Printf("Missing required field: %s\n", missing)
	}
	for _, c := range rec.MathErrors {
		fmt.Printf("Math check failed: %s (expected %.2f, got %.2f)\n", c.Name, c.Expected, c.Actual)
	}
	return nil
}

func reviewDirectory(svc *engine.Service, directory string) error {
	result, err := svc.SortDirectory(engine.SortDirectoryRequest{Directory: directory})
	if err != nil {
		return err
	}

	if *outputFormat == "json" {
		if err := printJSON(result); err != nil {
			return err
		}
	} else {
		fmt.Printf("Sorted %d document(s) from %d PDF file(s)\n\n", len(result.Documents), result.TotalFiles)
		for i, doc := range result.Documents {
			form := doc.FormType
			if form == "" {
				form = "(unclassified)"
			}
			fmt.Printf("%2d. [%2d] %-16s %s", i+1, doc.Priority, form, filepath.Base(doc.Path))
			if doc.Payer != "" {
				fmt.Printf("  payer=%s", doc.Payer)
			}
			fmt.Println()
		}
		for _, skip := range result.Skipped {
			fmt.Printf("Skipped: %s\n", skip)
		}
	}

	if *checksheet != "" {
		written, err := svc.WriteChecksheet(engine.WriteChecksheetRequest{
			Directory:  directory,
			OutputPath: *checksheet,
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Checksheet written: %s (%d records)\n", written.OutputPath, written.Records)
	}
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printHelp() {
	fmt.Println("Tax Document Review - Classify and extract tax form PDFs")
	fmt.Println()
	fmt.Println("Given a single PDF, classifies it and extracts typed field values with a")
	fmt.Println("per-field quality report. Given a directory, classifies every PDF and prints")
	fmt.Println("them in workpaper order, optionally exporting a checksheet workbook.")
	fmt.Println()
	printUsage()
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -format      Output format: text (default), json")
	fmt.Println("  -form        Form type override for single-file extraction (e.g. W-2)")
	fmt.Println("  -checksheet  Write a checksheet workbook to this path after a directory sweep")
	fmt.Println("  -threshold   Confidence below which records need review (default 60)")
	fmt.Println("  -help        Show this help message")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  taxdoc-review w2.pdf")
	fmt.Println("  taxdoc-review -form 1099-INT -format json statement.pdf")
	fmt.Println("  taxdoc-review -checksheet review.xlsx /tax/client-docs")
}

func printUsage() {
	fmt.Println("USAGE:")
	fmt.Println("  taxdoc-review [OPTIONS] <pdf_file_or_directory>")
}
