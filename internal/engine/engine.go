// Package engine orchestrates the document pipeline: text extraction,
// classification, page-level splitting, field extraction and checksheet
// export. It is the only layer that touches the filesystem on behalf of the
// tool surface.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a3tai/taxdoc-engine/internal/checksheet"
	"github.com/a3tai/taxdoc-engine/internal/classify"
	"github.com/a3tai/taxdoc-engine/internal/config"
	"github.com/a3tai/taxdoc-engine/internal/extract"
	"github.com/a3tai/taxdoc-engine/internal/pdftext"
)

// Service wires the pipeline stages together behind one operation per tool.
type Service struct {
	text          *pdftext.Service
	classifier    *classify.Classifier
	parser        *extract.Parser
	pathValidator *PathValidator
	ocrEnabled    bool
}

// NewService builds the pipeline from configuration.
func NewService(cfg *config.Config) (*Service, error) {
	pathValidator, err := NewPathValidator(cfg.DocumentDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	return &Service{
		text:          pdftext.NewService(cfg.MaxFileSize, cfg.MaxPages),
		classifier:    classify.NewClassifier(),
		parser:        extract.NewParserWithRates(extract.DefaultRates(), cfg.ConfidenceThreshold),
		pathValidator: pathValidator,
		ocrEnabled:    cfg.OCREnabled,
	}, nil
}

// ClassifyFileRequest identifies one PDF to classify.
type ClassifyFileRequest struct {
	Path string
}

// ClassifyFileResult carries the file's classification. Groups is populated
// only when page-level analysis found more than one form in the file.
type ClassifyFileResult struct {
	Path     string
	NumPages int
	NeedsOCR bool
	classify.Classification
	Groups []classify.PageGroup
}

// ClassifyFile classifies a single PDF, splitting it into page groups when it
// contains multiple forms.
func (s *Service) ClassifyFile(req ClassifyFileRequest) (*ClassifyFileResult, error) {
	path, err := s.pathValidator.NormalizePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	doc, err := s.text.Extract(path)
	if err != nil {
		return nil, err
	}

	result := &ClassifyFileResult{
		Path:     path,
		NumPages: doc.NumPages,
		NeedsOCR: doc.NeedsOCR,
	}

	if groups := s.classifier.SplitPages(doc.Pages); len(groups) > 1 {
		result.Groups = groups
		result.Classification = groups[0].Classification
		return result, nil
	}

	result.Classification = s.classifier.ClassifyFile(filepath.Base(path), func() (string, error) {
		return doc.Text, nil
	})
	return result, nil
}

// SortDirectoryRequest identifies the directory to analyze. An empty
// Directory falls back to the configured document directory.
type SortDirectoryRequest struct {
	Directory string
}

// SortDirectoryResult lists every classified document in workpaper order.
// Multi-form files contribute one document per page group.
type SortDirectoryResult struct {
	Directory  string
	TotalFiles int
	Documents  []classify.Document
	Skipped    []string
}

// SortDirectory classifies every PDF in a directory and returns the documents
// in priority order. Files that cannot be read are skipped, not fatal; a
// directory sweep should survive one bad scan.
func (s *Service) SortDirectory(req SortDirectoryRequest) (*SortDirectoryResult, error) {
	directory := req.Directory
	if directory == "" {
		directory = s.pathValidator.DocumentDirectory()
	}
	if err := s.pathValidator.ValidateDirectory(directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	files, err := listPDFs(directory)
	if err != nil {
		return nil, err
	}

	result := &SortDirectoryResult{
		Directory:  directory,
		TotalFiles: len(files),
	}

	for _, path := range files {
		docs, err := s.classifyPath(path)
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%s: %v", filepath.Base(path), err))
			continue
		}
		result.Documents = append(result.Documents, docs...)
	}

	classify.SortDocuments(result.Documents)
	return result, nil
}

// classifyPath turns one file into one or more classified documents,
// rerouting uncategorized output by the file's origin.
func (s *Service) classifyPath(path string) ([]classify.Document, error) {
	doc, err := s.text.Extract(path)
	if err != nil {
		return nil, err
	}
	origin := inferOrigin(path)

	if groups := s.classifier.SplitPages(doc.Pages); len(groups) > 1 {
		docs := make([]classify.Document, 0, len(groups))
		for _, g := range groups {
			docs = append(docs, classify.Document{
				Path:           path,
				Pages:          g.Pages,
				Classification: classify.ApplyOrigin(g.Classification, origin),
			})
		}
		return docs, nil
	}

	c := s.classifier.ClassifyFile(filepath.Base(path), func() (string, error) {
		return doc.Text, nil
	})
	return []classify.Document{{
		Path:           path,
		Classification: classify.ApplyOrigin(c, origin),
	}}, nil
}

// ExtractFieldsRequest identifies one PDF to extract. FormType overrides
// classification when the caller already knows the form.
type ExtractFieldsRequest struct {
	Path     string
	FormType string
}

// ExtractFieldsResult carries the typed record with its quality report.
type ExtractFieldsResult struct {
	Path string
	classify.Classification
	NeedsOCR bool
	Record   *extract.Record
}

// ExtractFields classifies a PDF and runs the form-specific field parser over
// the full document text. When OCR sources are accepted, scanned documents
// still parse and the record itself caps their confidence; otherwise they are
// refused here.
func (s *Service) ExtractFields(req ExtractFieldsRequest) (*ExtractFieldsResult, error) {
	path, err := s.pathValidator.NormalizePath(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	doc, err := s.text.Extract(path)
	if err != nil {
		return nil, err
	}
	if err := s.checkOCR(doc, path); err != nil {
		return nil, err
	}

	var c classify.Classification
	if req.FormType != "" {
		c = classify.Classification{FormType: req.FormType, Priority: classify.Priority(req.FormType)}
	} else {
		c = s.classifier.ClassifyFile(filepath.Base(path), func() (string, error) {
			return doc.Text, nil
		})
	}

	record := s.parser.Parse(c.FormType, documentText(doc, nil), filepath.Base(path), doc.NeedsOCR)
	return &ExtractFieldsResult{
		Path:           path,
		Classification: c,
		NeedsOCR:       doc.NeedsOCR,
		Record:         record,
	}, nil
}

// WriteChecksheetRequest names the directory to sweep and where to write the
// workbook. Empty fields fall back to the configured document directory and
// checksheet.xlsx inside it.
type WriteChecksheetRequest struct {
	Directory  string
	OutputPath string
}

// WriteChecksheetResult reports what was written.
type WriteChecksheetResult struct {
	OutputPath string
	Documents  int
	Records    int
	Skipped    []string
}

// WriteChecksheet sweeps a directory, extracts every supported form and
// exports the checksheet workbook.
func (s *Service) WriteChecksheet(req WriteChecksheetRequest) (*WriteChecksheetResult, error) {
	sorted, err := s.SortDirectory(SortDirectoryRequest{Directory: req.Directory})
	if err != nil {
		return nil, err
	}

	outputPath := req.OutputPath
	if outputPath == "" {
		outputPath = filepath.Join(sorted.Directory, "checksheet.xlsx")
	}

	entries := make([]checksheet.Entry, 0, len(sorted.Documents))
	records := 0
	for _, doc := range sorted.Documents {
		entry := checksheet.Entry{Document: doc}
		if extract.Supported(doc.FormType) {
			if rec, err := s.extractDocument(doc); err == nil {
				entry.Record = rec
				records++
			}
		}
		entries = append(entries, entry)
	}

	if err := checksheet.Write(entries, outputPath); err != nil {
		return nil, err
	}
	return &WriteChecksheetResult{
		OutputPath: outputPath,
		Documents:  len(sorted.Documents),
		Records:    records,
		Skipped:    sorted.Skipped,
	}, nil
}

// extractDocument parses the document's own pages: the whole file for
// single-form documents, just the group's pages for a split.
func (s *Service) extractDocument(doc classify.Document) (*extract.Record, error) {
	ext, err := s.text.Extract(doc.Path)
	if err != nil {
		return nil, err
	}
	if err := s.checkOCR(ext, doc.Path); err != nil {
		return nil, err
	}

	return s.parser.Parse(doc.FormType, documentText(ext, doc.Pages), filepath.Base(doc.Path), ext.NeedsOCR), nil
}

// documentText selects the text field extraction runs over: the named pages
// for a split document, otherwise every page. The classification window in
// doc.Text is too narrow here; box values can sit on any page.
func documentText(doc *pdftext.Document, pages []int) string {
	if len(pages) == 0 {
		return doc.FullText()
	}
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		if p >= 0 && p < len(doc.Pages) {
			parts = append(parts, doc.Pages[p])
		}
	}
	return strings.Join(parts, "\n")
}

// checkOCR refuses scanned documents when OCR text sources are not accepted.
func (s *Service) checkOCR(doc *pdftext.Document, path string) error {
	if doc.NeedsOCR && !s.ocrEnabled {
		return fmt.Errorf("%s appears to be scanned and OCR is disabled; rerun with --ocr or supply a text-layer PDF", filepath.Base(path))
	}
	return nil
}

func listPDFs(directory string) ([]string, error) {
	dirEntries, err := os.ReadDir(directory)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	var files []string
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			files = append(files, filepath.Join(directory, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// imageExtensions and officeExtensions identify source files that were
// converted to PDF upstream. A PDF sitting next to its source inherits that
// origin, which decides where an uncategorized document sorts.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".heic", ".heif", ".gif", ".bmp", ".tif", ".tiff"}

var officeExtensions = []string{".docx", ".doc", ".xlsx", ".xls", ".csv", ".txt", ".rtf"}

func inferOrigin(pdfPath string) classify.Origin {
	stem := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath))
	for _, ext := range imageExtensions {
		if fileExists(stem + ext) {
			return classify.OriginImage
		}
	}
	for _, ext := range officeExtensions {
		if fileExists(stem + ext) {
			return classify.OriginOffice
		}
	}
	return classify.OriginOriginal
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
