package pdftext

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text thresholds. A document whose extracted text is shorter than
// minExtractableText is treated as a scan that needs OCR. The classification
// window is extended when the front pages yield too little text or carry the
// reversed-text layer some brokerages print as an anti-copy measure.
const (
	minExtractableText  = 50
	minClassifyWindow   = 200
	reversedTextMarker  = "snoitcasnarT"
	classifyWindowExtra = 5
)

// Document is the extracted text of one PDF. Pages holds per-page text for
// page-level classification; Text is the classification window, which covers
// the front pages plus any extension the reversed-text marker triggered.
type Document struct {
	Path     string   `json:"path"`
	NumPages int      `json:"num_pages"`
	Pages    []string `json:"-"`
	Text     string   `json:"-"`
	NeedsOCR bool     `json:"needs_ocr"`
}

// FullText joins every page. Classification reads the window in Text; field
// extraction reads this, since box values sit anywhere in the document.
func (d *Document) FullText() string {
	return strings.Join(d.Pages, "\n")
}

// Service extracts text from PDF files within configured limits.
type Service struct {
	validator *Validator
	maxPages  int
}

// NewService creates a text extraction service. maxPages bounds the
// classification window, not the per-page extraction.
func NewService(maxFileSize int64, maxPages int) *Service {
	return &Service{
		validator: NewValidator(maxFileSize),
		maxPages:  maxPages,
	}
}

// Extract validates the file and pulls per-page text from it. Pages that
// fail text extraction yield empty strings rather than failing the document;
// a fully empty document comes back with NeedsOCR set instead of an error.
func (s *Service) Extract(path string) (*Document, error) {
	if err := s.validator.Validate(path); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, numPages)
	for pageNum := 1; pageNum <= numPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pages[pageNum-1] = content
	}

	doc := &Document{
		Path:     path,
		NumPages: numPages,
		Pages:    pages,
		Text:     classifyWindow(pages, s.maxPages),
		NeedsOCR: len(strings.TrimSpace(strings.Join(pages, ""))) < minExtractableText,
	}
	return doc, nil
}

// Validate checks a path without extracting anything.
func (s *Service) Validate(path string) error {
	return s.validator.Validate(path)
}

// classifyWindow joins the front pages into the text the classifier sees.
// Brokerage statements sometimes print the first pages as reversed text, so
// when the window is suspiciously small or the marker string appears, later
// pages are appended.
func classifyWindow(pages []string, maxPages int) string {
	var b strings.Builder
	window := maxPages
	if window > len(pages) {
		window = len(pages)
	}
	for _, p := range pages[:window] {
		b.WriteString(p)
		b.WriteString("\n")
	}

	text := b.String()
	if len(text) >= minClassifyWindow && !strings.Contains(text, reversedTextMarker) {
		return text
	}

	end := classifyWindowExtra
	if end > len(pages) {
		end = len(pages)
	}
	for i := 2; i < end; i++ {
		b.WriteString(pages[i])
		b.WriteString("\n")
	}
	return b.String()
}
