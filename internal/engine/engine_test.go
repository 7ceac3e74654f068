package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/a3tai/taxdoc-engine/internal/classify"
	"github.com/a3tai/taxdoc-engine/internal/config"
	"github.com/a3tai/taxdoc-engine/internal/pdftext"
)

func testService(t *testing.T) (*Service, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DocumentDirectory:   dir,
		MaxFileSize:         config.DefaultMaxFileSize,
		MaxPages:            config.DefaultMaxPages,
		ConfidenceThreshold: config.DefaultConfidenceThreshold,
	}
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestNewServiceRequiresDirectory(t *testing.T) {
	_, err := NewService(&config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path validator")
}

func TestClassifyFileRejectsOutsidePath(t *testing.T) {
	svc, _ := testService(t)

	outside := filepath.Join(t.TempDir(), "w2.pdf")
	writeFile(t, outside, "%PDF-1.4 not really")

	_, err := svc.ClassifyFile(ClassifyFileRequest{Path: outside})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "security validation failed")
}

func TestClassifyFileRejectsEmptyPath(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.ClassifyFile(ClassifyFileRequest{})
	require.Error(t, err)
}

func TestClassifyFilePropagatesReadFailure(t *testing.T) {
	svc, dir := testService(t)

	// Relative paths resolve against the document directory.
	writeFile(t, filepath.Join(dir, "broken.pdf"), "not a pdf at all")
	_, err := svc.ClassifyFile(ClassifyFileRequest{Path: "broken.pdf"})
	require.Error(t, err)
}

func TestSortDirectorySkipsUnreadableFiles(t *testing.T) {
	svc, dir := testService(t)

	writeFile(t, filepath.Join(dir, "corrupt-a.pdf"), "junk")
	writeFile(t, filepath.Join(dir, "corrupt-b.PDF"), "junk")
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	result, err := svc.SortDirectory(SortDirectoryRequest{})
	require.NoError(t, err)

	assert.Equal(t, dir, result.Directory)
	assert.Equal(t, 2, result.TotalFiles)
	assert.Empty(t, result.Documents)
	assert.Len(t, result.Skipped, 2)
	assert.Contains(t, result.Skipped[0], "corrupt-a.pdf")
}

func TestSortDirectoryEmptyDirectory(t *testing.T) {
	svc, dir := testService(t)

	result, err := svc.SortDirectory(SortDirectoryRequest{Directory: dir})
	require.NoError(t, err)
	assert.Zero(t, result.TotalFiles)
	assert.Empty(t, result.Documents)
}

func TestSortDirectoryRejectsOutsideDirectory(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.SortDirectory(SortDirectoryRequest{Directory: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "security validation failed")
}

func TestWriteChecksheetEmptySweep(t *testing.T) {
	svc, dir := testService(t)

	result, err := svc.WriteChecksheet(WriteChecksheetRequest{})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "checksheet.xlsx"), result.OutputPath)
	assert.Zero(t, result.Documents)
	assert.Zero(t, result.Records)

	f, err := excelize.OpenFile(result.OutputPath)
	require.NoError(t, err)
	defer f.Close()
	assert.Contains(t, f.GetSheetList(), "Summary")
}

// TestDocumentTextCoversAllPages guards against field extraction running on
// the classification window: a value on a late page must still be in the
// text handed to the parser.
func TestDocumentTextCoversAllPages(t *testing.T) {
	pages := make([]string, 8)
	for i := range pages {
		pages[i] = fmt.Sprintf("Page %d filler text.", i+1)
	}
	pages[6] = "Interest income 4821.50"
	doc := &pdftext.Document{
		NumPages: len(pages),
		Pages:    pages,
		Text:     strings.Join(pages[:3], "\n"),
	}

	assert.NotContains(t, doc.Text, "4821.50")
	assert.Contains(t, documentText(doc, nil), "4821.50")
	assert.Equal(t, doc.FullText(), documentText(doc, nil))

	subset := documentText(doc, []int{1, 2})
	assert.Contains(t, subset, "Page 2")
	assert.NotContains(t, subset, "4821.50")

	// Out-of-range page indices are dropped, not fatal.
	assert.Equal(t, pages[6], documentText(doc, []int{-1, 6, 99}))
}

func TestCheckOCRGate(t *testing.T) {
	svc, _ := testService(t)
	scanned := &pdftext.Document{NeedsOCR: true}

	err := svc.checkOCR(scanned, "/docs/scan.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan.pdf")
	assert.Contains(t, err.Error(), "OCR")

	assert.NoError(t, svc.checkOCR(&pdftext.Document{}, "/docs/typed.pdf"))

	svc.ocrEnabled = true
	assert.NoError(t, svc.checkOCR(scanned, "/docs/scan.pdf"))
}

func TestNewServiceHonorsOCRFlag(t *testing.T) {
	cfg := &config.Config{DocumentDirectory: t.TempDir(), OCREnabled: true}
	svc, err := NewService(cfg)
	require.NoError(t, err)
	assert.True(t, svc.ocrEnabled)
}

func TestListPDFs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.pdf"), "x")
	writeFile(t, filepath.Join(dir, "A.PDF"), "x")
	writeFile(t, filepath.Join(dir, "skip.txt"), "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.pdf"), 0o750))

	files, err := listPDFs(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "A.PDF"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.pdf"), files[1])
}

func TestInferOrigin(t *testing.T) {
	dir := t.TempDir()

	pdfOnly := filepath.Join(dir, "statement.pdf")
	writeFile(t, pdfOnly, "x")
	assert.Equal(t, classify.OriginOriginal, inferOrigin(pdfOnly))

	photo := filepath.Join(dir, "receipt.pdf")
	writeFile(t, photo, "x")
	writeFile(t, filepath.Join(dir, "receipt.heic"), "x")
	assert.Equal(t, classify.OriginImage, inferOrigin(photo))

	office := filepath.Join(dir, "summary.pdf")
	writeFile(t, office, "x")
	writeFile(t, filepath.Join(dir, "summary.xlsx"), "x")
	assert.Equal(t, classify.OriginOffice, inferOrigin(office))
}

func TestPathValidator(t *testing.T) {
	dir := t.TempDir()
	v, err := NewPathValidator(dir)
	require.NoError(t, err)

	assert.Equal(t, dir, v.DocumentDirectory())

	inside := filepath.Join(dir, "w2.pdf")
	assert.NoError(t, v.ValidatePath(inside))
	assert.NoError(t, v.ValidatePath(dir))

	require.Error(t, v.ValidatePath(""))
	require.Error(t, v.ValidatePath(filepath.Join(dir, "..", "escape.pdf")))
	require.Error(t, v.ValidatePath("/etc/passwd"))

	got, err := v.NormalizePath("sub/w2.pdf")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "w2.pdf"), got)

	_, err = v.NormalizePath("../escape.pdf")
	require.Error(t, err)
}

func TestPathValidatorMissingRootAllowsAll(t *testing.T) {
	v, err := NewPathValidator(filepath.Join(t.TempDir(), "does-not-exist-yet"))
	require.NoError(t, err)
	assert.NoError(t, v.ValidatePath("/anywhere/at/all.pdf"))
}

func TestPathValidatorRejectsFileAsDirectory(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain.pdf")
	writeFile(t, file, "x")

	v, err := NewPathValidator(dir)
	require.NoError(t, err)
	require.Error(t, v.ValidateDirectory(file))
	assert.NoError(t, v.ValidateDirectory(filepath.Join(dir, "not-there")))
}
