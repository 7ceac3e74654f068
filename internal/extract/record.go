package extract

import (
	"fmt"
	"math"
	"sort"
)

// Record is the typed output of one document's extraction pass. Fields are
// accreted through the Add methods, required-field and math checks run against
// the accumulated data, and Finalize seals the record with an overall
// confidence and the auto-populate verdict. A finalized record is treated as
// immutable by everything downstream.
type Record struct {
	FormType string         `json:"form_type"`
	Source   string         `json:"source_file"`
	IsOCR    bool           `json:"is_ocr"`
	Data     map[string]any `json:"data"`

	Quality         map[string]FieldQuality `json:"field_quality"`
	Issues          []string                `json:"issues"`
	MissingRequired []string                `json:"missing_required"`
	MathErrors      []MathCheck             `json:"math_errors"`

	OverallConfidence int  `json:"overall_confidence"`
	AutoPopulate      bool `json:"auto_populate"`

	fieldOrder []string
	finalized  bool
}

// NewRecord starts an extraction record for one source document.
func NewRecord(formType, source string, isOCR bool) *Record {
	return &Record{
		FormType: formType,
		Source:   source,
		IsOCR:    isOCR,
		Data:     make(map[string]any),
		Quality:  make(map[string]FieldQuality),
	}
}

// AddField records a numeric field together with its extraction quality.
// OCR-derived fields are capped at a lower ceiling no matter how strong the
// pattern match was.
func (r *Record) AddField(name string, value float64, quality FieldQuality) {
	if r.IsOCR && quality.Found && quality.Confidence > ocrFieldCap {
		quality.Confidence = ocrFieldCap
	}
	r.setField(name, value, quality)
}

// AddTextField records a non-numeric field. Text fields carry a flat
// confidence when present; there is no pattern cascade behind them.
func (r *Record) AddTextField(name, value string) {
	quality := FieldQuality{Field: name, Found: value != ""}
	if quality.Found {
		quality.Confidence = textFieldConfidence
		if r.IsOCR && quality.Confidence > ocrFieldCap {
			quality.Confidence = ocrFieldCap
		}
	} else {
		quality.Issues = []string{"Not found"}
	}
	r.setField(name, value, quality)
}

// AddFlag records a checkbox-style boolean field. Flags are informational and
// do not participate in confidence aggregation.
func (r *Record) AddFlag(name string, value bool) {
	r.mustBeOpen()
	if _, exists := r.Data[name]; !exists {
		r.fieldOrder = append(r.fieldOrder, name)
	}
	r.Data[name] = value
}

func (r *Record) setField(name string, value any, quality FieldQuality) {
	r.mustBeOpen()
	if _, exists := r.Data[name]; !exists {
		r.fieldOrder = append(r.fieldOrder, name)
	}
	r.Data[name] = value
	r.Quality[name] = quality
	for _, issue := range quality.Issues {
		if issue != "Not found" {
			r.Issues = append(r.Issues, fmt.Sprintf("%s: %s", name, issue))
		}
	}
}

// CheckRequired notes every named field that is absent, empty, or zero.
func (r *Record) CheckRequired(fields ...string) {
	r.mustBeOpen()
	for _, field := range fields {
		if r.fieldPresent(field) {
			continue
		}
		r.MissingRequired = append(r.MissingRequired, field)
		r.Issues = append(r.Issues, "Missing required: "+field)
	}
}

func (r *Record) fieldPresent(field string) bool {
	switch v := r.Data[field].(type) {
	case string:
		return v != ""
	case float64:
		return v != 0
	case bool:
		return v
	default:
		return false
	}
}

// CheckMath validates an arithmetic relationship between extracted values.
// Violations are recorded, never fatal.
func (r *Record) CheckMath(name string, expected, actual, tolerance float64) {
	r.mustBeOpen()
	if math.Abs(expected-actual) <= tolerance {
		return
	}
	r.MathErrors = append(r.MathErrors, MathCheck{
		Name:       name,
		Expected:   expected,
		Actual:     actual,
		Difference: actual - expected,
	})
	r.Issues = append(r.Issues, fmt.Sprintf("Math error in %s: expected %.2f, got %.2f", name, expected, actual))
}

// Finalize computes the overall confidence and the auto-populate verdict and
// seals the record. The overall score is the mean of found-field confidences,
// reduced for OCR sources, missing required fields and math errors, clamped
// to [0,100]. Records below the threshold, or with any math error, are marked
// for human review instead of automatic population. Finalize is idempotent.
func (r *Record) Finalize(threshold int) {
	if r.finalized {
		return
	}

	sum, found := 0, 0
	for _, q := range r.Quality {
		if q.Found {
			sum += q.Confidence
			found++
		}
	}

	overall := 0
	if found > 0 {
		overall = sum / found
	}
	if r.IsOCR && overall > ocrOverallCap {
		overall = ocrOverallCap
	}
	overall -= len(r.MissingRequired) * missingRequiredPenalty
	overall -= len(r.MathErrors) * mathErrorPenalty

	if overall < 0 {
		overall = 0
	}
	if overall > 100 {
		overall = 100
	}

	r.OverallConfidence = overall
	r.AutoPopulate = overall >= threshold && len(r.MathErrors) == 0
	r.finalized = true
}

// Finalized reports whether the record has been sealed.
func (r *Record) Finalized() bool {
	return r.finalized
}

// Fields returns field names in the order they were added.
func (r *Record) Fields() []string {
	out := make([]string, len(r.fieldOrder))
	copy(out, r.fieldOrder)
	return out
}

// SortedFields returns field names alphabetically, for stable serialization.
func (r *Record) SortedFields() []string {
	out := r.Fields()
	sort.Strings(out)
	return out
}

func (r *Record) mustBeOpen() {
	if r.finalized {
		panic("extract: record mutated after Finalize")
	}
}
