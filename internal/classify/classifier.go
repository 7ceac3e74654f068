package classify

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/a3tai/taxdoc-engine/internal/extract"
)

// Classifier assigns tax form types to documents by filename and content.
// It is stateless and safe for concurrent use.
type Classifier struct {
	content   []contentRule
	filenames []filenameRule
}

// NewClassifier creates a classifier with the default rule set.
func NewClassifier() *Classifier {
	return &Classifier{
		content:   contentRules(),
		filenames: filenameRules(),
	}
}

// TextLoader supplies document text on demand, so content is only read when
// the filename alone cannot classify.
type TextLoader func() (string, error)

// ClassifyFile classifies a document, trying the filename first and falling
// back to content. loadText may be nil when no content is available; a load
// error is treated the same as empty text, since an unreadable file is still
// sortable as uncategorized.
func (c *Classifier) ClassifyFile(filename string, loadText TextLoader) Classification {
	upper := strings.ToUpper(filepath.Base(filename))

	for _, rule := range c.filenames {
		for _, token := range rule.tokens {
			if strings.Contains(upper, token) {
				return Classification{FormType: rule.form, Priority: Priority(rule.form)}
			}
		}
	}

	// A bare "1099" in the filename is ambiguous: the content decides which
	// variant, with a generic bucket when it can't.
	if strings.Contains(upper, "1099") {
		if result, ok := c.classifyLoaded(loadText); ok {
			return result
		}
		return Classification{FormType: Form1099Other, Priority: Priority(Form1099Other)}
	}

	if result, ok := c.classifyLoaded(loadText); ok {
		return result
	}
	return Classification{FormType: FormOther, Priority: Priority(FormOther)}
}

func (c *Classifier) classifyLoaded(loadText TextLoader) (Classification, bool) {
	if loadText == nil {
		return Classification{}, false
	}
	text, err := loadText()
	if err != nil || text == "" {
		return Classification{}, false
	}
	result := c.ClassifyContent(text)
	if result.Unclassified() {
		return Classification{}, false
	}
	return result, true
}

// ClassifyContent classifies a document by its text alone. The unclassified
// result has an empty form type and PriorityUnclassified.
func (c *Classifier) ClassifyContent(text string) Classification {
	upper := strings.ToUpper(text)

	if isW2(text, upper) {
		return Classification{FormType: FormW2, Payer: w2Payer(text), Priority: Priority(FormW2)}
	}

	hasDIV := strings.Contains(upper, Form1099DIV) || strings.Contains(upper, divSectionMarker)
	hasINT := strings.Contains(upper, Form1099INT) || strings.Contains(upper, intSectionMarker)

	if hasDIV && hasINT {
		return c.classifyConsolidated(text)
	}
	if hasINT {
		return Classification{FormType: Form1099INT, Payer: extract.PayerName(text), Priority: Priority(Form1099INT)}
	}
	if hasDIV {
		return Classification{FormType: Form1099DIV, Payer: extract.PayerName(text), Priority: Priority(Form1099DIV)}
	}

	for _, rule := range c.content {
		if !rule.matches(upper) {
			continue
		}
		result := Classification{FormType: rule.form, Priority: Priority(rule.form)}
		switch {
		case rule.fixedPayer != "":
			result.Payer = rule.fixedPayer
		case rule.payer == payerFromText:
			result.Payer = extract.PayerName(text)
		}
		return result
	}

	return Classification{Priority: PriorityUnclassified}
}

func (r contentRule) matches(upper string) bool {
	for _, marker := range r.allOf {
		if !strings.Contains(upper, marker) {
			return false
		}
	}
	if len(r.anyOf) == 0 {
		return len(r.allOf) > 0
	}
	for _, marker := range r.anyOf {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}

// isW2 decides W-2-ness before any other rule runs. The exclusive marker
// wins outright; the negative markers veto; otherwise keywords and the
// compact payroll-export shape decide.
func isW2(text, upper string) bool {
	if strings.Contains(upper, exclusiveW2Marker) {
		return true
	}
	for _, marker := range nonW2Markers {
		if strings.Contains(upper, marker) {
			return false
		}
	}
	for _, keyword := range w2Keywords {
		if strings.Contains(upper, keyword) {
			return true
		}
	}
	return compactW2Pattern.MatchString(text)
}

// w2Payer pulls the employer name from W-2 text, rejecting captures that are
// really dollar figures or too short to be a name.
func w2Payer(text string) string {
	for _, pattern := range w2NamePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 40 {
			name = name[:40]
		}
		if len(name) > 3 && !amountInName.MatchString(name) {
			return name
		}
	}
	return ""
}

var amountInName = regexp.MustCompile(`\d+\.\d{2}`)

// classifyConsolidated resolves statements carrying both DIV and INT
// sections by comparing the sections' totals. Ties and all-zero statements
// fall to whichever section marker is present, INT first.
func (c *Classifier) classifyConsolidated(text string) Classification {
	divAmt, _ := extract.Amount(text, divValuePatterns, "")
	intAmt, _ := extract.Amount(text, intValuePatterns, "")
	payer := extract.PayerName(text)

	upper := strings.ToUpper(text)
	hasDIV := strings.Contains(upper, Form1099DIV) || strings.Contains(upper, divSectionMarker)

	switch {
	case divAmt > intAmt && divAmt > 0:
		return Classification{FormType: Form1099DIV, Payer: payer, Priority: Priority(Form1099DIV)}
	case intAmt > 0:
		return Classification{FormType: Form1099INT, Payer: payer, Priority: Priority(Form1099INT)}
	case hasDIV:
		return Classification{FormType: Form1099DIV, Payer: payer, Priority: Priority(Form1099DIV)}
	default:
		return Classification{FormType: Form1099INT, Payer: payer, Priority: Priority(Form1099INT)}
	}
}
