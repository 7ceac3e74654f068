package classify

import "regexp"

// nonW2Markers are form codes that override W-2 keyword hits: these forms
// quote W-2 language in their instructions, but the marker itself can only
// mean the document is not a W-2. The one stronger signal is
// exclusiveW2Marker, a phrase that appears on no other form.
var nonW2Markers = []string{
	"5498", "1099-SA", "1095-C", "1095-B", "1099-MISC", "1099-NEC", "1099-G",
}

const exclusiveW2Marker = "SOCIAL SECURITY WAGES"

// w2Keywords identify a W-2 when no overriding marker is present.
var w2Keywords = []string{
	"WAGE AND TAX STATEMENT", "FORM W-2", "WAGES, TIPS", "W-2 WAGE",
}

// compactW2Pattern catches label-free payroll exports: an EIN on one line
// followed by two dollar amounts on the next.
var compactW2Pattern = regexp.MustCompile(`\d{2}-\d{7}\s*\n\s*[\d,]+\.\d{2}\s+[\d,]+\.\d{2}`)

// w2NamePatterns locate the employer on a classified W-2. Searched in order;
// case-sensitive because the name capture depends on upper-case classes.
var w2NamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`[Ee]mployer'?s?\s+name[:\s]*\n?\s*([A-Z][A-Za-z0-9\s\.,&-]+)`),
	regexp.MustCompile(`c\s+[Ee]mployer'?s?\s+name.*?\n\s*([A-Z][A-Za-z0-9\s\.,&-]+)`),
	// Compact format: between the masked SSN and the first dollar amount.
	regexp.MustCompile(`[\dX]{3}-[\dX]{2}-\d{4}\s*\n\s*([A-Z][A-Z0-9&\s\.,]+?)\s+[\d,]+\.\d{2}`),
	regexp.MustCompile(`(?m)^([A-Z][A-Za-z0-9\s\.,&]+?(?:LLC|INC|CORP|L\.L\.C\.|ENTERPRISES)[A-Za-z\s\.]*)`),
}

// Consolidated brokerage statements carry both 1099-DIV and 1099-INT
// sections; the section with the larger nonzero total decides the type.
const (
	divSectionMarker = "DIVIDENDS AND DISTRIBUTIONS"
	intSectionMarker = "INTEREST INCOME"
)

var (
	divValuePatterns = compileContent(
		`1a[-\s]+total\s+ordinary\s+dividends[^\d]+([\d,]+\.\d{2})`,
		`total\s+ordinary\s+dividends[^\d$]*\$?\s*([\d,]+\.\d{2})`,
		`ordinary\s+dividends[^\d]*([\d,]+\.\d{2})`,
		`box\s*1a[^\d]*([\d,]+\.\d{2})`,
	)
	intValuePatterns = compileContent(
		`1[-\s]+interest\s+income[^\d$]*\$?\s*([\d,]+\.\d{2})`,
		`interest\s+income[^\d$]*\$?\s*([\d,]+\.\d{2})`,
		`box\s*1[^\da][^\d]*([\d,]+\.\d{2})`,
	)
)

// payerSource says how a content rule fills the payer field.
type payerSource int

const (
	payerNone payerSource = iota
	payerFromText
)

// contentRule matches a form type by marker phrases in uppercased text. A
// rule fires when any anyOf marker is present and every allOf marker is.
// Rules are evaluated in order and the first hit wins, so more specific
// forms must come before forms whose markers are substrings of theirs.
type contentRule struct {
	form       string
	anyOf      []string
	allOf      []string
	payer      payerSource
	fixedPayer string
}

// contentRules is the keyword cascade run after the W-2 and consolidated
// checks. 1098-T precedes 1098 because "1098" is a substring of "1098-T".
func contentRules() []contentRule {
	return []contentRule{
		{
			form:  Form1099R,
			anyOf: []string{"1099-R", "DISTRIBUTIONS FROM PENSIONS"},
			payer: payerFromText,
		},
		{
			form:       FormSSA1099,
			anyOf:      []string{"SSA-1099", "SOCIAL SECURITY BENEFIT"},
			fixedPayer: "Social Security Admin",
		},
		{
			form:  Form1099B,
			anyOf: []string{"1099-B", "PROCEEDS FROM BROKER"},
			payer: payerFromText,
		},
		{
			form:  Form1098T,
			anyOf: []string{"1098-T", "TUITION STATEMENT"},
			payer: payerFromText,
		},
		{
			form:  Form1098,
			allOf: []string{"1098", "MORTGAGE"},
			payer: payerFromText,
		},
		{
			form:  Form1099Q,
			anyOf: []string{"1099-Q", "QUALIFIED EDUCATION"},
			payer: payerFromText,
		},
		{
			form:  Form1099NEC,
			anyOf: []string{"1099-NEC", "NONEMPLOYEE COMPENSATION"},
			payer: payerFromText,
		},
		{
			form:  Form1099MISC,
			anyOf: []string{"1099-MISC"},
			payer: payerFromText,
		},
		{
			form:  Form1099G,
			anyOf: []string{"1099-G", "GOVERNMENT PAYMENTS", "UNEMPLOYMENT COMPENSATION"},
			payer: payerFromText,
		},
		{
			form:  FormK1,
			anyOf: []string{"K-1", "SCHEDULE K-1"},
			payer: payerFromText,
		},
		{
			form:  Form1095,
			anyOf: []string{"1095", "HEALTH COVERAGE"},
		},
		{
			form:  FormPropertyTax,
			anyOf: []string{"PROPERTY TAX", "AD VALOREM", "TAX COLLECTOR"},
		},
	}
}

// filenameRule matches a form type by tokens in the uppercased filename.
type filenameRule struct {
	form   string
	tokens []string
}

// filenameRules run before any content is read: a filename naming its form is
// taken at face value. 1099-Q precedes 1098-T here only to mirror the token
// scan order; 1098-T still precedes the bare 1098 token.
func filenameRules() []filenameRule {
	return []filenameRule{
		{FormW2, []string{"W2", "W-2"}},
		{Form1099INT, []string{"1099-INT", "1099INT"}},
		{Form1099DIV, []string{"1099-DIV", "1099DIV"}},
		{Form1099R, []string{"1099-R", "1099R"}},
		{FormSSA1099, []string{"SSA", "SSI", "SOCIAL SECURITY"}},
		{Form1099B, []string{"1099-B", "1099B"}},
		{Form1099Q, []string{"1099-Q", "1099Q"}},
		{Form1098T, []string{"1098-T", "1098T"}},
		{Form1098, []string{"1098"}},
		{FormK1, []string{"K-1", "K1"}},
	}
}

func compileContent(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?is)"+p))
	}
	return compiled
}
