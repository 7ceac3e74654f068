package classify

// Form type names used throughout classification, sorting and extraction
// dispatch. These are display categories, not IRS form codes: consolidated
// brokerage statements still resolve to exactly one of them.
const (
	FormW2          = "W-2"
	Form1099INT     = "1099-INT"
	Form1099DIV     = "1099-DIV"
	Form1099R       = "1099-R"
	FormSSA1099     = "SSA-1099"
	Form1099B       = "1099-B"
	Form1098        = "1098"
	Form1098T       = "1098-T"
	Form1099Q       = "1099-Q"
	Form1099NEC     = "1099-NEC"
	Form1099MISC    = "1099-MISC"
	Form1099G       = "1099-G"
	FormK1          = "K-1"
	Form1095        = "1095"
	FormPropertyTax = "Property Tax"
	Form1099Other   = "1099-Other"
	FormOther       = "Other"
	FormOtherPhoto  = "Other (Photo)"
	FormOtherOffice = "Other (Office)"
)

// PriorityUnclassified sorts pages and files nothing could classify after
// everything else.
const PriorityUnclassified = 99

// Classification is the result of classifying one document or page group.
// Lower priority sorts earlier in the assembled workpaper order.
type Classification struct {
	FormType string `json:"form_type"`
	Payer    string `json:"payer,omitempty"`
	Priority int    `json:"priority"`
}

// Unclassified reports whether classification produced no form type.
func (c Classification) Unclassified() bool {
	return c.FormType == ""
}

// Origin records where a document came from before it entered the pipeline.
// Unclassifiable documents sort by origin: photo captures land after other
// uncategorized files, office-suite conversions after those.
type Origin string

const (
	OriginOriginal Origin = "original"
	OriginImage    Origin = "image"
	OriginOffice   Origin = "office"
)

// Document is one sortable unit: a whole file, or a page range split out of a
// multi-form file. Pages is nil for whole files.
type Document struct {
	Path  string `json:"path"`
	Pages []int  `json:"pages,omitempty"`
	Classification
}

// PageGroup is a run of consecutive pages sharing one classification inside a
// multi-form file.
type PageGroup struct {
	Pages []int `json:"pages"`
	Classification
}

// priorities maps each form type to its workpaper sort position. Missing
// entries fall back to PriorityUnclassified.
var priorities = map[string]int{
	FormW2:          1,
	Form1099INT:     2,
	Form1099DIV:     3,
	Form1099R:       4,
	FormSSA1099:     5,
	Form1099B:       6,
	Form1098:        7,
	Form1098T:       7,
	Form1099Q:       8,
	Form1099NEC:     8,
	Form1099MISC:    8,
	Form1099G:       8,
	FormK1:          8,
	Form1099Other:   8,
	Form1095:        9,
	FormPropertyTax: 9,
	FormOther:       9,
	FormOtherPhoto:  10,
	FormOtherOffice: 11,
}

// Priority returns the sort position for a form type.
func Priority(formType string) int {
	if p, ok := priorities[formType]; ok {
		return p
	}
	return PriorityUnclassified
}
