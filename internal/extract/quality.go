package extract

// Confidence scoring constants. Scores are heuristic trust values in [0,100],
// not probabilities.
const (
	// Cascade scoring: a first-pattern match scores full confidence, each
	// later pattern costs a step, floored before issue penalties are applied.
	baseConfidence      = 100
	attemptPenalty      = 15
	attemptFloor        = 40
	confidenceFloor     = 10
	textFieldConfidence = 80

	// Issue penalties for matched numeric values.
	negativePenalty  = 30
	magnitudePenalty = 20
	decimalPenalty   = 10

	// Values above this are treated as suspect regardless of pattern quality.
	magnitudeLimit = 10_000_000

	// OCR-derived text is categorically less trustworthy: matched fields are
	// capped individually and the whole record is capped on finalize.
	ocrFieldCap   = 70
	ocrOverallCap = 75

	missingRequiredPenalty = 10
	mathErrorPenalty       = 15

	// DefaultThreshold is the overall confidence below which a record is
	// marked as not safe to auto-populate downstream.
	DefaultThreshold = 60
)

// FieldQuality describes how trustworthy a single extracted field is.
type FieldQuality struct {
	Field      string   `json:"field"`
	Found      bool     `json:"found"`
	Attempts   int      `json:"pattern_attempts"`
	Confidence int      `json:"confidence"`
	RawMatch   string   `json:"raw_match,omitempty"`
	Issues     []string `json:"issues,omitempty"`
}

// MathCheck records a violated arithmetic relationship between fields, such as
// a withholding figure that does not match its statutory rate.
type MathCheck struct {
	Name       string  `json:"check"`
	Expected   float64 `json:"expected"`
	Actual     float64 `json:"actual"`
	Difference float64 `json:"difference"`
}
