package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// Amount extracts a dollar amount from text by trying patterns in order. The
// first pattern whose first capture group parses as a number wins; pattern
// order encodes how specific each format is, so confidence decreases with
// every pattern the cascade has to fall through. A value that matches but
// fails to parse is treated as a non-match and the cascade continues.
//
// When nothing matches, the returned value is 0 and the quality reports
// Found=false with zero confidence. No-match is a normal negative result,
// never an error.
func Amount(text string, patterns []*regexp.Regexp, field string) (float64, FieldQuality) {
	quality := FieldQuality{Field: field}

	for attempt, pattern := range patterns {
		quality.Attempts = attempt + 1

		m := pattern.FindStringSubmatch(text)
		if m == nil || len(m) < 2 {
			continue
		}

		raw := m[1]
		value, err := parseAmount(raw)
		if err != nil {
			continue
		}

		quality.Found = true
		quality.RawMatch = raw

		confidence := baseConfidence - attempt*attemptPenalty
		if confidence < attemptFloor {
			confidence = attemptFloor
		}

		if value < 0 {
			quality.Issues = append(quality.Issues, "Negative value")
			confidence -= negativePenalty
		}
		if value > magnitudeLimit {
			quality.Issues = append(quality.Issues, "Unusually high value")
			confidence -= magnitudePenalty
		}
		if cleaned := cleanAmount(raw); strings.Contains(cleaned, ".") {
			frac := cleaned[strings.LastIndex(cleaned, ".")+1:]
			if len(frac) != 2 {
				quality.Issues = append(quality.Issues, "Unusual decimal places")
				confidence -= decimalPenalty
			}
		}

		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}
		quality.Confidence = confidence
		return value, quality
	}

	return 0, quality
}

// AmountPair extracts two adjacent dollar amounts, such as a W-2 wages/tax box
// pair, using patterns whose last two capture groups hold the values. Earlier
// groups may exist for intervening text and are ignored.
func AmountPair(text string, patterns []*regexp.Regexp) (first, second float64, ok bool) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil || len(m) < 3 {
			continue
		}

		a, errA := parseAmount(m[len(m)-2])
		b, errB := parseAmount(m[len(m)-1])
		if errA != nil || errB != nil {
			continue
		}
		return a, b, true
	}
	return 0, 0, false
}

func cleanAmount(raw string) string {
	s := strings.ReplaceAll(raw, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	return strings.TrimSpace(s)
}

func parseAmount(raw string) (float64, error) {
	return strconv.ParseFloat(cleanAmount(raw), 64)
}

// compile turns raw pattern strings into case-insensitive regexps. Pattern
// tables are package data; a bad pattern is a programmer error and panics at
// init rather than being skipped silently.
func compile(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile("(?i)"+p))
	}
	return compiled
}

// compileExact compiles patterns without forcing case-insensitivity. Name
// patterns rely on upper-case character classes to find institution names and
// must stay case-sensitive.
func compileExact(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}
