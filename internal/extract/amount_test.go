package extract

import (
	"testing"
)

func TestAmountFirstPatternWins(t *testing.T) {
	patterns := compile(
		`interest\s+income\s+\$([\d,]+\.\d{2})`,
		`\$([\d,]+\.\d{2})`,
	)

	text := "1 Interest income $1,234.56\nOther $9,999.99"
	value, quality := Amount(text, patterns, "box1_interest")

	if value != 1234.56 {
		t.Errorf("Expected 1234.56, got %f", value)
	}
	if !quality.Found {
		t.Error("Expected field to be found")
	}
	if quality.Attempts != 1 {
		t.Errorf("Expected 1 attempt, got %d", quality.Attempts)
	}
	if quality.Confidence != baseConfidence {
		t.Errorf("Expected confidence %d for first pattern, got %d", baseConfidence, quality.Confidence)
	}
}

func TestAmountLaterPatternLowersConfidence(t *testing.T) {
	patterns := compile(
		`interest\s+income\s+\$([\d,]+\.\d{2})`,
		`box\s*1[:\s]+\$([\d,]+\.\d{2})`,
		`\$([\d,]+\.\d{2})`,
	)

	value, quality := Amount("something $500.00", patterns, "box1_interest")

	if value != 500.00 {
		t.Errorf("Expected 500.00, got %f", value)
	}
	if quality.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", quality.Attempts)
	}
	want := baseConfidence - 2*attemptPenalty
	if quality.Confidence != want {
		t.Errorf("Expected confidence %d, got %d", want, quality.Confidence)
	}
}

func TestAmountNotFound(t *testing.T) {
	patterns := compile(`interest\s+income\s+\$([\d,]+\.\d{2})`)

	value, quality := Amount("nothing relevant here", patterns, "box1_interest")

	if value != 0 {
		t.Errorf("Expected 0 for missing field, got %f", value)
	}
	if quality.Found {
		t.Error("Expected field not found")
	}
	if quality.Confidence != 0 {
		t.Errorf("Expected 0 confidence when not found, got %d", quality.Confidence)
	}
}

func TestAmountPenalties(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantValue  float64
		wantConf   int
		wantIssues int
	}{
		{
			name:       "negative value",
			text:       "wages -500.00",
			wantValue:  -500.00,
			wantConf:   baseConfidence - negativePenalty,
			wantIssues: 1,
		},
		{
			name:       "implausibly large",
			text:       "wages 99,000,000.00",
			wantValue:  99000000.00,
			wantConf:   baseConfidence - magnitudePenalty,
			wantIssues: 1,
		},
		{
			name:       "bad decimals",
			text:       "wages 500.5",
			wantValue:  500.5,
			wantConf:   baseConfidence - decimalPenalty,
			wantIssues: 1,
		},
	}

	patterns := compile(`wages\s+(-?[\d,]+\.?\d*)`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, quality := Amount(tt.text, patterns, "wages")
			if value != tt.wantValue {
				t.Errorf("Expected value %f, got %f", tt.wantValue, value)
			}
			if quality.Confidence != tt.wantConf {
				t.Errorf("Expected confidence %d, got %d", tt.wantConf, quality.Confidence)
			}
			if len(quality.Issues) != tt.wantIssues {
				t.Errorf("Expected %d issues, got %d: %v", tt.wantIssues, len(quality.Issues), quality.Issues)
			}
		})
	}
}

func TestAmountConfidenceFloor(t *testing.T) {
	// Six fallbacks deep with a negative value: the attempt floor applies
	// before the penalty and the final floor after.
	patterns := compile(
		`aaa(-[\d.]+)`, `bbb(-[\d.]+)`, `ccc(-[\d.]+)`,
		`ddd(-[\d.]+)`, `eee(-[\d.]+)`, `val\s+(-[\d.]+)`,
	)

	_, quality := Amount("val -100.00", patterns, "field")

	want := attemptFloor - negativePenalty
	if want < confidenceFloor {
		want = confidenceFloor
	}
	if quality.Confidence != want {
		t.Errorf("Expected floored confidence %d, got %d", want, quality.Confidence)
	}
	if quality.Confidence < confidenceFloor {
		t.Errorf("Confidence %d below the final floor %d", quality.Confidence, confidenceFloor)
	}
}

func TestAmountPair(t *testing.T) {
	patterns := compile(
		`(?s)1\s+wages.*?2\s+federal.*?withheld\s*[\n\r]+([\d,]+\.?\d{2})\s+([\d,]+\.?\d{2})`,
	)

	text := "1 Wages, tips, other comp. 2 Federal income tax withheld\n85,000.00 12,500.00"
	first, second, ok := AmountPair(text, patterns)

	if !ok {
		t.Fatal("Expected pair to be found")
	}
	if first != 85000.00 {
		t.Errorf("Expected 85000.00, got %f", first)
	}
	if second != 12500.00 {
		t.Errorf("Expected 12500.00, got %f", second)
	}
}

func TestAmountPairNotFound(t *testing.T) {
	patterns := compile(`(?s)1\s+wages.*?([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`)

	_, _, ok := AmountPair("no boxes here", patterns)
	if ok {
		t.Error("Expected no pair from unrelated text")
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1,234.56", 1234.56},
		{"$500.00", 500.00},
		{" 42 ", 42},
		{"-1,000.00", -1000.00},
	}

	for _, tt := range tests {
		got, err := parseAmount(tt.raw)
		if err != nil {
			t.Errorf("parseAmount(%q): %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseAmount(%q) = %f, want %f", tt.raw, got, tt.want)
		}
	}

	if _, err := parseAmount("not a number"); err == nil {
		t.Error("Expected error for non-numeric input")
	}
}
