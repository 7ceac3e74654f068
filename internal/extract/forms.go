package extract

import (
	"regexp"
	"strings"
)

// Parser extracts typed records from document text. It owns the rate table
// used by the W-2 consistency repair and the confidence threshold applied at
// finalize.
type Parser struct {
	rates     RateTable
	threshold int
}

// NewParser creates a parser with the statutory default rates and the default
// auto-populate threshold.
func NewParser() *Parser {
	return &Parser{rates: DefaultRates(), threshold: DefaultThreshold}
}

// NewParserWithRates creates a parser with a caller-supplied rate table, for
// tax years where the statutory rates differ.
func NewParserWithRates(rates RateTable, threshold int) *Parser {
	return &Parser{rates: rates, threshold: threshold}
}

// Supported reports whether a form type has a dedicated parser behind Parse.
func Supported(formType string) bool {
	switch formType {
	case "W-2", "1099-INT", "1099-DIV", "1099-R", "SSA-1099",
		"1098", "1098-T", "1099-Q", "K-1", "Property Tax":
		return true
	}
	return false
}

// Parse dispatches to the form-specific parser for the given form type.
// Unsupported form types yield a finalized empty record rather than an error;
// classification without extraction support is a normal state.
func (p *Parser) Parse(formType, text, source string, isOCR bool) *Record {
	switch formType {
	case "W-2":
		return p.ParseW2(text, source, isOCR)
	case "1099-INT":
		return p.Parse1099INT(text, source, isOCR)
	case "1099-DIV":
		return p.Parse1099DIV(text, source, isOCR)
	case "1099-R":
		return p.Parse1099R(text, source, isOCR)
	case "SSA-1099":
		return p.ParseSSA1099(text, source, isOCR)
	case "1098":
		return p.Parse1098(text, source, isOCR)
	case "1098-T":
		return p.Parse1098T(text, source, isOCR)
	case "1099-Q":
		return p.Parse1099Q(text, source, isOCR)
	case "K-1":
		return p.ParseK1(text, source, isOCR)
	case "Property Tax":
		return p.ParsePropertyTax(text, source, isOCR)
	default:
		rec := NewRecord(formType, source, isOCR)
		rec.Finalize(p.threshold)
		return rec
	}
}

// ParseW2 extracts a W-2 wage statement. Box pairs are pulled together since
// their values sit side by side in every layout, then run through the
// rate-based consistency repair before math validation.
func (p *Parser) ParseW2(text, source string, isOCR bool) *Record {
	rec := NewRecord("W-2", source, isOCR)

	wages, fedTax, _ := AmountPair(text, w2Box12Patterns)
	ssWages, ssTax, _ := AmountPair(text, w2Box34Patterns)
	medWages, medTax, _ := AmountPair(text, w2Box56Patterns)

	ss, medicare := p.rates.RepairW2Pairs(
		WagePair{Wages: ssWages, Tax: ssTax},
		WagePair{Wages: medWages, Tax: medTax},
		WagePair{Wages: wages, Tax: fedTax},
	)

	rec.AddTextField("employer_name", p.w2Employer(text, source))
	rec.AddField("box1_wages", wages, foundQuality("box1_wages", wages > 0, 85))
	rec.AddField("box2_fed_withholding", fedTax, foundQuality("box2_fed_withholding", true, 80))
	rec.AddField("box3_ss_wages", ss.Wages, foundQuality("box3_ss_wages", ss.Wages > 0, 85))
	rec.AddField("box4_ss_tax", ss.Tax, foundQuality("box4_ss_tax", ss.Tax > 0, 85))
	rec.AddField("box5_medicare_wages", medicare.Wages, foundQuality("box5_medicare_wages", medicare.Wages > 0, 85))
	rec.AddField("box6_medicare_tax", medicare.Tax, foundQuality("box6_medicare_tax", medicare.Tax > 0, 85))

	rec.CheckRequired("employer_name", "box1_wages")

	if ss.populated() {
		rec.CheckMath("SS Tax = 6.2% of SS Wages", ss.Wages*p.rates.SocialSecurity, ss.Tax, 1.0)
	}
	if medicare.populated() {
		rec.CheckMath("Medicare Tax = 1.45% of Medicare Wages", medicare.Wages*p.rates.Medicare, medicare.Tax, 1.0)
	}

	rec.Finalize(p.threshold)
	return rec
}

// w2Employer finds the employer name, falling back to a code embedded in the
// filename when the form text yields nothing usable.
func (p *Parser) w2Employer(text, source string) string {
	for _, pattern := range w2EmployerPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		// Stop at an address line or embedded numbers.
		name = strings.TrimSpace(regexp.MustCompile(`[\n\r]|\d{4,}`).Split(name, 2)[0])
		if len(name) > 3 && !regexp.MustCompile(`\d+\.\d{2}`).MatchString(name) {
			return truncateName(name, 60)
		}
	}

	if m := regexp.MustCompile(`(?i)W-?2[-_]?([A-Za-z]+)`).FindStringSubmatch(source); m != nil {
		return m[1]
	}
	return ""
}

// Parse1099INT extracts a 1099-INT interest statement.
func (p *Parser) Parse1099INT(text, source string, isOCR bool) *Record {
	rec := NewRecord("1099-INT", source, isOCR)

	rec.AddTextField("payer_name", PayerName(text))

	interest, q1 := Amount(text, int1099Box1Patterns, "box1_interest")
	rec.AddField("box1_interest", interest, q1)

	withheld, q4 := Amount(text, int1099Box4Patterns, "box4_fed_withholding")
	rec.AddField("box4_fed_withholding", withheld, q4)

	exempt, q8 := Amount(text, int1099Box8Patterns, "box8_tax_exempt_interest")
	rec.AddField("box8_tax_exempt_interest", exempt, q8)

	rec.CheckRequired("payer_name", "box1_interest")
	rec.Finalize(p.threshold)
	return rec
}

// Parse1099DIV extracts a 1099-DIV dividend statement.
func (p *Parser) Parse1099DIV(text, source string, isOCR bool) *Record {
	rec := NewRecord("1099-DIV", source, isOCR)

	rec.AddTextField("payer_name", PayerName(text))

	for _, f := range []struct {
		name     string
		patterns []*regexp.Regexp
	}{
		{"box1a_ordinary_dividends", div1099Box1aPatterns},
		{"box1b_qualified_dividends", div1099Box1bPatterns},
		{"box2a_total_cap_gain", div1099Box2aPatterns},
		{"box3_nondiv_dist", div1099Box3Patterns},
		{"box4_fed_withholding", div1099Box4Patterns},
		{"box5_sec199a", div1099Box5Patterns},
		{"box7_foreign_tax", div1099Box7Patterns},
	} {
		value, q := Amount(text, f.patterns, f.name)
		rec.AddField(f.name, value, q)
	}

	// Qualified dividends are a subset of ordinary dividends on a valid form.
	ordinary, okOrd := rec.Data["box1a_ordinary_dividends"].(float64)
	qualified, okQual := rec.Data["box1b_qualified_dividends"].(float64)
	if okOrd && okQual && ordinary > 0 && qualified > ordinary {
		rec.CheckMath("Qualified <= Ordinary Dividends", ordinary, qualified, 0.01)
	}

	rec.CheckRequired("payer_name", "box1a_ordinary_dividends")
	rec.Finalize(p.threshold)
	return rec
}

// Parse1099R extracts a 1099-R retirement distribution statement.
func (p *Parser) Parse1099R(text, source string, isOCR bool) *Record {
	rec := NewRecord("1099-R", source, isOCR)

	rec.AddTextField("payer_name", PayerName(text))

	gross, q1 := Amount(text, r1099Box1Patterns, "box1_gross_distribution")
	rec.AddField("box1_gross_distribution", gross, q1)

	taxable, q2a := Amount(text, r1099Box2aPatterns, "box2a_taxable_amount")
	rec.AddField("box2a_taxable_amount", taxable, q2a)

	withheld, q4 := Amount(text, r1099Box4Patterns, "box4_fed_withholding")
	rec.AddField("box4_fed_withholding", withheld, q4)

	code := ""
	if m := r1099CodePattern.FindStringSubmatch(text); m != nil {
		code = m[1]
	}
	rec.AddTextField("box7_distribution_code", code)

	// Taxable amount can never exceed the gross distribution.
	if gross > 0 && taxable > gross {
		rec.CheckMath("Taxable <= Gross Distribution", gross, taxable, 0.01)
	}

	rec.CheckRequired("payer_name", "box1_gross_distribution")
	rec.Finalize(p.threshold)
	return rec
}

// ParseSSA1099 extracts an SSA-1099 Social Security benefit statement.
func (p *Parser) ParseSSA1099(text, source string, isOCR bool) *Record {
	rec := NewRecord("SSA-1099", source, isOCR)

	rec.AddTextField("description", "Social Security Benefits")

	benefits, q3 := Amount(text, ssaBox3Patterns, "box3_benefits_paid")
	rec.AddField("box3_benefits_paid", benefits, q3)

	net, q5 := Amount(text, ssaBox5Patterns, "box5_net_benefits")
	// Net benefits equal benefits paid when nothing was repaid.
	if !q5.Found && benefits > 0 {
		net = benefits
		q5 = foundQuality("box5_net_benefits", true, q3.Confidence)
	}
	rec.AddField("box5_net_benefits", net, q5)

	withheld, q6 := Amount(text, ssaBox6Patterns, "box6_fed_withholding")
	rec.AddField("box6_fed_withholding", withheld, q6)

	rec.CheckRequired("box5_net_benefits")
	rec.Finalize(p.threshold)
	return rec
}

// Parse1098 extracts a 1098 mortgage interest statement.
func (p *Parser) Parse1098(text, source string, isOCR bool) *Record {
	rec := NewRecord("1098", source, isOCR)

	rec.AddTextField("lender_name", lenderName(text))

	interest, q1 := Amount(text, m1098Box1Patterns, "box1_mortgage_interest")
	rec.AddField("box1_mortgage_interest", interest, q1)

	principal, q2 := Amount(text, m1098Box2Patterns, "box2_outstanding_principal")
	rec.AddField("box2_outstanding_principal", principal, q2)

	insurance, q5 := Amount(text, m1098Box5Patterns, "box5_mortgage_insurance")
	rec.AddField("box5_mortgage_insurance", insurance, q5)

	propertyTax, q10 := Amount(text, m1098Box10Patterns, "box10_property_tax")
	rec.AddField("box10_property_tax", propertyTax, q10)

	address := ""
	if m := propertyAddressPattern.FindStringSubmatch(text); m != nil {
		address = truncateName(strings.TrimSpace(m[1]), 80)
	}
	rec.AddTextField("property_address", address)

	rec.CheckRequired("lender_name", "box1_mortgage_interest")
	rec.Finalize(p.threshold)
	return rec
}

// Parse1098T extracts a 1098-T tuition statement.
func (p *Parser) Parse1098T(text, source string, isOCR bool) *Record {
	rec := NewRecord("1098-T", source, isOCR)

	school := ""
	for _, pattern := range t1098SchoolPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(strings.SplitN(m[1], "\n", 2)[0])
			if len(name) > 5 {
				school = truncateName(name, 60)
				break
			}
		}
	}
	rec.AddTextField("school_name", school)

	payments, q1 := Amount(text, t1098Box1Patterns, "box1_payments_received")
	rec.AddField("box1_payments_received", payments, q1)

	billed, q2 := Amount(text, t1098Box2Patterns, "box2_amounts_billed")
	rec.AddField("box2_amounts_billed", billed, q2)

	adjustments, q4 := Amount(text, t1098Box4Patterns, "box4_adjustments_prior_year")
	rec.AddField("box4_adjustments_prior_year", adjustments, q4)

	scholarships, q5 := Amount(text, t1098Box5Patterns, "box5_scholarships")
	rec.AddField("box5_scholarships", scholarships, q5)

	rec.AddFlag("box8_half_time", t1098HalfTimePattern.MatchString(text))
	rec.AddFlag("box9_graduate", t1098GraduatePattern.MatchString(text))

	rec.CheckRequired("school_name")
	rec.Finalize(p.threshold)
	return rec
}

// Parse1099Q extracts a 1099-Q education program distribution.
func (p *Parser) Parse1099Q(text, source string, isOCR bool) *Record {
	rec := NewRecord("1099-Q", source, isOCR)

	rec.AddTextField("payer_name", PayerName(text))

	gross, q1 := Amount(text, q1099Box1Patterns, "box1_gross_distribution")
	rec.AddField("box1_gross_distribution", gross, q1)

	earnings, q2 := Amount(text, q1099Box2Patterns, "box2_earnings")
	rec.AddField("box2_earnings", earnings, q2)

	basis, q3 := Amount(text, q1099Box3Patterns, "box3_basis")
	rec.AddField("box3_basis", basis, q3)

	rec.AddFlag("box4_trustee_transfer", q1099TrusteePattern.MatchString(text))

	// Gross distribution should decompose into earnings plus basis.
	if gross > 0 && earnings > 0 && basis > 0 {
		rec.CheckMath("Earnings + Basis = Gross Distribution", gross, earnings+basis, 1.0)
	}

	rec.CheckRequired("payer_name", "box1_gross_distribution")
	rec.Finalize(p.threshold)
	return rec
}

// ParseK1 extracts a Schedule K-1 (1065, 1120S or 1041).
func (p *Parser) ParseK1(text, source string, isOCR bool) *Record {
	rec := NewRecord("K-1", source, isOCR)

	upper := strings.ToUpper(text)
	k1Type := ""
	switch {
	case strings.Contains(upper, "FORM 1065") || strings.Contains(upper, "PARTNER'S SHARE"):
		k1Type = "1065"
	case strings.Contains(upper, "FORM 1120S") || strings.Contains(upper, "FORM 1120-S") ||
		strings.Contains(upper, "SHAREHOLDER'S SHARE"):
		k1Type = "1120S"
	case strings.Contains(upper, "FORM 1041") || strings.Contains(upper, "BENEFICIARY'S SHARE"):
		k1Type = "1041"
	}
	rec.AddTextField("k1_type", k1Type)

	entity := ""
	for _, pattern := range k1EntityPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			entity = truncateName(strings.TrimSpace(m[1]), 60)
			break
		}
	}
	rec.AddTextField("entity_name", entity)

	ein := ""
	if m := k1EINPattern.FindStringSubmatch(text); m != nil {
		ein = m[1]
	}
	rec.AddTextField("entity_ein", ein)

	for _, f := range []struct {
		name     string
		patterns []*regexp.Regexp
	}{
		{"box1_ordinary_income", k1Box1Patterns},
		{"box5_interest_income", k1Box5Patterns},
		{"box6a_ordinary_dividends", k1Box6aPatterns},
		{"box9a_net_lt_cap_gain", k1Box9aPatterns},
		{"box19_distributions", k1Box19Patterns},
	} {
		value, q := Amount(text, f.patterns, f.name)
		rec.AddField(f.name, value, q)
	}

	rec.CheckRequired("entity_name")
	rec.Finalize(p.threshold)
	return rec
}

// ParsePropertyTax extracts a property tax bill.
func (p *Parser) ParsePropertyTax(text, source string, isOCR bool) *Record {
	rec := NewRecord("Property Tax", source, isOCR)

	county := ""
	if m := countyPattern.FindStringSubmatch(text); m != nil {
		county = m[1] + " COUNTY"
	}
	rec.AddTextField("county", county)

	parcel := ""
	for _, pattern := range parcelPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			parcel = m[1]
			break
		}
	}
	rec.AddTextField("parcel_number", parcel)

	adValorem, qAV := Amount(text, adValoremPatterns, "ad_valorem_taxes")
	total, qTotal := Amount(text, totalTaxPatterns, "total_taxes")

	// Bills without a millage breakdown only show the combined figure.
	if !qAV.Found && total > 0 {
		adValorem = total
		qAV = foundQuality("ad_valorem_taxes", true, qTotal.Confidence)
	}
	rec.AddField("ad_valorem_taxes", adValorem, qAV)
	rec.AddField("total_taxes", total, qTotal)

	taxable := 0.0
	if m := taxableValuePattern.FindStringSubmatch(text); m != nil {
		if v, err := parseAmount(m[1]); err == nil {
			taxable = v
		}
	}
	rec.AddField("taxable_value", taxable, foundQuality("taxable_value", taxable > 0, 80))

	address := ""
	if m := streetAddressPattern.FindStringSubmatch(text); m != nil {
		address = m[1]
	}
	rec.AddTextField("property_address", address)

	rec.CheckRequired("ad_valorem_taxes")
	rec.Finalize(p.threshold)
	return rec
}

// PayerName finds a payer or institution name for 1099-family forms,
// rejecting matches that are really form instructions. The classifier uses it
// too, so a document's payer is named consistently whether or not its form
// type has a full parser.
func PayerName(text string) string {
	for _, pattern := range payerHeaderPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := truncateName(strings.TrimSpace(m[1]), maxNameLength)
		if len(name) > 3 && !containsGarbage(name) {
			return name
		}
	}

	upper := strings.ToUpper(text)
	for _, pattern := range payerSweepPatterns {
		m := pattern.FindStringSubmatch(upper)
		if m == nil {
			continue
		}
		name := truncateName(strings.TrimSpace(m[1]), maxNameLength)
		if !containsGarbage(name) {
			return name
		}
	}
	return ""
}

func lenderName(text string) string {
	for _, pattern := range m1098LenderPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(m[1], "\n", 2)[0])
		if len(name) > 5 && !containsGarbage(name) {
			return truncateName(name, 60)
		}
	}
	return ""
}

// garbageWords invalidate a name candidate: they mean the pattern matched
// form boilerplate instead of an institution name.
var garbageWords = []string{
	"zip", "foreign", "postal", "telephone", "province", "omb",
	"payer", "form ", "instructions", "copy b", "recipient",
}

func containsGarbage(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range garbageWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func truncateName(name string, limit int) string {
	if len(name) > limit {
		return name[:limit]
	}
	return name
}

func foundQuality(field string, found bool, confidence int) FieldQuality {
	q := FieldQuality{Field: field, Found: found}
	if found {
		q.Confidence = confidence
	}
	return q
}
