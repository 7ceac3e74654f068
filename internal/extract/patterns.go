package extract

import "regexp"

// Pattern tables for each form's fields. Order is load-bearing: the most
// specific, known-vendor format comes first and the generic fallback last,
// and the cascade's confidence scoring depends on that order.

// W-2 box pairs. Layouts vary: some exports put values on the line after the
// labels, others interleave the employer EIN or name between labels and
// values.
var (
	w2Box12Patterns = compile(
		`(?s)1\s+wages.*?2\s+federal.*?withheld\s*[\n\r]+([\d,]+\.?\d{2})\s+([\d,]+\.?\d{2})`,
		`(?s)1\s+wages.*?2\s+federal.*?[\n\r]+[\d-]+\s+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`,
	)
	w2Box34Patterns = compile(
		`(?s)3\s+social\s+security\s+wages.*?4\s+social\s+security\s+tax.*?withheld\s*[\n\r]+([\d,]+\.?\d{2})\s+([\d,]+\.?\d{2})`,
		`(?s)3\s+social\s+security\s+wages.*?4\s+social\s+security\s+tax.*?[\n\r]+(?:[A-Z][A-Za-z\s]+)?[\n\r]*([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`,
	)
	w2Box56Patterns = compile(
		`(?s)5\s+medicare\s+wages.*?6\s+medicare\s+tax.*?withheld\s*[\n\r]+([\d,]+\.?\d{2})\s+([\d,]+\.?\d{2})`,
		`(?s)5\s+medicare\s+wages.*?6\s+medicare\s+tax.*?[\n\r]+[\d-]+\s+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`,
		`(?s)5\s+medicare\s+wages.*?6\s+medicare\s+tax.*?[\n\r]+([\d,]+\.?\d*)\s+([\d,]+\.?\d*)`,
	)
	w2EmployerPatterns = compile(
		`c\s+employer.*?name.*?[\n\r]+([A-Z][A-Z0-9\s\.,&-]+(?:LLC|INC|CORP|CO)?)`,
		`employer.*?name.*?ZIP.*?[\n\r]+([A-Z][A-Z0-9\s\.,&-]+(?:LLC|INC|CORP|CO)?)`,
	)
)

// 1099-INT
var (
	int1099Box1Patterns = compile(
		`1-?\s*[-:]?\s*interest\s+income[^0-9]*([\d,]+\.?\d*)`,
		`box\s*1[:\s]+\$?([\d,]+\.?\d*)`,
		`1\s+interest\s+income\s+\$?([\d,]+\.?\d*)`,
	)
	int1099Box4Patterns = compile(
		`4-?\s*[-:]?\s*federal\s+income\s+tax\s+withheld[^0-9]*([\d,]+\.?\d*)`,
		`box\s*4[:\s]+\$?([\d,]+\.?\d*)`,
	)
	int1099Box8Patterns = compile(
		`8-?\s*[-:]?\s*tax-?exempt\s+interest[^0-9]*([\d,]+\.?\d*)`,
		`box\s*8[:\s]+\$?([\d,]+\.?\d*)`,
	)
)

// 1099-DIV
var (
	div1099Box1aPatterns = compile(
		`1a-?\s*[-:]?\s*total\s+ordinary\s+dividends[^0-9]*([\d,]+\.?\d*)`,
		`1a\s+ordinary\s+dividends.*?\$?([\d,]+\.?\d*)`,
		`ordinary\s+dividends.*?\$?([\d,]+\.?\d*)`,
	)
	div1099Box1bPatterns = compile(
		`1b-?\s*[-:]?\s*qualified\s+dividends[^0-9]*([\d,]+\.?\d*)`,
		`1b\s+qualified\s+dividends.*?\$?([\d,]+\.?\d*)`,
		`qualified\s+dividends.*?\$?([\d,]+\.?\d*)`,
	)
	div1099Box2aPatterns = compile(
		`2a-?\s*[-:]?\s*total\s+capital\s+gain[^0-9]*([\d,]+\.?\d*)`,
		`2a\s+total\s+capital\s+gain.*?\$?([\d,]+\.?\d*)`,
	)
	div1099Box3Patterns = compile(
		`3-?\s*[-:]?\s*nondividend\s+distributions[^0-9]*([\d,]+\.?\d*)`,
	)
	div1099Box5Patterns = compile(
		`5-?\s*[-:]?\s*section\s*199A\s+dividends[^0-9]*([\d,]+\.?\d*)`,
	)
	div1099Box7Patterns = compile(
		`7-?\s*[-:]?\s*foreign\s+tax\s+paid[^0-9]*([\d,]+\.?\d*)`,
	)
	div1099Box4Patterns = compile(
		`4-?\s*[-:]?\s*federal\s+income\s+tax\s+withheld[^0-9]*([\d,]+\.?\d*)`,
	)
)

// 1099-R
var (
	r1099Box1Patterns = compile(
		`1\s+gross\s+distribution.*?\$?([\d,]+\.?\d*)`,
		`gross\s+distribution.*?\$?([\d,]+\.?\d*)`,
	)
	r1099Box2aPatterns = compile(
		`2a\s+taxable\s+amount.*?\$?([\d,]+\.?\d*)`,
	)
	r1099Box4Patterns = compile(
		`4\s+federal.*?withheld.*?\$?([\d,]+\.?\d*)`,
	)
	// Case-sensitive: the code class must not swallow lowercase text like
	// the "(s)" in "Distribution code(s)".
	r1099CodePattern = regexp.MustCompile(`7\s+[Dd]istribution\s+[Cc]ode.*?([0-9A-Z]{1,2})`)
)

// SSA-1099
var (
	ssaBox3Patterns = compile(
		`box\s*3.*?benefits\s+paid.*?\$([\d,]+\.?\d*)`,
		`benefits\s+paid\s+in\s+\d{4}\s*\$([\d,]+\.?\d*)`,
		`box\s*3[.\s]+benefits.*?\$([\d,]+\.?\d*)`,
	)
	ssaBox5Patterns = compile(
		`box\s*5.*?net\s+benefits.*?\$([\d,]+\.?\d*)`,
		`net\s+benefits\s+for\s+\d{4}.*?\$([\d,]+\.?\d*)`,
		`benefits\s+for\s+\d{4}\s*\$([\d,]+\.?\d*)`,
	)
	ssaBox6Patterns = compile(
		`box\s*6.*?withheld.*?\$([\d,]+\.?\d*)`,
		`federal.*?withheld.*?\$([\d,]+\.?\d*)`,
	)
)

// 1098 mortgage interest
var (
	m1098LenderPatterns = compileExact(
		`(FIFTH\s+THIRD\s+BANK[,\s]*N\.?A\.?)`,
		`([A-Z]+\s+THIRD\s+BANK[,\s]*N\.?A\.?)`,
		`(?m)^([A-Z][A-Z\s]+BANK[,\s]+N\.A\.)`,
		`([A-Z]+\s+[A-Z]+\s+BANK,?\s*N\.?A\.?)`,
		`([A-Z][A-Z\s]+(?:BANK|MORTGAGE|CREDIT UNION)[A-Za-z\s\.,]*)`,
	)
	m1098Box1Patterns = compile(
		`1mortgageinterest[a-z\(\)/\*]+\n\$([\d,]+\.\d{2})`,
		`\$([\d,]+\.\d{2})\s*\nRECIPIENT`,
		`1\s*mortgage\s*interest.*?\n\$\s*([\d,]+\.\d{2})`,
		`mortgage\s*interest\s*received.*?\$\s*([\d,]+\.\d{2})`,
		`mortgage\s*interest.*?\$([\d,]+\.\d{2})`,
	)
	m1098Box2Patterns = compile(
		`2\s*outstanding\s*mortgage.*?\$\s*([\d,]+\.\d{2})`,
		`outstanding\s*mortgage\s*\n?\s*principal\s*\$\s*([\d,]+\.\d{2})`,
	)
	m1098Box5Patterns = compile(
		`5\s*mortgage\s*insurance.*?\$\s*([\d,]+\.\d{2})`,
	)
	m1098Box10Patterns = compile(
		`10\s*other.*?\$\s*([\d,]+\.\d{2})`,
		`real\s*estate\s*tax.*?\$\s*([\d,]+\.\d{2})`,
	)
	propertyAddressPattern = regexp.MustCompile(
		`(\d+\s+[A-Z]+\s+[A-Z]+\s+(?:BLVD|DR|ST|AVE|RD|LN|CT|WAY|HWY)[A-Za-z0-9\s,]*(?:FL|CA|NY|NJ|TX)\s*\d{5})`)
)

// 1098-T tuition
var (
	t1098SchoolPatterns = compileExact(
		`FILER'?S?\s+(?:name|NAME)[:\s]*\n?\s*([A-Z][A-Za-z0-9\s\.,&-]+(?:UNIVERSITY|COLLEGE|INSTITUTE|SCHOOL))`,
		`([A-Z][A-Za-z\s]+(?:UNIVERSITY|COLLEGE|INSTITUTE|SCHOOL)[A-Za-z\s]*)`,
		`(?m)^([A-Z][A-Z\s]+(?:UNIVERSITY|COLLEGE))`,
	)
	t1098Box1Patterns = compile(
		`1\s*payments\s+received.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*1[:\s]+\$?([\d,]+\.?\d*)`,
		`payments\s+received\s+for\s+qualified.*?\$?\s*([\d,]+\.?\d*)`,
	)
	t1098Box2Patterns = compile(
		`2\s*amounts\s+billed.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*2[:\s]+\$?([\d,]+\.?\d*)`,
	)
	t1098Box4Patterns = compile(
		`4\s*adjustments\s+made.*?prior.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*4[:\s]+\$?([\d,]+\.?\d*)`,
	)
	t1098Box5Patterns = compile(
		`5\s*scholarships\s+or\s+grants.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*5[:\s]+\$?([\d,]+\.?\d*)`,
		`scholarships.*?grants.*?\$?\s*([\d,]+\.?\d*)`,
	)
	t1098HalfTimePattern = regexp.MustCompile(`(?i)box\s*8.*?[Xx✓]|half.?time.*?[Xx✓]`)
	t1098GraduatePattern = regexp.MustCompile(`(?i)box\s*9.*?[Xx✓]|graduate.*?[Xx✓]`)
)

// 1099-Q education distributions
var (
	q1099Box1Patterns = compile(
		`1\s*gross\s+distribution.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*1[:\s]+\$?([\d,]+\.?\d*)`,
		`gross\s+distribution[^$\d]*([\d,]+\.?\d*)`,
	)
	q1099Box2Patterns = compile(
		`2\s*earnings.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*2[:\s]+\$?([\d,]+\.?\d*)`,
	)
	q1099Box3Patterns = compile(
		`3\s*basis.*?\$?\s*([\d,]+\.?\d*)`,
		`box\s*3[:\s]+\$?([\d,]+\.?\d*)`,
	)
	q1099TrusteePattern = regexp.MustCompile(`(?i)box\s*4.*?[Xx✓]|trustee.*?transfer.*?[Xx✓]`)
)

// Schedule K-1
var (
	k1EntityPatterns = compileExact(
		`[Pp]artnership'?s?\s+name.*?\n\s*([A-Z][A-Za-z0-9\s\.,&-]+)`,
		`[Cc]orporation'?s?\s+name.*?\n\s*([A-Z][A-Za-z0-9\s\.,&-]+)`,
		`[Ee]state'?s?\s+or\s+[Tt]rust'?s?\s+name.*?\n\s*([A-Z][A-Za-z0-9\s\.,&-]+)`,
		`Part\s+I[^\n]*\n([A-Z][A-Za-z0-9\s\.,&-]+(?:LLC|LP|LLP|INC|CORP)?)`,
	)
	k1EINPattern = regexp.MustCompile(`[Ee]mployer.*?[Ii]dentification.*?(\d{2}-\d{7})`)

	k1Box1Patterns = compile(
		`1\s*ordinary\s+business\s+income.*?\(?([\d,-]+\.?\d*)\)?`,
		`ordinary\s+business\s+income[^0-9-]*\(?([\d,-]+\.?\d*)\)?`,
	)
	k1Box5Patterns = compile(
		`5\s*interest\s+income[^0-9]*([\d,]+\.?\d*)`,
	)
	k1Box6aPatterns = compile(
		`6a\s*ordinary\s+dividends[^0-9]*([\d,]+\.?\d*)`,
	)
	k1Box9aPatterns = compile(
		`9a\s*net\s+long-?term\s+capital\s+gain[^0-9]*([\d,]+\.?\d*)`,
	)
	k1Box19Patterns = compile(
		`19\s*distributions[^0-9]*([\d,]+\.?\d*)`,
	)
)

// Property tax bills
var (
	countyPattern  = regexp.MustCompile(`([A-Z]+)\s+(?:COUNTY|CO)\b`)
	parcelPatterns = compileExact(
		`PARCEL\s+ACCOUNT\s+NUMBER[^\n]*\n([A-Z]?\d+[-\d]+)`,
		`([R]\d{6}-\d+)`,
	)
	adValoremPatterns = compile(
		`\$([\d,]+\.\d{2})\s*\n?Paid\s*By`,
		`TOTAL\s+MILLAGE\s+AD\s+VALOREM\s*TAXES\s*\n[^\$]*\$([\d,]+\.\d{2})`,
		`AD\s*VALOREM\s*TAXES\s*\$?\s*([\d,]+\.?\d*)`,
		`ADVALOREMTAXES[^\$]*\$([\d,]+\.\d{2})`,
	)
	totalTaxPatterns = compile(
		`COMBINEDTAXES[^\$]*\$([\d,]+\.\d{2})`,
		`COMBINED\s*TAXES[^\$]*\$\s*([\d,]+\.?\d*)`,
		`TOTAL.*?TAXES.*?\$\s*([\d,]+\.?\d*)`,
	)
	taxableValuePattern  = regexp.MustCompile(`(?i)TAXABLE\s+VALUE[^\d]*([\d,]+)`)
	streetAddressPattern = regexp.MustCompile(
		`(\d+\s+[A-Z]+\s+[A-Z]+\s+(?:BLVD|DR|ST|AVE|RD|LN|CT|WAY|HWY|MEMORIAL))`)
)

// Payer names shared by the 1099-family parsers. Form-header patterns are
// more reliable than brand-name sweeps and run first; the sweep patterns run
// against uppercased text.
var (
	payerHeaderPatterns = compileExact(
		`1099-(?:INT|DIV|R|NEC|G)\s*\n\s*([A-Z][A-Za-z0-9\s\.,&-]+?)(?:\s+Form|\s+\d|\n)`,
		`(?m)^([A-Z][A-Z\s\.,]+(?:N\.A\.|BANK|SAVINGS|CREDIT UNION|FINANCIAL|INC|LLC|CORP)\.?)`,
	)
	payerSweepPatterns = compileExact(
		`PAYER'?S?\s+NAME[:\s]*\n?\s*([A-Z][A-Za-z0-9\s\.,&-]+)`,
		`(VANGUARD[A-Z\s]*)`,
		`(FIDELITY[A-Z\s]*)`,
		`(CHASE[A-Z\s]*)`,
		`(SCHWAB[A-Z\s]*)`,
		`(WELLS FARGO[A-Z\s]*)`,
		`(BANK OF AMERICA[A-Z\s]*)`,
		`(CAPITAL ONE[A-Z\s\.]*)`,
		`(MORGAN STANLEY[A-Z\s]*)`,
		`(TD AMERITRADE[A-Z\s]*)`,
		`(E\*?TRADE[A-Z\s]*)`,
	)
)

const maxNameLength = 40
