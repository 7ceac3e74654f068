package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	TaxDocClassifyFileDescription = `Classify a tax document PDF by form type, detecting multi-form files.

**When to use:** Need to know what kind of tax form a PDF contains before extracting data or filing it.

**Why it's useful:** Combines filename tokens with content markers, so a file named "scan-003.pdf" still comes back as a W-2, and a combined mailing splits into per-form page groups.

**Examples:**
• Identify a scan: "Classify scan-003.pdf from the client upload folder"
• Detect a combined mailing: "Classify brokerage-package.pdf to see if it holds both a 1099-DIV and a 1099-B"
• Route consolidated statements: "Classify fidelity-statement.pdf to decide between 1099-DIV and 1099-INT treatment"

**Common workflows:**
1. Intake Triage: Classify file → Check form type → Route to the right preparer
2. Multi-form Handling: Classify file → Inspect page groups → Extract each group separately
3. Scan Review: Classify file → Check OCR flag → Queue scanned documents for OCR

**Best practices:** Check the OCR notice in the response; a scanned document classifies by filename only and needs OCR before field extraction.`

	TaxDocSortDirectoryDescription = `Classify every PDF in a directory and return them in workpaper order.

**When to use:** A client folder full of unsorted PDFs needs to become an ordered workpaper set.

**Why it's useful:** Applies the standard workpaper priority (W-2 first, then 1099-INT, 1099-DIV, retirement, and so on down to unclassified scans), splits multi-form files into page groups, and reroutes converted photos and office documents to the back.

**Examples:**
• Prepare a return: "Sort /tax/clients/smith-2025 into workpaper order"
• Audit a drop folder: "Sort the upload directory and list anything unclassified"
• Pre-assembly check: "Sort the folder and confirm every expected 1099 is present"

**Common workflows:**
1. Workpaper Assembly: Sort directory → Review order → Combine into the workpaper binder
2. Completeness Check: Sort directory → Compare against the expected-documents list → Chase missing forms
3. Intake Cleanup: Sort directory → Pull unclassified files → Classify by hand

**Best practices:** Unreadable files are skipped and listed, not fatal; review the skipped list rather than assuming the sweep saw everything.`

	TaxDocExtractFieldsDescription = `Extract typed field values with a per-field quality report from a tax form PDF.

**When to use:** Need the actual box values (wages, withholding, interest, dividends) from a classified form, with enough quality signal to decide whether they can flow into tax software unreviewed.

**Why it's useful:** Every field carries a confidence score from the pattern cascade, W-2 wage/tax pairs are repaired when a layout transposed them, and statutory rate checks catch values that cannot be right.

**Examples:**
• Populate a return: "Extract fields from w2-acme.pdf and auto-populate if confidence allows"
• Verify a 1099-R: "Extract grosvenor-1099r.pdf and check the distribution code"
• Override classification: "Extract statement.pdf as 1099-INT when the classifier is unsure"

**Common workflows:**
1. Auto-Population: Extract fields → Check auto-populate verdict → Import or queue for review
2. Review Queue: Extract fields → Inspect low-confidence fields → Correct by hand
3. Math Validation: Extract fields → Check rate-based math errors → Investigate mismatches

**Best practices:** Treat auto_populate=false as a hard review gate; math errors block auto-population no matter how high the confidence is.`

	TaxDocWriteChecksheetDescription = `Sweep a directory, extract every supported form and export a checksheet workbook.

**When to use:** End of intake: the preparer wants one spreadsheet summarizing every document, its extracted values and what still needs eyes.

**Why it's useful:** Produces a Summary sheet in workpaper order plus one sheet per extracted record, with review rows highlighted and low-confidence fields annotated, so nothing silently flows into the return.

**Examples:**
• Client package: "Write a checksheet for /tax/clients/smith-2025 to review.xlsx"
• Daily intake: "Sweep the scan folder and refresh checksheet.xlsx"
• Handoff: "Export the checksheet so the reviewer sees every math error in one place"

**Common workflows:**
1. Preparer Handoff: Write checksheet → Reviewer works the highlighted rows → Sign off
2. Data Entry: Write checksheet → Import auto-populate rows → Key the rest manually
3. Quality Trend: Write checksheet per batch → Track confidence over time → Tune the scan pipeline

**Best practices:** Highlighted rows mean the record failed the confidence threshold or a math check; the data is still in the workbook, it is just not safe to import blind.`
)
