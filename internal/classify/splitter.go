package classify

import "strings"

// minPageTextLen is the threshold below which a page is treated as carrying
// no classifiable text, such as a blank back side or an image-only scan.
const minPageTextLen = 50

// minSplitPages is the page count above which per-page classification is
// worth attempting. One- and two-page files are always a single document.
const minSplitPages = 3

// SplitPages classifies each page of a multi-page document and groups
// consecutive pages by form type. It returns nil when the document should be
// treated as a single unit: too few pages, or at most one distinct form type
// across all pages. Pages with no classifiable text fold into the group that
// is open when they appear, so the groups always partition the page range.
func (c *Classifier) SplitPages(pages []string) []PageGroup {
	if len(pages) < minSplitPages {
		return nil
	}

	classes := make([]Classification, len(pages))
	for i, text := range pages {
		if len(strings.TrimSpace(text)) < minPageTextLen {
			classes[i] = Classification{Priority: PriorityUnclassified}
			continue
		}
		classes[i] = c.ClassifyContent(text)
	}

	distinct := make(map[string]bool)
	for _, cl := range classes {
		if !cl.Unclassified() {
			distinct[cl.FormType] = true
		}
	}
	if len(distinct) <= 1 {
		return nil
	}

	var groups []PageGroup
	current := PageGroup{Pages: []int{0}, Classification: classes[0]}

	for i := 1; i < len(classes); i++ {
		cl := classes[i]
		switch {
		case cl.Unclassified():
			current.Pages = append(current.Pages, i)
		case cl.FormType == current.FormType:
			current.Pages = append(current.Pages, i)
			if current.Payer == "" && cl.Payer != "" {
				current.Payer = cl.Payer
			}
		default:
			groups = append(groups, sealGroup(current))
			current = PageGroup{Pages: []int{i}, Classification: cl}
		}
	}
	groups = append(groups, sealGroup(current))

	return groups
}

// sealGroup renames a group of pages nothing could classify: it still needs
// a slot in the sorted output, just the last one.
func sealGroup(g PageGroup) PageGroup {
	if g.Unclassified() {
		g.FormType = FormOther
	}
	return g
}
