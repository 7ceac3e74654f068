package classify

import (
	"strings"
	"testing"
)

// Page texts long enough to clear the blank-page threshold.
var (
	w2Page  = "WAGE AND TAX STATEMENT Form W-2 wages and withholding details for the year"
	necPage = "Form 1099-NEC Nonemployee Compensation paid to the contractor during the year"
	intPage = "Form 1099-INT Interest Income earned on deposit accounts during the year"
)

func TestSplitPagesTooFewPages(t *testing.T) {
	c := NewClassifier()

	if got := c.SplitPages([]string{w2Page}); got != nil {
		t.Errorf("Expected nil for single page, got %v", got)
	}
	if got := c.SplitPages([]string{w2Page, necPage}); got != nil {
		t.Errorf("Expected nil for two pages, got %v", got)
	}
}

func TestSplitPagesSingleType(t *testing.T) {
	c := NewClassifier()

	pages := []string{w2Page, w2Page, w2Page}
	if got := c.SplitPages(pages); got != nil {
		t.Errorf("Expected nil for single form type, got %v", got)
	}
}

func TestSplitPagesGroupsAtTransitions(t *testing.T) {
	c := NewClassifier()

	pages := []string{w2Page, w2Page, necPage, intPage}
	groups := c.SplitPages(pages)

	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d: %v", len(groups), groups)
	}
	if groups[0].FormType != FormW2 || len(groups[0].Pages) != 2 {
		t.Errorf("Group 0: expected W-2 pages [0 1], got %v", groups[0])
	}
	if groups[1].FormType != Form1099NEC {
		t.Errorf("Group 1: expected 1099-NEC, got %v", groups[1])
	}
	if groups[2].FormType != Form1099INT {
		t.Errorf("Group 2: expected 1099-INT, got %v", groups[2])
	}
}

func TestSplitPagesBlankPageFoldsIntoOpenGroup(t *testing.T) {
	c := NewClassifier()

	pages := []string{w2Page, "  \n ", necPage}
	groups := c.SplitPages(pages)

	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d: %v", len(groups), groups)
	}
	// The blank back side stays with the W-2 it follows.
	if len(groups[0].Pages) != 2 || groups[0].Pages[1] != 1 {
		t.Errorf("Expected blank page folded into first group, got %v", groups[0].Pages)
	}
}

func TestSplitPagesLeadingUnclassifiedGroup(t *testing.T) {
	c := NewClassifier()

	cover := strings.Repeat("cover letter text with no form markers at all ", 3)
	pages := []string{cover, w2Page, necPage}
	groups := c.SplitPages(pages)

	if len(groups) != 3 {
		t.Fatalf("Expected 3 groups, got %d: %v", len(groups), groups)
	}
	if groups[0].FormType != FormOther {
		t.Errorf("Expected leading unclassifiable group named %q, got %q", FormOther, groups[0].FormType)
	}
	if groups[0].Priority != PriorityUnclassified {
		t.Errorf("Expected unclassified priority kept, got %d", groups[0].Priority)
	}
}

func TestSplitPagesPartition(t *testing.T) {
	c := NewClassifier()

	pages := []string{w2Page, "x", necPage, necPage, intPage, ""}
	groups := c.SplitPages(pages)
	if groups == nil {
		t.Fatal("Expected groups for mixed-type document")
	}

	seen := make(map[int]int)
	for gi, g := range groups {
		for _, p := range g.Pages {
			if prev, dup := seen[p]; dup {
				t.Errorf("Page %d in groups %d and %d", p, prev, gi)
			}
			seen[p] = gi
		}
	}
	for i := range pages {
		if _, ok := seen[i]; !ok {
			t.Errorf("Page %d missing from all groups", i)
		}
	}
}

func TestSplitPagesPayerInheritedWithinGroup(t *testing.T) {
	c := NewClassifier()

	necNoPayer := "Form 1099-NEC Nonemployee Compensation details continue on this page of the form"
	necPayer := "1099-NEC\nCOASTAL CONSULTING GROUP\n1 Nonemployee compensation 20,000.00 plus filler text"
	groups := c.SplitPages([]string{necNoPayer, necPayer, w2Page})

	if len(groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d: %v", len(groups), groups)
	}
	if groups[0].Payer == "" {
		t.Error("Expected payer inherited from a later page of the same group")
	}
}
