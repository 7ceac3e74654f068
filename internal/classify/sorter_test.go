package classify

import "testing"

func TestSortDocumentsByPriorityThenName(t *testing.T) {
	docs := []Document{
		{Path: "/in/b-other.pdf", Classification: Classification{FormType: FormOther, Priority: 9}},
		{Path: "/in/Zeta-W2.pdf", Classification: Classification{FormType: FormW2, Priority: 1}},
		{Path: "/in/int.pdf", Classification: Classification{FormType: Form1099INT, Priority: 2}},
		{Path: "/in/alpha-w2.pdf", Classification: Classification{FormType: FormW2, Priority: 1}},
	}

	SortDocuments(docs)

	want := []string{"/in/alpha-w2.pdf", "/in/Zeta-W2.pdf", "/in/int.pdf", "/in/b-other.pdf"}
	for i, w := range want {
		if docs[i].Path != w {
			t.Errorf("Position %d: expected %s, got %s", i, w, docs[i].Path)
		}
	}
}

func TestSortDocumentsStableForPageGroups(t *testing.T) {
	// Two groups split from one file share priority and path; their relative
	// order must survive the sort.
	docs := []Document{
		{Path: "/in/multi.pdf", Pages: []int{0, 1}, Classification: Classification{FormType: Form1099NEC, Priority: 8}},
		{Path: "/in/multi.pdf", Pages: []int{2}, Classification: Classification{FormType: Form1099G, Priority: 8}},
	}

	SortDocuments(docs)

	if docs[0].Pages[0] != 0 || docs[1].Pages[0] != 2 {
		t.Errorf("Expected stable order for tied groups, got %v then %v", docs[0].Pages, docs[1].Pages)
	}
}

func TestApplyOrigin(t *testing.T) {
	other := Classification{FormType: FormOther, Priority: 9}

	photo := ApplyOrigin(other, OriginImage)
	if photo.FormType != FormOtherPhoto || photo.Priority != 10 {
		t.Errorf("Expected Other (Photo) priority 10, got %+v", photo)
	}

	office := ApplyOrigin(other, OriginOffice)
	if office.FormType != FormOtherOffice || office.Priority != 11 {
		t.Errorf("Expected Other (Office) priority 11, got %+v", office)
	}

	original := ApplyOrigin(other, OriginOriginal)
	if original.FormType != FormOther || original.Priority != 9 {
		t.Errorf("Expected original untouched, got %+v", original)
	}

	w2 := Classification{FormType: FormW2, Priority: 1}
	if got := ApplyOrigin(w2, OriginImage); got != w2 {
		t.Errorf("Classified documents must never be rerouted, got %+v", got)
	}
}

func TestPriorityTable(t *testing.T) {
	tests := []struct {
		form string
		want int
	}{
		{FormW2, 1},
		{Form1099INT, 2},
		{Form1099DIV, 3},
		{Form1099R, 4},
		{FormSSA1099, 5},
		{Form1099B, 6},
		{Form1098, 7},
		{Form1098T, 7},
		{Form1099Q, 8},
		{FormK1, 8},
		{Form1095, 9},
		{FormPropertyTax, 9},
		{FormOtherPhoto, 10},
		{FormOtherOffice, 11},
		{"", PriorityUnclassified},
	}

	for _, tt := range tests {
		if got := Priority(tt.form); got != tt.want {
			t.Errorf("Priority(%q) = %d, want %d", tt.form, got, tt.want)
		}
	}
}
