package classify

import (
	"path/filepath"
	"sort"
	"strings"
)

// ApplyOrigin reroutes uncategorized documents by their source: photo
// captures and office-suite conversions sort after other uncategorized
// files. Classified documents are never moved.
func ApplyOrigin(c Classification, origin Origin) Classification {
	if c.FormType != FormOther {
		return c
	}
	switch origin {
	case OriginImage:
		c.FormType = FormOtherPhoto
		c.Priority = Priority(FormOtherPhoto)
	case OriginOffice:
		c.FormType = FormOtherOffice
		c.Priority = Priority(FormOtherOffice)
	}
	return c
}

// SortDocuments orders documents into workpaper order: by priority, then by
// lowercased filename so runs are reproducible. The sort is stable, so page
// groups split from one file keep their page order when priorities tie.
func SortDocuments(docs []Document) {
	sort.SliceStable(docs, func(i, j int) bool {
		if docs[i].Priority != docs[j].Priority {
			return docs[i].Priority < docs[j].Priority
		}
		return strings.ToLower(filepath.Base(docs[i].Path)) < strings.ToLower(filepath.Base(docs[j].Path))
	})
}
