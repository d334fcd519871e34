package retrieval

import (
	"sort"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// UniqueMetadataValues collects the distinct string values of one metadata
// field across the documents, sorted ascending. Intended for building
// filter-dropdown options.
func UniqueMetadataValues(docs []models.Document, field string) []string {
	seen := make(map[string]struct{})
	for _, d := range docs {
		if v, ok := d.Metadata[field]; ok {
			if s, ok := v.(string); ok {
				seen[s] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// StringMetadataFields returns the sorted set of metadata field names that
// hold string values anywhere in the document slice.
func StringMetadataFields(docs []models.Document) []string {
	seen := make(map[string]struct{})
	for _, d := range docs {
		for k, v := range d.Metadata {
			if _, ok := v.(string); ok {
				seen[k] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
