package retrieval

import (
	"reflect"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// FilterByMetadata keeps the documents whose metadata satisfies every entry
// of filters. Per key:
//
//   - a nil desired value means "no constraint";
//   - a slice of desired values matches when the metadata value equals any
//     one of them;
//   - a string desired value matches as a case-insensitive substring of the
//     metadata value;
//   - anything else must compare exactly equal.
//
// A document lacking a constrained key is excluded.
func FilterByMetadata(docs []models.Document, filters map[string]any) []models.Document {
	if len(filters) == 0 {
		return docs
	}

	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		if matchesFilters(d, filters) {
			out = append(out, d)
		}
	}
	return out
}

func matchesFilters(d models.Document, filters map[string]any) bool {
	for key, want := range filters {
		if want == nil {
			continue
		}
		got, ok := d.Metadata[key]
		if !ok {
			return false
		}
		if !matchesValue(got, want) {
			return false
		}
	}
	return true
}

func matchesValue(got, want any) bool {
	switch w := want.(type) {
	case string:
		return strings.Contains(strings.ToLower(asString(got)), strings.ToLower(w))
	case []string:
		for _, candidate := range w {
			if valueEqual(got, candidate) {
				return true
			}
		}
		return false
	case []any:
		for _, candidate := range w {
			if valueEqual(got, candidate) {
				return true
			}
		}
		return false
	default:
		return valueEqual(got, want)
	}
}

// valueEqual compares scalars with numeric tolerance for the int/float64
// split introduced by JSON decoding, falling back to deep equality.
func valueEqual(a, b any) bool {
	if an, ok := asNumber(a); ok {
		if bn, ok := asNumber(b); ok {
			return an == bn
		}
		return false
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return as == bs
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}
