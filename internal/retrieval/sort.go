package retrieval

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// SortDirection selects ascending or descending order.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortOptions tunes SortDocuments.
type SortOptions struct {
	// Comparator, when set, replaces the default ordering. It must return a
	// negative value when a sorts before b in ascending order.
	Comparator func(a, b models.Document) int
}

// SortDocuments returns a new slice ordered by the given field; the input is
// left untouched. Numeric fields compare numerically (relevance_score
// defaults to 0 when absent), fields whose name contains "date" compare
// chronologically, and everything else falls back to locale-aware string
// collation. Descending order is the exact reverse of ascending.
func SortDocuments(docs []models.Document, field string, dir SortDirection, opts SortOptions) []models.Document {
	out := make([]models.Document, len(docs))
	copy(out, docs)

	cmp := opts.Comparator
	if cmp == nil {
		cmp = defaultComparator(field)
	}

	slices.SortStableFunc(out, cmp)
	if dir == Descending {
		slices.Reverse(out)
	}
	return out
}

func defaultComparator(field string) func(a, b models.Document) int {
	byDate := strings.Contains(field, "date")
	collator := collate.New(language.Und)

	return func(a, b models.Document) int {
		av, _ := fieldValue(a, field)
		bv, _ := fieldValue(b, field)

		if an, aok := asNumber(av); aok || av == nil {
			if bn, bok := asNumber(bv); bok || bv == nil {
				// Missing numeric values (relevance_score in particular)
				// count as zero.
				switch {
				case an < bn:
					return -1
				case an > bn:
					return 1
				default:
					return 0
				}
			}
		}

		if byDate {
			at, _ := asTime(av)
			bt, _ := asTime(bv)
			return at.Compare(bt)
		}

		return collator.CompareString(asString(av), asString(bv))
	}
}
