package retrieval

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

func TestSortDocuments_NumericAscending(t *testing.T) {
	docs := testDocs()

	got := SortDocuments(docs, "relevance_score", Ascending, SortOptions{})

	// doc4 has no relevance score and counts as 0.
	require.Equal(t, []string{"doc4", "doc3", "doc2", "doc1"}, docIDs(got))
}

func TestSortDocuments_LocaleStringOrdering(t *testing.T) {
	docs := testDocs()

	got := SortDocuments(docs, "title", Ascending, SortOptions{})

	require.Equal(t, []string{"doc4", "doc1", "doc3", "doc2"}, docIDs(got))
}

func TestSortDocuments_DateFieldsCompareChronologically(t *testing.T) {
	docs := testDocs()

	got := SortDocuments(docs, "created_date", Ascending, SortOptions{})

	// doc4 has no created_date and sorts to the epoch start.
	require.Equal(t, []string{"doc4", "doc3", "doc1", "doc2"}, docIDs(got))
}

// Descending is the exact reverse of ascending for every field.
func TestSortDocuments_ReversalLaw(t *testing.T) {
	docs := testDocs()

	for _, field := range []string{"title", "relevance_score", "created_date"} {
		asc := SortDocuments(docs, field, Ascending, SortOptions{})
		desc := SortDocuments(docs, field, Descending, SortOptions{})

		reversed := make([]string, 0, len(asc))
		for i := len(asc) - 1; i >= 0; i-- {
			reversed = append(reversed, asc[i].ID)
		}
		require.Equal(t, reversed, docIDs(desc), "field %q", field)
	}
}

func TestSortDocuments_CustomComparator(t *testing.T) {
	docs := testDocs()

	byContentLength := func(a, b models.Document) int {
		return len(a.Content) - len(b.Content)
	}
	got := SortDocuments(docs, "ignored", Ascending, SortOptions{Comparator: byContentLength})

	for i := 1; i < len(got); i++ {
		if len(got[i-1].Content) > len(got[i].Content) {
			t.Fatalf("documents not ordered by content length at %d: %q > %q", i, got[i-1].ID, got[i].ID)
		}
	}
}

func TestSortDocuments_InputUntouched(t *testing.T) {
	docs := testDocs()
	before := docIDs(docs)

	_ = SortDocuments(docs, "title", Descending, SortOptions{})

	require.Equal(t, before, docIDs(docs))
}

func TestSortDocuments_SortsByMetadataField(t *testing.T) {
	docs := testDocs()

	got := SortDocuments(docs, "category", Ascending, SortOptions{})

	categories := make([]string, 0, len(got))
	for _, d := range got {
		categories = append(categories, asString(d.Metadata["category"]))
	}
	require.True(t, slices.IsSorted(categories), "categories not ascending: %v", categories)
	require.Equal(t, strings.Join([]string{"guidelines", "maintenance", "safety", "troubleshooting"}, ","), strings.Join(categories, ","))
}
