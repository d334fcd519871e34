package retrieval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearch_EmptyQueryIsIdentity(t *testing.T) {
	docs := testDocs()

	for _, query := range []string{"", "   ", "\t\n"} {
		got := Search(docs, query, SearchOptions{})
		require.Equal(t, docIDs(docs), docIDs(got), "query %q must return input unchanged", query)
	}
}

func TestSearch_ResultIsSubset(t *testing.T) {
	docs := testDocs()

	for _, query := range []string{"maintenance", "air filter", "nothing-matches-this", "guide"} {
		got := Search(docs, query, SearchOptions{})
		requireSubset(t, got, docs)
	}
}

// Removing a term from a multi-term query never shrinks the result set.
func TestSearch_MonotonicRelaxation(t *testing.T) {
	docs := testDocs()
	query := "maintenance schedule pumps"
	full := Search(docs, query, SearchOptions{})

	terms := strings.Fields(query)
	for i := range terms {
		reduced := append(append([]string{}, terms[:i]...), terms[i+1:]...)
		relaxed := Search(docs, strings.Join(reduced, " "), SearchOptions{})
		requireSubset(t, full, relaxed)
	}
}

func TestSearch_AllTermsMustMatch(t *testing.T) {
	docs := testDocs()

	got := Search(docs, "maintenance schedule", SearchOptions{})
	require.Equal(t, []string{"doc1"}, docIDs(got))

	// Terms may match across different fields of the same document.
	got = Search(docs, "equipment regular", SearchOptions{})
	require.Equal(t, []string{"doc1"}, docIDs(got))
}

func TestSearch_CaseInsensitiveByDefault(t *testing.T) {
	docs := testDocs()

	got := Search(docs, "EQUIPMENT", SearchOptions{})
	require.Contains(t, docIDs(got), "doc1")

	got = Search(docs, "EQUIPMENT", SearchOptions{CaseSensitive: true})
	require.NotContains(t, docIDs(got), "doc1")
}

func TestSearch_ExactMatchKeepsPhrase(t *testing.T) {
	docs := testDocs()

	// Both terms occur in doc1's content, but never as a contiguous phrase.
	got := Search(docs, "regular pumps", SearchOptions{})
	require.Equal(t, []string{"doc1"}, docIDs(got))

	got = Search(docs, "regular pumps", SearchOptions{ExactMatch: true})
	require.Empty(t, docIDs(got))
}

func TestSearch_DotNotationFields(t *testing.T) {
	docs := testDocs()

	got := Search(docs, "wiki", SearchOptions{Fields: []string{"source.name"}})
	require.Equal(t, []string{"doc4"}, docIDs(got))
}

func TestSearch_StringMetadataAlwaysSearched(t *testing.T) {
	docs := testDocs()

	// "crew" occurs only in doc2's author metadata, never in title/content.
	got := Search(docs, "crew", SearchOptions{})
	require.Equal(t, []string{"doc2"}, docIDs(got))

	// Numeric metadata (doc1 "pages": 42) is not searchable text.
	got = Search(docs, "42", SearchOptions{})
	require.Empty(t, docIDs(got))
}

func TestSearch_DoesNotMutateInput(t *testing.T) {
	docs := testDocs()
	before := docIDs(docs)

	_ = Search(docs, "maintenance", SearchOptions{})

	require.Equal(t, before, docIDs(docs))
}
