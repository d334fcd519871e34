package retrieval

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUniqueMetadataValues(t *testing.T) {
	docs := testDocs()

	got := UniqueMetadataValues(docs, "author")
	require.Equal(t, []string{"Maintenance Crew", "Operations Team"}, got)

	got = UniqueMetadataValues(docs, "category")
	require.Equal(t, []string{"guidelines", "maintenance", "safety", "troubleshooting"}, got)
}

func TestUniqueMetadataValues_IgnoresNonStrings(t *testing.T) {
	docs := testDocs()

	require.Empty(t, UniqueMetadataValues(docs, "pages"))
	require.Empty(t, UniqueMetadataValues(docs, "missing"))
}

func TestStringMetadataFields(t *testing.T) {
	docs := testDocs()

	got := StringMetadataFields(docs)

	// "pages" holds an int and must not be reported.
	require.Equal(t, []string{"author", "category", "created_date"}, got)
}

func TestStringMetadataFields_EmptyInput(t *testing.T) {
	require.Empty(t, StringMetadataFields(nil))
}
