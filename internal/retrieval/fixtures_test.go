package retrieval

import (
	"testing"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

func testDocs() []models.Document {
	src := models.Source{ID: "memory", Name: "Sample Documents", Type: "memory"}
	return []models.Document{
		{
			ID:             "doc1",
			Title:          "Equipment Maintenance Manual",
			Content:        "Regular maintenance schedule for industrial pumps and motors.",
			Source:         src,
			URL:            "https://example.com/docs/maintenance-manual",
			RelevanceScore: 0.95,
			Metadata: map[string]any{
				"category":     "maintenance",
				"author":       "Operations Team",
				"created_date": "2024-01-15T10:30:00",
				"pages":        42,
			},
		},
		{
			ID:             "doc2",
			Title:          "Troubleshooting Guide: Air Filters",
			Content:        "Steps to diagnose airflow problems and replace clogged filters.",
			Source:         src,
			RelevanceScore: 0.8,
			Metadata: map[string]any{
				"category":     "troubleshooting",
				"author":       "Maintenance Crew",
				"created_date": "2024-02-20T08:00:00",
			},
		},
		{
			ID:             "doc3",
			Title:          "Safety Protocols for Chemical Handling",
			Content:        "Mandatory protective equipment and spill response procedures.",
			Source:         src,
			RelevanceScore: 0.4,
			Metadata: map[string]any{
				"category":     "safety",
				"author":       "Operations Team",
				"created_date": "2023-11-05T15:45:00",
			},
		},
		{
			ID:      "doc4",
			Title:   "Annotation Guidelines",
			Content: "How to label questions and answers consistently.",
			Source:  models.Source{ID: "wiki", Name: "Internal Wiki", Type: "wiki"},
			Metadata: map[string]any{
				"category": "guidelines",
			},
		},
	}
}

func docIDs(docs []models.Document) []string {
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids
}

// requireSubset fails unless every document of sub is present in super.
func requireSubset(t *testing.T, sub, super []models.Document) {
	t.Helper()
	index := make(map[string]struct{}, len(super))
	for _, d := range super {
		index[d.ID] = struct{}{}
	}
	for _, d := range sub {
		if _, ok := index[d.ID]; !ok {
			t.Fatalf("document %q not contained in superset %v", d.ID, docIDs(super))
		}
	}
}
