package models

import "time"

// Collection is a named, taggable grouping of QA pairs.
//
// DocumentCount, StatusCounts and SampleQuestions are view enrichments
// computed by the server for list responses; they are not stored fields.
type Collection struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	QAPairCount int            `json:"qa_pair_count"`

	DocumentCount   int            `json:"document_count,omitempty"`
	StatusCounts    map[string]int `json:"status_counts,omitempty"`
	SampleQuestions []string       `json:"sample_questions,omitempty"`
}

// CollectionRequest is the create/update payload for a collection.
type CollectionRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}
