package models

import "time"

// QA pair review statuses.
const (
	StatusDraft             = "draft"
	StatusReadyForReview    = "ready_for_review"
	StatusApproved          = "approved"
	StatusRejected          = "rejected"
	StatusRevisionRequested = "revision_requested"
)

// Metadata keys used by the revision workflow. Active revision fields are
// archived into MetaRevisionHistory when a pair is approved.
const (
	MetaRevisionComments    = "revision_comments"
	MetaRevisionFeedback    = "revision_feedback"
	MetaRevisionRequestedBy = "revision_requested_by"
	MetaRevisionRequestedAt = "revision_requested_at"
	MetaRevisionHistory     = "revision_history"
)

// QAPair is a single question/answer record with a review status and
// provenance metadata. Documents holds the retrieval sources the answer was
// drafted from.
type QAPair struct {
	ID           string         `json:"id"`
	CollectionID string         `json:"collection_id"`
	Question     string         `json:"question"`
	Answer       string         `json:"answer"`
	Status       string         `json:"status"`
	Documents    []Document     `json:"documents,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedBy    string         `json:"created_by,omitempty"`
	ReviewedBy   string         `json:"reviewed_by,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// QAPairCreate is the creation payload. Status defaults to ready_for_review
// when empty.
type QAPairCreate struct {
	Question  string         `json:"question"`
	Answer    string         `json:"answer"`
	Status    string         `json:"status,omitempty"`
	Documents []Document     `json:"documents,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// QAPairUpdate is a partial update. Nil fields are left unchanged; Metadata
// is merged over the existing mapping, never replaced wholesale.
type QAPairUpdate struct {
	Question   *string        `json:"question,omitempty"`
	Answer     *string        `json:"answer,omitempty"`
	Status     *string        `json:"status,omitempty"`
	ReviewedBy *string        `json:"reviewed_by,omitempty"`
	Documents  []Document     `json:"documents,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
