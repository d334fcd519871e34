package services

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/store"
)

// ErrInvalidStatus reports a QA pair patch whose status is outside the
// review taxonomy.
var ErrInvalidStatus = errors.New("invalid status value")

// validStatuses are the states a patch may set, in reporting order.
var validStatuses = []string{
	models.StatusReadyForReview,
	models.StatusApproved,
	models.StatusRevisionRequested,
	models.StatusRejected,
}

// ValidStatuses returns the review states a QA pair patch may set.
func ValidStatuses() []string {
	return slices.Clone(validStatuses)
}

type CollectionService struct {
	store store.Store
}

func NewCollectionService(st store.Store) *CollectionService {
	return &CollectionService{store: st}
}

// enrichCollection fills the view fields computed from the collection's
// pairs. Pairs without a status count as drafts.
func enrichCollection(c *models.Collection, pairs []models.QAPair, includeSamples bool) {
	c.QAPairCount = len(pairs)
	c.DocumentCount = len(pairs)

	counts := make(map[string]int)
	for _, p := range pairs {
		status := p.Status
		if status == "" {
			status = models.StatusDraft
		}
		counts[status]++
	}
	c.StatusCounts = counts

	if includeSamples {
		samples := make([]string, 0, 3)
		for _, p := range pairs {
			if len(samples) == 3 {
				break
			}
			samples = append(samples, p.Question)
		}
		c.SampleQuestions = samples
	}
}

// ListCollections returns all collections enriched with pair counts, status
// breakdowns and up to three sample questions.
func (s *CollectionService) ListCollections(ctx context.Context) ([]models.Collection, error) {
	collections, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, err
	}

	for i := range collections {
		pairs, err := s.store.ListQAPairs(ctx, collections[i].ID)
		if err != nil {
			return nil, err
		}
		enrichCollection(&collections[i], pairs, true)
	}
	return collections, nil
}

func (s *CollectionService) GetCollection(ctx context.Context, id string) (*models.Collection, error) {
	collection, err := s.store.GetCollection(ctx, id)
	if err != nil {
		return nil, err
	}

	pairs, err := s.store.ListQAPairs(ctx, id)
	if err != nil {
		return nil, err
	}
	enrichCollection(&collection, pairs, false)
	return &collection, nil
}

func (s *CollectionService) CreateCollection(ctx context.Context, req models.CollectionRequest) (*models.Collection, error) {
	collection, err := s.store.CreateCollection(ctx, req)
	if err != nil {
		return nil, err
	}
	return &collection, nil
}

// UpdateCollection replaces the editable fields and recomputes the view
// enrichment from the collection's current pairs.
func (s *CollectionService) UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (*models.Collection, error) {
	collection, err := s.store.UpdateCollection(ctx, id, req)
	if err != nil {
		return nil, err
	}

	pairs, err := s.store.ListQAPairs(ctx, id)
	if err != nil {
		return nil, err
	}
	enrichCollection(&collection, pairs, false)
	return &collection, nil
}

func (s *CollectionService) DeleteCollection(ctx context.Context, id string) error {
	return s.store.DeleteCollection(ctx, id)
}

// ListQAPairs returns the pairs of an existing collection. A missing
// collection is an error even though it simply has no pairs.
func (s *CollectionService) ListQAPairs(ctx context.Context, collectionID string) ([]models.QAPair, error) {
	if _, err := s.store.GetCollection(ctx, collectionID); err != nil {
		return nil, err
	}
	return s.store.ListQAPairs(ctx, collectionID)
}

func (s *CollectionService) CreateQAPair(ctx context.Context, collectionID string, req models.QAPairCreate, createdBy string) (*models.QAPair, error) {
	pair, err := s.store.CreateQAPair(ctx, collectionID, req, createdBy)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

func (s *CollectionService) GetQAPair(ctx context.Context, id string) (*models.QAPair, error) {
	pair, err := s.store.GetQAPair(ctx, id)
	if err != nil {
		return nil, err
	}
	return &pair, nil
}

// UpdateQAPair applies a partial update with the review bookkeeping: status
// validation, metadata merged over the stored mapping, revision attribution,
// and archival of active revision feedback when a pair is approved. The
// reviewer is the authenticated user driving the patch.
func (s *CollectionService) UpdateQAPair(ctx context.Context, id string, patch models.QAPairUpdate, reviewer *models.User) (*models.QAPair, error) {
	existing, err := s.store.GetQAPair(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := ""
	if patch.Status != nil {
		if !slices.Contains(validStatuses, *patch.Status) {
			return nil, ErrInvalidStatus
		}
		newStatus = *patch.Status
	}

	// The patch metadata merges over the stored mapping. Review transitions
	// may stamp attribution or archive feedback, which forces a metadata
	// write even for a status-only patch.
	metadata := cloneMetadata(existing.Metadata)
	touched := false

	if patch.Metadata != nil {
		for k, v := range patch.Metadata {
			metadata[k] = v
		}
		touched = true
	}

	now := time.Now().UTC()

	if newStatus == models.StatusRevisionRequested {
		if reviewer != nil && metadata[models.MetaRevisionRequestedBy] == nil {
			metadata[models.MetaRevisionRequestedBy] = reviewer.Username
			touched = true
		}
		if metadata[models.MetaRevisionRequestedAt] == nil {
			metadata[models.MetaRevisionRequestedAt] = now.Format(time.RFC3339)
			touched = true
		}
	}

	if newStatus == models.StatusApproved && archiveRevisionFeedback(metadata, reviewer, now) {
		touched = true
	}

	if touched {
		patch.Metadata = metadata
	}

	if patch.ReviewedBy == nil && reviewer != nil {
		switch newStatus {
		case models.StatusApproved, models.StatusRejected, models.StatusRevisionRequested:
			patch.ReviewedBy = &reviewer.Username
		}
	}

	updated, err := s.store.UpdateQAPair(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *CollectionService) DeleteQAPair(ctx context.Context, id string) error {
	return s.store.DeleteQAPair(ctx, id)
}

// archiveRevisionFeedback moves active revision fields into the pair's
// revision_history so reviewer feedback stays minable after approval.
// Returns false when there is no active feedback.
func archiveRevisionFeedback(metadata map[string]any, reviewer *models.User, now time.Time) bool {
	feedback := metadata[models.MetaRevisionFeedback]
	if feedback == nil || feedback == "" {
		feedback = metadata[models.MetaRevisionComments]
	}
	if feedback == nil || feedback == "" {
		return false
	}

	archivedBy := "system"
	if v, ok := metadata["approved_by"].(string); ok && v != "" {
		archivedBy = v
	} else if reviewer != nil {
		archivedBy = reviewer.Username
	}

	archivedAt := now.Format(time.RFC3339)
	if v, ok := metadata["approved_at"].(string); ok && v != "" {
		archivedAt = v
	}

	entry := map[string]any{
		models.MetaRevisionFeedback:    feedback,
		models.MetaRevisionRequestedBy: metadata[models.MetaRevisionRequestedBy],
		models.MetaRevisionRequestedAt: metadata[models.MetaRevisionRequestedAt],
		"archived_on_approval_by":      archivedBy,
		"archived_on_approval_at":      archivedAt,
		"archive_reason":               "moved_to_history_on_approval",
	}

	history, _ := metadata[models.MetaRevisionHistory].([]any)
	metadata[models.MetaRevisionHistory] = append(history, entry)

	delete(metadata, models.MetaRevisionFeedback)
	delete(metadata, models.MetaRevisionComments)
	delete(metadata, models.MetaRevisionRequestedBy)
	delete(metadata, models.MetaRevisionRequestedAt)

	return true
}

func cloneMetadata(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
