package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// MemoryStore keeps all records in process memory, preloaded with the demo
// dataset. Every value crossing the boundary is deep-copied so callers can
// never alias internal state.
type MemoryStore struct {
	mu          sync.RWMutex
	collections []models.Collection
	qaPairs     []models.QAPair
	users       []User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: seedCollections(),
		qaPairs:     seedQAPairs(),
	}
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneDocuments(docs []models.Document) []models.Document {
	if docs == nil {
		return nil
	}
	out := make([]models.Document, len(docs))
	for i, d := range docs {
		d.Metadata = cloneMap(d.Metadata)
		out[i] = d
	}
	return out
}

func cloneCollection(c models.Collection) models.Collection {
	c.Tags = cloneStrings(c.Tags)
	c.Metadata = cloneMap(c.Metadata)
	return c
}

func cloneQAPair(p models.QAPair) models.QAPair {
	p.Documents = cloneDocuments(p.Documents)
	p.Metadata = cloneMap(p.Metadata)
	return p
}

func (s *MemoryStore) ListCollections(_ context.Context) ([]models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Collection, len(s.collections))
	for i, c := range s.collections {
		out[i] = cloneCollection(c)
	}
	return out, nil
}

func (s *MemoryStore) GetCollection(_ context.Context, id string) (models.Collection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.collections {
		if c.ID == id {
			return cloneCollection(c), nil
		}
	}
	return models.Collection{}, common.ErrorNotFound
}

func (s *MemoryStore) CreateCollection(_ context.Context, req models.CollectionRequest) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	c := models.Collection{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Tags:        cloneStrings(req.Tags),
		Metadata:    cloneMap(req.Metadata),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.collections = append(s.collections, c)
	return cloneCollection(c), nil
}

func (s *MemoryStore) UpdateCollection(_ context.Context, id string, req models.CollectionRequest) (models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.collections {
		if s.collections[i].ID != id {
			continue
		}
		s.collections[i].Name = req.Name
		s.collections[i].Description = req.Description
		s.collections[i].Tags = cloneStrings(req.Tags)
		s.collections[i].Metadata = cloneMap(req.Metadata)
		s.collections[i].UpdatedAt = time.Now().UTC()
		return cloneCollection(s.collections[i]), nil
	}
	return models.Collection{}, common.ErrorNotFound
}

func (s *MemoryStore) DeleteCollection(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.collections {
		if s.collections[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return common.ErrorNotFound
	}

	s.collections = append(s.collections[:idx], s.collections[idx+1:]...)

	kept := s.qaPairs[:0]
	for _, p := range s.qaPairs {
		if p.CollectionID != id {
			kept = append(kept, p)
		}
	}
	s.qaPairs = kept
	return nil
}

func (s *MemoryStore) ListQAPairs(_ context.Context, collectionID string) ([]models.QAPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.QAPair
	for _, p := range s.qaPairs {
		if p.CollectionID == collectionID {
			out = append(out, cloneQAPair(p))
		}
	}
	return out, nil
}

func (s *MemoryStore) GetQAPair(_ context.Context, id string) (models.QAPair, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.qaPairs {
		if p.ID == id {
			return cloneQAPair(p), nil
		}
	}
	return models.QAPair{}, common.ErrorNotFound
}

func (s *MemoryStore) CreateQAPair(_ context.Context, collectionID string, pair models.QAPairCreate, createdBy string) (models.QAPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	col := -1
	for i := range s.collections {
		if s.collections[i].ID == collectionID {
			col = i
			break
		}
	}
	if col < 0 {
		return models.QAPair{}, common.ErrorNotFound
	}

	status := pair.Status
	if status == "" {
		status = models.StatusReadyForReview
	}

	now := time.Now().UTC()
	p := models.QAPair{
		ID:           uuid.NewString(),
		CollectionID: collectionID,
		Question:     pair.Question,
		Answer:       pair.Answer,
		Status:       status,
		Documents:    cloneDocuments(pair.Documents),
		Metadata:     cloneMap(pair.Metadata),
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.qaPairs = append(s.qaPairs, p)
	s.collections[col].QAPairCount++
	return cloneQAPair(p), nil
}

// UpdateQAPair applies the patch field by field. A non-nil Metadata replaces
// the stored mapping wholesale; merge policy belongs to the service layer.
func (s *MemoryStore) UpdateQAPair(_ context.Context, id string, patch models.QAPairUpdate) (models.QAPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.qaPairs {
		if s.qaPairs[i].ID != id {
			continue
		}
		if patch.Question != nil {
			s.qaPairs[i].Question = *patch.Question
		}
		if patch.Answer != nil {
			s.qaPairs[i].Answer = *patch.Answer
		}
		if patch.Status != nil {
			s.qaPairs[i].Status = *patch.Status
		}
		if patch.ReviewedBy != nil {
			s.qaPairs[i].ReviewedBy = *patch.ReviewedBy
		}
		if patch.Documents != nil {
			s.qaPairs[i].Documents = cloneDocuments(patch.Documents)
		}
		if patch.Metadata != nil {
			s.qaPairs[i].Metadata = cloneMap(patch.Metadata)
		}
		s.qaPairs[i].UpdatedAt = time.Now().UTC()
		return cloneQAPair(s.qaPairs[i]), nil
	}
	return models.QAPair{}, common.ErrorNotFound
}

func (s *MemoryStore) DeleteQAPair(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.qaPairs {
		if s.qaPairs[i].ID != id {
			continue
		}
		collectionID := s.qaPairs[i].CollectionID
		s.qaPairs = append(s.qaPairs[:i], s.qaPairs[i+1:]...)
		for j := range s.collections {
			if s.collections[j].ID == collectionID && s.collections[j].QAPairCount > 0 {
				s.collections[j].QAPairCount--
			}
		}
		return nil
	}
	return common.ErrorNotFound
}

func (s *MemoryStore) CreateUser(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return User{}, common.ErrorAlreadyExists
		}
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().UTC()
	user.Roles = cloneStrings(user.Roles)
	s.users = append(s.users, user)

	out := user
	out.Roles = cloneStrings(user.Roles)
	return out, nil
}

func (s *MemoryStore) UserByEmail(_ context.Context, email string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			u.Roles = cloneStrings(u.Roles)
			return u, nil
		}
	}
	return User{}, common.ErrorNotFound
}

func (s *MemoryStore) UserByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username {
			u.Roles = cloneStrings(u.Roles)
			return u, nil
		}
	}
	return User{}, common.ErrorNotFound
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
