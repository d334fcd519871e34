package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gtstudio/internal/client/api"
	"github.com/dmitrijs2005/gtstudio/internal/logging"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// ErrRequestInFlight is returned by mutating operations when the same
// operation on the same target is already running. The duplicate performs
// no network I/O.
var ErrRequestInFlight = errors.New("request already in progress")

// ErrNameRequired is returned by CreateCollection before any network call
// when the name is blank.
var ErrNameRequired = errors.New("collection name is required")

// CollectionService is the client-side cache of collections and of the QA
// pairs of the currently selected collection. Every mutation goes to the
// server first and then applies the server's response to the cache: creates
// append, updates replace by id, deletes remove by id. Failed fetches leave
// previously loaded data in place.
//
// All methods are safe for concurrent use.
type CollectionService interface {
	FetchCollections(ctx context.Context) error
	FetchCollection(ctx context.Context, id string) error
	FetchQAPairs(ctx context.Context, collectionID string) error
	CreateCollection(ctx context.Context, name, description string, tags []string) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id string) error
	CreateQAPair(ctx context.Context, collectionID string, req models.QAPairCreate) (*models.QAPair, error)
	UpdateQAPair(ctx context.Context, id string, patch models.QAPairUpdate) (*models.QAPair, error)
	UpdateQAPairStatus(ctx context.Context, id, status, comment string) (*models.QAPair, error)
	DeleteQAPair(ctx context.Context, id string) error

	Collections() []models.Collection
	CurrentCollection() *models.Collection
	QAPairs() []models.QAPair
	ClearCurrentCollection()
	Loading() bool
	Err() error
	ClearError()
}

type collectionService struct {
	client api.Client
	logger logging.Logger

	mu          sync.RWMutex
	collections []models.Collection
	current     *models.Collection
	qaPairs     []models.QAPair
	loading     bool
	lastErr     error
	inFlight    map[string]struct{}
}

// NewCollectionService constructs a CollectionService bound to the given
// API client.
func NewCollectionService(client api.Client, logger logging.Logger) CollectionService {
	return &collectionService{
		client:   client,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// FetchCollections replaces the cached collection list with the server's.
// On failure the previous list stays as is.
func (s *collectionService) FetchCollections(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	list, err := s.client.ListCollections(ctx)
	if err != nil {
		return s.fail(ctx, "load collections", err)
	}

	s.mu.Lock()
	s.collections = list
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// FetchCollection loads one collection and makes it the current selection.
// The list entry with the same id, if present, is refreshed too.
func (s *collectionService) FetchCollection(ctx context.Context, id string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	col, err := s.client.GetCollection(ctx, id)
	if err != nil {
		return s.fail(ctx, "load collection", err)
	}

	s.mu.Lock()
	s.current = col
	s.replaceInListLocked(*col)
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// FetchQAPairs replaces the cached pair list with that collection's pairs.
func (s *collectionService) FetchQAPairs(ctx context.Context, collectionID string) error {
	s.setLoading(true)
	defer s.setLoading(false)

	pairs, err := s.client.ListQAPairs(ctx, collectionID)
	if err != nil {
		return s.fail(ctx, "load qa pairs", err)
	}

	s.mu.Lock()
	s.qaPairs = pairs
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

func (s *collectionService) CreateCollection(ctx context.Context, name, description string, tags []string) (*models.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, s.record(ErrNameRequired)
	}

	if err := s.begin("create-collection"); err != nil {
		return nil, err
	}
	defer s.end("create-collection")

	col, err := s.client.CreateCollection(ctx, models.CollectionRequest{
		Name:        name,
		Description: description,
		Tags:        tags,
	})
	if err != nil {
		return nil, s.fail(ctx, "create collection", err)
	}

	s.mu.Lock()
	s.collections = append(s.collections, *col)
	s.lastErr = nil
	s.mu.Unlock()
	return col, nil
}

func (s *collectionService) UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (*models.Collection, error) {
	key := "update-collection:" + id
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.end(key)

	col, err := s.client.UpdateCollection(ctx, id, req)
	if err != nil {
		return nil, s.fail(ctx, "update collection", err)
	}

	s.mu.Lock()
	s.replaceInListLocked(*col)
	if s.current != nil && s.current.ID == col.ID {
		s.current = col
	}
	s.lastErr = nil
	s.mu.Unlock()
	return col, nil
}

// DeleteCollection removes the collection on the server and from the cache.
// Deleting the current selection also drops its cached QA pairs.
func (s *collectionService) DeleteCollection(ctx context.Context, id string) error {
	key := "delete-collection:" + id
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	if err := s.client.DeleteCollection(ctx, id); err != nil {
		return s.fail(ctx, "delete collection", err)
	}

	s.mu.Lock()
	for i, col := range s.collections {
		if col.ID == id {
			s.collections = append(s.collections[:i], s.collections[i+1:]...)
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = nil
		s.qaPairs = nil
	}
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// CreateQAPair adds a pair to the given collection. The owning collection's
// pair count is incremented in the cached list and, when it is the current
// selection, in the selection as well, where the new pair is also appended.
func (s *collectionService) CreateQAPair(ctx context.Context, collectionID string, req models.QAPairCreate) (*models.QAPair, error) {
	if err := s.begin("create-qa-pair"); err != nil {
		return nil, err
	}
	defer s.end("create-qa-pair")

	pair, err := s.client.CreateQAPair(ctx, collectionID, req)
	if err != nil {
		return nil, s.fail(ctx, "create qa pair", err)
	}

	s.mu.Lock()
	for i := range s.collections {
		if s.collections[i].ID == collectionID {
			s.collections[i].QAPairCount++
			break
		}
	}
	if s.current != nil && s.current.ID == collectionID {
		s.current.QAPairCount++
		s.qaPairs = append(s.qaPairs, *pair)
	}
	s.lastErr = nil
	s.mu.Unlock()
	return pair, nil
}

func (s *collectionService) UpdateQAPair(ctx context.Context, id string, patch models.QAPairUpdate) (*models.QAPair, error) {
	key := "update-qa-pair:" + id
	if err := s.begin(key); err != nil {
		return nil, err
	}
	defer s.end(key)

	pair, err := s.client.UpdateQAPair(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, "update qa pair", err)
	}

	s.mu.Lock()
	for i := range s.qaPairs {
		if s.qaPairs[i].ID == pair.ID {
			s.qaPairs[i] = *pair
			break
		}
	}
	s.lastErr = nil
	s.mu.Unlock()
	return pair, nil
}

// UpdateQAPairStatus is the status-transition form of UpdateQAPair. For a
// revision request with a comment the patch carries the pair's metadata with
// revision_comments merged in, so every pre-existing key survives the
// transition.
func (s *collectionService) UpdateQAPairStatus(ctx context.Context, id, status, comment string) (*models.QAPair, error) {
	patch := models.QAPairUpdate{Status: &status}

	if status == models.StatusRevisionRequested && comment != "" {
		md := make(map[string]any)
		if pair := s.findPair(id); pair != nil {
			for k, v := range pair.Metadata {
				md[k] = v
			}
		}
		md[models.MetaRevisionComments] = comment
		patch.Metadata = md
	}

	return s.UpdateQAPair(ctx, id, patch)
}

// DeleteQAPair removes the pair on the server and from the cache, and
// decrements the owning collection's pair count in both cached places.
func (s *collectionService) DeleteQAPair(ctx context.Context, id string) error {
	key := "delete-qa-pair:" + id
	if err := s.begin(key); err != nil {
		return err
	}
	defer s.end(key)

	collectionID := ""
	if pair := s.findPair(id); pair != nil {
		collectionID = pair.CollectionID
	}

	if err := s.client.DeleteQAPair(ctx, id); err != nil {
		return s.fail(ctx, "delete qa pair", err)
	}

	s.mu.Lock()
	for i, pair := range s.qaPairs {
		if pair.ID == id {
			s.qaPairs = append(s.qaPairs[:i], s.qaPairs[i+1:]...)
			break
		}
	}
	for i := range s.collections {
		if s.collections[i].ID == collectionID && s.collections[i].QAPairCount > 0 {
			s.collections[i].QAPairCount--
			break
		}
	}
	if s.current != nil && s.current.ID == collectionID && s.current.QAPairCount > 0 {
		s.current.QAPairCount--
	}
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Collections returns a copy of the cached collection list.
func (s *collectionService) Collections() []models.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Collection(nil), s.collections...)
}

// CurrentCollection returns a copy of the current selection, or nil.
func (s *collectionService) CurrentCollection() *models.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	col := *s.current
	return &col
}

// QAPairs returns a copy of the cached pair list of the current selection.
func (s *collectionService) QAPairs() []models.QAPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.QAPair(nil), s.qaPairs...)
}

func (s *collectionService) ClearCurrentCollection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.qaPairs = nil
}

func (s *collectionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err returns the last recorded operation error, if any.
func (s *collectionService) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *collectionService) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

func (s *collectionService) setLoading(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = v
}

// begin reserves the in-flight slot for the given operation key, so a
// duplicate of a still-running mutation fails fast instead of hitting the
// network twice.
func (s *collectionService) begin(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[key]; ok {
		return ErrRequestInFlight
	}
	s.inFlight[key] = struct{}{}
	return nil
}

func (s *collectionService) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

func (s *collectionService) findPair(id string) *models.QAPair {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.qaPairs {
		if s.qaPairs[i].ID == id {
			pair := s.qaPairs[i]
			return &pair
		}
	}
	return nil
}

// replaceInListLocked swaps the list entry with the same id, if any.
// Callers hold s.mu.
func (s *collectionService) replaceInListLocked(col models.Collection) {
	for i := range s.collections {
		if s.collections[i].ID == col.ID {
			s.collections[i] = col
			return
		}
	}
}

func (s *collectionService) record(err error) error {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	return err
}

func (s *collectionService) fail(ctx context.Context, action string, err error) error {
	s.logger.Error(ctx, "request failed", "action", action, "error", err)
	return s.record(fmt.Errorf("failed to %s, please try again", action))
}
