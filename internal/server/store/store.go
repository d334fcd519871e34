// Package store defines the persistence boundary for the server and its two
// implementations: an in-memory store preloaded with demo data and a postgres
// store for real deployments.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/config"
)

// User is a stored account record. PasswordHash never leaves the store
// except to the auth provider for verification.
type User struct {
	ID           string
	Username     string
	Email        string
	FullName     string
	PasswordHash string
	Roles        []string
	CreatedAt    time.Time
}

// Store is the persistence interface used by the service layer. Collection
// records keep a stored qa_pair_count that create/delete of pairs maintains;
// list/get enrichment on top of these records is the service layer's job.
type Store interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id string) (models.Collection, error)
	CreateCollection(ctx context.Context, req models.CollectionRequest) (models.Collection, error)
	UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (models.Collection, error)
	DeleteCollection(ctx context.Context, id string) error

	ListQAPairs(ctx context.Context, collectionID string) ([]models.QAPair, error)
	GetQAPair(ctx context.Context, id string) (models.QAPair, error)
	CreateQAPair(ctx context.Context, collectionID string, pair models.QAPairCreate, createdBy string) (models.QAPair, error)
	UpdateQAPair(ctx context.Context, id string, patch models.QAPairUpdate) (models.QAPair, error)
	DeleteQAPair(ctx context.Context, id string) error

	CreateUser(ctx context.Context, user User) (User, error)
	UserByEmail(ctx context.Context, email string) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)

	Ping(ctx context.Context) error
	Close() error
}

// New builds the store named by provider.
func New(provider, dsn string) (Store, error) {
	switch provider {
	case config.DatabaseProviderMemory:
		return NewMemoryStore(), nil
	case config.DatabaseProviderPostgres:
		return NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("unknown database provider: %s", provider)
	}
}
