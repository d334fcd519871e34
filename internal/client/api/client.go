package api

import (
	"context"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

type Client interface {
	Close() error

	// SetToken installs the bearer token attached to subsequent requests.
	// An empty string clears it.
	SetToken(token string)
	Token() string

	Login(ctx context.Context, username, password string) (*models.TokenResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	AuthProviders(ctx context.Context) (*models.AuthProviders, error)

	ListCollections(ctx context.Context) ([]models.Collection, error)
	GetCollection(ctx context.Context, id string) (*models.Collection, error)
	CreateCollection(ctx context.Context, req models.CollectionRequest) (*models.Collection, error)
	UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (*models.Collection, error)
	DeleteCollection(ctx context.Context, id string) error

	ListQAPairs(ctx context.Context, collectionID string) ([]models.QAPair, error)
	CreateQAPair(ctx context.Context, collectionID string, req models.QAPairCreate) (*models.QAPair, error)
	GetQAPair(ctx context.Context, id string) (*models.QAPair, error)
	UpdateQAPair(ctx context.Context, id string, req models.QAPairUpdate) (*models.QAPair, error)
	DeleteQAPair(ctx context.Context, id string) error

	SearchDocuments(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error)
	ListSources(ctx context.Context, page, limit int) (*models.SourceList, error)
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (*models.Template, error)

	Generate(ctx context.Context, req models.GenerateRequest) (*models.GeneratedAnswer, error)
	ListModels(ctx context.Context) ([]models.ModelInfo, error)

	Health(ctx context.Context) (*models.Health, error)
}
