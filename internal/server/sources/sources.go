// Package sources defines the data source providers the retrieval service
// searches for supporting documents.
package sources

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// RetrieveOptions tunes a Retrieve call. A non-positive Limit means no cap.
type RetrieveOptions struct {
	// Filters constrain the result set. Keys with a "metadata." prefix
	// address document metadata entries, the remaining keys address
	// top-level document fields.
	Filters map[string]any
	Limit   int
}

// Provider retrieves documents from one backing source. Implementations
// score every result and return them ordered by descending relevance.
type Provider interface {
	ID() string
	Name() string
	Description() string
	Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]models.Document, error)
}

// NewProvider builds the provider registered under the given ID.
func NewProvider(id string) (Provider, error) {
	switch id {
	case "memory":
		return NewMemoryProvider(), nil
	default:
		return nil, fmt.Errorf("unknown data source provider: %s", id)
	}
}

// Registry holds the enabled providers, preserving registration order for
// listings.
type Registry struct {
	order []Provider
	byID  map[string]Provider
}

// NewRegistry builds a registry from the given providers. A provider whose
// ID is already registered is skipped.
func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{byID: make(map[string]Provider)}
	for _, p := range providers {
		if _, ok := r.byID[p.ID()]; ok {
			continue
		}
		r.byID[p.ID()] = p
		r.order = append(r.order, p)
	}
	return r
}

// All returns the registered providers in registration order.
func (r *Registry) All() []Provider {
	out := make([]Provider, len(r.order))
	copy(out, r.order)
	return out
}

// ByID looks up a provider by its ID.
func (r *Registry) ByID(id string) (Provider, bool) {
	p, ok := r.byID[id]
	return p, ok
}
