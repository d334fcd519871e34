package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/sources"
)

// Search paging defaults, matching the API defaults for the POST and GET
// search endpoints.
const (
	DefaultSearchLimit         = 10
	DefaultProviderSearchLimit = 5
)

// ErrUnknownProvider reports a search against a data source ID that is not
// registered.
var ErrUnknownProvider = errors.New("unknown data source provider")

type RetrievalService struct {
	registry *sources.Registry
}

func NewRetrievalService(registry *sources.Registry) *RetrievalService {
	return &RetrievalService{registry: registry}
}

// Search fans the query out across the requested data sources (all of them
// when none are named; unknown names are skipped), merges the results,
// orders them by descending relevance and returns the requested page.
func (s *RetrievalService) Search(ctx context.Context, req models.SearchRequest) (*models.SearchResult, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = DefaultSearchLimit
	}

	providers := s.selectProviders(req.DataSources)

	results := make([][]models.Document, len(providers))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			docs, err := p.Retrieve(gctx, req.Query, sources.RetrieveOptions{Filters: req.Filters})
			if err != nil {
				return fmt.Errorf("provider %s: %v", p.ID(), err)
			}
			results[i] = docs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]models.Document, 0)
	for _, docs := range results {
		merged = append(merged, docs...)
	}

	slices.SortStableFunc(merged, func(a, b models.Document) int {
		switch {
		case a.RelevanceScore > b.RelevanceScore:
			return -1
		case a.RelevanceScore < b.RelevanceScore:
			return 1
		default:
			return 0
		}
	})

	total := len(merged)
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return &models.SearchResult{
		Documents:  merged[start:end],
		TotalCount: total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// SearchByProvider queries a single data source and returns its scored
// results without a paging envelope.
func (s *RetrievalService) SearchByProvider(ctx context.Context, providerID, query string, limit int) ([]models.Document, error) {
	p, ok := s.registry.ByID(providerID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, providerID)
	}
	if limit < 1 {
		limit = DefaultProviderSearchLimit
	}
	return p.Retrieve(ctx, query, sources.RetrieveOptions{Limit: limit})
}

func (s *RetrievalService) selectProviders(ids []string) []sources.Provider {
	if len(ids) == 0 {
		return s.registry.All()
	}

	out := make([]sources.Provider, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.registry.ByID(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Sources lists the registered data sources as a page of id/name/description
// records.
func (s *RetrievalService) Sources(page, limit int) models.SourceList {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	} else if limit > 100 {
		limit = 100
	}

	all := s.registry.All()
	infos := make([]models.SourceInfo, 0, len(all))
	for _, p := range all {
		infos = append(infos, models.SourceInfo{ID: p.ID(), Name: p.Name(), Description: p.Description()})
	}

	total := len(infos)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return models.SourceList{
		Data: infos[start:end],
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			TotalCount: total,
			TotalPages: (total + limit - 1) / limit,
		},
	}
}

// builtinTemplates are the fixed drafting templates offered to clients.
func builtinTemplates() []models.Template {
	return []models.Template{
		{
			ID:          "template1",
			Name:        "General Question",
			Description: "A general question template for most inquiries",
			Prompt:      "Based on the following documents, please answer the question: {question}",
			Fields:      []string{"question"},
		},
		{
			ID:          "template2",
			Name:        "Technical Explanation",
			Description: "A template for technical explanations with detailed context",
			Prompt:      "Using the technical documentation provided, explain in detail: {question}",
			Fields:      []string{"question"},
		},
		{
			ID:          "template3",
			Name:        "Step-by-Step Guide",
			Description: "A template for procedural instructions",
			Prompt:      "Based on the provided documentation, explain the step-by-step process to: {question}",
			Fields:      []string{"question"},
		},
	}
}

func (s *RetrievalService) Templates() []models.Template {
	return builtinTemplates()
}

func (s *RetrievalService) Template(id string) (*models.Template, error) {
	for _, t := range builtinTemplates() {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, common.ErrorNotFound
}
