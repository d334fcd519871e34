package sources

import (
	"context"
	"hash/fnv"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// MemoryProvider serves a small built-in document corpus. It is the default
// provider for development and demos; deployments plug in providers backed
// by a search engine or document store next to it.
type MemoryProvider struct {
	docs []models.Document
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{docs: sampleDocuments()}
}

func (p *MemoryProvider) ID() string { return "memory" }

func (p *MemoryProvider) Name() string { return "Sample Documents" }

func (p *MemoryProvider) Description() string {
	return "A collection of sample documents for demonstration purposes"
}

// Retrieve matches the query against document titles and contents. Every
// surviving document comes back scored, even without a match, so demo
// searches are never empty.
func (p *MemoryProvider) Retrieve(ctx context.Context, query string, opts RetrieveOptions) ([]models.Document, error) {
	queryLower := strings.ToLower(query)

	// One- and two-character terms add noise, skip them.
	var terms []string
	for _, term := range strings.Fields(queryLower) {
		if len(term) > 2 {
			terms = append(terms, term)
		}
	}

	results := make([]models.Document, 0, len(p.docs))
	for _, doc := range p.docs {
		if !matchesRetrieveFilters(doc, opts.Filters) {
			continue
		}

		result := doc
		result.Metadata = maps.Clone(doc.Metadata)
		result.Source = models.Source{ID: p.ID(), Name: p.Name(), Type: "memory"}
		result.RelevanceScore = relevance(doc, queryLower, terms)
		results = append(results, result)
	}

	slices.SortStableFunc(results, func(a, b models.Document) int {
		switch {
		case a.RelevanceScore > b.RelevanceScore:
			return -1
		case a.RelevanceScore < b.RelevanceScore:
			return 1
		default:
			return 0
		}
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// relevance scores a document against the query. An exact query match in the
// title beats one in the content, which beats accumulated term matches.
// Documents with no match at all get a low baseline derived from the
// document ID, stable across calls but varied across documents.
func relevance(doc models.Document, queryLower string, terms []string) float64 {
	titleLower := strings.ToLower(doc.Title)
	contentLower := strings.ToLower(doc.Content)

	if strings.Contains(titleLower, queryLower) {
		return 0.95
	}
	if strings.Contains(contentLower, queryLower) {
		return 0.85
	}

	titleCount := 0
	contentCount := 0
	for _, term := range terms {
		titleCount += strings.Count(titleLower, term)
		contentCount += strings.Count(contentLower, term)
	}

	if titleCount > 0 || contentCount > 0 {
		// Title matches weigh three times as much as content matches.
		weighted := float64(titleCount*3 + contentCount)
		return min(0.8, 0.3+weighted*0.05)
	}

	return 0.1 + float64(baselineBucket(doc.ID))/1000
}

// baselineBucket maps a document ID onto 0..99.
func baselineBucket(id string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(id))
	return h.Sum32() % 100
}

// matchesRetrieveFilters applies provider-level filters. A "metadata."
// prefixed key must be present in the document metadata and equal the filter
// value; other keys address top-level document fields and keys naming no
// field are ignored.
func matchesRetrieveFilters(doc models.Document, filters map[string]any) bool {
	for key, want := range filters {
		if name, ok := strings.CutPrefix(key, "metadata."); ok {
			got, ok := doc.Metadata[name]
			if !ok || !filterValueEqual(got, want) {
				return false
			}
			continue
		}

		if got, ok := docField(doc, key); ok && !filterValueEqual(got, want) {
			return false
		}
	}
	return true
}

func docField(doc models.Document, key string) (any, bool) {
	switch key {
	case "id":
		return doc.ID, true
	case "title":
		return doc.Title, true
	case "content":
		return doc.Content, true
	case "url":
		return doc.URL, true
	}
	return nil, false
}

// filterValueEqual compares a document value with a filter value, tolerating
// the int/float64 split JSON decoding introduces.
func filterValueEqual(got, want any) bool {
	if gn, ok := asNumber(got); ok {
		wn, ok := asNumber(want)
		return ok && gn == wn
	}
	return reflect.DeepEqual(got, want)
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func sampleDocuments() []models.Document {
	return []models.Document{
		{
			ID:      "doc1",
			Title:   "Equipment Maintenance Manual",
			Content: "Regular maintenance of equipment is essential for optimal performance. This document outlines maintenance procedures for various equipment types.",
			URL:     "https://example.com/docs/equipment-manual.pdf",
			Metadata: map[string]any{
				"type":           "manual",
				"topic":          "maintenance",
				"equipment_type": "general",
				"created_date":   "2023-01-15",
				"status":         "approved",
			},
		},
		{
			ID:      "doc2",
			Title:   "Troubleshooting Guide: Air Filters",
			Content: "Common issues with air filters include clogging, improper installation, and insufficient airflow. This guide provides step-by-step troubleshooting procedures for identifying and resolving air filter problems.",
			URL:     "https://example.com/docs/airfilter-guide.pdf",
			Metadata: map[string]any{
				"type":         "guide",
				"topic":        "troubleshooting",
				"component":    "air filter",
				"created_date": "2023-03-22",
			},
		},
		{
			ID:      "doc3",
			Title:   "Safety Protocols for Equipment Operation",
			Content: "Safety is paramount when operating industrial equipment. This document covers essential safety protocols, including personal protective equipment, pre-operation checks, and emergency procedures.",
			URL:     "https://example.com/docs/safety-protocols.pdf",
			Metadata: map[string]any{
				"type":         "protocol",
				"topic":        "safety",
				"importance":   "critical",
				"created_date": "2023-05-10",
			},
		},
		{
			ID:      "doc4",
			Title:   "Technical Specifications: Model X Series",
			Content: "Technical specifications for the Model X series include power requirements, dimensional constraints, operating conditions, and performance metrics. Reference this document when planning installations or upgrades.",
			URL:     "https://example.com/docs/model-x-specs.pdf",
			Metadata: map[string]any{
				"type":         "specifications",
				"topic":        "technical",
				"product":      "Model X",
				"created_date": "2023-02-18",
			},
		},
		{
			ID:      "doc5",
			Title:   "AI Ground Truth Generation Best Practices",
			Content: "Creating high-quality ground truth data is essential for training effective AI models. This document covers best practices for data annotation, quality control, and dataset management to ensure optimal model performance.",
			URL:     "https://example.com/docs/ai-ground-truth-best-practices.pdf",
			Metadata: map[string]any{
				"type":         "guide",
				"topic":        "ai",
				"subtopic":     "data preparation",
				"created_date": "2023-06-15",
			},
		},
		{
			ID:      "doc6",
			Title:   "Data Annotation Guidelines for Machine Learning",
			Content: "Proper data annotation is crucial for developing accurate machine learning models. This document provides guidelines for consistent, high-quality annotations across different data types including text, images, and audio.",
			URL:     "https://example.com/docs/data-annotation-guidelines.pdf",
			Metadata: map[string]any{
				"type":         "guidelines",
				"topic":        "data annotation",
				"subtopic":     "machine learning",
				"created_date": "2023-07-20",
			},
		},
	}
}
