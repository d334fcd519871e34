// Package retrieval provides pure, synchronous transformations over
// in-memory document slices: free-text search, metadata filtering, and
// ordering, plus helpers for building filter options from document metadata.
//
// # Overview
//
// All functions are side-effect free: they never mutate their input slice and
// perform no I/O. They are meant to be recomputed on every relevant input
// change by whatever presentation layer consumes them.
//
// Field arguments support one level of dot notation ("source.name",
// "metadata.category"). A bare name that is not a known document field is
// looked up in the document's metadata mapping.
//
// # Typical use
//
//	docs = retrieval.Search(docs, "air filter", retrieval.SearchOptions{})
//	docs = retrieval.FilterByMetadata(docs, map[string]any{"category": "maintenance"})
//	docs = retrieval.SortDocuments(docs, "relevance_score", retrieval.Descending, retrieval.SortOptions{})
package retrieval
