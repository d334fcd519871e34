package models

// SearchRequest is the retrieval search payload. Filters may address
// document fields directly or metadata fields with a "metadata." prefix.
type SearchRequest struct {
	Query       string         `json:"query"`
	Filters     map[string]any `json:"filters,omitempty"`
	Page        int            `json:"page,omitempty"`
	Limit       int            `json:"limit,omitempty"`
	DataSources []string       `json:"data_sources,omitempty"`
}

// SearchResult is a page of scored documents.
//
// Field names are camelCase to match the API contract.
type SearchResult struct {
	Documents  []Document `json:"documents"`
	TotalCount int        `json:"totalCount"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// Pagination describes a page window in list envelopes.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalCount int `json:"totalCount"`
	TotalPages int `json:"totalPages"`
}

// SourceInfo describes a configured data source.
type SourceInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SourceList is the paginated data-sources envelope.
type SourceList struct {
	Data       []SourceInfo `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// Template is a prompt template offered for answer drafting.
type Template struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Prompt      string   `json:"prompt"`
	Fields      []string `json:"fields,omitempty"`
}
