package models

// Source identifies the origin system a document was retrieved from.
type Source struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// Document is a retrieved, read-only text unit used as supporting material
// for drafting answers. RelevanceScore is assigned during search and is zero
// when the document did not come from a scored query.
type Document struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	Source         Source         `json:"source"`
	URL            string         `json:"url,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	RelevanceScore float64        `json:"relevance_score,omitempty"`
}
