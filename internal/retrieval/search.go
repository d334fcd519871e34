package retrieval

import (
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// defaultSearchFields are consulted when SearchOptions.Fields is empty.
var defaultSearchFields = []string{"title", "content"}

// SearchOptions tunes Search. The zero value means: search title and content,
// case-insensitive, query split into whitespace-separated terms.
type SearchOptions struct {
	// Fields lists the document fields to match against, with one level of
	// dot notation allowed. String-valued metadata entries are always
	// searched in addition to these.
	Fields []string

	// CaseSensitive disables the default case folding.
	CaseSensitive bool

	// ExactMatch treats the whole query as a single term instead of
	// splitting it on whitespace.
	ExactMatch bool
}

// Search keeps the documents whose searchable text contains every query term
// as a substring. The searchable text is the concatenation of the requested
// fields and all string-valued metadata entries. An empty or whitespace-only
// query returns the input unchanged.
func Search(docs []models.Document, query string, opts SearchOptions) []models.Document {
	terms := queryTerms(query, opts.ExactMatch)
	if len(terms) == 0 {
		return docs
	}

	fields := opts.Fields
	if len(fields) == 0 {
		fields = defaultSearchFields
	}

	if !opts.CaseSensitive {
		for i, t := range terms {
			terms[i] = strings.ToLower(t)
		}
	}

	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		text := searchableText(d, fields)
		if !opts.CaseSensitive {
			text = strings.ToLower(text)
		}
		if containsAll(text, terms) {
			out = append(out, d)
		}
	}
	return out
}

func queryTerms(query string, exact bool) []string {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil
	}
	if exact {
		return []string{trimmed}
	}
	return strings.Fields(trimmed)
}

// searchableText concatenates the requested field values and every
// string-valued metadata entry into one haystack.
func searchableText(d models.Document, fields []string) string {
	var sb strings.Builder
	for _, f := range fields {
		if v, ok := fieldValue(d, f); ok && v != nil {
			sb.WriteString(asString(v))
			sb.WriteByte('\n')
		}
	}
	for _, v := range d.Metadata {
		if s, ok := v.(string); ok {
			sb.WriteString(s)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func containsAll(text string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(text, t) {
			return false
		}
	}
	return true
}
