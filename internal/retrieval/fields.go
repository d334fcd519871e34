package retrieval

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// fieldValue resolves a field reference against a document. Supported forms:
// direct fields ("title"), source fields ("source.name"), explicit metadata
// references ("metadata.category"), and bare metadata keys ("category").
func fieldValue(d models.Document, field string) (any, bool) {
	switch field {
	case "id":
		return d.ID, true
	case "title":
		return d.Title, true
	case "content":
		return d.Content, true
	case "url":
		return d.URL, true
	case "relevance_score":
		return d.RelevanceScore, true
	}

	if name, ok := strings.CutPrefix(field, "source."); ok {
		switch name {
		case "id":
			return d.Source.ID, true
		case "name":
			return d.Source.Name, true
		case "type":
			return d.Source.Type, true
		}
		return nil, false
	}

	if name, ok := strings.CutPrefix(field, "metadata."); ok {
		v, ok := d.Metadata[name]
		return v, ok
	}

	v, ok := d.Metadata[field]
	return v, ok
}

// asNumber reports whether v carries a numeric value. JSON decoding yields
// float64, but values built in Go code may be any integer type.
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

// asTime interprets v as a point in time. Strings are tried against RFC3339
// and the timezone-less ISO forms commonly found in document metadata.
func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// asString renders v for text matching. Nil yields an empty string.
func asString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
