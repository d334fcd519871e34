package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/retrieval"
)

// maxDraftDocuments caps how many retrieved documents are attached to a
// generation request and to the saved QA pair.
const maxDraftDocuments = 3

// Search queries the retrieval backend and prints the first page of matches.
// The results become the working set for the filter and sortdocs commands.
func (a *App) Search(ctx context.Context, query string) error {
	a.ui.SetPageLoading(true)
	result, err := a.api.SearchDocuments(ctx, models.SearchRequest{Query: query, Page: 1, Limit: 10})
	a.ui.SetPageLoading(false)
	if err != nil {
		printlnFn("Search failed:", err)
		return err
	}

	a.docs = result.Documents

	if result.TotalCount == 0 {
		printlnFn("No documents matched.")
		return nil
	}
	printlnFn(fmt.Sprintf("Found %d documents (page %d of %d)", result.TotalCount, result.Page, result.TotalPages))
	printDocs(a.docs)
	return nil
}

func printDocs(docs []models.Document) {
	for _, doc := range docs {
		printlnFn(fmt.Sprintf("%-8s %.2f  %s [%s]", doc.ID, doc.RelevanceScore, truncate(doc.Title, 50), doc.Source.Name))
	}
}

// FilterDocs narrows the working set from the last search. With no argument
// it lists the filterable metadata fields and their values. An argument of
// the form key=value filters on metadata; anything else is matched as search
// terms against titles, content and metadata.
func (a *App) FilterDocs(ctx context.Context, arg string) error {
	if len(a.docs) == 0 {
		printlnFn("Run 'search <query>' first.")
		return nil
	}

	arg = strings.TrimSpace(arg)
	if arg == "" {
		fields := retrieval.StringMetadataFields(a.docs)
		if len(fields) == 0 {
			printlnFn("No filterable metadata fields in the current results.")
			return nil
		}
		printlnFn("Filterable fields:")
		for _, f := range fields {
			printlnFn(fmt.Sprintf("  %s: %s", f, strings.Join(retrieval.UniqueMetadataValues(a.docs, f), ", ")))
		}
		return nil
	}

	if key, value, ok := strings.Cut(arg, "="); ok {
		a.docs = retrieval.FilterByMetadata(a.docs, map[string]any{strings.TrimSpace(key): strings.TrimSpace(value)})
	} else {
		a.docs = retrieval.Search(a.docs, arg, retrieval.SearchOptions{})
	}

	printlnFn(fmt.Sprintf("%d documents left", len(a.docs)))
	printDocs(a.docs)
	return nil
}

// SortDocs reorders the working set by the given field, ascending unless
// "desc" is requested.
func (a *App) SortDocs(ctx context.Context, field, dir string) error {
	if len(a.docs) == 0 {
		printlnFn("Run 'search <query>' first.")
		return nil
	}

	direction := retrieval.Ascending
	if strings.EqualFold(dir, "desc") {
		direction = retrieval.Descending
	}

	a.docs = retrieval.SortDocuments(a.docs, field, direction, retrieval.SortOptions{})
	printDocs(a.docs)
	return nil
}

// Sources prints the registered data sources.
func (a *App) Sources(ctx context.Context) error {
	list, err := a.api.ListSources(ctx, 1, 20)
	if err != nil {
		printlnFn("Failed to list data sources:", err)
		return err
	}
	for _, src := range list.Data {
		printlnFn(fmt.Sprintf("%-10s %-20s %s", src.ID, src.Name, src.Description))
	}
	return nil
}

// Templates prints the available prompt templates.
func (a *App) Templates(ctx context.Context) error {
	templates, err := a.api.ListTemplates(ctx)
	if err != nil {
		printlnFn("Failed to list templates:", err)
		return err
	}
	for _, tpl := range templates {
		printlnFn(fmt.Sprintf("%-12s %-25s %s", tpl.ID, tpl.Name, tpl.Description))
	}
	return nil
}

// Draft runs the full drafting flow: retrieve documents for a question,
// generate an answer from them, and optionally store the result as a QA pair
// in the current selection.
func (a *App) Draft(ctx context.Context) error {
	question, err := getSimpleText(a.reader, "Enter question", os.Stdout)
	if err != nil {
		return err
	}
	if question == "" {
		printlnFn("A question is required.")
		return nil
	}

	a.ui.SetPageLoading(true)
	result, err := a.api.SearchDocuments(ctx, models.SearchRequest{Query: question, Page: 1, Limit: 10})
	a.ui.SetPageLoading(false)
	if err != nil {
		printlnFn("Search failed:", err)
		return err
	}

	docs := result.Documents
	if len(docs) > maxDraftDocuments {
		docs = docs[:maxDraftDocuments]
	}
	printlnFn(fmt.Sprintf("Using %d of %d retrieved documents as context.", len(docs), result.TotalCount))

	rules, err := getMultiline(a.reader, "Enter custom rules (optional, double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}

	a.ui.SetPageLoading(true)
	answer, err := a.api.Generate(ctx, models.GenerateRequest{Question: question, Documents: docs, CustomRules: rules})
	a.ui.SetPageLoading(false)
	if err != nil {
		printlnFn("Generation failed:", err)
		return err
	}

	printlnFn("")
	printlnFn(answer.Answer)
	printlnFn("")
	printlnFn(fmt.Sprintf("model=%s tokens=%d finish=%s", answer.Model, answer.TokenUsage.TotalTokens, answer.FinishReason))

	col := a.collections.CurrentCollection()
	if col == nil {
		printlnFn("Select a collection with 'use <id>' to save drafts.")
		return nil
	}

	save, err := getSimpleText(a.reader, fmt.Sprintf("Save to %q? (y/n)", col.Name), os.Stdout)
	if err != nil {
		return err
	}
	if !strings.EqualFold(save, "y") {
		return nil
	}

	pair, err := a.collections.CreateQAPair(ctx, col.ID, models.QAPairCreate{
		Question:  question,
		Answer:    answer.Answer,
		Documents: docs,
	})
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Saved as QA pair %s (%s)", pair.ID, pair.Status))
	return nil
}
