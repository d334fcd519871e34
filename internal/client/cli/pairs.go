package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// Pairs refreshes and prints the QA pairs of the current selection.
func (a *App) Pairs(ctx context.Context) error {
	col := a.collections.CurrentCollection()
	if col == nil {
		printlnFn("Select a collection first: use <id>")
		return nil
	}

	if err := a.collections.FetchQAPairs(ctx, col.ID); err != nil {
		printlnFn(err.Error())
		return err
	}

	pairs := a.collections.QAPairs()
	if len(pairs) == 0 {
		printlnFn("No QA pairs yet. Add one with 'addpair' or 'draft'.")
		return nil
	}
	for _, pair := range pairs {
		printlnFn(fmt.Sprintf("%-8s [%-18s] %s", pair.ID, pair.Status, truncate(pair.Question, 60)))
		if comment, ok := pair.Metadata[models.MetaRevisionComments].(string); ok && comment != "" {
			printlnFn(fmt.Sprintf("         revision: %s", comment))
		}
	}
	return nil
}

// AddPair collects a question and an answer and stores them in the current
// selection.
func (a *App) AddPair(ctx context.Context) error {
	col := a.collections.CurrentCollection()
	if col == nil {
		printlnFn("Select a collection first: use <id>")
		return nil
	}

	question, err := getSimpleText(a.reader, "Enter question", os.Stdout)
	if err != nil {
		return err
	}
	answer, err := getMultiline(a.reader, "Enter answer (double Enter to finish):", os.Stdout)
	if err != nil {
		return err
	}
	metadata, err := getMetadata(a.reader, os.Stdout)
	if err != nil {
		return err
	}

	pair, err := a.collections.CreateQAPair(ctx, col.ID, models.QAPairCreate{
		Question: question,
		Answer:   answer,
		Metadata: metadata,
	})
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Added QA pair %s (%s)", pair.ID, pair.Status))
	return nil
}

// Approve marks a QA pair as approved.
func (a *App) Approve(ctx context.Context, id string) error {
	pair, err := a.collections.UpdateQAPairStatus(ctx, id, models.StatusApproved, "")
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Approved %s", pair.ID))
	return nil
}

// Reject marks a QA pair as rejected.
func (a *App) Reject(ctx context.Context, id string) error {
	pair, err := a.collections.UpdateQAPairStatus(ctx, id, models.StatusRejected, "")
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Rejected %s", pair.ID))
	return nil
}

// Revise asks for a comment and requests changes on a QA pair. The comment
// is mandatory; without one the reviewee has nothing to act on.
func (a *App) Revise(ctx context.Context, id string) error {
	comment, err := getSimpleText(a.reader, "Enter revision comment", os.Stdout)
	if err != nil {
		return err
	}
	if comment == "" {
		printlnFn("A comment is required to request changes.")
		return nil
	}

	pair, err := a.collections.UpdateQAPairStatus(ctx, id, models.StatusRevisionRequested, comment)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Requested changes on %s", pair.ID))
	return nil
}

// DeletePair removes a QA pair permanently.
func (a *App) DeletePair(ctx context.Context, id string) error {
	if err := a.collections.DeleteQAPair(ctx, id); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Deleted QA pair %s", id))
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
