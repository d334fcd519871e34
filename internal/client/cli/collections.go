package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gtstudio/internal/models"
)

// Collections refreshes and prints the collection list.
func (a *App) Collections(ctx context.Context) error {
	if err := a.collections.FetchCollections(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}

	cols := a.collections.Collections()
	if len(cols) == 0 {
		printlnFn("No collections yet. Create one with 'newcol'.")
		return nil
	}
	for _, col := range cols {
		printlnFn(fmt.Sprintf("%-8s %-30s %3d pairs  %s", col.ID, col.Name, col.QAPairCount, strings.Join(col.Tags, ",")))
	}
	return nil
}

// Use selects a collection and loads its QA pairs.
func (a *App) Use(ctx context.Context, id string) error {
	if err := a.collections.FetchCollection(ctx, id); err != nil {
		printlnFn(err.Error())
		return err
	}
	if err := a.collections.FetchQAPairs(ctx, id); err != nil {
		printlnFn(err.Error())
		return err
	}

	col := a.collections.CurrentCollection()
	printlnFn(fmt.Sprintf("Using collection %q (%d pairs)", col.Name, col.QAPairCount))
	return nil
}

// NewCollection prompts for the collection fields and creates it.
func (a *App) NewCollection(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return err
	}
	tagLine, err := getSimpleText(a.reader, "Enter tags (comma separated, optional)", os.Stdout)
	if err != nil {
		return err
	}

	col, err := a.collections.CreateCollection(ctx, name, description, splitTags(tagLine))
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Created collection %s (%s)", col.Name, col.ID))
	return nil
}

// EditCollection prompts for replacement fields and updates the collection.
func (a *App) EditCollection(ctx context.Context, id string) error {
	name, err := getSimpleText(a.reader, "Enter new name", os.Stdout)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Enter new description", os.Stdout)
	if err != nil {
		return err
	}
	tagLine, err := getSimpleText(a.reader, "Enter new tags (comma separated, optional)", os.Stdout)
	if err != nil {
		return err
	}

	col, err := a.collections.UpdateCollection(ctx, id, models.CollectionRequest{
		Name:        name,
		Description: description,
		Tags:        splitTags(tagLine),
	})
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Updated collection %s", col.ID))
	return nil
}

// DeleteCollection removes a collection and everything in it.
func (a *App) DeleteCollection(ctx context.Context, id string) error {
	if err := a.collections.DeleteCollection(ctx, id); err != nil {
		printlnFn(err.Error())
		return err
	}
	printlnFn(fmt.Sprintf("Deleted collection %s", id))
	return nil
}

// splitTags turns a comma separated line into a trimmed tag list.
func splitTags(line string) []string {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	parts := strings.Split(line, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
