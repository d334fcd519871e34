package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

func TestMemoryStore_SeededData(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	cols, err := s.ListCollections(ctx)
	require.NoError(t, err)
	require.Len(t, cols, 3)
	require.Equal(t, "col1", cols[0].ID)
	require.Equal(t, "Equipment Manuals", cols[0].Name)
	require.Equal(t, 4, cols[0].QAPairCount)

	pairs, err := s.ListQAPairs(ctx, "col1")
	require.NoError(t, err)
	require.Len(t, pairs, 4)

	pair, err := s.GetQAPair(ctx, "qa6")
	require.NoError(t, err)
	require.Equal(t, models.StatusRevisionRequested, pair.Status)
	require.Contains(t, pair.Metadata, "revision_comments")
}

func TestMemoryStore_GetCollection_NotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetCollection(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_CreateCollection(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateCollection(ctx, models.CollectionRequest{
		Name:        "New Collection",
		Description: "desc",
		Tags:        []string{"a", "b"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "New Collection", created.Name)
	require.Zero(t, created.QAPairCount)
	require.False(t, created.CreatedAt.IsZero())

	got, err := s.GetCollection(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Name, got.Name)
}

func TestMemoryStore_UpdateCollection(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	updated, err := s.UpdateCollection(ctx, "col1", models.CollectionRequest{
		Name:        "Renamed",
		Description: "new desc",
		Tags:        []string{"one"},
	})
	require.NoError(t, err)
	require.Equal(t, "Renamed", updated.Name)
	require.Equal(t, []string{"one"}, updated.Tags)
	require.True(t, updated.UpdatedAt.After(updated.CreatedAt))

	_, err = s.UpdateCollection(ctx, "missing", models.CollectionRequest{Name: "x"})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_DeleteCollection_Cascades(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.DeleteCollection(ctx, "col1"))

	_, err := s.GetCollection(ctx, "col1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	pairs, err := s.ListQAPairs(ctx, "col1")
	require.NoError(t, err)
	require.Empty(t, pairs)

	_, err = s.GetQAPair(ctx, "qa1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	err = s.DeleteCollection(ctx, "col1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_CreateQAPair(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateQAPair(ctx, "col2", models.QAPairCreate{
		Question: "Q?",
		Answer:   "A.",
	}, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, "col2", created.CollectionID)
	require.Equal(t, models.StatusReadyForReview, created.Status)
	require.Equal(t, "alice", created.CreatedBy)

	col, err := s.GetCollection(ctx, "col2")
	require.NoError(t, err)
	require.Equal(t, 3, col.QAPairCount)

	_, err = s.CreateQAPair(ctx, "missing", models.QAPairCreate{Question: "q"}, "alice")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_UpdateQAPair(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	answer := "Updated answer."
	status := models.StatusApproved
	updated, err := s.UpdateQAPair(ctx, "qa2", models.QAPairUpdate{
		Answer:   &answer,
		Status:   &status,
		Metadata: map[string]any{"priority": "low"},
	})
	require.NoError(t, err)
	require.Equal(t, "Updated answer.", updated.Answer)
	require.Equal(t, models.StatusApproved, updated.Status)
	require.Equal(t, map[string]any{"priority": "low"}, updated.Metadata)
	// Question untouched by a partial patch.
	require.Equal(t, "What are the maintenance intervals?", updated.Question)

	_, err = s.UpdateQAPair(ctx, "missing", models.QAPairUpdate{Answer: &answer})
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_DeleteQAPair(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.DeleteQAPair(ctx, "qa1"))

	_, err := s.GetQAPair(ctx, "qa1")
	require.ErrorIs(t, err, common.ErrorNotFound)

	col, err := s.GetCollection(ctx, "col1")
	require.NoError(t, err)
	require.Equal(t, 3, col.QAPairCount)

	err = s.DeleteQAPair(ctx, "qa1")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryStore_Users(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateUser(ctx, User{
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice",
		PasswordHash: "hash",
		Roles:        []string{"contributor"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	byEmail, err := s.UserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byName, err := s.UserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	_, err = s.CreateUser(ctx, User{Username: "alice", Email: "other@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.CreateUser(ctx, User{Username: "other", Email: "alice@example.com"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	_, err = s.UserByEmail(ctx, "nobody@example.com")
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestMemoryStore_CopiesAreIsolated(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	pair, err := s.GetQAPair(ctx, "qa1")
	require.NoError(t, err)
	pair.Metadata["priority"] = "tampered"
	pair.Documents[0].Metadata["version"] = "tampered"

	fresh, err := s.GetQAPair(ctx, "qa1")
	require.NoError(t, err)
	require.Equal(t, "high", fresh.Metadata["priority"])
	require.Equal(t, "2.4", fresh.Documents[0].Metadata["version"])

	cols, err := s.ListCollections(ctx)
	require.NoError(t, err)
	cols[0].Tags[0] = "tampered"

	fresh2, err := s.GetCollection(ctx, "col1")
	require.NoError(t, err)
	require.Equal(t, "manuals", fresh2.Tags[0])
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New("cosmos", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown database provider")
}
