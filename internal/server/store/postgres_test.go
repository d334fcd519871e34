package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/models"
)

func newStoreWithMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return &PostgresStore{db: db}, mock, db
}

func strPtr(v string) *string { return &v }

const collectionColumnsRe = `id,\s*name,\s*description,\s*tags,\s*metadata,\s*qa_pair_count,\s*created_at,\s*updated_at`
const qaPairColumnsRe = `id,\s*collection_id,\s*question,\s*answer,\s*status,\s*documents,\s*metadata,\s*created_by,\s*reviewed_by,\s*created_at,\s*updated_at`
const userColumnsRe = `id,\s*username,\s*email,\s*full_name,\s*password_hash,\s*roles,\s*created_at`

func collectionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "tags", "metadata", "qa_pair_count", "created_at", "updated_at"})
}

func qaPairRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "collection_id", "question", "answer", "status", "documents", "metadata", "created_by", "reviewed_by", "created_at", "updated_at"})
}

func TestListCollections_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + collectionColumnsRe + `\s+FROM\s+collections\s+ORDER\s+BY\s+created_at\s*$`

	now := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := collectionRows().
		AddRow("c-1", "Equipment Manuals", "manuals", []byte(`["manuals"]`), []byte(`{}`), 4, now, now).
		AddRow("c-2", "Internal Wiki", "wiki", []byte(`[]`), []byte(`{"owner":"hr"}`), 2, now, now)
	mock.ExpectQuery(q).WillReturnRows(rows)

	got, err := s.ListCollections(context.Background())
	if err != nil {
		t.Fatalf("ListCollections error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("unexpected count: %d", len(got))
	}
	if got[0].ID != "c-1" || got[0].QAPairCount != 4 || got[0].Tags[0] != "manuals" {
		t.Fatalf("unexpected collection: %+v", got[0])
	}
	if got[1].Metadata["owner"] != "hr" {
		t.Fatalf("unexpected metadata: %+v", got[1].Metadata)
	}
}

func TestGetCollection_NotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + collectionColumnsRe + `\s+FROM\s+collections\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := s.GetCollection(context.Background(), "ghost")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetCollection_DBError(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + collectionColumnsRe + `\s+FROM\s+collections\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("c-1").WillReturnError(errors.New("db down"))

	_, err := s.GetCollection(context.Background(), "c-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreateCollection_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+collections\s*\(name,\s*description,\s*tags,\s*metadata\)\s*` +
		`VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4\)\s*RETURNING\s+` + collectionColumnsRe + `\s*$`

	now := time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC)
	rows := collectionRows().
		AddRow("c-9", "New Collection", "desc", []byte(`["a","b"]`), []byte(`{}`), 0, now, now)
	mock.ExpectQuery(q).
		WithArgs("New Collection", "desc", []byte(`["a","b"]`), []byte(`{}`)).
		WillReturnRows(rows)

	got, err := s.CreateCollection(context.Background(), models.CollectionRequest{
		Name:        "New Collection",
		Description: "desc",
		Tags:        []string{"a", "b"},
	})
	if err != nil {
		t.Fatalf("CreateCollection error: %v", err)
	}
	if got.ID != "c-9" || got.QAPairCount != 0 {
		t.Fatalf("unexpected collection: %+v", got)
	}
}

func TestUpdateCollection_NotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+collections\s+SET\s+name\s*=\s*\$2,\s*description\s*=\s*\$3,\s*tags\s*=\s*\$4,\s*metadata\s*=\s*\$5,\s*updated_at\s*=\s*now\(\)\s+` +
		`WHERE\s+id\s*=\s*\$1\s+RETURNING\s+` + collectionColumnsRe + `\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost", "x", "", []byte(`[]`), []byte(`{}`)).
		WillReturnError(sql.ErrNoRows)

	_, err := s.UpdateCollection(context.Background(), "ghost", models.CollectionRequest{Name: "x"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteCollection(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+collections\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectExec(q).WithArgs("c-1").WillReturnResult(sqlmock.NewResult(0, 1))
	if err := s.DeleteCollection(context.Background(), "c-1"); err != nil {
		t.Fatalf("DeleteCollection error: %v", err)
	}

	mock.ExpectExec(q).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	if err := s.DeleteCollection(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestGetQAPair_Found(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + qaPairColumnsRe + `\s+FROM\s+qa_pairs\s+WHERE\s+id\s*=\s*\$1\s*$`

	now := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	docs := []byte(`[{"id":"doc1","title":"Equipment Manual","content":"...","source":{"id":"tech_docs","name":"Technical Documentation","type":"manual"}}]`)
	rows := qaPairRows().
		AddRow("qa-1", "c-1", "How?", "Like this.", "approved", docs, []byte(`{"priority":"high"}`), "demo_user", "admin", now, now)
	mock.ExpectQuery(q).WithArgs("qa-1").WillReturnRows(rows)

	got, err := s.GetQAPair(context.Background(), "qa-1")
	if err != nil {
		t.Fatalf("GetQAPair error: %v", err)
	}
	if got.Status != "approved" || got.ReviewedBy != "admin" {
		t.Fatalf("unexpected pair: %+v", got)
	}
	if len(got.Documents) != 1 || got.Documents[0].Source.ID != "tech_docs" {
		t.Fatalf("unexpected documents: %+v", got.Documents)
	}
	if got.Metadata["priority"] != "high" {
		t.Fatalf("unexpected metadata: %+v", got.Metadata)
	}
}

func TestListQAPairs_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + qaPairColumnsRe + `\s+FROM\s+qa_pairs\s+WHERE\s+collection_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s*$`

	now := time.Date(2023, 6, 1, 10, 0, 0, 0, time.UTC)
	rows := qaPairRows().
		AddRow("qa-1", "c-1", "Q1?", "A1.", "approved", []byte(`[]`), []byte(`{}`), "demo_user", "", now, now).
		AddRow("qa-2", "c-1", "Q2?", "A2.", "ready_for_review", []byte(`[]`), []byte(`{}`), "demo_user", "", now, now)
	mock.ExpectQuery(q).WithArgs("c-1").WillReturnRows(rows)

	got, err := s.ListQAPairs(context.Background(), "c-1")
	if err != nil {
		t.Fatalf("ListQAPairs error: %v", err)
	}
	if len(got) != 2 || got[1].ID != "qa-2" {
		t.Fatalf("unexpected pairs: %+v", got)
	}
}

func TestCreateQAPair_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	countQ := `(?s)^UPDATE\s+collections\s+SET\s+qa_pair_count\s*=\s*qa_pair_count\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1\s*$`
	insertQ := `(?s)^INSERT\s+INTO\s+qa_pairs\s*\(collection_id,\s*question,\s*answer,\s*status,\s*documents,\s*metadata,\s*created_by\)\s*` +
		`VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)\s*RETURNING\s+` + qaPairColumnsRe + `\s*$`

	now := time.Date(2023, 7, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectExec(countQ).WithArgs("c-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(insertQ).
		WithArgs("c-1", "Q?", "A.", "ready_for_review", []byte(`[]`), []byte(`{}`), "alice").
		WillReturnRows(qaPairRows().
			AddRow("qa-9", "c-1", "Q?", "A.", "ready_for_review", []byte(`[]`), []byte(`{}`), "alice", "", now, now))
	mock.ExpectCommit()

	got, err := s.CreateQAPair(context.Background(), "c-1", models.QAPairCreate{Question: "Q?", Answer: "A."}, "alice")
	if err != nil {
		t.Fatalf("CreateQAPair error: %v", err)
	}
	if got.ID != "qa-9" || got.Status != models.StatusReadyForReview || got.CreatedBy != "alice" {
		t.Fatalf("unexpected pair: %+v", got)
	}
}

func TestCreateQAPair_CollectionNotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	countQ := `(?s)^UPDATE\s+collections\s+SET\s+qa_pair_count\s*=\s*qa_pair_count\s*\+\s*1\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectBegin()
	mock.ExpectExec(countQ).WithArgs("ghost").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := s.CreateQAPair(context.Background(), "ghost", models.QAPairCreate{Question: "Q?"}, "alice")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestUpdateQAPair_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+qa_pairs\s+SET\s+question\s*=\s*COALESCE\(\$2,\s*question\),\s*` +
		`answer\s*=\s*COALESCE\(\$3,\s*answer\),\s*status\s*=\s*COALESCE\(\$4,\s*status\),\s*` +
		`reviewed_by\s*=\s*COALESCE\(\$5,\s*reviewed_by\),\s*documents\s*=\s*COALESCE\(\$6,\s*documents\),\s*` +
		`metadata\s*=\s*COALESCE\(\$7,\s*metadata\),\s*updated_at\s*=\s*now\(\)\s+` +
		`WHERE\s+id\s*=\s*\$1\s+RETURNING\s+` + qaPairColumnsRe + `\s*$`

	now := time.Date(2023, 7, 2, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).
		WithArgs("qa-1", nil, "Better answer.", "approved", "admin", nil, []byte(`{"priority":"low"}`)).
		WillReturnRows(qaPairRows().
			AddRow("qa-1", "c-1", "Q?", "Better answer.", "approved", []byte(`[]`), []byte(`{"priority":"low"}`), "demo_user", "admin", now, now))

	got, err := s.UpdateQAPair(context.Background(), "qa-1", models.QAPairUpdate{
		Answer:     strPtr("Better answer."),
		Status:     strPtr("approved"),
		ReviewedBy: strPtr("admin"),
		Metadata:   map[string]any{"priority": "low"},
	})
	if err != nil {
		t.Fatalf("UpdateQAPair error: %v", err)
	}
	if got.Answer != "Better answer." || got.Status != "approved" || got.ReviewedBy != "admin" {
		t.Fatalf("unexpected pair: %+v", got)
	}
}

func TestUpdateQAPair_NotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+qa_pairs\s+SET\s+.*WHERE\s+id\s*=\s*\$1\s+RETURNING\s+` + qaPairColumnsRe + `\s*$`

	mock.ExpectQuery(q).
		WithArgs("ghost", nil, nil, "approved", nil, nil, nil).
		WillReturnError(sql.ErrNoRows)

	_, err := s.UpdateQAPair(context.Background(), "ghost", models.QAPairUpdate{Status: strPtr("approved")})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDeleteQAPair_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	deleteQ := `(?s)^DELETE\s+FROM\s+qa_pairs\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+collection_id\s*$`
	countQ := `(?s)^UPDATE\s+collections\s+SET\s+qa_pair_count\s*=\s*GREATEST\(qa_pair_count\s*-\s*1,\s*0\)\s+WHERE\s+id\s*=\s*\$1\s*$`

	mock.ExpectBegin()
	mock.ExpectQuery(deleteQ).WithArgs("qa-1").
		WillReturnRows(sqlmock.NewRows([]string{"collection_id"}).AddRow("c-1"))
	mock.ExpectExec(countQ).WithArgs("c-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.DeleteQAPair(context.Background(), "qa-1"); err != nil {
		t.Fatalf("DeleteQAPair error: %v", err)
	}
}

func TestDeleteQAPair_NotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	deleteQ := `(?s)^DELETE\s+FROM\s+qa_pairs\s+WHERE\s+id\s*=\s*\$1\s+RETURNING\s+collection_id\s*$`

	mock.ExpectBegin()
	mock.ExpectQuery(deleteQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	if err := s.DeleteQAPair(context.Background(), "ghost"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestCreateUser_Success(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*full_name,\s*password_hash,\s*roles\)\s*` +
		`VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+` + userColumnsRe + `\s*$`

	now := time.Date(2023, 7, 3, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name", "password_hash", "roles", "created_at"}).
		AddRow("u-1", "alice", "alice@example.com", "Alice", "hash", []byte(`["contributor"]`), now)
	mock.ExpectQuery(q).
		WithArgs("alice", "alice@example.com", "Alice", "hash", []byte(`["contributor"]`)).
		WillReturnRows(rows)

	got, err := s.CreateUser(context.Background(), User{
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice",
		PasswordHash: "hash",
		Roles:        []string{"contributor"},
	})
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if got.ID != "u-1" || got.Roles[0] != "contributor" {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestCreateUser_Conflict(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*full_name,\s*password_hash,\s*roles\)\s*` +
		`VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5\)\s*RETURNING\s+` + userColumnsRe + `\s*$`

	mock.ExpectQuery(q).
		WithArgs("alice", "alice@example.com", "", "hash", []byte(`[]`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := s.CreateUser(context.Background(), User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	})
	if !errors.Is(err, common.ErrorAlreadyExists) {
		t.Fatalf("want common.ErrorAlreadyExists, got %v", err)
	}
}

func TestUserByEmail_NotFound(t *testing.T) {
	s, mock, db := newStoreWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+` + userColumnsRe + `\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`

	mock.ExpectQuery(q).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := s.UserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestRunMigrations_Success(t *testing.T) {
	s, _, db := newStoreWithMock(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	if err := s.runMigrations(context.Background()); err != nil {
		t.Fatalf("runMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	s, _, db := newStoreWithMock(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	if err := s.runMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
