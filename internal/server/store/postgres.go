package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/gtstudio/internal/common"
	"github.com/dmitrijs2005/gtstudio/internal/dbx"
	"github.com/dmitrijs2005/gtstudio/internal/models"
	"github.com/dmitrijs2005/gtstudio/internal/server/migrations"
)

// PostgresStore persists records in PostgreSQL. Tags, metadata, documents and
// roles are stored as jsonb columns; row IDs are generated by the database.
type PostgresStore struct {
	db *sql.DB
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// NewPostgresStore opens a connection for the given DSN and applies the
// embedded migrations.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.runMigrations(context.Background()); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}
	return s, nil
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetDialect("pgx")
	if err := gooseUpContext(ctx, s.db, "."); err != nil {
		return err
	}
	return nil
}

func stringsJSON(values []string) ([]byte, error) {
	if values == nil {
		values = []string{}
	}
	return json.Marshal(values)
}

func mapJSON(m map[string]any) ([]byte, error) {
	if m == nil {
		m = map[string]any{}
	}
	return json.Marshal(m)
}

func documentsJSON(docs []models.Document) ([]byte, error) {
	if docs == nil {
		docs = []models.Document{}
	}
	return json.Marshal(docs)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCollection(row scanner) (models.Collection, error) {
	var c models.Collection
	var tags, metadata []byte

	err := row.Scan(&c.ID, &c.Name, &c.Description, &tags, &metadata, &c.QAPairCount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return models.Collection{}, err
	}
	if err := json.Unmarshal(tags, &c.Tags); err != nil {
		return models.Collection{}, err
	}
	if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
		return models.Collection{}, err
	}
	return c, nil
}

func scanQAPair(row scanner) (models.QAPair, error) {
	var p models.QAPair
	var documents, metadata []byte

	err := row.Scan(&p.ID, &p.CollectionID, &p.Question, &p.Answer, &p.Status,
		&documents, &metadata, &p.CreatedBy, &p.ReviewedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.QAPair{}, err
	}
	if err := json.Unmarshal(documents, &p.Documents); err != nil {
		return models.QAPair{}, err
	}
	if err := json.Unmarshal(metadata, &p.Metadata); err != nil {
		return models.QAPair{}, err
	}
	return p, nil
}

func scanUser(row scanner) (User, error) {
	var u User
	var roles []byte

	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.PasswordHash, &roles, &u.CreatedAt)
	if err != nil {
		return User{}, err
	}
	if err := json.Unmarshal(roles, &u.Roles); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *PostgresStore) ListCollections(ctx context.Context) ([]models.Collection, error) {
	query := `
		SELECT id, name, description, tags, metadata, qa_pair_count, created_at, updated_at
		FROM collections
		ORDER BY created_at
		`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) GetCollection(ctx context.Context, id string) (models.Collection, error) {
	query := `
		SELECT id, name, description, tags, metadata, qa_pair_count, created_at, updated_at
		FROM collections
		WHERE id = $1
		`

	c, err := scanCollection(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Collection{}, common.ErrorNotFound
		}
		return models.Collection{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) CreateCollection(ctx context.Context, req models.CollectionRequest) (models.Collection, error) {
	tags, err := stringsJSON(req.Tags)
	if err != nil {
		return models.Collection{}, err
	}
	metadata, err := mapJSON(req.Metadata)
	if err != nil {
		return models.Collection{}, err
	}

	query := `
		INSERT INTO collections (name, description, tags, metadata)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, tags, metadata, qa_pair_count, created_at, updated_at
		`

	c, err := scanCollection(s.db.QueryRowContext(ctx, query, req.Name, req.Description, tags, metadata))
	if err != nil {
		return models.Collection{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) UpdateCollection(ctx context.Context, id string, req models.CollectionRequest) (models.Collection, error) {
	tags, err := stringsJSON(req.Tags)
	if err != nil {
		return models.Collection{}, err
	}
	metadata, err := mapJSON(req.Metadata)
	if err != nil {
		return models.Collection{}, err
	}

	query := `
		UPDATE collections
		SET name = $2, description = $3, tags = $4, metadata = $5, updated_at = now()
		WHERE id = $1
		RETURNING id, name, description, tags, metadata, qa_pair_count, created_at, updated_at
		`

	c, err := scanCollection(s.db.QueryRowContext(ctx, query, id, req.Name, req.Description, tags, metadata))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Collection{}, common.ErrorNotFound
		}
		return models.Collection{}, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (s *PostgresStore) DeleteCollection(ctx context.Context, id string) error {
	query := `DELETE FROM collections WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func (s *PostgresStore) ListQAPairs(ctx context.Context, collectionID string) ([]models.QAPair, error) {
	query := `
		SELECT id, collection_id, question, answer, status, documents, metadata, created_by, reviewed_by, created_at, updated_at
		FROM qa_pairs
		WHERE collection_id = $1
		ORDER BY created_at
		`

	rows, err := s.db.QueryContext(ctx, query, collectionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.QAPair
	for rows.Next() {
		p, err := scanQAPair(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) GetQAPair(ctx context.Context, id string) (models.QAPair, error) {
	query := `
		SELECT id, collection_id, question, answer, status, documents, metadata, created_by, reviewed_by, created_at, updated_at
		FROM qa_pairs
		WHERE id = $1
		`

	p, err := scanQAPair(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QAPair{}, common.ErrorNotFound
		}
		return models.QAPair{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// CreateQAPair inserts the pair and bumps the owning collection's stored
// count in one transaction. A missing collection yields common.ErrorNotFound.
func (s *PostgresStore) CreateQAPair(ctx context.Context, collectionID string, pair models.QAPairCreate, createdBy string) (models.QAPair, error) {
	status := pair.Status
	if status == "" {
		status = models.StatusReadyForReview
	}

	documents, err := documentsJSON(pair.Documents)
	if err != nil {
		return models.QAPair{}, err
	}
	metadata, err := mapJSON(pair.Metadata)
	if err != nil {
		return models.QAPair{}, err
	}

	var created models.QAPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		countQuery := `UPDATE collections SET qa_pair_count = qa_pair_count + 1 WHERE id = $1`

		res, err := tx.ExecContext(ctx, countQuery, collectionID)
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected error: %w", err)
		}
		if n == 0 {
			return common.ErrorNotFound
		}

		insertQuery := `
			INSERT INTO qa_pairs (collection_id, question, answer, status, documents, metadata, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, collection_id, question, answer, status, documents, metadata, created_by, reviewed_by, created_at, updated_at
			`

		created, err = scanQAPair(tx.QueryRowContext(ctx, insertQuery,
			collectionID, pair.Question, pair.Answer, status, documents, metadata, createdBy))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.QAPair{}, err
	}
	return created, nil
}

// UpdateQAPair patches only the fields present in the update. A non-nil
// Metadata replaces the stored mapping wholesale; merge policy belongs to the
// service layer.
func (s *PostgresStore) UpdateQAPair(ctx context.Context, id string, patch models.QAPairUpdate) (models.QAPair, error) {
	var documents, metadata any
	if patch.Documents != nil {
		b, err := documentsJSON(patch.Documents)
		if err != nil {
			return models.QAPair{}, err
		}
		documents = b
	}
	if patch.Metadata != nil {
		b, err := mapJSON(patch.Metadata)
		if err != nil {
			return models.QAPair{}, err
		}
		metadata = b
	}

	query := `
		UPDATE qa_pairs
		SET question = COALESCE($2, question),
			answer = COALESCE($3, answer),
			status = COALESCE($4, status),
			reviewed_by = COALESCE($5, reviewed_by),
			documents = COALESCE($6, documents),
			metadata = COALESCE($7, metadata),
			updated_at = now()
		WHERE id = $1
		RETURNING id, collection_id, question, answer, status, documents, metadata, created_by, reviewed_by, created_at, updated_at
		`

	p, err := scanQAPair(s.db.QueryRowContext(ctx, query,
		id, patch.Question, patch.Answer, patch.Status, patch.ReviewedBy, documents, metadata))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.QAPair{}, common.ErrorNotFound
		}
		return models.QAPair{}, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// DeleteQAPair removes the pair and decrements the owning collection's stored
// count in one transaction.
func (s *PostgresStore) DeleteQAPair(ctx context.Context, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		deleteQuery := `DELETE FROM qa_pairs WHERE id = $1 RETURNING collection_id`

		var collectionID string
		err := tx.QueryRowContext(ctx, deleteQuery, id).Scan(&collectionID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return common.ErrorNotFound
			}
			return fmt.Errorf("db error: %w", err)
		}

		countQuery := `UPDATE collections SET qa_pair_count = GREATEST(qa_pair_count - 1, 0) WHERE id = $1`

		if _, err := tx.ExecContext(ctx, countQuery, collectionID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		return nil
	})
}

func (s *PostgresStore) CreateUser(ctx context.Context, user User) (User, error) {
	roles, err := stringsJSON(user.Roles)
	if err != nil {
		return User{}, err
	}

	query := `
		INSERT INTO users (username, email, full_name, password_hash, roles)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, full_name, password_hash, roles, created_at
		`

	created, err := scanUser(s.db.QueryRowContext(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash, roles))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return User{}, common.ErrorAlreadyExists
		}
		return User{}, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (s *PostgresStore) UserByEmail(ctx context.Context, email string) (User, error) {
	query := `
		SELECT id, username, email, full_name, password_hash, roles, created_at
		FROM users
		WHERE email = $1
		`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, common.ErrorNotFound
		}
		return User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) UserByUsername(ctx context.Context, username string) (User, error) {
	query := `
		SELECT id, username, email, full_name, password_hash, roles, created_at
		FROM users
		WHERE username = $1
		`

	u, err := scanUser(s.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, common.ErrorNotFound
		}
		return User{}, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
