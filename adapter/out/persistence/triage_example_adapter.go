package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"triage_server/core/domain"
	"triage_server/core/port/out"
)

// ExampleRepository implements out.ExampleRepository
type ExampleRepository struct {
	db *sqlx.DB
}

func NewExampleRepository(db *sqlx.DB) out.ExampleRepository {
	return &ExampleRepository{db: db}
}

type exampleRow struct {
	ID         int64          `db:"id"`
	UserID     uuid.UUID      `db:"user_id"`
	Content    string         `db:"conteudo"`
	Reply      sql.NullString `db:"resposta"`
	CategoryID sql.NullInt64  `db:"categoria_id"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r *exampleRow) toDomain() *domain.Example {
	ex := &domain.Example{
		ID:        r.ID,
		UserID:    r.UserID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Reply.Valid {
		ex.Reply = &r.Reply.String
	}
	if r.CategoryID.Valid {
		ex.CategoryID = &r.CategoryID.Int64
	}
	return ex
}

const exampleColumns = "id, user_id, conteudo, resposta, categoria_id, created_at, updated_at"

func (r *ExampleRepository) GetExample(ctx context.Context, id int64) (*domain.Example, error) {
	query := fmt.Sprintf("SELECT %s FROM examples WHERE id = $1", exampleColumns)

	var row exampleRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get example: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ExampleRepository) ListExamples(ctx context.Context, userID uuid.UUID, categoryID *int64, limit, offset int) ([]*domain.Example, int, error) {
	where := "WHERE user_id = $1"
	args := []any{userID}
	if categoryID != nil {
		where += fmt.Sprintf(" AND categoria_id = $%d", len(args)+1)
		args = append(args, *categoryID)
	}

	var total int
	if err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM examples "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count examples: %w", err)
	}

	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(
		"SELECT %s FROM examples %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		exampleColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var rows []exampleRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list examples: %w", err)
	}

	examples := make([]*domain.Example, len(rows))
	for i := range rows {
		examples[i] = rows[i].toDomain()
	}
	return examples, total, nil
}

func (r *ExampleRepository) ListExamplesByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Example, error) {
	query := fmt.Sprintf("SELECT %s FROM examples WHERE user_id = $1 ORDER BY created_at", exampleColumns)

	var rows []exampleRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list examples by user: %w", err)
	}

	examples := make([]*domain.Example, len(rows))
	for i := range rows {
		examples[i] = rows[i].toDomain()
	}
	return examples, nil
}

func (r *ExampleRepository) CreateExample(ctx context.Context, example *domain.Example) error {
	query := `
		INSERT INTO examples (user_id, conteudo, resposta, categoria_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		example.UserID, example.Content, example.Reply, example.CategoryID,
	).Scan(&example.ID, &example.CreatedAt, &example.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create example: %w", err)
	}
	return nil
}

func (r *ExampleRepository) UpdateExample(ctx context.Context, example *domain.Example) error {
	query := `
		UPDATE examples
		SET conteudo = $1, resposta = $2, categoria_id = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		example.Content, example.Reply, example.CategoryID, example.ID, example.UserID)
	if err != nil {
		return fmt.Errorf("update example: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ExampleRepository) DeleteExample(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM examples WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete example: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
