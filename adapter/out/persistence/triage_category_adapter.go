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

// CategoryRepository implements out.CategoryRepository
type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) out.CategoryRepository {
	return &CategoryRepository{db: db}
}

type categoryRow struct {
	ID          int64          `db:"id"`
	UserID      uuid.UUID      `db:"user_id"`
	Name        string         `db:"nome"`
	Description sql.NullString `db:"descricao"`
	Color       sql.NullString `db:"cor"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (r *categoryRow) toDomain() *domain.Category {
	cat := &domain.Category{
		ID:        r.ID,
		UserID:    r.UserID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
	if r.Description.Valid {
		cat.Description = &r.Description.String
	}
	if r.Color.Valid {
		cat.Color = &r.Color.String
	}
	return cat
}

func (r *CategoryRepository) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	query := "SELECT id, user_id, nome, descricao, cor, created_at FROM categorias WHERE id = $1"

	var row categoryRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return row.toDomain(), nil
}

func (r *CategoryRepository) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	query := "SELECT id, user_id, nome, descricao, cor, created_at FROM categorias WHERE user_id = $1 ORDER BY created_at"

	var rows []categoryRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	categories := make([]*domain.Category, len(rows))
	for i := range rows {
		categories[i] = rows[i].toDomain()
	}
	return categories, nil
}

func (r *CategoryRepository) ListUsedColors(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := "SELECT cor FROM categorias WHERE user_id = $1 AND cor IS NOT NULL"

	var colors []string
	if err := r.db.SelectContext(ctx, &colors, query, userID); err != nil {
		return nil, fmt.Errorf("list used colors: %w", err)
	}
	return colors, nil
}

func (r *CategoryRepository) CreateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categorias (user_id, nome, descricao, cor, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		category.UserID, category.Name, category.Description, category.Color,
	).Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) UpdateCategory(ctx context.Context, category *domain.Category) error {
	query := `
		UPDATE categorias
		SET nome = $1, descricao = $2, cor = $3
		WHERE id = $4 AND user_id = $5`

	result, err := r.db.ExecContext(ctx, query,
		category.Name, category.Description, category.Color, category.ID, category.UserID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *CategoryRepository) DeleteCategory(ctx context.Context, id int64, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM categorias WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
