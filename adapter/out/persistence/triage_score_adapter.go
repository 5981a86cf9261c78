package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"triage_server/core/domain"
	"triage_server/core/port/out"
)

// ScoreRepository implements out.ScoreRepository
type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) out.ScoreRepository {
	return &ScoreRepository{db: db}
}

type scoreRow struct {
	ID             int64     `db:"id"`
	Classification string    `db:"classificacao"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r *scoreRow) toDomain() *domain.Score {
	return &domain.Score{
		ID:             r.ID,
		Classification: r.Classification,
		CreatedAt:      r.CreatedAt,
	}
}

func (r *ScoreRepository) GetScore(ctx context.Context, id int64) (*domain.Score, error) {
	var row scoreRow
	if err := r.db.GetContext(ctx, &row,
		"SELECT id, classificacao, created_at FROM scores WHERE id = $1", id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get score: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ScoreRepository) ListScores(ctx context.Context) ([]*domain.Score, error) {
	var rows []scoreRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT id, classificacao, created_at FROM scores ORDER BY created_at"); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}

	scores := make([]*domain.Score, len(rows))
	for i := range rows {
		scores[i] = rows[i].toDomain()
	}
	return scores, nil
}

func (r *ScoreRepository) CreateScore(ctx context.Context, score *domain.Score) error {
	err := r.db.QueryRowxContext(ctx,
		"INSERT INTO scores (classificacao, created_at) VALUES ($1, NOW()) RETURNING id, created_at",
		score.Classification,
	).Scan(&score.ID, &score.CreatedAt)
	if err != nil {
		return fmt.Errorf("create score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) UpdateScore(ctx context.Context, score *domain.Score) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE scores SET classificacao = $1 WHERE id = $2",
		score.Classification, score.ID)
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ScoreRepository) DeleteScore(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM scores WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
