// Package persistence implements the repository ports on PostgreSQL.
package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"triage_server/core/domain"
	"triage_server/core/port/out"
)

// EmailRepository implements out.EmailRepository
type EmailRepository struct {
	db *sqlx.DB
}

func NewEmailRepository(db *sqlx.DB) out.EmailRepository {
	return &EmailRepository{db: db}
}

type emailRow struct {
	ID             int64           `db:"id"`
	Content        string          `db:"conteudo"`
	Subject        sql.NullString  `db:"assunto"`
	Classification sql.NullString  `db:"classificacao"`
	Intent         sql.NullString  `db:"intent"`
	Evidences      pq.StringArray  `db:"evidencias"`
	Confidence     sql.NullFloat64 `db:"conf"`
	Rationale      sql.NullString  `db:"rationale"`
	Reply          sql.NullString  `db:"resposta"`
	CategoryID     sql.NullInt64   `db:"categoria_id"`
	ScoreID        sql.NullInt64   `db:"score_id"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func (r *emailRow) toDomain() *domain.Email {
	email := &domain.Email{
		ID:        r.ID,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Subject.Valid {
		email.Subject = &r.Subject.String
	}
	if r.Classification.Valid {
		email.Classification = &r.Classification.String
	}
	if r.Intent.Valid {
		email.Intent = &r.Intent.String
	}
	if len(r.Evidences) > 0 {
		email.Evidences = []string(r.Evidences)
	}
	if r.Confidence.Valid {
		email.Confidence = &r.Confidence.Float64
	}
	if r.Rationale.Valid {
		email.Rationale = &r.Rationale.String
	}
	if r.Reply.Valid {
		email.Reply = &r.Reply.String
	}
	if r.CategoryID.Valid {
		email.CategoryID = &r.CategoryID.Int64
	}
	if r.ScoreID.Valid {
		email.ScoreID = &r.ScoreID.Int64
	}
	return email
}

const emailColumns = "id, conteudo, assunto, classificacao, intent, evidencias, conf, rationale, resposta, categoria_id, score_id, created_at, updated_at"

func (r *EmailRepository) GetEmail(ctx context.Context, id int64) (*domain.Email, error) {
	query := fmt.Sprintf("SELECT %s FROM emails WHERE id = $1", emailColumns)

	var row emailRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get email: %w", err)
	}
	return row.toDomain(), nil
}

func (r *EmailRepository) ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, int, error) {
	conditions := []string{"TRUE"}
	var args []interface{}
	argIdx := 1

	if filter.CategoryID != nil {
		conditions = append(conditions, fmt.Sprintf("categoria_id = $%d", argIdx))
		args = append(args, *filter.CategoryID)
		argIdx++
	}
	if filter.ScoreID != nil {
		conditions = append(conditions, fmt.Sprintf("score_id = $%d", argIdx))
		args = append(args, *filter.ScoreID)
		argIdx++
	}
	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM emails WHERE %s", where)
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count emails: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	query := fmt.Sprintf(
		"SELECT %s FROM emails WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		emailColumns, where, argIdx, argIdx+1)
	args = append(args, limit, filter.Offset)

	var rows []emailRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list emails: %w", err)
	}

	emails := make([]*domain.Email, len(rows))
	for i := range rows {
		emails[i] = rows[i].toDomain()
	}
	return emails, total, nil
}

func (r *EmailRepository) CreateEmail(ctx context.Context, email *domain.Email) error {
	query := `
		INSERT INTO emails (conteudo, assunto, classificacao, intent, evidencias, conf, rationale,
		                    resposta, categoria_id, score_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		email.Content, email.Subject, email.Classification, email.Intent,
		pq.Array(email.Evidences), email.Confidence, email.Rationale,
		email.Reply, email.CategoryID, email.ScoreID,
	).Scan(&email.ID, &email.CreatedAt, &email.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create email: %w", err)
	}
	return nil
}

func (r *EmailRepository) UpdateEmail(ctx context.Context, email *domain.Email) error {
	query := `
		UPDATE emails
		SET conteudo = $1, assunto = $2, classificacao = $3, intent = $4,
		    evidencias = $5, conf = $6, rationale = $7, resposta = $8,
		    categoria_id = $9, score_id = $10, updated_at = NOW()
		WHERE id = $11`

	result, err := r.db.ExecContext(ctx, query,
		email.Content, email.Subject, email.Classification, email.Intent,
		pq.Array(email.Evidences), email.Confidence, email.Rationale,
		email.Reply, email.CategoryID, email.ScoreID, email.ID)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EmailRepository) DeleteEmail(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM emails WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete email: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
