package in

import (
	"context"

	"triage_server/core/domain"

	"github.com/google/uuid"
)

// TriageRequest carries raw intake material: direct text, or an uploaded
// .pdf/.txt file. Exactly one of Content/File must be set.
type TriageRequest struct {
	Content  string
	Filename string
	FileData []byte
	UserID   uuid.UUID
}

// TriageResult is the outcome of one pipeline run.
type TriageResult struct {
	Email          *domain.Email          `json:"email"`
	Classification *domain.Classification `json:"classification,omitempty"`
	Stage          domain.TriageStage     `json:"stage"`
}

// TriageService runs the full intake pipeline: extract, clean, classify,
// compose a reply and persist.
type TriageService interface {
	Process(ctx context.Context, req *TriageRequest) (*TriageResult, error)
}

// EmailService exposes email CRUD outside the AI pipeline.
type EmailService interface {
	GetEmail(ctx context.Context, id int64) (*domain.Email, error)
	ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, int, error)
	CreateEmail(ctx context.Context, email *domain.Email) (*domain.Email, error)
	UpdateEmail(ctx context.Context, id int64, update *EmailUpdate) (*domain.Email, error)
	DeleteEmail(ctx context.Context, id int64) error
}

// EmailUpdate is a partial email update; nil fields are left untouched.
type EmailUpdate struct {
	Content        *string `json:"conteudo,omitempty"`
	Subject        *string `json:"assunto,omitempty"`
	Classification *string `json:"classificacao,omitempty"`
	Reply          *string `json:"resposta,omitempty"`
	CategoryID     *int64  `json:"categoria_id,omitempty"`
	ScoreID        *int64  `json:"score_id,omitempty"`
}
