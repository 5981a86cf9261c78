package out

import (
	"context"

	"triage_server/core/domain"
)

// EmailRepository defines the interface for email persistence
type EmailRepository interface {
	GetEmail(ctx context.Context, id int64) (*domain.Email, error)
	ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, int, error)
	CreateEmail(ctx context.Context, email *domain.Email) error
	UpdateEmail(ctx context.Context, email *domain.Email) error
	DeleteEmail(ctx context.Context, id int64) error
}
