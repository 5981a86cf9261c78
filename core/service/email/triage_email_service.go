// Package email implements email CRUD outside the AI pipeline.
package email

import (
	"context"

	"triage_server/core/domain"
	"triage_server/core/port/in"
	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
	"triage_server/pkg/textutil"
)

type Service struct {
	repo out.EmailRepository
}

func NewService(repo out.EmailRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetEmail(ctx context.Context, id int64) (*domain.Email, error) {
	return s.repo.GetEmail(ctx, id)
}

func (s *Service) ListEmails(ctx context.Context, filter *domain.EmailFilter) ([]*domain.Email, int, error) {
	return s.repo.ListEmails(ctx, filter)
}

// CreateEmail stores a manually entered email. Content is normalized the
// same way the pipeline normalizes it.
func (s *Service) CreateEmail(ctx context.Context, email *domain.Email) (*domain.Email, error) {
	email.Content = textutil.Clean(email.Content)
	if email.Content == "" {
		return nil, apperr.MissingField("conteudo")
	}
	if err := s.repo.CreateEmail(ctx, email); err != nil {
		return nil, err
	}
	return email, nil
}

func (s *Service) UpdateEmail(ctx context.Context, id int64, update *in.EmailUpdate) (*domain.Email, error) {
	email, err := s.repo.GetEmail(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Content != nil && *update.Content != "" {
		email.Content = textutil.Clean(*update.Content)
	}
	if update.Subject != nil {
		email.Subject = update.Subject
	}
	if update.Classification != nil {
		email.Classification = update.Classification
	}
	if update.Reply != nil {
		email.Reply = update.Reply
	}
	if update.CategoryID != nil {
		email.CategoryID = update.CategoryID
	}
	if update.ScoreID != nil {
		email.ScoreID = update.ScoreID
	}

	if err := s.repo.UpdateEmail(ctx, email); err != nil {
		return nil, err
	}
	return email, nil
}

func (s *Service) DeleteEmail(ctx context.Context, id int64) error {
	return s.repo.DeleteEmail(ctx, id)
}

var _ in.EmailService = (*Service)(nil)
