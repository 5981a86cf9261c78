// Package score manages the manual quality labels operators attach to
// processed emails.
package score

import (
	"context"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
)

type Service struct {
	repo out.ScoreRepository
}

func NewService(repo out.ScoreRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetScore(ctx context.Context, id int64) (*domain.Score, error) {
	return s.repo.GetScore(ctx, id)
}

func (s *Service) ListScores(ctx context.Context) ([]*domain.Score, error) {
	return s.repo.ListScores(ctx)
}

func (s *Service) CreateScore(ctx context.Context, score *domain.Score) (*domain.Score, error) {
	if score.Classification == "" {
		return nil, apperr.MissingField("classificacao")
	}
	if err := s.repo.CreateScore(ctx, score); err != nil {
		return nil, apperr.DatabaseError("create score", err)
	}
	return score, nil
}

func (s *Service) UpdateScore(ctx context.Context, score *domain.Score) (*domain.Score, error) {
	if err := s.repo.UpdateScore(ctx, score); err != nil {
		return nil, err
	}
	return score, nil
}

func (s *Service) DeleteScore(ctx context.Context, id int64) error {
	return s.repo.DeleteScore(ctx, id)
}
