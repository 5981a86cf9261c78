package out

import (
	"context"

	"triage_server/core/domain"
)

// ScoreRepository defines the interface for score persistence
type ScoreRepository interface {
	GetScore(ctx context.Context, id int64) (*domain.Score, error)
	ListScores(ctx context.Context) ([]*domain.Score, error)
	CreateScore(ctx context.Context, score *domain.Score) error
	UpdateScore(ctx context.Context, score *domain.Score) error
	DeleteScore(ctx context.Context, id int64) error
}
