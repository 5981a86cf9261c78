package out

import (
	"context"

	"triage_server/core/domain"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	GetCategory(ctx context.Context, id int64) (*domain.Category, error)
	ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error)
	ListUsedColors(ctx context.Context, userID uuid.UUID) ([]string, error)
	CreateCategory(ctx context.Context, category *domain.Category) error
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id int64, userID uuid.UUID) error
}

// ExampleRepository defines the interface for example persistence
type ExampleRepository interface {
	GetExample(ctx context.Context, id int64) (*domain.Example, error)
	ListExamples(ctx context.Context, userID uuid.UUID, categoryID *int64, limit, offset int) ([]*domain.Example, int, error)
	ListExamplesByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Example, error)
	CreateExample(ctx context.Context, example *domain.Example) error
	UpdateExample(ctx context.Context, example *domain.Example) error
	DeleteExample(ctx context.Context, id int64, userID uuid.UUID) error
}
