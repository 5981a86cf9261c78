// Package taxonomy manages the user-defined categories and examples that
// feed the dynamic classification prompt.
package taxonomy

import (
	"context"

	"github.com/google/uuid"

	"triage_server/core/domain"
	"triage_server/core/port/out"
	"triage_server/pkg/apperr"
	"triage_server/pkg/palette"
	"triage_server/pkg/textutil"
)

type Service struct {
	categories out.CategoryRepository
	examples   out.ExampleRepository
}

func NewService(categories out.CategoryRepository, examples out.ExampleRepository) *Service {
	return &Service{categories: categories, examples: examples}
}

// Categories

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.categories.GetCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context, userID uuid.UUID) ([]*domain.Category, error) {
	return s.categories.ListCategories(ctx, userID)
}

// CreateCategory stores a category, assigning the first free palette color
// when none was provided.
func (s *Service) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category.Name == "" {
		return nil, apperr.MissingField("nome")
	}

	if category.Color == nil || *category.Color == "" {
		used, err := s.categories.ListUsedColors(ctx, category.UserID)
		if err != nil {
			return nil, apperr.DatabaseError("list category colors", err)
		}
		color := palette.Pick(used)
		category.Color = &color
	}

	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return nil, apperr.DatabaseError("create category", err)
	}
	return category, nil
}

func (s *Service) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.categories.DeleteCategory(ctx, id, userID)
}

// Examples

func (s *Service) GetExample(ctx context.Context, id int64) (*domain.Example, error) {
	return s.examples.GetExample(ctx, id)
}

func (s *Service) ListExamples(ctx context.Context, userID uuid.UUID, categoryID *int64, limit, offset int) ([]*domain.Example, int, error) {
	return s.examples.ListExamples(ctx, userID, categoryID, limit, offset)
}

// CreateExample stores a worked example. Content passes through the same
// normalization as incoming email so few-shot prompts stay clean.
func (s *Service) CreateExample(ctx context.Context, example *domain.Example) (*domain.Example, error) {
	example.Content = textutil.Clean(example.Content)
	if example.Content == "" {
		return nil, apperr.MissingField("conteudo")
	}
	if err := s.examples.CreateExample(ctx, example); err != nil {
		return nil, apperr.DatabaseError("create example", err)
	}
	return example, nil
}

func (s *Service) UpdateExample(ctx context.Context, example *domain.Example) (*domain.Example, error) {
	example.Content = textutil.Clean(example.Content)
	if example.Content == "" {
		return nil, apperr.MissingField("conteudo")
	}
	if err := s.examples.UpdateExample(ctx, example); err != nil {
		return nil, err
	}
	return example, nil
}

func (s *Service) DeleteExample(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.examples.DeleteExample(ctx, id, userID)
}
