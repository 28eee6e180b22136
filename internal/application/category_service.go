package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/invenlab/inventory-api/internal/domain/entity"
	repo "github.com/invenlab/inventory-api/internal/domain/repository"
)

// CategoryService owns the category table. Deleting a category that
// still has products is rejected, never cascaded.
type CategoryService struct {
	Categories repo.CategoryRepository
	Logger     *logrus.Logger
}

func NewCategoryService(categories repo.CategoryRepository, logger *logrus.Logger) *CategoryService {
	return &CategoryService{Categories: categories, Logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]*entity.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := s.Categories.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Create(ctx context.Context, name, description string, active bool) (*entity.Category, error) {
	c := &entity.Category{
		Name:        name,
		Description: description,
		Active:      active,
	}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id int64, name, description string, active bool) (*entity.Category, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name = name
	c.Description = description
	c.Active = active
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	err := s.Categories.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrCategoryNotFound
	}
	if errors.Is(err, repo.ErrCategoryReferenced) {
		return ErrCategoryHasProducts
	}
	return err
}
