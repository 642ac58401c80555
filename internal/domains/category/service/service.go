package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"roll-backend/internal/domains/category/model"
	"roll-backend/internal/domains/category/repository"
)

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) ServiceInterface {
	return &categoryService{repo: repo}
}

// Create validates the title and rejects duplicates
func (s *categoryService) Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidCategoryError(err)
	}

	// Step 1: uniqueness
	if err := s.ensureTitleFree(ctx, req.Title, uuid.Nil); err != nil {
		return nil, err
	}

	// Step 2: insert
	now := time.Now()
	category := &model.Category{
		ID:        uuid.New(),
		Title:     req.Title,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, category); err != nil {
		if errors.Is(err, model.ErrDuplicateTitle) {
			return nil, model.NewDuplicateTitleError(req.Title)
		}
		return nil, err
	}

	log.Info().Str("category_id", category.ID.String()).Str("title", category.Title).Msg("category created")
	return category, nil
}

func (s *categoryService) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil, model.NewCategoryNotFoundError()
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) List(ctx context.Context) ([]*model.Category, error) {
	return s.repo.List(ctx)
}

// Update renames a category when a title is supplied; the new title must be
// unique among other categories. An empty update returns the category as is.
func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.Category, error) {
	// Step 1: existence
	category, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return category, nil
	}

	// Step 2: validation
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidCategoryError(err)
	}
	title := *req.Title

	// Step 3: uniqueness excluding self
	if err := s.ensureTitleFree(ctx, title, id); err != nil {
		return nil, err
	}

	category.Title = title
	category.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, category); err != nil {
		switch {
		case errors.Is(err, model.ErrDuplicateTitle):
			return nil, model.NewDuplicateTitleError(title)
		case errors.Is(err, model.ErrCategoryNotFound):
			return nil, model.NewCategoryNotFoundError()
		}
		return nil, err
	}

	return category, nil
}

// Delete refuses while any place still references the category
func (s *categoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountPlaces(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return model.NewCategoryInUseError()
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, model.ErrCategoryInUse):
			return model.NewCategoryInUseError()
		case errors.Is(err, model.ErrCategoryNotFound):
			return model.NewCategoryNotFoundError()
		}
		return fmt.Errorf("delete category: %w", err)
	}

	log.Info().Str("category_id", id.String()).Msg("category deleted")
	return nil
}

func (s *categoryService) ensureTitleFree(ctx context.Context, title string, self uuid.UUID) error {
	existing, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, model.ErrCategoryNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != self {
		return model.NewDuplicateTitleError(title)
	}
	return nil
}
