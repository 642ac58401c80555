package repository

import (
	"context"

	"github.com/google/uuid"

	"roll-backend/internal/domains/category/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category *model.Category) error

	// GetByID returns model.ErrCategoryNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)

	// GetByTitle is an exact, case-sensitive match
	GetByTitle(ctx context.Context, title string) (*model.Category, error)

	List(ctx context.Context) ([]*model.Category, error)

	Update(ctx context.Context, category *model.Category) error

	Delete(ctx context.Context, id uuid.UUID) error

	// CountPlaces counts places referencing the category
	CountPlaces(ctx context.Context, id uuid.UUID) (int, error)
}
