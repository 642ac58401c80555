package service

import (
	"context"

	"github.com/google/uuid"

	"roll-backend/internal/domains/category/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateCategoryRequest) (*model.Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error)
	List(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, id uuid.UUID, req model.UpdateCategoryRequest) (*model.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
