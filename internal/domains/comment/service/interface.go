package service

import (
	"context"

	"github.com/google/uuid"

	"roll-backend/internal/domains/comment/model"
)

type ServiceInterface interface {
	// Create resolves the author by email and the place by id
	Create(ctx context.Context, req model.CreateCommentRequest) (*model.Comment, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// ListByPlace returns the comments of an existing place with author summaries
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*model.Comment, error)
}
