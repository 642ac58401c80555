package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/comment/model"
)

// =====================================================
// COMMENT REPOSITORY INTERFACE
// =====================================================

type CommentRepository interface {
	// WithTx returns a repository bound to an open transaction
	WithTx(tx pgx.Tx) CommentRepository

	Create(ctx context.Context, comment *model.Comment) error

	// GetByID returns model.ErrCommentNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)

	// ListByPlace returns comments with their author summary, oldest first
	ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*model.Comment, error)

	ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Comment, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByPlace and DeleteByUser return the number of deleted rows
	DeleteByPlace(ctx context.Context, placeID uuid.UUID) (int64, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
