package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/user/model"
)

type ServiceInterface interface {
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)

	// GetByID returns the user with owned private infos and authored comments
	GetByID(ctx context.Context, id uuid.UUID) (*model.UserDetail, error)

	List(ctx context.Context) ([]*model.User, error)

	Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error)

	// Exclude deletes the user, its comments and, for owners, every place listed in cnpj_owner
	Exclude(ctx context.Context, id uuid.UUID) error
}

// PlaceDeleter is the place capability the user cascade needs
type PlaceDeleter interface {
	DeleteWithTx(ctx context.Context, tx pgx.Tx, placeID uuid.UUID) error
	EvictPlaces(ctx context.Context, ids ...uuid.UUID)
}
