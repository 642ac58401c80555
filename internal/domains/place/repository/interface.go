package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/place/model"
)

// =====================================================
// PLACE REPOSITORY INTERFACE
// =====================================================

type PlaceRepository interface {
	// WithTx returns a repository bound to an open transaction
	WithTx(tx pgx.Tx) PlaceRepository

	Create(ctx context.Context, place *model.Place) error

	// GetByID returns the place with its category, or model.ErrPlaceNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error)

	// List returns places matching every non-empty filter field, with category
	List(ctx context.Context, filter model.SearchFilter) ([]*model.Place, error)

	// Update writes the non-nil fields; an empty update is a no-op
	Update(ctx context.Context, id uuid.UUID, update model.PlaceUpdate) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// =====================================================
// INFO PRIV PLACE REPOSITORY INTERFACE
// =====================================================

type InfoPrivPlaceRepository interface {
	WithTx(tx pgx.Tx) InfoPrivPlaceRepository

	// Create returns model.ErrDuplicateCnpj on a unique cnpj violation
	Create(ctx context.Context, info *model.InfoPrivPlace) error

	// GetByPlaceID and GetByCnpj return model.ErrInfoPrivPlaceNotFound when absent
	GetByPlaceID(ctx context.Context, placeID uuid.UUID) (*model.InfoPrivPlace, error)
	GetByCnpj(ctx context.Context, cnpj string) (*model.InfoPrivPlace, error)

	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.InfoPrivPlace, error)

	// Update writes razao_social, cnpj and owner_id
	Update(ctx context.Context, info *model.InfoPrivPlace) error

	DeleteByPlaceID(ctx context.Context, placeID uuid.UUID) error
}
