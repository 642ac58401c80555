package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/place/model"
)

// =====================================================
// PLACE SERVICE INTERFACE
// =====================================================

type ServiceInterface interface {
	// Create inserts the place, its private info and appends the cnpj to the owner, atomically
	Create(ctx context.Context, req model.CreatePlaceRequest) (*model.Place, error)

	// List returns every place with its category
	List(ctx context.Context) ([]*model.Place, error)

	// GetByID returns the place with category, private info and comments
	GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error)

	// Search filters by name, tag and category title; an unknown category yields no places
	Search(ctx context.Context, req model.SearchRequest) ([]*model.Place, error)

	// PublicProfile returns public fields and category only (cached)
	PublicProfile(ctx context.Context, id uuid.UUID) (*model.Place, error)

	// Update applies a sparse update and keeps the owner's cnpj list consistent
	Update(ctx context.Context, id uuid.UUID, req model.UpdatePlaceRequest) (*model.Place, error)

	// Delete removes the place, its private info, its comments and the owner's cnpj entry
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteWithTx runs Delete's steps on a caller-owned transaction.
	// The caller must call EvictPlaces after commit.
	DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error

	// EvictPlaces drops cached public profiles
	EvictPlaces(ctx context.Context, ids ...uuid.UUID)
}
