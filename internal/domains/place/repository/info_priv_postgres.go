package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"roll-backend/internal/domains/place/model"
	"roll-backend/pkg/database"
)

const uniqueCnpjIndex = "idx_infos_priv_places_cnpj"

const infoColumns = `id, razao_social, cnpj, place_id, owner_id, created_at, updated_at`

type postgresInfoPrivPlaceRepository struct {
	db database.Querier
}

func NewPostgresInfoPrivPlaceRepository(db database.Querier) InfoPrivPlaceRepository {
	return &postgresInfoPrivPlaceRepository{db: db}
}

func (r *postgresInfoPrivPlaceRepository) WithTx(tx pgx.Tx) InfoPrivPlaceRepository {
	return &postgresInfoPrivPlaceRepository{db: tx}
}

func (r *postgresInfoPrivPlaceRepository) Create(ctx context.Context, info *model.InfoPrivPlace) error {
	const query = `
		INSERT INTO infos_priv_places (id, razao_social, cnpj, place_id, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		info.ID,
		info.RazaoSocial,
		info.Cnpj,
		info.PlaceID,
		info.OwnerID,
		info.CreatedAt,
		info.UpdatedAt,
	)
	if err != nil {
		return mapInfoWriteError("create", err)
	}
	return nil
}

func (r *postgresInfoPrivPlaceRepository) GetByPlaceID(ctx context.Context, placeID uuid.UUID) (*model.InfoPrivPlace, error) {
	query := `SELECT ` + infoColumns + ` FROM infos_priv_places WHERE place_id = $1`
	return scanInfo(r.db.QueryRow(ctx, query, placeID))
}

func (r *postgresInfoPrivPlaceRepository) GetByCnpj(ctx context.Context, cnpj string) (*model.InfoPrivPlace, error) {
	query := `SELECT ` + infoColumns + ` FROM infos_priv_places WHERE cnpj = $1`
	return scanInfo(r.db.QueryRow(ctx, query, cnpj))
}

func (r *postgresInfoPrivPlaceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.InfoPrivPlace, error) {
	query := `SELECT ` + infoColumns + ` FROM infos_priv_places WHERE owner_id = $1 ORDER BY created_at`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list private infos: %w", err)
	}
	defer rows.Close()

	infos := make([]*model.InfoPrivPlace, 0)
	for rows.Next() {
		info := &model.InfoPrivPlace{}
		if err := rows.Scan(
			&info.ID, &info.RazaoSocial, &info.Cnpj, &info.PlaceID,
			&info.OwnerID, &info.CreatedAt, &info.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan private info: %w", err)
		}
		infos = append(infos, info)
	}

	return infos, rows.Err()
}

func (r *postgresInfoPrivPlaceRepository) Update(ctx context.Context, info *model.InfoPrivPlace) error {
	const query = `
		UPDATE infos_priv_places
		SET razao_social = $2, cnpj = $3, owner_id = $4, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, info.ID, info.RazaoSocial, info.Cnpj, info.OwnerID)
	if err != nil {
		return mapInfoWriteError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInfoPrivPlaceNotFound
	}
	return nil
}

func (r *postgresInfoPrivPlaceRepository) DeleteByPlaceID(ctx context.Context, placeID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM infos_priv_places WHERE place_id = $1`, placeID)
	if err != nil {
		return fmt.Errorf("failed to delete private info: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrInfoPrivPlaceNotFound
	}
	return nil
}

func scanInfo(row pgx.Row) (*model.InfoPrivPlace, error) {
	info := &model.InfoPrivPlace{}
	err := row.Scan(
		&info.ID, &info.RazaoSocial, &info.Cnpj, &info.PlaceID,
		&info.OwnerID, &info.CreatedAt, &info.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrInfoPrivPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get private info: %w", err)
	}
	return info, nil
}

func mapInfoWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqueCnpjIndex {
		return model.ErrDuplicateCnpj
	}
	return fmt.Errorf("failed to %s private info: %w", op, err)
}
