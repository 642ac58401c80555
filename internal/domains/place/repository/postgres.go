package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	categorymodel "roll-backend/internal/domains/category/model"
	"roll-backend/internal/domains/place/model"
	"roll-backend/internal/shared/utils"
	"roll-backend/pkg/database"
)

const placeColumns = `
	p.id, p.place_name, p.opening_hours, p.closing_hours, p.tags,
	p.street, p.street_number, p.phone_number, p.category_id,
	p.created_at, p.updated_at,
	c.id, c.title, c.created_at, c.updated_at
`

type postgresPlaceRepository struct {
	db database.Querier
}

func NewPostgresPlaceRepository(db database.Querier) PlaceRepository {
	return &postgresPlaceRepository{db: db}
}

func (r *postgresPlaceRepository) WithTx(tx pgx.Tx) PlaceRepository {
	return &postgresPlaceRepository{db: tx}
}

func (r *postgresPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	const query = `
		INSERT INTO places (
			id, place_name, opening_hours, closing_hours, tags,
			street, street_number, phone_number, category_id,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	tags := place.Tags
	if tags == nil {
		tags = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		place.ID,
		place.PlaceName,
		place.OpeningHours,
		place.ClosingHours,
		tags,
		place.Street,
		place.StreetNumber,
		place.PhoneNumber,
		place.CategoryID,
		place.CreatedAt,
		place.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}
	return nil
}

func (r *postgresPlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	query := `SELECT ` + placeColumns + `
		FROM places p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1`

	place, err := scanPlace(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrPlaceNotFound
		}
		return nil, fmt.Errorf("failed to get place: %w", err)
	}
	return place, nil
}

// List builds the WHERE clause from the filter:
//   - Name: case-insensitive partial match on place_name
//   - Tag: case-insensitive partial match against any tag
//   - CategoryID: exact
func (r *postgresPlaceRepository) List(ctx context.Context, filter model.SearchFilter) ([]*model.Place, error) {
	var where utils.WhereBuilder
	if filter.Name != "" {
		where.Add(`p.place_name ILIKE ?`, utils.ContainsPattern(filter.Name))
	}
	if filter.Tag != "" {
		where.Add(`EXISTS (SELECT 1 FROM unnest(p.tags) AS t(tag) WHERE t.tag ILIKE ?)`, utils.ContainsPattern(filter.Tag))
	}
	if filter.CategoryID != nil {
		where.Add(`p.category_id = ?`, *filter.CategoryID)
	}

	query := `SELECT ` + placeColumns + `
		FROM places p
		JOIN categories c ON c.id = p.category_id` +
		where.SQL() + `
		ORDER BY p.place_name, p.id`

	rows, err := r.db.Query(ctx, query, where.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list places: %w", err)
	}
	defer rows.Close()

	places := make([]*model.Place, 0)
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan place: %w", err)
		}
		places = append(places, place)
	}

	return places, rows.Err()
}

func (r *postgresPlaceRepository) Update(ctx context.Context, id uuid.UUID, update model.PlaceUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	sets := make([]string, 0, 9)
	args := []any{id}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.PlaceName != nil {
		set("place_name", *update.PlaceName)
	}
	if update.OpeningHours != nil {
		set("opening_hours", *update.OpeningHours)
	}
	if update.ClosingHours != nil {
		set("closing_hours", *update.ClosingHours)
	}
	if update.Tags != nil {
		tags := *update.Tags
		if tags == nil {
			tags = []string{}
		}
		set("tags", tags)
	}
	if update.Street != nil {
		set("street", *update.Street)
	}
	if update.StreetNumber != nil {
		set("street_number", *update.StreetNumber)
	}
	if update.PhoneNumber != nil {
		set("phone_number", *update.PhoneNumber)
	}
	if update.CategoryID != nil {
		set("category_id", *update.CategoryID)
	}
	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE places SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlaceNotFound
	}
	return nil
}

func (r *postgresPlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM places WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete place: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrPlaceNotFound
	}
	return nil
}

func scanPlace(row pgx.Row) (*model.Place, error) {
	p := &model.Place{Category: &categorymodel.Category{}}
	err := row.Scan(
		&p.ID,
		&p.PlaceName,
		&p.OpeningHours,
		&p.ClosingHours,
		&p.Tags,
		&p.Street,
		&p.StreetNumber,
		&p.PhoneNumber,
		&p.CategoryID,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.Category.ID,
		&p.Category.Title,
		&p.Category.CreatedAt,
		&p.Category.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}
