package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"roll-backend/internal/domains/category/model"
	"roll-backend/pkg/cache"
	"roll-backend/pkg/logger"
)

const (
	uniqueTitleIndex = "idx_categories_title"
	cacheKeyPrefix   = "category:"
)

type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache, cacheTTL time.Duration) CategoryRepository {
	return &postgresRepository{
		pool:     pool,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

func cacheKey(id uuid.UUID) string {
	return cacheKeyPrefix + id.String()
}

func (r *postgresRepository) Create(ctx context.Context, category *model.Category) error {
	const query = `
		INSERT INTO categories (id, title, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query, category.ID, category.Title, category.CreatedAt, category.UpdatedAt)
	if err != nil {
		return mapWriteError("create", err)
	}
	return nil
}

// ============================================================
// READ
// ============================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	// Step 1: cache
	var cached model.Category
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err != nil {
		logger.Warn("GetByID: cache read failed", err)
	} else if found {
		return &cached, nil
	}

	// Step 2: database
	const query = `SELECT id, title, created_at, updated_at FROM categories WHERE id = $1`
	category, err := scanCategory(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	// Step 3: populate cache
	if err := r.cache.Set(ctx, cacheKey(id), category, r.cacheTTL); err != nil {
		logger.Warn("GetByID: cache write failed", err)
	}

	return category, nil
}

func (r *postgresRepository) GetByTitle(ctx context.Context, title string) (*model.Category, error) {
	const query = `SELECT id, title, created_at, updated_at FROM categories WHERE title = $1`
	return scanCategory(r.pool.QueryRow(ctx, query, title))
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.Category, error) {
	const query = `SELECT id, title, created_at, updated_at FROM categories ORDER BY title`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]*model.Category, 0)
	for rows.Next() {
		c := &model.Category{}
		if err := rows.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *postgresRepository) CountPlaces(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM places WHERE category_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count places: %w", err)
	}
	return count, nil
}

// ============================================================
// WRITE
// ============================================================

func (r *postgresRepository) Update(ctx context.Context, category *model.Category) error {
	const query = `UPDATE categories SET title = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, category.ID, category.Title, category.UpdatedAt)
	if err != nil {
		return mapWriteError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	r.invalidate(ctx, category.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCategoryNotFound
	}

	r.invalidate(ctx, id)
	return nil
}

// ============================================================
// HELPERS
// ============================================================

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		logger.Warn("category cache invalidation failed", err)
	}
}

func scanCategory(row pgx.Row) (*model.Category, error) {
	c := &model.Category{}
	if err := row.Scan(&c.ID, &c.Title, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return c, nil
}

// mapWriteError turns constraint violations into domain errors
func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == uniqueTitleIndex:
			return model.ErrDuplicateTitle
		case pgErr.Code == "23503":
			return model.ErrCategoryInUse
		}
	}
	return fmt.Errorf("failed to %s category: %w", op, err)
}
