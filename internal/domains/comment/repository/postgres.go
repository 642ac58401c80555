package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/comment/model"
	"roll-backend/pkg/database"
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) CommentRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) CommentRepository {
	return &postgresRepository{db: tx}
}

func (r *postgresRepository) Create(ctx context.Context, comment *model.Comment) error {
	const query = `
		INSERT INTO comments (id, content, place_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		comment.ID,
		comment.Content,
		comment.PlaceID,
		comment.UserID,
		comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	const query = `SELECT id, content, place_id, user_id, created_at FROM comments WHERE id = $1`

	c := &model.Comment{}
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Content, &c.PlaceID, &c.UserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrCommentNotFound
		}
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return c, nil
}

func (r *postgresRepository) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*model.Comment, error) {
	const query = `
		SELECT c.id, c.content, c.place_id, c.user_id, c.created_at,
		       u.id, u.name, u.user_email
		FROM comments c
		JOIN users u ON u.id = c.user_id
		WHERE c.place_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.db.Query(ctx, query, placeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by place: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		c := &model.Comment{User: &model.Author{}}
		if err := rows.Scan(
			&c.ID, &c.Content, &c.PlaceID, &c.UserID, &c.CreatedAt,
			&c.User.ID, &c.User.Name, &c.User.Email,
		); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Comment, error) {
	const query = `
		SELECT id, content, place_id, user_id, created_at
		FROM comments
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments by user: %w", err)
	}
	defer rows.Close()

	comments := make([]*model.Comment, 0)
	for rows.Next() {
		c := &model.Comment{}
		if err := rows.Scan(&c.ID, &c.Content, &c.PlaceID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	return comments, rows.Err()
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCommentNotFound
	}
	return nil
}

func (r *postgresRepository) DeleteByPlace(ctx context.Context, placeID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE place_id = $1`, placeID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by place: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *postgresRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete comments by user: %w", err)
	}
	return tag.RowsAffected(), nil
}
