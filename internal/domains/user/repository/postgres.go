package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"roll-backend/internal/domains/user/model"
	"roll-backend/pkg/database"
)

const (
	uniqueEmailIndex = "idx_users_email"
	uniqueCpfIndex   = "idx_users_cpf"

	userColumns = `id, name, user_email, type_user, cpf, phone_number, cnpj_owner, created_at, updated_at`
)

type postgresRepository struct {
	db database.Querier
}

func NewPostgresRepository(db database.Querier) UserRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) WithTx(tx pgx.Tx) UserRepository {
	return &postgresRepository{db: tx}
}

// =====================================================
// CREATE
// =====================================================

func (r *postgresRepository) Create(ctx context.Context, user *model.User) error {
	const query = `
		INSERT INTO users (
			id, name, user_email, type_user, cpf, phone_number,
			cnpj_owner, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.Type,
		user.Cpf,
		user.PhoneNumber,
		user.CnpjOwner, // nil slice is stored as NULL
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return mapWriteError("create", err)
	}
	return nil
}

// =====================================================
// READ
// =====================================================

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_email = $1`, email)
}

func (r *postgresRepository) GetByCpf(ctx context.Context, cpf string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE cpf = $1`, cpf)
}

func (r *postgresRepository) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *postgresRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// =====================================================
// UPDATE
// =====================================================

func (r *postgresRepository) Update(ctx context.Context, user *model.User) error {
	const query = `
		UPDATE users
		SET name = $2, user_email = $3, cpf = $4, phone_number = $5, updated_at = $6
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, user.ID, user.Name, user.Email, user.Cpf, user.PhoneNumber, user.UpdatedAt)
	if err != nil {
		return mapWriteError("update", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) SetCnpjOwner(ctx context.Context, id uuid.UUID, cnpjs []string) error {
	if cnpjs == nil {
		cnpjs = []string{}
	}

	tag, err := r.db.Exec(ctx, `UPDATE users SET cnpj_owner = $2, updated_at = NOW() WHERE id = $1`, id, cnpjs)
	if err != nil {
		return fmt.Errorf("failed to set cnpj_owner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

func (r *postgresRepository) AppendCnpj(ctx context.Context, id uuid.UUID, cnpj string) error {
	const query = `
		UPDATE users
		SET cnpj_owner = array_append(COALESCE(cnpj_owner, '{}'), $2), updated_at = NOW()
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, cnpj)
	if err != nil {
		return fmt.Errorf("failed to append cnpj: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// =====================================================
// DELETE
// =====================================================

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapWriteError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrUserNotFound
	}
	return nil
}

// =====================================================
// HELPERS
// =====================================================

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Type,
		&u.Cpf,
		&u.PhoneNumber,
		&u.CnpjOwner,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if u.IsOwner() && u.CnpjOwner == nil {
		u.CnpjOwner = []string{}
	}
	return u, nil
}

func mapWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case uniqueEmailIndex:
			return model.ErrDuplicateEmail
		case uniqueCpfIndex:
			return model.ErrDuplicateCpf
		}
	}
	return fmt.Errorf("failed to %s user: %w", op, err)
}
