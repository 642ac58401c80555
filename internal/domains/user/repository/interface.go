package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/user/model"
)

type UserRepository interface {
	// WithTx returns a repository bound to an open transaction
	WithTx(tx pgx.Tx) UserRepository

	// Create returns model.ErrDuplicateEmail / model.ErrDuplicateCpf on unique violations
	Create(ctx context.Context, user *model.User) error

	// Lookups return model.ErrUserNotFound when absent
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByCpf(ctx context.Context, cpf string) (*model.User, error)

	List(ctx context.Context) ([]*model.User, error)

	// Update writes name, user_email, cpf and phone_number. Never cnpj_owner or type_user.
	Update(ctx context.Context, user *model.User) error

	// SetCnpjOwner overwrites the whole list
	SetCnpjOwner(ctx context.Context, id uuid.UUID, cnpjs []string) error

	// AppendCnpj pushes cnpj to the end of the list
	AppendCnpj(ctx context.Context, id uuid.UUID, cnpj string) error

	Delete(ctx context.Context, id uuid.UUID) error
}
