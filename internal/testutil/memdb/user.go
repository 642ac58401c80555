package memdb

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/user/model"
	"roll-backend/internal/domains/user/repository"
)

type UserRepository struct {
	s *Store
}

var _ repository.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) WithTx(tx pgx.Tx) repository.UserRepository { return r }

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("user.Create"); err != nil {
		return err
	}

	if err := r.checkUnique(*user); err != nil {
		return err
	}
	r.s.data.users[user.ID] = cloneUser(*user)
	r.s.stamp(user.ID)
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return r.read(u), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if u.Email == email {
			return r.read(u), nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *UserRepository) GetByCpf(ctx context.Context, cpf string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.data.users {
		if u.Cpf != nil && *u.Cpf == cpf {
			return r.read(u), nil
		}
	}
	return nil, model.ErrUserNotFound
}

func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.User, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		out = append(out, r.read(u))
	}
	sort.Slice(out, func(i, j int) bool { return r.s.data.seq[out[i].ID] < r.s.data.seq[out[j].ID] })
	return out, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("user.Update"); err != nil {
		return err
	}

	current, ok := r.s.data.users[user.ID]
	if !ok {
		return model.ErrUserNotFound
	}
	if err := r.checkUnique(*user); err != nil {
		return err
	}

	next := cloneUser(*user)
	current.Name = next.Name
	current.Email = next.Email
	current.Cpf = next.Cpf
	current.PhoneNumber = next.PhoneNumber
	current.UpdatedAt = next.UpdatedAt
	r.s.data.users[user.ID] = current
	return nil
}

func (r *UserRepository) SetCnpjOwner(ctx context.Context, id uuid.UUID, cnpjs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("user.SetCnpjOwner"); err != nil {
		return err
	}

	u, ok := r.s.data.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	u.CnpjOwner = append([]string{}, cnpjs...)
	r.s.data.users[id] = u
	return nil
}

func (r *UserRepository) AppendCnpj(ctx context.Context, id uuid.UUID, cnpj string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("user.AppendCnpj"); err != nil {
		return err
	}

	u, ok := r.s.data.users[id]
	if !ok {
		return model.ErrUserNotFound
	}
	list := append([]string{}, u.CnpjOwner...)
	u.CnpjOwner = append(list, cnpj)
	r.s.data.users[id] = u
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("user.Delete"); err != nil {
		return err
	}

	if _, ok := r.s.data.users[id]; !ok {
		return model.ErrUserNotFound
	}
	for _, info := range r.s.data.infos {
		if info.OwnerID == id {
			return foreignKeyViolation("infos_priv_places_owner_id_fkey")
		}
	}
	for _, c := range r.s.data.comments {
		if c.UserID == id {
			return foreignKeyViolation("comments_user_id_fkey")
		}
	}
	delete(r.s.data.users, id)
	return nil
}

// checkUnique must be called with s.mu held
func (r *UserRepository) checkUnique(user model.User) error {
	for id, u := range r.s.data.users {
		if id == user.ID {
			continue
		}
		if u.Email == user.Email {
			return model.ErrDuplicateEmail
		}
		if user.Cpf != nil && u.Cpf != nil && *u.Cpf == *user.Cpf {
			return model.ErrDuplicateCpf
		}
	}
	return nil
}

// read mirrors the scan: owners never come back with a nil list
func (r *UserRepository) read(u model.User) *model.User {
	out := cloneUser(u)
	if out.IsOwner() && out.CnpjOwner == nil {
		out.CnpjOwner = []string{}
	}
	return &out
}
