package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	commentrepo "roll-backend/internal/domains/comment/repository"
	placemodel "roll-backend/internal/domains/place/model"
	placerepo "roll-backend/internal/domains/place/repository"
	"roll-backend/internal/domains/user/model"
	"roll-backend/internal/domains/user/repository"
	"roll-backend/pkg/database"
)

type userService struct {
	txManager database.TxManager
	users     repository.UserRepository
	infos     placerepo.InfoPrivPlaceRepository
	comments  commentrepo.CommentRepository
	places    PlaceDeleter
}

func NewUserService(
	txManager database.TxManager,
	users repository.UserRepository,
	infos placerepo.InfoPrivPlaceRepository,
	comments commentrepo.CommentRepository,
	places PlaceDeleter,
) ServiceInterface {
	return &userService{
		txManager: txManager,
		users:     users,
		infos:     infos,
		comments:  comments,
		places:    places,
	}
}

// =====================================================
// CREATE
// =====================================================

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidUserError(err)
	}

	// Step 1: uniqueness
	if err := s.ensureEmailFree(ctx, req.Email, uuid.Nil); err != nil {
		return nil, err
	}
	if req.Cpf != "" {
		if err := s.ensureCpfFree(ctx, req.Cpf, uuid.Nil); err != nil {
			return nil, err
		}
	}

	// Step 2: insert
	now := time.Now().UTC()
	user := &model.User{
		ID:          uuid.New(),
		Name:        req.Name,
		Email:       req.Email,
		Type:        req.Type,
		Cpf:         optional(req.Cpf),
		PhoneNumber: optional(req.PhoneNumber),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if user.IsOwner() {
		user.CnpjOwner = []string{}
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapDuplicate(err)
	}

	log.Info().Str("user_id", user.ID.String()).Str("type_user", user.Type).Msg("user created")
	return user, nil
}

// =====================================================
// READ
// =====================================================

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.UserDetail, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &model.UserDetail{
		User:        *user,
		OwnedPlaces: []*placemodel.InfoPrivPlace{},
	}

	if user.IsOwner() {
		owned, err := s.infos.ListByOwner(ctx, id)
		if err != nil {
			return nil, err
		}
		detail.OwnedPlaces = owned
	}

	comments, err := s.comments.ListByUser(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments

	return detail, nil
}

func (s *userService) List(ctx context.Context) ([]*model.User, error) {
	return s.users.List(ctx)
}

// =====================================================
// UPDATE
// =====================================================

func (s *userService) Update(ctx context.Context, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	// Step 1: system-managed fields
	if req.Type.Set {
		return nil, model.NewTypeImmutableError()
	}
	if req.CnpjOwner.Set {
		return nil, model.NewCnpjOwnerReadOnlyError()
	}

	// Step 2: format
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, model.NewInvalidUserError(err)
	}

	// Step 3: email
	if req.Email != nil {
		if err := s.ensureEmailFree(ctx, *req.Email, id); err != nil {
			return nil, err
		}
		user.Email = *req.Email
	}

	// Step 4: cpf is the ownership key of an owner and cannot change
	if req.Cpf != nil {
		if user.IsOwner() {
			return nil, model.NewOwnerCpfImmutableError()
		}
		if *req.Cpf != "" {
			if err := s.ensureCpfFree(ctx, *req.Cpf, id); err != nil {
				return nil, err
			}
		}
		user.Cpf = optional(*req.Cpf)
	}

	// Step 5: phone
	if req.PhoneNumber != nil {
		if user.IsOwner() && *req.PhoneNumber == "" {
			return nil, model.NewOwnerPhoneRequiredError()
		}
		user.PhoneNumber = optional(*req.PhoneNumber)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, mapDuplicate(err)
	}

	return user, nil
}

// =====================================================
// EXCLUDE
// =====================================================

// Exclude runs the whole cascade in one transaction. A cnpj with no
// matching private info is skipped.
func (s *userService) Exclude(ctx context.Context, id uuid.UUID) error {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return err
	}

	deletedPlaces, err := database.WithTransactionResult(ctx, s.txManager, func(tx pgx.Tx) ([]uuid.UUID, error) {
		var removed []uuid.UUID

		// Step 1: owned places
		if user.IsOwner() {
			infos := s.infos.WithTx(tx)
			for _, cnpj := range user.CnpjOwner {
				info, err := infos.GetByCnpj(ctx, cnpj)
				if err != nil {
					if errors.Is(err, placemodel.ErrInfoPrivPlaceNotFound) {
						log.Warn().Str("user_id", id.String()).Str("cnpj", cnpj).Msg("cnpj without place, skipped")
						continue
					}
					return nil, err
				}
				if err := s.places.DeleteWithTx(ctx, tx, info.PlaceID); err != nil {
					return nil, fmt.Errorf("delete place %s: %w", info.PlaceID, err)
				}
				removed = append(removed, info.PlaceID)
			}
		}

		// Step 2: authored comments
		if _, err := s.comments.WithTx(tx).DeleteByUser(ctx, id); err != nil {
			return nil, err
		}

		// Step 3: the user
		return removed, s.users.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.NewUserNotFoundError()
		}
		return err
	}

	s.places.EvictPlaces(ctx, deletedPlaces...)

	log.Info().
		Str("user_id", id.String()).
		Int("places_removed", len(deletedPlaces)).
		Msg("user excluded")

	return nil
}

// =====================================================
// HELPERS
// =====================================================

func (s *userService) getUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.NewUserNotFoundError()
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	existing, err := s.users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return model.NewDuplicateEmailError()
	}
	return nil
}

func (s *userService) ensureCpfFree(ctx context.Context, cpf string, self uuid.UUID) error {
	existing, err := s.users.GetByCpf(ctx, cpf)
	switch {
	case errors.Is(err, model.ErrUserNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != self:
		return model.NewDuplicateCpfError()
	}
	return nil
}

func mapDuplicate(err error) error {
	switch {
	case errors.Is(err, model.ErrDuplicateEmail):
		return model.NewDuplicateEmailError()
	case errors.Is(err, model.ErrDuplicateCpf):
		return model.NewDuplicateCpfError()
	}
	return err
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
