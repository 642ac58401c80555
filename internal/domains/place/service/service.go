package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	categorymodel "roll-backend/internal/domains/category/model"
	categoryrepo "roll-backend/internal/domains/category/repository"
	commentrepo "roll-backend/internal/domains/comment/repository"
	"roll-backend/internal/domains/place/model"
	"roll-backend/internal/domains/place/repository"
	usermodel "roll-backend/internal/domains/user/model"
	userrepo "roll-backend/internal/domains/user/repository"
	"roll-backend/pkg/cache"
	"roll-backend/pkg/database"
)

type placeService struct {
	txManager  database.TxManager
	places     repository.PlaceRepository
	infos      repository.InfoPrivPlaceRepository
	categories categoryrepo.CategoryRepository
	users      userrepo.UserRepository
	comments   commentrepo.CommentRepository
	cache      cache.Cache
	cacheTTL   time.Duration
}

func NewPlaceService(
	txManager database.TxManager,
	places repository.PlaceRepository,
	infos repository.InfoPrivPlaceRepository,
	categories categoryrepo.CategoryRepository,
	users userrepo.UserRepository,
	comments commentrepo.CommentRepository,
	cache cache.Cache,
	cacheTTL time.Duration,
) ServiceInterface {
	return &placeService{
		txManager:  txManager,
		places:     places,
		infos:      infos,
		categories: categories,
		users:      users,
		comments:   comments,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

// =====================================================
// CREATE
// =====================================================

// Create validates in a fixed order and stops at the first failure:
// category, owner, cnpj, public fields, razao_social.
func (s *placeService) Create(ctx context.Context, req model.CreatePlaceRequest) (*model.Place, error) {
	req.Normalize()

	// Step 1: category
	if req.CategoryTitle == "" {
		return nil, model.NewCategoryRequiredError()
	}
	category, err := s.resolveCategory(ctx, req.CategoryTitle)
	if err != nil {
		return nil, err
	}

	// Step 2: owner
	if req.OwnerCpf == "" {
		return nil, model.NewOwnerCpfRequiredError()
	}
	owner, err := s.resolveOwner(ctx, s.users, req.OwnerCpf)
	if err != nil {
		return nil, err
	}

	// Step 3: cnpj
	if req.Cnpj == "" {
		return nil, model.NewCnpjRequiredError()
	}
	if err := s.ensureCnpjFree(ctx, req.Cnpj); err != nil {
		return nil, err
	}

	// Step 4: public fields
	if err := req.ValidatePublic(); err != nil {
		return nil, model.NewInvalidPlaceError(err)
	}

	// Step 5: private fields
	if req.RazaoSocial == "" {
		return nil, model.NewRazaoSocialRequiredError()
	}

	now := time.Now().UTC()
	place := &model.Place{
		ID:           uuid.New(),
		PlaceName:    req.PlaceName,
		OpeningHours: req.OpeningHours,
		ClosingHours: req.ClosingHours,
		Tags:         req.Tags,
		Street:       req.Street,
		StreetNumber: req.StreetNumber,
		PhoneNumber:  req.PhoneNumber,
		CategoryID:   category.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	info := &model.InfoPrivPlace{
		ID:          uuid.New(),
		RazaoSocial: req.RazaoSocial,
		Cnpj:        req.Cnpj,
		PlaceID:     place.ID,
		OwnerID:     owner.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Step 6: place, private info and owner list in one transaction
	err = s.txManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.places.WithTx(tx).Create(ctx, place); err != nil {
			return err
		}
		if err := s.infos.WithTx(tx).Create(ctx, info); err != nil {
			return err
		}
		return s.users.WithTx(tx).AppendCnpj(ctx, owner.ID, info.Cnpj)
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateCnpj) {
			return nil, model.NewDuplicateCnpjError()
		}
		return nil, fmt.Errorf("create place: %w", err)
	}

	log.Info().
		Str("place_id", place.ID.String()).
		Str("owner_id", owner.ID.String()).
		Str("cnpj", info.Cnpj).
		Msg("place created")

	place.Category = category
	return place, nil
}

// =====================================================
// READ
// =====================================================

func (s *placeService) List(ctx context.Context) ([]*model.Place, error) {
	return s.places.List(ctx, model.SearchFilter{})
}

func (s *placeService) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	place, err := s.loadWithPrivateInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPlace(ctx, id)
	if err != nil {
		return nil, err
	}
	place.Comments = comments

	return place, nil
}

func (s *placeService) Search(ctx context.Context, req model.SearchRequest) ([]*model.Place, error) {
	req.Normalize()

	filter := model.SearchFilter{
		Name: req.Name,
		Tag:  req.Tag,
	}

	if req.Category != "" {
		category, err := s.categories.GetByTitle(ctx, req.Category)
		if err != nil {
			if errors.Is(err, categorymodel.ErrCategoryNotFound) {
				return []*model.Place{}, nil
			}
			return nil, err
		}
		filter.CategoryID = &category.ID
	}

	return s.places.List(ctx, filter)
}

// PublicProfile caches the place row only. The category is joined on every
// read so a rename shows up without touching place keys.
func (s *placeService) PublicProfile(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	key := publicCacheKey(id)

	var place *model.Place
	var cached model.Place
	if found, err := s.cache.Get(ctx, key, &cached); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("place cache read failed")
	} else if found {
		place = &cached
	}

	if place == nil {
		loaded, err := s.places.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrPlaceNotFound) {
				return nil, model.NewPlaceNotFoundError()
			}
			return nil, err
		}

		row := *loaded
		row.Category = nil
		if err := s.cache.Set(ctx, key, &row, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("place cache write failed")
		}
		place = &row
	}

	category, err := s.categories.GetByID(ctx, place.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("load category %s: %w", place.CategoryID, err)
	}
	place.Category = category

	return place, nil
}

// =====================================================
// UPDATE
// =====================================================

// Update takes one of three paths:
//   - nothing recognized: return the place untouched
//   - public fields only: single place update, no transaction
//   - any private field: place, private info and owner lists in one transaction
func (s *placeService) Update(ctx context.Context, id uuid.UUID, req model.UpdatePlaceRequest) (*model.Place, error) {
	req.Normalize()

	// Step 1: load
	current, err := s.loadWithPrivateInfo(ctx, id)
	if err != nil {
		return nil, err
	}

	if !req.HasPublic() && !req.HasPrivate() {
		return current, nil
	}

	// Step 2: public fields
	if err := req.ValidatePublic(); err != nil {
		return nil, model.NewInvalidPlaceError(err)
	}
	update, err := s.buildPlaceUpdate(ctx, req)
	if err != nil {
		return nil, err
	}

	if !req.HasPrivate() {
		if err := s.places.Update(ctx, id, update); err != nil {
			if errors.Is(err, model.ErrPlaceNotFound) {
				return nil, model.NewPlaceNotFoundError()
			}
			return nil, err
		}
		s.EvictPlaces(ctx, id)
		return s.loadWithPrivateInfo(ctx, id)
	}

	// Step 3: private fields
	info := current.InfoPrivPlace
	if info == nil {
		return nil, model.NewPrivateInfoNotFoundError()
	}
	if req.RazaoSocial != nil && *req.RazaoSocial == "" {
		return nil, model.NewRazaoSocialRequiredError()
	}
	if req.Cnpj != nil && *req.Cnpj == "" {
		return nil, model.NewCnpjRequiredError()
	}
	if req.OwnerCpf != nil && *req.OwnerCpf == "" {
		return nil, model.NewOwnerCpfRequiredError()
	}

	oldCnpj, oldOwnerID := info.Cnpj, info.OwnerID

	cnpjChanged := req.Cnpj != nil && *req.Cnpj != oldCnpj
	if cnpjChanged {
		if err := s.ensureCnpjFree(ctx, *req.Cnpj); err != nil {
			return nil, err
		}
	}

	newOwnerID := oldOwnerID
	if req.OwnerCpf != nil {
		owner, err := s.resolveOwner(ctx, s.users, *req.OwnerCpf)
		if err != nil {
			return nil, err
		}
		newOwnerID = owner.ID
	}
	ownerChanged := newOwnerID != oldOwnerID

	updatedInfo := *info
	if req.RazaoSocial != nil {
		updatedInfo.RazaoSocial = *req.RazaoSocial
	}
	if req.Cnpj != nil {
		updatedInfo.Cnpj = *req.Cnpj
	}
	updatedInfo.OwnerID = newOwnerID

	// Step 4: transaction
	err = s.txManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.places.WithTx(tx).Update(ctx, id, update); err != nil {
			return err
		}
		if err := s.infos.WithTx(tx).Update(ctx, &updatedInfo); err != nil {
			return err
		}

		users := s.users.WithTx(tx)
		switch {
		case cnpjChanged && ownerChanged:
			if err := s.removeCnpj(ctx, users, oldOwnerID, oldCnpj); err != nil {
				return err
			}
			return users.AppendCnpj(ctx, newOwnerID, updatedInfo.Cnpj)

		case cnpjChanged:
			owner, err := s.currentOwner(ctx, users, oldOwnerID)
			if err != nil {
				return err
			}
			return users.SetCnpjOwner(ctx, owner.ID, usermodel.ReplaceCnpj(owner.CnpjOwner, oldCnpj, updatedInfo.Cnpj))

		case ownerChanged:
			if err := s.removeCnpj(ctx, users, oldOwnerID, oldCnpj); err != nil {
				return err
			}
			return users.AppendCnpj(ctx, newOwnerID, oldCnpj)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateCnpj) {
			return nil, model.NewDuplicateCnpjError()
		}
		return nil, err
	}

	log.Info().
		Str("place_id", id.String()).
		Bool("cnpj_changed", cnpjChanged).
		Bool("owner_changed", ownerChanged).
		Msg("place updated")

	s.EvictPlaces(ctx, id)
	return s.loadWithPrivateInfo(ctx, id)
}

// =====================================================
// DELETE
// =====================================================

func (s *placeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.txManager.WithTransaction(ctx, func(tx pgx.Tx) error {
		return s.DeleteWithTx(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.EvictPlaces(ctx, id)
	return nil
}

func (s *placeService) DeleteWithTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	infos := s.infos.WithTx(tx)
	users := s.users.WithTx(tx)

	// Step 1: private info
	info, err := infos.GetByPlaceID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrInfoPrivPlaceNotFound) {
			return model.NewPlaceNotFoundError()
		}
		return err
	}

	// Step 2: owner list without the cnpj
	if err := s.removeCnpj(ctx, users, info.OwnerID, info.Cnpj); err != nil {
		return err
	}

	// Step 3: dependents, then the place
	removed, err := s.comments.WithTx(tx).DeleteByPlace(ctx, id)
	if err != nil {
		return err
	}
	if err := infos.DeleteByPlaceID(ctx, id); err != nil {
		return err
	}
	if err := s.places.WithTx(tx).Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrPlaceNotFound) {
			return model.NewPlaceNotFoundError()
		}
		return err
	}

	log.Info().
		Str("place_id", id.String()).
		Str("owner_id", info.OwnerID.String()).
		Str("cnpj", info.Cnpj).
		Int64("comments_removed", removed).
		Msg("place deleted")

	return nil
}

func (s *placeService) EvictPlaces(ctx context.Context, ids ...uuid.UUID) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = publicCacheKey(id)
	}

	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Warn().Err(err).Strs("keys", keys).Msg("place cache eviction failed")
	}
}

// =====================================================
// HELPERS
// =====================================================

func publicCacheKey(id uuid.UUID) string {
	return model.PublicCacheKeyPrefix + id.String()
}

// loadWithPrivateInfo returns the place with category and, when present, private info
func (s *placeService) loadWithPrivateInfo(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	place, err := s.places.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrPlaceNotFound) {
			return nil, model.NewPlaceNotFoundError()
		}
		return nil, err
	}

	info, err := s.infos.GetByPlaceID(ctx, id)
	switch {
	case err == nil:
		place.InfoPrivPlace = info
	case !errors.Is(err, model.ErrInfoPrivPlaceNotFound):
		return nil, err
	}

	return place, nil
}

func (s *placeService) resolveCategory(ctx context.Context, title string) (*categorymodel.Category, error) {
	category, err := s.categories.GetByTitle(ctx, title)
	if err != nil {
		if errors.Is(err, categorymodel.ErrCategoryNotFound) {
			return nil, model.NewCategoryNotFoundError(title)
		}
		return nil, err
	}
	return category, nil
}

func (s *placeService) resolveOwner(ctx context.Context, users userrepo.UserRepository, cpf string) (*usermodel.User, error) {
	owner, err := users.GetByCpf(ctx, cpf)
	if err != nil {
		if errors.Is(err, usermodel.ErrUserNotFound) {
			return nil, model.NewOwnerNotFoundError()
		}
		return nil, err
	}
	if !owner.IsOwner() {
		return nil, model.NewNotAnOwnerError()
	}
	return owner, nil
}

// currentOwner loads the owner recorded on a place's private info
func (s *placeService) currentOwner(ctx context.Context, users userrepo.UserRepository, id uuid.UUID) (*usermodel.User, error) {
	owner, err := users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, usermodel.ErrUserNotFound) {
			return nil, model.NewCurrentOwnerNotFoundError()
		}
		return nil, err
	}
	return owner, nil
}

func (s *placeService) removeCnpj(ctx context.Context, users userrepo.UserRepository, ownerID uuid.UUID, cnpj string) error {
	owner, err := s.currentOwner(ctx, users, ownerID)
	if err != nil {
		return err
	}
	return users.SetCnpjOwner(ctx, owner.ID, usermodel.RemoveCnpj(owner.CnpjOwner, cnpj))
}

func (s *placeService) ensureCnpjFree(ctx context.Context, cnpj string) error {
	_, err := s.infos.GetByCnpj(ctx, cnpj)
	switch {
	case err == nil:
		return model.NewDuplicateCnpjError()
	case errors.Is(err, model.ErrInfoPrivPlaceNotFound):
		return nil
	default:
		return err
	}
}

// buildPlaceUpdate resolves category_title and collects the supplied public fields
func (s *placeService) buildPlaceUpdate(ctx context.Context, req model.UpdatePlaceRequest) (model.PlaceUpdate, error) {
	update := model.PlaceUpdate{
		PlaceName:    req.PlaceName,
		OpeningHours: req.OpeningHours,
		ClosingHours: req.ClosingHours,
		Tags:         req.Tags,
		Street:       req.Street,
		StreetNumber: req.StreetNumber,
		PhoneNumber:  req.PhoneNumber,
	}

	if req.CategoryTitle != nil {
		category, err := s.resolveCategory(ctx, *req.CategoryTitle)
		if err != nil {
			return model.PlaceUpdate{}, err
		}
		update.CategoryID = &category.ID
	}

	return update, nil
}
