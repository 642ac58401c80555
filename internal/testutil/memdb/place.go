package memdb

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/place/model"
	"roll-backend/internal/domains/place/repository"
)

// =====================================================
// PLACES
// =====================================================

type PlaceRepository struct {
	s *Store
}

var _ repository.PlaceRepository = (*PlaceRepository)(nil)

func (r *PlaceRepository) WithTx(tx pgx.Tx) repository.PlaceRepository { return r }

func (r *PlaceRepository) Create(ctx context.Context, place *model.Place) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("place.Create"); err != nil {
		return err
	}

	if _, ok := r.s.data.categories[place.CategoryID]; !ok {
		return foreignKeyViolation("places_category_id_fkey")
	}
	r.s.data.places[place.ID] = clonePlace(*place)
	r.s.stamp(place.ID)
	return nil
}

func (r *PlaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.data.places[id]
	if !ok {
		return nil, model.ErrPlaceNotFound
	}
	return r.read(p), nil
}

func (r *PlaceRepository) List(ctx context.Context, filter model.SearchFilter) ([]*model.Place, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.Place, 0)
	for _, p := range r.s.data.places {
		if matches(p, filter) {
			out = append(out, r.read(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PlaceName != out[j].PlaceName {
			return out[i].PlaceName < out[j].PlaceName
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *PlaceRepository) Update(ctx context.Context, id uuid.UUID, update model.PlaceUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("place.Update"); err != nil {
		return err
	}

	if update.IsEmpty() {
		return nil
	}
	p, ok := r.s.data.places[id]
	if !ok {
		return model.ErrPlaceNotFound
	}
	if update.CategoryID != nil {
		if _, ok := r.s.data.categories[*update.CategoryID]; !ok {
			return foreignKeyViolation("places_category_id_fkey")
		}
	}
	update.Apply(&p)
	p.UpdatedAt = time.Now().UTC()
	r.s.data.places[id] = clonePlace(p)
	return nil
}

func (r *PlaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("place.Delete"); err != nil {
		return err
	}

	if _, ok := r.s.data.places[id]; !ok {
		return model.ErrPlaceNotFound
	}
	for _, info := range r.s.data.infos {
		if info.PlaceID == id {
			return foreignKeyViolation("infos_priv_places_place_id_fkey")
		}
	}
	for _, c := range r.s.data.comments {
		if c.PlaceID == id {
			return foreignKeyViolation("comments_place_id_fkey")
		}
	}
	delete(r.s.data.places, id)
	return nil
}

// read joins the category, like the SELECT does
func (r *PlaceRepository) read(p model.Place) *model.Place {
	out := clonePlace(p)
	if c, ok := r.s.data.categories[p.CategoryID]; ok {
		out.Category = &c
	}
	return &out
}

func matches(p model.Place, filter model.SearchFilter) bool {
	if filter.Name != "" && !containsFold(p.PlaceName, filter.Name) {
		return false
	}
	if filter.Tag != "" {
		found := false
		for _, t := range p.Tags {
			if containsFold(t, filter.Tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// =====================================================
// PRIVATE INFO
// =====================================================

type InfoPrivPlaceRepository struct {
	s *Store
}

var _ repository.InfoPrivPlaceRepository = (*InfoPrivPlaceRepository)(nil)

func (r *InfoPrivPlaceRepository) WithTx(tx pgx.Tx) repository.InfoPrivPlaceRepository { return r }

func (r *InfoPrivPlaceRepository) Create(ctx context.Context, info *model.InfoPrivPlace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("info.Create"); err != nil {
		return err
	}

	if err := r.checkConstraints(*info); err != nil {
		return err
	}
	for _, existing := range r.s.data.infos {
		if existing.PlaceID == info.PlaceID {
			return uniqueViolation("idx_infos_priv_places_place")
		}
	}
	r.s.data.infos[info.ID] = *info
	r.s.stamp(info.ID)
	return nil
}

func (r *InfoPrivPlaceRepository) GetByPlaceID(ctx context.Context, placeID uuid.UUID) (*model.InfoPrivPlace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, info := range r.s.data.infos {
		if info.PlaceID == placeID {
			return &info, nil
		}
	}
	return nil, model.ErrInfoPrivPlaceNotFound
}

func (r *InfoPrivPlaceRepository) GetByCnpj(ctx context.Context, cnpj string) (*model.InfoPrivPlace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, info := range r.s.data.infos {
		if info.Cnpj == cnpj {
			return &info, nil
		}
	}
	return nil, model.ErrInfoPrivPlaceNotFound
}

func (r *InfoPrivPlaceRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.InfoPrivPlace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.InfoPrivPlace, 0)
	for _, info := range r.s.data.infos {
		if info.OwnerID == ownerID {
			out = append(out, &info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.data.seq[out[i].ID] < r.s.data.seq[out[j].ID] })
	return out, nil
}

func (r *InfoPrivPlaceRepository) Update(ctx context.Context, info *model.InfoPrivPlace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("info.Update"); err != nil {
		return err
	}

	current, ok := r.s.data.infos[info.ID]
	if !ok {
		return model.ErrInfoPrivPlaceNotFound
	}
	if err := r.checkConstraints(*info); err != nil {
		return err
	}
	current.RazaoSocial = info.RazaoSocial
	current.Cnpj = info.Cnpj
	current.OwnerID = info.OwnerID
	current.UpdatedAt = time.Now().UTC()
	r.s.data.infos[info.ID] = current
	return nil
}

func (r *InfoPrivPlaceRepository) DeleteByPlaceID(ctx context.Context, placeID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("info.DeleteByPlaceID"); err != nil {
		return err
	}

	for id, info := range r.s.data.infos {
		if info.PlaceID == placeID {
			delete(r.s.data.infos, id)
			return nil
		}
	}
	return model.ErrInfoPrivPlaceNotFound
}

// checkConstraints must be called with s.mu held
func (r *InfoPrivPlaceRepository) checkConstraints(info model.InfoPrivPlace) error {
	if _, ok := r.s.data.places[info.PlaceID]; !ok {
		return foreignKeyViolation("infos_priv_places_place_id_fkey")
	}
	if _, ok := r.s.data.users[info.OwnerID]; !ok {
		return foreignKeyViolation("infos_priv_places_owner_id_fkey")
	}
	for id, existing := range r.s.data.infos {
		if id != info.ID && existing.Cnpj == info.Cnpj {
			return model.ErrDuplicateCnpj
		}
	}
	return nil
}
