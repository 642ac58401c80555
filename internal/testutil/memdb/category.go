package memdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"roll-backend/internal/domains/category/model"
	"roll-backend/internal/domains/category/repository"
)

type CategoryRepository struct {
	s *Store
}

var _ repository.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("category.Create"); err != nil {
		return err
	}

	for _, c := range r.s.data.categories {
		if c.Title == category.Title {
			return model.ErrDuplicateTitle
		}
	}
	r.s.data.categories[category.ID] = *category
	r.s.stamp(category.ID)
	return nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.data.categories[id]
	if !ok {
		return nil, model.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *CategoryRepository) GetByTitle(ctx context.Context, title string) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, c := range r.s.data.categories {
		if c.Title == title {
			return &c, nil
		}
	}
	return nil, model.ErrCategoryNotFound
}

func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*model.Category, 0, len(r.s.data.categories))
	for _, c := range r.s.data.categories {
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("category.Update"); err != nil {
		return err
	}

	if _, ok := r.s.data.categories[category.ID]; !ok {
		return model.ErrCategoryNotFound
	}
	for id, c := range r.s.data.categories {
		if id != category.ID && c.Title == category.Title {
			return model.ErrDuplicateTitle
		}
	}
	r.s.data.categories[category.ID] = *category
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("category.Delete"); err != nil {
		return err
	}

	if _, ok := r.s.data.categories[id]; !ok {
		return model.ErrCategoryNotFound
	}
	for _, p := range r.s.data.places {
		if p.CategoryID == id {
			return model.ErrCategoryInUse
		}
	}
	delete(r.s.data.categories, id)
	return nil
}

func (r *CategoryRepository) CountPlaces(ctx context.Context, id uuid.UUID) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n := 0
	for _, p := range r.s.data.places {
		if p.CategoryID == id {
			n++
		}
	}
	return n, nil
}
