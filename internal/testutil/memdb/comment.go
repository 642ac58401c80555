package memdb

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"roll-backend/internal/domains/comment/model"
	"roll-backend/internal/domains/comment/repository"
)

type CommentRepository struct {
	s *Store
}

var _ repository.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) WithTx(tx pgx.Tx) repository.CommentRepository { return r }

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("comment.Create"); err != nil {
		return err
	}

	if _, ok := r.s.data.places[comment.PlaceID]; !ok {
		return foreignKeyViolation("comments_place_id_fkey")
	}
	if _, ok := r.s.data.users[comment.UserID]; !ok {
		return foreignKeyViolation("comments_user_id_fkey")
	}
	stored := *comment
	stored.User = nil
	r.s.data.comments[comment.ID] = stored
	r.s.stamp(comment.ID)
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.data.comments[id]
	if !ok {
		return nil, model.ErrCommentNotFound
	}
	return &c, nil
}

func (r *CommentRepository) ListByPlace(ctx context.Context, placeID uuid.UUID) ([]*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := r.collect(func(c model.Comment) bool { return c.PlaceID == placeID })
	for _, c := range out {
		if u, ok := r.s.data.users[c.UserID]; ok {
			c.User = &model.Author{ID: u.ID, Name: u.Name, Email: u.Email}
		}
	}
	return out, nil
}

func (r *CommentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Comment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.collect(func(c model.Comment) bool { return c.UserID == userID }), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("comment.Delete"); err != nil {
		return err
	}

	if _, ok := r.s.data.comments[id]; !ok {
		return model.ErrCommentNotFound
	}
	delete(r.s.data.comments, id)
	return nil
}

func (r *CommentRepository) DeleteByPlace(ctx context.Context, placeID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("comment.DeleteByPlace"); err != nil {
		return 0, err
	}

	return r.deleteWhere(func(c model.Comment) bool { return c.PlaceID == placeID }), nil
}

func (r *CommentRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail("comment.DeleteByUser"); err != nil {
		return 0, err
	}

	return r.deleteWhere(func(c model.Comment) bool { return c.UserID == userID }), nil
}

// collect must be called with s.mu held; oldest first
func (r *CommentRepository) collect(keep func(model.Comment) bool) []*model.Comment {
	out := make([]*model.Comment, 0)
	for _, c := range r.s.data.comments {
		if keep(c) {
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return r.s.data.seq[out[i].ID] < r.s.data.seq[out[j].ID] })
	return out
}

func (r *CommentRepository) deleteWhere(match func(model.Comment) bool) int64 {
	var n int64
	for id, c := range r.s.data.comments {
		if match(c) {
			delete(r.s.data.comments, id)
			n++
		}
	}
	return n
}
